package payroll

import "errors"

var (
	ErrShiftIncomplete    = errors.New("worked shift requires both start and end times")
	ErrShiftAmbiguous     = errors.New("shift cannot carry both times and a status")
	ErrShiftDayOutOfRange = errors.New("shift day must be between 0 (Monday) and 6 (Sunday)")
	ErrShiftBadClock      = errors.New("shift times must be HH:MM wall-clock values")
	ErrMonthInvalid       = errors.New("month must be in YYYY-MM form")
)

// ValidateShift enforces the worked-XOR-absence invariant at the write
// boundary. The aggregator itself skips malformed records silently, so
// rejecting them here keeps the stored schedule clean.
func ValidateShift(shift Shift) error {
	if shift.Day < 0 || shift.Day > 6 {
		return ErrShiftDayOutOfRange
	}
	if shift.Status != "" {
		if shift.Start != "" || shift.End != "" {
			return ErrShiftAmbiguous
		}
		return nil
	}
	if shift.Start == "" || shift.End == "" {
		return ErrShiftIncomplete
	}
	if _, _, ok := parseClock(shift.Start); !ok {
		return ErrShiftBadClock
	}
	if _, _, ok := parseClock(shift.End); !ok {
		return ErrShiftBadClock
	}
	return nil
}
