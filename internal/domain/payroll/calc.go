package payroll

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// WeekdayIndex maps a date to the schedule grid convention Monday=0 .. Sunday=6.
func WeekdayIndex(date time.Time) int {
	raw := int(date.Weekday())
	if raw == 0 {
		return 6
	}
	return raw - 1
}

func parseClock(value string) (int, int, bool) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, 0, false
	}
	return hours, minutes, true
}

// ShiftDuration returns the worked hours between two "HH:MM" wall-clock times.
// An end time before the start time wraps past midnight. Malformed times
// contribute zero hours.
func ShiftDuration(start, end string) float64 {
	startHour, startMin, ok := parseClock(start)
	if !ok {
		return 0
	}
	endHour, endMin, ok := parseClock(end)
	if !ok {
		return 0
	}

	hours := endHour - startHour
	minutes := endMin - startMin
	if endHour < startHour || (endHour == startHour && endMin < startMin) {
		hours += 24
	}
	if minutes < 0 {
		hours--
		minutes += 60
	}
	return float64(hours) + float64(minutes)/60
}

// SplitDaily divides one day's worked hours at the daily overtime threshold.
func SplitDaily(worked float64) (regular, overtime float64) {
	if worked <= DailyOvertimeThreshold {
		return worked, 0
	}
	return DailyOvertimeThreshold, worked - DailyOvertimeThreshold
}

// GrossSalary recombines the hour buckets at their pay multipliers. Absence
// hours are unpaid and do not appear here.
func GrossSalary(regular, overtime, holiday, rate float64) float64 {
	return regular*rate + overtime*rate*OvertimeMultiplier + holiday*rate*HolidayMultiplier
}

// BuildMonthSummaries produces one Summary per employee, in roster order, for
// the given calendar month. Shifts are a recurring weekly schedule: a shift
// record counts once per occurrence of its weekday in the month. The function
// is pure; it reads its inputs and holds no state between calls.
func BuildMonthSummaries(year int, month time.Month, employees []Employee, shifts []Shift) []Summary {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	byEmployee := make(map[string][]Shift, len(employees))
	for _, shift := range shifts {
		byEmployee[shift.EmployeeID] = append(byEmployee[shift.EmployeeID], shift)
	}

	summaries := make([]Summary, 0, len(employees))
	for _, employee := range employees {
		rate := employee.HourlyRate
		if rate <= 0 {
			rate = DefaultHourlyRate
		}

		summary := Summary{
			EmployeeID:   employee.ID,
			EmployeeName: employee.DisplayName(),
			ContractType: employee.ContractType,
			HourlyRate:   rate,
		}

		for day := 1; day <= daysInMonth; day++ {
			date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			weekday := WeekdayIndex(date)
			for _, shift := range byEmployee[employee.ID] {
				if shift.Day != weekday {
					continue
				}
				if shift.IsAbsence() {
					switch shift.Status {
					case StatusPaidLeave:
						summary.RegularHours += StatusShiftHours
					case StatusPublicHoliday:
						summary.HolidayHours += StatusShiftHours
					default:
						summary.AbsenceHours += StatusShiftHours
					}
					continue
				}
				regular, overtime := SplitDaily(ShiftDuration(shift.Start, shift.End))
				summary.RegularHours += regular
				summary.OvertimeHours += overtime
			}
		}

		summary.TotalHours = summary.RegularHours + summary.OvertimeHours + summary.HolidayHours
		summary.GrossSalary = GrossSalary(summary.RegularHours, summary.OvertimeHours, summary.HolidayHours, rate)
		summary.Elements = buildElements(summary, rate)
		summaries = append(summaries, summary)
	}
	return summaries
}

func buildElements(summary Summary, rate float64) []VariableElement {
	var elements []VariableElement

	if summary.OvertimeHours > 0 {
		premium := summary.OvertimeHours * rate * (OvertimeMultiplier - 1)
		elements = append(elements, VariableElement{
			Type:        ElementOvertimePremium,
			Amount:      premium,
			Description: fmt.Sprintf("Overtime premium for %.2f h at +25%%", summary.OvertimeHours),
		})
	}

	if summary.HolidayHours > 0 {
		premium := summary.HolidayHours * rate * (HolidayMultiplier - 1)
		elements = append(elements, VariableElement{
			Type:        ElementHolidayPremium,
			Amount:      premium,
			Description: fmt.Sprintf("Public holiday premium for %.2f h at +100%%", summary.HolidayHours),
		})
	}

	if workDays := int(math.Ceil(summary.RegularHours / StatusShiftHours)); workDays > 0 {
		elements = append(elements, VariableElement{
			Type:        ElementMealVoucher,
			Amount:      float64(workDays) * MealVoucherRate,
			Description: fmt.Sprintf("Meal vouchers for %d work days", workDays),
		})
	}

	elements = append(elements, VariableElement{
		Type:        ElementTransport,
		Amount:      TransportAllowance,
		Description: "Monthly transport allowance",
	})

	return elements
}

// Filter narrows summaries by case-insensitive substring match on the employee
// name and exact contract type. Both filters compose with AND; an empty search
// and an empty or "all" contract type are no-ops. Relative order is preserved.
func Filter(summaries []Summary, search, contractType string) []Summary {
	search = strings.ToLower(strings.TrimSpace(search))
	contractType = strings.TrimSpace(contractType)
	matchAll := contractType == "" || strings.EqualFold(contractType, ContractFilterAll)

	out := make([]Summary, 0, len(summaries))
	for _, summary := range summaries {
		if search != "" && !strings.Contains(strings.ToLower(summary.EmployeeName), search) {
			continue
		}
		if !matchAll && summary.ContractType != contractType {
			continue
		}
		out = append(out, summary)
	}
	return out
}

// SumTotals folds the visible summaries into aggregate figures.
func SumTotals(summaries []Summary) Totals {
	var totals Totals
	for _, summary := range summaries {
		totals.RegularHours += summary.RegularHours
		totals.OvertimeHours += summary.OvertimeHours
		totals.HolidayHours += summary.HolidayHours
		totals.AbsenceHours += summary.AbsenceHours
		totals.TotalHours += summary.TotalHours
		totals.GrossSalary += summary.GrossSalary
	}
	totals.EmployeeCount = len(summaries)
	return totals
}
