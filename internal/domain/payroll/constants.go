package payroll

const (
	// Shift status codes for non-worked days.
	StatusPaidLeave     = "CP"
	StatusPublicHoliday = "JF"

	ContractPermanent = "CDI"
	ContractFixedTerm = "CDD"
	ContractExtra     = "Extra"

	// Hours credited for a status (non-worked) shift.
	StatusShiftHours = 7.0

	// Daily threshold above which worked hours count as overtime.
	DailyOvertimeThreshold = 8.0

	DefaultHourlyRate  = 12.0
	OvertimeMultiplier = 1.25
	HolidayMultiplier  = 2.0

	MealVoucherRate    = 9.0
	TransportAllowance = 75.0

	ElementOvertimePremium = "overtime_premium"
	ElementHolidayPremium  = "holiday_premium"
	ElementMealVoucher     = "meal_voucher"
	ElementTransport       = "transport_allowance"

	ContractFilterAll = "all"
)

var ContractTypes = []string{ContractPermanent, ContractFixedTerm, ContractExtra}
