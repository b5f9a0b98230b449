package payroll

import (
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestWeekdayIndex(t *testing.T) {
	// 2025-11-03 is a Monday, 2025-11-09 a Sunday.
	cases := []struct {
		date time.Time
		want int
	}{
		{time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2025, time.November, 4, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, time.November, 8, 0, 0, 0, 0, time.UTC), 5},
		{time.Date(2025, time.November, 9, 0, 0, 0, 0, time.UTC), 6},
	}
	for _, tc := range cases {
		if got := WeekdayIndex(tc.date); got != tc.want {
			t.Fatalf("WeekdayIndex(%s) = %d, want %d", tc.date.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestShiftDuration(t *testing.T) {
	cases := []struct {
		start, end string
		want       float64
	}{
		{"09:00", "17:00", 8},
		{"09:30", "17:00", 7.5},
		{"22:00", "06:00", 8},
		{"23:30", "00:15", 0.75},
		{"10:00", "10:00", 0},
		{"bad", "17:00", 0},
		{"09:00", "", 0},
		{"25:00", "17:00", 0},
		{"09:60", "17:00", 0},
	}
	for _, tc := range cases {
		if got := ShiftDuration(tc.start, tc.end); !almostEqual(got, tc.want) {
			t.Fatalf("ShiftDuration(%q, %q) = %v, want %v", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestSplitDaily(t *testing.T) {
	regular, overtime := SplitDaily(6)
	if !almostEqual(regular, 6) || !almostEqual(overtime, 0) {
		t.Fatalf("SplitDaily(6) = (%v, %v), want (6, 0)", regular, overtime)
	}
	regular, overtime = SplitDaily(8)
	if !almostEqual(regular, 8) || !almostEqual(overtime, 0) {
		t.Fatalf("SplitDaily(8) = (%v, %v), want (8, 0)", regular, overtime)
	}
	regular, overtime = SplitDaily(10.5)
	if !almostEqual(regular, 8) || !almostEqual(overtime, 2.5) {
		t.Fatalf("SplitDaily(10.5) = (%v, %v), want (8, 2.5)", regular, overtime)
	}
}

func TestGrossSalaryIdentity(t *testing.T) {
	gross := GrossSalary(100, 10, 7, 15)
	want := 100*15 + 10*15*1.25 + 7*15*2.0
	if !almostEqual(gross, want) {
		t.Fatalf("GrossSalary = %v, want %v", gross, want)
	}
}

func TestStatusShiftsLandInTheirBuckets(t *testing.T) {
	employees := []Employee{{ID: "e1", FirstName: "Ana", LastName: "Costa", ContractType: ContractPermanent, HourlyRate: 12}}
	shifts := []Shift{
		{EmployeeID: "e1", Day: 0, Status: StatusPaidLeave},
		{EmployeeID: "e1", Day: 1, Status: StatusPublicHoliday},
		{EmployeeID: "e1", Day: 2, Status: "MAL"},
	}

	// November 2025 has four Mondays, Tuesdays and Wednesdays each.
	summaries := BuildMonthSummaries(2025, time.November, employees, shifts)
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	s := summaries[0]
	if !almostEqual(s.RegularHours, 4*7) {
		t.Fatalf("paid leave hours = %v, want 28 regular", s.RegularHours)
	}
	if !almostEqual(s.HolidayHours, 4*7) {
		t.Fatalf("holiday hours = %v, want 28", s.HolidayHours)
	}
	if !almostEqual(s.AbsenceHours, 4*7) {
		t.Fatalf("absence hours = %v, want 28", s.AbsenceHours)
	}
	if !almostEqual(s.TotalHours, s.RegularHours+s.OvertimeHours+s.HolidayHours) {
		t.Fatalf("total hours %v does not equal regular+overtime+holiday", s.TotalHours)
	}
}

func TestFourMondayMonthEndToEnd(t *testing.T) {
	// November 2025: Mondays fall on the 3rd, 10th, 17th and 24th. A recurring
	// Monday 09:00-18:00 shift is 9h worked per occurrence: 8 regular + 1 overtime.
	employees := []Employee{{ID: "e1", FirstName: "Marc", LastName: "Dubois", ContractType: ContractPermanent, HourlyRate: 12}}
	shifts := []Shift{{EmployeeID: "e1", Day: 0, Start: "09:00", End: "18:00"}}

	summaries := BuildMonthSummaries(2025, time.November, employees, shifts)
	s := summaries[0]
	if !almostEqual(s.RegularHours, 32) {
		t.Fatalf("regular hours = %v, want 32", s.RegularHours)
	}
	if !almostEqual(s.OvertimeHours, 4) {
		t.Fatalf("overtime hours = %v, want 4", s.OvertimeHours)
	}
	if !almostEqual(s.GrossSalary, 444.0) {
		t.Fatalf("gross salary = %v, want 444.0", s.GrossSalary)
	}
}

func TestOvernightShiftCountsEightHours(t *testing.T) {
	employees := []Employee{{ID: "e1", FirstName: "Nina", LastName: "Keller", HourlyRate: 12}}
	shifts := []Shift{{EmployeeID: "e1", Day: 4, Start: "22:00", End: "06:00"}}

	summaries := BuildMonthSummaries(2025, time.November, employees, shifts)
	s := summaries[0]
	// November 2025 Fridays: 7, 14, 21, 28.
	if !almostEqual(s.RegularHours, 4*8) {
		t.Fatalf("regular hours = %v, want 32", s.RegularHours)
	}
	if !almostEqual(s.OvertimeHours, 0) {
		t.Fatalf("overtime hours = %v, want 0", s.OvertimeHours)
	}
}

func TestDefaultRateFallback(t *testing.T) {
	employees := []Employee{{ID: "e1", FirstName: "Zero", LastName: "Rate"}}
	shifts := []Shift{{EmployeeID: "e1", Day: 0, Start: "09:00", End: "17:00"}}

	summaries := BuildMonthSummaries(2025, time.November, employees, shifts)
	s := summaries[0]
	if !almostEqual(s.HourlyRate, DefaultHourlyRate) {
		t.Fatalf("rate = %v, want fallback %v", s.HourlyRate, DefaultHourlyRate)
	}
	if !almostEqual(s.GrossSalary, s.RegularHours*DefaultHourlyRate) {
		t.Fatalf("gross salary = %v, want %v", s.GrossSalary, s.RegularHours*DefaultHourlyRate)
	}
}

func TestMalformedWorkedShiftContributesZero(t *testing.T) {
	employees := []Employee{{ID: "e1", FirstName: "Half", LastName: "Open", HourlyRate: 12}}
	shifts := []Shift{{EmployeeID: "e1", Day: 0, Start: "09:00"}}

	summaries := BuildMonthSummaries(2025, time.November, employees, shifts)
	s := summaries[0]
	if !almostEqual(s.TotalHours, 0) || !almostEqual(s.GrossSalary, 0) {
		t.Fatalf("malformed shift contributed hours: total=%v gross=%v", s.TotalHours, s.GrossSalary)
	}
}

func TestVariableElementsOrderAndAmounts(t *testing.T) {
	// Monday 09:00-18:00 (9h) plus a Tuesday public holiday.
	employees := []Employee{{ID: "e1", FirstName: "Lea", LastName: "Moreau", HourlyRate: 10}}
	shifts := []Shift{
		{EmployeeID: "e1", Day: 0, Start: "09:00", End: "18:00"},
		{EmployeeID: "e1", Day: 1, Status: StatusPublicHoliday},
	}

	summaries := BuildMonthSummaries(2025, time.November, employees, shifts)
	s := summaries[0]
	if len(s.Elements) != 4 {
		t.Fatalf("expected 4 elements, got %d: %+v", len(s.Elements), s.Elements)
	}

	wantTypes := []string{ElementOvertimePremium, ElementHolidayPremium, ElementMealVoucher, ElementTransport}
	for i, wantType := range wantTypes {
		if s.Elements[i].Type != wantType {
			t.Fatalf("element %d type = %q, want %q", i, s.Elements[i].Type, wantType)
		}
	}

	// 4 Mondays x 1h overtime at 10/h, +25% premium portion.
	if !almostEqual(s.Elements[0].Amount, 4*1*10*0.25) {
		t.Fatalf("overtime premium = %v, want 10", s.Elements[0].Amount)
	}
	// 4 Tuesdays x 7h holiday at 10/h, +100% premium portion.
	if !almostEqual(s.Elements[1].Amount, 28*10*1.0) {
		t.Fatalf("holiday premium = %v, want 280", s.Elements[1].Amount)
	}
	// 32 regular hours -> ceil(32/7) = 5 work days of vouchers.
	if !almostEqual(s.Elements[2].Amount, 5*MealVoucherRate) {
		t.Fatalf("meal vouchers = %v, want 45", s.Elements[2].Amount)
	}
	if !almostEqual(s.Elements[3].Amount, TransportAllowance) {
		t.Fatalf("transport = %v, want %v", s.Elements[3].Amount, TransportAllowance)
	}
}

func TestTransportAllowanceAlwaysPresent(t *testing.T) {
	employees := []Employee{{ID: "e1", FirstName: "No", LastName: "Shifts", HourlyRate: 12}}
	summaries := BuildMonthSummaries(2025, time.November, employees, nil)
	s := summaries[0]
	if len(s.Elements) != 1 {
		t.Fatalf("expected only the transport element, got %+v", s.Elements)
	}
	if s.Elements[0].Type != ElementTransport || !almostEqual(s.Elements[0].Amount, TransportAllowance) {
		t.Fatalf("transport element = %+v", s.Elements[0])
	}
}

func TestFilterComposesWithAnd(t *testing.T) {
	summaries := []Summary{
		{EmployeeID: "1", EmployeeName: "Alice Martin", ContractType: ContractPermanent},
		{EmployeeID: "2", EmployeeName: "Bob Martin", ContractType: ContractFixedTerm},
		{EmployeeID: "3", EmployeeName: "Carla Santos", ContractType: ContractPermanent},
	}

	got := Filter(summaries, "martin", ContractPermanent)
	if len(got) != 1 || got[0].EmployeeID != "1" {
		t.Fatalf("Filter(martin, CDI) = %+v", got)
	}

	got = Filter(summaries, "", ContractPermanent)
	if len(got) != 2 || got[0].EmployeeID != "1" || got[1].EmployeeID != "3" {
		t.Fatalf("contract filter must preserve order, got %+v", got)
	}

	for _, contract := range []string{"", "all", "ALL"} {
		if got := Filter(summaries, "", contract); len(got) != 3 {
			t.Fatalf("contract %q should be a no-op, got %d results", contract, len(got))
		}
	}

	if got := Filter(summaries, "MARTIN", ""); len(got) != 2 {
		t.Fatalf("search must be case-insensitive, got %+v", got)
	}
}

func TestSumTotalsEqualsFold(t *testing.T) {
	employees := []Employee{
		{ID: "e1", FirstName: "A", LastName: "One", HourlyRate: 12},
		{ID: "e2", FirstName: "B", LastName: "Two", HourlyRate: 15},
	}
	shifts := []Shift{
		{EmployeeID: "e1", Day: 0, Start: "09:00", End: "18:00"},
		{EmployeeID: "e2", Day: 3, Status: StatusPaidLeave},
	}

	summaries := BuildMonthSummaries(2025, time.November, employees, shifts)
	totals := SumTotals(summaries)

	var regular, gross float64
	for _, s := range summaries {
		regular += s.RegularHours
		gross += s.GrossSalary
	}
	if !almostEqual(totals.RegularHours, regular) {
		t.Fatalf("totals regular = %v, fold = %v", totals.RegularHours, regular)
	}
	if !almostEqual(totals.GrossSalary, gross) {
		t.Fatalf("totals gross = %v, fold = %v", totals.GrossSalary, gross)
	}
	if totals.EmployeeCount != len(summaries) {
		t.Fatalf("employee count = %d, want %d", totals.EmployeeCount, len(summaries))
	}
}

func TestBuildMonthSummariesIsDeterministic(t *testing.T) {
	employees := []Employee{
		{ID: "e1", FirstName: "A", LastName: "One", HourlyRate: 12},
		{ID: "e2", FirstName: "B", LastName: "Two", HourlyRate: 15},
	}
	shifts := []Shift{
		{EmployeeID: "e2", Day: 1, Start: "10:00", End: "19:30"},
		{EmployeeID: "e1", Day: 0, Start: "09:00", End: "18:00"},
	}

	first := BuildMonthSummaries(2025, time.November, employees, shifts)
	second := BuildMonthSummaries(2025, time.November, employees, shifts)
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].EmployeeID != second[i].EmployeeID ||
			!almostEqual(first[i].GrossSalary, second[i].GrossSalary) ||
			!almostEqual(first[i].TotalHours, second[i].TotalHours) {
			t.Fatalf("runs diverge at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
	// Output follows roster order, not shift order.
	if first[0].EmployeeID != "e1" || first[1].EmployeeID != "e2" {
		t.Fatalf("summaries out of roster order: %+v", first)
	}
}
