package payroll

type Employee struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	ContractType string  `json:"contractType"`
	HourlyRate   float64 `json:"hourlyRate"`
}

func (e Employee) DisplayName() string {
	return e.FirstName + " " + e.LastName
}

// Shift is one slot on the weekly schedule grid. A worked shift carries
// Start/End and an empty Status; an absence shift carries a Status and its
// Start/End are ignored.
type Shift struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Day        int    `json:"day"`
	Start      string `json:"start,omitempty"`
	End        string `json:"end,omitempty"`
	Status     string `json:"status,omitempty"`
}

func (s Shift) IsAbsence() bool {
	return s.Status != ""
}

type VariableElement struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

// Summary is recomputed on demand for one employee and one month. It is never
// persisted; every aggregation run builds a fresh set.
type Summary struct {
	EmployeeID    string            `json:"employeeId"`
	EmployeeName  string            `json:"employeeName"`
	ContractType  string            `json:"contractType"`
	RegularHours  float64           `json:"regularHours"`
	OvertimeHours float64           `json:"overtimeHours"`
	HolidayHours  float64           `json:"holidayHours"`
	AbsenceHours  float64           `json:"absenceHours"`
	TotalHours    float64           `json:"totalHours"`
	HourlyRate    float64           `json:"hourlyRate"`
	GrossSalary   float64           `json:"grossSalary"`
	Elements      []VariableElement `json:"elements"`
}

type Totals struct {
	RegularHours  float64 `json:"regularHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	HolidayHours  float64 `json:"holidayHours"`
	AbsenceHours  float64 `json:"absenceHours"`
	TotalHours    float64 `json:"totalHours"`
	GrossSalary   float64 `json:"grossSalary"`
	EmployeeCount int     `json:"employeeCount"`
}
