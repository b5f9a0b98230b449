package payroll

import (
	"fmt"
	"time"
)

type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth accepts a YYYY-MM month identifier.
func ParseMonth(value string) (Month, error) {
	parsed, err := time.Parse("2006-01", value)
	if err != nil {
		return Month{}, ErrMonthInvalid
	}
	return Month{Year: parsed.Year(), Month: parsed.Month()}, nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
