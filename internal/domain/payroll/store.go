package payroll

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// ListEmployees returns the active roster in stable roster order.
func (s *Store) ListEmployees(ctx context.Context, restaurantID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name, contract_type, COALESCE(hourly_rate, 0)
    FROM employees
    WHERE restaurant_id = $1 AND status = 'active'
    ORDER BY created_at, id
  `, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var employee Employee
		if err := rows.Scan(&employee.ID, &employee.FirstName, &employee.LastName, &employee.ContractType, &employee.HourlyRate); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (s *Store) ListShifts(ctx context.Context, restaurantID string) ([]Shift, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, day, COALESCE(start_time, ''), COALESCE(end_time, ''), COALESCE(status, '')
    FROM shifts
    WHERE restaurant_id = $1
    ORDER BY employee_id, day
  `, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []Shift
	for rows.Next() {
		var shift Shift
		if err := rows.Scan(&shift.ID, &shift.EmployeeID, &shift.Day, &shift.Start, &shift.End, &shift.Status); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}
