package roster

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"backoffice/internal/domain/payroll"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, created_at FROM restaurants ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []Restaurant
	for rows.Next() {
		var restaurant Restaurant
		if err := rows.Scan(&restaurant.ID, &restaurant.Name, &restaurant.CreatedAt); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}

func (s *Store) ListEmployees(ctx context.Context, restaurantID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, restaurant_id, first_name, last_name, contract_type, hourly_rate, status, created_at, updated_at
    FROM employees
    WHERE restaurant_id = $1
    ORDER BY created_at, id
  `, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var employee Employee
		if err := rows.Scan(&employee.ID, &employee.RestaurantID, &employee.FirstName, &employee.LastName,
			&employee.ContractType, &employee.HourlyRate, &employee.Status, &employee.CreatedAt, &employee.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, restaurantID, employeeID string) (Employee, error) {
	var employee Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, restaurant_id, first_name, last_name, contract_type, hourly_rate, status, created_at, updated_at
    FROM employees
    WHERE restaurant_id = $1 AND id = $2
  `, restaurantID, employeeID).Scan(&employee.ID, &employee.RestaurantID, &employee.FirstName, &employee.LastName,
		&employee.ContractType, &employee.HourlyRate, &employee.Status, &employee.CreatedAt, &employee.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	return employee, err
}

func (s *Store) CreateEmployee(ctx context.Context, restaurantID string, input EmployeeInput) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (restaurant_id, first_name, last_name, contract_type, hourly_rate)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, restaurantID, input.FirstName, input.LastName, input.ContractType, input.HourlyRate).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, restaurantID, employeeID string, input EmployeeInput) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $1, last_name = $2, contract_type = $3, hourly_rate = $4, updated_at = now()
    WHERE restaurant_id = $5 AND id = $6
  `, input.FirstName, input.LastName, input.ContractType, input.HourlyRate, restaurantID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) ArchiveEmployee(ctx context.Context, restaurantID, employeeID string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees SET status = 'archived', updated_at = now()
    WHERE restaurant_id = $1 AND id = $2
  `, restaurantID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) ListShifts(ctx context.Context, restaurantID string) ([]payroll.Shift, error) {
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

	var shifts []payroll.Shift
	for rows.Next() {
		var shift payroll.Shift
		if err := rows.Scan(&shift.ID, &shift.EmployeeID, &shift.Day, &shift.Start, &shift.End, &shift.Status); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	return shifts, rows.Err()
}

func (s *Store) CreateShift(ctx context.Context, restaurantID string, shift payroll.Shift) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO shifts (restaurant_id, employee_id, day, start_time, end_time, status)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, restaurantID, shift.EmployeeID, shift.Day, nullIfEmpty(shift.Start), nullIfEmpty(shift.End), nullIfEmpty(shift.Status)).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) DeleteShift(ctx context.Context, restaurantID, shiftID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM shifts WHERE restaurant_id = $1 AND id = $2", restaurantID, shiftID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrShiftNotFound
	}
	return nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
