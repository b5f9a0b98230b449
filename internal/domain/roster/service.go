package roster

import (
	"context"
	"strings"

	"backoffice/internal/domain/payroll"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	return s.store.ListRestaurants(ctx)
}

func (s *Service) ListEmployees(ctx context.Context, restaurantID string) ([]Employee, error) {
	return s.store.ListEmployees(ctx, restaurantID)
}

func (s *Service) GetEmployee(ctx context.Context, restaurantID, employeeID string) (Employee, error) {
	return s.store.GetEmployee(ctx, restaurantID, employeeID)
}

func (s *Service) CreateEmployee(ctx context.Context, restaurantID string, input EmployeeInput) (string, error) {
	if err := validateEmployeeInput(&input); err != nil {
		return "", err
	}
	return s.store.CreateEmployee(ctx, restaurantID, input)
}

func (s *Service) UpdateEmployee(ctx context.Context, restaurantID, employeeID string, input EmployeeInput) error {
	if err := validateEmployeeInput(&input); err != nil {
		return err
	}
	return s.store.UpdateEmployee(ctx, restaurantID, employeeID, input)
}

func (s *Service) ArchiveEmployee(ctx context.Context, restaurantID, employeeID string) error {
	return s.store.ArchiveEmployee(ctx, restaurantID, employeeID)
}

func (s *Service) ListShifts(ctx context.Context, restaurantID string) ([]payroll.Shift, error) {
	return s.store.ListShifts(ctx, restaurantID)
}

// CreateShift rejects malformed records up front; the payroll aggregator
// silently skips anything that is neither fully worked nor an absence, so the
// schedule must never hold such rows.
func (s *Service) CreateShift(ctx context.Context, restaurantID string, shift payroll.Shift) (string, error) {
	if err := payroll.ValidateShift(shift); err != nil {
		return "", err
	}
	if _, err := s.store.GetEmployee(ctx, restaurantID, shift.EmployeeID); err != nil {
		return "", err
	}
	return s.store.CreateShift(ctx, restaurantID, shift)
}

func (s *Service) DeleteShift(ctx context.Context, restaurantID, shiftID string) error {
	return s.store.DeleteShift(ctx, restaurantID, shiftID)
}

func validateEmployeeInput(input *EmployeeInput) error {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if input.FirstName == "" || input.LastName == "" {
		return ErrNameRequired
	}
	if input.ContractType == "" {
		input.ContractType = payroll.ContractPermanent
	}
	valid := false
	for _, contract := range payroll.ContractTypes {
		if input.ContractType == contract {
			valid = true
			break
		}
	}
	if !valid {
		return ErrContractTypeInvalid
	}
	if input.HourlyRate != nil && *input.HourlyRate < 0 {
		return ErrRateNegative
	}
	return nil
}
