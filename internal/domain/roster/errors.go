package roster

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrShiftNotFound       = errors.New("shift not found")
	ErrNameRequired        = errors.New("first and last name are required")
	ErrContractTypeInvalid = errors.New("unknown contract type")
	ErrRateNegative        = errors.New("hourly rate cannot be negative")
)
