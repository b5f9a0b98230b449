package roster

import (
	"errors"
	"testing"

	"backoffice/internal/domain/payroll"
)

func TestValidateEmployeeInput(t *testing.T) {
	input := EmployeeInput{FirstName: "  Marc ", LastName: " Dubois "}
	if err := validateEmployeeInput(&input); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if input.FirstName != "Marc" || input.LastName != "Dubois" {
		t.Fatalf("names not trimmed: %+v", input)
	}
	if input.ContractType != payroll.ContractPermanent {
		t.Fatalf("contract type not defaulted: %q", input.ContractType)
	}

	input = EmployeeInput{FirstName: "", LastName: "Dubois"}
	if err := validateEmployeeInput(&input); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("missing first name: %v", err)
	}

	input = EmployeeInput{FirstName: "Marc", LastName: "Dubois", ContractType: "Freelance"}
	if err := validateEmployeeInput(&input); !errors.Is(err, ErrContractTypeInvalid) {
		t.Fatalf("unknown contract type: %v", err)
	}

	negative := -1.0
	input = EmployeeInput{FirstName: "Marc", LastName: "Dubois", HourlyRate: &negative}
	if err := validateEmployeeInput(&input); !errors.Is(err, ErrRateNegative) {
		t.Fatalf("negative rate: %v", err)
	}

	rate := 14.5
	for _, contract := range payroll.ContractTypes {
		input = EmployeeInput{FirstName: "A", LastName: "B", ContractType: contract, HourlyRate: &rate}
		if err := validateEmployeeInput(&input); err != nil {
			t.Fatalf("contract %q rejected: %v", contract, err)
		}
	}
}
