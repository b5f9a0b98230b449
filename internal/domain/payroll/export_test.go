package payroll

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func TestWriteCSV(t *testing.T) {
	employees := []Employee{{ID: "e1", FirstName: "Marc", LastName: "Dubois", ContractType: ContractPermanent, HourlyRate: 12}}
	shifts := []Shift{{EmployeeID: "e1", Day: 0, Start: "09:00", End: "18:00"}}
	month := Month{Year: 2025, Month: time.November}

	summaries := BuildMonthSummaries(month.Year, month.Month, employees, shifts)
	totals := SumTotals(summaries)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, month, summaries, totals); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back csv: %v", err)
	}
	// Header + one employee + totals row.
	if len(records) != 3 {
		t.Fatalf("expected 3 csv rows, got %d", len(records))
	}
	if records[0][0] != "Employee" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][0] != "Marc Dubois" || records[1][1] != ContractPermanent {
		t.Fatalf("employee row = %v", records[1])
	}
	if !strings.Contains(records[2][0], "2025-11") {
		t.Fatalf("totals row should name the month: %v", records[2])
	}
	if records[2][len(records[2])-1] != "444.00" {
		t.Fatalf("totals gross = %q, want 444.00", records[2][len(records[2])-1])
	}
}

func TestWriteXLSXProducesWorkbook(t *testing.T) {
	month := Month{Year: 2025, Month: time.November}
	summaries := []Summary{{
		EmployeeID:   "e1",
		EmployeeName: "Ana Costa",
		ContractType: ContractFixedTerm,
		RegularHours: 140,
		TotalHours:   140,
		HourlyRate:   13,
		GrossSalary:  1820,
	}}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, month, summaries, SumTotals(summaries)); err != nil {
		t.Fatalf("WriteXLSX error: %v", err)
	}
	// XLSX files are zip archives; PK is the magic.
	if buf.Len() == 0 || buf.Bytes()[0] != 'P' || buf.Bytes()[1] != 'K' {
		t.Fatalf("output does not look like an xlsx archive (%d bytes)", buf.Len())
	}
}

func TestWritePDFProducesDocument(t *testing.T) {
	month := Month{Year: 2025, Month: time.November}
	summaries := []Summary{{
		EmployeeID:   "e1",
		EmployeeName: "Ana Costa",
		ContractType: ContractExtra,
		RegularHours: 60,
		TotalHours:   60,
		HourlyRate:   14,
		GrossSalary:  840,
		Elements:     []VariableElement{{Type: ElementTransport, Amount: TransportAllowance, Description: "Monthly transport allowance"}},
	}}

	var buf bytes.Buffer
	if err := WritePDF(&buf, month, summaries, SumTotals(summaries)); err != nil {
		t.Fatalf("WritePDF error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output does not look like a pdf (%d bytes)", buf.Len())
	}
}
