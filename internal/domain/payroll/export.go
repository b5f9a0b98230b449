package payroll

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{
	"Employee", "Contract", "Regular h", "Overtime h", "Holiday h", "Absence h", "Total h", "Rate", "Gross",
}

// WriteCSV renders the month's summaries as a flat register with a totals row.
func WriteCSV(w io.Writer, month Month, summaries []Summary, totals Totals) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, summary := range summaries {
		record := []string{
			summary.EmployeeName,
			summary.ContractType,
			formatHours(summary.RegularHours),
			formatHours(summary.OvertimeHours),
			formatHours(summary.HolidayHours),
			formatHours(summary.AbsenceHours),
			formatHours(summary.TotalHours),
			formatMoney(summary.HourlyRate),
			formatMoney(summary.GrossSalary),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	totalRow := []string{
		"Total (" + month.String() + ")",
		"",
		formatHours(totals.RegularHours),
		formatHours(totals.OvertimeHours),
		formatHours(totals.HolidayHours),
		formatHours(totals.AbsenceHours),
		formatHours(totals.TotalHours),
		"",
		formatMoney(totals.GrossSalary),
	}
	if err := writer.Write(totalRow); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX renders the same register as a single-sheet workbook.
func WriteXLSX(w io.Writer, month Month, summaries []Summary, totals Totals) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	sheet := "Payroll " + month.String()
	index, err := file.NewSheet(sheet)
	if err != nil {
		return err
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}

	for i, summary := range summaries {
		values := []any{
			summary.EmployeeName,
			summary.ContractType,
			summary.RegularHours,
			summary.OvertimeHours,
			summary.HolidayHours,
			summary.AbsenceHours,
			summary.TotalHours,
			summary.HourlyRate,
			summary.GrossSalary,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	totalsRow := len(summaries) + 2
	totalsValues := []any{
		"Total",
		"",
		totals.RegularHours,
		totals.OvertimeHours,
		totals.HolidayHours,
		totals.AbsenceHours,
		totals.TotalHours,
		"",
		totals.GrossSalary,
	}
	for col, value := range totalsValues {
		cell, err := excelize.CoordinatesToCellName(col+1, totalsRow)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}

	return file.Write(w)
}

// WritePDF renders a printable payroll sheet, one line per employee plus the
// variable pay elements underneath each line.
func WritePDF(w io.Writer, month Month, summaries []Summary, totals Totals) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Payroll preparation - "+month.String())
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 9)
	widths := []float64{55, 22, 24, 24, 24, 24, 24, 20, 28}
	for i, title := range exportHeader {
		pdf.CellFormat(widths[i], 7, title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, summary := range summaries {
		cells := []string{
			summary.EmployeeName,
			summary.ContractType,
			formatHours(summary.RegularHours),
			formatHours(summary.OvertimeHours),
			formatHours(summary.HolidayHours),
			formatHours(summary.AbsenceHours),
			formatHours(summary.TotalHours),
			formatMoney(summary.HourlyRate),
			formatMoney(summary.GrossSalary),
		}
		for i, value := range cells {
			pdf.CellFormat(widths[i], 6, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		for _, element := range summary.Elements {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.CellFormat(widths[0], 5, "  "+element.Description, "", 0, "L", false, 0, "")
			pdf.CellFormat(30, 5, formatMoney(element.Amount), "", 0, "L", false, 0, "")
			pdf.Ln(-1)
			pdf.SetFont("Helvetica", "", 9)
		}
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(widths[0]+widths[1], 7, "Total", "1", 0, "L", false, 0, "")
	totalsCells := []string{
		formatHours(totals.RegularHours),
		formatHours(totals.OvertimeHours),
		formatHours(totals.HolidayHours),
		formatHours(totals.AbsenceHours),
		formatHours(totals.TotalHours),
		"",
		formatMoney(totals.GrossSalary),
	}
	for i, value := range totalsCells {
		pdf.CellFormat(widths[i+2], 7, value, "1", 0, "L", false, 0, "")
	}

	return pdf.Output(w)
}

func formatHours(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func formatMoney(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
