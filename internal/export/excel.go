package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/summary"
)

// Sheet names in the summary workbook.
const (
	SheetMonthlyMean = "Monthly Mean"
	SheetMonthlySum  = "Monthly Sum"
)

// WriteSummaryWorkbook writes the mean and sum summaries as two sheets of an
// Excel workbook.
func WriteSummaryWorkbook(path string, mean, sum *summary.Monthly) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, SheetMonthlyMean, mean); err != nil {
		return err
	}
	if err := writeSummarySheet(f, SheetMonthlySum, sum); err != nil {
		return err
	}
	// Drop the default sheet created by NewFile.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, m *summary.Monthly) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	header := append([]string{"Month"}, m.Columns...)
	for ci, name := range header {
		cell, err := excelize.CoordinatesToCellName(ci+1, 1)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("write header %s: %w", sheet, err)
		}
	}
	for ri, row := range m.Rows {
		cell, err := excelize.CoordinatesToCellName(1, ri+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, row.Month); err != nil {
			return fmt.Errorf("write month cell: %w", err)
		}
		for ci, col := range m.Columns {
			v, ok := row.Values[col]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(ci+2, ri+2)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write value cell: %w", err)
			}
		}
	}
	return nil
}
