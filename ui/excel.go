package ui

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gopower/app"
)

const sweepSheet = "Power"

// buildSweepWorkbook renders a sweep result as an .xlsx table, highlighting
// rows that reach the adequacy threshold in green the way the on-page table
// does. The caller owns the returned file and must Close it.
func buildSweepWorkbook(result *app.SweepResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sweepSheet); err != nil {
		f.Close()
		return nil, err
	}

	headers := []string{"Effect Size", "Band", "Power", "Adequate"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sweepSheet, cell, h); err != nil {
			f.Close()
			return nil, err
		}
	}

	adequateStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "008000", Bold: true},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, row := range result.Rows {
		rowNum := i + 2
		values := []interface{}{
			fmt.Sprintf("%.2f", row.EffectSize),
			string(row.Band),
			fmt.Sprintf("%.3f", row.Power),
			row.Adequate,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, rowNum)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(sweepSheet, cell, v); err != nil {
				f.Close()
				return nil, err
			}
		}
		if row.Adequate {
			start, _ := excelize.CoordinatesToCellName(1, rowNum)
			end, _ := excelize.CoordinatesToCellName(len(values), rowNum)
			if err := f.SetCellStyle(sweepSheet, start, end, adequateStyle); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	summaryRow := len(result.Rows) + 3
	summary := fmt.Sprintf("min %.3f / mean %.3f / max %.3f, %d of %d cells at or above 0.80",
		result.Summary.MinPower, result.Summary.MeanPower, result.Summary.MaxPower,
		result.Summary.AdequateCells, len(result.Rows))
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	if err := f.SetCellValue(sweepSheet, cell, summary); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}
