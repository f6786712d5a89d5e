package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// WriteXLSX writes rows to a single-sheet workbook at path. The first row
// is styled as a header.
func WriteXLSX(path, sheet string, rows [][]any) error {
	if len(rows) == 0 {
		return errors.New("nothing to export")
	}
	if sheet == "" {
		sheet = defaultSheet
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating export directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	if sheet != defaultSheet {
		_ = f.DeleteSheet(defaultSheet)
	}
	if index, err := f.GetSheetIndex(sheet); err == nil {
		f.SetActiveSheet(index)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+1, err)
		}
	}

	header, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, "A1", lastCol+"1", header)
	_ = f.SetColWidth(sheet, "A", lastCol, 20)
	_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}
