// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// header matches the column names of the original report consumers.
var header = []string{"PDB_ID", "LigandNames", "MinDistance"}

// WriteXLSX writes rows to an xlsx file at path, one header row followed
// by one row per entry, in the given order.
func WriteXLSX(rows []Row, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("building header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("building row cell: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &[]interface{}{r.Entry, r.Ligands, r.MinDistance}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
