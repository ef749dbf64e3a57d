// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	rows := []Row{
		{Entry: "2DEF", Ligands: "SO4:1.05", MinDistance: 1.05},
		{Entry: "1ABC", Ligands: "GOL:3.00, ACT:2.20", MinDistance: 2.20},
	}

	path := filepath.Join(t.TempDir(), "hits.xlsx")
	if err := WriteXLSX(rows, path); err != nil {
		t.Fatalf("WriteXLSX() error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening spreadsheet: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("sheet has %d rows, want 3 (header + 2)", len(got))
	}

	wantHeader := []string{"PDB_ID", "LigandNames", "MinDistance"}
	for i, want := range wantHeader {
		if got[0][i] != want {
			t.Errorf("header[%d] = %q, want %q", i, got[0][i], want)
		}
	}
	if got[1][0] != "2DEF" || got[1][1] != "SO4:1.05" {
		t.Errorf("row 1 = %v", got[1])
	}
	if got[2][0] != "1ABC" || got[2][1] != "GOL:3.00, ACT:2.20" {
		t.Errorf("row 2 = %v", got[2])
	}
}

func TestWriteXLSXEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := WriteXLSX(nil, path); err != nil {
		t.Fatalf("WriteXLSX() error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening spreadsheet: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("sheet has %d rows, want header only", len(got))
	}
}
