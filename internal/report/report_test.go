// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/ionscan/pkg/types"
)

func hitResult(entry string, hits ...types.LigandHit) types.ScanResult {
	return types.ScanResult{Entry: entry, Outcome: types.OutcomeHit, Hits: hits}
}

func TestRowsSortedByMinDistance(t *testing.T) {
	results := []types.ScanResult{
		hitResult("3GHI", types.LigandHit{Residue: "EDO", Distance: 4.10}),
		hitResult("1ABC", types.LigandHit{Residue: "GOL", Distance: 3.00}, types.LigandHit{Residue: "ACT", Distance: 2.20}),
		hitResult("2DEF", types.LigandHit{Residue: "SO4", Distance: 1.05}),
	}

	got := Rows(results)
	want := []Row{
		{Entry: "2DEF", Ligands: "SO4:1.05", MinDistance: 1.05},
		{Entry: "1ABC", Ligands: "GOL:3.00, ACT:2.20", MinDistance: 2.20},
		{Entry: "3GHI", Ligands: "EDO:4.10", MinDistance: 4.10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rows() = %+v, want %+v", got, want)
	}
}

func TestRowsTieBreakByEntry(t *testing.T) {
	results := []types.ScanResult{
		hitResult("2DEF", types.LigandHit{Residue: "GOL", Distance: 3.00}),
		hitResult("1ABC", types.LigandHit{Residue: "EDO", Distance: 3.00}),
	}

	got := Rows(results)
	if got[0].Entry != "1ABC" || got[1].Entry != "2DEF" {
		t.Errorf("tie order = [%s %s], want [1ABC 2DEF]", got[0].Entry, got[1].Entry)
	}
}

func TestRowsSkipsNonHits(t *testing.T) {
	results := []types.ScanResult{
		hitResult("1ABC", types.LigandHit{Residue: "GOL", Distance: 3.00}),
		{Entry: "2DEF", Outcome: types.OutcomeNoHit},
		{Entry: "3GHI", Outcome: types.OutcomeFailed, Kind: types.FailureParse},
	}

	got := Rows(results)
	if len(got) != 1 || got[0].Entry != "1ABC" {
		t.Errorf("Rows() = %+v, want only 1ABC", got)
	}
}

func TestFormatTable(t *testing.T) {
	rows := []Row{
		{Entry: "2DEF", Ligands: "SO4:1.05", MinDistance: 1.05},
		{Entry: "1ABC", Ligands: "GOL:3.00", MinDistance: 3.00},
	}

	var buf bytes.Buffer
	FormatTable(rows, &buf)
	out := buf.String()

	for _, want := range []string{"2DEF", "1ABC", "SO4:1.05", "GOL:3.00", "2 entries"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	if !strings.Contains(buf.String(), "No hits found.") {
		t.Errorf("empty table output = %q", buf.String())
	}
}
