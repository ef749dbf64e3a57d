// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders scan results as a spreadsheet or text table and
// persists runs to a local SQLite database.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/ionscan/pkg/types"
)

// Row is one report line: the entry in display case, the rendered ligand
// list, and the minimum hit distance.
type Row struct {
	Entry       string
	Ligands     string
	MinDistance float64
}

// Rows converts hit results to report rows sorted ascending by minimum
// distance. Ties sort by entry so the output is deterministic regardless
// of job completion order.
func Rows(results []types.ScanResult) []Row {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		if r.Outcome != types.OutcomeHit {
			continue
		}
		rows = append(rows, Row{
			Entry:       r.Entry,
			Ligands:     r.Ligands(),
			MinDistance: r.MinDistance(),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].MinDistance != rows[j].MinDistance {
			return rows[i].MinDistance < rows[j].MinDistance
		}
		return rows[i].Entry < rows[j].Entry
	})
	return rows
}

// FormatTable writes rows as a human-readable table to w.
func FormatTable(rows []Row, w io.Writer) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No hits found.")
		return
	}

	fmt.Fprintf(w, "%-8s  %-8s  %s\n", "PDB_ID", "MinDist", "Ligands")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, r := range rows {
		ligands := r.Ligands
		if len(ligands) > 42 {
			ligands = ligands[:39] + "..."
		}
		fmt.Fprintf(w, "%-8s  %-8.2f  %s\n", r.Entry, r.MinDistance, ligands)
	}
	fmt.Fprintf(w, "\n%d entries\n", len(rows))
}
