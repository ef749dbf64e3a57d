// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"testing"
	"time"

	"github.com/pdiddy/ionscan/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.ReportConfig{DBDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRecordAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rows := []Row{
		{Entry: "2DEF", Ligands: "SO4:1.05", MinDistance: 1.05},
		{Entry: "1ABC", Ligands: "GOL:3.00", MinDistance: 3.00},
	}
	runID, err := s.Record(ctx, Run{
		Started:    time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Ion:        "ZN",
		Radius:     5.0,
		Candidates: 10,
	}, rows)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	runs, err := s.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs() error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	r := runs[0]
	if r.ID != runID || r.Ion != "ZN" || r.Radius != 5.0 || r.Candidates != 10 || r.Reported != 2 {
		t.Errorf("run = %+v", r)
	}
	if r.Started.Year() != 2026 {
		t.Errorf("Started = %v", r.Started)
	}

	got, err := s.HitRows(ctx, runID)
	if err != nil {
		t.Fatalf("HitRows() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("hit rows = %d, want 2", len(got))
	}
	// Ascending by min distance.
	if got[0].Entry != "2DEF" || got[1].Entry != "1ABC" {
		t.Errorf("hit order = [%s %s], want [2DEF 1ABC]", got[0].Entry, got[1].Entry)
	}
}

func TestStoreMultipleRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Record(ctx, Run{Started: time.Now(), Ion: "ZN", Radius: 5.0}, nil)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	second, err := s.Record(ctx, Run{Started: time.Now(), Ion: "FE", Radius: 3.5},
		[]Row{{Entry: "1ABC", Ligands: "GOL:2.00", MinDistance: 2.00}})
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	runs, err := s.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs() error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	// Most recent first.
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("run order = [%d %d], want [%d %d]", runs[0].ID, runs[1].ID, second, first)
	}

	rows, err := s.HitRows(ctx, first)
	if err != nil {
		t.Fatalf("HitRows() error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("first run rows = %d, want 0", len(rows))
	}
}
