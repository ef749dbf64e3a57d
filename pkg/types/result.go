// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// LigandHit records one qualifying residue: its name and the distance (in
// Angstroms, rounded to two decimals) of the first atom pair found within
// the cut-off radius of an ion atom.
type LigandHit struct {
	Residue  string
	Distance float64
}

// String renders the hit as "NAME:D.DD".
func (h LigandHit) String() string {
	return fmt.Sprintf("%s:%.2f", h.Residue, h.Distance)
}

// FailureKind classifies why a scan job failed.
type FailureKind string

const (
	FailureFetch FailureKind = "fetch"
	FailureParse FailureKind = "parse"
	FailureScan  FailureKind = "scan"
)

// Outcome is the per-job result variant. Failed jobs and jobs without
// qualifying ligands are both dropped from the final report, but the
// orchestrator sees them as distinct outcomes.
type Outcome int

const (
	// OutcomeHit means the entry has at least one qualifying ligand.
	OutcomeHit Outcome = iota
	// OutcomeNoHit means the entry parsed cleanly but produced no hits.
	OutcomeNoHit
	// OutcomeFailed means the job errored (fetch, parse, or scan).
	OutcomeFailed
)

// ScanResult is the outcome of one identifier's scan job.
type ScanResult struct {
	// Entry is the identifier in display (uppercase) form.
	Entry string

	Outcome Outcome

	// Kind is set when Outcome is OutcomeFailed.
	Kind FailureKind

	// Hits lists qualifying ligands in scan order. Set when Outcome is OutcomeHit.
	Hits []LigandHit
}

// Ligands renders the hit list as a single "NAME:D.DD, NAME:D.DD" string.
func (r ScanResult) Ligands() string {
	parts := make([]string, len(r.Hits))
	for i, h := range r.Hits {
		parts[i] = h.String()
	}
	return strings.Join(parts, ", ")
}

// MinDistance returns the smallest hit distance, or 0 when there are no hits.
func (r ScanResult) MinDistance() float64 {
	if len(r.Hits) == 0 {
		return 0
	}
	min := r.Hits[0].Distance
	for _, h := range r.Hits[1:] {
		if h.Distance < min {
			min = h.Distance
		}
	}
	return min
}
