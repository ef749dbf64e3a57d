// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan finds heteroatom residues near metal ion atoms and runs the
// per-entry jobs across a worker pool.
package scan

import (
	"math"

	"github.com/pdiddy/ionscan/pkg/types"
)

// solvent is the residue name excluded from ligand hits alongside the ion itself.
const solvent = "HOH"

// FindLigands scans each model of s independently and returns the hits
// concatenated in model order. A hit is a heteroatom residue, named neither
// ion nor "HOH", with at least one atom within radius (inclusive) of an ion
// atom in the same model. Each residue is reported at most once per model,
// at the distance of the first qualifying pair in traversal order
// (ion atoms outer, residue atoms inner, both in document order) — not the
// minimum over all pairs.
func FindLigands(s *types.Structure, ion string, radius float64) []types.LigandHit {
	var hits []types.LigandHit
	for _, model := range s.Models {
		ionAtoms := collectIonAtoms(model, ion)
		if len(ionAtoms) == 0 {
			continue
		}
		for _, res := range model.Residues {
			if !res.Hetero || res.Name == ion || res.Name == solvent {
				continue
			}
			if d, ok := firstContact(ionAtoms, res.Atoms, radius); ok {
				hits = append(hits, types.LigandHit{Residue: res.Name, Distance: round2(d)})
			}
		}
	}
	return hits
}

// collectIonAtoms gathers the atoms of heteroatom residues named ion, in
// document order.
func collectIonAtoms(model *types.Model, ion string) []types.Atom {
	var atoms []types.Atom
	for _, res := range model.Residues {
		if res.Hetero && res.Name == ion {
			atoms = append(atoms, res.Atoms...)
		}
	}
	return atoms
}

// firstContact returns the distance of the first ion/residue atom pair
// within radius, inclusive. The first qualifying pair terminates the search.
func firstContact(ionAtoms, resAtoms []types.Atom, radius float64) (float64, bool) {
	for _, ion := range ionAtoms {
		for _, a := range resAtoms {
			if d := distance(ion, a); d <= radius {
				return d, true
			}
		}
	}
	return 0, false
}

// distance is the Euclidean distance between atom centers.
func distance(a, b types.Atom) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// round2 rounds to two decimal places.
func round2(d float64) float64 {
	return math.Round(d*100) / 100
}
