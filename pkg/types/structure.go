// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Atom is a single atom inside a residue: its mmCIF atom name and
// Cartesian coordinates in Angstroms.
type Atom struct {
	Name string
	X    float64
	Y    float64
	Z    float64
}

// Residue groups the atoms of one residue instance within a model.
// Hetero is true for HETATM rows (ions, ligands, solvent); false for the
// polymer backbone. Atoms keep the order they appear in the source file.
type Residue struct {
	// Key identifies the residue uniquely within its model
	// (chain, sequence number, insertion code, and name).
	Key string

	// Name is the chemical component name (e.g. "ZN", "GOL", "HOH").
	Name string

	// Hetero marks heteroatom-bearing residues.
	Hetero bool

	Atoms []Atom
}

// Model is one coordinate frame of a structure. Residues keep document
// order; Index maps a residue key to its position in Residues.
type Model struct {
	// Number is the mmCIF model number (pdbx_PDB_model_num).
	Number int

	Residues []*Residue
	Index    map[string]int
}

// Residue returns the residue with the given key, or nil.
func (m *Model) Residue(key string) *Residue {
	if i, ok := m.Index[key]; ok {
		return m.Residues[i]
	}
	return nil
}

// Structure is one parsed entry: its identifier and models in document
// order. A Structure exclusively owns its models, residues, and atoms;
// nothing is shared across records.
type Structure struct {
	// ID is the entry identifier, stored lowercase.
	ID string

	Models []*Model
}
