// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mmcif

import (
	"strings"
	"testing"
)

const sampleCIF = `data_test
#
_entry.id TEST
#
loop_
_atom_site.group_PDB
_atom_site.id
_atom_site.label_atom_id
_atom_site.label_comp_id
_atom_site.auth_asym_id
_atom_site.auth_seq_id
_atom_site.pdbx_PDB_ins_code
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
_atom_site.pdbx_PDB_model_num
ATOM   1 CA    ALA A 1   ? 1.000 2.000 3.000 1
ATOM   2 "O5'" ALA A 1   ? 1.500 2.500 3.500 1
HETATM 3 ZN    ZN  A 101 ? 0.000 0.000 0.000 1
HETATM 4 C1    GOL A 102 ? 3.000 0.000 0.000 1
HETATM 5 O     HOH A 201 ? 1.000 0.000 0.000 1
HETATM 6 ZN    ZN  A 101 ? 5.000 5.000 5.000 2
#
`

func TestParseSample(t *testing.T) {
	s, err := New().Parse("TEST", strings.NewReader(sampleCIF))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if s.ID != "test" {
		t.Errorf("ID = %q, want lowercase %q", s.ID, "test")
	}
	if len(s.Models) != 2 {
		t.Fatalf("models = %d, want 2", len(s.Models))
	}

	m1 := s.Models[0]
	if m1.Number != 1 {
		t.Errorf("model 1 number = %d, want 1", m1.Number)
	}
	if len(m1.Residues) != 4 {
		t.Fatalf("model 1 residues = %d, want 4", len(m1.Residues))
	}

	// Document order: ALA, ZN, GOL, HOH.
	wantNames := []string{"ALA", "ZN", "GOL", "HOH"}
	for i, want := range wantNames {
		if got := m1.Residues[i].Name; got != want {
			t.Errorf("residue %d name = %q, want %q", i, got, want)
		}
	}

	ala := m1.Residues[0]
	if ala.Hetero {
		t.Error("ALA classified as heteroatom residue")
	}
	if len(ala.Atoms) != 2 {
		t.Fatalf("ALA atoms = %d, want 2", len(ala.Atoms))
	}
	if ala.Atoms[0].Name != "CA" || ala.Atoms[0].X != 1.0 || ala.Atoms[0].Y != 2.0 || ala.Atoms[0].Z != 3.0 {
		t.Errorf("CA atom = %+v, want CA at (1,2,3)", ala.Atoms[0])
	}
	// Quoted atom names lose their quotes.
	if ala.Atoms[1].Name != "O5'" {
		t.Errorf("quoted atom name = %q, want O5'", ala.Atoms[1].Name)
	}

	for _, i := range []int{1, 2, 3} {
		if !m1.Residues[i].Hetero {
			t.Errorf("%s not classified as heteroatom residue", m1.Residues[i].Name)
		}
	}

	m2 := s.Models[1]
	if m2.Number != 2 {
		t.Errorf("model 2 number = %d, want 2", m2.Number)
	}
	if len(m2.Residues) != 1 || m2.Residues[0].Name != "ZN" {
		t.Fatalf("model 2 residues = %+v, want single ZN", m2.Residues)
	}
	if got := m2.Residues[0].Atoms[0]; got.X != 5.0 {
		t.Errorf("model 2 ZN x = %v, want 5.0", got.X)
	}
}

func TestParseResidueLookup(t *testing.T) {
	s, err := New().Parse("test", strings.NewReader(sampleCIF))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	m := s.Models[0]
	res := m.Residue("A/101/ZN")
	if res == nil {
		t.Fatal("Residue(A/101/ZN) = nil")
	}
	if res.Name != "ZN" || !res.Hetero {
		t.Errorf("lookup = %+v, want hetero ZN", res)
	}
	if m.Residue("Z/999/XXX") != nil {
		t.Error("lookup of absent residue returned non-nil")
	}
}

func TestParseNoModelColumn(t *testing.T) {
	// Single-model files may omit pdbx_PDB_model_num; everything lands in
	// model 1.
	content := `data_x
loop_
_atom_site.group_PDB
_atom_site.label_atom_id
_atom_site.label_comp_id
_atom_site.auth_asym_id
_atom_site.auth_seq_id
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
HETATM ZN ZN A 1 0.0 0.0 0.0
#
`
	s, err := New().Parse("x", strings.NewReader(content))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(s.Models) != 1 || s.Models[0].Number != 1 {
		t.Fatalf("models = %+v, want single model 1", s.Models)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty input", ""},
		{"no atom_site loop", "data_x\n_entry.id X\n#\n"},
		{
			"missing required column",
			"data_x\nloop_\n_atom_site.group_PDB\n_atom_site.label_comp_id\nHETATM ZN\n#\n",
		},
		{
			"bad coordinate",
			`data_x
loop_
_atom_site.group_PDB
_atom_site.label_atom_id
_atom_site.label_comp_id
_atom_site.auth_asym_id
_atom_site.auth_seq_id
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
HETATM ZN ZN A 1 garbage 0.0 0.0
#
`,
		},
		{
			"truncated row",
			`data_x
loop_
_atom_site.group_PDB
_atom_site.label_atom_id
_atom_site.label_comp_id
_atom_site.auth_asym_id
_atom_site.auth_seq_id
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
HETATM ZN ZN
#
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New().Parse("x", strings.NewReader(tt.content)); err == nil {
				t.Error("Parse() error = nil, want non-nil")
			}
		})
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "HETATM 3 ZN", []string{"HETATM", "3", "ZN"}},
		{"double quoted", `ATOM "O5'" ALA`, []string{"ATOM", "O5'", "ALA"}},
		{"single quoted", `ATOM 'C A' X`, []string{"ATOM", "C A", "X"}},
		{"tabs and runs of spaces", "A \t B   C", []string{"A", "B", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitFields(tt.line)
			if len(got) != len(tt.want) {
				t.Fatalf("splitFields(%q) = %v, want %v", tt.line, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
