// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mmcif reads the _atom_site loop of a PDBx/mmCIF file into an
// ordered Model → Residue → Atom hierarchy. It is deliberately not a
// general CIF parser: residue classification, atom identity, and
// coordinates are the only items the scan needs.
package mmcif

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/ionscan/pkg/types"
)

// Columns the parser consumes. Model number is optional; single-model
// files may omit it.
const (
	colGroup   = "group_PDB"
	colAtomID  = "label_atom_id"
	colCompID  = "label_comp_id"
	colChain   = "auth_asym_id"
	colSeqID   = "auth_seq_id"
	colInsCode = "pdbx_PDB_ins_code"
	colX       = "Cartn_x"
	colY       = "Cartn_y"
	colZ       = "Cartn_z"
	colModel   = "pdbx_PDB_model_num"
)

var requiredCols = []string{colGroup, colAtomID, colCompID, colChain, colSeqID, colX, colY, colZ}

// Parser converts mmCIF content into a Structure. It is stateless; build a
// fresh one per job with New rather than sharing an instance across workers.
type Parser struct{}

// New returns a Parser.
func New() *Parser { return &Parser{} }

// Parse reads r and returns the structure with id as its identifier.
// The result is a pure function of the content: models, residues, and
// atoms keep document order.
func (p *Parser) Parse(id string, r io.Reader) (*types.Structure, error) {
	s := &types.Structure{ID: strings.ToLower(id)}
	modelIndex := make(map[int]*types.Model)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	inLoop := false
	inAtomSite := false
	var cols map[string]int
	var colOrder []string

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			inLoop = false
			inAtomSite = false
		case line == "loop_":
			inLoop = true
			inAtomSite = false
			colOrder = nil
		case strings.HasPrefix(line, "_"):
			if !inLoop {
				continue
			}
			tag := strings.Fields(line)[0]
			if strings.HasPrefix(tag, "_atom_site.") {
				inAtomSite = true
				colOrder = append(colOrder, strings.TrimPrefix(tag, "_atom_site."))
			} else {
				inAtomSite = false
			}
		case strings.HasPrefix(line, "data_") || strings.HasPrefix(line, "loop"):
			inLoop = false
			inAtomSite = false
		default:
			if !inAtomSite {
				continue
			}
			if cols == nil {
				cols = make(map[string]int, len(colOrder))
				for i, name := range colOrder {
					cols[name] = i
				}
				for _, name := range requiredCols {
					if _, ok := cols[name]; !ok {
						return nil, fmt.Errorf("atom_site loop is missing column %s", name)
					}
				}
			}
			if err := p.addRow(s, modelIndex, cols, line, len(colOrder)); err != nil {
				return nil, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading structure file: %w", err)
	}
	if cols == nil {
		return nil, fmt.Errorf("no _atom_site loop found")
	}
	return s, nil
}

// addRow parses one atom_site data row and files the atom under its model
// and residue, creating either on first sight.
func (p *Parser) addRow(s *types.Structure, modelIndex map[int]*types.Model, cols map[string]int, line string, width int) error {
	fields := splitFields(line)
	if len(fields) < width {
		return fmt.Errorf("atom_site row has %d fields, want %d", len(fields), width)
	}

	modelNum := 1
	if i, ok := cols[colModel]; ok {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return fmt.Errorf("parsing model number %q: %w", fields[i], err)
		}
		modelNum = n
	}

	model, ok := modelIndex[modelNum]
	if !ok {
		model = &types.Model{Number: modelNum, Index: make(map[string]int)}
		modelIndex[modelNum] = model
		s.Models = append(s.Models, model)
	}

	name := fields[cols[colCompID]]
	key := residueKey(fields[cols[colChain]], fields[cols[colSeqID]], insCode(fields, cols), name)

	res := model.Residue(key)
	if res == nil {
		res = &types.Residue{
			Key:    key,
			Name:   name,
			Hetero: fields[cols[colGroup]] == "HETATM",
		}
		model.Index[key] = len(model.Residues)
		model.Residues = append(model.Residues, res)
	}

	x, err := strconv.ParseFloat(fields[cols[colX]], 64)
	if err != nil {
		return fmt.Errorf("parsing x coordinate %q: %w", fields[cols[colX]], err)
	}
	y, err := strconv.ParseFloat(fields[cols[colY]], 64)
	if err != nil {
		return fmt.Errorf("parsing y coordinate %q: %w", fields[cols[colY]], err)
	}
	z, err := strconv.ParseFloat(fields[cols[colZ]], 64)
	if err != nil {
		return fmt.Errorf("parsing z coordinate %q: %w", fields[cols[colZ]], err)
	}

	res.Atoms = append(res.Atoms, types.Atom{
		Name: fields[cols[colAtomID]],
		X:    x,
		Y:    y,
		Z:    z,
	})
	return nil
}

// insCode returns the insertion code, with the CIF null markers mapped to "".
func insCode(fields []string, cols map[string]int) string {
	i, ok := cols[colInsCode]
	if !ok {
		return ""
	}
	v := fields[i]
	if v == "?" || v == "." {
		return ""
	}
	return v
}

// residueKey builds the unique within-model residue key.
func residueKey(chain, seq, ins, name string) string {
	return chain + "/" + seq + ins + "/" + name
}

// splitFields splits a CIF data row on whitespace, honoring single and
// double quotes (primed atom names such as "O5'" are quoted in mmCIF).
func splitFields(line string) []string {
	var fields []string
	i := 0
	n := len(line)
	for i < n {
		for i < n && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= n {
			break
		}
		if line[i] == '\'' || line[i] == '"' {
			quote := line[i]
			i++
			start := i
			for i < n && line[i] != quote {
				i++
			}
			fields = append(fields, line[start:i])
			if i < n {
				i++ // closing quote
			}
			continue
		}
		start := i
		for i < n && line[i] != ' ' && line[i] != '\t' {
			i++
		}
		fields = append(fields, line[start:i])
	}
	return fields
}
