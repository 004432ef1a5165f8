/*
Copyright © 2026 the CarbSolve authors.
This file is part of CarbSolve.

CarbSolve is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

CarbSolve is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with CarbSolve.  If not, see <http://www.gnu.org/licenses/>.
*/

package carbutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oceanmodel/carbsolve"
)

// DefaultOutputVariables is the set of result variables written when
// OutputVariables is empty.
var DefaultOutputVariables = []string{
	"alkalinity", "dic", "pH", "pHTotal", "pHSeawater", "pHFree", "pHNBS",
	"fCO2", "pCO2", "aqueousCO2", "carbonate", "bicarbonate",
	"omegaCalcite", "omegaAragonite", "revelle",
	"gammaDIC", "betaDIC", "omegaDIC", "gammaAlk", "betaAlk", "omegaAlk",
	"isocapQ", "psi",
}

// outConditionVariables are appended when output conditions were
// requested.
var outConditionVariables = []string{
	"outPH", "outPHTotal", "outFCO2", "outPCO2", "outAqueousCO2",
	"outCarbonate", "outBicarbonate", "outOmegaCalcite", "outOmegaAragonite",
	"outRevelle",
}

// ReadInputFile reads a sample table, choosing the format from the file
// extension.
func ReadInputFile(path string) (map[string][]float64, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("carbsolve: opening input table: %v", err)
		}
		defer f.Close()
		return ReadInputCSV(f)
	case ".xlsx":
		return ReadInputXLSX(path)
	default:
		return nil, fmt.Errorf("carbsolve: unsupported input table format %q", ext)
	}
}

// ReadInputCSV parses a sample table with a header row of column names
// into columns. Empty cells become NaN.
func ReadInputCSV(r io.Reader) (map[string][]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("carbsolve: reading input table: %v", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("carbsolve: input table needs a header row and at least one sample")
	}
	header := rows[0]
	cols := make(map[string][]float64, len(header))
	for _, name := range header {
		cols[strings.TrimSpace(name)] = make([]float64, 0, len(rows)-1)
	}
	for ir, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("carbsolve: row %d has %d fields, want %d", ir+2, len(row), len(header))
		}
		for ic, cell := range row {
			name := strings.TrimSpace(header[ic])
			cell = strings.TrimSpace(cell)
			if cell == "" {
				cols[name] = append(cols[name], math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("carbsolve: row %d, column %s: %v", ir+2, name, err)
			}
			cols[name] = append(cols[name], v)
		}
	}
	return cols, nil
}

// resultColumns assembles the output table as an ordered list of named
// columns.
func resultColumns(res *carbsolve.Results, vars []string) ([]string, [][]float64, error) {
	if len(vars) == 0 {
		vars = append([]string(nil), DefaultOutputVariables...)
		if res.Out != nil {
			vars = append(vars, outConditionVariables...)
		}
	}
	cols := make([][]float64, len(vars))
	for i, name := range vars {
		v, err := res.Value(name)
		if err != nil {
			return nil, nil, err
		}
		cols[i] = v
	}
	return vars, cols, nil
}

// WriteResultsFile writes the result table, choosing the format from
// the file extension.
func WriteResultsFile(path string, res *carbsolve.Results, vars []string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("carbsolve: creating result table: %v", err)
		}
		if err := WriteResultsCSV(f, res, vars); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".xlsx":
		return WriteResultsXLSX(path, res, vars)
	default:
		return fmt.Errorf("carbsolve: unsupported result table format %q", ext)
	}
}

// WriteResultsCSV writes the requested result variables as CSV with one
// row per sample. A converged column is always included.
func WriteResultsCSV(w io.Writer, res *carbsolve.Results, vars []string) error {
	names, cols, err := resultColumns(res, vars)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"converged"}, names...)); err != nil {
		return err
	}
	row := make([]string, len(names)+1)
	for i := 0; i < res.N; i++ {
		row[0] = strconv.FormatBool(res.Converged[i])
		for j, col := range cols {
			row[j+1] = strconv.FormatFloat(col[i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteColumnCSV writes a single named column with one row per sample.
func WriteColumnCSV(w io.Writer, name string, col []float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{name}); err != nil {
		return err
	}
	for _, v := range col {
		if err := cw.Write([]string{strconv.FormatFloat(v, 'g', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
