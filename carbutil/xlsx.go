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
	"fmt"
	"math"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/oceanmodel/carbsolve"
)

// ReadInputXLSX reads a sample table from the first sheet of a
// Microsoft Excel file. The first row must hold the column names; empty
// cells become NaN.
func ReadInputXLSX(path string) (map[string][]float64, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("carbsolve: opening input table: %v", err)
	}
	if len(f.Sheets) == 0 {
		return nil, fmt.Errorf("carbsolve: input table %s has no sheets", path)
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) < 2 {
		return nil, fmt.Errorf("carbsolve: input table needs a header row and at least one sample")
	}
	header := make([]string, len(sheet.Rows[0].Cells))
	for i, cell := range sheet.Rows[0].Cells {
		header[i] = strings.TrimSpace(cell.Value)
	}
	cols := make(map[string][]float64, len(header))
	for _, name := range header {
		cols[name] = make([]float64, 0, len(sheet.Rows)-1)
	}
	for ir, row := range sheet.Rows[1:] {
		for ic, name := range header {
			if ic >= len(row.Cells) || strings.TrimSpace(row.Cells[ic].Value) == "" {
				cols[name] = append(cols[name], math.NaN())
				continue
			}
			v, err := row.Cells[ic].Float()
			if err != nil {
				return nil, fmt.Errorf("carbsolve: row %d, column %s: %v", ir+2, name, err)
			}
			cols[name] = append(cols[name], v)
		}
	}
	return cols, nil
}

// WriteResultsXLSX writes the requested result variables to a Microsoft
// Excel file with one sheet and one row per sample.
func WriteResultsXLSX(path string, res *carbsolve.Results, vars []string) error {
	names, cols, err := resultColumns(res, vars)
	if err != nil {
		return err
	}
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("results")
	if err != nil {
		return err
	}
	header := sheet.AddRow()
	header.AddCell().SetString("converged")
	for _, name := range names {
		header.AddCell().SetString(name)
	}
	for i := 0; i < res.N; i++ {
		row := sheet.AddRow()
		row.AddCell().SetBool(res.Converged[i])
		for _, col := range cols {
			row.AddCell().SetFloat(col[i])
		}
	}
	return f.Save(path)
}
