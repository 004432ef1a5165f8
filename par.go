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

package carbsolve

import "fmt"

// Version gives the CarbSolve version number.
const Version = "0.1.0"

// ParType identifies which role a measured value plays in the carbonate
// system. The numeric codes follow the traditional CO2SYS convention.
type ParType int

const (
	// ParAlkalinity is total alkalinity [μmol kg-1].
	ParAlkalinity ParType = iota + 1
	// ParDIC is total dissolved inorganic carbon [μmol kg-1].
	ParDIC
	// ParPH is pH on the scale given by Options.Scale.
	ParPH
	// ParPCO2 is the CO2 partial pressure [μatm].
	ParPCO2
	// ParFCO2 is the CO2 fugacity [μatm].
	ParFCO2
	// ParCarbonate is the carbonate ion concentration [μmol kg-1].
	ParCarbonate
	// ParBicarbonate is the bicarbonate ion concentration [μmol kg-1].
	ParBicarbonate
	// ParCO2Aq is the aqueous CO2 concentration [μmol kg-1].
	ParCO2Aq
)

func (p ParType) String() string {
	switch p {
	case ParAlkalinity:
		return "alkalinity"
	case ParDIC:
		return "dic"
	case ParPH:
		return "pH"
	case ParPCO2:
		return "pCO2"
	case ParFCO2:
		return "fCO2"
	case ParCarbonate:
		return "carbonate"
	case ParBicarbonate:
		return "bicarbonate"
	case ParCO2Aq:
		return "aqueousCO2"
	default:
		return fmt.Sprintf("ParType(%d)", int(p))
	}
}

func (p ParType) valid() bool { return p >= ParAlkalinity && p <= ParCO2Aq }

// canonical collapses the three gas-phase forms (pCO2, fCO2 and aqueous
// CO2) to fCO2, since they are affine transforms of each other and share
// all solver and derivative logic.
func (p ParType) canonical() ParType {
	switch p {
	case ParPCO2, ParCO2Aq:
		return ParFCO2
	default:
		return p
	}
}

// checkParTypes verifies that a pair of parameter types can determine the
// carbonate system. Two parameters carrying the same information (for
// example pCO2 together with fCO2) cannot.
func checkParTypes(t1, t2 ParType) error {
	if !t1.valid() {
		return fmt.Errorf("carbsolve: invalid parameter type %d", int(t1))
	}
	if !t2.valid() {
		return fmt.Errorf("carbsolve: invalid parameter type %d", int(t2))
	}
	if t1.canonical() == t2.canonical() {
		return fmt.Errorf("carbsolve: parameter types %s and %s do not "+
			"determine the carbonate system", t1, t2)
	}
	return nil
}

// Scale identifies a seawater pH scale.
type Scale int

const (
	// ScaleTotal is the Total hydrogen ion scale.
	ScaleTotal Scale = iota + 1
	// ScaleSeawater is the Seawater hydrogen ion scale.
	ScaleSeawater
	// ScaleFree is the Free hydrogen ion scale.
	ScaleFree
	// ScaleNBS is the NBS activity scale.
	ScaleNBS
)

func (s Scale) String() string {
	switch s {
	case ScaleTotal:
		return "total"
	case ScaleSeawater:
		return "seawater"
	case ScaleFree:
		return "free"
	case ScaleNBS:
		return "NBS"
	default:
		return fmt.Sprintf("Scale(%d)", int(s))
	}
}

func (s Scale) valid() bool { return s >= ScaleTotal && s <= ScaleNBS }
