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

// Totals holds the total concentrations of the conservative and nutrient
// acid-base systems for one sample [mol kg-1], together with the practical
// salinity they were derived from. A Totals is built once per sample and
// not modified afterwards.
type Totals struct {
	Sal  float64 // practical salinity
	TB   float64 // total borate
	TF   float64 // total fluoride
	TSO4 float64 // total sulfate
	TCa  float64 // total calcium
	TPO4 float64 // total phosphate
	TSi  float64 // total silicate
	TNH3 float64 // total ammonia
	TH2S float64 // total sulfide
}

// TotalsOverride supplies measured values [mol kg-1] for totals that are
// otherwise estimated from salinity. A nil field keeps the salinity
// estimate.
type TotalsOverride struct {
	TB   *float64
	TF   *float64
	TSO4 *float64
	TCa  *float64
}

// Salinity-to-concentration ratios for the conservative seawater species.
// The 1.80655 factor converts practical salinity to chlorinity.
const (
	borateToSalUppstrom74 = 0.0004157 / 35  // mol kg-1, Uppström (1974)
	borateToSalLee10      = 0.0004326 / 35  // mol kg-1, Lee et al. (2010)
	fluorideToCl          = 0.000067 / 18.998 / 1.80655 // Riley (1965)
	sulfateToCl           = 0.14 / 96.062 / 1.80655     // Morris & Riley (1966)
	calciumToCl           = 0.02128 / 40.087 / 1.80655  // Riley & Tongudai (1967)
)

// AssembleTotals estimates the conservative total concentrations from
// salinity and combines them with the measured nutrient totals
// [mol kg-1]. Overrides, if non-nil, replace the salinity estimates.
func AssembleTotals(sal, tPO4, tSi, tNH3, tH2S float64, borate BorateOpt, override *TotalsOverride) Totals {
	t := Totals{
		Sal:  sal,
		TF:   fluorideToCl * sal,
		TSO4: sulfateToCl * sal,
		TCa:  calciumToCl * sal,
		TPO4: tPO4,
		TSi:  tSi,
		TNH3: tNH3,
		TH2S: tH2S,
	}
	switch borate {
	case BorateLee10:
		t.TB = borateToSalLee10 * sal
	default:
		t.TB = borateToSalUppstrom74 * sal
	}
	if override != nil {
		if override.TB != nil {
			t.TB = *override.TB
		}
		if override.TF != nil {
			t.TF = *override.TF
		}
		if override.TSO4 != nil {
			t.TSO4 = *override.TSO4
		}
		if override.TCa != nil {
			t.TCa = *override.TCa
		}
	}
	return t
}
