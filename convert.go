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

import "math"

// tZero is the offset between the Celsius and Kelvin scales [K].
const tZero = 273.15

// TempCToK converts temperature from °C to K.
func TempCToK(tempC float64) float64 { return tempC + tZero }

// TempKToC converts temperature from K to °C.
func TempKToC(tempK float64) float64 { return tempK - tZero }

// PresDbarToBar converts pressure from decibar to bar.
func PresDbarToBar(pDbar float64) float64 { return pDbar / 10 }

// PresBarToDbar converts pressure from bar to decibar.
func PresBarToDbar(pBar float64) float64 { return pBar * 10 }

// freeToTot is the factor converting free-scale hydrogen ion concentration
// to the Total scale: [H+]T = [H+]F · freeToTot.
func freeToTot(t Totals, k Ks) float64 { return 1 + t.TSO4/k.KSO4 }

// freeToSWS is the factor converting free-scale hydrogen ion concentration
// to the Seawater scale: [H+]SWS = [H+]F · freeToSWS.
func freeToSWS(t Totals, k Ks) float64 {
	return 1 + t.TSO4/k.KSO4 + t.TF/k.KF
}

// swsToTot is the factor converting Seawater-scale hydrogen ion
// concentration to the Total scale.
func swsToTot(t Totals, k Ks) float64 { return freeToTot(t, k) / freeToSWS(t, k) }

// fHTakahashi82 is the hydrogen ion activity coefficient ratio of
// Takahashi et al., GEOSECS Pacific Expedition v. 3 (1982), p. 80.
func fHTakahashi82(tempK, sal float64) float64 {
	return 1.2948 - 0.002036*tempK + (0.0004607-0.000001475*tempK)*sal*sal
}

// fHPeng87 is the hydrogen ion activity coefficient ratio of
// Peng et al., Tellus 39B (1987), 439-458.
func fHPeng87(tempK, sal float64) float64 {
	return 1.29 - 0.00204*tempK + (0.00046-0.00000148*tempK)*sal*sal
}

// PHAllScales holds one pH value expressed on the four seawater pH scales.
type PHAllScales struct {
	Total    float64
	Seawater float64
	Free     float64
	NBS      float64
}

// PHToAllScales converts a pH reported on the given scale to all four
// scales, using the sulfate and fluoride association equilibria in k and t.
func PHToAllScales(pH float64, scale Scale, t Totals, k Ks) PHAllScales {
	fTot := freeToTot(t, k)
	sTot := swsToTot(t, k)
	var factor float64
	switch scale {
	case ScaleTotal:
		factor = 0
	case ScaleSeawater:
		factor = math.Log10(sTot)
	case ScaleFree:
		factor = math.Log10(fTot)
	case ScaleNBS:
		factor = math.Log10(sTot / k.FH)
	default:
		factor = math.NaN()
	}
	pHTot := pH - factor
	return PHAllScales{
		Total:    pHTot,
		Seawater: pHTot + math.Log10(sTot),
		Free:     pHTot + math.Log10(fTot),
		NBS:      pHTot + math.Log10(sTot/k.FH),
	}
}

// hFreeFactor is the divisor converting working-scale hydrogen ion
// concentration to the free scale: [H+]F = [H+]working / hFreeFactor.
// When assumePHTotal is set, the working scale is assumed to be Total
// regardless of the requested scale, reproducing the historical CO2SYS
// approximation.
func hFreeFactor(scale Scale, assumePHTotal bool, t Totals, k Ks) float64 {
	if assumePHTotal {
		return freeToTot(t, k)
	}
	switch scale {
	case ScaleTotal:
		return freeToTot(t, k)
	case ScaleSeawater:
		return freeToSWS(t, k)
	case ScaleFree:
		return 1
	case ScaleNBS:
		return freeToSWS(t, k) * k.FH
	default:
		return math.NaN()
	}
}
