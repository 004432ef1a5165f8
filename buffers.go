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

// Buffers holds the sensitivity factors of the carbonate system for a
// batch of solved samples. The gamma, beta and omega factors are those
// of Egleston, Sabine & Millero (2010); Q is the isocapnic quotient of
// Humphreys et al. (2018) and Psi the factor of Frankignoulle et
// al. (1994).
type Buffers struct {
	Revelle  []float64
	GammaDIC []float64 // (d ln[CO2] / d DIC)⁻¹ at constant alkalinity
	BetaDIC  []float64 // (d ln[H] / d DIC)⁻¹ at constant alkalinity
	OmegaDIC []float64 // (d ln Ω / d DIC)⁻¹ at constant alkalinity
	GammaAlk []float64 // (d ln[CO2] / d TA)⁻¹ at constant DIC
	BetaAlk  []float64 // (d ln[H] / d TA)⁻¹ at constant DIC
	OmegaAlk []float64 // (d ln Ω / d TA)⁻¹ at constant DIC
	IsocapQ  []float64 // dTA/dDIC at constant fCO2
	Psi      []float64
}

// BufferFactors evaluates every buffer factor at the solved state s.
// Unconverged elements yield NaN.
func BufferFactors(s *CoreState, totals []Totals, ks []Ks, scale Scale, assumePHTotal bool) *Buffers {
	n := len(s.PH)
	b := &Buffers{
		Revelle:  make([]float64, n),
		GammaDIC: make([]float64, n),
		BetaDIC:  make([]float64, n),
		OmegaDIC: make([]float64, n),
		GammaAlk: make([]float64, n),
		BetaAlk:  make([]float64, n),
		OmegaAlk: make([]float64, n),
		IsocapQ:  make([]float64, n),
		Psi:      make([]float64, n),
	}
	nan := math.NaN()
	for i := 0; i < n; i++ {
		if !s.Converged[i] {
			b.Revelle[i], b.GammaDIC[i], b.BetaDIC[i] = nan, nan, nan
			b.OmegaDIC[i], b.GammaAlk[i], b.BetaAlk[i] = nan, nan, nan
			b.OmegaAlk[i], b.IsocapQ[i], b.Psi[i] = nan, nan, nan
			continue
		}
		rel := NewRelations(totals[i], ks[i], scale, assumePHTotal)
		slTA := slopesVsPH(rel, ParAlkalinity, s, i)
		slTC := slopesVsPH(rel, ParDIC, s, i)
		slFC := slopesVsPH(rel, ParFCO2, s, i)

		b.Revelle[i] = slTA.fc / slTA.tc * s.TC[i] / s.FC[i]
		b.GammaDIC[i] = slTA.tc * s.FC[i] / slTA.fc
		b.GammaAlk[i] = slTC.ta * s.FC[i] / slTC.fc
		b.BetaDIC[i] = slTA.tc / -math.Ln10
		b.BetaAlk[i] = slTC.ta / -math.Ln10
		// d ln(Ω)/d[CO3²⁻] is 1/[CO3²⁻] for calcite and aragonite alike.
		b.OmegaDIC[i] = slTA.tc * s.CARB[i] / slTA.carb
		b.OmegaAlk[i] = slTC.ta * s.CARB[i] / slTC.carb
		b.IsocapQ[i] = slFC.ta / slFC.tc
		b.Psi[i] = -1 + 2/b.IsocapQ[i]
	}
	return b
}
