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

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/oceanmodel/carbsolve/dual"
)

// OutputVar names a solved carbonate system variable for the derivative
// and uncertainty interfaces.
type OutputVar string

const (
	OutAlkalinity  OutputVar = "alkalinity"
	OutDIC         OutputVar = "dic"
	OutPH          OutputVar = "pH"
	OutFCO2        OutputVar = "fCO2"
	OutPCO2        OutputVar = "pCO2"
	OutCO2Aq       OutputVar = "aqueousCO2"
	OutCarbonate   OutputVar = "carbonate"
	OutBicarbonate OutputVar = "bicarbonate"
)

// CoreOutputs lists every OutputVar in a fixed order.
var CoreOutputs = []OutputVar{
	OutAlkalinity, OutDIC, OutPH, OutFCO2,
	OutPCO2, OutCO2Aq, OutCarbonate, OutBicarbonate,
}

// outputOfPar maps a measurable parameter type to its output variable.
func outputOfPar(p ParType) OutputVar {
	switch p {
	case ParAlkalinity:
		return OutAlkalinity
	case ParDIC:
		return OutDIC
	case ParPH:
		return OutPH
	case ParPCO2:
		return OutPCO2
	case ParFCO2:
		return OutFCO2
	case ParCarbonate:
		return OutCarbonate
	case ParBicarbonate:
		return OutBicarbonate
	case ParCO2Aq:
		return OutCO2Aq
	}
	return ""
}

// coreSlopes holds the derivatives of the six core variables with
// respect to a common parameter, for one batch element.
type coreSlopes struct {
	ta, tc, ph, fc, carb, hco3 float64
}

func (c coreSlopes) of(p ParType) float64 {
	switch p.canonical() {
	case ParAlkalinity:
		return c.ta
	case ParDIC:
		return c.tc
	case ParPH:
		return c.ph
	case ParFCO2:
		return c.fc
	case ParCarbonate:
		return c.carb
	case ParBicarbonate:
		return c.hco3
	}
	return math.NaN()
}

// slopesVsPH differentiates the core variables with respect to pH while
// holding the canonical parameter fix at its solved value. DIC is
// reconstructed from (fix, pH) so the fixed variable's slope is exactly
// zero.
func slopesVsPH(rel *Relations, fix ParType, s *CoreState, i int) coreSlopes {
	ph := dual.Var(s.PH[i])
	var tc dual.Num
	switch fix.canonical() {
	case ParAlkalinity:
		tc = rel.DICFromAlkalinityPH(dual.Con(s.TA[i]), ph)
	case ParDIC:
		tc = dual.Con(s.TC[i])
	case ParFCO2:
		tc = rel.DICFromFCO2PH(dual.Con(s.FC[i]), ph)
	case ParCarbonate:
		tc = rel.DICFromCarbonatePH(dual.Con(s.CARB[i]), ph)
	case ParBicarbonate:
		tc = rel.DICFromBicarbonatePH(dual.Con(s.HCO3[i]), ph)
	}
	sl := coreSlopes{
		ta:   rel.AlkalinityFromDICPH(tc, ph).D,
		tc:   tc.D,
		ph:   1,
		fc:   rel.FCO2FromDICPH(tc, ph).D,
		carb: rel.CarbonateFromDICPH(tc, ph).D,
		hco3: rel.BicarbonateFromDICPH(tc, ph).D,
	}
	switch fix.canonical() {
	case ParAlkalinity:
		sl.ta = 0
	case ParDIC:
		sl.tc = 0
	case ParFCO2:
		sl.fc = 0
	case ParCarbonate:
		sl.carb = 0
	case ParBicarbonate:
		sl.hco3 = 0
	}
	return sl
}

// slopesVsPar differentiates the core variables with respect to the
// canonical parameter x while holding pH fixed.
func slopesVsPar(rel *Relations, x ParType, s *CoreState, i int) coreSlopes {
	ph := dual.Con(s.PH[i])
	var tc dual.Num
	switch x.canonical() {
	case ParAlkalinity:
		tc = rel.DICFromAlkalinityPH(dual.Var(s.TA[i]), ph)
	case ParDIC:
		tc = dual.Var(s.TC[i])
	case ParFCO2:
		tc = rel.DICFromFCO2PH(dual.Var(s.FC[i]), ph)
	case ParCarbonate:
		tc = rel.DICFromCarbonatePH(dual.Var(s.CARB[i]), ph)
	case ParBicarbonate:
		tc = rel.DICFromBicarbonatePH(dual.Var(s.HCO3[i]), ph)
	}
	sl := coreSlopes{
		ta:   rel.AlkalinityFromDICPH(tc, ph).D,
		tc:   tc.D,
		ph:   0,
		fc:   rel.FCO2FromDICPH(tc, ph).D,
		carb: rel.CarbonateFromDICPH(tc, ph).D,
		hco3: rel.BicarbonateFromDICPH(tc, ph).D,
	}
	switch x.canonical() {
	case ParAlkalinity:
		sl.ta = 1
	case ParDIC:
		sl.tc = 1
	case ParFCO2:
		sl.fc = 1
	case ParCarbonate:
		sl.carb = 1
	case ParBicarbonate:
		sl.hco3 = 1
	}
	return sl
}

// DCoreDPar computes the derivative of every output variable with
// respect to the measured parameter x while the other measured
// parameter y is held fixed, evaluated at the solved state s. The
// derivative of x with respect to itself is exactly 1 and that of y is
// exactly 0. Unconverged elements yield NaN throughout.
func DCoreDPar(s *CoreState, x, y ParType, totals []Totals, ks []Ks, scale Scale, assumePHTotal bool) (map[OutputVar][]float64, error) {
	if err := checkParTypes(x, y); err != nil {
		return nil, err
	}
	if x == y {
		return nil, fmt.Errorf("carbsolve: derivative pair (%v, %v) is degenerate", x, y)
	}
	n := len(s.PH)
	out := make(map[OutputVar][]float64, len(CoreOutputs))
	for _, o := range CoreOutputs {
		out[o] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		if !s.Converged[i] {
			for _, o := range CoreOutputs {
				out[o][i] = math.NaN()
			}
			continue
		}
		rel := NewRelations(totals[i], ks[i], scale, assumePHTotal)

		var sl coreSlopes
		var denom float64
		switch {
		case x.canonical() == ParPH:
			// pH is the free parameter itself.
			sl = slopesVsPH(rel, y, s, i)
			denom = 1
		case y.canonical() == ParPH:
			sl = slopesVsPar(rel, x, s, i)
			denom = 1
		default:
			sl = slopesVsPH(rel, y, s, i)
			denom = sl.of(x)
		}

		dTA := sl.ta / denom
		dTC := sl.tc / denom
		dPH := sl.ph / denom
		dFC := sl.fc / denom
		dCARB := sl.carb / denom
		dHCO3 := sl.hco3 / denom

		// Rescale when the varied parameter is reported as pCO2 or
		// aqueous CO2 rather than fugacity.
		var xScale float64
		switch x {
		case ParPCO2:
			xScale = ks[i].FugFac
		case ParCO2Aq:
			xScale = 1 / ks[i].K0
		default:
			xScale = 1
		}

		out[OutAlkalinity][i] = dTA * xScale
		out[OutDIC][i] = dTC * xScale
		out[OutPH][i] = dPH * xScale
		out[OutFCO2][i] = dFC * xScale
		out[OutPCO2][i] = dFC / ks[i].FugFac * xScale
		out[OutCO2Aq][i] = dFC * ks[i].K0 * xScale
		out[OutCarbonate][i] = dCARB * xScale
		out[OutBicarbonate][i] = dHCO3 * xScale

		// Exact identities for the measured pair.
		out[outputOfPar(x)][i] = 1
		out[outputOfPar(y)][i] = 0
	}
	return out, nil
}

// PropagateIndependent combines per-input sensitivities with independent
// standard uncertainties into a combined standard uncertainty per batch
// element. derivs maps an input name to the per-element derivative of
// the output with respect to that input; sigmas gives each input's
// standard uncertainty (scalar across the batch). Inputs present in
// sigmas but absent from derivs are an error.
func PropagateIndependent(derivs map[string][]float64, sigmas map[string]float64) ([]float64, error) {
	var n int
	for name := range sigmas {
		d, ok := derivs[name]
		if !ok {
			return nil, fmt.Errorf("carbsolve: no derivative available for uncertain input %q", name)
		}
		if n == 0 {
			n = len(d)
		} else if len(d) != n {
			return nil, fmt.Errorf("carbsolve: derivative length mismatch for %q: %d != %d", name, len(d), n)
		}
	}
	sum := make([]float64, n)
	term := make([]float64, n)
	for name, sigma := range sigmas {
		copy(term, derivs[name])
		floats.Scale(sigma, term)
		floats.Mul(term, term)
		floats.Add(sum, term)
	}
	for i, v := range sum {
		sum[i] = math.Sqrt(v)
	}
	return sum, nil
}

// PropagateCovariance evaluates the first order uncertainty
// sqrt(gᵀ Σ g) per batch element, where row k of derivs holds the
// per-element derivative of the output with respect to input k and cov
// is the input covariance matrix Σ.
func PropagateCovariance(derivs [][]float64, cov *mat.SymDense) ([]float64, error) {
	m := len(derivs)
	if r := cov.Symmetric(); r != m {
		return nil, fmt.Errorf("carbsolve: covariance is %d×%d but %d derivative rows were given", r, r, m)
	}
	if m == 0 {
		return nil, fmt.Errorf("carbsolve: no derivative rows given")
	}
	n := len(derivs[0])
	for k, d := range derivs {
		if len(d) != n {
			return nil, fmt.Errorf("carbsolve: derivative row %d has length %d, want %d", k, len(d), n)
		}
	}
	out := make([]float64, n)
	g := make([]float64, m)
	for i := 0; i < n; i++ {
		for k := 0; k < m; k++ {
			g[k] = derivs[k][i]
		}
		v := mat.NewVecDense(m, g)
		out[i] = math.Sqrt(mat.Inner(v, cov, v))
	}
	return out, nil
}
