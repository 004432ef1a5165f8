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
	"math"

	"github.com/oceanmodel/carbsolve/dual"
)

// Relations evaluates the closed-form equilibrium relations among the
// carbonate system variables for one sample. All chemical relations in
// the package go through a Relations so that the iterative solver and
// the derivative engine share a single implementation. Concentrations
// are in mol/kg and fugacities in atm.
//
// The methods operate on dual numbers: pass dual.Var for the argument
// being differentiated and dual.Con for the rest, and the result carries
// the exact derivative alongside the value.
type Relations struct {
	T Totals
	K Ks

	// hFree divides a working-scale hydrogen ion concentration to give
	// the free-scale concentration used in the sulfate and fluoride
	// alkalinity terms.
	hFree float64
}

// NewRelations binds the totals and constants of one sample. scale must
// be the pH scale the constants in k are expressed on. When
// assumePHTotal is true the Total scale conversion is used for the free
// hydrogen ion term regardless of scale, reproducing the behavior of
// pre-1998 versions of CO2SYS.
func NewRelations(t Totals, k Ks, scale Scale, assumePHTotal bool) *Relations {
	return &Relations{T: t, K: k, hFree: hFreeFactor(scale, assumePHTotal, t, k)}
}

// HFromPH converts pH to hydrogen ion concentration on the working scale.
func HFromPH(ph dual.Num) dual.Num { return dual.Pow10(ph.Neg()) }

// PHFromH converts hydrogen ion concentration to pH.
func PHFromH(h float64) float64 { return -math.Log10(h) }

// carbDenom is H² + K1·H + K1·K2, the denominator shared by the
// carbonate speciation fractions.
func (r *Relations) carbDenom(h dual.Num) dual.Num {
	return h.Mul(h).Add(h.MulF(r.K.K1)).AddF(r.K.K1 * r.K.K2)
}

// AlkParts holds the individual contributions to total alkalinity at a
// given pH, excluding the carbonate terms. Proton acceptors are
// positive, proton donors negative.
type AlkParts struct {
	BAlk   dual.Num
	OH     dual.Num
	PAlk   dual.Num
	SiAlk  dual.Num
	NH3Alk dual.Num
	H2SAlk dual.Num
	HFree  dual.Num
	HSO4   dual.Num
	HF     dual.Num
}

// alkParts evaluates the non-carbonate alkalinity terms at hydrogen ion
// concentration h (working scale).
func (r *Relations) alkParts(h dual.Num) AlkParts {
	k := r.K
	t := r.T
	var p AlkParts
	p.BAlk = dual.FDiv(t.TB, h.DivF(k.KB).AddF(1))
	p.OH = dual.FDiv(k.KW, h)
	h2 := h.Mul(h)
	h3 := h2.Mul(h)
	pNum := h.MulF(k.KP1 * k.KP2).AddF(2 * k.KP1 * k.KP2 * k.KP3).Sub(h3)
	pDen := h3.Add(h2.MulF(k.KP1)).Add(h.MulF(k.KP1 * k.KP2)).
		AddF(k.KP1 * k.KP2 * k.KP3)
	p.PAlk = pNum.Div(pDen).MulF(t.TPO4)
	p.SiAlk = dual.FDiv(t.TSi, h.DivF(k.KSi).AddF(1))
	p.NH3Alk = dual.FDiv(t.TNH3, h.DivF(k.KNH3).AddF(1))
	p.H2SAlk = dual.FDiv(t.TH2S, h.DivF(k.KH2S).AddF(1))
	p.HFree = h.DivF(r.hFree)
	p.HSO4 = dual.FDiv(t.TSO4, dual.FDiv(k.KSO4, p.HFree).AddF(1))
	p.HF = dual.FDiv(t.TF, dual.FDiv(k.KF, p.HFree).AddF(1))
	return p
}

// noncarbAlk is the sum of the non-carbonate alkalinity terms.
func (r *Relations) noncarbAlk(h dual.Num) dual.Num {
	p := r.alkParts(h)
	return p.BAlk.Add(p.OH).Add(p.PAlk).Add(p.SiAlk).Add(p.NH3Alk).
		Add(p.H2SAlk).Sub(p.HFree).Sub(p.HSO4).Sub(p.HF)
}

// AlkalinityFromDICPH gives total alkalinity from dissolved inorganic
// carbon and pH.
func (r *Relations) AlkalinityFromDICPH(tc, ph dual.Num) dual.Num {
	h := HFromPH(ph)
	carbAlk := tc.Mul(h.AddF(2 * r.K.K2).MulF(r.K.K1)).Div(r.carbDenom(h))
	return carbAlk.Add(r.noncarbAlk(h))
}

// DICFromAlkalinityPH inverts AlkalinityFromDICPH for dissolved
// inorganic carbon.
func (r *Relations) DICFromAlkalinityPH(ta, ph dual.Num) dual.Num {
	h := HFromPH(ph)
	carbAlk := ta.Sub(r.noncarbAlk(h))
	return carbAlk.Mul(r.carbDenom(h)).Div(h.AddF(2 * r.K.K2).MulF(r.K.K1))
}

// CO2FromDICPH gives the aqueous CO2 concentration (CO2* = CO2(aq) +
// H2CO3) from dissolved inorganic carbon and pH.
func (r *Relations) CO2FromDICPH(tc, ph dual.Num) dual.Num {
	h := HFromPH(ph)
	return tc.Mul(h.Mul(h)).Div(r.carbDenom(h))
}

// FCO2FromDICPH gives the CO2 fugacity from dissolved inorganic carbon
// and pH.
func (r *Relations) FCO2FromDICPH(tc, ph dual.Num) dual.Num {
	return r.CO2FromDICPH(tc, ph).DivF(r.K.K0)
}

// CarbonateFromDICPH gives the carbonate ion concentration from
// dissolved inorganic carbon and pH.
func (r *Relations) CarbonateFromDICPH(tc, ph dual.Num) dual.Num {
	h := HFromPH(ph)
	return tc.MulF(r.K.K1 * r.K.K2).Div(r.carbDenom(h))
}

// BicarbonateFromDICPH gives the bicarbonate ion concentration from
// dissolved inorganic carbon and pH.
func (r *Relations) BicarbonateFromDICPH(tc, ph dual.Num) dual.Num {
	h := HFromPH(ph)
	return tc.Mul(h).MulF(r.K.K1).Div(r.carbDenom(h))
}

// DICFromFCO2PH gives dissolved inorganic carbon from CO2 fugacity and
// pH.
func (r *Relations) DICFromFCO2PH(fc, ph dual.Num) dual.Num {
	h := HFromPH(ph)
	return fc.MulF(r.K.K0).Mul(r.carbDenom(h)).Div(h.Mul(h))
}

// DICFromCarbonatePH gives dissolved inorganic carbon from carbonate ion
// concentration and pH.
func (r *Relations) DICFromCarbonatePH(carb, ph dual.Num) dual.Num {
	h := HFromPH(ph)
	return carb.Mul(r.carbDenom(h)).DivF(r.K.K1 * r.K.K2)
}

// DICFromBicarbonatePH gives dissolved inorganic carbon from bicarbonate
// ion concentration and pH.
func (r *Relations) DICFromBicarbonatePH(hco3, ph dual.Num) dual.Num {
	h := HFromPH(ph)
	return hco3.Mul(r.carbDenom(h)).Div(h.MulF(r.K.K1))
}

// PHFromDICFCO2 solves for pH given dissolved inorganic carbon and CO2
// fugacity. It returns NaN when K0·fCO2 ≥ DIC, which has no solution.
func (r *Relations) PHFromDICFCO2(tc, fc float64) float64 {
	k := r.K
	rr := k.K0 * fc / tc
	discrim := k.K1*rr*k.K1*rr + 4*(1-rr)*k.K1*k.K2*rr
	h := 0.5 * (k.K1*rr + math.Sqrt(discrim)) / (1 - rr)
	if rr >= 1 || h <= 0 {
		return math.NaN()
	}
	return PHFromH(h)
}

// PHFromDICCarbonate solves for pH given dissolved inorganic carbon and
// carbonate ion concentration.
func (r *Relations) PHFromDICCarbonate(tc, carb float64) float64 {
	k := r.K
	discrim := k.K1*k.K1 - 4*k.K1*k.K2*(1-tc/carb)
	h := (-k.K1 + math.Sqrt(discrim)) / 2
	if h <= 0 {
		return math.NaN()
	}
	return PHFromH(h)
}

// PHFromDICBicarbonate solves for pH given dissolved inorganic carbon
// and bicarbonate ion concentration. Of the two roots, the more acidic
// one corresponds to carbonate-poor water and is never reached under
// oceanic conditions, so the basic root is returned.
func (r *Relations) PHFromDICBicarbonate(tc, hco3 float64) float64 {
	k := r.K
	a := k.K1 * (tc - hco3)
	discrim := a*a - 4*k.K1*k.K2*hco3*hco3
	h := (a - math.Sqrt(discrim)) / (2 * hco3)
	if h <= 0 || math.IsNaN(discrim) || discrim < 0 {
		return math.NaN()
	}
	return PHFromH(h)
}

// PHFromFCO2Carbonate solves for pH given CO2 fugacity and carbonate ion
// concentration.
func (r *Relations) PHFromFCO2Carbonate(fc, carb float64) float64 {
	k := r.K
	h := math.Sqrt(k.K0 * fc * k.K1 * k.K2 / carb)
	return PHFromH(h)
}

// PHFromFCO2Bicarbonate solves for pH given CO2 fugacity and bicarbonate
// ion concentration.
func (r *Relations) PHFromFCO2Bicarbonate(fc, hco3 float64) float64 {
	k := r.K
	return PHFromH(k.K0 * fc * k.K1 / hco3)
}

// PHFromCarbonateBicarbonate solves for pH given carbonate and
// bicarbonate ion concentrations.
func (r *Relations) PHFromCarbonateBicarbonate(carb, hco3 float64) float64 {
	return PHFromH(r.K.K2 * hco3 / carb)
}

// SaturationCalcite is the calcite saturation state Ω = [Ca²⁺][CO3²⁻]/Ksp.
func (r *Relations) SaturationCalcite(carb float64) float64 {
	return r.T.TCa * carb / r.K.KCa
}

// SaturationAragonite is the aragonite saturation state.
func (r *Relations) SaturationAragonite(carb float64) float64 {
	return r.T.TCa * carb / r.K.KAr
}
