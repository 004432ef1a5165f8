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
	"testing"

	"github.com/oceanmodel/carbsolve/dual"
)

func testRelations() *Relations {
	tot, k := testSample()
	return NewRelations(tot, k, ScaleTotal, false)
}

// Every pH inversion must recover the pH the forward relations started
// from.
func TestPHInversions(t *testing.T) {
	r := testRelations()
	const (
		tc = 2050e-6
		ph = 8.05
	)
	fc := r.FCO2FromDICPH(dual.Con(tc), dual.Con(ph)).V
	carb := r.CarbonateFromDICPH(dual.Con(tc), dual.Con(ph)).V
	hco3 := r.BicarbonateFromDICPH(dual.Con(tc), dual.Con(ph)).V

	cases := []struct {
		name string
		got  float64
	}{
		{"DIC/fCO2", r.PHFromDICFCO2(tc, fc)},
		{"DIC/carbonate", r.PHFromDICCarbonate(tc, carb)},
		{"DIC/bicarbonate", r.PHFromDICBicarbonate(tc, hco3)},
		{"fCO2/carbonate", r.PHFromFCO2Carbonate(fc, carb)},
		{"fCO2/bicarbonate", r.PHFromFCO2Bicarbonate(fc, hco3)},
		{"carbonate/bicarbonate", r.PHFromCarbonateBicarbonate(carb, hco3)},
	}
	for _, c := range cases {
		if different(c.got, ph, 1e-10) {
			t.Errorf("%s: pH = %g, want %g", c.name, c.got, ph)
		}
	}
}

// Every DIC inversion must recover the DIC the forward relations
// started from.
func TestDICInversions(t *testing.T) {
	r := testRelations()
	const (
		tc = 2050e-6
		ph = 8.05
	)
	ta := r.AlkalinityFromDICPH(dual.Con(tc), dual.Con(ph)).V
	fc := r.FCO2FromDICPH(dual.Con(tc), dual.Con(ph)).V
	carb := r.CarbonateFromDICPH(dual.Con(tc), dual.Con(ph)).V
	hco3 := r.BicarbonateFromDICPH(dual.Con(tc), dual.Con(ph)).V

	cases := []struct {
		name string
		got  float64
	}{
		{"alkalinity", r.DICFromAlkalinityPH(dual.Con(ta), dual.Con(ph)).V},
		{"fCO2", r.DICFromFCO2PH(dual.Con(fc), dual.Con(ph)).V},
		{"carbonate", r.DICFromCarbonatePH(dual.Con(carb), dual.Con(ph)).V},
		{"bicarbonate", r.DICFromBicarbonatePH(dual.Con(hco3), dual.Con(ph)).V},
	}
	for _, c := range cases {
		if different(c.got, tc, 1e-12) {
			t.Errorf("DIC from %s and pH = %g, want %g", c.name, c.got, tc)
		}
	}
}

// The carbonate species must sum to DIC.
func TestSpeciationSum(t *testing.T) {
	r := testRelations()
	for _, ph := range []float64{6.5, 7.5, 8.1, 8.8} {
		const tc = 2000e-6
		co2 := r.CO2FromDICPH(dual.Con(tc), dual.Con(ph)).V
		carb := r.CarbonateFromDICPH(dual.Con(tc), dual.Con(ph)).V
		hco3 := r.BicarbonateFromDICPH(dual.Con(tc), dual.Con(ph)).V
		if sum := co2 + carb + hco3; different(sum, tc, 1e-12) {
			t.Errorf("pH %g: species sum %g, want %g", ph, sum, tc)
		}
	}
}

// The dual-number derivative of the alkalinity relation must match a
// central finite difference.
func TestAlkalinityDerivative(t *testing.T) {
	r := testRelations()
	const (
		tc = 2050e-6
		h  = 1e-6
	)
	for _, ph := range []float64{7.0, 7.7, 8.1, 8.6} {
		ad := r.AlkalinityFromDICPH(dual.Con(tc), dual.Var(ph)).D
		up := r.AlkalinityFromDICPH(dual.Con(tc), dual.Con(ph+h)).V
		down := r.AlkalinityFromDICPH(dual.Con(tc), dual.Con(ph-h)).V
		fd := (up - down) / (2 * h)
		if different(ad, fd, 1e-5) {
			t.Errorf("pH %g: dTA/dpH = %g by duals, %g by finite difference", ph, ad, fd)
		}
	}
}

// Alkalinity at high pH must exceed alkalinity at low pH for fixed DIC,
// and the unsolvable fCO2 branch must return NaN.
func TestRelationEdgeCases(t *testing.T) {
	r := testRelations()
	const tc = 2000e-6
	lo := r.AlkalinityFromDICPH(dual.Con(tc), dual.Con(7.0)).V
	hi := r.AlkalinityFromDICPH(dual.Con(tc), dual.Con(8.5)).V
	if hi <= lo {
		t.Errorf("alkalinity should grow with pH at fixed DIC: %g vs %g", lo, hi)
	}
	if got := r.PHFromDICFCO2(tc, 2*tc/r.K.K0); !math.IsNaN(got) {
		t.Errorf("impossible fCO2 gave pH %g, want NaN", got)
	}
}

func TestSaturationStates(t *testing.T) {
	r := testRelations()
	const carb = 200e-6
	omegaCa := r.SaturationCalcite(carb)
	omegaAr := r.SaturationAragonite(carb)
	if omegaCa <= omegaAr {
		t.Errorf("Ω calcite (%g) should exceed Ω aragonite (%g)", omegaCa, omegaAr)
	}
	if omegaCa < 1 || omegaCa > 10 {
		t.Errorf("Ω calcite = %g, outside the plausible surface range", omegaCa)
	}
}
