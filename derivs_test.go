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

	"gonum.org/v1/gonum/mat"
)

// TestDCoreDParIdentities checks the exact identities for every ordered
// parameter pair: the derivative of the varied parameter is 1 and that
// of the fixed parameter is 0.
func TestDCoreDParIdentities(t *testing.T) {
	tot, k := testSample()
	ref := solveOne(t, 2300e-6, 2050e-6, ParAlkalinity, ParDIC, tot, k)

	value := func(p ParType) float64 {
		switch p {
		case ParAlkalinity:
			return ref.TA[0]
		case ParDIC:
			return ref.TC[0]
		case ParPH:
			return ref.PH[0]
		case ParPCO2:
			return ref.PC[0]
		case ParFCO2:
			return ref.FC[0]
		case ParCarbonate:
			return ref.CARB[0]
		case ParBicarbonate:
			return ref.HCO3[0]
		case ParCO2Aq:
			return ref.CO2[0]
		}
		return math.NaN()
	}

	all := []ParType{ParAlkalinity, ParDIC, ParPH, ParPCO2, ParFCO2,
		ParCarbonate, ParBicarbonate, ParCO2Aq}
	for _, x := range all {
		for _, y := range all {
			if checkParTypes(x, y) != nil {
				continue
			}
			s := solveOne(t, value(x), value(y), x, y, tot, k)
			d, err := DCoreDPar(s, x, y, []Totals{tot}, []Ks{k}, ScaleTotal, false)
			if err != nil {
				t.Fatalf("(%v, %v): %v", x, y, err)
			}
			if got := d[outputOfPar(x)][0]; got != 1 {
				t.Errorf("(%v, %v): self derivative = %g, want 1", x, y, got)
			}
			if got := d[outputOfPar(y)][0]; got != 0 {
				t.Errorf("(%v, %v): fixed derivative = %g, want 0", x, y, got)
			}
			for _, o := range CoreOutputs {
				if math.IsNaN(d[o][0]) {
					t.Errorf("(%v, %v): derivative of %s is NaN", x, y, o)
				}
			}
		}
	}
}

// TestDCoreDParFiniteDifference compares the exact derivatives against
// re-solving the system at perturbed inputs.
func TestDCoreDParFiniteDifference(t *testing.T) {
	tot, k := testSample()
	const (
		ta = 2300e-6
		tc = 2050e-6
	)
	s := solveOne(t, ta, tc, ParAlkalinity, ParDIC, tot, k)
	d, err := DCoreDPar(s, ParAlkalinity, ParDIC, []Totals{tot}, []Ks{k}, ScaleTotal, false)
	if err != nil {
		t.Fatal(err)
	}

	const h = 1e-9 // mol/kg
	up := solveOne(t, ta+h, tc, ParAlkalinity, ParDIC, tot, k)
	down := solveOne(t, ta-h, tc, ParAlkalinity, ParDIC, tot, k)
	cases := []struct {
		name     string
		have     float64
		up, down float64
	}{
		{"pH", d[OutPH][0], up.PH[0], down.PH[0]},
		{"fCO2", d[OutFCO2][0], up.FC[0], down.FC[0]},
		{"pCO2", d[OutPCO2][0], up.PC[0], down.PC[0]},
		{"aqueousCO2", d[OutCO2Aq][0], up.CO2[0], down.CO2[0]},
		{"carbonate", d[OutCarbonate][0], up.CARB[0], down.CARB[0]},
		{"bicarbonate", d[OutBicarbonate][0], up.HCO3[0], down.HCO3[0]},
	}
	for _, c := range cases {
		fd := (c.up - c.down) / (2 * h)
		if different(c.have, fd, 1e-4) {
			t.Errorf("d%s/dTA = %g exactly, %g by finite difference", c.name, c.have, fd)
		}
	}
}

// The derivative with respect to pCO2 must be the fCO2 derivative
// scaled by the fugacity factor.
func TestDCoreDParGasScaling(t *testing.T) {
	tot, k := testSample()
	ref := solveOne(t, 2300e-6, 2050e-6, ParAlkalinity, ParDIC, tot, k)

	sFC, err := DCoreDPar(
		solveOne(t, ref.TA[0], ref.FC[0], ParAlkalinity, ParFCO2, tot, k),
		ParFCO2, ParAlkalinity, []Totals{tot}, []Ks{k}, ScaleTotal, false)
	if err != nil {
		t.Fatal(err)
	}
	sPC, err := DCoreDPar(
		solveOne(t, ref.TA[0], ref.PC[0], ParAlkalinity, ParPCO2, tot, k),
		ParPCO2, ParAlkalinity, []Totals{tot}, []Ks{k}, ScaleTotal, false)
	if err != nil {
		t.Fatal(err)
	}
	want := sFC[OutDIC][0] * k.FugFac
	if different(sPC[OutDIC][0], want, 1e-6) {
		t.Errorf("dDIC/dpCO2 = %g, want %g", sPC[OutDIC][0], want)
	}
}

func TestDCoreDParUnconverged(t *testing.T) {
	tot, k := testSample()
	s := solveOne(t, math.NaN(), 2050e-6, ParAlkalinity, ParDIC, tot, k)
	d, err := DCoreDPar(s, ParAlkalinity, ParDIC, []Totals{tot}, []Ks{k}, ScaleTotal, false)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(d[OutPH][0]) {
		t.Errorf("derivative of an unconverged sample = %g, want NaN", d[OutPH][0])
	}
}

func TestPropagateIndependent(t *testing.T) {
	derivs := map[string][]float64{
		"par1": {2, 0},
		"par2": {0, 3},
	}
	sigmas := map[string]float64{"par1": 1.5, "par2": 2}
	u, err := PropagateIndependent(derivs, sigmas)
	if err != nil {
		t.Fatal(err)
	}
	if different(u[0], 3, 1e-12) || different(u[1], 6, 1e-12) {
		t.Errorf("u = %v, want [3 6]", u)
	}
	if _, err := PropagateIndependent(derivs, map[string]float64{"missing": 1}); err == nil {
		t.Error("expected an error for an input with no derivative")
	}
}

// With a diagonal covariance, the quadratic form must reduce to the
// independent combination.
func TestPropagateCovariance(t *testing.T) {
	derivs := [][]float64{
		{2, 1},
		{0, 3},
	}
	sigma1, sigma2 := 1.5, 2.0
	cov := mat.NewSymDense(2, []float64{
		sigma1 * sigma1, 0,
		0, sigma2 * sigma2,
	})
	got, err := PropagateCovariance(derivs, cov)
	if err != nil {
		t.Fatal(err)
	}
	want0 := math.Sqrt(2 * 2 * sigma1 * sigma1)
	want1 := math.Sqrt(1*sigma1*sigma1 + 3*3*sigma2*sigma2)
	if different(got[0], want0, 1e-12) || different(got[1], want1, 1e-12) {
		t.Errorf("u = %v, want [%g %g]", got, want0, want1)
	}

	// Perfect correlation between two inputs with opposite derivatives
	// cancels exactly.
	anti := [][]float64{{1}, {-1}}
	full := mat.NewSymDense(2, []float64{1, 1, 1, 1})
	got, err = PropagateCovariance(anti, full)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] > 1e-7 {
		t.Errorf("fully anticorrelated inputs gave %g, want 0", got[0])
	}

	if _, err := PropagateCovariance(derivs, mat.NewSymDense(3, nil)); err == nil {
		t.Error("expected a size mismatch error")
	}
}
