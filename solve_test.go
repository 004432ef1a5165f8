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
)

// different reports whether a and b differ by more than tol relatively.
func different(a, b, tol float64) bool {
	if a == b {
		return false
	}
	return math.Abs(a-b) > tol*math.Max(math.Abs(a), math.Abs(b))
}

// testSample returns the composition and constants of standard surface
// seawater under default options.
func testSample() (Totals, Ks) {
	o := DefaultOptions()
	tot := AssembleTotals(35, 0, 0, 0, 0, o.Borate, nil)
	return tot, AssembleKs(25, 0, tot, o)
}

// solveOne solves a single sample from one parameter pair.
func solveOne(t *testing.T, v1, v2 float64, t1, t2 ParType, tot Totals, k Ks) *CoreState {
	t.Helper()
	s, err := Solve([]float64{v1}, []float64{v2}, t1, t2,
		[]Totals{tot}, []Ks{k}, ScaleTotal, DefaultSolverConfig())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSolveAlkalinityDIC(t *testing.T) {
	o := DefaultOptions()
	tot := AssembleTotals(32, 0, 0, 0, 0, o.Borate, nil)
	k := AssembleKs(10, 0, tot, o)
	s := solveOne(t, 2300e-6, 2150e-6, ParAlkalinity, ParDIC, tot, k)

	if !s.Converged[0] {
		t.Fatal("solution did not converge")
	}
	if s.Iterations[0] < 1 || s.Iterations[0] > 50 {
		t.Errorf("iteration count %d outside expected range", s.Iterations[0])
	}
	if s.PH[0] < 7.95 || s.PH[0] > 8.15 {
		t.Errorf("pH = %g, want value between 7.95 and 8.15", s.PH[0])
	}
	fc := s.FC[0] / 1e-6 // µatm
	if fc < 300 || fc > 500 {
		t.Errorf("fCO2 = %g µatm, want value between 300 and 500", fc)
	}
	if s.PC[0] <= s.FC[0] {
		t.Errorf("pCO2 (%g) should exceed fCO2 (%g)", s.PC[0], s.FC[0])
	}
	if s.HCO3[0] <= s.CARB[0] {
		t.Errorf("bicarbonate (%g) should exceed carbonate (%g)", s.HCO3[0], s.CARB[0])
	}
	sum := s.CO2[0] + s.CARB[0] + s.HCO3[0]
	if different(sum, s.TC[0], 1e-12) {
		t.Errorf("species sum %g does not recover DIC %g", sum, s.TC[0])
	}
}

func TestSolveReproducible(t *testing.T) {
	tot, k := testSample()
	a := solveOne(t, 2300e-6, 2100e-6, ParAlkalinity, ParDIC, tot, k)
	b := solveOne(t, 2300e-6, 2100e-6, ParAlkalinity, ParDIC, tot, k)
	if a.PH[0] != b.PH[0] || a.FC[0] != b.FC[0] {
		t.Errorf("identical runs differ: pH %v vs %v, fCO2 %v vs %v",
			a.PH[0], b.PH[0], a.FC[0], b.FC[0])
	}
	if a.Iterations[0] != b.Iterations[0] {
		t.Errorf("identical runs used %d and %d iterations",
			a.Iterations[0], b.Iterations[0])
	}
}

// TestSolvePairRoundTrip solves a reference state from alkalinity and
// DIC, then re-solves it from every other parameter pair and checks
// that the same state comes back.
func TestSolvePairRoundTrip(t *testing.T) {
	tot, k := testSample()
	ref := solveOne(t, 2300e-6, 2050e-6, ParAlkalinity, ParDIC, tot, k)
	if !ref.Converged[0] {
		t.Fatal("reference solution did not converge")
	}

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
		t.Fatalf("no value for %v", p)
		return 0
	}

	all := []ParType{ParAlkalinity, ParDIC, ParPH, ParPCO2, ParFCO2,
		ParCarbonate, ParBicarbonate, ParCO2Aq}
	const tol = 1e-6
	for _, p1 := range all {
		for _, p2 := range all {
			if checkParTypes(p1, p2) != nil {
				continue
			}
			s := solveOne(t, value(p1), value(p2), p1, p2, tot, k)
			if !s.Converged[0] {
				t.Errorf("(%v, %v): did not converge", p1, p2)
				continue
			}
			if different(s.PH[0], ref.PH[0], tol) {
				t.Errorf("(%v, %v): pH = %g, want %g", p1, p2, s.PH[0], ref.PH[0])
			}
			if different(s.TA[0], ref.TA[0], tol) {
				t.Errorf("(%v, %v): TA = %g, want %g", p1, p2, s.TA[0], ref.TA[0])
			}
			if different(s.TC[0], ref.TC[0], tol) {
				t.Errorf("(%v, %v): DIC = %g, want %g", p1, p2, s.TC[0], ref.TC[0])
			}
		}
	}
}

func TestSolveSamePairRejected(t *testing.T) {
	tot, k := testSample()
	_, err := Solve([]float64{400e-6}, []float64{15e-6}, ParPCO2, ParFCO2,
		[]Totals{tot}, []Ks{k}, ScaleTotal, DefaultSolverConfig())
	if err == nil {
		t.Error("expected an error for a pCO2/fCO2 pair")
	}
	_, err = Solve([]float64{2300e-6}, []float64{2300e-6}, ParAlkalinity, ParAlkalinity,
		[]Totals{tot}, []Ks{k}, ScaleTotal, DefaultSolverConfig())
	if err == nil {
		t.Error("expected an error for a repeated parameter type")
	}
}

// TestSolveFaultIsolation checks that an unsolvable sample poisons only
// itself.
func TestSolveFaultIsolation(t *testing.T) {
	tot, k := testSample()
	ta := []float64{2300e-6, math.NaN(), 2300e-6}
	tc := []float64{2050e-6, 2050e-6, 2050e-6}
	tots := []Totals{tot, tot, tot}
	ks := []Ks{k, k, k}
	s, err := Solve(ta, tc, ParAlkalinity, ParDIC, tots, ks, ScaleTotal, DefaultSolverConfig())
	if err != nil {
		t.Fatal(err)
	}
	if s.Converged[1] || !math.IsNaN(s.PH[1]) {
		t.Errorf("bad sample: converged=%v pH=%g, want unconverged NaN",
			s.Converged[1], s.PH[1])
	}
	for _, i := range []int{0, 2} {
		if !s.Converged[i] {
			t.Errorf("sample %d should converge", i)
		}
		if math.IsNaN(s.PH[i]) {
			t.Errorf("sample %d poisoned by its neighbor", i)
		}
	}
	if s.PH[0] != s.PH[2] {
		t.Errorf("identical samples disagree: %g vs %g", s.PH[0], s.PH[2])
	}
}

// An fCO2 exceeding DIC/K0 has no solution and must come back NaN.
func TestSolveUnsolvableFCO2(t *testing.T) {
	tot, k := testSample()
	fc := 2 * 2050e-6 / k.K0
	s := solveOne(t, 2050e-6, fc, ParDIC, ParFCO2, tot, k)
	if s.Converged[0] {
		t.Error("impossible DIC/fCO2 pair reported as converged")
	}
	if !math.IsNaN(s.PH[0]) {
		t.Errorf("pH = %g, want NaN", s.PH[0])
	}
}

// TestSolveGuessPolicies checks that the fixed and estimated starting
// points converge to the same root for every iterative alkalinity pair.
func TestSolveGuessPolicies(t *testing.T) {
	tot, k := testSample()
	cfgFixed := DefaultSolverConfig()
	cfgFixed.Guess = GuessFixed
	cfgEst := DefaultSolverConfig()

	ref := solveOne(t, 2300e-6, 2050e-6, ParAlkalinity, ParDIC, tot, k)
	if !ref.Converged[0] {
		t.Fatal("reference solution did not converge")
	}
	pairs := []struct {
		p2 ParType
		v2 float64
	}{
		{ParDIC, ref.TC[0]},
		{ParFCO2, ref.FC[0]},
		{ParCarbonate, ref.CARB[0]},
		{ParBicarbonate, ref.HCO3[0]},
	}
	for _, pair := range pairs {
		a, err := Solve([]float64{2300e-6}, []float64{pair.v2}, ParAlkalinity, pair.p2,
			[]Totals{tot}, []Ks{k}, ScaleTotal, cfgFixed)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Solve([]float64{2300e-6}, []float64{pair.v2}, ParAlkalinity, pair.p2,
			[]Totals{tot}, []Ks{k}, ScaleTotal, cfgEst)
		if err != nil {
			t.Fatal(err)
		}
		if !a.Converged[0] || !b.Converged[0] {
			t.Errorf("(alkalinity, %v): did not converge under both policies", pair.p2)
			continue
		}
		if different(a.PH[0], b.PH[0], 1e-7) {
			t.Errorf("(alkalinity, %v): guess policies found different roots: %g vs %g",
				pair.p2, a.PH[0], b.PH[0])
		}
		if different(a.PH[0], ref.PH[0], 1e-6) {
			t.Errorf("(alkalinity, %v): pH = %g, want %g", pair.p2, a.PH[0], ref.PH[0])
		}
	}
}

// A grossly negative alkalinity has no seawater root; it must come back
// NaN with a false convergence flag, not the acid root the iteration
// can reach numerically.
func TestSolveNonphysicalAlkalinity(t *testing.T) {
	tot, k := testSample()
	s := solveOne(t, -0.5, 2150e-6, ParAlkalinity, ParDIC, tot, k)
	if s.Converged[0] {
		t.Error("negative alkalinity reported as converged")
	}
	if !math.IsNaN(s.PH[0]) {
		t.Errorf("pH = %g, want NaN", s.PH[0])
	}
	if !math.IsNaN(s.FC[0]) {
		t.Errorf("fCO2 = %g, want NaN", s.FC[0])
	}
}

// Negative concentrations in the measured pair must poison the element.
func TestSolveNonphysicalConcentrations(t *testing.T) {
	tot, k := testSample()
	cases := []struct {
		t1, t2 ParType
		v1, v2 float64
	}{
		{ParPH, ParCarbonate, 8.1, -10e-6},
		{ParDIC, ParPH, -2150e-6, 8.1},
		{ParAlkalinity, ParBicarbonate, 2300e-6, -1800e-6},
	}
	for _, c := range cases {
		s := solveOne(t, c.v1, c.v2, c.t1, c.t2, tot, k)
		if s.Converged[0] {
			t.Errorf("(%v, %v): non-physical input reported as converged", c.t1, c.t2)
		}
		if !math.IsNaN(s.PH[0]) {
			t.Errorf("(%v, %v): pH = %g, want NaN", c.t1, c.t2, s.PH[0])
		}
	}
}

func TestSolveUpdateAllPH(t *testing.T) {
	tot, k := testSample()
	cfg := DefaultSolverConfig()
	cfg.UpdateAllPH = true
	ta := []float64{2300e-6, 2400e-6}
	tc := []float64{2050e-6, 2250e-6}
	tots := []Totals{tot, tot}
	ks := []Ks{k, k}
	joint, err := Solve(ta, tc, ParAlkalinity, ParDIC, tots, ks, ScaleTotal, cfg)
	if err != nil {
		t.Fatal(err)
	}
	frozen, err := Solve(ta, tc, ParAlkalinity, ParDIC, tots, ks, ScaleTotal, DefaultSolverConfig())
	if err != nil {
		t.Fatal(err)
	}
	for i := range ta {
		if !joint.Converged[i] || !frozen.Converged[i] {
			t.Fatalf("sample %d did not converge", i)
		}
		if different(joint.PH[i], frozen.PH[i], 1e-7) {
			t.Errorf("sample %d: update modes disagree: %g vs %g",
				i, joint.PH[i], frozen.PH[i])
		}
	}
}

func TestSolverConfigCheck(t *testing.T) {
	cfg := DefaultSolverConfig()
	cfg.Tolerance = 0
	if cfg.check() == nil {
		t.Error("zero tolerance should be rejected")
	}
	cfg = DefaultSolverConfig()
	cfg.MaxIter = 0
	if cfg.check() == nil {
		t.Error("zero iteration limit should be rejected")
	}
}
