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

func testBuffers(t *testing.T) (*CoreState, *Buffers, Totals, Ks) {
	t.Helper()
	tot, k := testSample()
	s := solveOne(t, 2300e-6, 2050e-6, ParAlkalinity, ParDIC, tot, k)
	b := BufferFactors(s, []Totals{tot}, []Ks{k}, ScaleTotal, false)
	return s, b, tot, k
}

// The Revelle factor of modern surface seawater is around 8 to 16.
func TestRevelleFactorRange(t *testing.T) {
	_, b, _, _ := testBuffers(t)
	if b.Revelle[0] < 8 || b.Revelle[0] > 16 {
		t.Errorf("Revelle factor = %g, want value between 8 and 16", b.Revelle[0])
	}
}

// The Revelle factor must match its finite difference definition,
// (dfCO2/fCO2)/(dDIC/DIC) at constant alkalinity.
func TestRevelleFactorFiniteDifference(t *testing.T) {
	s, b, tot, k := testBuffers(t)
	const h = 1e-9
	up := solveOne(t, s.TA[0], s.TC[0]+h, ParAlkalinity, ParDIC, tot, k)
	down := solveOne(t, s.TA[0], s.TC[0]-h, ParAlkalinity, ParDIC, tot, k)
	fd := (up.FC[0] - down.FC[0]) / (2 * h) * s.TC[0] / s.FC[0]
	if different(b.Revelle[0], fd, 1e-4) {
		t.Errorf("Revelle = %g exactly, %g by finite difference", b.Revelle[0], fd)
	}
}

func TestBufferFactorSigns(t *testing.T) {
	_, b, _, _ := testBuffers(t)
	// Adding CO2 at constant alkalinity raises CO2 and H and lowers
	// carbonate, so gammaDIC and betaDIC are positive and omegaDIC
	// negative. The alkalinity factors carry the opposite signs.
	if b.GammaDIC[0] <= 0 {
		t.Errorf("gammaDIC = %g, want > 0", b.GammaDIC[0])
	}
	if b.BetaDIC[0] <= 0 {
		t.Errorf("betaDIC = %g, want > 0", b.BetaDIC[0])
	}
	if b.OmegaDIC[0] >= 0 {
		t.Errorf("omegaDIC = %g, want < 0", b.OmegaDIC[0])
	}
	if b.GammaAlk[0] >= 0 {
		t.Errorf("gammaAlk = %g, want < 0", b.GammaAlk[0])
	}
	if b.BetaAlk[0] >= 0 {
		t.Errorf("betaAlk = %g, want < 0", b.BetaAlk[0])
	}
	if b.OmegaAlk[0] <= 0 {
		t.Errorf("omegaAlk = %g, want > 0", b.OmegaAlk[0])
	}
}

// The isocapnic quotient of surface seawater is slightly above 1 and
// psi relates to it as -1 + 2/Q.
func TestIsocapnicQuotient(t *testing.T) {
	_, b, _, _ := testBuffers(t)
	if b.IsocapQ[0] < 0.8 || b.IsocapQ[0] > 1.3 {
		t.Errorf("Q = %g, want value near 1", b.IsocapQ[0])
	}
	want := -1 + 2/b.IsocapQ[0]
	if different(b.Psi[0], want, 1e-12) {
		t.Errorf("psi = %g, want %g", b.Psi[0], want)
	}
}

func TestBufferFactorsUnconverged(t *testing.T) {
	tot, k := testSample()
	s := solveOne(t, math.NaN(), 2050e-6, ParAlkalinity, ParDIC, tot, k)
	b := BufferFactors(s, []Totals{tot}, []Ks{k}, ScaleTotal, false)
	if !math.IsNaN(b.Revelle[0]) || !math.IsNaN(b.GammaDIC[0]) {
		t.Errorf("buffer factors of an unconverged sample should be NaN, got %g, %g",
			b.Revelle[0], b.GammaDIC[0])
	}
}
