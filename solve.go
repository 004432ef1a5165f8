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

	"github.com/oceanmodel/carbsolve/dual"
)

// GuessPolicy selects how the alkalinity pH iterations are started.
type GuessPolicy int

const (
	// GuessFixed starts every iteration from SolverConfig.InitialPH.
	GuessFixed GuessPolicy = iota
	// GuessEstimate starts from a carbonate-only estimate of the root
	// where one is available, falling back to InitialPH.
	GuessEstimate
)

// maxPHStep caps a single Newton step [pH units] when HalveBigJumps is
// off.
const maxPHStep = 1.0

// Roots outside this pH window do not describe seawater; an element
// whose root lands outside it is treated as unsolvable.
const (
	minSolvedPH = 2
	maxSolvedPH = 12
)

// SolverConfig controls the iterative pH solver.
type SolverConfig struct {
	// Tolerance is the convergence criterion on the pH update magnitude.
	Tolerance float64
	// MaxIter is the iteration limit per element.
	MaxIter int
	// InitialPH seeds the iteration under GuessFixed.
	InitialPH float64
	// Guess selects the starting-point policy.
	Guess GuessPolicy
	// UpdateAllPH keeps updating already-converged elements of a batch
	// until the whole batch has converged. When false, each element is
	// frozen at its first convergence.
	UpdateAllPH bool
	// HalveBigJumps repeatedly halves a Newton step larger than one pH
	// unit instead of clamping it.
	HalveBigJumps bool
	// AssumePHTotal applies the Total scale conversion to the free
	// hydrogen ion alkalinity term on every scale, as pre-1998 versions
	// of CO2SYS did.
	AssumePHTotal bool
}

// DefaultSolverConfig returns the solver settings used when none are
// given.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		Tolerance:     1e-8,
		MaxIter:       50,
		InitialPH:     8,
		Guess:         GuessEstimate,
		UpdateAllPH:   false,
		HalveBigJumps: true,
	}
}

func (c SolverConfig) check() error {
	if c.Tolerance <= 0 {
		return fmt.Errorf("carbsolve: solver tolerance must be positive, got %g", c.Tolerance)
	}
	if c.MaxIter < 1 {
		return fmt.Errorf("carbsolve: solver iteration limit must be at least 1, got %d", c.MaxIter)
	}
	return nil
}

// CoreState holds the solved carbonate system for a batch of samples.
// All concentrations are mol/kg; FC and PC are atm. Elements that
// failed to converge or received unsolvable inputs carry NaN and a
// false Converged flag; the rest of the batch is unaffected.
type CoreState struct {
	TA   []float64 // total alkalinity
	TC   []float64 // dissolved inorganic carbon
	PH   []float64 // pH on the working scale
	FC   []float64 // CO2 fugacity
	PC   []float64 // CO2 partial pressure
	CO2  []float64 // aqueous CO2
	CARB []float64 // carbonate ion
	HCO3 []float64 // bicarbonate ion

	Converged  []bool
	Iterations []int
}

func newCoreState(n int) *CoreState {
	s := &CoreState{
		TA:   make([]float64, n),
		TC:   make([]float64, n),
		PH:   make([]float64, n),
		FC:   make([]float64, n),
		PC:   make([]float64, n),
		CO2:  make([]float64, n),
		CARB: make([]float64, n),
		HCO3: make([]float64, n),

		Converged:  make([]bool, n),
		Iterations: make([]int, n),
	}
	// NaN marks a field the pair dispatch has not filled yet.
	for i := 0; i < n; i++ {
		poisonElement(s, i)
	}
	return s
}

// Solve computes the full carbonate system from two measured variables
// per sample. v1 and v2 hold the values of the parameter types t1 and
// t2 in mol/kg (atm for the gas variables); totals and ks carry the
// per-sample composition and constants. All slices must have the same
// length.
func Solve(v1, v2 []float64, t1, t2 ParType, totals []Totals, ks []Ks, scale Scale, cfg SolverConfig) (*CoreState, error) {
	if err := checkParTypes(t1, t2); err != nil {
		return nil, err
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	n := len(v1)
	if len(v2) != n || len(totals) != n || len(ks) != n {
		return nil, fmt.Errorf("carbsolve: mismatched batch lengths %d, %d, %d, %d",
			n, len(v2), len(totals), len(ks))
	}

	s := newCoreState(n)
	rels := make([]*Relations, n)
	for i := range rels {
		rels[i] = NewRelations(totals[i], ks[i], scale, cfg.AssumePHTotal)
	}

	// Order the pair canonically and fold pCO2 and aqueous CO2 into
	// fCO2 so the dispatch below sees at most six parameter types.
	x, y := make([]float64, n), make([]float64, n)
	cx, cy := t1.canonical(), t2.canonical()
	for i := 0; i < n; i++ {
		x[i] = toCanonical(t1, v1[i], ks[i])
		y[i] = toCanonical(t2, v2[i], ks[i])
	}
	if cx > cy {
		cx, cy = cy, cx
		x, y = y, x
	}

	switch [2]ParType{cx, cy} {
	case [2]ParType{ParAlkalinity, ParDIC}:
		copyAll(s.TA, x)
		copyAll(s.TC, y)
		newtonPH(s, rels, cfg, func(i int) float64 {
			return guessPHFromAlkDIC(x[i], y[i], ks[i], cfg)
		}, func(i int, ph dual.Num) dual.Num {
			return rels[i].AlkalinityFromDICPH(dual.Con(y[i]), ph)
		})
	case [2]ParType{ParAlkalinity, ParPH}:
		copyAll(s.TA, x)
		copyAll(s.PH, y)
		for i := 0; i < n; i++ {
			s.TC[i] = rels[i].DICFromAlkalinityPH(dual.Con(x[i]), dual.Con(y[i])).V
			s.Converged[i] = true
		}
	case [2]ParType{ParAlkalinity, ParFCO2}:
		copyAll(s.TA, x)
		copyAll(s.FC, y)
		newtonPH(s, rels, cfg, func(i int) float64 {
			return guessPHFromAlkFCO2(x[i], y[i], ks[i], cfg)
		},
			func(i int, ph dual.Num) dual.Num {
				tc := rels[i].DICFromFCO2PH(dual.Con(y[i]), ph)
				return rels[i].AlkalinityFromDICPH(tc, ph)
			})
		for i := 0; i < n; i++ {
			s.TC[i] = rels[i].DICFromFCO2PH(dual.Con(y[i]), dual.Con(s.PH[i])).V
		}
	case [2]ParType{ParAlkalinity, ParCarbonate}:
		copyAll(s.TA, x)
		copyAll(s.CARB, y)
		newtonPH(s, rels, cfg, func(i int) float64 {
			return guessPHFromAlkCarbonate(x[i], y[i], ks[i], cfg)
		},
			func(i int, ph dual.Num) dual.Num {
				tc := rels[i].DICFromCarbonatePH(dual.Con(y[i]), ph)
				return rels[i].AlkalinityFromDICPH(tc, ph)
			})
		for i := 0; i < n; i++ {
			s.TC[i] = rels[i].DICFromCarbonatePH(dual.Con(y[i]), dual.Con(s.PH[i])).V
		}
	case [2]ParType{ParAlkalinity, ParBicarbonate}:
		copyAll(s.TA, x)
		copyAll(s.HCO3, y)
		newtonPH(s, rels, cfg, func(i int) float64 {
			return guessPHFromAlkBicarbonate(x[i], y[i], ks[i], cfg)
		},
			func(i int, ph dual.Num) dual.Num {
				tc := rels[i].DICFromBicarbonatePH(dual.Con(y[i]), ph)
				return rels[i].AlkalinityFromDICPH(tc, ph)
			})
		for i := 0; i < n; i++ {
			s.TC[i] = rels[i].DICFromBicarbonatePH(dual.Con(y[i]), dual.Con(s.PH[i])).V
		}
	case [2]ParType{ParDIC, ParPH}:
		copyAll(s.TC, x)
		copyAll(s.PH, y)
		markConverged(s)
	case [2]ParType{ParDIC, ParFCO2}:
		copyAll(s.TC, x)
		copyAll(s.FC, y)
		closedFormPH(s, func(i int) float64 { return rels[i].PHFromDICFCO2(x[i], y[i]) })
	case [2]ParType{ParDIC, ParCarbonate}:
		copyAll(s.TC, x)
		copyAll(s.CARB, y)
		closedFormPH(s, func(i int) float64 { return rels[i].PHFromDICCarbonate(x[i], y[i]) })
	case [2]ParType{ParDIC, ParBicarbonate}:
		copyAll(s.TC, x)
		copyAll(s.HCO3, y)
		closedFormPH(s, func(i int) float64 { return rels[i].PHFromDICBicarbonate(x[i], y[i]) })
	case [2]ParType{ParPH, ParFCO2}:
		copyAll(s.PH, x)
		copyAll(s.FC, y)
		for i := 0; i < n; i++ {
			s.TC[i] = rels[i].DICFromFCO2PH(dual.Con(y[i]), dual.Con(x[i])).V
			s.Converged[i] = true
		}
	case [2]ParType{ParPH, ParCarbonate}:
		copyAll(s.PH, x)
		copyAll(s.CARB, y)
		for i := 0; i < n; i++ {
			s.TC[i] = rels[i].DICFromCarbonatePH(dual.Con(y[i]), dual.Con(x[i])).V
			s.Converged[i] = true
		}
	case [2]ParType{ParPH, ParBicarbonate}:
		copyAll(s.PH, x)
		copyAll(s.HCO3, y)
		for i := 0; i < n; i++ {
			s.TC[i] = rels[i].DICFromBicarbonatePH(dual.Con(y[i]), dual.Con(x[i])).V
			s.Converged[i] = true
		}
	case [2]ParType{ParFCO2, ParCarbonate}:
		copyAll(s.FC, x)
		copyAll(s.CARB, y)
		closedFormPH(s, func(i int) float64 { return rels[i].PHFromFCO2Carbonate(x[i], y[i]) })
		for i := 0; i < n; i++ {
			s.TC[i] = rels[i].DICFromCarbonatePH(dual.Con(y[i]), dual.Con(s.PH[i])).V
		}
	case [2]ParType{ParFCO2, ParBicarbonate}:
		copyAll(s.FC, x)
		copyAll(s.HCO3, y)
		closedFormPH(s, func(i int) float64 { return rels[i].PHFromFCO2Bicarbonate(x[i], y[i]) })
		for i := 0; i < n; i++ {
			s.TC[i] = rels[i].DICFromBicarbonatePH(dual.Con(y[i]), dual.Con(s.PH[i])).V
		}
	case [2]ParType{ParCarbonate, ParBicarbonate}:
		copyAll(s.CARB, x)
		copyAll(s.HCO3, y)
		closedFormPH(s, func(i int) float64 { return rels[i].PHFromCarbonateBicarbonate(x[i], y[i]) })
		for i := 0; i < n; i++ {
			s.TC[i] = rels[i].DICFromCarbonatePH(dual.Con(x[i]), dual.Con(s.PH[i])).V
		}
	default:
		return nil, fmt.Errorf("carbsolve: no solver for parameter pair (%v, %v)", t1, t2)
	}

	// Fill in whatever the pair-specific path left unset, from DIC and
	// pH, which every path produces.
	for i := 0; i < n; i++ {
		if !s.Converged[i] || s.PH[i] < minSolvedPH || s.PH[i] > maxSolvedPH {
			s.Converged[i] = false
			poisonElement(s, i)
			continue
		}
		tc, ph := dual.Con(s.TC[i]), dual.Con(s.PH[i])
		if math.IsNaN(s.TA[i]) {
			s.TA[i] = rels[i].AlkalinityFromDICPH(tc, ph).V
		}
		if math.IsNaN(s.FC[i]) {
			s.FC[i] = rels[i].FCO2FromDICPH(tc, ph).V
		}
		if math.IsNaN(s.CARB[i]) {
			s.CARB[i] = rels[i].CarbonateFromDICPH(tc, ph).V
		}
		if math.IsNaN(s.HCO3[i]) {
			s.HCO3[i] = rels[i].BicarbonateFromDICPH(tc, ph).V
		}
		s.CO2[i] = s.FC[i] * ks[i].K0
		s.PC[i] = s.FC[i] / ks[i].FugFac
		if anyNaN(s.TA[i], s.TC[i], s.PH[i], s.FC[i], s.CARB[i], s.HCO3[i]) ||
			s.TC[i] <= 0 || s.FC[i] <= 0 || s.CARB[i] <= 0 || s.HCO3[i] <= 0 {
			s.Converged[i] = false
			poisonElement(s, i)
		}
	}
	return s, nil
}

// toCanonical folds a pCO2 or aqueous CO2 value into the equivalent CO2
// fugacity; other parameter types pass through.
func toCanonical(t ParType, v float64, k Ks) float64 {
	switch t {
	case ParPCO2:
		return v * k.FugFac
	case ParCO2Aq:
		return v / k.K0
	}
	return v
}

func copyAll(dst, src []float64) { copy(dst, src) }

func markConverged(s *CoreState) {
	for i := range s.Converged {
		s.Converged[i] = true
	}
}

// closedFormPH fills PH from a per-element closed form, flagging NaN
// results as unconverged.
func closedFormPH(s *CoreState, f func(i int) float64) {
	for i := range s.PH {
		s.PH[i] = f(i)
		s.Converged[i] = !math.IsNaN(s.PH[i])
	}
}

// poisonElement sets every output of element i to NaN, leaving the rest
// of the batch untouched.
func poisonElement(s *CoreState, i int) {
	nan := math.NaN()
	s.TA[i], s.TC[i], s.PH[i] = nan, nan, nan
	s.FC[i], s.PC[i], s.CO2[i] = nan, nan, nan
	s.CARB[i], s.HCO3[i] = nan, nan
}

// guessPHFromAlkDIC estimates the pH root of the alkalinity-DIC pair
// from the carbonate terms alone, ignoring the minor acid-base systems.
// It falls back to the fixed initial pH when the estimate has no
// positive root or the fixed policy is selected.
func guessPHFromAlkDIC(ta, tc float64, k Ks, cfg SolverConfig) float64 {
	if cfg.Guess != GuessEstimate || ta <= 0 {
		return cfg.InitialPH
	}
	b := k.K1 * (ta - tc)
	discrim := b*b - 4*ta*k.K1*k.K2*(ta-2*tc)
	if discrim < 0 || math.IsNaN(discrim) {
		return cfg.InitialPH
	}
	h := (-b + math.Sqrt(discrim)) / (2 * ta)
	return guessOrFallback(h, cfg)
}

// guessPHFromAlkFCO2 estimates the pH root of the alkalinity-fCO2 pair,
// approximating the alkalinity by its carbonate terms with the aqueous
// CO2 concentration held at K0·fCO2.
func guessPHFromAlkFCO2(ta, fc float64, k Ks, cfg SolverConfig) float64 {
	if cfg.Guess != GuessEstimate || ta <= 0 {
		return cfg.InitialPH
	}
	co2 := k.K0 * fc
	b := k.K1 * co2
	discrim := b*b + 8*ta*k.K1*k.K2*co2
	if discrim < 0 || math.IsNaN(discrim) {
		return cfg.InitialPH
	}
	h := (b + math.Sqrt(discrim)) / (2 * ta)
	return guessOrFallback(h, cfg)
}

// guessPHFromAlkCarbonate estimates the pH root of the
// alkalinity-carbonate pair from the carbonate terms alone.
func guessPHFromAlkCarbonate(ta, carb float64, k Ks, cfg SolverConfig) float64 {
	if cfg.Guess != GuessEstimate || carb <= 0 {
		return cfg.InitialPH
	}
	return guessOrFallback(k.K2*(ta-2*carb)/carb, cfg)
}

// guessPHFromAlkBicarbonate estimates the pH root of the
// alkalinity-bicarbonate pair from the carbonate terms alone.
func guessPHFromAlkBicarbonate(ta, hco3 float64, k Ks, cfg SolverConfig) float64 {
	if cfg.Guess != GuessEstimate || ta <= hco3 {
		return cfg.InitialPH
	}
	return guessOrFallback(2*k.K2*hco3/(ta-hco3), cfg)
}

func guessOrFallback(h float64, cfg SolverConfig) float64 {
	if h <= 0 || math.IsNaN(h) {
		return cfg.InitialPH
	}
	return PHFromH(h)
}

// newtonPH runs the damped Newton-Raphson iteration in pH space for
// every element of the batch. taCalc must return the alkalinity implied
// by the trial pH; the target alkalinity is s.TA. Results land in s.PH,
// s.Converged and s.Iterations.
func newtonPH(s *CoreState, rels []*Relations, cfg SolverConfig,
	guess func(i int) float64, taCalc func(i int, ph dual.Num) dual.Num) {

	n := len(s.PH)
	dead := make([]bool, n)
	remaining := n
	for i := 0; i < n; i++ {
		s.PH[i] = guess(i)
		if math.IsNaN(s.PH[i]) || math.IsNaN(s.TA[i]) {
			dead[i] = true
			s.PH[i] = math.NaN()
			remaining--
		}
	}

	for iter := 1; iter <= cfg.MaxIter && remaining > 0; iter++ {
		for i := 0; i < n; i++ {
			if dead[i] || (s.Converged[i] && !cfg.UpdateAllPH) {
				continue
			}
			calc := taCalc(i, dual.Var(s.PH[i]))
			deltaPH := (s.TA[i] - calc.V) / calc.D
			if math.IsNaN(deltaPH) || math.IsInf(deltaPH, 0) {
				dead[i] = true
				s.PH[i] = math.NaN()
				if !s.Converged[i] {
					remaining--
				}
				s.Converged[i] = false
				continue
			}
			if cfg.HalveBigJumps {
				for math.Abs(deltaPH) > maxPHStep {
					deltaPH /= 2
				}
			} else if math.Abs(deltaPH) > maxPHStep {
				deltaPH = math.Copysign(maxPHStep, deltaPH)
			}
			s.PH[i] += deltaPH
			if !s.Converged[i] && math.Abs(deltaPH) < cfg.Tolerance {
				s.Converged[i] = true
				s.Iterations[i] = iter
				remaining--
			}
		}
	}
}

func anyNaN(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
