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
)

// microToMol converts µmol/kg (or µatm) to mol/kg (atm).
const microToMol = 1e-6

// Input describes a batch carbonate system calculation in user units:
// concentrations in µmol/kg, gas variables in µatm, temperature in °C
// and pressure in dbar. Every slice must have length 1 or the common
// batch length; absent optional slices take their defaults.
type Input struct {
	// Par1 and Par2 are the two measured parameter values, typed by
	// Par1Type and Par2Type. The two types must describe different
	// quantities.
	Par1     []float64
	Par2     []float64
	Par1Type ParType
	Par2Type ParType

	Salinity    []float64 // practical salinity, default 35
	Temperature []float64 // °C, default 25
	Pressure    []float64 // dbar, default 0

	// TemperatureOut and PressureOut request a second set of results at
	// different conditions, computed from the solved alkalinity and
	// dissolved inorganic carbon. When only one is given the other
	// keeps its input-condition value.
	TemperatureOut []float64
	PressureOut    []float64

	TotalPhosphate []float64 // µmol/kg, default 0
	TotalSilicate  []float64
	TotalAmmonia   []float64
	TotalSulfide   []float64

	// Measured seawater composition overriding the salinity estimates.
	TotalBorate   []float64 // µmol/kg
	TotalFluoride []float64
	TotalSulfate  []float64
	TotalCalcium  []float64

	Opts Options
}

// ConditionResults holds the outputs that depend on temperature and
// pressure, at one set of conditions. Concentrations are µmol/kg and
// gas variables µatm.
type ConditionResults struct {
	PH         []float64 // on the working scale of Options.Scale
	PHTotal    []float64
	PHSeawater []float64
	PHFree     []float64
	PHNBS      []float64

	FCO2        []float64
	PCO2        []float64
	CO2Aq       []float64
	Carbonate   []float64
	Bicarbonate []float64

	OmegaCalcite   []float64
	OmegaAragonite []float64

	Buffers *Buffers

	// Ks holds the per-sample equilibrium constants these results were
	// computed with.
	Ks []Ks
}

// Results is the outcome of Calc. Alkalinity and DIC are
// condition-independent; everything else lives in the In block and,
// when output conditions were requested, the Out block.
type Results struct {
	N int

	Alkalinity []float64 // µmol/kg
	DIC        []float64 // µmol/kg

	In  *ConditionResults
	Out *ConditionResults

	Converged  []bool
	Iterations []int

	Totals []Totals
}

// Calc solves the carbonate system for every sample in the batch and
// derives the dependent variables at the input conditions, plus the
// output conditions if requested.
func Calc(in *Input) (*Results, error) {
	if err := checkParTypes(in.Par1Type, in.Par2Type); err != nil {
		return nil, err
	}
	if err := in.Opts.Check(); err != nil {
		return nil, err
	}
	if len(in.Par1) == 0 || len(in.Par2) == 0 {
		return nil, fmt.Errorf("carbsolve: both measured parameters are required")
	}

	n, err := BroadcastLength(len(in.Par1), len(in.Par2),
		len(in.Salinity), len(in.Temperature), len(in.Pressure),
		len(in.TemperatureOut), len(in.PressureOut),
		len(in.TotalPhosphate), len(in.TotalSilicate),
		len(in.TotalAmmonia), len(in.TotalSulfide),
		len(in.TotalBorate), len(in.TotalFluoride),
		len(in.TotalSulfate), len(in.TotalCalcium))
	if err != nil {
		return nil, err
	}

	bc := func(v []float64, def float64) []float64 {
		out, _ := Broadcast(v, n, def)
		return out
	}
	// Lengths were validated by BroadcastLength, so the only remaining
	// Broadcast errors are real length conflicts.
	for name, v := range map[string][]float64{
		"par1": in.Par1, "par2": in.Par2,
		"salinity": in.Salinity, "temperature": in.Temperature,
		"pressure": in.Pressure,
		"temperatureOut": in.TemperatureOut, "pressureOut": in.PressureOut,
		"totalPhosphate": in.TotalPhosphate, "totalSilicate": in.TotalSilicate,
		"totalAmmonia": in.TotalAmmonia, "totalSulfide": in.TotalSulfide,
		"totalBorate": in.TotalBorate, "totalFluoride": in.TotalFluoride,
		"totalSulfate": in.TotalSulfate, "totalCalcium": in.TotalCalcium,
	} {
		if len(v) > 1 && len(v) != n {
			return nil, fmt.Errorf("carbsolve: input %s has length %d, want 1 or %d", name, len(v), n)
		}
	}

	par1 := parToInternal(in.Par1Type, bc(in.Par1, math.NaN()))
	par2 := parToInternal(in.Par2Type, bc(in.Par2, math.NaN()))
	sal := bc(in.Salinity, 35)
	tempC := bc(in.Temperature, 25)
	pDbar := bc(in.Pressure, 0)
	tPO4 := bc(in.TotalPhosphate, 0)
	tSi := bc(in.TotalSilicate, 0)
	tNH3 := bc(in.TotalAmmonia, 0)
	tH2S := bc(in.TotalSulfide, 0)

	overB := bc(in.TotalBorate, math.NaN())
	overF := bc(in.TotalFluoride, math.NaN())
	overS := bc(in.TotalSulfate, math.NaN())
	overCa := bc(in.TotalCalcium, math.NaN())

	totals := make([]Totals, n)
	ks := make([]Ks, n)
	for i := 0; i < n; i++ {
		var over TotalsOverride
		if !math.IsNaN(overB[i]) {
			v := overB[i] * microToMol
			over.TB = &v
		}
		if !math.IsNaN(overF[i]) {
			v := overF[i] * microToMol
			over.TF = &v
		}
		if !math.IsNaN(overS[i]) {
			v := overS[i] * microToMol
			over.TSO4 = &v
		}
		if !math.IsNaN(overCa[i]) {
			v := overCa[i] * microToMol
			over.TCa = &v
		}
		totals[i] = AssembleTotals(sal[i],
			tPO4[i]*microToMol, tSi[i]*microToMol,
			tNH3[i]*microToMol, tH2S[i]*microToMol,
			in.Opts.Borate, &over)
		ks[i] = AssembleKs(tempC[i], pDbar[i], totals[i], in.Opts)
	}

	core, err := Solve(par1, par2, in.Par1Type, in.Par2Type,
		totals, ks, in.Opts.Scale, in.Opts.Solver)
	if err != nil {
		return nil, err
	}

	res := &Results{
		N:          n,
		Alkalinity: molToMicro(core.TA),
		DIC:        molToMicro(core.TC),
		In:         conditionResults(core, totals, ks, in.Opts),
		Converged:  core.Converged,
		Iterations: core.Iterations,
		Totals:     totals,
	}

	if len(in.TemperatureOut) > 0 || len(in.PressureOut) > 0 {
		tempOut := in.TemperatureOut
		if len(tempOut) == 0 {
			tempOut = tempC
		}
		presOut := in.PressureOut
		if len(presOut) == 0 {
			presOut = pDbar
		}
		tempOut = bc(tempOut, 25)
		presOut = bc(presOut, 0)
		ksOut := make([]Ks, n)
		for i := 0; i < n; i++ {
			ksOut[i] = AssembleKs(tempOut[i], presOut[i], totals[i], in.Opts)
		}
		coreOut, err := Solve(core.TA, core.TC, ParAlkalinity, ParDIC,
			totals, ksOut, in.Opts.Scale, in.Opts.Solver)
		if err != nil {
			return nil, err
		}
		res.Out = conditionResults(coreOut, totals, ksOut, in.Opts)
		for i := 0; i < n; i++ {
			if !coreOut.Converged[i] {
				res.Converged[i] = false
			}
		}
	}
	return res, nil
}

// conditionResults derives the condition-dependent outputs from a
// solved core state, converting to user units.
func conditionResults(s *CoreState, totals []Totals, ks []Ks, o Options) *ConditionResults {
	n := len(s.PH)
	c := &ConditionResults{
		PH:             append([]float64(nil), s.PH...),
		PHTotal:        make([]float64, n),
		PHSeawater:     make([]float64, n),
		PHFree:         make([]float64, n),
		PHNBS:          make([]float64, n),
		FCO2:           molToMicro(s.FC),
		PCO2:           molToMicro(s.PC),
		CO2Aq:          molToMicro(s.CO2),
		Carbonate:      molToMicro(s.CARB),
		Bicarbonate:    molToMicro(s.HCO3),
		OmegaCalcite:   make([]float64, n),
		OmegaAragonite: make([]float64, n),
		Ks:             ks,
	}
	for i := 0; i < n; i++ {
		all := PHToAllScales(s.PH[i], o.Scale, totals[i], ks[i])
		c.PHTotal[i] = all.Total
		c.PHSeawater[i] = all.Seawater
		c.PHFree[i] = all.Free
		c.PHNBS[i] = all.NBS
		rel := NewRelations(totals[i], ks[i], o.Scale, o.Solver.AssumePHTotal)
		c.OmegaCalcite[i] = rel.SaturationCalcite(s.CARB[i])
		c.OmegaAragonite[i] = rel.SaturationAragonite(s.CARB[i])
	}
	c.Buffers = BufferFactors(s, totals, ks, o.Scale, o.Solver.AssumePHTotal)
	scaleBuffers(c.Buffers)
	return c
}

// scaleBuffers converts the buffer factors that carry concentration
// units from mol/kg to µmol/kg.
func scaleBuffers(b *Buffers) {
	for _, v := range [][]float64{
		b.GammaDIC, b.BetaDIC, b.OmegaDIC,
		b.GammaAlk, b.BetaAlk, b.OmegaAlk,
	} {
		for i := range v {
			v[i] /= microToMol
		}
	}
}

// parToInternal converts measured parameter values from user units to
// mol/kg and atm. pH values pass through.
func parToInternal(t ParType, v []float64) []float64 {
	if t == ParPH {
		return v
	}
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] * microToMol
	}
	return out
}

func molToMicro(v []float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] / microToMol
	}
	return out
}

// Value returns the named output across the batch. Condition-dependent
// names refer to the input conditions; prefix them with "out" and an
// upper-case letter (e.g. "outPCO2") for the output conditions.
func (r *Results) Value(name string) ([]float64, error) {
	switch name {
	case "alkalinity":
		return r.Alkalinity, nil
	case "dic":
		return r.DIC, nil
	}
	c := r.In
	if len(name) > 3 && name[:3] == "out" {
		if r.Out == nil {
			return nil, fmt.Errorf("carbsolve: %q requested but no output conditions were computed", name)
		}
		c = r.Out
		name = string(name[3]|0x20) + name[4:]
	}
	switch name {
	case "pH":
		return c.PH, nil
	case "pHTotal":
		return c.PHTotal, nil
	case "pHSeawater":
		return c.PHSeawater, nil
	case "pHFree":
		return c.PHFree, nil
	case "pHNBS":
		return c.PHNBS, nil
	case "fCO2":
		return c.FCO2, nil
	case "pCO2":
		return c.PCO2, nil
	case "aqueousCO2":
		return c.CO2Aq, nil
	case "carbonate":
		return c.Carbonate, nil
	case "bicarbonate":
		return c.Bicarbonate, nil
	case "omegaCalcite":
		return c.OmegaCalcite, nil
	case "omegaAragonite":
		return c.OmegaAragonite, nil
	case "revelle":
		return c.Buffers.Revelle, nil
	case "gammaDIC":
		return c.Buffers.GammaDIC, nil
	case "betaDIC":
		return c.Buffers.BetaDIC, nil
	case "omegaDIC":
		return c.Buffers.OmegaDIC, nil
	case "gammaAlk":
		return c.Buffers.GammaAlk, nil
	case "betaAlk":
		return c.Buffers.BetaAlk, nil
	case "omegaAlk":
		return c.Buffers.OmegaAlk, nil
	case "isocapQ":
		return c.Buffers.IsocapQ, nil
	case "psi":
		return c.Buffers.Psi, nil
	}
	return nil, fmt.Errorf("carbsolve: unknown output %q", name)
}
