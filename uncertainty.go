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

import "fmt"

// Input names accepted by Derivatives and Uncertainty.
const (
	WRTPar1           = "par1"
	WRTPar2           = "par2"
	WRTSalinity       = "salinity"
	WRTTemperature    = "temperature"
	WRTPressure       = "pressure"
	WRTTemperatureOut = "temperatureOut"
	WRTPressureOut    = "pressureOut"
	WRTTotalPhosphate = "totalPhosphate"
	WRTTotalSilicate  = "totalSilicate"
	WRTTotalAmmonia   = "totalAmmonia"
	WRTTotalSulfide   = "totalSulfide"
)

// inputField resolves an input name to the slice within in that holds
// it, along with the default used when the slice is absent.
func inputField(in *Input, name string) (field *[]float64, def float64, ok bool) {
	switch name {
	case WRTPar1:
		return &in.Par1, 0, true
	case WRTPar2:
		return &in.Par2, 0, true
	case WRTSalinity:
		return &in.Salinity, 35, true
	case WRTTemperature:
		return &in.Temperature, 25, true
	case WRTPressure:
		return &in.Pressure, 0, true
	case WRTTemperatureOut:
		return &in.TemperatureOut, 25, true
	case WRTPressureOut:
		return &in.PressureOut, 0, true
	case WRTTotalPhosphate:
		return &in.TotalPhosphate, 0, true
	case WRTTotalSilicate:
		return &in.TotalSilicate, 0, true
	case WRTTotalAmmonia:
		return &in.TotalAmmonia, 0, true
	case WRTTotalSulfide:
		return &in.TotalSulfide, 0, true
	}
	return nil, 0, false
}

// fdStep is the half-width of the central difference for each input, in
// that input's user units.
func fdStep(in *Input, name string) float64 {
	switch name {
	case WRTPar1:
		if in.Par1Type == ParPH {
			return 1e-5
		}
		return 1e-3
	case WRTPar2:
		if in.Par2Type == ParPH {
			return 1e-5
		}
		return 1e-3
	case WRTSalinity, WRTTemperature, WRTTemperatureOut:
		return 1e-4
	case WRTPressure, WRTPressureOut:
		return 1e-2
	default:
		return 1e-3
	}
}

// Derivatives computes the first derivative of the named output with
// respect to each named input, per batch element, in user units.
// Derivatives of the core variables with respect to the two measured
// parameters are exact; the remaining combinations use a central finite
// difference around the given inputs. Unknown names are rejected before
// any computation runs.
func Derivatives(in *Input, output string, wrt []string) (map[string][]float64, error) {
	for _, name := range wrt {
		if _, _, ok := inputField(in, name); !ok {
			return nil, fmt.Errorf("carbsolve: cannot differentiate with respect to unknown input %q", name)
		}
	}
	base, err := Calc(in)
	if err != nil {
		return nil, err
	}
	if _, err := base.Value(output); err != nil {
		return nil, err
	}

	out := make(map[string][]float64, len(wrt))
	for _, name := range wrt {
		var d []float64
		if (name == WRTPar1 || name == WRTPar2) && isCoreOutput(output) {
			d, err = exactParDerivative(in, base, output, name)
		} else {
			d, err = fdDerivative(in, output, name)
		}
		if err != nil {
			return nil, err
		}
		out[name] = d
	}
	return out, nil
}

// Uncertainty propagates independent standard uncertainties in the
// named inputs through to the named output, per batch element.
func Uncertainty(in *Input, output string, sigmas map[string]float64) ([]float64, error) {
	wrt := make([]string, 0, len(sigmas))
	for name := range sigmas {
		wrt = append(wrt, name)
	}
	derivs, err := Derivatives(in, output, wrt)
	if err != nil {
		return nil, err
	}
	return PropagateIndependent(derivs, sigmas)
}

func isCoreOutput(output string) bool {
	for _, o := range CoreOutputs {
		if string(o) == output {
			return true
		}
	}
	return false
}

// exactParDerivative differentiates a core output with respect to one
// of the measured parameters using the solved state, and rescales from
// internal to user units.
func exactParDerivative(in *Input, base *Results, output, name string) ([]float64, error) {
	x, y := in.Par1Type, in.Par2Type
	if name == WRTPar2 {
		x, y = y, x
	}
	core := coreFromResults(base)
	d, err := DCoreDPar(core, x, y, base.Totals, base.In.Ks,
		in.Opts.Scale, in.Opts.Solver.AssumePHTotal)
	if err != nil {
		return nil, err
	}
	dv := d[OutputVar(output)]
	scale := unitFactor(outputOfPar(x)) / unitFactor(OutputVar(output))
	out := make([]float64, len(dv))
	for i := range dv {
		out[i] = dv[i] * scale
	}
	return out, nil
}

// unitFactor is the factor converting an output's user units to
// internal units.
func unitFactor(o OutputVar) float64 {
	if o == OutPH {
		return 1
	}
	return microToMol
}

// coreFromResults rebuilds the internal-unit core state from
// user-facing results.
func coreFromResults(r *Results) *CoreState {
	return &CoreState{
		TA:         microSlice(r.Alkalinity),
		TC:         microSlice(r.DIC),
		PH:         r.In.PH,
		FC:         microSlice(r.In.FCO2),
		PC:         microSlice(r.In.PCO2),
		CO2:        microSlice(r.In.CO2Aq),
		CARB:       microSlice(r.In.Carbonate),
		HCO3:       microSlice(r.In.Bicarbonate),
		Converged:  r.Converged,
		Iterations: r.Iterations,
	}
}

func microSlice(v []float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] * microToMol
	}
	return out
}

// fdDerivative evaluates d(output)/d(name) by a central difference,
// re-solving the whole system at the shifted inputs.
func fdDerivative(in *Input, output, name string) ([]float64, error) {
	h := fdStep(in, name)
	up, err := calcShifted(in, name, h)
	if err != nil {
		return nil, err
	}
	down, err := calcShifted(in, name, -h)
	if err != nil {
		return nil, err
	}
	vUp, err := up.Value(output)
	if err != nil {
		return nil, err
	}
	vDown, err := down.Value(output)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vUp))
	for i := range out {
		out[i] = (vUp[i] - vDown[i]) / (2 * h)
	}
	return out, nil
}

// calcShifted runs Calc with one input shifted by delta everywhere.
func calcShifted(in *Input, name string, delta float64) (*Results, error) {
	shifted := *in
	field, def, _ := inputField(&shifted, name)
	orig := *field
	if len(orig) == 0 {
		// Absent output conditions follow the input conditions, so the
		// difference must be centered there rather than on the default.
		switch name {
		case WRTTemperatureOut:
			orig = in.Temperature
		case WRTPressureOut:
			orig = in.Pressure
		}
	}
	if len(orig) == 0 {
		orig = []float64{def}
	}
	v := make([]float64, len(orig))
	for i := range v {
		v[i] = orig[i] + delta
	}
	*field = v
	return Calc(&shifted)
}
