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

package carbutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ctessum/unit"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/oceanmodel/carbsolve"
)

// OptionsFromCfg assembles the solver and constant options from the
// configuration.
func OptionsFromCfg(cfg *viper.Viper) (carbsolve.Options, error) {
	o := carbsolve.DefaultOptions()
	o.Carbonic = carbsolve.CarbonicOpt(cfg.GetInt("Constants.Carbonic"))
	o.Bisulfate = carbsolve.BisulfateOpt(cfg.GetInt("Constants.Bisulfate"))
	o.Fluoride = carbsolve.FluorideOpt(cfg.GetInt("Constants.Fluoride"))
	o.Borate = carbsolve.BorateOpt(cfg.GetInt("Constants.Borate"))
	o.FH = carbsolve.FHOpt(cfg.GetInt("Constants.FH"))
	o.Scale = carbsolve.Scale(cfg.GetInt("Scale"))

	o.Solver.Tolerance = cfg.GetFloat64("Solver.Tolerance")
	o.Solver.MaxIter = cfg.GetInt("Solver.MaxIter")
	o.Solver.InitialPH = cfg.GetFloat64("Solver.InitialPH")
	if cfg.GetBool("Solver.FixedGuess") {
		o.Solver.Guess = carbsolve.GuessFixed
	} else {
		o.Solver.Guess = carbsolve.GuessEstimate
	}
	o.Solver.UpdateAllPH = cfg.GetBool("Solver.UpdateAllPH")
	o.Solver.HalveBigJumps = cfg.GetBool("Solver.HalveBigJumps")
	o.Solver.AssumePHTotal = cfg.GetBool("Solver.AssumePHTotal")
	return o, o.Check()
}

// InputFromCfg reads the sample table named by InputFile and assembles
// the batch input.
func InputFromCfg(cfg *viper.Viper) (*carbsolve.Input, error) {
	opts, err := OptionsFromCfg(cfg)
	if err != nil {
		return nil, err
	}
	cols, err := ReadInputFile(cfg.GetString("InputFile"))
	if err != nil {
		return nil, err
	}
	in := &carbsolve.Input{
		Par1Type: carbsolve.ParType(cfg.GetInt("Par1Type")),
		Par2Type: carbsolve.ParType(cfg.GetInt("Par2Type")),
		Opts:     opts,
	}
	for name, col := range cols {
		switch name {
		case "par1":
			in.Par1 = col
		case "par2":
			in.Par2 = col
		case "salinity":
			in.Salinity = col
		case "temperature":
			in.Temperature = col
		case "temperatureK":
			in.Temperature = make([]float64, len(col))
			for i, v := range col {
				c, err := TemperatureCelsius(unit.New(v, unit.Kelvin))
				if err != nil {
					return nil, err
				}
				in.Temperature[i] = c
			}
		case "pressure":
			in.Pressure = col
		case "pressurePa":
			in.Pressure = make([]float64, len(col))
			for i, v := range col {
				p, err := PressureDecibar(unit.New(v, unit.Pascal))
				if err != nil {
					return nil, err
				}
				in.Pressure[i] = p
			}
		case "temperatureOut":
			in.TemperatureOut = col
		case "pressureOut":
			in.PressureOut = col
		case "totalPhosphate":
			in.TotalPhosphate = col
		case "totalSilicate":
			in.TotalSilicate = col
		case "totalAmmonia":
			in.TotalAmmonia = col
		case "totalSulfide":
			in.TotalSulfide = col
		case "totalBorate":
			in.TotalBorate = col
		case "totalFluoride":
			in.TotalFluoride = col
		case "totalSulfate":
			in.TotalSulfate = col
		case "totalCalcium":
			in.TotalCalcium = col
		default:
			return nil, fmt.Errorf("carbsolve: unknown input column %q", name)
		}
	}
	return in, nil
}

// Sigmas parses the Uncertainty.Sigmas configuration entry.
func Sigmas(cfg *viper.Viper) (map[string]float64, error) {
	raw := GetStringMapString("Uncertainty.Sigmas", cfg)
	out := make(map[string]float64, len(raw))
	for name, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("carbsolve: invalid uncertainty %q for input %q", s, name)
		}
		out[name] = v
	}
	return out, nil
}

// GetStringMapString returns a map of strings from the configuration,
// accepting either a native map or a JSON-encoded string.
func GetStringMapString(varName string, cfg *viper.Viper) map[string]string {
	i := cfg.Get(varName)
	switch i.(type) {
	case map[string]string:
		return i.(map[string]string)
	case map[string]interface{}:
		return cast.ToStringMapString(i)
	case string:
		b := bytes.NewBuffer(([]byte)(i.(string)))
		d := json.NewDecoder(b)
		o := make(map[string]string)
		if err := d.Decode(&o); err != nil {
			panic(err)
		}
		return o
	default:
		panic(fmt.Errorf("carbsolve: invalid type %T for %s", i, varName))
	}
}
