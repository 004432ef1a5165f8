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
	"os"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"

	"github.com/oceanmodel/carbsolve"
)

// Run solves the carbonate system for the configured sample table and
// writes the result table.
func Run(cfg *viper.Viper) error {
	in, err := InputFromCfg(cfg)
	if err != nil {
		return err
	}
	start := time.Now()
	res, err := carbsolve.Calc(in)
	if err != nil {
		return err
	}
	nConv := 0
	for _, c := range res.Converged {
		if c {
			nConv++
		}
	}
	Log.WithFields(logrus.Fields{
		"samples":   res.N,
		"converged": nConv,
		"elapsed":   time.Since(start),
	}).Info("solved carbonate system")
	if nConv < res.N {
		Log.WithFields(logrus.Fields{
			"failed": res.N - nConv,
		}).Warn("some samples did not converge; their outputs are NaN")
	}
	return WriteResultsFile(cfg.GetString("OutputFile"), res,
		cfg.GetStringSlice("OutputVariables"))
}

// RunUncertainty propagates the configured measurement uncertainties
// through to one result variable for the configured sample table and
// writes the per-sample combined standard uncertainty.
func RunUncertainty(cfg *viper.Viper) error {
	in, err := InputFromCfg(cfg)
	if err != nil {
		return err
	}
	sigmas, err := Sigmas(cfg)
	if err != nil {
		return err
	}
	output := cfg.GetString("Uncertainty.Output")
	start := time.Now()
	u, err := carbsolve.Uncertainty(in, output, sigmas)
	if err != nil {
		return err
	}
	Log.WithFields(logrus.Fields{
		"samples": len(u),
		"output":  output,
		"inputs":  len(sigmas),
		"elapsed": time.Since(start),
	}).Info("propagated uncertainties")

	f, err := os.Create(cfg.GetString("OutputFile"))
	if err != nil {
		return err
	}
	if err := WriteColumnCSV(f, "u_"+output, u); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
