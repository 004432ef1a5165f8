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

// Package carbutil holds the configuration and input/output handling for
// the carbsolve command line interface.
package carbutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oceanmodel/carbsolve"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log receives progress information. It defaults to the standard logger.
var Log logrus.FieldLogger = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to carbsolve.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputFile",
			usage: `
              InputFile specifies the sample table to read. The format is
              chosen by extension: .csv or .xlsx. The table must have a
              header row naming each column; par1 and par2 are required
              and the remaining columns are optional.`,
			shorthand:  "i",
			defaultVal: "samples.csv",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile specifies the path for the result table. The
              format is chosen by extension: .csv or .xlsx.`,
			shorthand:  "o",
			defaultVal: "results.csv",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables lists the result variables to write. An
              empty list writes the full set.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "Par1Type",
			usage: `
              Par1Type gives the meaning of the par1 column: 1 total
              alkalinity, 2 dissolved inorganic carbon, 3 pH, 4 pCO2,
              5 fCO2, 6 carbonate ion, 7 bicarbonate ion, 8 aqueous CO2.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Par2Type",
			usage: `
              Par2Type gives the meaning of the par2 column, using the
              same codes as Par1Type.`,
			defaultVal: 2,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Scale",
			usage: `
              Scale selects the pH scale results are reported on:
              1 Total, 2 Seawater, 3 Free, 4 NBS.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Constants.Carbonic",
			usage: `
              Constants.Carbonic selects the carbonic acid dissociation
              constants: 1 Lueker et al. (2000), 2 Dickson and Millero
              (1987), 3 Millero (2010).`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Constants.Bisulfate",
			usage: `
              Constants.Bisulfate selects the bisulfate dissociation
              constant: 1 Dickson (1990a), 2 Khoo et al. (1977).`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Constants.Fluoride",
			usage: `
              Constants.Fluoride selects the hydrogen fluoride
              dissociation constant: 1 Dickson and Riley (1979), 2 Perez
              and Fraga (1987).`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Constants.Borate",
			usage: `
              Constants.Borate selects the total borate to salinity
              ratio: 1 Uppström (1974), 2 Lee et al. (2010).`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Constants.FH",
			usage: `
              Constants.FH selects the hydrogen ion activity factor used
              by the NBS scale: 1 Takahashi et al. (1982), 2 Peng et
              al. (1987).`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Solver.Tolerance",
			usage: `
              Solver.Tolerance is the convergence criterion on the pH
              update magnitude.`,
			defaultVal: 1e-8,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Solver.MaxIter",
			usage: `
              Solver.MaxIter is the iteration limit per sample.`,
			defaultVal: 50,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Solver.InitialPH",
			usage: `
              Solver.InitialPH seeds the pH iteration when no estimate is
              available.`,
			defaultVal: 8.0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Solver.FixedGuess",
			usage: `
              Solver.FixedGuess always starts the iteration from
              Solver.InitialPH instead of estimating a starting point
              from the carbonate terms.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Solver.UpdateAllPH",
			usage: `
              Solver.UpdateAllPH keeps updating already-converged samples
              of a batch until the whole batch has converged, instead of
              freezing each sample at its first convergence.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Solver.HalveBigJumps",
			usage: `
              Solver.HalveBigJumps repeatedly halves an iteration step
              larger than one pH unit instead of clamping it.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Solver.AssumePHTotal",
			usage: `
              Solver.AssumePHTotal applies the Total scale conversion to
              the free hydrogen ion alkalinity term on every pH scale,
              reproducing pre-1998 versions of CO2SYS.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), uncertCmd.Flags()},
		},
		{
			name: "Uncertainty.Output",
			usage: `
              Uncertainty.Output names the result variable whose combined
              standard uncertainty is computed.`,
			defaultVal: "pH",
			flagsets:   []*pflag.FlagSet{uncertCmd.Flags()},
		},
		{
			name: "Uncertainty.Sigmas",
			usage: `
              Uncertainty.Sigmas maps input names (par1, par2, salinity,
              temperature, pressure, temperatureOut, pressureOut,
              totalPhosphate, totalSilicate, totalAmmonia, totalSulfide)
              to their standard uncertainties.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{uncertCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("CARBSOLVE")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(uncertCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("carbsolve: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "carbsolve",
	Short: "A marine carbonate system solver.",
	Long: `carbsolve calculates the state of the marine carbonate system from
any two measured parameters, together with saturation states, buffer
factors and first order uncertainties.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'CARBSOLVE_var' where 'var'
is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of carbsolve.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("carbsolve v%s\n", carbsolve.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Solve the carbonate system for a sample table.",
	Long: `run reads the sample table given by InputFile, solves the carbonate
system for every sample and writes the requested result variables to
OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(Cfg)
	},
	DisableAutoGenTag: true,
}

var uncertCmd = &cobra.Command{
	Use:   "uncertainty",
	Short: "Propagate measurement uncertainties.",
	Long: `uncertainty reads the sample table given by InputFile and propagates
the standard uncertainties in Uncertainty.Sigmas through to the result
variable named by Uncertainty.Output, writing the per-sample combined
standard uncertainty to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunUncertainty(Cfg)
	},
	DisableAutoGenTag: true,
}
