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

// CarbonicOpt selects the empirical formulation for the carbonic acid
// dissociation constants K1 and K2.
type CarbonicOpt int

const (
	// CarbonicLueker00 is Lueker, Dickson and Keeling (2000), Total scale.
	CarbonicLueker00 CarbonicOpt = iota + 1
	// CarbonicDickson87 is Mehrbach et al. (1973) refit by Dickson and
	// Millero (1987), Seawater scale.
	CarbonicDickson87
	// CarbonicMillero10 is Millero (2010), Seawater scale.
	CarbonicMillero10
)

// BisulfateOpt selects the formulation for the bisulfate dissociation
// constant KSO4.
type BisulfateOpt int

const (
	// BisulfateDickson90 is Dickson (1990a).
	BisulfateDickson90 BisulfateOpt = iota + 1
	// BisulfateKhoo77 is Khoo et al. (1977).
	BisulfateKhoo77
)

// FluorideOpt selects the formulation for the hydrogen fluoride
// dissociation constant KF.
type FluorideOpt int

const (
	// FluorideDicksonRiley79 is Dickson and Riley (1979).
	FluorideDicksonRiley79 FluorideOpt = iota + 1
	// FluoridePerezFraga87 is Perez and Fraga (1987).
	FluoridePerezFraga87
)

// BorateOpt selects the boron-to-salinity ratio.
type BorateOpt int

const (
	// BorateUppstrom74 is Uppström (1974).
	BorateUppstrom74 BorateOpt = iota + 1
	// BorateLee10 is Lee et al. (2010).
	BorateLee10
)

// FHOpt selects the formulation for the hydrogen ion activity coefficient
// ratio fH used by the NBS pH scale.
type FHOpt int

const (
	// FHTakahashi82 is Takahashi et al. (1982).
	FHTakahashi82 FHOpt = iota + 1
	// FHPeng87 is Peng et al. (1987).
	FHPeng87
)

// Options selects the equilibrium constant formulations, the working pH
// scale, and the solver behavior for one calculation. The zero value is
// not usable; start from DefaultOptions.
type Options struct {
	Carbonic  CarbonicOpt
	Bisulfate BisulfateOpt
	Fluoride  FluorideOpt
	Borate    BorateOpt
	FH        FHOpt

	// Scale is the pH scale that pH inputs are reported on and that the
	// equilibrium constants are expressed on.
	Scale Scale

	Solver SolverConfig
}

// DefaultOptions returns the recommended default configuration:
// Lueker et al. (2000) carbonic constants, Dickson (1990a) bisulfate,
// Dickson and Riley (1979) fluoride, Uppström (1974) boron,
// Takahashi et al. (1982) fH, and the Total pH scale.
func DefaultOptions() Options {
	return Options{
		Carbonic:  CarbonicLueker00,
		Bisulfate: BisulfateDickson90,
		Fluoride:  FluorideDicksonRiley79,
		Borate:    BorateUppstrom74,
		FH:        FHTakahashi82,
		Scale:     ScaleTotal,
		Solver:    DefaultSolverConfig(),
	}
}

// Check reports whether every option holds a defined value.
func (o Options) Check() error {
	if o.Carbonic < CarbonicLueker00 || o.Carbonic > CarbonicMillero10 {
		return fmt.Errorf("carbsolve: invalid carbonic constant option %d", int(o.Carbonic))
	}
	if o.Bisulfate < BisulfateDickson90 || o.Bisulfate > BisulfateKhoo77 {
		return fmt.Errorf("carbsolve: invalid bisulfate constant option %d", int(o.Bisulfate))
	}
	if o.Fluoride < FluorideDicksonRiley79 || o.Fluoride > FluoridePerezFraga87 {
		return fmt.Errorf("carbsolve: invalid fluoride constant option %d", int(o.Fluoride))
	}
	if o.Borate < BorateUppstrom74 || o.Borate > BorateLee10 {
		return fmt.Errorf("carbsolve: invalid borate option %d", int(o.Borate))
	}
	if o.FH < FHTakahashi82 || o.FH > FHPeng87 {
		return fmt.Errorf("carbsolve: invalid fH option %d", int(o.FH))
	}
	if !o.Scale.valid() {
		return fmt.Errorf("carbsolve: invalid pH scale %d", int(o.Scale))
	}
	return nil
}

// OptionsOldToNew converts a traditional combined CO2SYS KSO4CONSTANTS
// option code into the separated bisulfate and borate options.
func OptionsOldToNew(kso4Constants int) (BisulfateOpt, BorateOpt, error) {
	switch kso4Constants {
	case 1:
		return BisulfateDickson90, BorateUppstrom74, nil
	case 2:
		return BisulfateKhoo77, BorateUppstrom74, nil
	case 3:
		return BisulfateDickson90, BorateLee10, nil
	case 4:
		return BisulfateKhoo77, BorateLee10, nil
	default:
		return 0, 0, fmt.Errorf("carbsolve: invalid KSO4CONSTANTS option %d", kso4Constants)
	}
}

// OptionsNewToOld converts separated bisulfate and borate options back to
// the traditional combined CO2SYS KSO4CONSTANTS code. It is the inverse of
// OptionsOldToNew.
func OptionsNewToOld(bisulfate BisulfateOpt, borate BorateOpt) (int, error) {
	switch {
	case bisulfate == BisulfateDickson90 && borate == BorateUppstrom74:
		return 1, nil
	case bisulfate == BisulfateKhoo77 && borate == BorateUppstrom74:
		return 2, nil
	case bisulfate == BisulfateDickson90 && borate == BorateLee10:
		return 3, nil
	case bisulfate == BisulfateKhoo77 && borate == BorateLee10:
		return 4, nil
	default:
		return 0, fmt.Errorf("carbsolve: invalid bisulfate/borate option pair (%d, %d)",
			int(bisulfate), int(borate))
	}
}
