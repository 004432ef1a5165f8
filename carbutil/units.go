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
	"github.com/ctessum/unit"

	"github.com/oceanmodel/carbsolve"
)

// pascalPerDbar converts decibars to pascals.
const pascalPerDbar = 1e4

// Celsius returns a dimensioned temperature from degrees Celsius.
func Celsius(c float64) *unit.Unit {
	return unit.New(carbsolve.TempCToK(c), unit.Kelvin)
}

// Decibar returns a dimensioned pressure from decibars.
func Decibar(d float64) *unit.Unit {
	return unit.New(d*pascalPerDbar, unit.Pascal)
}

// TemperatureCelsius extracts degrees Celsius from a dimensioned
// temperature, checking that it is one.
func TemperatureCelsius(u *unit.Unit) (float64, error) {
	if err := u.Check(unit.Kelvin); err != nil {
		return 0, err
	}
	return carbsolve.TempKToC(u.Value()), nil
}

// PressureDecibar extracts decibars from a dimensioned pressure,
// checking that it is one.
func PressureDecibar(u *unit.Unit) (float64, error) {
	if err := u.Check(unit.Pascal); err != nil {
		return 0, err
	}
	return u.Value() / pascalPerDbar, nil
}
