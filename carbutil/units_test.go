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
	"math"
	"testing"

	"github.com/ctessum/unit"
)

func TestUnitRoundTrip(t *testing.T) {
	c, err := TemperatureCelsius(Celsius(25))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c-25) > 1e-12 {
		t.Errorf("temperature = %g, want 25", c)
	}
	d, err := PressureDecibar(Decibar(1000))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d-1000) > 1e-9 {
		t.Errorf("pressure = %g, want 1000", d)
	}
}

func TestUnitDimensionCheck(t *testing.T) {
	if _, err := TemperatureCelsius(unit.New(1, unit.Pascal)); err == nil {
		t.Error("expected an error for a pressure passed as a temperature")
	}
	if _, err := PressureDecibar(unit.New(300, unit.Kelvin)); err == nil {
		t.Error("expected an error for a temperature passed as a pressure")
	}
}
