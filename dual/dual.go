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

// Package dual implements forward-mode automatic differentiation using
// dual numbers. A dual number carries a value together with the derivative
// of that value with respect to a single seeded variable, so evaluating a
// function with a seeded argument yields the function value and its exact
// partial derivative in one pass, without finite differencing.
//
// Each operation returns a new number; no shared state is mutated, so
// independent differentiation passes may run concurrently.
package dual

import "math"

// ln10 is the natural logarithm of 10.
var ln10 = math.Log(10)

// Num is a dual number: V is the value and D is the derivative of V with
// respect to the seeded input variable.
type Num struct {
	V float64
	D float64
}

// Con returns v as a constant (zero derivative).
func Con(v float64) Num { return Num{V: v} }

// Var returns v seeded as the differentiation variable (unit derivative).
func Var(v float64) Num { return Num{V: v, D: 1} }

// Add returns a + b.
func (a Num) Add(b Num) Num { return Num{V: a.V + b.V, D: a.D + b.D} }

// Sub returns a - b.
func (a Num) Sub(b Num) Num { return Num{V: a.V - b.V, D: a.D - b.D} }

// Mul returns a * b.
func (a Num) Mul(b Num) Num { return Num{V: a.V * b.V, D: a.D*b.V + a.V*b.D} }

// Div returns a / b.
func (a Num) Div(b Num) Num {
	return Num{V: a.V / b.V, D: (a.D*b.V - a.V*b.D) / (b.V * b.V)}
}

// AddF returns a + f for a constant f.
func (a Num) AddF(f float64) Num { return Num{V: a.V + f, D: a.D} }

// SubF returns a - f for a constant f.
func (a Num) SubF(f float64) Num { return Num{V: a.V - f, D: a.D} }

// MulF returns a * f for a constant f.
func (a Num) MulF(f float64) Num { return Num{V: a.V * f, D: a.D * f} }

// DivF returns a / f for a constant f.
func (a Num) DivF(f float64) Num { return Num{V: a.V / f, D: a.D / f} }

// Neg returns -a.
func (a Num) Neg() Num { return Num{V: -a.V, D: -a.D} }

// FDiv returns f / a for a constant f.
func FDiv(f float64, a Num) Num {
	return Num{V: f / a.V, D: -f * a.D / (a.V * a.V)}
}

// Sqrt returns the square root of a.
func Sqrt(a Num) Num {
	s := math.Sqrt(a.V)
	return Num{V: s, D: a.D / (2 * s)}
}

// Exp returns e**a.
func Exp(a Num) Num {
	e := math.Exp(a.V)
	return Num{V: e, D: e * a.D}
}

// Log returns the natural logarithm of a.
func Log(a Num) Num { return Num{V: math.Log(a.V), D: a.D / a.V} }

// Log10 returns the base-10 logarithm of a.
func Log10(a Num) Num { return Num{V: math.Log10(a.V), D: a.D / (a.V * ln10)} }

// Pow10 returns 10**a.
func Pow10(a Num) Num {
	p := math.Pow(10, a.V)
	return Num{V: p, D: p * ln10 * a.D}
}

// Pow returns a**p for a constant exponent p.
func Pow(a Num, p float64) Num {
	return Num{V: math.Pow(a.V, p), D: p * math.Pow(a.V, p-1) * a.D}
}
