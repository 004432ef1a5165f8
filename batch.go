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

// BroadcastLength returns the common batch length implied by the given
// slice lengths, where every length must be 1 or equal to the common
// length. A length of 0 marks an absent input and is ignored.
func BroadcastLength(lens ...int) (int, error) {
	n := 1
	for _, l := range lens {
		if l == 0 || l == 1 {
			continue
		}
		if n == 1 {
			n = l
		} else if l != n {
			return 0, fmt.Errorf("carbsolve: input lengths %d and %d cannot be broadcast together", n, l)
		}
	}
	return n, nil
}

// Broadcast extends v to length n: a length-1 slice is repeated, a
// length-n slice is returned unchanged, and a nil slice yields n copies
// of def.
func Broadcast(v []float64, n int, def float64) ([]float64, error) {
	switch len(v) {
	case n:
		if v != nil {
			return v, nil
		}
	case 0:
		// absent
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = v[0]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("carbsolve: cannot broadcast length %d to batch length %d", len(v), n)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = def
	}
	return out, nil
}
