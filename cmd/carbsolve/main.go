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

// Command carbsolve is a command-line interface for the CarbSolve
// marine carbonate system solver.
package main

import (
	"fmt"
	"os"

	"github.com/oceanmodel/carbsolve/carbutil"
)

func main() {
	if err := carbutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
