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

// Package carbsolve models the marine carbonate system. Given any two
// of total alkalinity, dissolved inorganic carbon, pH, CO2 fugacity or
// partial pressure, carbonate ion, bicarbonate ion and aqueous CO2, it
// solves for the rest, along with mineral saturation states, buffer
// factors, exact sensitivities of every output to the measured pair,
// and first order uncertainty propagation.
//
// Calc is the main entry point: it takes batches in oceanographic user
// units (µmol/kg, µatm, °C, dbar) and handles broadcasting, equilibrium
// constant assembly, pH scale conversions and re-solving at a second
// set of temperature and pressure conditions. The lower level Solve,
// DCoreDPar and BufferFactors functions work in mol/kg and atm.
package carbsolve
