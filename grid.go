/*
Copyright © 2026 the convect authors.
This file is part of convect.

convect is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

convect is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with convect.  If not, see <http://www.gnu.org/licenses/>.
*/

package convect

// Grid describes the logical periodic lattice the scheme runs on. Cell
// values are stored row-major, x fastest. Periodicity is applied at
// lookup time through the Wrap functions instead of through a replicated
// halo, so neighbor reads can never observe a stale boundary copy; the
// configured halo width is still validated at setup for hosts that do
// replicate boundaries.
type Grid struct {
	Nx, Ny int     // number of cells
	Dx, Dy float64 // cell size [m]
}

// NumCells returns the total number of cells in the grid.
func (g *Grid) NumCells() int { return g.Nx * g.Ny }

// Index returns the linear row-major index of cell (i, j).
func (g *Grid) Index(i, j int) int { return j*g.Nx + i }

// Coords is the inverse of Index.
func (g *Grid) Coords(k int) (i, j int) { return k % g.Nx, k / g.Nx }

// WrapX maps an x index, possibly outside [0, Nx), onto the periodic
// domain.
func (g *Grid) WrapX(i int) int { return ((i % g.Nx) + g.Nx) % g.Nx }

// WrapY maps a y index, possibly outside [0, Ny), onto the periodic
// domain.
func (g *Grid) WrapY(j int) int { return ((j % g.Ny) + g.Ny) % g.Ny }

// Contains reports whether (i, j) lies in the grid interior.
func (g *Grid) Contains(i, j int) bool {
	return i >= 0 && i < g.Nx && j >= 0 && j < g.Ny
}
