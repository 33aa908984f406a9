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

import (
	"math"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// Stencil is the precomputed spatial profile of a single convective
// event's mass source: a triangular (linearly decreasing) weight inside
// the disk of radius ConvRadius, zero outside. Weights are indexed by
// signed cell offset from the event center. The table is built once at
// setup and is read-only afterwards.
type Stencil struct {
	// HalfWidth is the table extent r: offsets run over [-r, r]².
	HalfWidth int

	weights *sparse.DenseArray // (2r+1)×(2r+1), offset (di, dj) at (dj+r, di+r)
}

// NewStencil builds the weight table for a disk of the given radius [m]
// on a grid with cell size dx [m]. The weight at offset (di, dj) is
//
//	amplitude · (1 − d²·dx²/radius²) / (π·radius²)
//
// for d² = di²+dj² inside the disk, and zero outside.
func NewStencil(radius, dx, amplitude float64) (*Stencil, error) {
	if radius <= 0 {
		return nil, configErrorf("ConvRadius", "convective radius %g must be positive", radius)
	}
	if dx <= 0 {
		return nil, configErrorf("Dx", "cell size %g must be positive", dx)
	}
	r := int(math.Round(radius / dx))
	s := &Stencil{
		HalfWidth: r,
		weights:   sparse.ZerosDense(2*r+1, 2*r+1),
	}
	rr := radius * radius
	norm := amplitude / (math.Pi * rr)
	for dj := -r; dj <= r; dj++ {
		for di := -r; di <= r; di++ {
			d2 := float64(di*di+dj*dj) * dx * dx
			if d2 > rr {
				continue
			}
			s.weights.Set(norm*(1-d2/rr), dj+r, di+r)
		}
	}
	return s, nil
}

// At returns the weight at signed offset (di, dj). Offsets beyond the
// table extent return zero.
func (s *Stencil) At(di, dj int) float64 {
	if di < -s.HalfWidth || di > s.HalfWidth || dj < -s.HalfWidth || dj > s.HalfWidth {
		return 0
	}
	return s.weights.Get(dj+s.HalfWidth, di+s.HalfWidth)
}

// Sum returns the sum of all stencil weights.
func (s *Stencil) Sum() float64 {
	return floats.Sum(s.weights.Elements)
}
