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

import "github.com/ctessum/sparse"

// pulse is the temporal profile of a convective event: a parabola in the
// elapsed time that is zero at both event boundaries and maximal, with
// value 1/tau, at mid-event. Values pushed below zero by floating-point
// drift at the boundaries clamp to the analytic boundary value.
func pulse(elapsed, tau float64) float64 {
	q := 2*elapsed/tau - 1
	p := (1 - q*q) / tau
	if p < 0 {
		return 0
	}
	return p
}

// SourceTerm returns the net forcing on the height equation at cell
// (i, j) and time t: the stencil-weighted sum of the time pulses of all
// convecting cells within the stencil radius, plus the radiative term and
// Newtonian relaxation toward RelaxHeight. In boundary-layer mode the
// convective and radiative contributions flip sign, so active events
// remove mass instead of adding it.
//
// The result is a pure function of the state written by the most recent
// OnStepStart call, the given time, and the given height field; the call
// mutates nothing and is safe to run concurrently for different cells.
// Querying a cell outside the grid interior returns an *IndexError.
func (d *Domain) SourceTerm(i, j int, t float64, height *sparse.DenseArray) (float64, error) {
	if !d.grid.Contains(i, j) {
		return 0, &IndexError{I: i, J: j, Nx: d.grid.Nx, Ny: d.grid.Ny}
	}
	if err := d.checkHeight(height); err != nil {
		return 0, err
	}
	return d.sourceTerm(i, j, t, height), nil
}

// sourceTerm is SourceTerm without the contract checks, for sweeps over
// the whole interior that have already validated their inputs.
func (d *Domain) sourceTerm(i, j int, t float64, height *sparse.DenseArray) float64 {
	cfg, r := d.cfg, d.stencil.HalfWidth

	// Each convecting neighbor contributes its stencil weight at the
	// offset from the event center to this cell, i.e. the negated offset,
	// times its time pulse.
	var conv float64
	for dj := -r; dj <= r; dj++ {
		jj := d.grid.WrapY(j + dj)
		for di := -r; di <= r; di++ {
			w := d.stencil.At(-di, -dj)
			if w == 0 {
				continue
			}
			k := d.grid.Index(d.grid.WrapX(i+di), jj)
			if !d.convecting[k] {
				continue
			}
			conv += w * pulse(t-d.triggerTime.Elements[k], cfg.TauConv)
		}
	}

	var f float64
	if cfg.BoundaryLayer {
		f = -conv - cfg.RadCooling
	} else {
		f = conv + cfg.RadCooling
	}
	f -= (height.Get(j, i) - cfg.RelaxHeight) * cfg.RelaxCoeff
	return f
}
