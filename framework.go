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
	"fmt"

	"github.com/ctessum/sparse"
)

// Domain holds the convective state of the model: which cells are
// currently convecting and when each active event began. Both fields are
// allocated once, mutated in place by OnStepStart, and read-only between
// steps. The height field itself belongs to the host model; the Domain
// only ever reads it.
type Domain struct {
	cfg     *Config
	grid    *Grid
	stencil *Stencil
	exec    Executor

	convecting  []bool             // true iff the cell is inside an active event
	triggerTime *sparse.DenseArray // start time of each cell's current event [s]

	time float64 // time of the most recent OnStepStart call [s]
}

// NewDomain validates cfg and allocates the convective state for a run.
// All cells start idle with trigger time zero.
func NewDomain(cfg *Config) (*Domain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	stencil, err := NewStencil(cfg.ConvRadius, cfg.Dx, cfg.Q0)
	if err != nil {
		return nil, err
	}
	grid := &Grid{Nx: cfg.Nx, Ny: cfg.Ny, Dx: cfg.Dx, Dy: cfg.Dy}
	return &Domain{
		cfg:         cfg,
		grid:        grid,
		stencil:     stencil,
		exec:        NewExecutor(cfg.NumProcessors),
		convecting:  make([]bool, grid.NumCells()),
		triggerTime: sparse.ZerosDense(cfg.Ny, cfg.Nx),
	}, nil
}

// Config returns the run configuration.
func (d *Domain) Config() *Config { return d.cfg }

// Grid returns the model grid.
func (d *Domain) Grid() *Grid { return d.grid }

// Stencil returns the heating stencil.
func (d *Domain) Stencil() *Stencil { return d.stencil }

// Convecting reports whether cell (i, j) is inside an active convective
// event as of the most recent OnStepStart call.
func (d *Domain) Convecting(i, j int) bool {
	return d.convecting[d.grid.Index(i, j)]
}

// TriggerTime returns the start time of the current (or most recent)
// convective event at cell (i, j).
func (d *Domain) TriggerTime(i, j int) float64 {
	return d.triggerTime.Get(j, i)
}

// ConvectingCount returns the number of cells inside an active event.
func (d *Domain) ConvectingCount() int {
	n := 0
	for _, c := range d.convecting {
		if c {
			n++
		}
	}
	return n
}

// ConvectingMask returns a copy of the per-cell convecting flags in
// row-major order.
func (d *Domain) ConvectingMask() []bool {
	mask := make([]bool, len(d.convecting))
	copy(mask, d.convecting)
	return mask
}

// OnStepStart advances the convective state of every cell to time t using
// the current height field. The host integrator must call it exactly once
// per step, before any SourceTerm query for that step: SourceTerm reads
// the state this call writes.
//
// Each cell's new state depends only on its own prior state and its own
// height, so the sweep runs in place and in parallel with no ordering
// between cells.
func (d *Domain) OnStepStart(height *sparse.DenseArray, t float64) error {
	if err := d.checkHeight(height); err != nil {
		return err
	}
	d.updateTriggers(height, t)
	d.time = t
	return nil
}

// Time returns the time of the most recent OnStepStart call.
func (d *Domain) Time() float64 { return d.time }

func (d *Domain) checkHeight(height *sparse.DenseArray) error {
	if height == nil {
		return fmt.Errorf("convect: nil height field")
	}
	if len(height.Shape) != 2 || height.Shape[0] != d.cfg.Ny || height.Shape[1] != d.cfg.Nx {
		return fmt.Errorf("convect: height field shape %v does not match grid %d×%d",
			height.Shape, d.cfg.Ny, d.cfg.Nx)
	}
	return nil
}
