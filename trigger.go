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

// cellTrigger advances the convective state machine of a single cell to
// time t. A cell is Convecting while less than TauConv has elapsed since
// its trigger time; it begins a new event, with a fresh trigger time,
// when the trigger condition holds and it is not already mid-event. A
// cell whose event expires exactly at t while the trigger condition still
// holds restarts immediately.
//
// In boundary-layer mode the trigger condition is height >= TriggerHeight;
// otherwise it is height <= TriggerHeight.
func cellTrigger(cfg *Config, convecting bool, triggerTime, height, t float64) (bool, float64) {
	stillActive := convecting && t-triggerTime < cfg.TauConv

	var triggered bool
	if cfg.BoundaryLayer {
		triggered = height >= cfg.TriggerHeight
	} else {
		triggered = height <= cfg.TriggerHeight
	}

	if triggered && !stillActive { // new event
		return true, t
	}
	return stillActive || triggered, triggerTime
}

// updateTriggers runs the state machine over every cell. The sweep is in
// place: each cell reads and writes only its own entries, so any cell
// order, including a concurrent one, gives identical results.
func (d *Domain) updateTriggers(height *sparse.DenseArray, t float64) {
	cfg := d.cfg
	d.exec.Sweep(d.grid.NumCells(), func(k int) {
		c, tt := cellTrigger(cfg, d.convecting[k], d.triggerTime.Elements[k],
			height.Elements[k], t)
		d.convecting[k] = c
		d.triggerTime.Elements[k] = tt
	})
}
