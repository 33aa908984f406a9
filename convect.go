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

// Package convect implements a triggered-convection mass-source
// parameterization for shallow-water models. Each grid cell carries a
// two-state convective life cycle: when the local fluid height crosses a
// threshold the cell begins a convective event of fixed duration, during
// which it injects (or, in boundary-layer mode, removes) mass in a
// radius-limited neighborhood following a parabolic pulse in time and a
// triangular profile in space.
//
// The scheme is driven by an external time integrator through two calls:
// (*Domain).OnStepStart, which advances the per-cell convective state once
// per step, and (*Domain).SourceTerm, which returns the net forcing on the
// height equation at a single cell. Between those two calls the scheme
// state is immutable, so SourceTerm may be evaluated concurrently for
// different cells.
//
// The package also contains a standalone source-only driver (Simulation)
// that integrates the height field under the parameterized forcing alone.
// It is meant for exercising and monitoring the scheme; advection and wave
// dynamics are the host model's business.
package convect
