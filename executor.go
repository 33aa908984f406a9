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
	"runtime"
	"sync"
)

// An Executor sweeps a per-cell kernel over all cells of the grid. The
// kernel must be independent between cells: it may read shared immutable
// state and write only the entries belonging to its own cell index. Under
// that contract every Executor produces identical results, so the sweep
// strategy is purely a throughput decision made at setup.
type Executor interface {
	Sweep(ncells int, kernel func(k int))
	Name() string
}

// NewExecutor returns the sweep strategy for the given processor count:
// serial for one processor, a worker fan-out otherwise. Zero or a
// negative count sizes the fan-out to GOMAXPROCS.
func NewExecutor(numProcessors int) Executor {
	if numProcessors == 1 {
		return SerialExecutor{}
	}
	return ParallelExecutor{NumProcessors: numProcessors}
}

// SerialExecutor runs the kernel over cells one at a time in index order.
// It is the reference strategy the parallel sweeps are tested against.
type SerialExecutor struct{}

// Sweep implements Executor.
func (SerialExecutor) Sweep(ncells int, kernel func(int)) {
	for k := 0; k < ncells; k++ {
		kernel(k)
	}
}

// Name implements Executor.
func (SerialExecutor) Name() string { return "serial" }

// ParallelExecutor fans the kernel out over a fixed number of goroutines,
// each taking a strided subset of the cells.
type ParallelExecutor struct {
	// NumProcessors is the number of worker goroutines. Zero or negative
	// means GOMAXPROCS.
	NumProcessors int
}

// Sweep implements Executor.
func (e ParallelExecutor) Sweep(ncells int, kernel func(int)) {
	nprocs := e.NumProcessors
	if nprocs < 1 {
		nprocs = runtime.GOMAXPROCS(0)
	}
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for k := pp; k < ncells; k += nprocs {
				kernel(k)
			}
		}(pp)
	}
	wg.Wait()
}

// Name implements Executor.
func (ParallelExecutor) Name() string { return "parallel" }
