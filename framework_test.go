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
	"testing"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/ctessum/sparse"
)

func TestOnStepStartShapeCheck(t *testing.T) {
	d, err := NewDomain(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := d.OnStepStart(nil, 0); err == nil {
		t.Error("nil height field accepted")
	}
	if err := d.OnStepStart(sparse.ZerosDense(3, 3), 0); err == nil {
		t.Error("mismatched height field shape accepted")
	}
	if err := d.OnStepStart(sparse.ZerosDense(10, 10), 0); err != nil {
		t.Errorf("matching height field rejected: %v", err)
	}
}

// runSimulation builds and runs a small driver with the given processor
// count and returns the final height field.
func runSimulation(t *testing.T, numProcessors int) *sparse.DenseArray {
	t.Helper()
	cfg := testConfig()
	cfg.RadCooling = 1e-4
	cfg.RelaxCoeff = 1e-5
	cfg.RelaxHeight = 42
	cfg.NumProcessors = numProcessors
	d, err := NewDomain(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSimulation(d, 2.5)
	if err != nil {
		t.Fatal(err)
	}
	s.InitFuncs = []Manipulator{
		UniformHeight(41),
		RandomPerturbation(2, 42),
	}
	s.StepFuncs = []Manipulator{
		Convect(),
		Forcing(),
		ActivityCheck(200),
	}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	if s.Iteration != 200 {
		t.Fatalf("Iteration = %d, want 200", s.Iteration)
	}
	return s.Height
}

// The serial and parallel sweeps must produce bit-identical results,
// since every cell's update depends only on the prior step's state.
func TestExecutorEquivalence(t *testing.T) {
	serial := runSimulation(t, 1)
	parallel := runSimulation(t, 4)

	var diff stats.Stats
	for k, v := range serial.Elements {
		diff.Update(math.Abs(v - parallel.Elements[k]))
	}
	if diff.Max() != 0 {
		t.Errorf("serial and parallel sweeps diverge: max |Δh| = %g, mean = %g",
			diff.Max(), diff.Mean())
	}
}

func TestNewExecutor(t *testing.T) {
	if _, ok := NewExecutor(1).(SerialExecutor); !ok {
		t.Error("NewExecutor(1) is not the serial sweep")
	}
	if _, ok := NewExecutor(0).(ParallelExecutor); !ok {
		t.Error("NewExecutor(0) is not the parallel sweep")
	}
	if _, ok := NewExecutor(8).(ParallelExecutor); !ok {
		t.Error("NewExecutor(8) is not the parallel sweep")
	}
}

func TestExecutorSweepCoverage(t *testing.T) {
	for _, exec := range []Executor{SerialExecutor{}, ParallelExecutor{NumProcessors: 3}} {
		visited := make([]int, 1000)
		exec.Sweep(len(visited), func(k int) { visited[k]++ })
		for k, n := range visited {
			if n != 1 {
				t.Fatalf("%s sweep visited cell %d %d times", exec.Name(), k, n)
			}
		}
	}
}

// With convection disabled by an unreachable threshold, the source-only
// driver reduces to Newtonian relaxation: the height approaches the
// relaxation target.
func TestSimulationRelaxation(t *testing.T) {
	cfg := testConfig()
	cfg.TriggerHeight = -1e9 // never triggers
	cfg.RelaxCoeff = 1e-2
	cfg.RelaxHeight = 50
	d, err := NewDomain(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSimulation(d, 1)
	if err != nil {
		t.Fatal(err)
	}
	s.InitFuncs = []Manipulator{UniformHeight(45)}
	s.StepFuncs = []Manipulator{Convect(), Forcing(), ActivityCheck(500)}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	if n := d.ConvectingCount(); n != 0 {
		t.Fatalf("ConvectingCount = %d, want 0", n)
	}
	for _, h := range s.Height.Elements {
		if math.Abs(h-50) > 1 {
			t.Fatalf("height %g did not relax toward 50", h)
		}
	}
}

func TestPointPerturbation(t *testing.T) {
	d, err := NewDomain(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSimulation(d, 1)
	if err != nil {
		t.Fatal(err)
	}
	s.InitFuncs = []Manipulator{UniformHeight(45), PointPerturbation(5, 5, 35)}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if got := s.Height.Get(5, 5); got != 35 {
		t.Errorf("height at (5, 5) = %g, want 35", got)
	}
	if got := s.Height.Get(5, 6); got != 45 {
		t.Errorf("height at (6, 5) = %g, want 45", got)
	}

	s.InitFuncs = []Manipulator{PointPerturbation(50, 50, 35)}
	if err := s.Init(); err == nil {
		t.Error("out-of-grid perturbation accepted")
	}
}

func TestNewSimulationBadTimestep(t *testing.T) {
	d, err := NewDomain(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewSimulation(d, 0); err == nil {
		t.Error("zero timestep accepted")
	}
	if _, err := NewSimulation(d, -1); err == nil {
		t.Error("negative timestep accepted")
	}
}

func TestSummarize(t *testing.T) {
	cfg := testConfig()
	d, err := NewDomain(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSimulation(d, 1)
	if err != nil {
		t.Fatal(err)
	}
	s.InitFuncs = []Manipulator{UniformHeight(45), PointPerturbation(5, 5, 35)}
	s.StepFuncs = []Manipulator{Convect(), Forcing(), ActivityCheck(1)}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}

	sum := s.Summarize()
	if sum.Convecting != 1 {
		t.Errorf("Summary.Convecting = %d, want 1", sum.Convecting)
	}
	if sum.HeightMin > 35 || sum.HeightMax < 45 {
		t.Errorf("Summary height range [%g, %g] does not cover the field",
			sum.HeightMin, sum.HeightMax)
	}
	if sum.HeightMean <= sum.HeightMin || sum.HeightMean >= sum.HeightMax {
		t.Errorf("Summary.HeightMean = %g outside [%g, %g]",
			sum.HeightMean, sum.HeightMin, sum.HeightMax)
	}
}
