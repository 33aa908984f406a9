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
	"math/rand"
	"time"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
)

// A Manipulator is a function that initializes or advances the state of a
// standalone simulation.
type Manipulator func(s *Simulation) error

// Simulation is the source-only driver: it owns a height field and steps
// it forward under the parameterized forcing alone. Advection and wave
// dynamics are left to a host model; this driver exists so the scheme can
// be run, watched, and tested without one.
//
// InitFuncs run once, in order, when Init is called. StepFuncs run in
// order on every iteration until one of them sets Done.
type Simulation struct {
	Domain *Domain
	Height *sparse.DenseArray
	Dt     float64 // timestep [s]

	Time      float64 // current simulation time [s]
	Iteration int
	Done      bool

	InitFuncs []Manipulator
	StepFuncs []Manipulator

	forcing *sparse.DenseArray // scratch: forcing of the current step [m/s]
}

// NewSimulation prepares a driver for the given domain. dt must be
// positive.
func NewSimulation(d *Domain, dt float64) (*Simulation, error) {
	if dt <= 0 {
		return nil, configErrorf("Dt", "timestep %g must be positive", dt)
	}
	cfg := d.Config()
	return &Simulation{
		Domain:  d,
		Height:  sparse.ZerosDense(cfg.Ny, cfg.Nx),
		Dt:      dt,
		forcing: sparse.ZerosDense(cfg.Ny, cfg.Nx),
	}, nil
}

// Init runs the initialization functions.
func (s *Simulation) Init() error {
	for _, f := range s.InitFuncs {
		if err := f(s); err != nil {
			return fmt.Errorf("convect: simulation init: %w", err)
		}
	}
	return nil
}

// Run steps the simulation until a StepFunc sets Done.
func (s *Simulation) Run() error {
	for !s.Done {
		for _, f := range s.StepFuncs {
			if err := f(s); err != nil {
				return fmt.Errorf("convect: simulation run: %w", err)
			}
		}
		s.Iteration++
		s.Time += s.Dt
	}
	return nil
}

// UniformHeight returns an initialization function that fills the height
// field with h0.
func UniformHeight(h0 float64) Manipulator {
	return func(s *Simulation) error {
		for k := range s.Height.Elements {
			s.Height.Elements[k] = h0
		}
		return nil
	}
}

// RandomPerturbation returns an initialization function that adds uniform
// noise in [-amplitude, amplitude] to the height field, seeding the
// generator so runs are repeatable.
func RandomPerturbation(amplitude float64, seed int64) Manipulator {
	return func(s *Simulation) error {
		rng := rand.New(rand.NewSource(seed))
		for k := range s.Height.Elements {
			s.Height.Elements[k] += amplitude * (2*rng.Float64() - 1)
		}
		return nil
	}
}

// PointPerturbation returns an initialization function that sets the
// height of the single cell (i, j) to h.
func PointPerturbation(i, j int, h float64) Manipulator {
	return func(s *Simulation) error {
		if !s.Domain.Grid().Contains(i, j) {
			g := s.Domain.Grid()
			return &IndexError{I: i, J: j, Nx: g.Nx, Ny: g.Ny}
		}
		s.Height.Set(h, j, i)
		return nil
	}
}

// Convect returns a function that advances the convective state to the
// current simulation time. It must run before Forcing on every step; it
// is the barrier between state update and forcing evaluation.
func Convect() Manipulator {
	return func(s *Simulation) error {
		return s.Domain.OnStepStart(s.Height, s.Time)
	}
}

// Forcing returns a function that evaluates the source term for every
// cell and applies it to the height field with a forward-Euler step. The
// evaluation sweep only reads shared state, so it fans out over the
// domain's executor; the field update happens afterwards so no evaluation
// can observe a partially updated height.
func Forcing() Manipulator {
	return func(s *Simulation) error {
		d := s.Domain
		grid := d.Grid()
		d.exec.Sweep(grid.NumCells(), func(k int) {
			i, j := grid.Coords(k)
			s.forcing.Elements[k] = d.sourceTerm(i, j, s.Time, s.Height)
		})
		for k, f := range s.forcing.Elements {
			s.Height.Elements[k] += f * s.Dt
		}
		return nil
	}
}

// ActivityCheck returns a function that stops the simulation. If
// numIterations is positive the run stops after that many iterations;
// otherwise it stops once the number of convecting cells is unchanged
// between two successive checks a checkPeriod apart.
func ActivityCheck(numIterations int) Manipulator {
	const checkPeriod = 50 // iterations between steady-activity checks

	lastCount := -1
	iteration := 0

	return func(s *Simulation) error {
		iteration++
		if numIterations > 0 {
			if iteration >= numIterations {
				s.Done = true
			}
			return nil
		}
		if iteration%checkPeriod == 0 {
			count := s.Domain.ConvectingCount()
			if count == lastCount {
				s.Done = true
			}
			lastCount = count
		}
		return nil
	}
}

// Log returns a function that writes one status line per iteration.
func Log(l logrus.FieldLogger) Manipulator {
	startTime := time.Now()
	stepTime := time.Now()

	return func(s *Simulation) error {
		sum := s.Summarize()
		l.WithFields(logrus.Fields{
			"iteration":  s.Iteration,
			"day":        fmt.Sprintf("%.3g", s.Time/86400),
			"walltime":   fmt.Sprintf("%.3gs", time.Since(startTime).Seconds()),
			"Δwalltime":  fmt.Sprintf("%.2gs", time.Since(stepTime).Seconds()),
			"convecting": sum.Convecting,
			"hMean":      fmt.Sprintf("%.4g", sum.HeightMean),
		}).Info("step")
		stepTime = time.Now()
		return nil
	}
}
