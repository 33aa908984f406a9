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
	"testing"

	"github.com/ctessum/sparse"
)

// testConfig is a small free-atmosphere configuration: convection
// triggers where the height falls to the threshold or below.
func testConfig() *Config {
	cfg := &Config{
		Nx: 10, Ny: 10,
		Dx: 100, Dy: 100,
		TauConv:       50,
		TriggerHeight: 40,
		ConvRadius:    250,
		Q0:            1e6,
		NumProcessors: 1,
	}
	cfg.HaloWidth = cfg.StencilHalfWidth()
	return cfg
}

func uniformHeights(cfg *Config, h float64) *sparse.DenseArray {
	heights := sparse.ZerosDense(cfg.Ny, cfg.Nx)
	for k := range heights.Elements {
		heights.Elements[k] = h
	}
	return heights
}

func TestTriggerCorrectness(t *testing.T) {
	cfg := testConfig()
	d, err := NewDomain(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// Hold every cell above the threshold: nothing triggers.
	heights := uniformHeights(cfg, 45)
	if err := d.OnStepStart(heights, 0); err != nil {
		t.Fatal(err)
	}
	if n := d.ConvectingCount(); n != 0 {
		t.Fatalf("ConvectingCount = %d, want 0", n)
	}

	// Drop one cell exactly to the threshold for one step.
	heights.Set(cfg.TriggerHeight, 3, 7) // cell (7, 3)
	if err := d.OnStepStart(heights, 10); err != nil {
		t.Fatal(err)
	}
	if !d.Convecting(7, 3) {
		t.Error("cell at threshold did not trigger")
	}
	if got := d.TriggerTime(7, 3); got != 10 {
		t.Errorf("TriggerTime = %g, want 10", got)
	}
	if n := d.ConvectingCount(); n != 1 {
		t.Errorf("ConvectingCount = %d, want 1", n)
	}

	// Return the cell above the threshold: the event continues with its
	// original trigger time.
	heights.Set(45, 3, 7)
	if err := d.OnStepStart(heights, 20); err != nil {
		t.Fatal(err)
	}
	if !d.Convecting(7, 3) {
		t.Error("cell left its event before TauConv elapsed")
	}
	if got := d.TriggerTime(7, 3); got != 10 {
		t.Errorf("TriggerTime changed mid-event: %g, want 10", got)
	}
}

func TestDurationLaw(t *testing.T) {
	cfg := testConfig()
	d, err := NewDomain(cfg)
	if err != nil {
		t.Fatal(err)
	}

	heights := uniformHeights(cfg, 45)
	heights.Set(30, 0, 0)
	if err := d.OnStepStart(heights, 0); err != nil {
		t.Fatal(err)
	}
	heights.Set(45, 0, 0) // trigger condition no longer holds

	// Convecting for all t in [0, TauConv), idle at t >= TauConv.
	for _, tt := range []struct {
		t    float64
		want bool
	}{
		{10, true},
		{49.999, true},
		{50, false},
		{60, false},
	} {
		if err := d.OnStepStart(heights, tt.t); err != nil {
			t.Fatal(err)
		}
		if got := d.Convecting(0, 0); got != tt.want {
			t.Errorf("Convecting at t=%g: %v, want %v", tt.t, got, tt.want)
		}
	}
}

// A cell whose event expires exactly when the trigger condition still
// holds restarts immediately with a fresh trigger time.
func TestImmediateRestart(t *testing.T) {
	cfg := testConfig()
	d, err := NewDomain(cfg)
	if err != nil {
		t.Fatal(err)
	}

	heights := uniformHeights(cfg, 45)
	heights.Set(30, 0, 0) // held below threshold for the whole test
	if err := d.OnStepStart(heights, 0); err != nil {
		t.Fatal(err)
	}
	if got := d.TriggerTime(0, 0); got != 0 {
		t.Fatalf("TriggerTime = %g, want 0", got)
	}

	// Mid-event the trigger time must not refresh.
	if err := d.OnStepStart(heights, 25); err != nil {
		t.Fatal(err)
	}
	if got := d.TriggerTime(0, 0); got != 0 {
		t.Errorf("TriggerTime refreshed mid-event: %g", got)
	}

	// At exactly TauConv elapsed the old event has expired, so a new one
	// starts.
	if err := d.OnStepStart(heights, 50); err != nil {
		t.Fatal(err)
	}
	if !d.Convecting(0, 0) {
		t.Error("cell did not restart at event expiry")
	}
	if got := d.TriggerTime(0, 0); got != 50 {
		t.Errorf("TriggerTime = %g, want 50", got)
	}
}

// Boundary-layer mode flips the trigger comparison: convection starts
// where the height meets or exceeds the threshold.
func TestBoundaryLayerTrigger(t *testing.T) {
	cfg := testConfig()
	cfg.BoundaryLayer = true
	d, err := NewDomain(cfg)
	if err != nil {
		t.Fatal(err)
	}

	heights := uniformHeights(cfg, 30)
	heights.Set(45, 5, 5)
	if err := d.OnStepStart(heights, 0); err != nil {
		t.Fatal(err)
	}
	if !d.Convecting(5, 5) {
		t.Error("high cell did not trigger in boundary-layer mode")
	}
	if n := d.ConvectingCount(); n != 1 {
		t.Errorf("ConvectingCount = %d, want 1", n)
	}
}

func TestConfigValidation(t *testing.T) {
	for _, tt := range []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero TauConv", func(c *Config) { c.TauConv = 0 }},
		{"negative TauConv", func(c *Config) { c.TauConv = -1 }},
		{"zero radius", func(c *Config) { c.ConvRadius = 0 }},
		{"zero Dx", func(c *Config) { c.Dx = 0 }},
		{"zero Nx", func(c *Config) { c.Nx = 0 }},
		{"small halo", func(c *Config) { c.HaloWidth = c.StencilHalfWidth() - 1 }},
	} {
		cfg := testConfig()
		tt.mutate(cfg)
		if _, err := NewDomain(cfg); err == nil {
			t.Errorf("%s: expected error", tt.name)
		} else if _, ok := err.(*ConfigError); !ok {
			t.Errorf("%s: expected *ConfigError, got %T", tt.name, err)
		}
	}

	if _, err := NewDomain(testConfig()); err != nil {
		t.Errorf("valid configuration rejected: %v", err)
	}
}
