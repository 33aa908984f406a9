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
	"reflect"
)

// Config holds the physical and numerical parameters for one model run.
// It is constructed once at setup and never mutated afterwards; every
// component holds it by reference.
type Config struct {
	Nx int `desc:"Number of grid cells in the x direction" units:"cells"`
	Ny int `desc:"Number of grid cells in the y direction" units:"cells"`

	Dx float64 `desc:"Grid cell size in the x direction" units:"m"`
	Dy float64 `desc:"Grid cell size in the y direction" units:"m"`

	// HaloWidth is the number of boundary cells the host model replicates
	// for periodic stencil lookups. It must cover the stencil half-width.
	HaloWidth int `desc:"Periodic halo width provided by the host model" units:"cells"`

	TauConv       float64 `desc:"Duration of a single convective event" units:"s"`
	TriggerHeight float64 `desc:"Fluid height threshold that triggers convection" units:"m"`
	ConvRadius    float64 `desc:"Radius of the convective heating stencil" units:"m"`
	Q0            float64 `desc:"Heating amplitude of a single convective event" units:"m³"`

	RadCooling  float64 `desc:"Uniform radiative cooling rate" units:"m/s"`
	RelaxCoeff  float64 `desc:"Newtonian relaxation coefficient" units:"1/s"`
	RelaxHeight float64 `desc:"Height the relaxation term pulls toward" units:"m"`

	// BoundaryLayer selects the sign convention for the scheme. When true,
	// convection is triggered by the height exceeding TriggerHeight and
	// active events remove mass; when false, convection is triggered by the
	// height falling below TriggerHeight and active events add mass.
	BoundaryLayer bool `desc:"Run in boundary-layer (mass sink) mode" units:"-"`

	// NumProcessors sets the number of goroutines used for grid sweeps.
	// Zero or negative means GOMAXPROCS; one selects the serial sweep.
	NumProcessors int `desc:"Number of processors used for grid sweeps" units:"-"`
}

// StencilHalfWidth is the stencil extent in cells on either side of the
// center: round(ConvRadius / Dx).
func (c *Config) StencilHalfWidth() int {
	return int(math.Round(c.ConvRadius / c.Dx))
}

// Validate checks the configuration for parameters that would make the
// scheme meaningless. It returns a *ConfigError describing the first
// problem found, or nil.
func (c *Config) Validate() error {
	if c.Nx <= 0 || c.Ny <= 0 {
		return configErrorf("Nx/Ny", "grid extent %d×%d must be positive", c.Nx, c.Ny)
	}
	if c.Dx <= 0 || c.Dy <= 0 {
		return configErrorf("Dx/Dy", "cell size %g×%g must be positive", c.Dx, c.Dy)
	}
	if c.TauConv <= 0 {
		return configErrorf("TauConv", "event duration %g must be positive", c.TauConv)
	}
	if math.IsNaN(c.TriggerHeight) || math.IsInf(c.TriggerHeight, 0) {
		return configErrorf("TriggerHeight", "trigger height %g must be finite", c.TriggerHeight)
	}
	if c.ConvRadius <= 0 {
		return configErrorf("ConvRadius", "convective radius %g must be positive", c.ConvRadius)
	}
	if c.HaloWidth < c.StencilHalfWidth() {
		return configErrorf("HaloWidth",
			"halo width %d cells cannot cover the stencil half-width %d cells",
			c.HaloWidth, c.StencilHalfWidth())
	}
	return nil
}

// Describe returns the description and units of the named configuration
// field, as recorded in its struct tags.
func (c *Config) Describe(field string) (desc, units string, ok bool) {
	f, ok := reflect.TypeOf(*c).FieldByName(field)
	if !ok {
		return "", "", false
	}
	return f.Tag.Get("desc"), f.Tag.Get("units"), true
}
