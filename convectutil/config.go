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

package convectutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/swmodel/convect"
)

// ModelConfig assembles and validates the physical configuration from
// cfg. A negative halo width is replaced by the stencil half-width, the
// minimum the scheme accepts.
func ModelConfig(cfg *viper.Viper) (*convect.Config, error) {
	c := &convect.Config{
		Nx:            cfg.GetInt("Grid.Nx"),
		Ny:            cfg.GetInt("Grid.Ny"),
		Dx:            cfg.GetFloat64("Grid.Dx"),
		Dy:            cfg.GetFloat64("Grid.Dy"),
		HaloWidth:     cfg.GetInt("Grid.HaloWidth"),
		TauConv:       cfg.GetFloat64("Convection.Tau"),
		TriggerHeight: cfg.GetFloat64("Convection.TriggerHeight"),
		ConvRadius:    cfg.GetFloat64("Convection.Radius"),
		Q0:            cfg.GetFloat64("Convection.Q0"),
		RadCooling:    cfg.GetFloat64("Convection.RadiativeCooling"),
		RelaxCoeff:    cfg.GetFloat64("Convection.RelaxationCoeff"),
		RelaxHeight:   cfg.GetFloat64("Convection.RelaxationHeight"),
		BoundaryLayer: cfg.GetBool("Convection.BoundaryLayer"),
		NumProcessors: cfg.GetInt("Sim.NumProcessors"),
	}
	if c.HaloWidth < 0 {
		c.HaloWidth = c.StencilHalfWidth()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// simOptions holds the driver settings that are not part of the physical
// configuration.
type simOptions struct {
	dt            float64
	numIterations int
	initialHeight float64
	perturbation  float64
	seed          int64
	httpAddress   string
	httpMask      bool
}

func driverOptions(cfg *viper.Viper) (simOptions, error) {
	seed, err := cast.ToInt64E(cfg.Get("Sim.Seed"))
	if err != nil {
		return simOptions{}, fmt.Errorf("convectutil: Sim.Seed: %w", err)
	}
	return simOptions{
		dt:            cfg.GetFloat64("Sim.Dt"),
		numIterations: cfg.GetInt("Sim.NumIterations"),
		initialHeight: cfg.GetFloat64("Sim.InitialHeight"),
		perturbation:  cfg.GetFloat64("Sim.PerturbationAmplitude"),
		seed:          seed,
		httpAddress:   cfg.GetString("HTTPAddress"),
		httpMask:      cfg.GetBool("HTTPMask"),
	}, nil
}

// WriteConfig writes the full effective configuration to w in TOML
// format. The output round-trips: reading it back as a configuration file
// reproduces the same settings.
func WriteConfig(w io.Writer, cfg *viper.Viper) error {
	tree := make(map[string]interface{})
	for _, option := range options {
		if option.name == "config" { // the file location doesn't belong in the file
			continue
		}
		// Use the typed getters so flag-backed values come out as their
		// configured types rather than strings.
		var v interface{}
		switch option.defaultVal.(type) {
		case string:
			v = cfg.GetString(option.name)
		case bool:
			v = cfg.GetBool(option.name)
		case int:
			v = cfg.GetInt(option.name)
		case float64:
			v = cfg.GetFloat64(option.name)
		default:
			v = cfg.Get(option.name)
		}
		node := tree
		parts := strings.Split(option.name, ".")
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = v
	}
	return toml.NewEncoder(w).Encode(tree)
}
