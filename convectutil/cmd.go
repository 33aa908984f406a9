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

// Package convectutil holds the configuration and command-line interface
// for the convect model.
package convectutil

import (
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is the release version of the model.
const Version = "0.2.0"

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to the model.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel sets the logging verbosity (debug, info, warn, error).`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid.Nx",
			usage: `
              Grid.Nx is the number of grid cells in the x direction.`,
			defaultVal: 64,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Grid.Ny",
			usage: `
              Grid.Ny is the number of grid cells in the y direction.`,
			defaultVal: 64,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Grid.Dx",
			usage: `
              Grid.Dx is the grid cell length in the x direction [m].`,
			defaultVal: 500.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Grid.Dy",
			usage: `
              Grid.Dy is the grid cell length in the y direction [m].`,
			defaultVal: 500.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Grid.HaloWidth",
			usage: `
              Grid.HaloWidth is the periodic halo width in cells. It must be at
              least the stencil half-width; -1 selects that minimum
              automatically.`,
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Convection.Tau",
			usage: `
              Convection.Tau is the duration of a single convective event [s].`,
			defaultVal: 1000.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Convection.TriggerHeight",
			usage: `
              Convection.TriggerHeight is the fluid height threshold that
              triggers convection [m].`,
			defaultVal: 90.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Convection.Radius",
			usage: `
              Convection.Radius is the radius of the convective heating
              stencil [m].`,
			defaultVal: 2000.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Convection.Q0",
			usage: `
              Convection.Q0 is the heating amplitude of a single convective
              event [m³].`,
			defaultVal: 5.0e5,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Convection.RadiativeCooling",
			usage: `
              Convection.RadiativeCooling is the uniform radiative cooling
              rate [m/s].`,
			defaultVal: 1.0e-4,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Convection.RelaxationCoeff",
			usage: `
              Convection.RelaxationCoeff is the Newtonian relaxation
              coefficient pulling the height toward
              Convection.RelaxationHeight [1/s].`,
			defaultVal: 1.0e-5,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Convection.RelaxationHeight",
			usage: `
              Convection.RelaxationHeight is the height the relaxation term
              pulls toward [m].`,
			defaultVal: 90.5,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Convection.BoundaryLayer",
			usage: `
              Convection.BoundaryLayer runs the scheme in boundary-layer mode:
              convection is triggered by the height exceeding the threshold and
              removes mass instead of adding it.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Sim.Dt",
			usage: `
              Sim.Dt is the timestep of the standalone driver [s].`,
			defaultVal: 5.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Sim.NumIterations",
			usage: `
              Sim.NumIterations is the number of iterations to run. If it is
              less than 1, the run stops when convective activity is steady.`,
			defaultVal: 1000,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Sim.InitialHeight",
			usage: `
              Sim.InitialHeight is the uniform initial fluid height [m].`,
			defaultVal: 90.5,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Sim.PerturbationAmplitude",
			usage: `
              Sim.PerturbationAmplitude is the amplitude of the random noise
              added to the initial height field [m].`,
			defaultVal: 0.6,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Sim.Seed",
			usage: `
              Sim.Seed seeds the initial-condition noise generator.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Sim.NumProcessors",
			usage: `
              Sim.NumProcessors is the number of processors used for grid
              sweeps. 1 selects the serial sweep; 0 or less means GOMAXPROCS.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "HTTPAddress",
			usage: `
              HTTPAddress is the address for hosting the monitoring websocket
              server (for example ':8080'). If empty, the server doesn't run.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "HTTPMask",
			usage: `
              HTTPMask includes the full per-cell convecting mask in monitoring
              snapshots instead of summary statistics only.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("CONVECT")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, v, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, v, option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, v, option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, v, option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, v, option.usage)
				} else {
					set.IntP(option.name, option.shorthand, v, option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, v, option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, v, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(configCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("convectutil: problem reading configuration file: %w", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "convect",
	Short: "A triggered-convection parameterization on a periodic grid.",
	Long: `convect runs a triggered-convection mass-source parameterization: grid
cells whose fluid height crosses a threshold start fixed-duration convective
events that inject or remove mass in their neighborhood.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'CONVECT_var' where 'var'
is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of convect.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("convect v%s\n", Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the model.",
	Long: `run integrates the height field under the parameterized convective
forcing alone, starting from a randomly perturbed uniform height.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(Cfg, os.Stdout)
	},
	DisableAutoGenTag: true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `config prints the full configuration, after applying the configuration
file, flags, and environment variables, in TOML format. The output is usable
as a configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return WriteConfig(cmd.OutOrStdout(), Cfg)
	},
	DisableAutoGenTag: true,
}
