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
	"net/http"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"

	"github.com/swmodel/convect"
)

// Run executes a standalone source-only simulation as configured in cfg,
// writing log output to w.
func Run(cfg *viper.Viper, w io.Writer) error {
	log := logrus.New()
	log.Out = w
	level, err := logrus.ParseLevel(cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("convectutil: LogLevel: %w", err)
	}
	log.SetLevel(level)

	mc, err := ModelConfig(cfg)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cfg)
	if err != nil {
		return err
	}

	d, err := convect.NewDomain(mc)
	if err != nil {
		return err
	}
	s, err := convect.NewSimulation(d, opts.dt)
	if err != nil {
		return err
	}

	s.InitFuncs = []convect.Manipulator{
		convect.UniformHeight(opts.initialHeight),
		convect.RandomPerturbation(opts.perturbation, opts.seed),
	}
	s.StepFuncs = []convect.Manipulator{
		convect.Convect(),
		convect.Forcing(),
		convect.ActivityCheck(opts.numIterations),
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		s.StepFuncs = append(s.StepFuncs, convect.Log(log))
	}

	if opts.httpAddress != "" {
		srv := convect.NewStatusServer(log)
		s.StepFuncs = append(s.StepFuncs, convect.Publish(srv, opts.httpMask))
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/ws", srv)
			if err := http.ListenAndServe(opts.httpAddress, mux); err != nil {
				log.WithError(err).Error("monitoring server")
			}
		}()
		log.WithField("address", opts.httpAddress).Info("monitoring websocket at /ws")
	}

	log.WithFields(logrus.Fields{
		"grid":     fmt.Sprintf("%d×%d", mc.Nx, mc.Ny),
		"stencil":  fmt.Sprintf("r=%d cells", d.Stencil().HalfWidth),
		"executor": mc.NumProcessors,
	}).Info("initializing model")

	if err := s.Init(); err != nil {
		return err
	}
	if err := s.Run(); err != nil {
		return err
	}

	sum := s.Summarize()
	log.WithFields(logrus.Fields{
		"iterations":   sum.Iteration,
		"day":          fmt.Sprintf("%.3g", sum.Time/86400),
		"convecting":   sum.Convecting,
		"hMean":        fmt.Sprintf("%.4g", sum.HeightMean),
		"hStdDev":      fmt.Sprintf("%.3g", sum.HeightStdDev),
		"forcingTotal": fmt.Sprintf("%.3g", sum.ForcingTotal),
	}).Info("run finished")
	return nil
}
