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
	"github.com/GaryBoone/GoStats/stats"
	"gonum.org/v1/gonum/floats"
)

// Summary holds domain-wide statistics for one simulation step.
type Summary struct {
	Time      float64 `json:"time"`
	Iteration int     `json:"iteration"`

	// Convecting is the number of cells inside an active event.
	Convecting int `json:"convecting"`

	HeightMean   float64 `json:"heightMean"`
	HeightStdDev float64 `json:"heightStdDev"`
	HeightMin    float64 `json:"heightMin"`
	HeightMax    float64 `json:"heightMax"`

	// ForcingTotal is the most recent step's forcing integrated over the
	// domain area [m³/s]. Positive means the scheme added mass.
	ForcingTotal float64 `json:"forcingTotal"`
}

// Summarize computes the current step's statistics.
func (s *Simulation) Summarize() Summary {
	var hs stats.Stats
	for _, h := range s.Height.Elements {
		hs.Update(h)
	}
	cfg := s.Domain.Config()
	return Summary{
		Time:         s.Time,
		Iteration:    s.Iteration,
		Convecting:   s.Domain.ConvectingCount(),
		HeightMean:   hs.Mean(),
		HeightStdDev: hs.SampleStandardDeviation(),
		HeightMin:    hs.Min(),
		HeightMax:    hs.Max(),
		ForcingTotal: floats.Sum(s.forcing.Elements) * cfg.Dx * cfg.Dy,
	}
}
