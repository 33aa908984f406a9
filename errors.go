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

import "fmt"

// ConfigError reports an invalid model configuration. It is only ever
// returned during setup, before any time stepping happens.
type ConfigError struct {
	Field   string // the offending configuration field
	Problem string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("convect: configuration: %s %s", e.Field, e.Problem)
}

func configErrorf(field, format string, args ...interface{}) error {
	return &ConfigError{Field: field, Problem: fmt.Sprintf(format, args...)}
}

// IndexError reports a source-term query for a cell outside the model
// interior. It signals a caller contract violation; the query is never
// silently clamped to the nearest valid cell because that would corrupt
// the physical source term.
type IndexError struct {
	I, J   int // requested cell
	Nx, Ny int // valid extent
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("convect: cell index (%d, %d) outside grid %d×%d",
		e.I, e.J, e.Nx, e.Ny)
}
