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
	"bytes"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	Root.SetOut(&buf)
	Root.SetArgs(args)
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestVersionCmd(t *testing.T) {
	out := execute(t, "version")
	if want := "convect v" + Version; !strings.Contains(out, want) {
		t.Errorf("version output %q does not contain %q", out, want)
	}
}

func TestConfigCmd(t *testing.T) {
	out := execute(t, "config")
	var fc fileConfig
	if _, err := toml.Decode(out, &fc); err != nil {
		t.Fatalf("config output is not valid TOML: %v", err)
	}
	if fc.Grid.Ny != 64 {
		t.Errorf("Grid.Ny = %d, want 64", fc.Grid.Ny)
	}
	if fc.Sim.Dt != 5 {
		t.Errorf("Sim.Dt = %g, want 5", fc.Sim.Dt)
	}
}
