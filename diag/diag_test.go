// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hjkit/mbasic/engine"
)

func newEngine(t *testing.T, poolSize, n int) *engine.Engine {
	t.Helper()
	e, err := engine.New(make([]byte, poolSize), n)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return e
}

func TestDumpContainsDescriptorData(t *testing.T) {
	e := newEngine(t, 256, 2)
	if err := e.AllocInit(0, []byte("hello")); err != nil {
		t.Fatalf("AllocInit: %v", err)
	}
	var buf bytes.Buffer
	if err := Dump(&buf, e.Table(), e.Pool()); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Fatalf("dump output missing descriptor preview:\n%s", out)
	}
	if !strings.Contains(out, "session:") {
		t.Fatalf("dump output missing session id:\n%s", out)
	}
}

func TestSnapshotProducesOutput(t *testing.T) {
	e := newEngine(t, 256, 2)
	if err := e.AllocInit(0, []byte("hello")); err != nil {
		t.Fatalf("AllocInit: %v", err)
	}
	snap, err := Snapshot(e.Pool())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap) == 0 {
		t.Fatalf("Snapshot returned empty output")
	}
}
