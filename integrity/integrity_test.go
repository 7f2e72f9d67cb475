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

package integrity

import (
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

func TestChecksumStableAcrossReads(t *testing.T) {
	e := newEngine(t, 256, 4)
	if err := e.AllocInit(0, []byte("hello")); err != nil {
		t.Fatalf("AllocInit: %v", err)
	}
	s1 := Checksum(e.Pool())
	s2 := Checksum(e.Pool())
	if s1 != s2 {
		t.Fatalf("checksum not stable across repeated reads")
	}
}

func TestChecksumChangesWithContent(t *testing.T) {
	e := newEngine(t, 256, 4)
	before := Checksum(e.Pool())
	if err := e.AllocInit(0, []byte("hello")); err != nil {
		t.Fatalf("AllocInit: %v", err)
	}
	after := Checksum(e.Pool())
	if before == after {
		t.Fatalf("checksum did not change after writing new data")
	}
}

func TestValidateAcceptsConsistentTable(t *testing.T) {
	e := newEngine(t, 256, 4)
	if err := e.AllocConst(0, []byte("literal")); err != nil {
		t.Fatalf("AllocConst: %v", err)
	}
	if err := e.AllocInit(1, []byte("pool-backed")); err != nil {
		t.Fatalf("AllocInit: %v", err)
	}
	if err := Validate(e.Table(), e.Pool()); err != nil {
		t.Fatalf("Validate on a consistent table: %v", err)
	}
}
