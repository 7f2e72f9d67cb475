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

package pool

import (
	"errors"
	"testing"

	"github.com/hjkit/mbasic/mberr"
)

func TestNewRejectsSmallOrNilBuffer(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, mberr.ErrOutOfMemory) {
		t.Fatalf("New(nil) = %v, want ErrOutOfMemory", err)
	}
	if _, err := New(make([]byte, 255)); !errors.Is(err, mberr.ErrOutOfMemory) {
		t.Fatalf("New(255 bytes) = %v, want ErrOutOfMemory", err)
	}
	if _, err := New(make([]byte, MinCapacity)); err != nil {
		t.Fatalf("New(%d bytes) = %v, want nil", MinCapacity, err)
	}
}

func TestReserveAdvancesCursor(t *testing.T) {
	p, err := New(make([]byte, 1024))
	if err != nil {
		t.Fatal(err)
	}
	off, err := p.Reserve(10)
	if err != nil || off != 0 {
		t.Fatalf("Reserve(10) = (%d, %v), want (0, nil)", off, err)
	}
	off, err = p.Reserve(20)
	if err != nil || off != 10 {
		t.Fatalf("Reserve(20) = (%d, %v), want (10, nil)", off, err)
	}
	if p.Used() != 30 || p.Free() != 1024-30 {
		t.Fatalf("Used=%d Free=%d after 30 bytes reserved", p.Used(), p.Free())
	}
}

func TestReserveOutOfMemory(t *testing.T) {
	p, _ := New(make([]byte, 256))
	if _, err := p.Reserve(257); !errors.Is(err, mberr.ErrOutOfMemory) {
		t.Fatalf("Reserve(257) = %v, want ErrOutOfMemory", err)
	}
	if _, err := p.Reserve(256); err != nil {
		t.Fatalf("Reserve(256) = %v, want nil", err)
	}
	if _, err := p.Reserve(1); !errors.Is(err, mberr.ErrOutOfMemory) {
		t.Fatalf("Reserve(1) after full = %v, want ErrOutOfMemory", err)
	}
}

func TestMoveHandlesOverlap(t *testing.T) {
	p, _ := New(make([]byte, 256))
	off, _ := p.Reserve(10)
	copy(p.Bytes(off, 10), []byte("ABCDEFGHIJ"))
	p.Move(0, 2, 8)
	got := string(p.Bytes(0, 8))
	if got != "CDEFGHIJ" {
		t.Fatalf("overlapping Move produced %q, want %q", got, "CDEFGHIJ")
	}
}

func TestResetDropsCursorNotBuffer(t *testing.T) {
	p, _ := New(make([]byte, 512))
	p.Reserve(100)
	p.Reset()
	if p.Used() != 0 {
		t.Fatalf("Used() after Reset = %d, want 0", p.Used())
	}
	if p.Capacity() != 512 {
		t.Fatalf("Capacity() after Reset = %d, want 512", p.Capacity())
	}
}

func TestStats(t *testing.T) {
	p, _ := New(make([]byte, 256))
	p.Reserve(10)
	p.Reserve(5)
	p.SetCursor(8)
	st := p.Stats()
	if st.Allocations != 2 || st.Collections != 1 || st.PeakUsed != 15 || st.Used != 8 || st.Capacity != 256 {
		t.Fatalf("Stats() = %+v, unexpected", st)
	}
}
