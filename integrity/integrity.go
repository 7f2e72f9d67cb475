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

// Package integrity gives a host embedding the string engine a way to
// detect pool corruption from outside: a checksum over the live region
// plus a structural pass over the descriptor table. The structural pass
// reports mberr.ErrPoolCorrupted when it fails; Checksum only returns a
// digest and reports no error.
package integrity

import (
	"github.com/hjkit/mbasic/mberr"
	"github.com/hjkit/mbasic/pool"
	"github.com/hjkit/mbasic/strtab"
	"golang.org/x/crypto/blake2b"
)

// Sum is a checksum over a pool's live byte region.
type Sum [32]byte

// Checksum hashes the live (allocated) portion of p's backing buffer.
// Two pools with the same live bytes at the same offsets produce the
// same Sum regardless of capacity; data beyond the bump cursor is
// uninitialized garbage and is intentionally excluded.
func Checksum(p *pool.Pool) Sum {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only errors for an over-long key; nil never
		// triggers that path.
		panic(err)
	}
	h.Write(p.Data()[:p.Used()])
	var s Sum
	copy(s[:], h.Sum(nil))
	return s
}

// Validate walks every descriptor in t and reports mberr.ErrPoolCorrupted
// if any pool-backed descriptor's region falls outside p's live byte
// range, or any external descriptor isn't marked const. It does not
// catch every conceivable corruption, only the structural invariants
// the engine package depends on to index p safely.
func Validate(t *strtab.Table, p *pool.Pool) error {
	used := p.Used()
	capacity := p.Capacity()
	for i := 0; i < t.Len(); i++ {
		d := t.At(i)
		switch d.Loc() {
		case strtab.LocPool:
			if d.Offset() < 0 || d.Offset()+d.Len() > capacity {
				return mberr.ErrPoolCorrupted
			}
			if d.Offset()+d.Len() > used {
				return mberr.ErrPoolCorrupted
			}
		case strtab.LocExternal:
			if !d.IsConst() {
				return mberr.ErrPoolCorrupted
			}
		}
	}
	return nil
}
