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

// Package pool implements the bump-allocated byte arena that backs
// non-constant string data. A Pool knows nothing about string semantics;
// it only hands out byte ranges and tracks a single high-water cursor.
// Reclamation happens exclusively via compaction driven from outside the
// package (see engine.Engine.GarbageCollect).
package pool

import "github.com/hjkit/mbasic/mberr"

// MinCapacity is the smallest pool size New will accept.
const MinCapacity = 256

// Pool is a contiguous byte buffer with a bump cursor. The backing buffer
// is supplied by the caller at construction and is never reallocated or
// grown; capacity is fixed for the Pool's lifetime.
type Pool struct {
	buf   []byte
	alloc int

	allocs uint64
	gcs    uint64
	peak   int
}

// New binds a Pool to caller-owned storage. buf must be non-nil and at
// least MinCapacity bytes.
func New(buf []byte) (*Pool, error) {
	if buf == nil || len(buf) < MinCapacity {
		return nil, mberr.ErrOutOfMemory
	}
	return &Pool{buf: buf}, nil
}

// Capacity returns the fixed size of the pool's backing buffer.
func (p *Pool) Capacity() int { return len(p.buf) }

// Used returns the current bump-cursor position.
func (p *Pool) Used() int { return p.alloc }

// Free returns the number of bytes available before the next Reserve
// would fail.
func (p *Pool) Free() int { return len(p.buf) - p.alloc }

// Reserve advances the cursor by n bytes and returns the offset at which
// the caller may write, or mberr.ErrOutOfMemory if there isn't room. There
// is no alignment requirement and no per-allocation bookkeeping: the Pool
// does not know how to free what it hands out.
func (p *Pool) Reserve(n int) (int, error) {
	if n < 0 {
		panic("pool: negative reservation")
	}
	if p.Free() < n {
		return 0, mberr.ErrOutOfMemory
	}
	off := p.alloc
	p.alloc += n
	p.allocs++
	if p.alloc > p.peak {
		p.peak = p.alloc
	}
	return off, nil
}

// Bytes returns the live slice [off, off+n) of the pool's backing buffer.
// The returned slice aliases the pool; callers must not retain it across
// a GarbageCollect.
func (p *Pool) Bytes(off, n int) []byte {
	return p.buf[off : off+n : off+n]
}

// Data returns the full backing buffer, live region and all. Used by
// diag and integrity, which need to see the raw arena.
func (p *Pool) Data() []byte { return p.buf }

// Move relocates n bytes from srcOff to dstOff within the pool, using
// Go's builtin copy, which (like C memmove) is safe when the source and
// destination ranges overlap.
func (p *Pool) Move(dstOff, srcOff, n int) {
	copy(p.buf[dstOff:dstOff+n], p.buf[srcOff:srcOff+n])
}

// SetCursor is called by the compactor once a GarbageCollect pass has
// relocated every live string; it rebases the bump cursor to the new
// high-water mark and bumps the collection counter.
func (p *Pool) SetCursor(n int) {
	p.alloc = n
	p.gcs++
}

// Reset restores the pool to its pristine, empty state without
// releasing the backing buffer back to its owner.
func (p *Pool) Reset() {
	p.alloc = 0
	p.allocs = 0
	p.gcs = 0
	p.peak = 0
}

// Stats summarizes pool activity: allocation and collection counts
// plus peak, current, and total capacity.
type Stats struct {
	Allocations uint64
	Collections uint64
	PeakUsed    int
	Used        int
	Capacity    int
}

// Stats reports current pool statistics.
func (p *Pool) Stats() Stats {
	return Stats{
		Allocations: p.allocs,
		Collections: p.gcs,
		PeakUsed:    p.peak,
		Used:        p.alloc,
		Capacity:    len(p.buf),
	}
}
