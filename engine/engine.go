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

// Package engine implements the string runtime a compiled BASIC program
// calls into: allocation, assignment, substring views, concatenation,
// comparison, copy-on-write MID$ assignment, and the compacting garbage
// collector. It owns a strtab.Table and a pool.Pool and is the only code
// that touches pool bytes or descriptor fields directly; everything else
// addresses strings by id.
//
// An Engine is not safe for concurrent use. The original target executes
// one BASIC statement at a time on a single thread, and nothing here
// adds locking.
package engine

import (
	"io"

	"github.com/hjkit/mbasic/mberr"
	"github.com/hjkit/mbasic/pool"
	"github.com/hjkit/mbasic/strtab"
)

// Engine bundles a descriptor table and its pool. Library embeddings
// that need more than one instance construct more than one Engine; no
// correctness property here depends on there being a single global one.
type Engine struct {
	pool *pool.Pool
	tab  *strtab.Table
}

// New binds an Engine to a caller-supplied pool buffer (at least
// pool.MinCapacity bytes) and a fixed descriptor count n.
func New(buf []byte, n int) (*Engine, error) {
	p, err := pool.New(buf)
	if err != nil {
		return nil, err
	}
	return &Engine{pool: p, tab: strtab.New(n)}, nil
}

// Reset restores the Engine to its pristine state without releasing the
// pool's backing buffer back to its owner.
func (e *Engine) Reset() {
	e.pool.Reset()
	e.tab.ClearAll()
}

// Table exposes the underlying descriptor table, for diag/integrity.
func (e *Engine) Table() *strtab.Table { return e.tab }

// Pool exposes the underlying pool, for diag/integrity.
func (e *Engine) Pool() *pool.Pool { return e.pool }

func (e *Engine) validate(ids ...int) error {
	for _, id := range ids {
		if !e.tab.Valid(id) {
			return mberr.ErrInvalidID
		}
	}
	return nil
}

// AllocConst binds id to caller-owned, immutable bytes outside the pool
// (a string literal). Fails with mberr.ErrStringTooLong if len(bytes) >
// 255, mberr.ErrNullPointer if bytes is nil.
func (e *Engine) AllocConst(id int, bytes []byte) error {
	if err := e.validate(id); err != nil {
		return err
	}
	if bytes == nil {
		return mberr.ErrNullPointer
	}
	if len(bytes) > strtab.MaxLen {
		return mberr.ErrStringTooLong
	}
	e.tab.Get(id).SetExternalConst(bytes)
	return nil
}

// allocFromPool reserves size bytes for id without retrying on OOM.
func (e *Engine) allocFromPool(id, size int) error {
	off, err := e.pool.Reserve(size)
	if err != nil {
		return err
	}
	e.tab.Get(id).SetPoolRegion(off, 0)
	return nil
}

// Alloc reserves size bytes from the pool for id. On OOM, runs the
// collector once and retries; a second failure reports
// mberr.ErrOutOfMemory. On success id is writable with length 0.
func (e *Engine) Alloc(id int, size int) error {
	if err := e.validate(id); err != nil {
		return err
	}
	if size > strtab.MaxLen {
		return mberr.ErrStringTooLong
	}
	if err := e.allocFromPool(id, size); err != nil {
		e.GarbageCollect()
		if err := e.allocFromPool(id, size); err != nil {
			return mberr.ErrOutOfMemory
		}
	}
	return nil
}

// AllocInit allocates len(bytes) pool space for id and copies bytes in.
func (e *Engine) AllocInit(id int, bytes []byte) error {
	if bytes == nil {
		return mberr.ErrNullPointer
	}
	if len(bytes) > strtab.MaxLen {
		return mberr.ErrStringTooLong
	}
	if err := e.Alloc(id, len(bytes)); err != nil {
		return err
	}
	d := e.tab.Get(id)
	copy(e.pool.Bytes(d.Offset(), len(bytes)), bytes)
	d.SetLength(len(bytes))
	return nil
}

// Free clears id back to empty. Pool bytes are not reclaimed; they are
// only reclaimed by the next GarbageCollect.
func (e *Engine) Free(id int) error {
	if err := e.validate(id); err != nil {
		return err
	}
	e.tab.Free(id)
	return nil
}

// Clear is an alias for Free.
func (e *Engine) Clear(id int) error { return e.Free(id) }

// Copy overwrites, shares, or clears dst to match src's contents,
// picking the cheapest option the ownership rules allow:
//   - empty src clears dst
//   - const src makes dst a const alias of the same external bytes
//   - a writable dst with a pool buffer is overwritten in place
//   - otherwise dst and src come to share src's data, and both become
//     non-writable (dst's constness is not propagated: the shared
//     branch is only reached when src is pool-owned, not const)
func (e *Engine) Copy(dst, src int) error {
	if err := e.validate(dst, src); err != nil {
		return err
	}
	ds, ss := e.tab.Get(dst), e.tab.Get(src)

	if ss.IsEmpty() {
		ds.Clear()
		return nil
	}
	if ss.IsConst() {
		ds.SetExternalConst(ss.External())
		return nil
	}
	if ds.IsWritable() && ds.Loc() == strtab.LocPool {
		copy(e.pool.Bytes(ds.Offset(), ss.Len()), e.bytesOf(ss))
		ds.SetLength(ss.Len())
		return nil
	}
	ss.DemoteWritable()
	ds.ShareWhole(ss)
	return nil
}

// Assign overwrites dst's contents in place when it is an exclusively
// owned pool region, otherwise allocates fresh pool space first.
func (e *Engine) Assign(dst int, data []byte) error {
	if err := e.validate(dst); err != nil {
		return err
	}
	if len(data) > strtab.MaxLen {
		return mberr.ErrStringTooLong
	}
	d := e.tab.Get(dst)
	if d.IsWritable() && d.Loc() == strtab.LocPool {
		copy(e.pool.Bytes(d.Offset(), len(data)), data)
		d.SetLength(len(data))
		return nil
	}
	if err := e.Alloc(dst, len(data)); err != nil {
		return err
	}
	d = e.tab.Get(dst)
	copy(e.pool.Bytes(d.Offset(), len(data)), data)
	d.SetLength(len(data))
	return nil
}

// SetFromBuf trims trailing ASCII spaces from a fixed-width buffer, then
// assigns the trimmed bytes to dst. Mirrors reading a BASIC FIELD buffer.
func (e *Engine) SetFromBuf(dst int, buf []byte) error {
	n := len(buf)
	for n > 0 && buf[n-1] == ' ' {
		n--
	}
	return e.Assign(dst, buf[:n])
}

// Concat allocates len(a)+len(b) bytes (retrying through a collection
// on OOM) and copies both halves into dst.
func (e *Engine) Concat(dst, a, b int) error {
	if err := e.validate(dst, a, b); err != nil {
		return err
	}
	da, db := e.tab.Get(a), e.tab.Get(b)
	total := da.Len() + db.Len()
	if total > strtab.MaxLen {
		return mberr.ErrStringTooLong
	}
	if err := e.Alloc(dst, total); err != nil {
		return err
	}
	dd := e.tab.Get(dst)
	out := e.pool.Bytes(dd.Offset(), total)
	if da.Len() > 0 {
		copy(out[:da.Len()], e.bytesOf(da))
	}
	if db.Len() > 0 {
		copy(out[da.Len():], e.bytesOf(db))
	}
	dd.SetLength(total)
	return nil
}

// Compare performs a lexicographic byte comparison of a and b, with
// empty strings ordering before non-empty ones and ties broken by
// length. Returns -1, 0, or 1.
func (e *Engine) Compare(a, b int) (int, error) {
	if err := e.validate(a, b); err != nil {
		return 0, err
	}
	da, db := e.tab.Get(a), e.tab.Get(b)
	aEmpty, bEmpty := da.IsEmpty(), db.IsEmpty()
	switch {
	case aEmpty && bEmpty:
		return 0, nil
	case aEmpty:
		return -1, nil
	case bEmpty:
		return 1, nil
	}
	ab, bb := e.bytesOf(da), e.bytesOf(db)
	n := da.Len()
	if db.Len() < n {
		n = db.Len()
	}
	for i := 0; i < n; i++ {
		if ab[i] != bb[i] {
			if ab[i] < bb[i] {
				return -1, nil
			}
			return 1, nil
		}
	}
	switch {
	case da.Len() < db.Len():
		return -1, nil
	case da.Len() > db.Len():
		return 1, nil
	default:
		return 0, nil
	}
}

// bytesOf returns the live bytes backing a descriptor, whichever kind of
// location it occupies.
func (e *Engine) bytesOf(d *strtab.Descriptor) []byte {
	switch d.Loc() {
	case strtab.LocExternal:
		return d.External()
	case strtab.LocPool:
		return e.pool.Bytes(d.Offset(), d.Len())
	default:
		return nil
	}
}

// GetData returns the live bytes for id, or nil for an empty or invalid
// id. The returned slice aliases engine storage and must not be retained
// across a GarbageCollect.
func (e *Engine) GetData(id int) []byte {
	if !e.tab.Valid(id) {
		return nil
	}
	d := e.tab.Get(id)
	if d.IsEmpty() {
		return nil
	}
	return e.bytesOf(d)
}

// GetLength returns id's length, or 0 for an invalid id.
func (e *Engine) GetLength(id int) int {
	if !e.tab.Valid(id) {
		return 0
	}
	return e.tab.Get(id).Len()
}

// IsEmpty reports whether id holds no data. Invalid ids report true.
func (e *Engine) IsEmpty(id int) bool {
	if !e.tab.Valid(id) {
		return true
	}
	return e.tab.Get(id).IsEmpty()
}

// IsConst reports whether id's data is a const literal alias.
func (e *Engine) IsConst(id int) bool {
	if !e.tab.Valid(id) {
		return false
	}
	return e.tab.Get(id).IsConst()
}

// IsWritable reports whether id may be mutated in place.
func (e *Engine) IsWritable(id int) bool {
	if !e.tab.Valid(id) {
		return false
	}
	return e.tab.Get(id).IsWritable()
}

// WriteTo writes id's live bytes directly to w, with no intermediate
// allocation. This is the direct-print path a running BASIC program uses
// for PRINT: the data never passes through a caller-visible []byte copy.
// An empty or invalid id writes nothing.
func (e *Engine) WriteTo(w io.Writer, id int) error {
	data := e.GetData(id)
	if len(data) == 0 {
		return nil
	}
	_, err := w.Write(data)
	return err
}

// CString returns a fresh, nul-terminated copy of id's bytes, for hosts
// that need to hand the string to C-style APIs expecting a terminator.
// Unlike WriteTo this always allocates; callers that only need to emit
// the string should prefer WriteTo. An invalid id returns mberr.ErrInvalidID.
func (e *Engine) CString(id int) ([]byte, error) {
	if err := e.validate(id); err != nil {
		return nil, err
	}
	data := e.GetData(id)
	out := make([]byte, len(data)+1)
	copy(out, data)
	return out, nil
}

// ErrorString renders an engine error the way a BASIC host would surface
// it to a running program.
func ErrorString(err error) string {
	switch err {
	case nil:
		return "Success"
	case mberr.ErrOutOfMemory:
		return "Out of string space"
	case mberr.ErrStringTooLong:
		return "String too long"
	case mberr.ErrInvalidID:
		return "Invalid string ID"
	case mberr.ErrNullPointer:
		return "Null pointer"
	case mberr.ErrPoolCorrupted:
		return "String pool corrupted"
	default:
		return err.Error()
	}
}
