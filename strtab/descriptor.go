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

// Package strtab implements the fixed-size string descriptor table: one
// entry per BASIC string variable or temporary, identified by a stable id
// in [0, N). The table knows nothing about pool semantics beyond the
// bookkeeping needed to sort and restore descriptor order during
// compaction (see SortByAddress / SortByID); allocation policy lives in
// package engine.
package strtab

// MaxLen is the largest length a string descriptor can carry: BASIC
// strings are bounded to 255 bytes.
const MaxLen = 255

// Location records where a descriptor's bytes live. A Descriptor gets
// shuffled around in the table's backing array during compaction, so
// it cannot hold a raw pointer into caller or pool memory without that
// pointer going stale on every move; Location plus an explicit offset
// (or a caller-owned slice) stand in for the pointer instead.
type Location uint8

const (
	// LocNone marks an empty descriptor.
	LocNone Location = iota
	// LocExternal marks a descriptor pointing at caller-owned bytes
	// outside the pool (string literals).
	LocExternal
	// LocPool marks a descriptor whose bytes live inside the pool, at
	// Offset.
	LocPool
)

// Descriptor is one string slot. The zero value is an empty descriptor
// with id 0; Table.reinit gives every slot its correct id.
type Descriptor struct {
	id       int
	isConst  bool
	writable bool
	length   uint8
	loc      Location
	offset   int    // valid when loc == LocPool
	external []byte // valid when loc == LocExternal
}

// ID returns the descriptor's own stable index. Compaction may permute
// descriptor array entries in memory, so every descriptor carries its id
// explicitly and Table restores array order before returning control.
func (d *Descriptor) ID() int { return d.id }

// IsConst reports whether the descriptor's bytes are caller-owned,
// immutable storage outside the pool.
func (d *Descriptor) IsConst() bool { return d.isConst }

// IsWritable reports whether the descriptor's pool region is exclusively
// owned by this descriptor and may be mutated in place.
func (d *Descriptor) IsWritable() bool { return d.writable }

// Len returns the descriptor's current byte length.
func (d *Descriptor) Len() int { return int(d.length) }

// IsEmpty reports whether the descriptor currently holds no data.
func (d *Descriptor) IsEmpty() bool { return d.loc == LocNone || d.length == 0 }

// Loc reports where the descriptor's bytes live.
func (d *Descriptor) Loc() Location { return d.loc }

// Offset returns the pool offset backing this descriptor. Only valid
// when Loc() == LocPool.
func (d *Descriptor) Offset() int { return d.offset }

// External returns the caller-owned bytes backing this descriptor. Only
// valid when Loc() == LocExternal.
func (d *Descriptor) External() []byte { return d.external }

// clear resets a descriptor to the empty state, preserving its id.
func (d *Descriptor) clear() {
	d.isConst = false
	d.writable = false
	d.length = 0
	d.loc = LocNone
	d.offset = 0
	d.external = nil
}

// Clear resets the descriptor to the empty state, preserving its id.
// This is the free/clear operation addressed at a single id.
func (d *Descriptor) Clear() { d.clear() }

// SetExternalConst points the descriptor at caller-owned bytes outside
// the pool and marks it const and non-writable: alloc_const, and copy's
// const-sharing branch.
func (d *Descriptor) SetExternalConst(bytes []byte) {
	d.loc = LocExternal
	d.external = bytes
	d.length = uint8(len(bytes))
	d.isConst = true
	d.writable = false
}

// SetPoolRegion points the descriptor at a fresh, exclusively-owned pool
// region of the given length, starting at offset, and marks it writable.
func (d *Descriptor) SetPoolRegion(offset, length int) {
	d.loc = LocPool
	d.offset = offset
	d.length = uint8(length)
	d.isConst = false
	d.writable = true
	d.external = nil
}

// SetLength updates the descriptor's byte length without touching its
// location; used after writing into an already-reserved pool region.
func (d *Descriptor) SetLength(n int) { d.length = uint8(n) }

// ShareWhole aliases d onto the whole of src's current data: both come
// to reference the same bytes, d is marked non-writable and non-const
// (constness is never propagated through this branch; a const source
// is handled separately by SetExternalConst).
func (d *Descriptor) ShareWhole(src *Descriptor) {
	d.shareFrom(src, 0, src.Len(), false)
}

// ShareRange aliases d onto a subrange of src's data, as produced by the
// LEFT$/RIGHT$/MID$ view operations. isConst carries over src's const
// flag.
func (d *Descriptor) ShareRange(src *Descriptor, offsetDelta, length int, isConst bool) {
	d.shareFrom(src, offsetDelta, length, isConst)
}

// shareFrom aliases d onto src's data (src must already be LocPool or
// LocExternal) with the given length, marking d non-writable. Used by
// the substring views and by copy's share branch.
func (d *Descriptor) shareFrom(src *Descriptor, offsetDelta, length int, isConst bool) {
	d.loc = src.loc
	d.isConst = isConst
	d.writable = false
	d.length = uint8(length)
	switch src.loc {
	case LocExternal:
		d.external = src.external[offsetDelta : offsetDelta+length]
	case LocPool:
		d.offset = src.offset + offsetDelta
		d.external = nil
	}
}

// Relocate updates a descriptor's pool offset in place, without touching
// length or flags. Used exclusively by the compactor: moving live bytes
// must never change whether a descriptor is const, writable, or how
// long it is.
func (d *Descriptor) Relocate(offset int) { d.offset = offset }

// DemoteWritable clears the writable flag, establishing the "writability
// is exclusive" invariant whenever a descriptor becomes (or might become)
// aliased.
func (d *Descriptor) DemoteWritable() { d.writable = false }
