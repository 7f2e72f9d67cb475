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

package strtab

// Table is a fixed-size array of N descriptors, indexed 0..N-1. Outside
// of a SortByAddress/SortByID pass the descriptor at position i always
// has id == i; callers index by id via Get.
type Table struct {
	d []Descriptor
}

// New allocates a Table of n descriptors, all empty, ids 0..n-1.
func New(n int) *Table {
	t := &Table{d: make([]Descriptor, n)}
	t.reinit()
	return t
}

func (t *Table) reinit() {
	for i := range t.d {
		t.d[i] = Descriptor{id: i}
	}
}

// Len returns the table's fixed descriptor count (N).
func (t *Table) Len() int { return len(t.d) }

// Valid reports whether id is within [0, N).
func (t *Table) Valid(id int) bool { return id >= 0 && id < len(t.d) }

// Get returns the descriptor for id. The caller must have checked Valid.
func (t *Table) Get(id int) *Descriptor { return &t.d[id] }

// At returns the descriptor currently at array position i, irrespective
// of its id. Used by the compactor while the table is sorted by address.
func (t *Table) At(i int) *Descriptor { return &t.d[i] }

// ClearAll resets every descriptor to empty, preserving ids.
func (t *Table) ClearAll() {
	t.reinit()
}

// Free clears a single descriptor back to the empty state, without
// touching the pool it may have referenced.
func (t *Table) Free(id int) {
	t.d[id].clear()
}

// addressLess orders descriptors for compaction: null data sorts last;
// const data (outside the pool, never moved) sorts last among the
// non-null; among in-pool strings, ascending offset; ties at the same
// offset favor the longer string, so a parent always sorts immediately
// before any substring view into it.
func addressLess(a, b *Descriptor) bool {
	if a.loc == LocNone {
		return false
	}
	if b.loc == LocNone {
		return true
	}
	if a.isConst {
		return false
	}
	if b.isConst {
		return true
	}
	if a.loc == LocPool && b.loc == LocPool {
		if a.offset != b.offset {
			return a.offset < b.offset
		}
		return a.length > b.length
	}
	// one of a, b is LocExternal-but-not-const: shouldn't occur in
	// practice (external data is always const), but external sorts
	// after in-pool data for safety since it is never compacted.
	return a.loc == LocPool
}

// idLess orders descriptors by their stable id, to restore external
// indexing after compaction.
func idLess(a, b *Descriptor) bool { return a.id < b.id }

// SortByAddress permutes the table in place so that descriptors are
// ordered by addressLess. Shell sort with a gap sequence derived from
// N/2 halving, chosen (as in the source C implementation) for code size
// over asymptotic elegance; any in-place O(N log N) sort would satisfy
// the same contract.
func (t *Table) SortByAddress() { shellSort(t.d, addressLess) }

// SortByID permutes the table in place back into id order, so that
// descriptor at position i again has id == i.
func (t *Table) SortByID() { shellSort(t.d, idLess) }

func shellSort(d []Descriptor, less func(a, b *Descriptor) bool) {
	n := len(d)
	for gap := n / 2; gap > 0; gap /= 2 {
		for i := gap; i < n; i++ {
			temp := d[i]
			j := i
			for ; j >= gap && less(&temp, &d[j-gap]); j -= gap {
				d[j] = d[j-gap]
			}
			d[j] = temp
		}
	}
}
