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

package engine

import "github.com/hjkit/mbasic/strtab"

// GarbageCollect compacts the pool in three phases, all in place on the
// descriptor table:
//
//  1. Sort descriptors by data address (strtab.Table.SortByAddress):
//     null last, const last among the rest, ascending pool offset,
//     longer-first on ties so a parent always precedes any substring
//     view into it.
//  2. Compact in a single forward pass, sliding each live region down to
//     a running cursor. A descriptor whose window lies entirely inside
//     the most recently moved region is not copied again; its offset is
//     rewritten relative to that region's new location, preserving the
//     aliasing relationship instead of duplicating bytes.
//  3. Sort descriptors back by id (strtab.Table.SortByID) so external
//     indexing resumes unchanged.
//
// The aliasing-preservation trick only tracks one parent window at a
// time: it is sound for nested substring chains (a substring of a
// substring, since the grandchild's window lies inside the grandparent
// it was built from), but two independently created strings that merely
// happen to overlap without one nesting inside the other are not a
// supported topology.
func (e *Engine) GarbageCollect() {
	e.tab.SortByAddress()
	e.compact()
	e.tab.SortByID()
}

func (e *Engine) compact() {
	newCursor := 0
	var lastOldStart, lastOldEnd, lastNewStart int
	haveParent := false

	for i := 0; i < e.tab.Len(); i++ {
		d := e.tab.At(i)
		if d.Loc() != strtab.LocPool {
			continue // null and const descriptors never move
		}
		start := d.Offset()
		end := start + d.Len()

		if haveParent && start >= lastOldStart && end <= lastOldEnd {
			// Nested inside the last moved parent: share its
			// relocation delta instead of moving bytes again.
			d.Relocate(lastNewStart + (start - lastOldStart))
			continue
		}

		if start != newCursor {
			e.pool.Move(newCursor, start, d.Len())
		}
		lastOldStart, lastOldEnd, lastNewStart = start, end, newCursor
		haveParent = true
		d.Relocate(newCursor)
		newCursor += d.Len()
	}

	e.pool.SetCursor(newCursor)
}
