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

// Package literals gives a compiler front end a place to intern BASIC
// string literals ahead of time, so that alloc_const can be handed a
// single caller-owned byte slice per distinct literal instead of a
// fresh copy at every call site.
package literals

import (
	"github.com/dchest/siphash"
	"golang.org/x/exp/maps"
)

// key0/key1 need not be secret: the table only needs collision
// resistance against accidental aliasing of distinct literals, not
// protection against an adversarial compiler input.
const key0, key1 = 0x6d6261736963, 0x6c6974657261

// Table interns string literal bytes, handing back a stable id for
// repeated occurrences of the same text. A zero Table is ready to use.
type Table struct {
	byHash map[uint64][]entry
	order  []Literal
}

type entry struct {
	id   uint64
	data []byte
}

// Literal is one interned literal: its assigned id and the owned bytes
// a Table hands to alloc_const.
type Literal struct {
	ID   uint64
	Data []byte
}

// IDFor interns bytes, returning its id and whether this call created a
// new entry. The returned byte slice is owned by the table and must be
// treated as const by the caller, matching engine.Engine.AllocConst's
// contract.
func (t *Table) IDFor(bytes []byte) (id uint64, data []byte, isNew bool) {
	if t.byHash == nil {
		t.byHash = make(map[uint64][]entry)
	}
	h := siphash.Hash(key0, key1, bytes)
	for _, e := range t.byHash[h] {
		if string(e.data) == string(bytes) {
			return e.id, e.data, false
		}
	}
	owned := append([]byte(nil), bytes...)
	id = uint64(len(t.order))
	t.byHash[h] = append(t.byHash[h], entry{id: id, data: owned})
	lit := Literal{ID: id, Data: owned}
	t.order = append(t.order, lit)
	return id, owned, true
}

// Len returns the number of distinct literals interned so far.
func (t *Table) Len() int { return len(t.order) }

// Literals returns every interned literal in id order. The returned
// slice is a copy; mutating it does not affect the table.
func (t *Table) Literals() []Literal {
	out := make([]Literal, len(t.order))
	copy(out, t.order)
	return out
}

// Clone returns a copy of t. The hash buckets are cloned with
// golang.org/x/exp/maps; per-bucket entry slices and the id-ordered
// list are copied explicitly since maps.Clone only shallow-copies map
// values.
func (t *Table) Clone() *Table {
	c := &Table{byHash: maps.Clone(t.byHash)}
	for h, entries := range c.byHash {
		c.byHash[h] = append([]entry(nil), entries...)
	}
	c.order = append([]Literal(nil), t.order...)
	return c
}
