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

// Package mberr holds the sentinel errors shared across the string-runtime
// packages (pool, engine, integrity). Every exported runtime
// operation that can fail returns one of these, or nil.
package mberr

import "errors"

var (
	// ErrOutOfMemory is returned when a pool reservation does not fit,
	// even after an internal garbage-collect retry.
	ErrOutOfMemory = errors.New("out of string space")

	// ErrStringTooLong is returned when a requested length, or the sum
	// of two lengths for a concat, exceeds 255 bytes.
	ErrStringTooLong = errors.New("string too long")

	// ErrInvalidID is returned when a descriptor id is out of range.
	ErrInvalidID = errors.New("invalid string id")

	// ErrNullPointer is returned when a required byte slice is nil.
	ErrNullPointer = errors.New("null pointer")

	// ErrPoolCorrupted is returned by integrity checks when a descriptor's
	// data does not validate against the pool it claims to live in.
	ErrPoolCorrupted = errors.New("string pool corrupted")
)
