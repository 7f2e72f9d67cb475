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

// NewBuffer returns a plain Go-heap-backed buffer of n bytes, suitable as
// Pool backing storage on any platform. This is the portable default; use
// NewMmapBuffer on linux/darwin when the caller wants the arena off the
// Go heap.
func NewBuffer(n int) []byte {
	return make([]byte, n)
}
