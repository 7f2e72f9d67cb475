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

//go:build linux || darwin

package pool

import "golang.org/x/sys/unix"

// NewMmapBuffer anonymously maps n bytes of zeroed memory and returns it
// as pool backing storage. This is an alternative to a caller-supplied
// []byte for hosts that would rather not carry a large arena in the Go
// heap's GC-scanned region; a plain make([]byte, n) remains the
// default, portable choice (see NewBuffer).
func NewMmapBuffer(n int) ([]byte, error) {
	return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

// FreeMmapBuffer releases a buffer obtained from NewMmapBuffer. Callers
// must not touch buf, or any Pool built on it, afterwards.
func FreeMmapBuffer(buf []byte) error {
	return unix.Munmap(buf)
}
