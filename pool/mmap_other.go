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

//go:build !linux && !darwin

package pool

import "errors"

// NewMmapBuffer is unavailable on this platform; use NewBuffer instead.
func NewMmapBuffer(n int) ([]byte, error) {
	return nil, errors.New("pool: mmap-backed buffers are not supported on this platform")
}

// FreeMmapBuffer is unavailable on this platform.
func FreeMmapBuffer(buf []byte) error {
	return errors.New("pool: mmap-backed buffers are not supported on this platform")
}
