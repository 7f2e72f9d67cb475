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

// Left, Right, and Mid produce views, not copies: dst's data comes to
// alias src's buffer. All three normalize their window to lie entirely
// inside src, demote src to non-writable (establishing the aliasing
// invariant), and leave dst non-writable.

// Left implements LEFT$(src, n): dst becomes the leftmost (up to) n
// bytes of src.
func (e *Engine) Left(dst, src int, n int) error {
	if err := e.validate(dst, src); err != nil {
		return err
	}
	s, d := e.tab.Get(src), e.tab.Get(dst)
	if s.IsEmpty() || n == 0 {
		d.Clear()
		return nil
	}
	if n > s.Len() {
		n = s.Len()
	}
	s.DemoteWritable()
	d.ShareRange(s, 0, n, s.IsConst())
	return nil
}

// Right implements RIGHT$(src, n): dst becomes the rightmost (up to) n
// bytes of src.
func (e *Engine) Right(dst, src int, n int) error {
	if err := e.validate(dst, src); err != nil {
		return err
	}
	s, d := e.tab.Get(src), e.tab.Get(dst)
	if s.IsEmpty() || n == 0 {
		d.Clear()
		return nil
	}
	if n > s.Len() {
		n = s.Len()
	}
	s.DemoteWritable()
	d.ShareRange(s, s.Len()-n, n, s.IsConst())
	return nil
}

// Mid implements the MID$(src, start, length) expression form. start is
// 1-based on input (BASIC convention); start == 0 is treated as 1.
func (e *Engine) Mid(dst, src int, start, length int) error {
	if err := e.validate(dst, src); err != nil {
		return err
	}
	s, d := e.tab.Get(src), e.tab.Get(dst)
	if start > 0 {
		start--
	}
	if s.IsEmpty() || length == 0 || start >= s.Len() {
		d.Clear()
		return nil
	}
	if start+length > s.Len() {
		length = s.Len() - start
	}
	s.DemoteWritable()
	d.ShareRange(s, start, length, s.IsConst())
	return nil
}

// MidAssign implements the MID$(dst, start) = data statement form: a
// copy-on-write overwrite of part of dst. start is 1-based (0 is treated
// as 1); start > dst.Len() is a silent no-op. Writes never extend dst: at
// most min(len(data), dst.Len()-start+1) bytes are replaced.
//
// If dst is not writable (const, or a shared view), a private copy is
// materialized first: the current bytes are captured, a fresh pool
// region is allocated (which may itself trigger a GarbageCollect), and
// the captured bytes are copied into it before the overwrite. Other
// descriptors that were sharing dst's old data keep pointing at it;
// only dst is detached.
func (e *Engine) MidAssign(dst int, start int, data []byte) error {
	if err := e.validate(dst); err != nil {
		return err
	}
	if start > 0 {
		start--
	}
	d := e.tab.Get(dst)
	if start >= d.Len() {
		return nil
	}
	replaceLen := len(data)
	if start+replaceLen > d.Len() {
		replaceLen = d.Len() - start
	}
	if !d.IsWritable() {
		origLen := d.Len()
		snapshot := append([]byte(nil), e.bytesOf(d)...)
		if err := e.Alloc(dst, origLen); err != nil {
			return err
		}
		d = e.tab.Get(dst)
		copy(e.pool.Bytes(d.Offset(), origLen), snapshot)
		d.SetLength(origLen)
	}
	window := e.pool.Bytes(d.Offset(), d.Len())
	copy(window[start:start+replaceLen], data[:replaceLen])
	return nil
}
