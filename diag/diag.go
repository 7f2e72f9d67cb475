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

// Package diag renders a descriptor table and pool into forms useful
// for debugging a host embedding: a human-readable YAML dump, and a
// compressed binary snapshot suitable for attaching to a bug report.
package diag

import (
	"bytes"
	"io"

	"github.com/google/uuid"
	"github.com/hjkit/mbasic/pool"
	"github.com/hjkit/mbasic/strtab"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v2"
)

// descriptorView is the YAML-friendly shape of one strtab.Descriptor.
type descriptorView struct {
	ID       int    `yaml:"id"`
	Empty    bool   `yaml:"empty,omitempty"`
	Const    bool   `yaml:"const,omitempty"`
	Writable bool   `yaml:"writable,omitempty"`
	Len      int    `yaml:"len"`
	Loc      string `yaml:"loc"`
	Offset   int    `yaml:"offset,omitempty"`
	Preview  string `yaml:"preview,omitempty"`
}

// dump is the top-level YAML document produced by Dump.
type dump struct {
	Session     string           `yaml:"session"`
	PoolUsed    int              `yaml:"pool_used"`
	PoolCap     int              `yaml:"pool_capacity"`
	Descriptors []descriptorView `yaml:"descriptors"`
}

func locName(l strtab.Location) string {
	switch l {
	case strtab.LocExternal:
		return "external"
	case strtab.LocPool:
		return "pool"
	default:
		return "none"
	}
}

func bytesOf(d *strtab.Descriptor, p *pool.Pool) []byte {
	switch d.Loc() {
	case strtab.LocExternal:
		return d.External()
	case strtab.LocPool:
		return p.Bytes(d.Offset(), d.Len())
	default:
		return nil
	}
}

const previewLimit = 32

func preview(b []byte) string {
	if len(b) > previewLimit {
		b = b[:previewLimit]
	}
	return string(b)
}

// Dump writes a human-readable YAML snapshot of t and p to w, tagged
// with a fresh session id so two dumps pulled from the same process
// can be told apart in a bug report.
func Dump(w io.Writer, t *strtab.Table, p *pool.Pool) error {
	doc := dump{
		Session:  uuid.NewString(),
		PoolUsed: p.Used(),
		PoolCap:  p.Capacity(),
	}
	for i := 0; i < t.Len(); i++ {
		d := t.At(i)
		doc.Descriptors = append(doc.Descriptors, descriptorView{
			ID:       d.ID(),
			Empty:    d.IsEmpty(),
			Const:    d.IsConst(),
			Writable: d.IsWritable(),
			Len:      d.Len(),
			Loc:      locName(d.Loc()),
			Offset:   d.Offset(),
			Preview:  preview(bytesOf(d, p)),
		})
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Snapshot returns a zstd-compressed copy of the pool's full backing
// buffer (live region and all), for attaching to a bug report without
// needing engine internals on the receiving end to decompress it.
func Snapshot(p *pool.Pool) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(p.Data()); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
