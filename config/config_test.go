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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hjkit/mbasic/pool"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() is not valid: %v", err)
	}
}

func TestValidateRejectsUndersizedPool(t *testing.T) {
	c := Config{PoolBytes: 10, Descriptors: 4}
	if err := c.Validate(); err == nil {
		t.Fatalf("Validate accepted a pool smaller than pool.MinCapacity")
	}
}

func TestValidateRejectsZeroDescriptors(t *testing.T) {
	c := Config{PoolBytes: pool.MinCapacity, Descriptors: 0}
	if err := c.Validate(); err == nil {
		t.Fatalf("Validate accepted zero descriptors")
	}
}

func TestLoadFillsDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("descriptors: 64\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Descriptors != 64 {
		t.Fatalf("Descriptors = %d, want 64", c.Descriptors)
	}
	if c.PoolBytes != pool.MinCapacity {
		t.Fatalf("PoolBytes = %d, want default %d", c.PoolBytes, pool.MinCapacity)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("poolBytes: 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load accepted an undersized poolBytes")
	}
}
