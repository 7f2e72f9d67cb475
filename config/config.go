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

// Package config describes the sizing a host picks for one engine.Engine
// instance: how big the pool buffer is and how many descriptor slots
// to reserve. It is intentionally small; the engine itself has no
// notion of a config file, only of a byte buffer and a count.
package config

import (
	"fmt"
	"os"

	"github.com/hjkit/mbasic/pool"
	"sigs.k8s.io/yaml"
)

// Config is the sizing a host picks for one engine.Engine.
type Config struct {
	// PoolBytes is the size of the pool's backing buffer.
	PoolBytes int `json:"poolBytes,omitempty"`
	// Descriptors is the fixed number of string descriptor slots.
	Descriptors int `json:"descriptors,omitempty"`
	// UseMmap requests a platform mmap-backed pool buffer instead of a
	// plain Go slice, when the platform supports it (see pool.NewMmapBuffer).
	UseMmap bool `json:"useMmap,omitempty"`
}

// DefaultDescriptors matches the original target's fixed string
// variable table size for an unconfigured program.
const DefaultDescriptors = 128

// Default returns a Config sized for a typical embedded BASIC program:
// the smallest pool capacity pool.New accepts and DefaultDescriptors slots.
func Default() Config {
	return Config{
		PoolBytes:   pool.MinCapacity,
		Descriptors: DefaultDescriptors,
	}
}

// Load reads a YAML (or JSON, which is a YAML subset) config file from
// path and fills in any omitted fields from Default. Fields the file
// sets explicitly, including to zero, are kept and then checked by
// Validate.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports whether c describes a usable engine configuration.
func (c Config) Validate() error {
	if c.PoolBytes < pool.MinCapacity {
		return fmt.Errorf("config: poolBytes must be at least %d, got %d", pool.MinCapacity, c.PoolBytes)
	}
	if c.Descriptors <= 0 {
		return fmt.Errorf("config: descriptors must be positive, got %d", c.Descriptors)
	}
	return nil
}

// NewBuffer allocates a pool backing buffer matching c, using an mmap
// region when c.UseMmap is set and the platform supports it.
func (c Config) NewBuffer() ([]byte, error) {
	if c.UseMmap {
		return pool.NewMmapBuffer(c.PoolBytes)
	}
	return pool.NewBuffer(c.PoolBytes), nil
}
