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

// Command mbstrdump loads a mbasic engine configuration, replays a
// trivial scripted session against it, and prints a diagnostic YAML
// dump. It exists as a worked example of wiring config, engine, and
// diag together; a real host embeds the packages directly instead of
// shelling out to this binary.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/hjkit/mbasic/config"
	"github.com/hjkit/mbasic/diag"
	"github.com/hjkit/mbasic/engine"
	"github.com/hjkit/mbasic/integrity"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML engine config; defaults to config.Default()")
	checkIntegrity := flag.Bool("check", false, "run integrity.Validate before dumping")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mbstrdump: %s\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	buf, err := cfg.NewBuffer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mbstrdump: allocating pool: %s\n", err)
		os.Exit(1)
	}
	e, err := engine.New(buf, cfg.Descriptors)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mbstrdump: %s\n", err)
		os.Exit(1)
	}

	if err := e.AllocInit(0, []byte("MBASIC")); err != nil {
		fmt.Fprintf(os.Stderr, "mbstrdump: %s\n", err)
		os.Exit(1)
	}

	if *checkIntegrity {
		if err := integrity.Validate(e.Table(), e.Pool()); err != nil {
			fmt.Fprintf(os.Stderr, "mbstrdump: %s\n", err)
			os.Exit(1)
		}
	}

	o := bufio.NewWriter(os.Stdout)
	if err := diag.Dump(o, e.Table(), e.Pool()); err != nil {
		fmt.Fprintf(os.Stderr, "mbstrdump: %s\n", err)
		os.Exit(1)
	}
	if err := o.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
