// Copyright (C) 2024 Blazelog Authors.
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

// Command logforensics hosts the five log-analysis tool operations
// (package toolsurface) over a newline-delimited JSON stdio protocol,
// one request per line.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

var version = "development"

func main() {
	fs := flag.NewFlagSet("logforensics", flag.ExitOnError)
	configPath := fs.String("c", "logforensics.yaml", "path to config file")
	showVersion := fs.Bool("version", false, "print version and exit")
	if fs.Parse(os.Args[1:]) != nil {
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		return
	}

	logger := log.New(os.Stderr, "", log.Lshortfile)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatalf("loading config %q: %s", *configPath, err)
	}

	if err := serveStdio(os.Stdin, os.Stdout, logger, cfg); err != nil {
		logger.Fatal(err)
	}
}
