// Configuration Specification and Management
//
// Copyright (c) 2021, 2022, 2023  Philip Kaludercic
//
// This file is part of go-othello.
//
// go-othello is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-othello is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-othello. If not, see
// <http://www.gnu.org/licenses/>

package conf

import (
	"context"
	"flag"
	"io"
	"log"

	"go-othello/registry"
)

// Internal representation, as read from and written to TOML.
type conf struct {
	Debug bool `toml:"debug"`
	Proto struct {
		Port      uint `toml:"port"`
		Websocket bool `toml:"websocket"`
	} `toml:"proto"`
	Web struct {
		Enabled bool `toml:"enabled"`
		Port    uint `toml:"port"`
	} `toml:"web"`
}

// Conf is the public, process-wide configuration object. It is
// assembled once at startup by Load and then handed, read-only, to
// every manager.
type Conf struct {
	Log   *log.Logger
	Debug *log.Logger
	Ctx   context.Context
	Kill  context.CancelFunc

	// Protocol configuration
	TCPPort   uint // Port for accepting TCP connections
	WebSocket bool // Whether WebSocket connections are also accepted

	// Website configuration
	WebInterface bool // Has the status page been enabled?
	WebPort      uint // Port that the status web server listens on

	// Shared game state
	Registry *registry.Registry

	// Internal state
	man []Manager // List of system managers
	run bool      // Running flag
}

// Configuration object used by default, before any file or flag is
// applied.
var defaultConfig = Conf{
	Log:   log.Default(),
	Debug: log.New(io.Discard, "[debug] ", log.Ltime|log.Lshortfile|log.Lmicroseconds),

	TCPPort:   4567,
	WebSocket: true,

	WebInterface: true,
	WebPort:      8080,
}

func init() {
	flag.UintVar(&defaultConfig.TCPPort, "tcpport", defaultConfig.TCPPort,
		"Port to use for TCP connections")
	flag.BoolVar(&defaultConfig.WebSocket, "websocket", defaultConfig.WebSocket,
		"Enable WebSocket connections")
	flag.BoolVar(&defaultConfig.WebInterface, "web", defaultConfig.WebInterface,
		"Enable the status web interface")
	flag.UintVar(&defaultConfig.WebPort, "wwwport", defaultConfig.WebPort,
		"Port to use for the status web server")
	flag.BoolVar(&debug, "debug", debug, "Enable debug output")
	flag.BoolVar(&dump, "dump-config", dump, "Dump configuration to standard output")
	flag.StringVar(&cfile, "conf", cfile, "Path to configuration file")
}
