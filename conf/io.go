// Configuration loading and dumping
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
	"io"
	"log"
	"os"

	"go-othello/registry"

	"github.com/BurntSushi/toml"
)

const defconf = "go-othello.toml"

var (
	debug bool   = false
	dump  bool   = false
	cfile string = defconf
)

// load parses a configuration from r into a fresh Conf, layered over
// defaultConfig.
func load(r io.Reader) (*Conf, error) {
	var data conf
	data.Proto.Port = defaultConfig.TCPPort
	data.Proto.Websocket = defaultConfig.WebSocket
	data.Web.Enabled = defaultConfig.WebInterface
	data.Web.Port = defaultConfig.WebPort
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}

	c := defaultConfig
	if debug {
		c.Debug.SetOutput(os.Stderr)
	}
	c.TCPPort = data.Proto.Port
	c.WebSocket = data.Proto.Websocket
	c.WebInterface = data.Web.Enabled
	c.WebPort = data.Web.Port

	return &c, nil
}

// Load opens the configuration file named by -conf (if present) and
// returns the resulting Conf, ready for managers to Register against.
func Load() (c *Conf) {
	file, err := os.Open(cfile)
	switch {
	case err == nil:
		defer file.Close()
		c, err = load(file)
		if err != nil {
			log.Print(err)
			c = &defaultConfig
		}
	case os.IsNotExist(err) && cfile == defconf:
		c = &defaultConfig
	default:
		log.Fatal(err)
	}

	c.Registry = registry.New()
	if debug {
		c.Debug.SetOutput(os.Stderr)
	}
	c.Ctx, c.Kill = context.WithCancel(context.Background())

	if dump {
		if err := c.Dump(os.Stdout); err != nil {
			log.Fatalln("Failed to dump configuration:", err)
		}
		os.Exit(0)
	}

	return c
}

// Dump serialises the configuration into wr as TOML.
func (c *Conf) Dump(wr io.Writer) error {
	var data conf
	data.Debug = debug
	data.Proto.Port = c.TCPPort
	data.Proto.Websocket = c.WebSocket
	data.Web.Enabled = c.WebInterface
	data.Web.Port = c.WebPort
	return toml.NewEncoder(wr).Encode(data)
}
