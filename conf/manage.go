// Configuration Management
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
	"fmt"
	"os"
	"os/signal"
)

// Manager is any long-lived subsystem that the server starts and
// stops as a unit: the TCP listener, the status web server, and so
// on.
type Manager interface {
	fmt.Stringer
	Start()
	Shutdown()
}

// Register adds m to the set of managers Start will run. Registering
// after Start has already been called is a programming error.
func (c *Conf) Register(m Manager) {
	if c.run {
		panic(fmt.Sprintf("late register: %#v", m))
	}
	c.man = append(c.man, m)
}

// Start runs every registered manager in its own goroutine, then
// blocks until either an interrupt signal or explicit cancellation
// (c.Kill) arrives, at which point every manager is asked to shut
// down in turn.
func (c *Conf) Start() {
	for _, m := range c.man {
		c.Debug.Printf("Starting %s", m)
		go m.Start()
	}
	c.run = true

	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)
	select {
	case <-intr:
		c.Debug.Println("Caught interrupt")
	case <-c.Ctx.Done():
		c.Debug.Println("Requested shutdown")
	}

	c.Debug.Println("Waiting for managers to shut down...")
	for _, m := range c.man {
		c.Debug.Printf("Shutting %s down", m)
		m.Shutdown()
	}
	c.Debug.Println("Shutting down")
}
