// Web interface manager
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

package web

import (
	"fmt"
	"net/http"

	"go-othello/conf"
)

func (s *web) listen() {
	addr := fmt.Sprintf(":%d", s.conf.WebPort)
	s.conf.Debug.Printf("Listening via HTTP on %s", addr)

	err := http.ListenAndServe(addr, s.mux)
	if err != nil {
		s.conf.Log.Print(err)
	}
}

func (s *web) Start() {
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/", s.status)
	s.mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /")
	})

	if s.conf.WebSocket {
		s.conf.Debug.Print("Accepting websocket connections on /socket")
		s.mux.HandleFunc("/socket", upgrader(s.conf))
	}

	s.listen()
}

// The web server can shut down immediately; it holds no state of its
// own beyond the shared registry.
func (*web) Shutdown() {}

func (*web) String() string { return "Web server" }

// Prepare registers the status web server with conf's set of
// managers, unless it has been disabled.
func Prepare(conf *conf.Conf) {
	if !conf.WebInterface {
		return
	}
	conf.Register(&web{conf: conf})
}
