// WebSocket interface
//
// Copyright (c) 2021, 2022, 2023  Philip Kaludercic
// Copyright (c) 2021  Tom Wiesing
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
	"net/http"

	"go-othello/conf"
	"go-othello/proto"

	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// wsrwc adapts a WebSocket connection to io.ReadWriteCloser, buffering
// across message boundaries since the wire protocol has no notion of
// a WebSocket frame and may read less than one full message at a time.
type wsrwc struct {
	conn *websocket.Conn
	buf  []byte
}

func (c *wsrwc) Write(p []byte) (int, error) {
	if err := c.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsrwc) Read(p []byte) (int, error) {
	for len(c.buf) == 0 {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return 0, err
		}
		c.buf = msg
	}
	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	return n, nil
}

func (c *wsrwc) Close() error {
	return c.conn.Close()
}

// upgrader returns a handler that promotes an HTTP request to a
// WebSocket connection and hands it to the same client logic used for
// plain TCP connections.
func upgrader(conf *conf.Conf) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			conf.Debug.Printf("unable to upgrade connection: %s", err)
			return
		}
		conf.Debug.Printf("new websocket connection from %s", r.RemoteAddr)
		proto.MakeClient(&wsrwc{conn: conn}, conf)
	}
}
