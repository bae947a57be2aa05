// TCP interface
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

package proto

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"go-othello/conf"
)

// Listener accepts TCP connections and hands each one to MakeClient.
type Listener struct {
	conf    *conf.Conf
	conn    net.Listener
	port    uint16
	handler func(net.Conn)
}

func (*Listener) String() string {
	return "TCP listener"
}

// init opens the listening socket, unless it has already been opened.
func (t *Listener) init() {
	if t.conn != nil {
		return
	}

	var err error
	tcp := fmt.Sprintf(":%d", t.port)
	t.conn, err = net.Listen("tcp", tcp)
	if err != nil {
		t.conf.Log.Fatal(err)
	}
	if t.port == 0 {
		// Extract the port the OS bound the listener to, since
		// port 0 requests a random open port.
		addr := t.conn.Addr().String()
		i := strings.LastIndexByte(addr, ':')
		if i == -1 {
			t.conf.Log.Fatal("Invalid address ", addr)
		}
		port, err := strconv.ParseUint(addr[i+1:], 10, 16)
		if err != nil {
			t.conf.Log.Fatal("Unexpected error ", err)
		}
		t.port = uint16(port)
	}
}

func (t *Listener) Start() {
	t.init()

	t.conf.Debug.Printf("Accepting connections on :%d", t.port)
	for {
		conn, err := t.conn.Accept()
		if err != nil {
			return
		}
		t.handler(conn)
	}
}

func (t *Listener) Port() uint16 {
	return t.port
}

func (t *Listener) Shutdown() {
	if err := t.conn.Close(); err != nil {
		t.conf.Log.Print(err)
	}
}

func launch(conf *conf.Conf) func(net.Conn) {
	return func(conn net.Conn) {
		MakeClient(conn, conf)
	}
}

func MakeListener(conf *conf.Conf, port uint16) *Listener {
	return &Listener{conf: conf, port: port, handler: launch(conf)}
}

// Prepare registers the TCP listener with conf's set of managers.
func Prepare(conf *conf.Conf) {
	conf.Register(MakeListener(conf, uint16(conf.TCPPort)))
}
