// Client Communication Management
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
	"errors"
	"fmt"
	"io"
	"sync"

	"go-othello/conf"
	"go-othello/registry"
	"go-othello/wire"
)

// client wraps one accepted connection. It owns at most one session:
// a user id becomes attached on the first successful HELLO, and a
// game id becomes attached on a successful JOIN. A client is the
// registry.Session key the registry uses to address pushes back at
// this connection.
type client struct {
	conf *conf.Conf
	rwc  io.ReadWriteCloser

	iolock sync.Mutex // serializes writes to rwc

	hasUser bool
	userID  uint32
}

// MakeClient starts handling rwc in its own goroutine. It returns
// immediately; the goroutine runs until rwc is closed or its read
// loop errors out.
func MakeClient(rwc io.ReadWriteCloser, conf *conf.Conf) {
	go (&client{conf: conf, rwc: rwc}).handle()
}

func (cli *client) String() string {
	if cli.hasUser {
		return fmt.Sprintf("%p (user %d)", cli, cli.userID)
	}
	return fmt.Sprintf("%p (unidentified)", cli)
}

// write serializes one already-encoded frame onto the connection. A
// nil frame (produced when there is nothing to send) is a no-op.
func (cli *client) write(frame []byte) error {
	if len(frame) == 0 {
		return nil
	}
	cli.iolock.Lock()
	defer cli.iolock.Unlock()
	_, err := cli.rwc.Write(frame)
	return err
}

func (cli *client) deliver(pushes []registry.Push) {
	for _, p := range pushes {
		peer, ok := p.Session.(*client)
		if !ok || peer == nil {
			continue
		}
		if err := peer.write(p.Frame); err != nil {
			cli.conf.Debug.Printf("push to %p failed: %v", peer, err)
		}
	}
}

// handle is the per-connection read-dispatch-write loop: it reads one
// request at a time (reads are sequential by construction, giving
// FIFO ordering of responses per connection), dispatches it, writes
// the response, then delivers any pushes the operation produced to
// their target connections.
func (cli *client) handle() {
	defer cli.teardown()

	for {
		req, err := wire.DecodeRequest(cli.rwc)
		if err != nil {
			var bfe wire.BadFormatError
			var uae wire.UnsupportedActionError
			switch {
			case errors.As(err, &bfe):
				cli.write(wire.EncodeActionEmpty(wire.StatusBadFormat, bfe.Action))
				continue
			case errors.As(err, &uae):
				// The preamble is always a single octet, so it is
				// already within the representable range; echo it
				// back verbatim.
				cli.write(wire.EncodeActionEmpty(wire.StatusUnsupported, uae.Raw))
				continue
			default:
				// A truncated preamble byte (EOF mid-read) or a
				// transport failure both end the connection; per
				// the concurrency model, read/write failure and
				// EOF are the only legitimate close signals.
				return
			}
		}

		switch r := req.(type) {
		case wire.HelloRequest:
			cli.handleHello(r)
		case wire.JoinRequest:
			cli.handleJoin(r)
		case wire.MoveRequest:
			cli.handleMove(r)
		default:
			panic("unreachable: unhandled request type")
		}
	}
}

func (cli *client) handleHello(r wire.HelloRequest) {
	if cli.hasUser {
		cli.write(wire.EncodeHelloInvalid(cli.userID))
		return
	}
	if r.MaxVersion < wire.MinVersion {
		cli.write(wire.EncodeHelloUnsupported(wire.MinVersion))
		return
	}
	version := r.MaxVersion
	if version > wire.MaxVersion {
		version = wire.MaxVersion
	}
	cli.hasUser = true
	cli.userID = r.UserID
	cli.write(wire.EncodeHelloOK(version))
}

func (cli *client) handleJoin(r wire.JoinRequest) {
	if !cli.hasUser {
		cli.write(wire.EncodeActionEmpty(wire.StatusInvalid, uint8(wire.ActionJoin)))
		return
	}

	gameID, state, pushes, err := cli.conf.Registry.Join(cli, cli.userID, r.GameID)
	switch {
	case err == nil:
		cli.write(wire.EncodeJoinOK(gameID, state))
	case errors.Is(err, registry.ErrNotFound):
		cli.write(wire.EncodeActionEmpty(wire.StatusInvalid, uint8(wire.ActionJoin)))
	case errors.Is(err, registry.ErrUnauthorized):
		cli.write(wire.EncodeActionEmpty(wire.StatusUnauthorized, uint8(wire.ActionJoin)))
	default:
		cli.write(wire.EncodeActionEmpty(wire.StatusInvalid, uint8(wire.ActionJoin)))
	}
	cli.deliver(pushes)
}

func (cli *client) handleMove(r wire.MoveRequest) {
	if !cli.hasUser {
		cli.write(wire.EncodeActionEmpty(wire.StatusInvalid, uint8(wire.ActionMove)))
		return
	}

	state, pushes, err := cli.conf.Registry.Move(cli, r.X, r.Y)
	switch {
	case err == nil:
		cli.write(wire.EncodeMoveResp(wire.StatusOK, state))
	case errors.Is(err, registry.ErrIllegal):
		cli.write(wire.EncodeMoveResp(wire.StatusIllegal, state))
	case errors.Is(err, registry.ErrNotYourTurn):
		cli.write(wire.EncodeMoveResp(wire.StatusInvalid, state))
	case errors.Is(err, registry.ErrNotReady):
		cli.write(wire.EncodeMoveResp(wire.StatusInvalid, state))
	case errors.Is(err, registry.ErrNotFound):
		cli.write(wire.EncodeActionEmpty(wire.StatusInvalid, uint8(wire.ActionMove)))
	default:
		cli.write(wire.EncodeActionEmpty(wire.StatusInvalid, uint8(wire.ActionMove)))
	}
	cli.deliver(pushes)
}

// teardown unbinds the client's session, if any, from whatever game
// it was joined to and forwards the resulting DCONNECT push, then
// closes the underlying connection.
func (cli *client) teardown() {
	pushes := cli.conf.Registry.Unbind(cli)
	cli.deliver(pushes)
	cli.rwc.Close()
}
