// Wire protocol: frame types and shared constants
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

// Package wire implements the length-implicit, bit-packed binary
// protocol spoken over a single TCP (or WebSocket) byte stream
// between a client and the arbiter. Every frame is a whole number of
// octets; fields are packed most-significant-bit first and may
// straddle an octet boundary, most notably the state-push preamble's
// type and message_type fields.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"go-othello"
)

// Action identifies a client-initiated request.
type Action uint8

const (
	ActionHello Action = 0
	ActionJoin  Action = 1
	ActionMove  Action = 2
)

// Status is carried in a server action-status response.
type Status uint8

const (
	StatusOK           Status = 0
	StatusBadFormat    Status = 1
	StatusIllegal      Status = 2
	StatusInvalid      Status = 3
	StatusUnsupported  Status = 4
	StatusUnauthorized Status = 5
)

// PushType identifies an asynchronous, server-initiated state push.
type PushType uint16

const (
	PushConnect   PushType = 0
	PushDconnect  PushType = 1
	PushGamestate PushType = 2
	PushWin       PushType = 3
	PushLose      PushType = 4
	PushTie       PushType = 5
)

// MinVersion and MaxVersion bound the protocol versions this arbiter
// understands. There is, at present, a single generation of the
// protocol.
const (
	MinVersion uint16 = 0
	MaxVersion uint16 = 0
)

// BadFormatError is returned by DecodeRequest when a recognised action
// preamble is followed by a body that could not be read in full.
// Action carries the preamble byte that was successfully read, for
// echoing back in the BAD_FORMAT response.
type BadFormatError struct{ Action uint8 }

func (e BadFormatError) Error() string {
	return fmt.Sprintf("truncated body for action %d", e.Action)
}

// UnsupportedActionError is returned by DecodeRequest when the
// preamble byte does not name a known action.
type UnsupportedActionError struct{ Raw uint8 }

func (e UnsupportedActionError) Error() string {
	return fmt.Sprintf("unrecognised action preamble %d", e.Raw)
}

// GameState is the 136-bit body describing a game from the point of
// view of one recipient: their own color, whether they currently
// have a legal move, the truncated turn counter, and the board.
type GameState struct {
	Color   othello.Color
	CanMove bool
	Turn    uint8 // low 6 bits of the authoritative turn counter
	Board   othello.Board
}

// StateFor builds the GameState a given user should see of g.
func StateFor(g *othello.Game, user uint32) GameState {
	color, _ := g.ColorOf(user)
	return GameState{
		Color:   color,
		CanMove: g.Board.HasAnyLegal(color),
		Turn:    uint8(g.Turn & 0x3F),
		Board:   g.Board,
	}
}

func writeActionStatusPreamble(w *bitWriter, status Status, action uint8) {
	w.writeBits(0, 1) // type: action-status
	w.writeBits(uint64(status), 7)
	w.writeBits(uint64(action), 8)
}

func writePushPreamble(w *bitWriter, t PushType) {
	w.writeBits(1, 1) // type: state push
	w.writeBits(uint64(t), 15)
}

func encodeGameState(w *bitWriter, s GameState) {
	w.writeBits(uint64(s.Color), 1)
	cm := uint64(0)
	if s.CanMove {
		cm = 1
	}
	w.writeBits(cm, 1)
	w.writeBits(uint64(s.Turn)&0x3F, 6)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			w.writeBits(uint64(s.Board[y][x]), 2)
		}
	}
}

func decodeGameState(r *bitReader) (GameState, error) {
	var s GameState
	v, err := r.readBits(1)
	if err != nil {
		return s, err
	}
	s.Color = othello.Color(v)

	v, err = r.readBits(1)
	if err != nil {
		return s, err
	}
	s.CanMove = v == 1

	v, err = r.readBits(6)
	if err != nil {
		return s, err
	}
	s.Turn = uint8(v)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v, err = r.readBits(2)
			if err != nil {
				return s, err
			}
			if v == 3 {
				return s, errReservedCell
			}
			s.Board[y][x] = othello.Cell(v)
		}
	}
	return s, nil
}

var errReservedCell = errors.New("reserved cell value in board")

// EncodeActionEmpty encodes an action-status response with no body,
// used for BAD_FORMAT and for any status that carries no payload.
func EncodeActionEmpty(status Status, action uint8) []byte {
	w := &bitWriter{}
	writeActionStatusPreamble(w, status, action)
	return w.bytes()
}

// EncodeHelloOK encodes a successful HELLO response.
func EncodeHelloOK(version uint16) []byte {
	w := &bitWriter{}
	writeActionStatusPreamble(w, StatusOK, uint8(ActionHello))
	w.writeBits(uint64(version), 16)
	return w.bytes()
}

// EncodeHelloUnsupported encodes a HELLO rejected for an
// unsatisfiable protocol version, carrying the server's minimum.
func EncodeHelloUnsupported(min uint16) []byte {
	w := &bitWriter{}
	writeActionStatusPreamble(w, StatusUnsupported, uint8(ActionHello))
	w.writeBits(uint64(min), 16)
	return w.bytes()
}

// EncodeHelloInvalid encodes a HELLO sent on a connection that
// already has a session, carrying the existing user_id.
func EncodeHelloInvalid(userID uint32) []byte {
	w := &bitWriter{}
	writeActionStatusPreamble(w, StatusInvalid, uint8(ActionHello))
	w.writeBits(uint64(userID), 32)
	return w.bytes()
}

// EncodeJoinOK encodes a successful JOIN response.
func EncodeJoinOK(gameID uint32, state GameState) []byte {
	w := &bitWriter{}
	writeActionStatusPreamble(w, StatusOK, uint8(ActionJoin))
	w.writeBits(uint64(gameID), 32)
	encodeGameState(w, state)
	return w.bytes()
}

// EncodeMoveResp encodes a MOVE response. Every status other than
// BAD_FORMAT carries the mover's current GameState.
func EncodeMoveResp(status Status, state GameState) []byte {
	w := &bitWriter{}
	writeActionStatusPreamble(w, status, uint8(ActionMove))
	encodeGameState(w, state)
	return w.bytes()
}

// EncodePush encodes an asynchronous state push. The recipient's
// GameState is appended as the body only when state is non-nil:
// GAMESTATE carries one, while CONNECT, DCONNECT, WIN, LOSE and TIE are
// sent with a nil state and so have no body.
func EncodePush(t PushType, state *GameState) []byte {
	w := &bitWriter{}
	writePushPreamble(w, t)
	if state != nil {
		encodeGameState(w, *state)
	}
	return w.bytes()
}

// Request is implemented by every decoded client request.
type Request interface{ isRequest() }

type HelloRequest struct {
	MaxVersion uint16
	UserID     uint32
}

type JoinRequest struct {
	GameID uint32
}

type MoveRequest struct {
	X, Y uint8
}

func (HelloRequest) isRequest() {}
func (JoinRequest) isRequest()  {}
func (MoveRequest) isRequest()  {}

// DecodeRequest reads one action preamble and its body from r. A
// clean io.EOF on the preamble byte propagates unchanged, signalling
// an orderly end of stream. A preamble naming an unknown action
// yields UnsupportedActionError; a recognised preamble followed by a
// truncated body yields BadFormatError.
func DecodeRequest(r io.Reader) (Request, error) {
	var ab [1]byte
	if _, err := io.ReadFull(r, ab[:]); err != nil {
		return nil, err
	}

	switch Action(ab[0]) {
	case ActionHello:
		var body [6]byte
		if _, err := io.ReadFull(r, body[:]); err != nil {
			return nil, BadFormatError{Action: ab[0]}
		}
		return HelloRequest{
			MaxVersion: binary.BigEndian.Uint16(body[0:2]),
			UserID:     binary.BigEndian.Uint32(body[2:6]),
		}, nil
	case ActionJoin:
		var body [4]byte
		if _, err := io.ReadFull(r, body[:]); err != nil {
			return nil, BadFormatError{Action: ab[0]}
		}
		return JoinRequest{GameID: binary.BigEndian.Uint32(body[:])}, nil
	case ActionMove:
		var body [1]byte
		if _, err := io.ReadFull(r, body[:]); err != nil {
			return nil, BadFormatError{Action: ab[0]}
		}
		return MoveRequest{X: body[0] >> 4, Y: body[0] & 0x0F}, nil
	default:
		return nil, UnsupportedActionError{Raw: ab[0]}
	}
}
