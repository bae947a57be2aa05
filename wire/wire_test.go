// Wire protocol tests
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

package wire

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"go-othello"
)

func TestBitRoundTrip(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(1, 1)
	w.writeBits(0x7FFF, 15)
	w.writeBits(0x2A, 8)
	buf := w.bytes()
	if len(buf) != 3 {
		t.Fatalf("expected 3 packed bytes, got %d: %x", len(buf), buf)
	}

	r := newBitReader(buf)
	if v, err := r.readBits(1); err != nil || v != 1 {
		t.Fatalf("type bit = %d, %v", v, err)
	}
	if v, err := r.readBits(15); err != nil || v != 0x7FFF {
		t.Fatalf("message_type = %d, %v", v, err)
	}
	if v, err := r.readBits(8); err != nil || v != 0x2A {
		t.Fatalf("trailing byte = %d, %v", v, err)
	}
}

func TestBitReaderTruncated(t *testing.T) {
	r := newBitReader([]byte{0xFF})
	if _, err := r.readBits(16); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestGameStateRoundTrip(t *testing.T) {
	s := GameState{
		Color:   othello.Black,
		CanMove: true,
		Turn:    17,
		Board:   othello.NewBoard(),
	}

	w := &bitWriter{}
	encodeGameState(w, s)
	buf := w.bytes()

	got, err := decodeGameState(newBitReader(buf))
	if err != nil {
		t.Fatalf("decodeGameState: %v", err)
	}
	if got.Color != s.Color || got.CanMove != s.CanMove || got.Turn != s.Turn {
		t.Fatalf("decoded header mismatch: %+v", got)
	}
	if got.Board != s.Board {
		t.Fatalf("decoded board mismatch: %v", got.Board)
	}
}

func TestEncodeJoinOKThenDecodeActionStatusPreamble(t *testing.T) {
	state := StateFor(&othello.Game{HostUser: 1, Board: othello.NewBoard(), Turn: 1}, 1)
	frame := EncodeJoinOK(7, state)

	r := newBitReader(frame)
	typ, err := r.readBits(1)
	if err != nil || typ != 0 {
		t.Fatalf("expected action-status frame, got type=%d err=%v", typ, err)
	}
	status, err := r.readBits(7)
	if err != nil || Status(status) != StatusOK {
		t.Fatalf("expected StatusOK, got %d err=%v", status, err)
	}
	action, err := r.readBits(8)
	if err != nil || Action(action) != ActionJoin {
		t.Fatalf("expected ActionJoin, got %d err=%v", action, err)
	}
	gameID, err := r.readBits(32)
	if err != nil || gameID != 7 {
		t.Fatalf("expected game id 7, got %d err=%v", gameID, err)
	}
}

func TestDecodeRequestHello(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(byte(ActionHello))
	buf.Write([]byte{0x00, 0x00})             // max_version = 0
	buf.Write([]byte{0x00, 0x00, 0x00, 0x05}) // user_id = 5

	req, err := DecodeRequest(&buf)
	if err != nil {
		t.Fatalf("DecodeRequest: %v", err)
	}
	hr, ok := req.(HelloRequest)
	if !ok {
		t.Fatalf("expected HelloRequest, got %T", req)
	}
	if hr.MaxVersion != 0 || hr.UserID != 5 {
		t.Fatalf("unexpected HelloRequest: %+v", hr)
	}
}

func TestDecodeRequestMove(t *testing.T) {
	buf := bytes.NewReader([]byte{byte(ActionMove), 0x53}) // x=5, y=3
	req, err := DecodeRequest(buf)
	if err != nil {
		t.Fatalf("DecodeRequest: %v", err)
	}
	mr, ok := req.(MoveRequest)
	if !ok {
		t.Fatalf("expected MoveRequest, got %T", req)
	}
	if mr.X != 5 || mr.Y != 3 {
		t.Fatalf("unexpected MoveRequest: %+v", mr)
	}
}

func TestDecodeRequestUnsupportedAction(t *testing.T) {
	buf := bytes.NewReader([]byte{0xFE})
	_, err := DecodeRequest(buf)
	var uae UnsupportedActionError
	if !errors.As(err, &uae) || uae.Raw != 0xFE {
		t.Fatalf("expected UnsupportedActionError{0xFE}, got %v", err)
	}
}

func TestDecodeRequestBadFormat(t *testing.T) {
	buf := bytes.NewReader([]byte{byte(ActionJoin), 0x00, 0x01})
	_, err := DecodeRequest(buf)
	var bfe BadFormatError
	if !errors.As(err, &bfe) || bfe.Action != byte(ActionJoin) {
		t.Fatalf("expected BadFormatError{ActionJoin}, got %v", err)
	}
}

func TestDecodeRequestCleanEOF(t *testing.T) {
	buf := bytes.NewReader(nil)
	_, err := DecodeRequest(buf)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF on an empty stream, got %v", err)
	}
}
