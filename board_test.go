// Rules engine tests
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

package othello

import "testing"

func TestNewBoard(t *testing.T) {
	b := NewBoard()
	if b[3][3] != CellWhite || b[4][4] != CellWhite {
		t.Fatalf("expected white on d4/e5, got %v", b)
	}
	if b[3][4] != CellBlack || b[4][3] != CellBlack {
		t.Fatalf("expected black on e4/d5, got %v", b)
	}
	white, black := b.Score()
	if white != 2 || black != 2 {
		t.Fatalf("expected 2-2 at start, got %d-%d", white, black)
	}
}

func TestLegalOpeningMoves(t *testing.T) {
	b := NewBoard()
	tests := []struct {
		x, y uint8
		ok   bool
	}{
		{2, 3, true},  // c4, flips d4
		{3, 2, true},  // d3, flips d4
		{5, 4, true},  // f5, flips e5
		{4, 5, true},  // e6, flips e5
		{0, 0, false}, // a1, no captures possible
		{3, 3, false}, // d4, occupied
	}
	for _, tt := range tests {
		_, ok := b.Legal(Black, tt.x, tt.y)
		if ok != tt.ok {
			t.Errorf("Legal(Black, %d, %d) = %v, want %v", tt.x, tt.y, ok, tt.ok)
		}
	}
}

func TestApplyCaptures(t *testing.T) {
	b := NewBoard()
	captures, ok := b.Legal(Black, 2, 3)
	if !ok {
		t.Fatal("c4 should be legal for black")
	}
	if len(captures) != 1 || captures[0] != [2]uint8{3, 3} {
		t.Fatalf("expected a single capture at d4, got %v", captures)
	}

	nb := b.Apply(Black, 2, 3, captures)
	if nb[3][2] != CellBlack {
		t.Fatalf("c4 should hold a black stone after the move")
	}
	if nb[3][3] != CellBlack {
		t.Fatalf("d4 should have flipped to black")
	}
	white, black := nb.Score()
	if white != 1 || black != 4 {
		t.Fatalf("expected 1-4 after c4, got %d-%d", white, black)
	}
}

func TestTerminalEmptyBoard(t *testing.T) {
	var b Board
	if !b.Terminal() {
		t.Fatal("an empty board has no legal moves for either color")
	}
}

func TestAdvanceForcedPass(t *testing.T) {
	// A position where, after white plays at a1, black has no reply
	// anywhere but white still has another move at f8: turn must stay
	// with white (a forced pass for black), not flip to black.
	var b Board
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			b[y][x] = CellWhite
		}
	}
	b[0][0] = CellEmpty
	b[0][1] = CellBlack
	b[0][2] = CellBlack
	b[7][5] = CellEmpty
	b[7][6] = CellBlack

	g := Game{Board: b, Turn: 2, Lifecycle: Ready}
	captures, ok := g.Board.Legal(White, 0, 0)
	if !ok {
		t.Fatal("expected a legal move for white at a1")
	}

	g2 := Advance(g, White, 0, 0, captures)
	if g2.Lifecycle == Completed {
		t.Fatalf("game should not be complete: %v", g2.Board)
	}
	if g2.Board.HasAnyLegal(Black) {
		t.Fatalf("black should have no legal move left: %v", g2.Board)
	}
	if !g2.Board.HasAnyLegal(White) {
		t.Fatalf("white should still have a legal move at f8")
	}
	if g2.ToMove() != White {
		t.Fatalf("expected forced pass to keep white on move, got %s", g2.ToMove())
	}
}

func TestAdvanceNormalHandoff(t *testing.T) {
	g := Game{Board: NewBoard(), Turn: 1, Lifecycle: Ready}
	captures, ok := g.Board.Legal(Black, 2, 3)
	if !ok {
		t.Fatal("c4 should be legal for black")
	}
	g2 := Advance(g, Black, 2, 3, captures)
	if g2.ToMove() != White {
		t.Fatalf("turn should pass to white, got %s", g2.ToMove())
	}
}
