// Domain model
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

// Package othello implements the board and rules of Othello/Reversi,
// independent of how a game is transported over the wire or matched
// up between players.
package othello

import "fmt"

// Color identifies one of the two sides of a game. The host of a
// game always plays White, the guest always plays Black. The numeric
// values match the wire encoding of the color bit: 0=black, 1=white.
type Color uint8

const (
	Black Color = 0
	White Color = 1
)

// Opponent returns the other color.
func (c Color) Opponent() Color {
	return c ^ 1
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return fmt.Sprintf("color(%d)", uint8(c))
	}
}

// Cell is the content of a single square on the board.
type Cell uint8

const (
	CellEmpty Cell = 0
	CellBlack Cell = 1
	CellWhite Cell = 2
)

// Cell returns the board cell value a stone of color c occupies.
func (c Color) Cell() Cell {
	if c == White {
		return CellWhite
	}
	return CellBlack
}

// Board is an 8x8 grid of cells, indexed [y][x] with x=0 at column A
// and y=0 at row 1, matching the (A,1) .. (H,8) ordering used when a
// board is serialised.
type Board [8][8]Cell

// NewBoard returns the standard Othello starting position: D4/E5
// white, E4/D5 black.
func NewBoard() Board {
	var b Board
	b[3][3] = CellWhite // D4
	b[3][4] = CellBlack // E4
	b[4][3] = CellBlack // D5
	b[4][4] = CellWhite // E5
	return b
}

// Outcome describes a terminal game's result from the perspective of
// a single recipient.
type Outcome uint8

const (
	Win Outcome = iota
	Lose
	Tie
)

// Score counts the stones of each color currently on the board.
func (b *Board) Score() (white, black int) {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			switch b[y][x] {
			case CellWhite:
				white++
			case CellBlack:
				black++
			}
		}
	}
	return
}

// OutcomeFor classifies the final score from c's perspective.
func (b *Board) OutcomeFor(c Color) Outcome {
	white, black := b.Score()
	mine, theirs := white, black
	if c == Black {
		mine, theirs = black, white
	}
	switch {
	case mine > theirs:
		return Win
	case mine < theirs:
		return Lose
	default:
		return Tie
	}
}

// Lifecycle is the stage of a game's life, tracked by the registry.
type Lifecycle uint8

const (
	// Unready: a host is bound, no guest has joined yet.
	Unready Lifecycle = iota
	// Ready: both a host and a guest are bound and moves may be played.
	Ready
	// Completed: neither side has a legal move; the board is final.
	Completed
)

func (l Lifecycle) String() string {
	switch l {
	case Unready:
		return "unready"
	case Ready:
		return "ready"
	case Completed:
		return "completed"
	default:
		return "invalid"
	}
}

// Game is the authoritative state of a single match, as owned by the
// registry. A Game is never shared by pointer outside of the
// registry's single mutual-exclusion region; callers receive
// snapshots instead.
type Game struct {
	ID        uint32
	HostUser  uint32
	GuestUser uint32
	HasGuest  bool
	Board     Board
	Turn      uint32
	Lifecycle Lifecycle
	Queued    bool
}

// ColorOf reports which color user plays in g, if any.
func (g *Game) ColorOf(user uint32) (Color, bool) {
	if user == g.HostUser {
		return White, true
	}
	if g.HasGuest && user == g.GuestUser {
		return Black, true
	}
	return 0, false
}

// ToMove returns the color whose turn it currently is. Turn 1 is
// Black's opening move; the color alternates with every advancing
// turn (forced passes keep the same mover and therefore the same
// parity).
func (g *Game) ToMove() Color {
	if g.Turn%2 == 1 {
		return Black
	}
	return White
}
