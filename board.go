// Rules engine
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

// The eight directions a capturing line may run in, as (dx, dy)
// steps. y grows downward, matching row 1 at the top of the board.
var directions = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

func inBounds(x, y int) bool {
	return x >= 0 && x < 8 && y >= 0 && y < 8
}

// Legal reports whether color playing at (x, y) is a legal move, and
// if so returns the coordinates of every opponent stone it captures.
// A move that would flip no stones is illegal, as is a move onto an
// occupied cell or out of bounds.
func (b *Board) Legal(c Color, x, y uint8) (captures [][2]uint8, ok bool) {
	if x > 7 || y > 7 {
		return nil, false
	}
	if b[y][x] != CellEmpty {
		return nil, false
	}

	mine := c.Cell()
	theirs := c.Opponent().Cell()

	for _, d := range directions {
		var line [][2]uint8
		cx, cy := int(x)+d[0], int(y)+d[1]
		for inBounds(cx, cy) && b[cy][cx] == theirs {
			line = append(line, [2]uint8{uint8(cx), uint8(cy)})
			cx += d[0]
			cy += d[1]
		}
		if len(line) > 0 && inBounds(cx, cy) && b[cy][cx] == mine {
			captures = append(captures, line...)
		}
	}

	return captures, len(captures) > 0
}

// Apply places a stone of color c at (x, y) and flips every captured
// stone, returning the resulting board. The caller must have already
// established the move is legal; Apply itself performs no validation.
func (b Board) Apply(c Color, x, y uint8, captures [][2]uint8) Board {
	b[y][x] = c.Cell()
	for _, p := range captures {
		b[p[1]][p[0]] = c.Cell()
	}
	return b
}

// HasAnyLegal reports whether color has at least one legal move on
// the board.
func (b *Board) HasAnyLegal(c Color) bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if b[y][x] != CellEmpty {
				continue
			}
			if _, ok := b.Legal(c, uint8(x), uint8(y)); ok {
				return true
			}
		}
	}
	return false
}

// Terminal reports whether neither color has a legal move, meaning
// the game is over and the board is final.
func (b *Board) Terminal() bool {
	return !b.HasAnyLegal(White) && !b.HasAnyLegal(Black)
}

// Advance applies a legal move played by mover and returns the
// updated game state together with whatever happened to turn order:
//
//   - If the opponent of mover has a legal move, turn passes to them.
//   - Otherwise, if mover still has a legal move, turn stays with
//     mover (a forced pass for the opponent).
//   - Otherwise the game is Completed.
func Advance(g Game, mover Color, x, y uint8, captures [][2]uint8) Game {
	g.Board = g.Board.Apply(mover, x, y, captures)
	g.Turn++

	opponent := mover.Opponent()
	switch {
	case g.Board.HasAnyLegal(opponent):
		// turn already advanced past mover; parity now favors opponent
	case g.Board.HasAnyLegal(mover):
		// forced pass: skip the opponent's turn and advance again so
		// that ToMove still resolves to mover
		g.Turn++
	default:
		g.Lifecycle = Completed
	}
	return g
}
