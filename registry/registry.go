// Game registry
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

// Package registry is the single shared owner of the game table and
// the matchmaking queue. Every operation that reads and then writes
// game-table or queue state runs under one mutual-exclusion region;
// callers receive snapshots and lists of pushes to deliver, and
// perform all I/O themselves, outside the lock.
package registry

import (
	"errors"
	"sync"

	"go-othello"
	"go-othello/wire"
)

// Session is whatever the connection handler binds to a user and a
// game. The registry never stores anything about a Session beyond
// what is needed to address a push frame to it; it is kept as an
// opaque key so that the registry carries no reference to a
// connection or its teardown.
type Session interface{}

// Push is one frame the caller must deliver to one session, computed
// inside the registry's critical section but sent outside it.
type Push struct {
	Session Session
	Frame   []byte
}

var (
	ErrNotFound     = errors.New("registry: no such game")
	ErrUnauthorized = errors.New("registry: not a player of this game")
	ErrNotReady     = errors.New("registry: game is not ready")
	ErrIllegal      = errors.New("registry: illegal move")
	ErrNotYourTurn  = errors.New("registry: not this player's turn")
)

type entry struct {
	game othello.Game
	// bound associates every session currently joined to this game
	// with the user it authenticated as. This single map serves both
	// as the game's bound_sessions set and, summed across all
	// entries, as the sessions_by_game index: nothing outside the
	// registry ever needs a session→game index separate from this.
	bound map[Session]uint32
}

// Registry is the game table plus the FIFO matchmaking queue. The
// zero value is not usable; use New.
type Registry struct {
	mu     sync.Mutex
	games  map[uint32]*entry
	queue  []uint32
	nextID uint32
}

// New returns an empty registry. Game ids are assigned starting at 2;
// 0 and 1 are reserved request-only values in the JOIN action.
func New() *Registry {
	return &Registry{
		games:  make(map[uint32]*entry),
		nextID: 2,
	}
}

// Stats is a snapshot of the registry's lifecycle counts, for display
// on the operational status page. It carries no per-game detail.
type Stats struct {
	Unready, Ready, Completed int
	Queued                    int
}

// Snapshot reports the current Stats under the registry's lock.
func (r *Registry) Snapshot() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	var s Stats
	s.Queued = len(r.queue)
	for _, g := range r.games {
		switch g.game.Lifecycle {
		case othello.Unready:
			s.Unready++
		case othello.Ready:
			s.Ready++
		case othello.Completed:
			s.Completed++
		}
	}
	return s
}

// CreateUnready allocates a new Unready game hosted by host, enqueues
// it for matchmaking iff queued, and returns its id.
func (r *Registry) CreateUnready(host uint32, queued bool) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createUnready(host, queued)
}

func (r *Registry) createUnready(host uint32, queued bool) uint32 {
	id := r.nextID
	r.nextID++
	g := othello.Game{
		ID:        id,
		HostUser:  host,
		Board:     othello.NewBoard(),
		Turn:      1,
		Lifecycle: othello.Unready,
		Queued:    queued,
	}
	r.games[id] = &entry{game: g, bound: make(map[Session]uint32)}
	if queued {
		r.queue = append(r.queue, id)
	}
	return id
}

// popQueueExcluding removes and returns the first queued game whose
// host is not user, leaving any earlier entries matching user in
// place for a later joiner. It reports false if no such game exists.
func (r *Registry) popQueueExcluding(user uint32) (uint32, bool) {
	for i, id := range r.queue {
		g := r.games[id]
		if g == nil || g.game.HostUser == user {
			continue
		}
		r.queue = append(r.queue[:i:i], r.queue[i+1:]...)
		return id, true
	}
	return 0, false
}

// Join implements the JOIN action's three request shapes. It returns
// the id of the game the session is now bound to, the GAMESTATE the
// requester should see, and any pushes owed to other sessions as a
// side effect (a CONNECT to the host when a game transitions
// Unready→Ready, a CONNECT to the peer on an idempotent rebind, or a
// DCONNECT to the peer of whatever other game sess was previously
// bound to, since a session may be bound to at most one game at a
// time).
func (r *Registry) Join(sess Session, user uint32, requestedID uint32) (gameID uint32, state wire.GameState, pushes []Push, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case requestedID == 0:
		if id, ok := r.popQueueExcluding(user); ok {
			g := r.games[id]
			g.game.GuestUser = user
			g.game.HasGuest = true
			g.game.Queued = false
			g.game.Lifecycle = othello.Ready
			pushes = r.evict(sess, id)
			g.bound[sess] = user
			pushes = append(pushes, r.pushToOthers(id, sess, wire.PushConnect, nil)...)
			return id, wire.StateFor(&g.game, user), pushes, nil
		}
		id := r.createUnready(user, true)
		g := r.games[id]
		pushes = r.evict(sess, id)
		g.bound[sess] = user
		return id, wire.StateFor(&g.game, user), pushes, nil

	case requestedID == 1:
		id := r.createUnready(user, false)
		g := r.games[id]
		pushes = r.evict(sess, id)
		g.bound[sess] = user
		return id, wire.StateFor(&g.game, user), pushes, nil

	default:
		g, ok := r.games[requestedID]
		if !ok {
			return 0, wire.GameState{}, nil, ErrNotFound
		}
		switch g.game.Lifecycle {
		case othello.Completed:
			return 0, wire.GameState{}, nil, ErrNotFound
		case othello.Ready:
			if _, isPlayer := g.game.ColorOf(user); !isPlayer {
				return 0, wire.GameState{}, nil, ErrUnauthorized
			}
			_, wasBound := g.bound[sess]
			pushes = r.evict(sess, requestedID)
			g.bound[sess] = user
			if !wasBound {
				pushes = append(pushes, r.pushToOthers(requestedID, sess, wire.PushConnect, nil)...)
			}
			return requestedID, wire.StateFor(&g.game, user), pushes, nil
		default: // Unready
			if g.game.HostUser == user {
				pushes = r.evict(sess, requestedID)
				g.bound[sess] = user
				return requestedID, wire.StateFor(&g.game, user), pushes, nil
			}
			g.game.GuestUser = user
			g.game.HasGuest = true
			g.game.Lifecycle = othello.Ready
			if g.game.Queued {
				r.dequeue(requestedID)
				g.game.Queued = false
			}
			pushes = r.evict(sess, requestedID)
			g.bound[sess] = user
			pushes = append(pushes, r.pushToOthers(requestedID, sess, wire.PushConnect, nil)...)
			return requestedID, wire.StateFor(&g.game, user), pushes, nil
		}
	}
}

// evict removes sess from whatever game it is currently bound to, if
// that game is not keepID, and returns the DCONNECT push owed to the
// abandoned game's remaining peer — the same push a real Unbind would
// produce. A session is modeled as bound to at most one game at a
// time, so a successful JOIN implicitly leaves behind any game from a
// previous session on the same connection. Called only once a JOIN is
// known to succeed, so a rejected request never perturbs the session's
// existing binding.
func (r *Registry) evict(sess Session, keepID uint32) []Push {
	g, _, ok := r.lookupBound(sess)
	if !ok || g.game.ID == keepID {
		return nil
	}
	delete(g.bound, sess)
	return r.pushToOthers(g.game.ID, sess, wire.PushDconnect, nil)
}

func (r *Registry) dequeue(id uint32) {
	for i, q := range r.queue {
		if q == id {
			r.queue = append(r.queue[:i:i], r.queue[i+1:]...)
			return
		}
	}
}

// Move validates and applies a move played by the session's user. On
// success it returns the mover's resulting GAMESTATE, any pushes owed
// to the opponent (a GAMESTATE, followed by WIN/LOSE/TIE if the game
// just completed), and a nil error. On a rejected move — illegal, out
// of turn, or the joined game not yet Ready — it still returns the
// mover's current GAMESTATE alongside the error, since the caller
// sends a GAMESTATE body back to the client regardless of status.
// Only ErrNotFound, for a session with no game binding at all, carries
// a zero-value GAMESTATE.
func (r *Registry) Move(sess Session, x, y uint8) (state wire.GameState, pushes []Push, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, user, ok := r.lookupBound(sess)
	if !ok {
		return wire.GameState{}, nil, ErrNotFound
	}
	if g.game.Lifecycle != othello.Ready {
		return wire.StateFor(&g.game, user), nil, ErrNotReady
	}
	color, _ := g.game.ColorOf(user)
	if g.game.ToMove() != color {
		return wire.StateFor(&g.game, user), nil, ErrNotYourTurn
	}

	captures, legal := g.game.Board.Legal(color, x, y)
	if !legal {
		return wire.StateFor(&g.game, user), nil, ErrIllegal
	}

	g.game = othello.Advance(g.game, color, x, y, captures)
	state = wire.StateFor(&g.game, user)

	// The mover's own GAMESTATE rides on the MOVE action-status
	// response the caller sends; everyone else learns about it
	// through a push. A completed game additionally gets an outcome
	// push to every bound session, the mover included, after its
	// GAMESTATE.
	for peer, peerUser := range g.bound {
		if peer != sess {
			peerState := wire.StateFor(&g.game, peerUser)
			pushes = append(pushes, Push{Session: peer, Frame: wire.EncodePush(wire.PushGamestate, &peerState)})
		}
		if g.game.Lifecycle == othello.Completed {
			pushes = append(pushes, Push{Session: peer, Frame: wire.EncodePush(outcomePush(g.game.Board.OutcomeFor(peerColorOf(&g.game, peerUser))), nil)})
		}
	}
	return state, pushes, nil
}

func peerColorOf(g *othello.Game, user uint32) othello.Color {
	c, _ := g.ColorOf(user)
	return c
}

func outcomePush(o othello.Outcome) wire.PushType {
	switch o {
	case othello.Win:
		return wire.PushWin
	case othello.Lose:
		return wire.PushLose
	default:
		return wire.PushTie
	}
}

// Unbind removes sess from whatever game it is bound to, if any, and
// returns a DCONNECT push for the remaining peer. It does not delete
// the game.
func (r *Registry) Unbind(sess Session) []Push {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, _, ok := r.lookupBound(sess)
	if !ok {
		return nil
	}
	delete(g.bound, sess)
	return r.pushToOthers(g.game.ID, sess, wire.PushDconnect, nil)
}

func (r *Registry) lookupBound(sess Session) (*entry, uint32, bool) {
	for _, g := range r.games {
		if user, ok := g.bound[sess]; ok {
			return g, user, true
		}
	}
	return nil, 0, false
}

func (r *Registry) pushToOthers(id uint32, exclude Session, t wire.PushType, state *wire.GameState) []Push {
	g := r.games[id]
	if g == nil {
		return nil
	}
	var pushes []Push
	for peer := range g.bound {
		if peer == exclude {
			continue
		}
		pushes = append(pushes, Push{Session: peer, Frame: wire.EncodePush(t, state)})
	}
	return pushes
}
