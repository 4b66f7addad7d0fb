// Package server exposes chess games over HTTP and websockets.
package server

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/store"
)

// Conn is the part of a websocket connection the manager writes to.
type Conn interface {
	WriteJSON(v interface{}) error
}

// session is one live game. mu serialises every read and write of the
// game and its connection set. A session that is evicted has left
// Manager.sessions and must not be used again.
type session struct {
	mu      sync.Mutex
	game    *engine.Game
	conns   map[Conn]struct{}
	dirty   bool // the last save failed
	evicted bool
}

func newSession(g *engine.Game) *session {
	return &session{game: g, conns: make(map[Conn]struct{})}
}

// broadcast sends an event to every connection, dropping those that fail.
// The caller holds s.mu.
func (s *session) broadcast(ev Event) {
	for conn := range s.conns {
		if err := conn.WriteJSON(ev); err != nil {
			delete(s.conns, conn)
		}
	}
}

// Manager owns the live games, restores them from the store on demand and
// persists every change. A game stays in memory until its last websocket
// connection leaves or it is deleted; games only used over HTTP stay until
// deleted.
//
// Lock order is session.mu before Manager.mu.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session
	store    store.Store
	log      io.Writer
}

// NewManager creates a Manager backed by st. Log lines go to log.
func NewManager(st store.Store, log io.Writer) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		store:    st,
		log:      log,
	}
}

// Create starts a game from the opening position, or from fen if it is
// not empty, and stores it.
func (m *Manager) Create(ctx context.Context, fen string) (State, error) {
	g := engine.NewGame()
	if fen != "" {
		var err error
		if g, err = engine.NewGameFromFEN(fen); err != nil {
			return State{}, err
		}
	}

	id := uuid.NewString()
	if err := m.persist(ctx, id, g); err != nil {
		return State{}, err
	}

	m.mu.Lock()
	m.sessions[id] = newSession(g)
	m.mu.Unlock()

	fmt.Fprintf(m.log, "game %s: created at %s\n", id, g.FEN())
	return newState(id, g), nil
}

// session returns the live game with the given id, restoring it from the
// store if it is not in memory.
func (m *Manager) session(ctx context.Context, id string) (*session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("game %q: %w", id, errors.ErrGameNotFound)
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	rec, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	g := engine.NewGame()
	if err := g.LoadSnapshot(rec.Snapshot); err != nil {
		return nil, errors.Wrapf(err, "restore game %s", id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	s = newSession(g)
	m.sessions[id] = s
	fmt.Fprintf(m.log, "game %s: restored from store\n", id)
	return s, nil
}

// persist saves the game. The caller holds the session lock, if any.
func (m *Manager) persist(ctx context.Context, id string, g *engine.Game) error {
	return m.store.Save(ctx, store.Record{
		ID:        id,
		Snapshot:  g.Save(),
		FEN:       g.FEN(),
		UpdatedAt: time.Now().UTC(),
	})
}

// lock returns the live session of a game with its mutex held. A session
// evicted while the caller waited is looked up again.
func (m *Manager) lock(ctx context.Context, id string) (*session, error) {
	for {
		s, err := m.session(ctx, id)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if !s.evicted {
			return s, nil
		}
		s.mu.Unlock()
	}
}

// evict removes s from the live games. The caller holds s.mu.
func (m *Manager) evict(id string, s *session) {
	m.mu.Lock()
	if m.sessions[id] == s {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	s.evicted = true
}

// view runs fn inside the game's critical section without changing it.
func (m *Manager) view(ctx context.Context, id string, fn func(*session)) error {
	s, err := m.lock(ctx, id)
	if err != nil {
		return err
	}
	defer s.mu.Unlock()
	fn(s)
	return nil
}

// update runs fn inside the game's critical section. If fn succeeds the
// game is stored and its new state sent to every connection. A failed
// save is logged; the live game stays authoritative.
func (m *Manager) update(ctx context.Context, id string, fn func(*engine.Game) error) (State, error) {
	s, err := m.lock(ctx, id)
	if err != nil {
		return State{}, err
	}
	defer s.mu.Unlock()

	if err := fn(s.game); err != nil {
		return State{}, err
	}
	s.dirty = false
	if err := m.persist(ctx, id, s.game); err != nil {
		s.dirty = true
		fmt.Fprintf(m.log, "game %s: persist: %v\n", id, err)
	}

	state := newState(id, s.game)
	s.broadcast(Event{Type: EventState, Payload: state})
	return state, nil
}

// State returns the current state of a game.
func (m *Manager) State(ctx context.Context, id string) (State, error) {
	var state State
	err := m.view(ctx, id, func(s *session) {
		state = newState(id, s.game)
	})
	return state, err
}

// Moves lists the legal moves of the side to move in long coordinate form,
// or only those of the piece on from when it is not empty. Nothing can
// move while a promotion is pending.
func (m *Manager) Moves(ctx context.Context, id, from string) ([]string, error) {
	var source *chess.Square
	if from != "" {
		sq, err := chess.ParseSquare(from)
		if err != nil {
			return nil, err
		}
		source = &sq
	}

	moves := []string{}
	err := m.view(ctx, id, func(s *session) {
		if _, pending := s.game.PendingPromotion(); pending {
			return
		}
		if source == nil {
			for _, mv := range s.game.LegalMoves(s.game.SideToMove()) {
				moves = append(moves, mv.String())
			}
			return
		}
		if piece, _ := s.game.Piece(*source); piece.Colour != s.game.SideToMove() {
			return
		}
		for _, to := range s.game.LegalMovesFrom(*source) {
			moves = append(moves, source.String()+to.String())
		}
	})
	return moves, err
}

// Move plays a move given in coordinate notation.
func (m *Manager) Move(ctx context.Context, id, from, to string) (State, error) {
	fromSq, err := chess.ParseSquare(from)
	if err != nil {
		return State{}, err
	}
	toSq, err := chess.ParseSquare(to)
	if err != nil {
		return State{}, err
	}
	return m.update(ctx, id, func(g *engine.Game) error {
		return g.Move(fromSq, toSq)
	})
}

// Promote resolves a pending promotion. It changes nothing if no pawn is
// waiting.
func (m *Manager) Promote(ctx context.Context, id, piece string) (State, error) {
	kind, err := ParsePromotion(piece)
	if err != nil {
		return State{}, err
	}
	return m.update(ctx, id, func(g *engine.Game) error {
		return g.Promote(kind)
	})
}

// Snapshot returns the binary save of a game.
func (m *Manager) Snapshot(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := m.view(ctx, id, func(s *session) {
		data = s.game.Save()
	})
	return data, err
}

// Restore replaces a game with a binary save. A malformed save is
// rejected and the game is left as it was.
func (m *Manager) Restore(ctx context.Context, id string, data []byte) (State, error) {
	return m.update(ctx, id, func(g *engine.Game) error {
		return g.LoadSnapshot(data)
	})
}

// Delete removes a game from memory and from the store. Its connections
// are told and then dropped.
func (m *Manager) Delete(ctx context.Context, id string) error {
	s, err := m.lock(ctx, id)
	if err != nil {
		return err
	}
	defer s.mu.Unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		return errors.Wrapf(err, "delete game %s", id)
	}
	m.evict(id, s)
	s.broadcast(Event{Type: EventDeleted, Payload: DeletedPayload{ID: id}})
	s.conns = make(map[Conn]struct{})

	fmt.Fprintf(m.log, "game %s: deleted\n", id)
	return nil
}

// Register adds a connection that receives every state change of a game.
func (m *Manager) Register(ctx context.Context, id string, conn Conn) error {
	return m.view(ctx, id, func(s *session) {
		s.conns[conn] = struct{}{}
	})
}

// Unregister removes a connection added by Register. When the last
// connection leaves, the game is dropped from memory; the store still
// holds it. A game whose last save failed is kept.
func (m *Manager) Unregister(ctx context.Context, id string, conn Conn) {
	_ = m.view(ctx, id, func(s *session) {
		delete(s.conns, conn)
		if len(s.conns) == 0 && !s.dirty {
			m.evict(id, s)
			fmt.Fprintf(m.log, "game %s: evicted\n", id)
		}
	})
}

// send writes one event to one connection of a game.
func (m *Manager) send(ctx context.Context, id string, conn Conn, ev Event) error {
	var werr error
	err := m.view(ctx, id, func(*session) {
		werr = conn.WriteJSON(ev)
	})
	if err != nil {
		return err
	}
	return werr
}
