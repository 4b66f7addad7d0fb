package testutil

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// Positions used across packages.
const (
	Kiwipete       = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	BackRankMate   = "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1"
	QueenStalemate = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	AboutToPromote = "8/P6k/8/8/8/8/8/K7 w - - 0 1"
)

// MustSquare parses a square such as "e4" or fails the test.
func MustSquare(t testing.TB, s string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return sq
}

// MustGame creates a game from a FEN position or fails the test.
// An empty FEN gives the opening position.
func MustGame(t testing.TB, fen string) *engine.Game {
	t.Helper()
	if fen == "" {
		return engine.NewGame()
	}
	g, err := engine.NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q): %v", fen, err)
	}
	return g
}

// PlayMoves plays moves in long coordinate form such as "e2e4", failing on
// the first one the game rejects.
func PlayMoves(t testing.TB, g *engine.Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if len(m) != 4 {
			t.Fatalf("bad move %q", m)
		}
		if err := g.Move(MustSquare(t, m[:2]), MustSquare(t, m[2:])); err != nil {
			t.Fatalf("move %s: %v\n%s", m, err, g.Board())
		}
	}
}

// AssertSameGame fails if two games differ in any part of their state.
func AssertSameGame(t testing.TB, got, want *engine.Game) {
	t.Helper()
	AssertEqual(t, got.Board(), want.Board(), "game state")
}
