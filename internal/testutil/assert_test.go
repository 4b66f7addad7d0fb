package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// The failure paths report through *testing.T and cannot be observed from
// inside a test, so these cover the passing cases and the helpers behind them.

func TestAssertEqual_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, 42, 42)
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3}, "slice of %d", 3)
	AssertEqual(t, nil, nil)
}

func TestAssertErrorIs_Success(t *testing.T) {
	base := errors.New("base")
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", base), base)
	AssertErrorIs(t, nil, nil)
}

func TestAssertBooleans_Success(t *testing.T) {
	AssertNoError(t, nil)
	AssertTrue(t, 1 == 1)
	AssertFalse(t, len("hello") == 0, "length check")
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"single int", []interface{}{42}, "42"},
		{"format string", []interface{}{"hello %s", "world"}, "hello world"},
		{"format multiple", []interface{}{"%s %d %s", "test", 42, "end"}, "test 42 end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}

	if got := prefix("ctx"); got != "ctx: " {
		t.Errorf("prefix(ctx) = %q", got)
	}
	if got := prefix(); got != "" {
		t.Errorf("prefix() = %q", got)
	}
}

func TestFixtures(t *testing.T) {
	for _, fen := range []string{Kiwipete, BackRankMate, QueenStalemate, AboutToPromote} {
		g := MustGame(t, fen)
		AssertEqual(t, g.FEN(), fen)
	}

	g := MustGame(t, "")
	PlayMoves(t, g, "e2e4", "e7e5")
	AssertEqual(t, g.SideToMove(), chess.White)

	other := MustGame(t, "")
	PlayMoves(t, other, "e2e4", "e7e5")
	AssertSameGame(t, other, g)

	AssertEqual(t, MustSquare(t, "a8"), chess.Square{File: 0, Rank: 0})
}
