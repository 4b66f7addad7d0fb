package server

import (
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// State is the JSON view of a game sent to clients.
type State struct {
	ID string `json:"id"`

	// Board holds eight rows, rank 8 first: uppercase White, lowercase
	// Black, '.' for an empty square.
	Board      []string `json:"board"`
	FEN        string   `json:"fen"`
	SideToMove string   `json:"side_to_move"`
	Status     string   `json:"status"`
	InCheck    bool     `json:"in_check"`

	// Promoting names the square of a pawn waiting for a promotion choice.
	Promoting string `json:"promoting,omitempty"`
}

func newState(id string, g *engine.Game) State {
	board := g.Board()
	state := State{
		ID:         id,
		Board:      strings.Split(strings.TrimSuffix(board.String(), "\n"), "\n"),
		FEN:        g.FEN(),
		SideToMove: strings.ToLower(g.SideToMove().String()),
		Status:     strings.ToLower(g.Status().String()),
		InCheck:    g.InCheck(),
	}
	if sq, ok := g.PendingPromotion(); ok {
		state.Promoting = sq.String()
	}
	return state
}

// MoveRequest is the body of a move.
type MoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// PromoteRequest is the body of a promotion choice.
type PromoteRequest struct {
	Piece string `json:"piece"`
}

// CreateRequest is the optional body of a new game.
type CreateRequest struct {
	FEN string `json:"fen"`
}

var promotionNames = map[string]chess.Kind{
	"queen":  chess.Queen,
	"rook":   chess.Rook,
	"bishop": chess.Bishop,
	"knight": chess.Knight,
}

// ParsePromotion accepts a piece letter (q, r, b, n) or name in any case.
func ParsePromotion(s string) (chess.Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	kind, ok := promotionNames[s]
	if !ok && len(s) == 1 {
		kind = chess.KindFromLetter(s[0])
	}
	if !kind.IsOfficer() {
		return chess.Empty, errors.Wrapf(errors.ErrInvalidPromotion, "piece %q", s)
	}
	return kind, nil
}
