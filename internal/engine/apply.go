package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// ApplyMove moves the piece on from to to and carries out every side
// effect of the move: en passant capture, en passant markers, pending
// promotion and the castling rook. It does not validate the move or pass
// the turn; use TryMove for that.
func ApplyMove(board *chess.Board, from, to chess.Square) {
	piece := board.Squares[from.Index()]

	if piece.Kind == chess.Pawn {
		captureEnPassant(board, piece, from, to)
	}

	// Markers live for exactly one ply.
	board.ClearEnPassant()
	piece.EnPassant = nil

	switch piece.Kind {
	case chess.Pawn:
		markEnPassant(board, piece, from, to)
		if to.Rank == chess.LastRank(piece.Colour) {
			promoting := to
			board.Promoting = &promoting
		}
	case chess.King:
		if isCastlingMove(from, to) {
			moveCastlingRook(board, from, to)
		}
	}

	piece.Moved = true
	board.Squares[to.Index()] = piece
	board.Squares[from.Index()] = chess.Piece{}
}

// TryMove plays a move for the side to move if it is legal and passes the
// turn, unless the move leaves a pawn waiting for promotion. It returns
// false and leaves the board untouched if the move is rejected.
func TryMove(board *chess.Board, from, to chess.Square) bool {
	if ValidateMove(board, from, to) != nil {
		return false
	}
	playMove(board, from, to)
	return true
}

// playMove applies a validated move and passes the turn unless a
// promotion is now pending.
func playMove(board *chess.Board, from, to chess.Square) {
	ApplyMove(board, from, to)
	if board.Promoting == nil {
		board.NextTurn()
	}
}

// Promote turns the pawn waiting for promotion into the given kind and
// passes the turn. It does nothing if no promotion is pending. Only a
// queen, rook, bishop or knight may be chosen.
func Promote(board *chess.Board, kind chess.Kind) error {
	if board.Promoting == nil {
		return nil
	}
	if !kind.IsOfficer() {
		return fmt.Errorf("promote to %s: %w", kind, errors.ErrInvalidPromotion)
	}

	board.Squares[board.Promoting.Index()].Kind = kind
	board.Promoting = nil
	board.NextTurn()
	return nil
}
