// Package engine provides chess move validation and board manipulation.
package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// IsLegalMove reports whether the piece on from may move to to.
// It checks the piece's movement pattern, the squares it passes over and,
// last, that the move does not leave its own king in check. Whose turn it
// is does not matter here. The board is not modified.
func IsLegalMove(board *chess.Board, from, to chess.Square) bool {
	if !canMove(board, from, to) {
		return false
	}
	return !leavesKingInCheck(board, from, to)
}

// canMove checks the movement pattern of the piece on from, ignoring check
// against its own king.
func canMove(board *chess.Board, from, to chess.Square) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}

	piece := board.Squares[from.Index()]
	if piece.IsEmpty() || board.Squares[to.Index()].Colour == piece.Colour {
		return false
	}

	switch piece.Kind {
	case chess.Pawn:
		return canPawnMove(board, piece, from, to)
	case chess.King:
		if abs(to.File-from.File) <= 1 && abs(to.Rank-from.Rank) <= 1 {
			return true
		}
		return canCastle(board, from, to)
	default:
		return canPieceMove(board, piece.Kind, from, to)
	}
}

// leavesKingInCheck plays the move on a copy of the board, side effects
// included, and reports whether the mover's king is then attacked.
func leavesKingInCheck(board *chess.Board, from, to chess.Square) bool {
	colour := board.Squares[from.Index()].Colour

	testBoard := board.Copy()
	ApplyMove(testBoard, from, to)

	return IsInCheck(testBoard, colour)
}

// ValidateMove checks a move submitted by the side to move and returns the
// reason it cannot be played, or nil if TryMove would accept it.
func ValidateMove(board *chess.Board, from, to chess.Square) error {
	if !from.Valid() || !to.Valid() {
		return &errors.MoveError{
			Err:  errors.ErrInvalidCoordinate,
			From: from.String(),
			To:   to.String(),
		}
	}

	reject := func(reason string) error {
		return &errors.MoveError{
			Err:    errors.ErrIllegalMove,
			From:   from.String(),
			To:     to.String(),
			Reason: reason,
		}
	}

	if board.Promoting != nil {
		return &errors.MoveError{
			Err:    errors.ErrPromotionPending,
			From:   from.String(),
			To:     to.String(),
			Reason: fmt.Sprintf("pawn on %s must be promoted first", board.Promoting),
		}
	}

	piece := board.Squares[from.Index()]
	switch {
	case piece.IsEmpty():
		return reject("no piece on source square")
	case piece.Colour != board.ToMove:
		return reject(fmt.Sprintf("%s is not to move", piece.Colour))
	case !canMove(board, from, to):
		return reject(fmt.Sprintf("%s cannot move there", piece.Kind))
	case leavesKingInCheck(board, from, to):
		return reject("king would be in check")
	}
	return nil
}
