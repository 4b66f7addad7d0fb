package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Status classifies the position for the side to move. It is computed
// from scratch on every call.
func Status(board *chess.Board) chess.GameStatus {
	colour := board.ToMove
	if HasLegalMoves(board, colour) {
		return chess.Active
	}
	if IsInCheck(board, colour) {
		return chess.Checkmate
	}
	return chess.Stalemate
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(board *chess.Board) bool {
	return Status(board) == chess.Checkmate
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(board *chess.Board) bool {
	return Status(board) == chess.Stalemate
}
