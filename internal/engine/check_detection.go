package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// IsInCheck returns true if the given colour's king is in check.
// A side with no king on the board is treated as being in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king, ok := board.King(colour)
	if !ok {
		return true
	}
	return IsSquareAttacked(board, colour, king)
}

// IsSquareAttacked returns true if any piece of colour's opponent attacks
// the square. Attacks only look at movement patterns and blocking pieces,
// never at whether the attacker's own king would be exposed, so this is
// safe to call while validating a move.
func IsSquareAttacked(board *chess.Board, colour chess.Colour, sq chess.Square) bool {
	for i, piece := range board.Squares {
		if !piece.IsEnemyOf(colour) {
			continue
		}
		if attacks(board, piece, chess.SquareFromIndex(i), sq) {
			return true
		}
	}
	return false
}

// attacks reports whether piece, standing on from, attacks to.
func attacks(board *chess.Board, piece chess.Piece, from, to chess.Square) bool {
	if from == to {
		return false
	}
	if piece.Kind == chess.Pawn {
		return pawnAttacks(piece.Colour, from, to)
	}
	return canPieceMove(board, piece.Kind, from, to)
}
