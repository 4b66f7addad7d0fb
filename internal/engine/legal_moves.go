package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// LegalMoves returns every legal move for the given colour, in board
// order of the source square and then the destination square.
//
// Each of the 64 destinations is tried for each of the colour's pieces, so
// a full listing runs up to 4096 legality checks, each of which may copy
// the board. This is the engine's main cost.
func LegalMoves(board *chess.Board, colour chess.Colour) []chess.MovePair {
	var moves []chess.MovePair
	forEachLegalMove(board, colour, func(m chess.MovePair) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// LegalMoveCount returns the number of legal moves for the given colour.
func LegalMoveCount(board *chess.Board, colour chess.Colour) int {
	count := 0
	forEachLegalMove(board, colour, func(chess.MovePair) bool {
		count++
		return true
	})
	return count
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	found := false
	forEachLegalMove(board, colour, func(chess.MovePair) bool {
		found = true
		return false
	})
	return found
}

// LegalMovesFrom returns the legal destinations of the piece on from.
func LegalMovesFrom(board *chess.Board, from chess.Square) []chess.Square {
	if !from.Valid() {
		return nil
	}
	var targets []chess.Square
	for i := 0; i < chess.NumSquares; i++ {
		to := chess.SquareFromIndex(i)
		if IsLegalMove(board, from, to) {
			targets = append(targets, to)
		}
	}
	return targets
}

// forEachLegalMove calls fn for each legal move of colour until fn
// returns false.
func forEachLegalMove(board *chess.Board, colour chess.Colour, fn func(chess.MovePair) bool) {
	for i, piece := range board.Squares {
		if piece.IsEmpty() || piece.Colour != colour {
			continue
		}
		from := chess.SquareFromIndex(i)
		for j := 0; j < chess.NumSquares; j++ {
			to := chess.SquareFromIndex(j)
			if !IsLegalMove(board, from, to) {
				continue
			}
			if !fn(chess.MovePair{From: from, To: to}) {
				return
			}
		}
	}
}
