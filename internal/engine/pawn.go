package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// canPawnMove checks a pawn's push, double push, capture and en passant
// capture. Pawns never move sideways or backwards.
func canPawnMove(board *chess.Board, pawn chess.Piece, from, to chess.Square) bool {
	dir := chess.ColourOffset(pawn.Colour)
	colDiff := abs(to.File - from.File)
	rankStep := to.Rank - from.Rank
	target := board.Squares[to.Index()]

	switch {
	case colDiff == 0 && rankStep == dir:
		return target.IsEmpty()

	case colDiff == 0 && rankStep == 2*dir:
		if pawn.Moved || from.Rank != chess.PawnRank(pawn.Colour) {
			return false
		}
		middle := from.Add(0, dir)
		return board.Squares[middle.Index()].IsEmpty() && target.IsEmpty()

	case colDiff == 1 && rankStep == dir:
		if target.IsEnemyOf(pawn.Colour) {
			return true
		}
		return target.IsEmpty() && isEnPassantCapture(pawn, from, to)
	}

	return false
}

// isEnPassantCapture reports whether a diagonal pawn step from -> to takes
// the pawn marked in the mover's en passant field.
func isEnPassantCapture(pawn chess.Piece, from, to chess.Square) bool {
	ep := pawn.EnPassant
	return ep != nil && ep.Rank == from.Rank && ep.File == to.File
}

// pawnAttacks reports whether a pawn of the given colour on from attacks to.
// Pawns attack both forward diagonals whatever stands there.
func pawnAttacks(colour chess.Colour, from, to chess.Square) bool {
	return to.Rank-from.Rank == chess.ColourOffset(colour) && abs(to.File-from.File) == 1
}

// captureEnPassant removes the pawn taken by an en passant capture
// from -> to, if the move is one. It runs before the pawn is moved.
func captureEnPassant(board *chess.Board, pawn chess.Piece, from, to chess.Square) {
	if from.File == to.File || !board.Squares[to.Index()].IsEmpty() || !isEnPassantCapture(pawn, from, to) {
		return
	}
	captured := chess.Square{File: to.File, Rank: from.Rank}
	board.Squares[captured.Index()] = chess.Piece{}
}

// markEnPassant lets enemy pawns beside a pawn that just advanced two
// ranks take it en passant on their next move.
func markEnPassant(board *chess.Board, pawn chess.Piece, from, to chess.Square) {
	if abs(to.Rank-from.Rank) != 2 {
		return
	}
	for _, df := range []int{-1, 1} {
		side := to.Add(df, 0)
		if !side.Valid() {
			continue
		}
		enemy := &board.Squares[side.Index()]
		if enemy.Kind == chess.Pawn && enemy.IsEnemyOf(pawn.Colour) {
			marker := to
			enemy.EnPassant = &marker
		}
	}
}
