package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// isCastlingMove reports whether a king move from -> to has castling shape:
// two files sideways on the same rank.
func isCastlingMove(from, to chess.Square) bool {
	return to.Rank == from.Rank && abs(to.File-from.File) == 2
}

// castlingRookSquare returns the corner square of the rook the king castles
// with when moving from -> to.
func castlingRookSquare(from, to chess.Square) chess.Square {
	if to.File > from.File {
		return chess.Square{File: chess.BoardSize - 1, Rank: from.Rank}
	}
	return chess.Square{File: 0, Rank: from.Rank}
}

// canCastle checks that the king on from may castle to to. The king and
// the corner rook must both be unmoved, every square between them empty,
// and the king must not be in check now or on any square it passes over.
// Landing in check is left to the self-check test every move goes through.
func canCastle(board *chess.Board, from, to chess.Square) bool {
	king := board.Squares[from.Index()]
	if king.Moved || !isCastlingMove(from, to) {
		return false
	}

	rookSquare := castlingRookSquare(from, to)
	rook := board.Squares[rookSquare.Index()]
	if !rook.Is(king.Colour, chess.Rook) || rook.Moved {
		return false
	}
	if !isPathClear(board, from, rookSquare) {
		return false
	}

	if IsSquareAttacked(board, king.Colour, from) {
		return false
	}
	step := sign(to.File - from.File)
	for sq := from.Add(step, 0); sq != to; sq = sq.Add(step, 0) {
		if IsSquareAttacked(board, king.Colour, sq) {
			return false
		}
	}

	return true
}

// moveCastlingRook puts the rook the king castles with on the square the
// king passed over.
func moveCastlingRook(board *chess.Board, from, to chess.Square) {
	rookFrom := castlingRookSquare(from, to)
	rookTo := to.Add(-sign(to.File-from.File), 0)

	rook := board.Squares[rookFrom.Index()]
	rook.Moved = true
	board.Squares[rookFrom.Index()] = chess.Piece{}
	board.Squares[rookTo.Index()] = rook
}
