package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// canPieceMove checks if a knight, bishop, rook, queen or king (single step)
// can move from one square to another, including that the path is clear.
func canPieceMove(board *chess.Board, pieceType chess.Kind, from, to chess.Square) bool {
	colDiff := abs(to.File - from.File)
	rankDiff := abs(to.Rank - from.Rank)

	switch pieceType {
	case chess.Knight:
		return (colDiff == 1 && rankDiff == 2) || (colDiff == 2 && rankDiff == 1)

	case chess.Bishop:
		if colDiff != rankDiff {
			return false
		}
		return isPathClear(board, from, to)

	case chess.Rook:
		if colDiff != 0 && rankDiff != 0 {
			return false
		}
		return isPathClear(board, from, to)

	case chess.Queen:
		if colDiff != rankDiff && colDiff != 0 && rankDiff != 0 {
			return false
		}
		return isPathClear(board, from, to)

	case chess.King:
		return colDiff <= 1 && rankDiff <= 1 && (colDiff|rankDiff) != 0
	}

	return false
}

// isPathClear checks that every square strictly between from and to is
// empty. The two squares must share a file, rank or diagonal.
func isPathClear(board *chess.Board, from, to chess.Square) bool {
	colDir := sign(to.File - from.File)
	rankDir := sign(to.Rank - from.Rank)

	for sq := from.Add(colDir, rankDir); sq != to; sq = sq.Add(colDir, rankDir) {
		if !board.Squares[sq.Index()].IsEmpty() {
			return false
		}
	}

	return true
}
