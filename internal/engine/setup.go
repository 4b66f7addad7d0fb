package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// StandardBackRank is the usual arrangement of officers, a-file first.
var StandardBackRank = [chess.BoardSize]chess.Kind{
	chess.Rook, chess.Knight, chess.Bishop, chess.Queen,
	chess.King, chess.Bishop, chess.Knight, chess.Rook,
}

// NewBoardWithBackRank creates a starting position with the given officers
// on both home rows, mirrored for Black, and a full row of pawns in front.
// The arrangement must contain exactly one king and no pawns.
func NewBoardWithBackRank(backRank [chess.BoardSize]chess.Kind) (*chess.Board, error) {
	kings := 0
	for file, kind := range backRank {
		switch {
		case kind == chess.King:
			kings++
		case !kind.IsOfficer():
			return nil, fmt.Errorf("%s on file %c: %w", kind, 'a'+file, errors.ErrInvalidSetup)
		}
	}
	if kings != 1 {
		return nil, fmt.Errorf("%d kings in back rank: %w", kings, errors.ErrInvalidSetup)
	}

	board := chess.NewBoard()
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for file, kind := range backRank {
			home := chess.Square{File: file, Rank: chess.HomeRank(colour)}
			pawns := chess.Square{File: file, Rank: chess.PawnRank(colour)}
			board.Squares[home.Index()] = chess.NewPiece(colour, kind)
			board.Squares[pawns.Index()] = chess.NewPiece(colour, chess.Pawn)
		}
	}
	return board, nil
}

// checkKings verifies that each side has exactly one king.
func checkKings(board *chess.Board) error {
	counts := map[chess.Colour]int{}
	for _, piece := range board.Squares {
		if piece.Kind == chess.King {
			counts[piece.Colour]++
		}
	}
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if counts[colour] != 1 {
			return fmt.Errorf("%s has %d kings: %w", colour, counts[colour], errors.ErrInvalidSetup)
		}
	}
	return nil
}
