package chess

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Board represents a chess board with all state needed for the game.
type Board struct {
	// The board squares, row-major, indexed by Square.Index().
	Squares [NumSquares]Piece

	// Who has the next move.
	ToMove Colour

	// Promoting is the square of a pawn that reached its last rank and is
	// waiting for a promotion choice. The turn does not pass while it is set.
	Promoting *Square
}

// NewBoard creates a new empty board with White to move.
func NewBoard() *Board {
	return &Board{ToMove: White}
}

// Get returns the piece on the given square.
func (b *Board) Get(sq Square) (Piece, error) {
	if !sq.Valid() {
		return Piece{}, fmt.Errorf("get %s: %w", sq, errors.ErrInvalidCoordinate)
	}
	return b.Squares[sq.Index()], nil
}

// At returns the piece on the square named by a file letter and display rank,
// e.g. At('e', 4).
func (b *Board) At(file byte, rank int) (Piece, error) {
	sq, err := SquareAt(file, rank)
	if err != nil {
		return Piece{}, err
	}
	return b.Squares[sq.Index()], nil
}

// Set places a piece on the given square. A piece with either no kind or no
// colour is stored as an empty square, so the two fields never disagree.
func (b *Board) Set(sq Square, piece Piece) error {
	if !sq.Valid() {
		return fmt.Errorf("set %s: %w", sq, errors.ErrInvalidCoordinate)
	}
	if piece.Kind == Empty || piece.Colour == NoColour {
		piece = Piece{}
	}
	b.Squares[sq.Index()] = piece
	return nil
}

// Clear empties the given square.
func (b *Board) Clear(sq Square) error {
	return b.Set(sq, Piece{})
}

// King returns the square of the given colour's king.
// The second result is false if that king is not on the board.
func (b *Board) King(colour Colour) (Square, bool) {
	for i, piece := range b.Squares {
		if piece.Is(colour, King) {
			return SquareFromIndex(i), true
		}
	}
	return Square{}, false
}

// PendingPromotion returns the square of the pawn awaiting promotion, if any.
func (b *Board) PendingPromotion() (Square, bool) {
	if b.Promoting == nil {
		return Square{}, false
	}
	return *b.Promoting, true
}

// ClearEnPassant drops every en passant marker on the board.
func (b *Board) ClearEnPassant() {
	for i := range b.Squares {
		b.Squares[i].EnPassant = nil
	}
}

// NextTurn passes the move to the other side.
func (b *Board) NextTurn() {
	b.ToMove = b.ToMove.Opposite()
}

// Copy creates a copy of the board. Square pointers held by pieces
// and the promotion marker are never written through, so sharing them
// between copies is safe.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// String renders the board as eight text rows, rank 8 first.
// White pieces are uppercase, black lowercase, empty squares '.'.
func (b *Board) String() string {
	buf := make([]byte, 0, NumSquares+BoardSize)
	for i, piece := range b.Squares {
		c := byte('.')
		if !piece.IsEmpty() {
			c = piece.Kind.Letter()
			if piece.Colour == Black {
				c += 'a' - 'A'
			}
		}
		buf = append(buf, c)
		if i%BoardSize == BoardSize-1 {
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}
