// Package chess provides core chess types and the board state they live in.
package chess

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Colour represents the colour of a piece or player.
// NoColour marks an empty square.
type Colour int

const (
	NoColour Colour = iota
	White
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "None"
}

// Opposite returns the opposite colour. NoColour has no opposite.
func (c Colour) Opposite() Colour {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColour
}

// Valid reports whether c is one of the two playing colours.
func (c Colour) Valid() bool {
	return c == White || c == Black
}

// Kind represents a chess piece type. Empty marks an empty square.
type Kind int

const (
	Empty Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// IsOfficer reports whether a pawn may promote to k.
func (k Kind) IsOfficer() bool {
	return k == Queen || k == Rook || k == Bishop || k == Knight
}

// KindFromLetter converts a piece letter (either case) to a kind.
// It returns Empty for anything that is not a piece letter.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'P', 'p':
		return Pawn
	}
	return Empty
}

// Board dimensions and display conventions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	FileBase = 'a'
	RankBase = '1'
)

// Square addresses a board cell. File 0..7 is a..h. Rank 0 is the eighth
// rank as printed, so White's home row is rank 7 and White pawns move
// towards rank 0.
type Square struct {
	File int
	Rank int
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.File >= 0 && s.File < BoardSize && s.Rank >= 0 && s.Rank < BoardSize
}

// Index returns the row-major cell index of a valid square.
func (s Square) Index() int {
	return s.Rank*BoardSize + s.File
}

// Add returns s offset by the given file and rank deltas.
func (s Square) Add(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

// String returns the square in coordinate notation, e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return string([]byte{byte(FileBase + s.File), byte(RankBase + BoardSize - 1 - s.Rank)})
}

// SquareAt converts a file letter (a-h, either case) and a display rank
// (1-8) to a square.
func SquareAt(file byte, rank int) (Square, error) {
	if file >= 'A' && file <= 'H' {
		file += 'a' - 'A'
	}
	sq := Square{File: int(file) - FileBase, Rank: BoardSize - rank}
	if file < 'a' || file > 'h' || rank < 1 || rank > BoardSize {
		return Square{}, fmt.Errorf("%c%d: %w", file, rank, errors.ErrInvalidCoordinate)
	}
	return sq, nil
}

// ParseSquare parses coordinate notation such as "e4" or "E4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("%q: %w", s, errors.ErrInvalidCoordinate)
	}
	return SquareAt(s[0], int(s[1]-'0'))
}

// SquareFromIndex converts a row-major cell index back to a square.
func SquareFromIndex(i int) Square {
	return Square{File: i % BoardSize, Rank: i / BoardSize}
}

// HomeRank returns the rank on which a colour's officers start.
func HomeRank(colour Colour) int {
	if colour == White {
		return BoardSize - 1
	}
	return 0
}

// PawnRank returns the rank on which a colour's pawns start.
func PawnRank(colour Colour) int {
	if colour == White {
		return BoardSize - 2
	}
	return 1
}

// LastRank returns the rank on which a colour's pawns promote.
func LastRank(colour Colour) int {
	if colour == White {
		return 0
	}
	return BoardSize - 1
}

// ColourOffset returns the rank step of a colour's pawn advance:
// -1 for White, +1 for Black.
func ColourOffset(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}

// Piece is the content of one square. The zero value is an empty square.
type Piece struct {
	Kind   Kind
	Colour Colour

	// Moved is set once the piece has left its starting square.
	Moved bool

	// EnPassant, when set, is the square of an enemy pawn that has just
	// advanced two ranks beside this pawn and may be taken en passant on
	// this pawn's next move only.
	EnPassant *Square
}

// NewPiece creates an unmoved piece.
func NewPiece(colour Colour, kind Kind) Piece {
	return Piece{Kind: kind, Colour: colour}
}

// W creates an unmoved white piece.
func W(kind Kind) Piece {
	return NewPiece(White, kind)
}

// B creates an unmoved black piece.
func B(kind Kind) Piece {
	return NewPiece(Black, kind)
}

// IsEmpty reports whether the square holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Kind == Empty && p.Colour == NoColour
}

// Is reports whether p is a piece of the given colour and kind.
func (p Piece) Is(colour Colour, kind Kind) bool {
	return p.Colour == colour && p.Kind == kind
}

// IsEnemyOf reports whether p belongs to the opponent of colour.
func (p Piece) IsEnemyOf(colour Colour) bool {
	return !p.IsEmpty() && colour.Valid() && p.Colour == colour.Opposite()
}

// String returns a short description such as "White Knight".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Kind.String()
}

// GameStatus classifies the position for the side to move.
type GameStatus int

const (
	Active GameStatus = iota
	Checkmate
	Stalemate
)

// String returns the string representation of a status.
func (s GameStatus) String() string {
	switch s {
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	}
	return "Active"
}

// MovePair is a source-destination square pair.
type MovePair struct {
	From Square
	To   Square
}

// String returns the move in long coordinate form, e.g. "e2e4".
func (m MovePair) String() string {
	return m.From.String() + m.To.String()
}
