package chess

import (
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Snapshot layout, version 1. Every field is one unsigned byte.
//
//	offset 0   'C' 'R'             magic
//	offset 2   version             SnapshotVersion
//	offset 3   side to move        1 White, 2 Black
//	offset 4   flags               bit 0: promotion pending
//	offset 5   promotion square    cell index 0-63, 0 when none
//	offset 6   reserved            0, 0
//	offset 8   64 cells of 4 bytes, row-major:
//	           kind, colour, flags (bit 0 moved, bit 1 en passant), en passant cell index
const (
	SnapshotVersion = 1
	SnapshotSize    = snapshotHeaderSize + NumSquares*snapshotCellSize

	snapshotHeaderSize = 8
	snapshotCellSize   = 4

	snapshotPromoting = 1 << 0
	cellMoved         = 1 << 0
	cellEnPassant     = 1 << 1
)

var snapshotMagic = [2]byte{'C', 'R'}

// MarshalBinary encodes the whole board into a fixed-size snapshot.
func (b *Board) MarshalBinary() ([]byte, error) {
	data := make([]byte, SnapshotSize)
	data[0], data[1] = snapshotMagic[0], snapshotMagic[1]
	data[2] = SnapshotVersion
	data[3] = byte(b.ToMove)
	if b.Promoting != nil {
		data[4] = snapshotPromoting
		data[5] = byte(b.Promoting.Index())
	}

	for i, piece := range b.Squares {
		cell := data[snapshotHeaderSize+i*snapshotCellSize:]
		if piece.IsEmpty() {
			continue
		}
		cell[0] = byte(piece.Kind)
		cell[1] = byte(piece.Colour)
		if piece.Moved {
			cell[2] |= cellMoved
		}
		if piece.EnPassant != nil {
			cell[2] |= cellEnPassant
			cell[3] = byte(piece.EnPassant.Index())
		}
	}
	return data, nil
}

// UnmarshalBinary restores the board from a snapshot produced by
// MarshalBinary. Nothing is changed unless the whole snapshot is valid.
func (b *Board) UnmarshalBinary(data []byte) error {
	if len(data) != SnapshotSize {
		return errors.Wrapf(errors.ErrLoadFormatMismatch, "snapshot is %d bytes, want %d", len(data), SnapshotSize)
	}
	if data[0] != snapshotMagic[0] || data[1] != snapshotMagic[1] {
		return errors.Wrap(errors.ErrLoadFormatMismatch, "bad magic")
	}
	if data[2] != SnapshotVersion {
		return errors.Wrapf(errors.ErrLoadFormatMismatch, "unsupported version %d", data[2])
	}

	decoded := Board{ToMove: Colour(data[3])}
	if !decoded.ToMove.Valid() {
		return errors.Wrapf(errors.ErrLoadFormatMismatch, "bad side to move %d", data[3])
	}

	switch {
	case data[4] == snapshotPromoting:
		sq, err := decodeIndex(data[5])
		if err != nil {
			return err
		}
		decoded.Promoting = &sq
	case data[4] != 0 || data[5] != 0:
		return errors.Wrap(errors.ErrLoadFormatMismatch, "bad promotion field")
	}
	if data[6] != 0 || data[7] != 0 {
		return errors.Wrap(errors.ErrLoadFormatMismatch, "reserved bytes set")
	}

	for i := range decoded.Squares {
		piece, err := decodeCell(data[snapshotHeaderSize+i*snapshotCellSize : snapshotHeaderSize+(i+1)*snapshotCellSize])
		if err != nil {
			return errors.Wrapf(err, "cell %s", SquareFromIndex(i))
		}
		decoded.Squares[i] = piece
	}

	if decoded.Promoting != nil {
		pawn := decoded.Squares[decoded.Promoting.Index()]
		if !pawn.Is(decoded.ToMove, Pawn) || decoded.Promoting.Rank != LastRank(decoded.ToMove) {
			return errors.Wrap(errors.ErrLoadFormatMismatch, "promotion square does not hold a promoting pawn")
		}
	}

	if err := validateEnPassant(&decoded); err != nil {
		return err
	}

	*b = decoded
	return nil
}

// validateEnPassant checks that every en passant marker could have been
// left by the previous move: it sits on a pawn of the side to move and
// names an enemy pawn beside it that has just advanced two ranks through
// empty squares.
func validateEnPassant(b *Board) error {
	for i, piece := range b.Squares {
		if piece.EnPassant == nil {
			continue
		}
		from, target := SquareFromIndex(i), *piece.EnPassant
		if piece.Kind != Pawn || piece.Colour != b.ToMove {
			return errors.Wrapf(errors.ErrLoadFormatMismatch, "cell %s: en passant marker on %v", from, piece)
		}

		pushed := b.Squares[target.Index()]
		if target.Rank != from.Rank || abs(target.File-from.File) != 1 || !pushed.Is(piece.Colour.Opposite(), Pawn) {
			return errors.Wrapf(errors.ErrLoadFormatMismatch, "cell %s: en passant target %s is not a pawn beside it", from, target)
		}

		dir := ColourOffset(pushed.Colour)
		if target.Rank != PawnRank(pushed.Colour)+2*dir {
			return errors.Wrapf(errors.ErrLoadFormatMismatch, "cell %s: pawn on %s has not just advanced two ranks", from, target)
		}
		skipped, origin := target.Add(0, -dir), target.Add(0, -2*dir)
		if !b.Squares[skipped.Index()].IsEmpty() || !b.Squares[origin.Index()].IsEmpty() {
			return errors.Wrapf(errors.ErrLoadFormatMismatch, "cell %s: pawn on %s could not have advanced two ranks", from, target)
		}
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func decodeCell(cell []byte) (Piece, error) {
	kind, colour, flags := Kind(cell[0]), Colour(cell[1]), cell[2]
	if kind == Empty && colour == NoColour {
		if flags != 0 || cell[3] != 0 {
			return Piece{}, errors.Wrap(errors.ErrLoadFormatMismatch, "empty cell carries data")
		}
		return Piece{}, nil
	}
	if kind <= Empty || kind >= NumKinds || !colour.Valid() {
		return Piece{}, errors.Wrapf(errors.ErrLoadFormatMismatch, "bad piece %d/%d", cell[0], cell[1])
	}
	if flags&^(cellMoved|cellEnPassant) != 0 {
		return Piece{}, errors.Wrapf(errors.ErrLoadFormatMismatch, "bad flags %#x", flags)
	}

	piece := Piece{Kind: kind, Colour: colour, Moved: flags&cellMoved != 0}
	if flags&cellEnPassant != 0 {
		sq, err := decodeIndex(cell[3])
		if err != nil {
			return Piece{}, err
		}
		piece.EnPassant = &sq
	} else if cell[3] != 0 {
		return Piece{}, errors.Wrap(errors.ErrLoadFormatMismatch, "stray en passant square")
	}
	return piece, nil
}

func decodeIndex(i byte) (Square, error) {
	if int(i) >= NumSquares {
		return Square{}, errors.Wrapf(errors.ErrLoadFormatMismatch, "cell index %d", i)
	}
	return SquareFromIndex(int(i)), nil
}
