package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// pieceToFENLetter returns the FEN letter for a piece: uppercase for White.
func pieceToFENLetter(piece chess.Piece) byte {
	letter := piece.Kind.Letter()
	if piece.Colour == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// NewBoardFromFEN creates a board from a FEN string.
//
// A board carries moved flags rather than castling rights, so they are
// derived: kings and rooks count as unmoved only where the castling field
// allows it, and pawns only on their starting rank. The en passant field
// marks the pawns that may capture. The move clocks are accepted but not
// kept.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}
	if err := checkKings(board); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidFEN, err.Error())
	}
	if err := parseSideToMove(board, parts); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(board, parts); err != nil {
		return nil, err
	}
	if err := parseEnPassant(board, parts); err != nil {
		return nil, err
	}

	return board, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	rows := strings.Split(positions, "/")
	if len(rows) != chess.BoardSize {
		return fmt.Errorf("%d ranks: %w", len(rows), errors.ErrInvalidFEN)
	}

	for rank, row := range rows {
		file := 0
		for _, c := range row {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			case c > unicode.MaxASCII:
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			default:
				kind := chess.KindFromLetter(byte(c))
				if kind == chess.Empty {
					return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
				}
				if file >= chess.BoardSize {
					return fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
				}

				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}

				piece := chess.NewPiece(colour, kind)
				switch kind {
				case chess.King, chess.Rook:
					// Cleared again by the castling field.
					piece.Moved = true
				case chess.Pawn:
					piece.Moved = rank != chess.PawnRank(colour)
				}
				board.Squares[chess.Square{File: file, Rank: rank}.Index()] = piece
				file++
			}
		}
		if file != chess.BoardSize {
			return fmt.Errorf("rank %d has %d files: %w", chess.BoardSize-rank, file, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field and clears
// the moved flag of every king and rook it names.
func parseCastlingRights(board *chess.Board, parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		colour := chess.White
		if unicode.IsLower(c) {
			colour = chess.Black
		}
		var rookFile int
		switch unicode.ToUpper(c) {
		case 'K':
			rookFile = chess.BoardSize - 1
		case 'Q':
			rookFile = 0
		default:
			return fmt.Errorf("invalid castling character: %c: %w", c, errors.ErrInvalidFEN)
		}

		home := chess.HomeRank(colour)
		king, ok := board.King(colour)
		rook := chess.Square{File: rookFile, Rank: home}
		if !ok || king.Rank != home || !board.Squares[rook.Index()].Is(colour, chess.Rook) {
			return fmt.Errorf("castling right %c without king and rook: %w", c, errors.ErrInvalidFEN)
		}
		board.Squares[king.Index()].Moved = false
		board.Squares[rook.Index()].Moved = false
	}
	return nil
}

// parseEnPassant parses the en passant target square field. The square is
// the one the pawn skipped; the pawns beside the pawn that advanced get
// the marker.
func parseEnPassant(board *chess.Board, parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	skipped, err := chess.ParseSquare(parts[3])
	if err != nil {
		return fmt.Errorf("en passant square %q: %w", parts[3], errors.ErrInvalidFEN)
	}

	mover := board.ToMove.Opposite()
	if skipped.Rank != chess.PawnRank(mover)+chess.ColourOffset(mover) {
		return fmt.Errorf("en passant square %s is not on %s's skipped rank: %w", skipped, mover, errors.ErrInvalidFEN)
	}
	pushed := skipped.Add(0, chess.ColourOffset(mover))
	if !board.Squares[pushed.Index()].Is(mover, chess.Pawn) {
		return fmt.Errorf("no pawn passed %s: %w", skipped, errors.ErrInvalidFEN)
	}
	origin := skipped.Add(0, -chess.ColourOffset(mover))
	if !board.Squares[skipped.Index()].IsEmpty() || !board.Squares[origin.Index()].IsEmpty() {
		return fmt.Errorf("pawn could not have passed %s: %w", skipped, errors.ErrInvalidFEN)
	}

	markEnPassant(board, board.Squares[pushed.Index()], origin, pushed)
	return nil
}

// BoardToFEN converts a board to a FEN string. Move clocks are not
// tracked and are always written as "0 1".
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	writeEnPassant(&sb, board)
	sb.WriteString(" 0 1")

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := 0; rank < chess.BoardSize; rank++ {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := board.Squares[chess.Square{File: file, Rank: rank}.Index()]
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(pieceToFENLetter(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board *chess.Board) {
	if board.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
// A right exists while the king and the corner rook are both unmoved.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	hasCastling := false
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		king, ok := board.King(colour)
		if !ok || board.Squares[king.Index()].Moved {
			continue
		}
		for _, right := range []struct {
			file   int
			letter byte
		}{{chess.BoardSize - 1, 'K'}, {0, 'Q'}} {
			rook := board.Squares[chess.Square{File: right.file, Rank: king.Rank}.Index()]
			if !rook.Is(colour, chess.Rook) || rook.Moved {
				continue
			}
			letter := right.letter
			if colour == chess.Black {
				letter = byte(unicode.ToLower(rune(letter)))
			}
			sb.WriteByte(letter)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the square skipped by a pawn that may be taken en
// passant, or '-'.
func writeEnPassant(sb *strings.Builder, board *chess.Board) {
	for _, piece := range board.Squares {
		if piece.EnPassant == nil {
			continue
		}
		pushed := *piece.EnPassant
		mover := board.Squares[pushed.Index()].Colour
		sb.WriteString(pushed.Add(0, -chess.ColourOffset(mover)).String())
		return
	}
	sb.WriteByte('-')
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board, _ := NewBoardWithBackRank(StandardBackRank)
	return board
}
