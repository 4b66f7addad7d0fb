package engine

import (
	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// Game owns one board and exposes the queries and commands a front end
// needs. A Game is not safe for concurrent use; callers serialise access.
type Game struct {
	board *chess.Board
}

// NewGame starts a game from the standard opening position.
func NewGame() *Game {
	return &Game{board: NewInitialBoard()}
}

// NewGameFromBoard starts a game from a copy of the given board.
func NewGameFromBoard(board *chess.Board) *Game {
	return &Game{board: board.Copy()}
}

// NewGameFromFEN starts a game from a FEN position.
func NewGameFromFEN(fen string) (*Game, error) {
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{board: board}, nil
}

// Board returns a copy of the current board.
func (g *Game) Board() *chess.Board {
	return g.board.Copy()
}

// SideToMove returns the colour whose turn it is.
func (g *Game) SideToMove() chess.Colour {
	return g.board.ToMove
}

// King returns the square of the given colour's king.
func (g *Game) King(colour chess.Colour) (chess.Square, bool) {
	return g.board.King(colour)
}

// PendingPromotion returns the square of the pawn awaiting promotion, if any.
func (g *Game) PendingPromotion() (chess.Square, bool) {
	return g.board.PendingPromotion()
}

// Piece returns the piece on a square.
func (g *Game) Piece(sq chess.Square) (chess.Piece, error) {
	return g.board.Get(sq)
}

// PieceAt returns the piece on the square named by file letter and rank number.
func (g *Game) PieceAt(file byte, rank int) (chess.Piece, error) {
	return g.board.At(file, rank)
}

// IsValid reports whether a square lies on the board.
func (g *Game) IsValid(sq chess.Square) bool {
	return sq.Valid()
}

// Status classifies the position for the side to move.
func (g *Game) Status() chess.GameStatus {
	return Status(g.board)
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return IsInCheck(g.board, g.board.ToMove)
}

// IsLegalMove reports whether the piece on from may move to to.
func (g *Game) IsLegalMove(from, to chess.Square) bool {
	return IsLegalMove(g.board, from, to)
}

// LegalMoves returns every legal move of the given colour.
func (g *Game) LegalMoves(colour chess.Colour) []chess.MovePair {
	return LegalMoves(g.board, colour)
}

// LegalMoveCount returns the number of legal moves of the given colour.
func (g *Game) LegalMoveCount(colour chess.Colour) int {
	return LegalMoveCount(g.board, colour)
}

// LegalMovesFrom returns the legal destinations of the piece on from.
func (g *Game) LegalMovesFrom(from chess.Square) []chess.Square {
	return LegalMovesFrom(g.board, from)
}

// TryMove plays a move for the side to move and reports whether it was accepted.
func (g *Game) TryMove(from, to chess.Square) bool {
	return TryMove(g.board, from, to)
}

// Move plays a move for the side to move. A rejected move returns a
// *errors.MoveError describing why, and the game is unchanged.
func (g *Game) Move(from, to chess.Square) error {
	if err := ValidateMove(g.board, from, to); err != nil {
		return err
	}
	playMove(g.board, from, to)
	return nil
}

// Promote resolves a pending promotion. See Promote.
func (g *Game) Promote(kind chess.Kind) error {
	return Promote(g.board, kind)
}

// FEN returns the position as a FEN string.
func (g *Game) FEN() string {
	return BoardToFEN(g.board)
}

// Save returns a snapshot of the whole game state.
func (g *Game) Save() []byte {
	data, _ := g.board.MarshalBinary()
	return data
}

// Load replaces the game state with a snapshot from Save. It returns false
// and keeps the current state if the snapshot is malformed.
func (g *Game) Load(data []byte) bool {
	return g.LoadSnapshot(data) == nil
}

// LoadSnapshot is Load with the reason for a rejected snapshot.
func (g *Game) LoadSnapshot(data []byte) error {
	return g.board.UnmarshalBinary(data)
}
