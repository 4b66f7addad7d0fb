// Package selfplay plays seeded games of random legal moves.
package selfplay

import (
	"fmt"
	"math/rand"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/hashing"
)

// DefaultMaxPlies caps a game when no limit is given.
const DefaultMaxPlies = 300

// Result describes how a self-play game ended.
type Result struct {
	Seed       int64
	Plies      int
	Status     chess.GameStatus
	Winner     chess.Colour // NoColour unless Status is Checkmate
	Promotions int
	FinalFEN   string
	FinalHash  uint64 // Zobrist hash of the final position
}

// Finished reports whether the game reached checkmate or stalemate.
func (r Result) Finished() bool {
	return r.Status != chess.Active
}

func (r Result) String() string {
	switch r.Status {
	case chess.Checkmate:
		return fmt.Sprintf("seed %d: %s wins by checkmate after %d plies", r.Seed, r.Winner, r.Plies)
	case chess.Stalemate:
		return fmt.Sprintf("seed %d: stalemate after %d plies", r.Seed, r.Plies)
	}
	return fmt.Sprintf("seed %d: unfinished after %d plies", r.Seed, r.Plies)
}

// Play plays a random game from the opening position.
func Play(seed int64, maxPlies int) Result {
	return PlayFrom(engine.NewGame(), seed, maxPlies)
}

// PlayFrom plays random legal moves on g until the game ends or maxPlies
// moves have been made. Pawns reaching the last rank become queens.
func PlayFrom(g *engine.Game, seed int64, maxPlies int) Result {
	if maxPlies <= 0 {
		maxPlies = DefaultMaxPlies
	}
	rng := rand.New(rand.NewSource(seed))
	res := Result{Seed: seed}

	if _, ok := g.PendingPromotion(); ok {
		_ = g.Promote(chess.Queen)
		res.Promotions++
	}

	for res.Plies < maxPlies {
		moves := g.LegalMoves(g.SideToMove())
		if len(moves) == 0 {
			break
		}
		m := moves[rng.Intn(len(moves))]
		if !g.TryMove(m.From, m.To) {
			// Listed moves are always legal; stop rather than loop.
			break
		}
		res.Plies++
		if _, ok := g.PendingPromotion(); ok {
			_ = g.Promote(chess.Queen)
			res.Promotions++
		}
	}

	res.Status = g.Status()
	if res.Status == chess.Checkmate {
		res.Winner = g.SideToMove().Opposite()
	}
	res.FinalFEN = g.FEN()
	res.FinalHash = hashing.Hash(g.Board())
	return res
}

// Summary totals a batch of results.
type Summary struct {
	Games      int
	WhiteWins  int
	BlackWins  int
	Stalemates int
	Unfinished int
	Plies      int
	Promotions int
}

// Add counts r into the summary.
func (s *Summary) Add(r Result) {
	s.Games++
	s.Plies += r.Plies
	s.Promotions += r.Promotions
	switch r.Status {
	case chess.Checkmate:
		if r.Winner == chess.White {
			s.WhiteWins++
		} else {
			s.BlackWins++
		}
	case chess.Stalemate:
		s.Stalemates++
	default:
		s.Unfinished++
	}
}

// AveragePlies returns the mean game length, or 0 for an empty summary.
func (s Summary) AveragePlies() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Plies) / float64(s.Games)
}

func (s Summary) String() string {
	return fmt.Sprintf("games: %d, white wins: %d, black wins: %d, stalemates: %d, unfinished: %d, average plies: %.1f, promotions: %d",
		s.Games, s.WhiteWins, s.BlackWins, s.Stalemates, s.Unfinished, s.AveragePlies(), s.Promotions)
}
