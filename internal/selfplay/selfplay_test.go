package selfplay

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func TestPlay_Deterministic(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		first := Play(seed, 80)
		second := Play(seed, 80)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("seed %d: results differ (-first +second):\n%s", seed, diff)
		}
	}
}

func TestPlay_Invariants(t *testing.T) {
	const maxPlies = 60
	for seed := int64(1); seed <= 10; seed++ {
		r := Play(seed, maxPlies)

		if r.Seed != seed {
			t.Errorf("Seed = %d, want %d", r.Seed, seed)
		}
		if r.Plies < 0 || r.Plies > maxPlies {
			t.Errorf("seed %d: Plies = %d, want 0..%d", seed, r.Plies, maxPlies)
		}
		if !r.Finished() && r.Plies != maxPlies {
			t.Errorf("seed %d: unfinished game stopped at ply %d", seed, r.Plies)
		}
		if (r.Status == chess.Checkmate) != r.Winner.Valid() {
			t.Errorf("seed %d: Status = %v with Winner = %v", seed, r.Status, r.Winner)
		}

		g, err := engine.NewGameFromFEN(r.FinalFEN)
		if err != nil {
			t.Fatalf("seed %d: FinalFEN %q does not parse: %v", seed, r.FinalFEN, err)
		}
		if g.Status() != r.Status {
			t.Errorf("seed %d: FinalFEN status = %v, want %v", seed, g.Status(), r.Status)
		}
	}
}

func TestPlayFrom_FinishedPositions(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		status chess.GameStatus
		winner chess.Colour
	}{
		{"back rank mate", testutil.BackRankMate, chess.Checkmate, chess.White},
		{"stalemate", testutil.QueenStalemate, chess.Stalemate, chess.NoColour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := PlayFrom(testutil.MustGame(t, tt.fen), 1, 10)
			testutil.AssertEqual(t, r.Plies, 0, "plies")
			testutil.AssertEqual(t, r.Status, tt.status, "status")
			testutil.AssertEqual(t, r.Winner, tt.winner, "winner")
			testutil.AssertEqual(t, r.FinalFEN, tt.fen, "final position")
		})
	}
}

func TestPlayFrom_ResolvesPendingPromotion(t *testing.T) {
	g := testutil.MustGame(t, testutil.AboutToPromote)
	if !g.TryMove(testutil.MustSquare(t, "a7"), testutil.MustSquare(t, "a8")) {
		t.Fatal("TryMove(a7, a8) = false")
	}

	r := PlayFrom(g, 3, 1)
	testutil.AssertTrue(t, r.Promotions >= 1, "promotion counted")
	testutil.AssertEqual(t, r.Plies, 1, "plies")
	if _, ok := g.PendingPromotion(); ok {
		t.Error("promotion still pending after PlayFrom")
	}
	piece, err := g.Piece(testutil.MustSquare(t, "a8"))
	testutil.AssertNoError(t, err)
	if !piece.Is(chess.White, chess.Queen) {
		t.Errorf("a8 = %v, want White Queen", piece)
	}
}

func TestPlay_DefaultLimit(t *testing.T) {
	r := Play(5, 0)
	testutil.AssertTrue(t, r.Plies <= DefaultMaxPlies, "plies within default limit")
}

func TestSummary(t *testing.T) {
	results := []Result{
		{Plies: 30, Status: chess.Checkmate, Winner: chess.White, Promotions: 1},
		{Plies: 41, Status: chess.Checkmate, Winner: chess.Black},
		{Plies: 90, Status: chess.Stalemate, Promotions: 2},
		{Plies: 100, Status: chess.Active},
	}

	var s Summary
	for _, r := range results {
		s.Add(r)
	}

	want := Summary{
		Games:      4,
		WhiteWins:  1,
		BlackWins:  1,
		Stalemates: 1,
		Unfinished: 1,
		Plies:      261,
		Promotions: 3,
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}
	testutil.AssertEqual(t, s.AveragePlies(), 65.25, "average plies")
	testutil.AssertEqual(t, Summary{}.AveragePlies(), 0.0, "empty average")
	testutil.AssertTrue(t, strings.Contains(s.String(), "white wins: 1"), "String() includes white wins")
}

func TestResult_String(t *testing.T) {
	tests := []struct {
		r    Result
		want string
	}{
		{Result{Seed: 1, Plies: 20, Status: chess.Checkmate, Winner: chess.Black}, "seed 1: Black wins by checkmate after 20 plies"},
		{Result{Seed: 2, Plies: 55, Status: chess.Stalemate}, "seed 2: stalemate after 55 plies"},
		{Result{Seed: 3, Plies: 300}, "seed 3: unfinished after 300 plies"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			testutil.AssertEqual(t, tt.r.String(), tt.want, "String()")
		})
	}
}
