package hashing

import (
	"sync"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func TestHash_TranspositionsMatch(t *testing.T) {
	a := testutil.MustGame(t, "")
	testutil.PlayMoves(t, a, "g1f3", "g8f6", "b1c3", "b8c6")
	b := testutil.MustGame(t, "")
	testutil.PlayMoves(t, b, "b1c3", "b8c6", "g1f3", "g8f6")

	if Hash(a.Board()) != Hash(b.Board()) {
		t.Error("transposed move orders produced different hashes")
	}
}

func TestHash_Distinguishes(t *testing.T) {
	opening := Hash(engine.NewInitialBoard())

	tests := []struct {
		name  string
		moves []string
	}{
		{"piece moved", []string{"e2e4"}},
		{"knight out and back", []string{"g1f3", "g8f6", "f3g1", "f6g8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustGame(t, "")
			testutil.PlayMoves(t, g, tt.moves...)
			if Hash(g.Board()) == opening {
				t.Error("hash equals the opening position")
			}
		})
	}

	t.Run("side to move", func(t *testing.T) {
		white := testutil.MustGame(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
		black := testutil.MustGame(t, "4k3/8/8/8/8/8/8/4K3 b - - 0 1")
		if Hash(white.Board()) == Hash(black.Board()) {
			t.Error("side to move does not change the hash")
		}
	})

	t.Run("en passant right", func(t *testing.T) {
		with := testutil.MustGame(t, "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
		without := testutil.MustGame(t, "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq - 0 3")
		if Hash(with.Board()) == Hash(without.Board()) {
			t.Error("en passant marker does not change the hash")
		}
	})
}

func TestHash_SurvivesSnapshot(t *testing.T) {
	g := testutil.MustGame(t, testutil.Kiwipete)
	restored := engine.NewGame()
	testutil.AssertNoError(t, restored.LoadSnapshot(g.Save()))
	testutil.AssertEqual(t, Hash(restored.Board()), Hash(g.Board()), "hash after snapshot")
}

func TestDuplicateDetector(t *testing.T) {
	d := NewDuplicateDetector()
	opening := Hash(engine.NewInitialBoard())
	kiwipete := Hash(testutil.MustGame(t, testutil.Kiwipete).Board())

	testutil.AssertFalse(t, d.CheckAndAddHash(opening), "first opening")
	testutil.AssertTrue(t, d.CheckAndAddHash(opening), "second opening")
	testutil.AssertFalse(t, d.CheckAndAddHash(kiwipete), "first kiwipete")
	testutil.AssertTrue(t, d.CheckAndAddHash(opening), "third opening")

	testutil.AssertEqual(t, d.DuplicateCount(), 2, "duplicates")
	testutil.AssertEqual(t, d.UniqueCount(), 2, "unique")
}

func TestThreadSafeDuplicateDetector(t *testing.T) {
	d := NewThreadSafeDuplicateDetector()

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				d.CheckAndAddHash(uint64(i))
			}
		}()
	}
	wg.Wait()

	testutil.AssertEqual(t, d.UniqueCount(), perWorker, "unique")
	testutil.AssertEqual(t, d.DuplicateCount(), (workers-1)*perWorker, "duplicates")
}
