// selfplay plays batches of random legal games and reports how they ended.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/hashing"
	"github.com/lgbarn/chess-rules-go/internal/selfplay"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

const programVersion = "0.1.0"

var (
	games    = flag.Int("games", 100, "Number of games to play")
	workers  = flag.Int("workers", 0, "Number of worker threads (0 = auto-detect based on CPU cores)")
	seed     = flag.Int64("seed", 0, "Seed of the first game; later games use consecutive seeds (0 = time-based)")
	maxPlies = flag.Int("maxply", selfplay.DefaultMaxPlies, "Stop a game after this many plies")
	verbose  = flag.Bool("v", false, "Print the result of every game")
	help     = flag.Bool("h", false, "Show help")
	version  = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *version {
		fmt.Printf("selfplay version %s\n", programVersion)
		os.Exit(0)
	}
	if *games < 1 {
		fmt.Fprintf(os.Stderr, "selfplay: -games must be at least 1\n")
		os.Exit(2)
	}

	first := *seed
	if first == 0 {
		first = time.Now().UnixNano()
	}
	numWorkers := *workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	if failed := run(os.Stdout, os.Stderr, *games, numWorkers, first, *maxPlies); failed > 0 {
		os.Exit(1)
	}
}

// run plays the batch and writes the summary, returning the number of games
// that failed.
func run(out, errOut io.Writer, n, numWorkers int, first int64, plies int) int {
	bufferSize := n
	if bufferSize > 100 {
		bufferSize = 100
	}
	detector := hashing.NewThreadSafeDuplicateDetector()
	pool := worker.NewPool(numWorkers, bufferSize, worker.SelfPlay(detector))
	pool.Start()

	start := time.Now()
	var summary selfplay.Summary
	failed := 0
	for _, res := range pool.Run(worker.Batch(n, first, plies)) {
		if res.Error != nil {
			fmt.Fprintf(errOut, "selfplay: %v\n", res.Error)
			failed++
			continue
		}
		if *verbose {
			fmt.Fprintf(out, "%s\n    %s\n", res.Result, res.Result.FinalFEN)
		}
		summary.Add(res.Result)
	}

	fmt.Fprintf(out, "%s\n", summary)
	fmt.Fprintf(out, "distinct final positions: %d, repeated: %d\n", detector.UniqueCount(), detector.DuplicateCount())
	fmt.Fprintf(out, "seeds %d..%d, %d workers, %s\n", first, first+int64(n)-1, numWorkers, time.Since(start).Round(time.Millisecond))
	return failed
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: selfplay [options]\n\n")
	fmt.Fprintf(os.Stderr, "Plays games of random legal moves and summarises the results.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
