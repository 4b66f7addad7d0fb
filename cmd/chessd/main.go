// chessd serves chess games over HTTP and websockets.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/server"
	"github.com/lgbarn/chess-rules-go/internal/store"
)

const programVersion = "0.1.0"

var (
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *version {
		fmt.Printf("chessd version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chessd: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(cfg.LogFile, "chessd: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			fmt.Fprintf(cfg.LogFile, "chessd: close store: %v\n", err)
		}
	}()

	app := server.New(cfg, server.NewManager(st, cfg.LogFile))

	errc := make(chan error, 1)
	go func() {
		fmt.Fprintf(cfg.LogFile, "chessd: listening on %s (%s store)\n", cfg.Addr(), cfg.Store.Backend)
		errc <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	fmt.Fprintf(cfg.LogFile, "chessd: shutting down\n")
	return app.ShutdownWithTimeout(10 * time.Second)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessd [options]\n\n")
	fmt.Fprintf(os.Stderr, "Serves chess games over HTTP and websockets.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
	fmt.Fprintf(os.Stderr, "  %s_SERVER_HOST              listen host (default 0.0.0.0)\n", config.EnvPrefix)
	fmt.Fprintf(os.Stderr, "  %s_SERVER_PORT              listen port (default 8080)\n", config.EnvPrefix)
	fmt.Fprintf(os.Stderr, "  %s_SERVER_ALLOW_ORIGINS     CORS and websocket origins (default *)\n", config.EnvPrefix)
	fmt.Fprintf(os.Stderr, "  %s_STORE_BACKEND            memory or mongo (default memory)\n", config.EnvPrefix)
	fmt.Fprintf(os.Stderr, "  %s_STORE_MONGO_ADDRESS      mongodb:// URI\n", config.EnvPrefix)
	fmt.Fprintf(os.Stderr, "  %s_STORE_MONGO_DATABASE     database name (default chess)\n", config.EnvPrefix)
	fmt.Fprintf(os.Stderr, "  %s_STORE_MONGO_COLLECTION   collection name (default games)\n", config.EnvPrefix)
	fmt.Fprintf(os.Stderr, "  %s_STORE_TIMEOUT            store operation timeout (default 5s)\n", config.EnvPrefix)
}
