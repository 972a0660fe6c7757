// pgnview parses PGN movetext into a game tree and prints it as PGN, JSON or
// a board diagram. With -serve it runs the HTTP replay API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/cache"
	"github.com/lgbarn/pgnview-go/internal/config"
	"github.com/lgbarn/pgnview-go/internal/library"
	"github.com/lgbarn/pgnview-go/internal/server"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("pgnview version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg, givenFlags(flag.CommandLine))
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck // nothing useful to do on exit

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serve {
		err = runServer(ctx, cfg, logger)
	} else {
		err = runCLI(ctx, cfg, logger)
	}
	if err != nil {
		logger.Error("pgnview failed", zap.Error(err))
		stop()
		logger.Sync() //nolint:errcheck
		os.Exit(1)
	}
}

// runCLI processes the input files (or stdin) to the output file (or stdout).
func runCLI(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	var out io.Writer = os.Stdout
	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	inputs, err := readInputs(flag.Args(), os.Stdin)
	if err != nil {
		return err
	}
	return process(ctx, cfg, logger, inputs, out)
}

// runServer loads the configured library and serves the API until ctx is done.
func runServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	opts, err := cfg.ParseOptions()
	if err != nil {
		return err
	}

	libOpts := library.Options{Parse: opts, Workers: cfg.WorkerCount(), Logger: logger}
	var lib *library.Library
	if cfg.Library.Path != "" {
		lib, err = library.Load(ctx, cfg.Library.Path, libOpts)
	} else {
		logger.Warn("no library path configured, serving an empty library")
		lib, err = library.New(ctx, &library.Document{}, libOpts)
	}
	if err != nil {
		return fmt.Errorf("loading library: %w", err)
	}

	var c cache.Cache = cache.Nop{}
	if cfg.Redis.Enabled {
		rc, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rc.Close()
		c = rc
		logger.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.TTL))
	}

	err = server.New(lib, c, opts, logger).ListenAndServe(ctx, cfg.HTTP)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: pgnview [options] [input-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Replays PGN movetext, including variations, and prints the result.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
	fmt.Fprintf(os.Stderr, "  PGNVIEW_* variables override the configuration file, e.g.\n")
	fmt.Fprintf(os.Stderr, "  PGNVIEW_HTTP_ADDR, PGNVIEW_REDIS_ENABLED, PGNVIEW_LIBRARY_PATH\n")
}
