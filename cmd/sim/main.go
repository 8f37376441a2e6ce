// Command sim runs levels headless with scripted input. It is used to
// balance specs and to reproduce a run from its seed.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/slimegame/prefabs"
	"github.com/milk9111/slimegame/progression"
)

func main() {
	level := flag.Int("level", 1, "first level to run")
	levels := flag.Int("levels", 1, "number of consecutive levels to run while winning")
	seed := flag.Uint64("seed", 1, "simulation seed")
	dt := flag.Duration("dt", time.Second/60, "tick length")
	limit := flag.Duration("limit", 15*time.Minute, "simulated time after which a level is abandoned")
	attack := flag.Duration("attack", 500*time.Millisecond, "scripted attack edge period")
	save := flag.Bool("save", false, "load and persist progress in the platform save slot")
	ignoreLock := flag.Bool("unlocked", false, "start levels that are not unlocked yet")
	watch := flag.Bool("watch", false, "log edits to files under prefabs/ while running")
	jsonLogs := flag.Bool("json", false, "log as JSON")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if *verbose {
		opts.Level = slog.LevelDebug
	}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if *jsonLogs {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	logger := slog.New(handler).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := progression.NewStore(nil)
	if *save {
		store = progression.OpenStore("slimegame")
	}

	r := &runner{
		logger:     logger,
		store:      store,
		first:      *level,
		count:      *levels,
		seed:       *seed,
		dt:         *dt,
		limit:      *limit,
		attack:     *attack,
		ignoreLock: *ignoreLock,
	}

	eg, ctx := errgroup.WithContext(ctx)
	simCtx, simDone := context.WithCancel(ctx)
	eg.Go(func() error {
		defer simDone()
		return r.run(ctx)
	})
	if *watch {
		eg.Go(func() error {
			return watchPrefabs(simCtx, logger)
		})
	}

	if err := eg.Wait(); err != nil {
		logger.Error("sim failed", "err", err)
		os.Exit(1)
	}
}

// watchPrefabs logs spec edits until ctx ends. Edited specs are picked up by
// the next level start.
func watchPrefabs(ctx context.Context, logger *slog.Logger) error {
	w, err := prefabs.NewWatcher(prefabs.OverrideDir)
	if err != nil {
		logger.Warn("watch prefabs disabled", "dir", prefabs.OverrideDir, "err", err)
		return nil
	}
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-w.Events:
			if !ok {
				return nil
			}
			logger.Info("prefab changed", "path", c.Path, "kind", c.Kind)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch prefabs", "err", err)
		}
	}
}
