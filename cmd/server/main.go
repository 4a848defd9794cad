// Command server is the process entrypoint: it loads configuration, builds
// the dictionary/censor/rate-limiter collaborators, wires the arena manager
// and dispatcher to the WebSocket transport and HTTP adjunct API, and runs
// until an interrupt signal arrives.
//
// Grounded on udisondev-la2go/cmd/gameserver/main.go's config-then-wire-then-
// errgroup-run shape, adapted to this repo's single HTTP server instead of
// three independent network listeners.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scythe504/skribblr-backend/internal/arena"
	"github.com/scythe504/skribblr-backend/internal/authdb"
	"github.com/scythe504/skribblr-backend/internal/censor"
	"github.com/scythe504/skribblr-backend/internal/config"
	"github.com/scythe504/skribblr-backend/internal/dictionary"
	"github.com/scythe504/skribblr-backend/internal/httpapi"
	"github.com/scythe504/skribblr-backend/internal/ratelimit"
	"github.com/scythe504/skribblr-backend/internal/transport"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("shutting down, signal=%s", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	log.Printf("config loaded: port=%s word_list=%s prompts=%s adjunct_auth=%v",
		cfg.Port, cfg.WordListPath, cfg.PromptsPath, cfg.AdjunctAuthEnabled)

	dict, err := dictionary.Load(cfg.WordListPath, cfg.PromptsPath)
	if err != nil {
		return fmt.Errorf("loading dictionary: %w", err)
	}

	if cfg.AdjunctAuthEnabled {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("ADJUNCT_AUTH_ENABLED is set but DATABASE_URL is empty")
		}
		identityDB, err := authdb.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting identity adjunct: %w", err)
		}
		defer identityDB.Close()
		log.Printf("identity adjunct connected")
	}

	manager := arena.NewManager(dict, censor.New())
	limiter := ratelimit.New(cfg.RateLimitPerSec, cfg.RateLimitBurst)
	dispatcher := arena.NewDispatcher(manager, limiter)
	wsHandler := transport.New(manager, dispatcher)
	api := httpapi.New(manager, wsHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.Routes(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("starting http server, addr=%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("stopping http server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
