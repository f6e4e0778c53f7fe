/*
main.go - Server entry point

Wires everything together: configuration, logging, the SQLite snapshot
backend, the entity store, the service layer and the HTTP router. Shuts
down gracefully on SIGINT/SIGTERM.
*/
package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/reviewcrew/review-engine/api"
	"github.com/reviewcrew/review-engine/config"
	"github.com/reviewcrew/review-engine/service"
	"github.com/reviewcrew/review-engine/store"
	"github.com/reviewcrew/review-engine/store/sqlite"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	if err := run(log); err != nil {
		log.Fatalw("server failed", "error", err)
	}
}

func run(log *zap.SugaredLogger) error {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer kv.Close()

	st, err := store.Open(ctx, kv)
	if err != nil {
		return err
	}

	if cfg.SeedDemo {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		if err := st.Seed(ctx, rng, 235, 10); err != nil {
			return err
		}
		log.Infow("demo data seeded")
	}

	svc := service.New(st, log, service.Options{
		SweepDelay: cfg.SweepDelay,
		LoginDelay: cfg.LoginDelay,
	})

	srv := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: api.NewRouter(api.NewHandler(svc)),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infow("server starting", "address", cfg.RunAddress, "database", cfg.DatabasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
