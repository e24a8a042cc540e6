package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blood-ledger/internal/config"
	"blood-ledger/internal/platform/metrics"
	"blood-ledger/internal/router"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		// todavía no hay logger configurado
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	log := cfg.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := router.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Error("store init failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	if err := router.Seed(ctx, store, cfg, log); err != nil {
		log.Error("dev seed failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	dir, err := router.Directory(cfg)
	if err != nil {
		log.Error("directory init failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	opts := router.Options{
		Store:        store,
		Directory:    dir,
		AuthVerifier: router.Verifier(cfg), // nil sin JWT_SECRET: modo dev
		Metrics:      metrics.New("blood_ledger"),
		Logger:       log,
	}
	if pub := router.AuditPublisher(cfg); pub != nil {
		defer func() { _ = pub.Close() }()
		opts.Publisher = pub
		log.Info("audit publisher enabled", map[string]any{"topic": cfg.KafkaAuditTopic})
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.HTTPAddr, "env": cfg.Env, "store": string(cfg.Store)})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", map[string]any{"error": err.Error()})
		return
	}
	log.Info("server stopped", nil)
}
