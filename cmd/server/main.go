package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dgallion1/serialform/internal/api"
	"github.com/dgallion1/serialform/internal/config"
	"github.com/dgallion1/serialform/internal/docerr"
	"github.com/dgallion1/serialform/internal/logfields"
	"github.com/dgallion1/serialform/internal/metrics"
	"github.com/dgallion1/serialform/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(os.Getenv("SERIALFORM_CONFIG"))
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		log.Error("invalid configuration", logfields.Error(err))
		os.Exit(docerr.ExitCode(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewPrometheusRecorder(reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Every request renders a fresh page from the current documentation set.
	src, err := pipeline.NewReloader(cfg, log, pipeline.WithRecorder(rec))
	if err != nil {
		log.Error("failed to load documentation set", logfields.Error(err), logfields.Path(cfg.ModelPath))
		os.Exit(docerr.ExitCode(err))
	}

	if cfg.Watch {
		go func() {
			if err := src.Watch(ctx); err != nil {
				log.Error("watcher stopped", logfields.Error(err))
			}
		}()
	}

	srv := api.NewServer(src, rec.Handler(), log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting serialform preview", "port", cfg.Port, "classes", len(src.Current().Set().Classes()))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", logfields.Error(err))
		os.Exit(1)
	}
}
