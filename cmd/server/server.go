package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/steveyiyo/voxtend-tts/internal/config"
	"github.com/steveyiyo/voxtend-tts/internal/core/tts"
	h "github.com/steveyiyo/voxtend-tts/internal/http"
	"github.com/steveyiyo/voxtend-tts/internal/logging"
	"github.com/steveyiyo/voxtend-tts/internal/metrics"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogBackups,
	})

	r, err := h.NewRouter(cfg, h.Deps{
		Synth: tts.NewGoogle(tts.GoogleOptions{
			Endpoint: cfg.TTSEndpoint,
			Workers:  cfg.ChunkWorkers,
			Timeout:  cfg.SynthTimeout,
			Log:      log,
		}),
		Metrics: metrics.New(),
		Log:     log,
	})
	if err != nil {
		log.WithError(err).Fatalln("failed to build router")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.WithField("port", cfg.Port).WithField("temp_dir", cfg.TempDir).Infoln("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatalln("server stopped")
		}
	}()

	<-ctx.Done()
	log.Infoln("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.SynthTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Errorln("graceful shutdown failed")
	}
}
