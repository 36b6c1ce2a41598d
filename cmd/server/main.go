package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/signtalk/signtalk/internal/adapters/http"
	"github.com/signtalk/signtalk/internal/app"
	"github.com/signtalk/signtalk/internal/config"
	"github.com/signtalk/signtalk/internal/core"
	"github.com/signtalk/signtalk/internal/translate"
	"github.com/signtalk/signtalk/internal/video"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
	}

	orch := &app.Orchestrator{
		Sessions: app.NewSessionRegistry(),
		Rooms:    core.NewRoomRegistry(),
		Policy:   app.DropPolicy{},
		Translator: translate.NewClient(translate.Config{
			BaseURL: cfg.Translator.BaseURL,
			Timeout: cfg.Translator.Timeout,
		}),
		Videos: video.NewResolver(video.Config{
			BaseURL: cfg.Video.BaseURL,
			Timeout: cfg.Video.Timeout,
		}),
	}

	r := router.SetupRouter(ctx, cfg, orch)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("SignTalk server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
