package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ledgerdesk/internal/config"
	"ledgerdesk/internal/infra"
	"ledgerdesk/internal/router"
	"ledgerdesk/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to create data dir")
	}

	db, err := infra.NewDatabase(cfg.DatabasePath())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, dispatcher, jobHandler, err := router.New(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to wire router")
	}
	worker.StartPool(ctx, dispatcher, cfg.WorkerPoolSize, jobHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("ledgerdesk listening on 127.0.0.1:%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Open the UI once the server socket is up.
	url := fmt.Sprintf("http://127.0.0.1:%d/app/", cfg.Port)
	if cfg.WebDir == "" {
		url = fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Port)
	}
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	switch cfg.UIMode {
	case "window":
		go func() {
			browser, err := infra.OpenAppWindow(url)
			if err != nil {
				log.Error().Err(err).Msg("failed to open app window")
				return
			}
			if browser == nil {
				return // fell back to the system browser; keep serving
			}
			// Treat the window closing as a quit request.
			infra.WaitForBrowserClose(browser)
			quit <- syscall.SIGTERM
		}()
	case "browser":
		if err := infra.OpenSystemBrowser(url); err != nil {
			log.Error().Err(err).Msg("failed to open browser")
		}
	}

	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
