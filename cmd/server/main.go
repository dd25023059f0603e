package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmsteiner495/elevatedhealth-sub000/config"
	"github.com/cmsteiner495/elevatedhealth-sub000/internal/app"
	httpDelivery "github.com/cmsteiner495/elevatedhealth-sub000/internal/delivery/http"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	app.SetupLogger(cfg, os.Stderr)

	log.Info().
		Str("version", httpDelivery.Version).
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("cache", cfg.Cache.Type).
		Msg("starting ElevatedHealth food search")

	engine, err := app.NewEngine(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize search engine")
	}
	defer engine.Close()

	handler := httpDelivery.NewHandler(engine.Service)
	router := httpDelivery.SetupRouter(cfg, handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shut down")
	}
}
