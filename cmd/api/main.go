package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"devrand/adapters/api"
	"devrand/adapters/backend/soft"
	"devrand/internal/config"
)

func main() {
	// Missing .env is fine; the environment itself may carry everything.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("loading configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)

	backend := soft.New(log.With().Str("component", "backend").Logger())
	server := api.NewServer(backend, cfg.Sampling, log.With().Str("component", "api").Logger())

	log.Info().
		Str("addr", cfg.Server.Addr).
		Str("default_engine", string(cfg.Sampling.DefaultEngine)).
		Msg("sampling server listening")
	if err := http.ListenAndServe(cfg.Server.Addr, server); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
