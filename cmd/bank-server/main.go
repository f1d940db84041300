package main

import (
	"context"
	"net/http"
	"time"

	"coin-bank/internal/config"
	"coin-bank/internal/ledger"
	"coin-bank/internal/logging"
	"coin-bank/internal/store"
	"coin-bank/internal/wager"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	st, err := store.New(cfg.Server.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	if err := st.EnsureReserve(context.Background(), st.Pool, ledger.ReserveTotal); err != nil {
		log.Fatal().Err(err).Msg("ensure reserve failed")
	}

	eng := ledger.New(st, nil, wager.NewRand(cfg.Server.WagerSeed))
	r := newRouter(st, cfg.Server, eng)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
