package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resolvewise/internal/config"
	"resolvewise/internal/database"
	"resolvewise/internal/events"
	"resolvewise/internal/router"
	"resolvewise/internal/service"
	"resolvewise/internal/store"
	"resolvewise/internal/views"
	"resolvewise/pkg/logger"
)

func main() {
	// config + logger
	cfg := config.Load()
	l := logger.New(cfg.Env)

	// local storage
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		l.Fatal().Err(err).Msg("open database failed")
	}
	defer db.Close()

	st, err := store.New(db, l)
	if err != nil {
		l.Fatal().Err(err).Msg("init store failed")
	}
	if err := st.EnsureSeeded(context.Background()); err != nil {
		l.Fatal().Err(err).Msg("seed failed")
	}

	// domain + rendering
	svc := service.New(st, events.NewBus(), l)
	render, err := views.New()
	if err != nil {
		l.Fatal().Err(err).Msg("parse templates failed")
	}

	// http
	r := router.New(l, svc, render, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// No WriteTimeout: the comment event stream is long-lived.
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("resolvewise listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
}
