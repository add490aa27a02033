package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"meeting-dashboard/internal/config"
	"meeting-dashboard/internal/handler"
	"meeting-dashboard/internal/health"
	"meeting-dashboard/internal/ledger"
	"meeting-dashboard/internal/logger"
	"meeting-dashboard/internal/middleware"
	"meeting-dashboard/internal/router"
	"meeting-dashboard/internal/session"
	"meeting-dashboard/internal/store"
	"meeting-dashboard/internal/video"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger isn't configured yet
		l := logger.New("prod")
		l.Fatal().Err(err).Msg("config")
	}
	l := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// storage
	st, err := store.Open(ctx, cfg)
	if err != nil {
		l.Fatal().Err(err).Str("backend", cfg.LedgerBackend).Msg("open storage")
	}
	defer st.Close()
	l.Info().Str("backend", cfg.LedgerBackend).Str("key", cfg.LedgerKey).Msg("ledger storage ready")

	led := ledger.New(st, cfg.LedgerKey)
	if n, err := led.Len(ctx); err != nil {
		l.Warn().Err(err).Msg("ledger unreadable; submissions will fail until it is repaired")
	} else {
		l.Info().Int("meetings", n).Msg("ledger loaded")
	}

	videos, err := video.NewStore(cfg.UploadDir, cfg.MaxUploadBytes())
	if err != nil {
		l.Fatal().Err(err).Msg("upload dir")
	}

	reg := session.NewRegistry(cfg.SessionTTL)
	go reg.Sweep(ctx, time.Minute)

	rl := middleware.NewRateLimiter(cfg.AuthRateRPS, cfg.AuthRateBurst)
	go rl.Cleanup(ctx)

	h := handler.New(led, reg, videos, st, l)

	// grpc health
	if cfg.HealthPort != "off" {
		hs, err := health.New(":"+cfg.HealthPort, st, l)
		if err != nil {
			l.Fatal().Err(err).Msg("health server")
		}
		go func() {
			if err := hs.Serve(ctx, 15*time.Second); err != nil {
				l.Error().Err(err).Msg("health server")
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           router.New(l, cfg, h, reg, rl),
		// video uploads are read inside the handler, so both limits cover them
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      6 * time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("dashboard listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	l.Info().Msg("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutCtx)
	l.Info().Msg("shutdown complete")
}
