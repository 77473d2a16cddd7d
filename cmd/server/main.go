// Command server runs the CUIT consulta API: a single JSON endpoint that
// relays queries to the AFIP padrón A5 web service, records an audit row per
// completed lookup, and returns the extracted taxpayer data.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/padronws/go-cuit-backend/internal/config"
	httpapi "github.com/padronws/go-cuit-backend/internal/http"
	"github.com/padronws/go-cuit-backend/internal/observability"
	"github.com/padronws/go-cuit-backend/internal/padron"
	"github.com/padronws/go-cuit-backend/internal/repo"
	"github.com/padronws/go-cuit-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Error().Err(err).Msg("otel shutdown failed")
		}
	}()

	// A broken store must not keep the API down: lookups still work, audit
	// writes fail and are logged per request.
	db, err := repo.OpenDB(cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("audit database unavailable; lookups will not be audited")
	} else {
		if err := repo.AutoMigrate(db); err != nil {
			log.Error().Err(err).Msg("audit schema migration failed")
		} else {
			log.Info().Str("driver", cfg.DB.Driver).Msg("audit database ready")
		}
	}

	lookup := padron.NewClient(cfg.AFIP.URL, padron.Credentials{
		Token:            cfg.AFIP.Token,
		Sign:             cfg.AFIP.Sign,
		CUITRepresentada: cfg.AFIP.CUITRepresentada,
	}, &http.Client{Timeout: cfg.AFIP.Timeout})

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, lookup, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
