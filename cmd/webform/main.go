// Command webform serves the browser form for the consulta API as its own
// process, so the form and the API can run on separate origins exactly like
// the original deployment.
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
	"github.com/rs/zerolog/log"

	"github.com/padronws/go-cuit-backend/internal/sysutil"
	"github.com/padronws/go-cuit-backend/internal/webform"
)

func main() {
	_ = godotenv.Load()

	sysutil.SetLogLevel(os.Getenv("LOG_LEVEL"))

	port := sysutil.FirstNonEmpty(os.Getenv("WEB_PORT"), "3000")
	apiBase := sysutil.FirstNonEmpty(os.Getenv("API_BASE_URL"), "http://localhost:5000")

	if sysutil.IsTruthy(os.Getenv("WEB_DEBUG")) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if err := webform.RegisterRoutes(r, apiBase); err != nil {
		log.Fatal().Err(err).Msg("webform setup failed")
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Str("api", apiBase).Msg("webform listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("webform failed")
		}
	}()

	<-ctx.Done()

	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
