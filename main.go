package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/backend/internal/config"
	"github.com/ledgerline/backend/pkg/ledger"
	"github.com/ledgerline/backend/pkg/models"
	"github.com/ledgerline/backend/pkg/router"
	"github.com/ledgerline/backend/pkg/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if cfg.HumanLogs() {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	log.Debug().
		Strs("corsAllowOrigins", cfg.CorsAllowOrigins).
		Bool("pprof", cfg.EnablePprof).
		Str("database", cfg.DatabasePath()).
		Msg("Configuration")

	// Create data directory
	err = os.MkdirAll(cfg.DataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database
	err = models.Connect(cfg.DatabasePath())
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l := ledger.New(store.New(models.DB))

	// Create the entries of recurring rules that became due while the backend was not running
	if cfg.CatchUpOnStart {
		report, err := l.CatchUp(ctx, l.Today())
		if err != nil {
			log.Error().Err(err).Int("emitted", len(report.Emitted)).Msg("Catch-up on start failed")
		}
	}

	if cfg.CatchUpInterval > 0 {
		go l.RunCatchUpEvery(ctx, cfg.CatchUpInterval)
	}

	r, teardown, err := router.Config(cfg.APIURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	router.AttachRoutes(r.Group("/"))

	if err := r.Run(":" + strconv.Itoa(cfg.Port)); err != nil {
		log.Error().Msg(err.Error())
	}
}
