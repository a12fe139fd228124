package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/channel-scheduler/internal/application"
	"github.com/example/channel-scheduler/internal/config"
	"github.com/example/channel-scheduler/internal/discord"
	httptransport "github.com/example/channel-scheduler/internal/http"
	"github.com/example/channel-scheduler/internal/logging"
	"github.com/example/channel-scheduler/internal/persistence/sqlite"
)

func main() {
	logger := logging.New(os.Stdout, slog.LevelInfo)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	publicKey, err := discord.ParsePublicKey(cfg.DiscordPublicKey)
	if err != nil {
		logger.Error("failed to parse Discord public key", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close store", "error", cerr)
		}
	}()

	if err := store.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	bookings := sqlite.NewBookingRepository(store)
	titles := sqlite.NewTitleRepository(store)
	directory := discord.NewClient(cfg.DiscordAPIBase, cfg.DiscordBotToken, cfg.LookupTimeout)
	if cfg.DiscordBotToken == "" {
		logger.Warn("no bot token configured, channels stay untitled until settitle")
	}

	signupService := application.NewSignupService(bookings, titles, directory, uuid.NewString, time.Now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Interactions: httptransport.NewInteractionHandler(signupService, publicKey, logger),
		Dashboard:    httptransport.NewDashboardHandler(bookings, titles, uuid.NewString, time.Now, logger),
		Store:        store,
		Logger:       logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("signup bot listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
