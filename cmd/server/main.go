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

	"github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"loan-origination/internal/api"
	"loan-origination/internal/batch"
	"loan-origination/internal/config"
	"loan-origination/internal/conversation"
	"loan-origination/internal/domain/customer"
	"loan-origination/internal/domain/negotiation"
	"loan-origination/internal/domain/underwriting"
	"loan-origination/internal/event"
	"loan-origination/internal/infrastructure/bureau"
	"loan-origination/internal/infrastructure/directory"
	"loan-origination/internal/infrastructure/letter"
	"loan-origination/internal/infrastructure/logging"
	"loan-origination/internal/infrastructure/sessionstore"
)

// @title Loan Origination Chat API
// @version 1.0
// @description Conversational loan-origination service: verification, negotiation, underwriting and sanction letter generation over a chat endpoint.

// @contact.name API Support
func main() {
	cfg, logger := initializeApp()

	engine, store := initializeComponents(cfg, logger)

	cronScheduler := startSessionSweeper(cfg, store, logger)
	router := api.SetupRouter(engine, store, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func initializeComponents(cfg *config.Config, logger *slog.Logger) (*conversation.Engine, conversation.Store) {
	logger.Info("Initializing application components...")

	dir, err := directory.NewJSONDirectory(cfg.Directory.DataFile, logger)
	if err != nil {
		logger.Error("Failed to load customer directory", "error", err)
		os.Exit(1)
	}

	interestRate, err := decimal.NewFromString(cfg.Loan.AnnualInterestRate)
	if err != nil {
		logger.Error("Invalid loan.annualInterestRate", "error", err, "value", cfg.Loan.AnnualInterestRate)
		os.Exit(1)
	}

	policy, err := negotiation.ParseSuggestionPolicy(cfg.Negotiation.SuggestionPolicy)
	if err != nil {
		logger.Error("Invalid negotiation.suggestionPolicy", "error", err)
		os.Exit(1)
	}

	renderer, err := letter.NewPDFRenderer(cfg.Letter.OutputDir, logger)
	if err != nil {
		logger.Error("Failed to initialize letter renderer", "error", err)
		os.Exit(1)
	}

	bureauClient := bureau.NewClient(cfg.Bureau, logger)
	verifier := customer.NewVerificationService(dir, logger)
	negotiator := negotiation.NewNegotiator(bureauClient, negotiation.Config{
		AnnualInterestRate: interestRate,
		MinTenureMonths:    cfg.Negotiation.MinTenureMonths,
		MaxTenureMonths:    cfg.Negotiation.MaxTenureMonths,
	}, logger)
	underwriter := underwriting.NewService(bureauClient, logger)

	engine := conversation.NewEngine(conversation.EngineConfig{
		Verifier:           verifier,
		Negotiator:         negotiator,
		Underwriter:        underwriter,
		Renderer:           renderer,
		Documents:          conversation.StubDocumentVerifier{},
		Publisher:          initializePublisher(cfg, logger),
		SuggestionPolicy:   policy,
		AnnualInterestRate: interestRate,
		Logger:             logger,
	})

	return engine, initializeSessionStore(cfg, logger)
}

func initializeSessionStore(cfg *config.Config, logger *slog.Logger) conversation.Store {
	if cfg.Session.Store == "redis" {
		logger.Info("Using redis session store", "addr", cfg.Session.RedisAddr)
		return sessionstore.NewRedisStore(cfg.Session.RedisAddr, cfg.Session.TTL, logger)
	}
	logger.Info("Using in-memory session store", "ttl", cfg.Session.TTL)
	return conversation.NewMemoryStore(cfg.Session.TTL)
}

func initializePublisher(cfg *config.Config, logger *slog.Logger) event.Publisher {
	if !cfg.Events.Enabled {
		return event.NoopPublisher{}
	}

	url := fmt.Sprintf("amqp://%s:%s@%s:%d/", cfg.Events.Username, cfg.Events.Password, cfg.Events.Host, cfg.Events.Port)
	conn, err := amqp091.Dial(url)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, continuing without events", "error", err)
		return event.NoopPublisher{}
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.Events.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to initialize event publisher, continuing without events", "error", err)
		return event.NoopPublisher{}
	}
	return publisher
}

func startSessionSweeper(cfg *config.Config, store conversation.Store, logger *slog.Logger) *cron.Cron {
	sweeper := batch.NewSessionSweeper(store, logger)
	scheduler := cron.New()

	_, err := scheduler.AddFunc(cfg.Session.SweepSchedule, func() {
		if err := sweeper.Run(context.Background()); err != nil {
			logger.Error("Session sweep run failed", "error", err)
		}
	})
	if err != nil {
		logger.Error("Failed to schedule session sweeper", "error", err, "schedule", cfg.Session.SweepSchedule)
		os.Exit(1)
	}

	scheduler.Start()
	logger.Info("Session sweeper scheduled", "schedule", cfg.Session.SweepSchedule)
	return scheduler
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server graceful shutdown failed", "error", err)
		}
	} else {
		logger.Info("HTTP server stopped.")
	}

	logger.Info("Shutdown complete.")
}
