package app

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"draftgen/backend/internal/api"
	"draftgen/backend/internal/config"
	"draftgen/backend/internal/database"
	"draftgen/backend/internal/repository"
	"draftgen/backend/internal/service"
	"draftgen/backend/internal/stream"
)

// App bundles the long-lived resources of one server process.
type App struct {
	DB     *sql.DB
	Server *http.Server
}

// NewApp wires the full dependency graph: database, repository, upstream
// stream client, generation service, handlers and router. It does not start
// listening; that is Run's job.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("could not initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.")

	store := repository.NewSQLiteStore(db)
	source := stream.NewClient(cfg.GenerationAPIURL)

	// Upstream availability is not checked here: the stream layer reconnects
	// on its own and falls back to polling when the live stream stays down.
	generationService := service.NewGenerationService(store, source, service.ReconnectSettings{
		MaxRetries:      cfg.StreamMaxRetries,
		InitialDelay:    time.Duration(cfg.StreamInitialRetryMs) * time.Millisecond,
		MaxDelay:        time.Duration(cfg.StreamMaxRetryMs) * time.Millisecond,
		PollingInterval: time.Duration(cfg.StreamPollIntervalMs) * time.Millisecond,
	})

	generationHandler := api.NewGenerationHandler(generationService)
	router := api.NewRouter(generationHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}

	return &App{DB: db, Server: server}, nil
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		if err := app.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	slog.Info("Starting server", "port", cfg.AppPort)
	if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return 1
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
