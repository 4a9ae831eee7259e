package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/dimaskresna/lelang-bot/internal/api"
	"github.com/dimaskresna/lelang-bot/internal/bid"
	"github.com/dimaskresna/lelang-bot/internal/bot"
	"github.com/dimaskresna/lelang-bot/internal/config"
	"github.com/dimaskresna/lelang-bot/internal/database"
	"github.com/dimaskresna/lelang-bot/internal/feed"
	"github.com/dimaskresna/lelang-bot/internal/journal"
	"github.com/dimaskresna/lelang-bot/internal/monitor"
	"github.com/dimaskresna/lelang-bot/internal/notify"
	"github.com/dimaskresna/lelang-bot/internal/session"
	"github.com/dimaskresna/lelang-bot/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/bot.local.yaml", "path to config file")
	envPath := flag.String("env", ".env", "path to optional dotenv file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting lelang bot",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Dotenv is optional; config values reference env vars with ${VAR}.
	if err := godotenv.Load(*envPath); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load dotenv file", "path", *envPath, "error", err)
	}

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"status_url", cfg.API.StatusURL,
		"bidding_url", cfg.API.BiddingURL,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Optional journal database
	var pool *pgxpool.Pool
	var queue *journal.Queue
	var writer *journal.Writer
	if cfg.Database.Enabled {
		logger.Info("connecting to database",
			"host", cfg.Database.Postgres.Host,
			"port", cfg.Database.Postgres.Port,
			"database", cfg.Database.Postgres.Name,
		)

		pool, err = database.Connect(ctx, cfg.Database.Postgres)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := journal.EnsureSchema(ctx, pool); err != nil {
			logger.Error("failed to prepare journal schema", "error", err)
			os.Exit(1)
		}

		queue = journal.NewQueue(cfg.Journal.QueueSize)
		writer = journal.NewWriter(journal.WriterConfig{
			BatchSize:     cfg.Journal.BatchSize,
			FlushInterval: cfg.Journal.FlushInterval,
		}, queue, pool, logger)
		if err := writer.Start(ctx); err != nil {
			logger.Error("failed to start journal writer", "error", err)
			os.Exit(1)
		}

		logger.Info("journal enabled")
	}

	// Telegram connection
	tg, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logger.Error("failed to connect to telegram", "error", err)
		os.Exit(1)
	}
	tg.Debug = cfg.Telegram.Debug
	logger.Info("telegram connected", "username", tg.Self.UserName)

	notifier := notify.NewTelegram(tg, logger)

	// Auction API client
	client := api.NewClient(
		cfg.API.StatusURL,
		cfg.API.BiddingURL,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
	)

	// Optional extension feed
	var cache *feed.Cache
	var feedServer *http.Server
	if cfg.Feed.Enabled {
		cache = feed.NewCache()
		mux := http.NewServeMux()
		mux.Handle("/ws/snapshots", feed.NewServer(cache, logger))
		feedServer = &http.Server{Addr: cfg.Feed.Addr, Handler: mux}

		go func() {
			logger.Info("starting feed listener", "addr", cfg.Feed.Addr)
			if err := feedServer.ListenAndServe(); err != http.ErrServerClosed {
				logger.Error("feed listener error", "error", err)
			}
		}()
	}

	// Core components
	store := session.NewStore()
	manager := monitor.NewManager(monitor.Config{
		DefaultInterval: cfg.Monitor.DefaultInterval,
		FetchTimeout:    cfg.Monitor.FetchTimeout,
		MaxFetchErrors:  cfg.Monitor.MaxFetchErrors,
	}, logger)
	orch := bid.NewOrchestrator(client, notifier, cfg.Bid.Timeout, logger)

	b := bot.New(bot.Config{
		UpdateTimeout: cfg.Telegram.UpdateTimeout,
		FeedMaxAge:    cfg.Monitor.FeedMaxAge,
	}, tg, bot.Options{
		Store:        store,
		Monitors:     manager,
		Orchestrator: orch,
		Client:       client,
		Notifier:     notifier,
		Cache:        cache,
		Journal:      queue,
		Logger:       logger,
	})

	// Health endpoint
	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Health.Port),
		Handler: createHealthHandler(pool, manager, writer),
	}
	go func() {
		logger.Info("starting health server", "port", cfg.Health.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("health server error", "error", err)
		}
	}()

	logger.Info("bot running",
		"instance_id", cfg.Instance.ID,
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Health.Port),
	)

	if err := b.Run(ctx); err != nil {
		logger.Error("bot loop failed", "error", err)
	}

	logger.Info("shutting down...")

	manager.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	healthServer.Shutdown(shutdownCtx)
	if feedServer != nil {
		feedServer.Shutdown(shutdownCtx)
	}
	if writer != nil {
		writer.Stop(shutdownCtx)
	}

	logger.Info("bot stopped")
}

// createHealthHandler creates the HTTP handler for health checks.
func createHealthHandler(pool *pgxpool.Pool, manager *monitor.Manager, writer *journal.Writer) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string                 `json:"status"`
			Components map[string]interface{} `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]interface{}),
		}

		health.Components["monitors"] = map[string]interface{}{
			"active": manager.Count(),
		}

		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				health.Status = "unhealthy"
				health.Components["postgres"] = map[string]string{
					"status": "disconnected",
					"error":  err.Error(),
				}
			} else {
				health.Components["postgres"] = "connected"
			}
		}

		if writer != nil {
			stats := writer.Stats()
			health.Components["journal"] = map[string]interface{}{
				"inserts": stats.Inserts,
				"flushes": stats.Flushes,
				"errors":  stats.Errors,
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	return mux
}
