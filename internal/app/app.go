package app

import (
	"context"
	"fmt"
	"fxbot/internal/platform/db"
	httpserver "fxbot/internal/platform/http"
	"fxbot/internal/platform/logging"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"fxbot/internal/adapters"
	"fxbot/internal/adapters/cache"
	"fxbot/internal/adapters/httpclient"
	"fxbot/internal/adapters/memory"
	"fxbot/internal/adapters/postgres"
	"fxbot/internal/adapters/redisstore"
	"fxbot/internal/adapters/telegram"
	"fxbot/internal/api"
	"fxbot/internal/chat"
	"fxbot/internal/config"
	"fxbot/internal/metrics"
	"fxbot/internal/rate"
	"fxbot/internal/rate/handler"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server, scheduler and reply dispatcher
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logCloser, err := logging.Setup(appCfg.Logging)
	if err != nil {
		logrus.WithError(err).Warn("Log file unavailable, logging to stdout only")
	}
	defer func() { _ = logCloser.Close() }()
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Store
	store, closeStore, err := openStore(startupCtx, appCfg)
	if err != nil {
		logrus.WithError(err).WithField("driver", appCfg.Storage.Driver).Error("Error opening store")
		return err
	}
	defer closeStore()
	logrus.Infof("✅ Store ready (%s)", appCfg.Storage.Driver)

	// Snapshot cache
	snapshotCache, err := cache.NewSnapshotCache(appCfg.Cache.MaxItems, time.Duration(appCfg.Cache.TTLSeconds)*time.Second)
	if err != nil {
		return fmt.Errorf("failed to create snapshot cache: %w", err)
	}
	defer snapshotCache.Close()

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External clients
	rateSource := httpclient.NewRateSourceClient(
		baseHTTPClient,
		appCfg.RateSource.UserAgent,
		httpclient.Endpoint{Name: "primary", URL: appCfg.RateSource.PrimaryURL},
		httpclient.Endpoint{Name: "fallback", URL: appCfg.RateSource.FallbackURL},
	)
	telegramClient := telegram.NewClient(baseHTTPClient, strings.TrimSuffix(appCfg.Telegram.APIURL, "/"), appCfg.Telegram.Token)

	botMetrics := metrics.NewBotMetrics()

	// Services
	snapshots := rate.NewSnapshotRepository(store, snapshotCache)
	rateService := rate.NewService(snapshots, rate.NewFormatter(loadLocation(appCfg.Bot.Timezone)))
	refresher := rate.NewRefresher(rateSource, snapshots, botMetrics)

	// Reply dispatcher; stopped after the HTTP server so accepted replies still go out
	dispatcher := chat.NewDispatcher(
		telegramClient,
		botMetrics,
		appCfg.Dispatcher.Workers,
		appCfg.Dispatcher.QueueSize,
		time.Duration(appCfg.Dispatcher.SendTimeoutSec)*time.Second,
	)
	dispatcher.Start(ctx)
	defer func() {
		drainCtx, drainCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer drainCancel()
		if drainErr := dispatcher.Shutdown(drainCtx); drainErr != nil {
			logrus.Errorf("Dispatcher shutdown error: %v", drainErr)
		}
	}()

	scheduler := rate.NewScheduler(refresher, time.Duration(appCfg.Scheduler.RefreshIntervalSec)*time.Second)
	// Ensure scheduler stops before the store closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	if appCfg.Telegram.WebhookSecret == "" {
		logrus.Warn("telegram.webhook_secret is empty, webhook and refresh endpoints are unauthenticated")
	}
	rateHandler := handler.NewRateHandler(rateService, refresher)
	webhook := chat.NewWebhook(rateService, chat.NewOwnerAuthorizer(store, appCfg.Telegram.OwnerChatID), dispatcher, botMetrics)
	router := api.NewRouter(rateHandler, webhook, botMetrics.Handler(), appCfg.Telegram.WebhookSecret)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// openStore builds the key/value store selected by storage.driver.
func openStore(ctx context.Context, cfg *config.AppConfig) (adapters.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		if err := db.Migrate(ctx, cfg.DbServer.GetConnectionStr()); err != nil {
			return nil, nil, err
		}
		pool, err := db.CreatePoolAndPing(ctx, cfg.DbServer)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewKVStore(pool), pool.Close, nil
	case config.StorageDriverRedis:
		store := redisstore.NewKVStore(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.KeyPrefix)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case config.StorageDriverMemory:
		logrus.Warn("Using in-memory store, snapshot and owner binding are lost on restart")
		return memory.NewKVStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func loadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logrus.WithError(err).WithField("timezone", name).Warn("Unknown timezone, falling back to UTC")
		return time.UTC
	}
	return loc
}
