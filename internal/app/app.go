package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/tabnap/tabnap/internal/browser"
	"github.com/tabnap/tabnap/internal/config"
	"github.com/tabnap/tabnap/internal/engine"
	"github.com/tabnap/tabnap/internal/httpserver"
	"github.com/tabnap/tabnap/internal/httpserver/deps"
	"github.com/tabnap/tabnap/internal/logger"
	"github.com/tabnap/tabnap/internal/redis"
	"github.com/tabnap/tabnap/internal/sources/presets"
	redisstore "github.com/tabnap/tabnap/internal/store/redis"
	"github.com/tabnap/tabnap/internal/trigger"
	"github.com/tabnap/tabnap/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	engine      *engine.Engine
	triggers    *trigger.Scheduler
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	store := redisstore.NewStore(redisClient)
	tabs := browser.NewClient(cfg.BridgeURL, cfg.BridgeTimeout)

	// The trigger handler closes over the engine pointer; triggers do not
	// fire until Run() starts the scheduler, well after eng is assigned.
	var eng *engine.Engine
	triggers, err := trigger.New(loggerClient, func(name string) {
		eng.HandleTrigger(name)
	})
	if err != nil {
		loggerClient.Errorf("Failed to initialize trigger scheduler: %v", err)
		os.Exit(1)
	}

	eng = engine.New(store, triggers, tabs, loggerClient, engine.Options{
		HeartbeatInterval: cfg.HeartbeatInterval,
		ProcessingLease:   cfg.ProcessingLease,
	})

	presetDefs := loadPresets(cfg, loggerClient)

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		Engine:       eng,
		Tabs:         tabs,
		RedisClient:  redisClient,
		Presets:      presetDefs,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		engine:      eng,
		triggers:    triggers,
	}
}

// loadPresets reads the configured presets file, falling back to the
// built-in set when no file is configured or the file is unusable.
func loadPresets(cfg *config.Config, log logger.Logger) []presets.Definition {
	if cfg.PresetsFile == "" {
		return presets.Defaults()
	}
	defs, err := presets.NewLoader(cfg.PresetsFile).Load()
	if err != nil {
		log.Warn("failed to load presets file, using built-in presets",
			logger.String("file", cfg.PresetsFile),
			logger.Error(err))
		return presets.Defaults()
	}
	log.Info("presets loaded",
		logger.String("file", cfg.PresetsFile),
		logger.Int("count", len(defs)))
	return defs
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Tabnap v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Tabnap %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.triggers.Start()

	// Restores persisted triggers and installs the heartbeat before the
	// server starts accepting requests.
	if err := a.engine.Start(ctx); err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}
	a.logger.Info("engine started",
		logger.Duration("heartbeat", a.cfg.HeartbeatInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.engine.Stop()

	if err := a.triggers.Stop(); err != nil {
		a.logger.Warnf("failed to stop trigger scheduler: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Tabnap stopped cleanly")
	return nil
}
