package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/ziadkadry99/diana/internal/api"
	"github.com/ziadkadry99/diana/internal/app"
	"github.com/ziadkadry99/diana/internal/audit"
	"github.com/ziadkadry99/diana/internal/config"
	"github.com/ziadkadry99/diana/internal/db"
	"github.com/ziadkadry99/diana/internal/logger"
	"github.com/ziadkadry99/diana/internal/prefs"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `diana init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// runtime holds what every command needs: configuration, logging, the
// local database and the service client.
type runtime struct {
	cfg    *config.Config
	log    *zap.Logger
	db     *db.DB
	prefs  *prefs.Preferences
	audit  *audit.Store
	client *api.Client
}

// openRuntime prepares the shared dependencies. Console logging is only
// enabled for long-running commands or with --verbose, so that headless
// output stays readable.
func openRuntime(longRunning bool) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level := string(cfg.LogLevel)
	if verbose {
		level = string(config.LogDebug)
	}

	logFile := ""
	if !ephemeral {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
		logFile = cfg.LogPath()
	}

	log, err := logger.New(logger.Options{
		File:    logFile,
		Level:   level,
		Console: cfg.LogConsole && (longRunning || verbose),
	})
	if err != nil {
		return nil, err
	}

	database, backend, err := openStores(cfg, ephemeral)
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.APIBaseURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout()}),
		api.WithLogger(log.Named("api")))

	return &runtime{
		cfg:    cfg,
		log:    log,
		db:     database,
		prefs:  prefs.New(backend),
		audit:  audit.NewStore(database),
		client: client,
	}, nil
}

// openStores opens the local database and the preferences backend. An
// ephemeral runtime keeps both in memory: preferences in a cache and the
// audit trail in an in-memory database.
func openStores(cfg *config.Config, ephemeral bool) (*db.DB, prefs.Backend, error) {
	if ephemeral {
		database, err := db.OpenMemory()
		if err != nil {
			return nil, nil, err
		}
		return database, prefs.NewMemoryBackend(), nil
	}
	database, err := db.Open(cfg.PrefsPath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening preferences: %w", err)
	}
	return database, prefs.NewSQLiteBackend(database), nil
}

// Close releases the database and flushes the log.
func (rt *runtime) Close() {
	rt.db.Close()
	_ = rt.log.Sync()
}

// newSession builds a session against the configured service.
func (rt *runtime) newSession(ctx context.Context, opts app.Options) *app.Session {
	opts.Backend = rt.client
	opts.Prefs = rt.prefs
	opts.Audit = rt.audit
	opts.Logger = rt.log
	if opts.StatsInterval == 0 {
		opts.StatsInterval = rt.cfg.StatsInterval()
	}
	return app.NewSession(ctx, opts)
}

// startSession runs a session in the background and returns once it has
// rendered its first page. stop ends it and waits for the loop to exit;
// callers that need pending background work flushed call Loop.Wait first.
func (rt *runtime) startSession(ctx context.Context, opts app.Options) (sess *app.Session, stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	sess = rt.newSession(ctx, opts)

	done := make(chan error, 1)
	go func() { done <- sess.Run(ctx) }()
	_ = sess.Loop.Do(func() {})

	return sess, func() {
		cancel()
		if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
			rt.log.Warn("session stopped", zap.Error(err))
		}
	}
}

// failureDetail is the text shown for a failed account request.
func failureDetail(err error, fallback string) string {
	var rej *api.RejectionError
	if errors.As(err, &rej) && rej.Detail != "" {
		return rej.Detail
	}
	var fe *api.FetchError
	if errors.As(err, &fe) {
		return "Connection error"
	}
	return fallback
}
