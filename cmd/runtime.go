package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/learnlab/internal/config"
	"github.com/abhisek/learnlab/internal/gateway"
	"github.com/abhisek/learnlab/internal/logger"
	"github.com/abhisek/learnlab/internal/store"
)

var errCallLogDisabled = errors.New("the call log is disabled (store.disabled or --no-store)")

// runtime holds what every command needs once flags are parsed.
type runtime struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store // nil when the call log is disabled
}

// setup loads configuration, then the logger, then the call log.
func setup(cmd *cobra.Command) (*runtime, error) {
	configFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.Load(config.Options{
		ConfigFile: configFile,
		DotEnv:     envFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, log: log}
	if cfg.Store.Disabled {
		return rt, nil
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	rt.store = st
	log.Debug("call log opened", zap.String("path", dbPath))
	return rt, nil
}

// resolveDBPath returns the configured store path, or the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.Store.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// calls returns the call log, or nil when it is disabled.
func (rt *runtime) calls() store.EventRepo {
	if rt.store == nil {
		return nil
	}
	return rt.store.EventRepo()
}

// gateway returns the HTTP client wrapped with logging and call recording.
func (rt *runtime) gateway() gateway.Gateway {
	client := gateway.NewClient(gateway.ClientConfig{
		BaseURL:   rt.cfg.Backend.URL,
		Timeout:   rt.cfg.Backend.Timeout,
		UserAgent: userAgent(),
	})
	return gateway.WithLogging(client, rt.calls(), rt.log)
}

func (rt *runtime) Close() {
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.log.Warn("close store", zap.Error(err))
		}
	}
	_ = rt.log.Sync()
}
