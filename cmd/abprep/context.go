package main

import (
	"context"
	"log/slog"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"abprep/internal/config"
	"abprep/internal/logging"
	"abprep/internal/runlog"
	"abprep/internal/workspace"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// runEnv bundles everything a pipeline command needs for one invocation.
type runEnv struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *runlog.Store
}

// withRunEnv prepares directories, takes the run lock, opens the run log, and
// invokes fn under a signal-aware context. Cleanup happens in reverse order
// once fn returns.
func (c *commandContext) withRunEnv(parent context.Context, fn func(context.Context, *runEnv) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	lock, err := workspace.Acquire(cfg.DataRoot())
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	store, err := runlog.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	signalCtx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return fn(signalCtx, &runEnv{cfg: cfg, logger: logger, store: store})
}

// withStore opens only the run log, for read-side commands.
func (c *commandContext) withStore(fn func(*runlog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	store, err := runlog.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	return fn(store)
}
