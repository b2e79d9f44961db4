package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/karmaloop/internal/config"
	"github.com/abhisek/karmaloop/internal/engine"
	"github.com/abhisek/karmaloop/internal/llm"
	"github.com/abhisek/karmaloop/internal/logging"
	"github.com/abhisek/karmaloop/internal/oracle"
	"github.com/abhisek/karmaloop/internal/store"
)

// runtime is everything a command needs, opened from config and flags.
type runtime struct {
	cfg    config.Config
	log    *logging.Logger
	store  *store.Store
	engine *engine.Engine
}

type runtimeOpts struct {
	// tui sends logs to a file next to the database when no log file is
	// configured, since the terminal belongs to the UI.
	tui bool
	// llm wires the configured provider. Commands that never reach the
	// advisor skip provider setup.
	llm bool
}

func openRuntime(cmd *cobra.Command, opts runtimeOpts) (*runtime, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logOpts := logging.Options{Mode: cfg.Log.Mode, Level: cfg.Log.Level, File: cfg.Log.File}
	if opts.tui && logOpts.File == "" {
		logOpts.File = filepath.Join(filepath.Dir(dbPath), "karmaloop.log")
	}
	log, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	deps := engine.Deps{
		Directory: st.DirectoryRepo(),
		Session:   st.SessionRepo(),
		Results:   st.ResultRepo(),
		Oracle:    oracle.DefaultConfig(),
		Log:       log,
	}
	if opts.llm {
		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), log)
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			log.Info("llm provider not configured, oracle runs in diagnostic mode")
		case err != nil:
			log.Warn("llm provider unavailable, oracle runs in diagnostic mode", "error", err)
		default:
			deps.Provider = provider
		}
	}

	eng := engine.New(deps)
	if _, err := eng.Boot(ctx); err != nil {
		st.Close()
		log.Sync()
		return nil, err
	}

	return &runtime{cfg: cfg, log: log, store: st, engine: eng}, nil
}

func (r *runtime) Close() {
	if err := r.store.Close(); err != nil {
		r.log.Warn("close store", "error", err)
	}
	r.log.Sync()
}
