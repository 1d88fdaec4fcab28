package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/aromabench/internal/config"
	"github.com/abhisek/aromabench/internal/logging"
	"github.com/abhisek/aromabench/internal/store"
	"github.com/abhisek/aromabench/internal/workspace"
)

// session is everything a command needs to read or edit the document.
type session struct {
	cfg     config.Config
	logger  *logging.Logger
	backend store.Backend
	ws      *workspace.Workspace
}

// loadConfig reads the config named by --config and applies --db on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Storage.Path = p
	}
	return cfg, nil
}

// openSession resolves config, opens the log file and the storage backend,
// and loads the workspace. Callers must Close it.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logOpts, err := cfg.LoggingOptions()
	if err != nil {
		return nil, fmt.Errorf("resolve log file: %w", err)
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	storeOpts, err := cfg.StorageOptions(logger)
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("resolve storage path: %w", err)
	}
	backend, err := store.OpenBackend(storeOpts)
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	ws, err := workspace.Open(cmd.Context(), backend.Documents(), backend.Events(), logger, workspace.Options{
		KeepSnapshots: cfg.Storage.KeepSnapshots,
	})
	if err != nil {
		backend.Close()
		logger.Sync()
		return nil, fmt.Errorf("load workspace: %w", err)
	}

	logger.Info("session opened", "driver", storeOpts.Driver, "path", storeOpts.Path, "command", cmd.Name())
	return &session{cfg: cfg, logger: logger, backend: backend, ws: ws}, nil
}

func (s *session) Close() error {
	defer s.logger.Sync()
	if err := s.backend.Close(); err != nil {
		s.logger.Error("close store", "error", err)
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}
