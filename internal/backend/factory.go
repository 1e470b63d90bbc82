package backend

import (
	"fmt"
	"log/slog"

	"nhatro/internal/memory"
	"nhatro/internal/remote"
	"nhatro/internal/storage"
)

// Factory creates backends based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the backend named by the config.
func (f *Factory) Create(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case RemoteBackend:
		client := remote.NewClient(cfg.APIBaseURL, cfg.APITimeout)
		f.logger.Info("Initialized remote API backend",
			"base_url", cfg.APIBaseURL,
			"timeout", cfg.APITimeout)
		return &Result{Backend: client}, nil

	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Backend: repo, Cleanup: repo.Close}, nil

	case MemoryBackend:
		store := memory.NewStore()
		f.logger.Info("Initialized memory backend")
		return &Result{Backend: store}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
