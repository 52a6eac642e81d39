// Package bootstrap provides dependency initialization for the Job Finder API.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/maauso/jobfinder-api/internal/config"
	"github.com/maauso/jobfinder-api/internal/docstore"
	"github.com/maauso/jobfinder-api/internal/jsearch"
	"github.com/maauso/jobfinder-api/internal/savedjobs"
	"github.com/maauso/jobfinder-api/internal/storage"
)

// Dependencies holds all initialized dependencies for the HTTP server.
type Dependencies struct {
	SavedJobs *savedjobs.Service
	Listings  jsearch.Client

	closers []io.Closer
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize storage
	backend, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if c, ok := backend.(io.Closer); ok {
		deps.closers = append(deps.closers, c)
	}

	deps.SavedJobs = savedjobs.NewService(
		docstore.New(backend),
		logger,
		savedjobs.WithCollectionKey(cfg.CollectionKey),
	)

	// Initialize JSearch client
	listings, err := jsearch.NewClient(cfg.JSearchAPIKey,
		jsearch.WithBaseURL(cfg.JSearchBaseURL),
		jsearch.WithHost(cfg.JSearchHost),
	)
	if err != nil {
		_ = deps.Close()
		return nil, fmt.Errorf("create JSearch client: %w", err)
	}
	deps.Listings = listings

	return deps, nil
}

// Close releases connections held by the storage backend.
func (d *Dependencies) Close() error {
	var errs []error
	for _, c := range d.closers {
		errs = append(errs, c.Close())
	}
	d.closers = nil
	return errors.Join(errs...)
}

// initStorage creates the storage backend selected by STORE_BACKEND.
func initStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Backend, error) {
	switch cfg.Backend() {
	case config.BackendS3:
		s3Store, err := storage.NewS3Storage(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Prefix:          cfg.S3Prefix,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Info("S3 storage configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
			slog.String("prefix", cfg.S3Prefix),
		)
		return s3Store, nil

	case config.BackendRedis:
		redisStore, err := storage.NewRedisStorage(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("create redis storage: %w", err)
		}
		logger.Info("redis storage configured",
			slog.String("prefix", cfg.RedisPrefix),
		)
		return redisStore, nil

	case config.BackendMemory:
		logger.Warn("memory storage configured, saved jobs will not survive a restart")
		return storage.NewMemoryStorage(), nil

	case config.BackendFile:
		localStore, err := storage.NewLocalStorage(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("create local storage: %w", err)
		}
		logger.Info("local storage configured",
			slog.String("data_dir", localStore.DataDir()),
		)
		return localStore, nil
	}

	return nil, fmt.Errorf("%w (got %q)", config.ErrUnknownBackend, cfg.StoreBackend)
}
