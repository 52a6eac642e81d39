package savedjobs

import (
	"context"
	"log/slog"

	"github.com/maauso/jobfinder-api/internal/docstore"
)

// DefaultCollectionKey is the store key holding the saved jobs array.
const DefaultCollectionKey = "savedJobs"

// Service saves, lists and clears the saved jobs collection.
type Service struct {
	store  *docstore.Store
	key    string
	logger *slog.Logger
}

// Option is a function that configures a Service.
type Option func(*Service)

// WithCollectionKey stores the collection under key instead of DefaultCollectionKey.
func WithCollectionKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.key = key
		}
	}
}

// NewService creates a Service backed by store.
func NewService(store *docstore.Store, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:  store,
		key:    DefaultCollectionKey,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CollectionKey returns the store key in use.
func (s *Service) CollectionKey() string {
	return s.key
}

// Save appends rec to the collection. Saving the same job twice keeps both
// entries.
func (s *Service) Save(ctx context.Context, rec JobRecord) error {
	if err := docstore.AppendToCollection(ctx, s.store, s.key, rec); err != nil {
		s.logger.Error("failed to save job",
			slog.String("job_id", rec.JobID.String()),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("job saved",
		slog.String("job_id", rec.JobID.String()),
		slog.String("collection", s.key),
	)
	return nil
}

// SaveOrUpdate replaces the first saved entry with the same job_id, or
// appends rec if the job was not saved yet.
func (s *Service) SaveOrUpdate(ctx context.Context, rec JobRecord) (bool, error) {
	if rec.JobID.IsZero() {
		return false, ErrJobIDRequired
	}

	replaced, err := docstore.UpsertCollection(ctx, s.store, s.key, rec, func(existing, candidate JobRecord) bool {
		return existing.JobID.Equal(candidate.JobID)
	})
	if err != nil {
		s.logger.Error("failed to save or update job",
			slog.String("job_id", rec.JobID.String()),
			slog.String("error", err.Error()),
		)
		return false, err
	}

	s.logger.Info("job saved",
		slog.String("job_id", rec.JobID.String()),
		slog.Bool("replaced", replaced),
	)
	return replaced, nil
}

// List returns the saved jobs in the order they were saved.
func (s *Service) List(ctx context.Context) ([]JobRecord, error) {
	return docstore.ListCollection[JobRecord](ctx, s.store, s.key)
}

// Clear removes every saved job.
func (s *Service) Clear(ctx context.Context) error {
	if err := docstore.ClearCollection(ctx, s.store, s.key); err != nil {
		s.logger.Error("failed to clear saved jobs",
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("saved jobs cleared", slog.String("collection", s.key))
	return nil
}
