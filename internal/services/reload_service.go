package services

import (
	"context"
	"fmt"
	"log/slog"

	"txdash/internal/amqp"
	"txdash/internal/core"
	"txdash/internal/store"
)

// SeedFetcher downloads the full external record set.
type SeedFetcher interface {
	Fetch(ctx context.Context) ([]core.Transaction, error)
	URL() string
}

// ReloadService replaces the stored record set from the external seed
// source and announces the reload. Reloads are not safe to interleave
// with each other; callers serialize them (the HTTP handler and the
// reseed worker each run one at a time).
type ReloadService struct {
	fetcher    SeedFetcher
	store      store.Replacer
	amqpClient *amqp.Client
}

func NewReloadService(fetcher SeedFetcher, s store.Replacer, amqpClient *amqp.Client) *ReloadService {
	return &ReloadService{
		fetcher:    fetcher,
		store:      s,
		amqpClient: amqpClient,
	}
}

// Reload fetches the seed data and atomically replaces the record set,
// returning the new record count. A failed AMQP publish does not fail
// the reload; the local replace already succeeded.
func (s *ReloadService) Reload(ctx context.Context) (int, error) {
	records, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch seed data: %w", err)
	}

	if err := s.store.ReplaceAll(ctx, records); err != nil {
		return 0, fmt.Errorf("replace record set: %w", err)
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.PublishDatasetReloaded(ctx, len(records), s.fetcher.URL()); err != nil {
			slog.ErrorContext(ctx, "Failed to publish reload event",
				"error", err, "count", len(records))
		}
	}

	slog.InfoContext(ctx, "Dataset reloaded",
		"count", len(records),
		"source", s.fetcher.URL())
	return len(records), nil
}
