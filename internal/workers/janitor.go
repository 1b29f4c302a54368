// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-batch/internal/config"
	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/internal/store"
)

// NamespaceJanitor periodically removes transfer namespaces older than the
// configured TTL. A client that stops downloading mid-transfer leaves its
// batches behind; nothing else ever deletes them.
type NamespaceJanitor struct {
	blobs    store.BlobStore
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

func NewNamespaceJanitor(blobs store.BlobStore, cfg config.Workers, logger *logger.Logger) *NamespaceJanitor {
	return &NamespaceJanitor{
		blobs:    blobs,
		interval: cfg.JanitorInterval,
		ttl:      cfg.NamespaceTTL,
		now:      time.Now,
		logger:   logger,
	}
}

// Run sweeps once per interval until ctx is canceled. A non-positive
// interval disables the janitor.
func (j *NamespaceJanitor) Run(ctx context.Context) error {
	if j.interval <= 0 {
		j.logger.Info().Str("func", "NamespaceJanitor.Run").Msg("namespace janitor disabled")
		return nil
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := j.Sweep(ctx); err != nil && !errors.Is(err, context.Canceled) {
				j.logger.Err(err).Str("func", "NamespaceJanitor.Run").Msg("sweep failed")
			}
		}
	}
}

// Sweep removes every namespace created more than ttl ago and returns how
// many it removed. A namespace that fails to go away is logged and left for
// the next sweep.
func (j *NamespaceJanitor) Sweep(ctx context.Context) (int, error) {
	namespaces, err := j.blobs.ListNamespaces(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing namespaces: %w", err)
	}

	cutoff := j.now().Add(-j.ttl)
	removed := 0
	for _, ns := range namespaces {
		if !ns.CreatedAt.Before(cutoff) {
			continue
		}
		if err = j.blobs.RemoveNamespace(ctx, ns.Name); err != nil {
			if ctx.Err() != nil {
				return removed, ctx.Err()
			}
			j.logger.Warn().Err(err).Str("func", "NamespaceJanitor.Sweep").
				Str("namespace", ns.Name).Msg("error removing abandoned transfer")
			continue
		}
		removed++
	}

	if removed > 0 {
		j.logger.Info().Str("func", "NamespaceJanitor.Sweep").Int("removed", removed).Msg("abandoned transfers removed")
	}
	return removed, nil
}
