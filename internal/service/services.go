package service

import (
	"fmt"

	"github.com/MKhiriev/go-sync-batch/internal/config"
	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/internal/store"
	"github.com/MKhiriev/go-sync-batch/internal/utils"
)

type Services struct {
	Scopes      *ScopeRegistry
	SyncService SyncService
}

// NewServices registers the configured scopes and builds the orchestrator
// over the given storages, wrapped with request validation.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, interceptors map[string]MergeInterceptor, logger *logger.Logger) (*Services, error) {
	scopes := NewScopeRegistry()
	if err := scopes.RegisterFromConfig(cfg.Sync, interceptors); err != nil {
		return nil, fmt.Errorf("error registering scopes: %w", err)
	}

	syncService := NewSyncService(SyncDeps{
		Scopes:     scopes,
		Enumerator: storages.Entities,
		Applier:    storages.Entities,
		Batches:    storages.Batches,
		IDs:        utils.NewUUIDGenerator(),
	}, cfg.Sync.MaxBatchSize, logger)

	return &Services{
		Scopes:      scopes,
		SyncService: NewSyncValidationService(cfg.Sync.MaxUploadEntities).Wrap(syncService),
	}, nil
}
