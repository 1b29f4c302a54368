// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Backend {
	case BackendMemory:
	case BackendFS:
		if cfg.Storage.Files.BatchDir == "" {
			return fmt.Errorf("%w: fs backend needs a batch directory", ErrInvalidStorageConfigs)
		}
	case BackendSQLite, BackendPostgres:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: %s backend needs a DSN", ErrInvalidStorageConfigs, cfg.Storage.Backend)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidStorageConfigs, cfg.Storage.Backend)
	}

	if cfg.Sync.MaxBatchSize <= 0 {
		return fmt.Errorf("%w: max batch size must be positive", ErrInvalidSyncConfigs)
	}
	if cfg.Sync.MaxUploadEntities < 0 {
		return fmt.Errorf("%w: max upload entities must not be negative", ErrInvalidSyncConfigs)
	}
	for _, spec := range cfg.Sync.Scopes {
		if _, err := ParseScopeSpec(spec); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSyncConfigs, err)
		}
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.JanitorInterval > 0 && cfg.Workers.NamespaceTTL <= 0 {
		return fmt.Errorf("%w: janitor needs a namespace TTL", ErrInvalidWorkerConfigs)
	}

	return nil
}
