package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-batch/internal/config"
	"github.com/MKhiriev/go-sync-batch/internal/logger"
)

// Storages bundles the stores the server runs on.
type Storages struct {
	Blobs    BlobStore
	Batches  BatchStore
	Entities *MemoryEntityStore

	db *DB
}

// NewStorages opens the blob store backend named by cfg.Backend, migrating
// the schema of SQL backends, and layers the batch store on top of it.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		blobs BlobStore
		db    *DB
		err   error
	)

	switch cfg.Backend {
	case config.BackendMemory:
		blobs = NewMemoryBlobStore()
	case config.BackendFS:
		if blobs, err = NewFileBlobStore(cfg.Files.BatchDir); err != nil {
			log.Err(err).Str("func", "NewStorages").Str("dir", cfg.Files.BatchDir).Msg("error opening batch directory")
			return nil, err
		}
	case config.BackendSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	case config.BackendPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	if db != nil {
		if err = db.Migrate(); err != nil {
			log.Err(err).Str("func", "NewStorages").Msg("error migrating database")
			_ = db.Close()
			return nil, err
		}
		blobs = NewSQLBlobStore(db)
	}

	log.Info().Str("func", "NewStorages").Str("backend", cfg.Backend).Msg("storage ready")
	return &Storages{
		Blobs:    blobs,
		Batches:  NewBatchStore(blobs, log),
		Entities: NewMemoryEntityStore(),
		db:       db,
	}, nil
}

// Close releases the database connection of SQL backends.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
