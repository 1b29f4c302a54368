// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/models"
	"github.com/google/uuid"
)

const (
	headerKey      = "header.json"
	batchKeySuffix = ".batch"
)

type batchStore struct {
	blobs  BlobStore
	logger *logger.Logger
}

// NewBatchStore returns a BatchStore that keeps every transfer in its own
// namespace of blobs.
func NewBatchStore(blobs BlobStore, log *logger.Logger) BatchStore {
	return &batchStore{blobs: blobs, logger: log}
}

func batchKey(fileName uuid.UUID) string {
	return fileName.String() + batchKeySuffix
}

func (s *batchStore) SaveBatches(ctx context.Context, batches []models.Batch, header models.BatchHeader) error {
	namespace := header.BatchCode.String()
	log := s.logger.With().Str("func", "batchStore.SaveBatches").Str("batch_code", namespace).Logger()

	if err := s.blobs.EnsureNamespace(ctx, namespace); err != nil {
		log.Err(err).Msg("error creating batch namespace")
		return err
	}

	for _, batch := range batches {
		data, err := json.Marshal(batch)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncodingBatch, err)
		}
		if err = s.blobs.Put(ctx, namespace, batchKey(batch.FileName), data); err != nil {
			log.Err(err).Str("file_name", batch.FileName.String()).Msg("error saving batch")
			return err
		}
	}

	// header goes last: a reader that finds it can rely on every batch
	data, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingBatch, err)
	}
	if err = s.blobs.Put(ctx, namespace, headerKey, data); err != nil {
		log.Err(err).Msg("error saving batch header")
		return err
	}

	log.Debug().Int("batches", len(batches)).Msg("batches saved")
	return nil
}

func (s *batchStore) GetNextBatch(ctx context.Context, batchCode, fileName uuid.UUID) (models.Batch, error) {
	namespace := batchCode.String()
	log := s.logger.With().Str("func", "batchStore.GetNextBatch").Str("batch_code", namespace).
		Str("file_name", fileName.String()).Logger()

	exists, err := s.blobs.NamespaceExists(ctx, namespace)
	if err != nil {
		log.Err(err).Msg("error checking batch namespace")
		return models.Batch{}, err
	}
	if !exists {
		return models.Batch{}, fmt.Errorf("%w: unknown batch code %s", ErrBatchNotFound, namespace)
	}

	header, err := s.readHeader(ctx, namespace)
	if err != nil {
		return models.Batch{}, err
	}
	if !header.Contains(fileName) {
		return models.Batch{}, fmt.Errorf("%w: batch %s is not part of %s", ErrBatchNotFound, fileName, namespace)
	}

	raw, err := s.blobs.Get(ctx, namespace, batchKey(fileName))
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return models.Batch{}, fmt.Errorf("%w: batch %s of %s: %w", ErrBatchNotFound, fileName, namespace, err)
		}
		log.Err(err).Msg("error reading batch")
		return models.Batch{}, err
	}

	var batch models.Batch
	if err = json.Unmarshal(raw, &batch); err != nil {
		log.Err(err).Msg("error decoding batch")
		return models.Batch{}, fmt.Errorf("%w: %w", ErrDecodingBatch, err)
	}

	if batch.IsLastBatch {
		s.cleanup(ctx, namespace, header)
	}

	return batch, nil
}

func (s *batchStore) readHeader(ctx context.Context, namespace string) (models.BatchHeader, error) {
	raw, err := s.blobs.Get(ctx, namespace, headerKey)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return models.BatchHeader{}, fmt.Errorf("%w: no header for %s", ErrBatchNotFound, namespace)
		}
		return models.BatchHeader{}, err
	}

	var header models.BatchHeader
	if err = json.Unmarshal(raw, &header); err != nil {
		return models.BatchHeader{}, fmt.Errorf("%w: header: %w", ErrDecodingBatch, err)
	}
	return header, nil
}

// cleanup removes a finished transfer. Failures are logged and dropped: the
// batch has already been read and the janitor reclaims leftovers.
func (s *batchStore) cleanup(ctx context.Context, namespace string, header models.BatchHeader) {
	log := s.logger.With().Str("func", "batchStore.cleanup").Str("batch_code", namespace).Logger()

	for _, name := range header.BatchFileNames {
		if err := s.blobs.Delete(ctx, namespace, batchKey(name)); err != nil {
			log.Warn().Err(err).Str("file_name", name.String()).Msg("error removing batch")
		}
	}
	if err := s.blobs.Delete(ctx, namespace, headerKey); err != nil {
		log.Warn().Err(err).Msg("error removing batch header")
	}

	removed, err := s.blobs.RemoveNamespaceIfEmpty(ctx, namespace)
	if err != nil {
		log.Warn().Err(err).Msg("error removing batch namespace")
		return
	}
	if !removed {
		log.Warn().Msg("batch namespace is not empty after cleanup")
		return
	}
	log.Debug().Msg("transfer cleaned up")
}
