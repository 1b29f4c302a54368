// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-sync-batch/internal/keycodec"
	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/internal/store"
	"github.com/MKhiriev/go-sync-batch/models"
)

const descTombstoneWithoutID = "tombstone entity has no identifying id"

// syncService is the batching orchestrator. It keeps no state between
// requests: a transfer lives in the batch store under its batch code and
// the client carries the rest in its continuation token.
type syncService struct {
	scopes       *ScopeRegistry
	enumerator   ChangeEnumerator
	applier      EntityApplier
	batches      store.BatchStore
	resolver     *conflictResolver
	ids          IDGenerator
	maxBatchSize int
	logger       *logger.Logger
}

// SyncDeps are the collaborators of the orchestrator.
type SyncDeps struct {
	Scopes     *ScopeRegistry
	Enumerator ChangeEnumerator
	Applier    EntityApplier
	Batches    store.BatchStore
	IDs        IDGenerator
}

// NewSyncService constructs the orchestrator. maxBatchSize applies to scopes
// that do not set their own limit.
func NewSyncService(deps SyncDeps, maxBatchSize int, log *logger.Logger) SyncService {
	return &syncService{
		scopes:       deps.Scopes,
		enumerator:   deps.Enumerator,
		applier:      deps.Applier,
		batches:      deps.Batches,
		resolver:     newConflictResolver(deps.Applier, log),
		ids:          deps.IDs,
		maxBatchSize: maxBatchSize,
		logger:       log,
	}
}

func (s *syncService) BeginOrContinueDownload(ctx context.Context, scopeName string, token *models.ContinuationToken) (models.Batch, models.ContinuationToken, error) {
	sc, err := s.scopes.lookup(scopeName)
	if err != nil {
		return models.Batch{}, models.ContinuationToken{}, err
	}

	if token == nil {
		token = &models.ContinuationToken{ClientScopeName: scopeName}
	}
	if token.ClientScopeName != scopeName {
		return models.Batch{}, models.ContinuationToken{}, fmt.Errorf("%w: token is for scope %q, request for %q",
			ErrInvalidContinuation, token.ClientScopeName, scopeName)
	}

	if token.HasTransfer() {
		return s.continueDownload(ctx, sc, *token)
	}
	return s.beginDownload(ctx, sc, *token)
}

func (s *syncService) beginDownload(ctx context.Context, sc scope, token models.ContinuationToken) (models.Batch, models.ContinuationToken, error) {
	log := logger.FromContext(ctx)

	changeSet, err := s.enumerator.EnumerateChanges(ctx, sc.name, token.ClientKnowledge)
	if err != nil {
		log.Err(err).Str("func", "syncService.beginDownload").Str("scope", sc.name).Msg("error enumerating changes")
		return models.Batch{}, models.ContinuationToken{}, fmt.Errorf("error enumerating changes: %w", err)
	}

	// nothing to send: one empty last batch, nothing to persist
	if len(changeSet.Changes) == 0 {
		batch := models.Batch{FileName: s.ids.New(), Changes: []models.ChangeRecord{}, IsLastBatch: true}
		return batch, models.ContinuationToken{
			ClientKnowledge: changeSet.Knowledge,
			ClientScopeName: sc.name,
			IsLastBatch:     true,
		}, nil
	}

	maxSize := s.maxBatchSize
	if sc.MaxBatchSize > 0 {
		maxSize = sc.MaxBatchSize
	}
	parts, err := partitionChanges(changeSet.Changes, maxSize)
	if err != nil {
		log.Error().Err(err).Str("func", "syncService.beginDownload").Str("scope", sc.name).Msg("cannot partition changes")
		return models.Batch{}, models.ContinuationToken{}, protocolError(err)
	}

	batches := make([]models.Batch, len(parts))
	header := models.BatchHeader{BatchCode: s.ids.New(), BatchFileNames: make([]uuid.UUID, len(parts))}
	for i, part := range parts {
		batches[i] = models.Batch{FileName: s.ids.New(), Changes: part}
		header.BatchFileNames[i] = batches[i].FileName
		if i > 0 {
			batches[i-1].Next = uuid.NullUUID{UUID: batches[i].FileName, Valid: true}
		}
	}
	last := &batches[len(batches)-1]
	last.IsLastBatch = true
	last.Knowledge = changeSet.Knowledge

	if err = s.batches.SaveBatches(ctx, batches, header); err != nil {
		log.Err(err).Str("func", "syncService.beginDownload").Str("scope", sc.name).
			Str("batch_code", header.BatchCode.String()).Msg("error saving batches")
		return models.Batch{}, models.ContinuationToken{}, fmt.Errorf("error saving batches: %w", err)
	}
	log.Info().Str("func", "syncService.beginDownload").Str("scope", sc.name).
		Str("batch_code", header.BatchCode.String()).Int("batches", len(batches)).
		Int("changes", len(changeSet.Changes)).Msg("transfer started")

	// batch #1 goes through the store like every other one, so a
	// single-batch transfer is cleaned up right away
	token.BatchCode = uuid.NullUUID{UUID: header.BatchCode, Valid: true}
	token.NextBatch = uuid.NullUUID{UUID: batches[0].FileName, Valid: true}
	return s.continueDownload(ctx, sc, token)
}

func (s *syncService) continueDownload(ctx context.Context, sc scope, token models.ContinuationToken) (models.Batch, models.ContinuationToken, error) {
	log := logger.FromContext(ctx)

	if !token.NextBatch.Valid {
		if token.IsLastBatch {
			return models.Batch{}, models.ContinuationToken{}, protocolError(
				fmt.Errorf("%w: %s", ErrTransferCompleted, token.BatchCode.UUID))
		}
		return models.Batch{}, models.ContinuationToken{}, fmt.Errorf("%w: batch code without next batch", ErrInvalidContinuation)
	}

	batch, err := s.batches.GetNextBatch(ctx, token.BatchCode.UUID, token.NextBatch.UUID)
	if err != nil {
		if errors.Is(err, store.ErrBatchNotFound) {
			log.Error().Err(err).Str("func", "syncService.continueDownload").Str("scope", sc.name).
				Str("batch_code", token.BatchCode.UUID.String()).Msg("batch not found")
			return models.Batch{}, models.ContinuationToken{}, protocolError(fmt.Errorf("%w: %w", ErrBatchNotFound, err))
		}
		return models.Batch{}, models.ContinuationToken{}, fmt.Errorf("error reading batch: %w", err)
	}

	next := models.ContinuationToken{
		ClientKnowledge: token.ClientKnowledge,
		ClientScopeName: sc.name,
	}
	switch {
	case batch.IsLastBatch:
		next.IsLastBatch = true
		next.ClientKnowledge = batch.Knowledge
	case batch.Next.Valid:
		next.BatchCode = token.BatchCode
		next.NextBatch = batch.Next
	default:
		return models.Batch{}, models.ContinuationToken{}, protocolError(
			fmt.Errorf("%w: batch %s has no successor", ErrCorruptTransfer, batch.FileName))
	}

	batch.Knowledge = nil
	return batch, next, nil
}

func (s *syncService) UploadChanges(ctx context.Context, scopeName string, entities []models.ChangeRecord, policy *models.Resolution) (models.UploadResult, error) {
	log := logger.FromContext(ctx)

	sc, err := s.scopes.lookup(scopeName)
	if err != nil {
		return models.UploadResult{}, err
	}

	effective := sc.Policy
	if policy != nil {
		effective = *policy
	}
	if !effective.Valid() {
		return models.UploadResult{}, fmt.Errorf("%w: %s", ErrUnknownResolutionPolicy, effective)
	}
	if effective == models.Merge && sc.Interceptor == nil {
		return models.UploadResult{}, fmt.Errorf("%w: merge on scope %q", ErrPolicyNotSupported, sc.name)
	}

	requestKeys := make(map[string]bool, len(entities))
	for _, entity := range entities {
		key, err := s.canonicalKey(sc, entity.Key)
		if err != nil {
			return models.UploadResult{}, err
		}
		requestKeys[key] = true
	}

	result := models.UploadResult{
		AppliedIDs: []string{},
		Conflicts:  models.ConflictList{},
		Errors:     models.ConflictList{},
	}
	for _, entity := range entities {
		if entity.Tombstone && entity.Key == "" {
			result.Errors = append(result.Errors, models.SyncError{ErrorEntity: entity, Description: descTombstoneWithoutID})
			continue
		}

		applied, err := s.applier.TryApply(ctx, sc.name, entity, false)
		if err != nil {
			log.Err(err).Str("func", "syncService.UploadChanges").Str("scope", sc.name).Str("key", entity.Key).Msg("error applying entity")
			return models.UploadResult{}, fmt.Errorf("error applying entity %q: %w", entity.Key, err)
		}

		switch applied.Status {
		case models.Applied:
			result.AppliedIDs = append(result.AppliedIDs, applied.ID)

		case models.ApplyConflict:
			if applied.Live == nil {
				return models.UploadResult{}, protocolError(fmt.Errorf("%w: conflict on %q without live entity", ErrCorruptTransfer, entity.Key))
			}
			conflict, err := s.resolver.Resolve(ctx, sc, effective, entity, *applied.Live)
			if err != nil {
				return models.UploadResult{}, fmt.Errorf("error resolving conflict on %q: %w", entity.Key, err)
			}
			if conflict.Kind() == models.ConflictKindError {
				result.Errors = append(result.Errors, conflict)
			} else {
				result.Conflicts = append(result.Conflicts, conflict)
			}

		case models.ApplyStoreError:
			result.Errors = append(result.Errors, models.SyncError{
				Live:        applied.Live,
				ErrorEntity: entity,
				Description: applied.Description,
			})

		default:
			// every entity must end up applied, conflicting or failed
			log.Error().Str("func", "syncService.UploadChanges").Str("scope", sc.name).
				Str("key", entity.Key).Int("status", int(applied.Status)).Msg("unknown apply status")
			return models.UploadResult{}, protocolError(fmt.Errorf("%w: %d for %q", ErrUnexpectedApplyStatus, applied.Status, entity.Key))
		}
	}

	if err = s.verifyReferenced(sc, requestKeys, result); err != nil {
		log.Error().Err(err).Str("func", "syncService.UploadChanges").Str("scope", sc.name).Msg("inconsistent upload result")
		return models.UploadResult{}, err
	}

	log.Debug().Str("func", "syncService.UploadChanges").Str("scope", sc.name).
		Int("applied", len(result.AppliedIDs)).Int("conflicts", len(result.Conflicts)).
		Int("errors", len(result.Errors)).Msg("upload processed")
	return result, nil
}

// canonicalKey validates key against the scope's key schema and returns the
// form used to match results with request entities.
func (s *syncService) canonicalKey(sc scope, key string) (string, error) {
	if key == "" || sc.KeySchema == nil {
		return key, nil
	}
	canonical, err := keycodec.Canonicalize(key, sc.KeySchema)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedEntityKey, err)
	}
	return canonical, nil
}

// verifyReferenced makes sure every conflict and error refers to an entity
// of the request.
func (s *syncService) verifyReferenced(sc scope, requestKeys map[string]bool, result models.UploadResult) error {
	for _, list := range []models.ConflictList{result.Conflicts, result.Errors} {
		for _, c := range list {
			key, err := s.canonicalKey(sc, c.RequestKey())
			if err != nil || !requestKeys[key] {
				return protocolError(fmt.Errorf("%w: %s for %q", ErrUnreferencedConflict, c.Kind(), c.RequestKey()))
			}
		}
	}
	return nil
}
