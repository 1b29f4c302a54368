package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-batch/internal/validators"
	"github.com/MKhiriev/go-sync-batch/models"
)

// SyncValidationService checks the structure of incoming requests before
// they reach the orchestrator. Validation failures are client faults.
type SyncValidationService struct {
	inner     SyncService
	validator validators.Validator
}

// NewSyncValidationService returns a wrapper that accepts at most
// maxEntities entities per upload; zero means unlimited.
func NewSyncValidationService(maxEntities int) SyncServiceWrapper {
	return &SyncValidationService{
		validator: validators.NewSyncValidator(maxEntities),
	}
}

func (v *SyncValidationService) BeginOrContinueDownload(ctx context.Context, scopeName string, token *models.ContinuationToken) (models.Batch, models.ContinuationToken, error) {
	if err := v.validator.Validate(ctx, scopeName); err != nil {
		return models.Batch{}, models.ContinuationToken{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.BeginOrContinueDownload(ctx, scopeName, token)
}

func (v *SyncValidationService) UploadChanges(ctx context.Context, scopeName string, entities []models.ChangeRecord, policy *models.Resolution) (models.UploadResult, error) {
	if err := v.validator.Validate(ctx, scopeName); err != nil {
		return models.UploadResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	// entity list, payloads, unique keys, policy
	if err := v.validator.Validate(ctx, models.UploadRequest{Policy: policy, Entities: entities}); err != nil {
		return models.UploadResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UploadChanges(ctx, scopeName, entities, policy)
}

func (v *SyncValidationService) Wrap(wrapped SyncService) SyncService {
	v.inner = wrapped
	return v
}
