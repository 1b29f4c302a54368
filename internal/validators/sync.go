package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-sync-batch/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldEntities targets the entity list of an upload request.
	FieldEntities = "entities"

	// FieldPayload requires a payload on every non-tombstone entity.
	FieldPayload = "payload"

	// FieldUniqueKeys rejects requests naming the same key twice; results
	// are matched to request entities by key.
	FieldUniqueKeys = "unique_keys"

	// FieldPolicy targets the optional resolution override.
	FieldPolicy = "policy"

	// FieldSource targets the mutually exclusive sync blob and client
	// knowledge of a download request.
	FieldSource = "source"

	// FieldScopeName targets a scope name.
	FieldScopeName = "scope_name"
)

// SyncValidator implements Validator for the sync request models:
// UploadRequest, DownloadRequest and scope names.
type SyncValidator struct {
	maxEntities int
}

// NewSyncValidator returns a validator that accepts at most maxEntities
// entities per upload; zero means unlimited.
func NewSyncValidator(maxEntities int) Validator {
	return &SyncValidator{maxEntities: maxEntities}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted. Optional fields restrict validation to the named
// subset.
func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UploadRequest:
		return v.validateUploadRequest(value, fields...)
	case *models.UploadRequest:
		return v.validateUploadRequest(*value, fields...)

	case models.DownloadRequest:
		return v.validateDownloadRequest(value, fields...)
	case *models.DownloadRequest:
		return v.validateDownloadRequest(*value, fields...)

	case string:
		return v.validateScopeName(value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateUploadRequest validates an UploadRequest.
//
// Default validated fields: entities, payload, unique keys, policy.
func (v *SyncValidator) validateUploadRequest(req models.UploadRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntities, FieldPayload, FieldUniqueKeys, FieldPolicy}
	}

	for _, f := range fields {
		switch f {
		case FieldEntities:
			if len(req.Entities) == 0 {
				return ErrNoEntities
			}
			if v.maxEntities > 0 && len(req.Entities) > v.maxEntities {
				return fmt.Errorf("%w: %d > %d", ErrTooManyEntities, len(req.Entities), v.maxEntities)
			}
		case FieldPayload:
			for i, e := range req.Entities {
				if !e.Tombstone && len(e.Payload) == 0 {
					return fmt.Errorf("%w: entity %d (%q)", ErrEmptyPayload, i, e.Key)
				}
			}
		case FieldUniqueKeys:
			seen := make(map[string]bool, len(req.Entities))
			for _, e := range req.Entities {
				if e.Key == "" {
					continue
				}
				if seen[e.Key] {
					return fmt.Errorf("%w: %q", ErrDuplicateKey, e.Key)
				}
				seen[e.Key] = true
			}
		case FieldPolicy:
			if req.Policy != nil && !req.Policy.Valid() {
				return ErrInvalidPolicy
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateDownloadRequest validates a DownloadRequest.
//
// Default validated fields: source.
func (v *SyncValidator) validateDownloadRequest(req models.DownloadRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSource}
	}

	for _, f := range fields {
		switch f {
		case FieldSource:
			if req.SyncBlob != "" && len(req.ClientKnowledge) > 0 {
				return ErrConflictingSources
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncValidator) validateScopeName(name string, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldScopeName}
	}

	for _, f := range fields {
		switch f {
		case FieldScopeName:
			if name == "" || strings.ContainsAny(name, `/\ `) {
				return fmt.Errorf("%w: %q", ErrInvalidScopeName, name)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
