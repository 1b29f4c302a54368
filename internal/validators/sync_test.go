// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-batch/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func entity(key, payload string) models.ChangeRecord {
	return models.ChangeRecord{Key: key, Payload: []byte(payload)}
}

func policyPtr(r models.Resolution) *models.Resolution { return &r }

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewSyncValidator(0)
	ctx := context.Background()

	req := models.UploadRequest{Entities: []models.ChangeRecord{entity("(ID=1)", "x")}}
	assert.NoError(t, v.Validate(ctx, req))
	assert.NoError(t, v.Validate(ctx, &req))
	assert.NoError(t, v.Validate(ctx, models.DownloadRequest{}))
	assert.NoError(t, v.Validate(ctx, &models.DownloadRequest{SyncBlob: "abc"}))
	assert.NoError(t, v.Validate(ctx, "orders"))

	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
}

// ---------------------------------------------------------------------------
// UploadRequest
// ---------------------------------------------------------------------------

func TestValidate_UploadRequest(t *testing.T) {
	tests := []struct {
		name        string
		maxEntities int
		req         models.UploadRequest
		fields      []string
		wantErr     error
	}{
		{
			name: "valid",
			req: models.UploadRequest{
				Policy:   policyPtr(models.ClientWins),
				Entities: []models.ChangeRecord{entity("(ID=1)", "a"), {Key: "(ID=2)", Tombstone: true}, entity("", "new")},
			},
		},
		{
			name:    "no entities",
			req:     models.UploadRequest{},
			wantErr: ErrNoEntities,
		},
		{
			name:        "too many entities",
			maxEntities: 2,
			req:         models.UploadRequest{Entities: []models.ChangeRecord{entity("(ID=1)", "a"), entity("(ID=2)", "b"), entity("(ID=3)", "c")}},
			wantErr:     ErrTooManyEntities,
		},
		{
			name:    "missing payload",
			req:     models.UploadRequest{Entities: []models.ChangeRecord{{Key: "(ID=1)"}}},
			wantErr: ErrEmptyPayload,
		},
		{
			name:    "duplicate key",
			req:     models.UploadRequest{Entities: []models.ChangeRecord{entity("(ID=1)", "a"), entity("(ID=1)", "b")}},
			wantErr: ErrDuplicateKey,
		},
		{
			name:    "several inserts without key are fine",
			req:     models.UploadRequest{Entities: []models.ChangeRecord{entity("", "a"), entity("", "b")}},
			wantErr: nil,
		},
		{
			name:    "invalid policy",
			req:     models.UploadRequest{Policy: policyPtr(models.Resolution(9)), Entities: []models.ChangeRecord{entity("(ID=1)", "a")}},
			wantErr: ErrInvalidPolicy,
		},
		{
			name:    "scoped to policy ignores empty list",
			req:     models.UploadRequest{},
			fields:  []string{FieldPolicy},
			wantErr: nil,
		},
		{
			name:    "unknown field",
			req:     models.UploadRequest{},
			fields:  []string{"version"},
			wantErr: ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewSyncValidator(tt.maxEntities)

			err := v.Validate(context.Background(), tt.req, tt.fields...)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// DownloadRequest and scope names
// ---------------------------------------------------------------------------

func TestValidate_DownloadRequest_ConflictingSources(t *testing.T) {
	v := NewSyncValidator(0)
	err := v.Validate(context.Background(), models.DownloadRequest{SyncBlob: "abc", ClientKnowledge: []byte{1}})
	require.ErrorIs(t, err, ErrConflictingSources)
}

func TestValidate_ScopeName(t *testing.T) {
	v := NewSyncValidator(0)
	for _, name := range []string{"", "a/b", `a\b`, "with space"} {
		assert.ErrorIs(t, v.Validate(context.Background(), name), ErrInvalidScopeName, name)
	}
}
