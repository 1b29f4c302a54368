package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-batch/internal/keycodec"
	"github.com/MKhiriev/go-sync-batch/models"
)

func TestKnowledge(t *testing.T) {
	v, err := DecodeKnowledge(nil)
	require.NoError(t, err)
	assert.Zero(t, v)

	v, err = DecodeKnowledge(EncodeKnowledge(42))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)

	_, err = DecodeKnowledge([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidKnowledge)
}

func TestMemoryEntityStore_EnumerateChanges(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryEntityStore()

	seeded := s.Seed("orders",
		models.ChangeRecord{Key: "(ID=1)", Payload: []byte("a")},
		models.ChangeRecord{Key: "(ID=2)", Payload: []byte("b")},
	)
	s.Seed("customers", models.ChangeRecord{Key: "(ID=9)", Payload: []byte("c")})

	set, err := s.EnumerateChanges(ctx, "orders", nil)
	require.NoError(t, err)
	assert.Equal(t, seeded, set.Changes)
	assert.Equal(t, EncodeKnowledge(3), set.Knowledge)

	// nothing new since the watermark
	set, err = s.EnumerateChanges(ctx, "orders", set.Knowledge)
	require.NoError(t, err)
	assert.Empty(t, set.Changes)
	assert.Equal(t, EncodeKnowledge(3), set.Knowledge)

	// an update moves the row behind the watermark
	updated := s.Seed("orders", models.ChangeRecord{Key: "(ID=1)", Payload: []byte("a2")})
	set, err = s.EnumerateChanges(ctx, "orders", EncodeKnowledge(3))
	require.NoError(t, err)
	assert.Equal(t, updated, set.Changes)

	_, err = s.EnumerateChanges(ctx, "orders", []byte{1})
	assert.ErrorIs(t, err, ErrInvalidKnowledge)
}

func TestMemoryEntityStore_TryApply(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		entity     func(live models.ChangeRecord) models.ChangeRecord
		force      bool
		wantStatus models.ApplyStatus
	}{
		{
			name: "update with current etag",
			entity: func(live models.ChangeRecord) models.ChangeRecord {
				return models.ChangeRecord{Key: live.Key, Payload: []byte("new"), ETag: live.ETag}
			},
			wantStatus: models.Applied,
		},
		{
			name: "stale etag conflicts",
			entity: func(live models.ChangeRecord) models.ChangeRecord {
				return models.ChangeRecord{Key: live.Key, Payload: []byte("new"), ETag: "0"}
			},
			wantStatus: models.ApplyConflict,
		},
		{
			name: "insert over existing key conflicts",
			entity: func(live models.ChangeRecord) models.ChangeRecord {
				return models.ChangeRecord{Key: live.Key, Payload: []byte("new")}
			},
			wantStatus: models.ApplyConflict,
		},
		{
			name: "forced write wins",
			entity: func(live models.ChangeRecord) models.ChangeRecord {
				return models.ChangeRecord{Key: live.Key, Payload: []byte("new"), ETag: "0"}
			},
			force:      true,
			wantStatus: models.Applied,
		},
		{
			name: "edit of unknown entity",
			entity: func(models.ChangeRecord) models.ChangeRecord {
				return models.ChangeRecord{Key: "(ID=404)", Payload: []byte("x"), ETag: "1"}
			},
			wantStatus: models.ApplyStoreError,
		},
		{
			name: "invalid etag",
			entity: func(live models.ChangeRecord) models.ChangeRecord {
				return models.ChangeRecord{Key: live.Key, Payload: []byte("x"), ETag: "W/abc"}
			},
			wantStatus: models.ApplyStoreError,
		},
		{
			name: "delete without key",
			entity: func(models.ChangeRecord) models.ChangeRecord {
				return models.ChangeRecord{Tombstone: true}
			},
			wantStatus: models.ApplyStoreError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemoryEntityStore()
			live := s.Seed("orders", models.ChangeRecord{Key: "(ID=1)", Payload: []byte("old")})[0]

			res, err := s.TryApply(ctx, "orders", tt.entity(live), tt.force)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)

			switch res.Status {
			case models.ApplyConflict:
				require.NotNil(t, res.Live)
				assert.Equal(t, live, *res.Live)
			case models.ApplyStoreError:
				assert.NotEmpty(t, res.Description)
			case models.Applied:
				got, ok := s.Get("orders", live.Key)
				require.True(t, ok)
				assert.Equal(t, []byte("new"), got.Payload)
				assert.NotEqual(t, live.ETag, got.ETag)
			}
		})
	}
}

func TestMemoryEntityStore_InsertIssuesKey(t *testing.T) {
	s := NewMemoryEntityStore()

	res, err := s.TryApply(context.Background(), "orders", models.ChangeRecord{Payload: []byte("x")}, false)
	require.NoError(t, err)
	require.Equal(t, models.Applied, res.Status)

	id, err := keycodec.ParseIdentity(res.ID, keycodec.Schema{{Name: "ID", Type: keycodec.TypeGUID}})
	require.NoError(t, err)
	assert.Len(t, id, 1)

	_, ok := s.Get("orders", res.ID)
	assert.True(t, ok)
}

func TestMemoryEntityStore_TombstoneDropsPayload(t *testing.T) {
	s := NewMemoryEntityStore()
	live := s.Seed("orders", models.ChangeRecord{Key: "(ID=1)", Payload: []byte("old")})[0]

	res, err := s.TryApply(context.Background(), "orders", models.ChangeRecord{Key: live.Key, Payload: []byte("ignored"), Tombstone: true, ETag: live.ETag}, false)
	require.NoError(t, err)
	require.Equal(t, models.Applied, res.Status)

	got, ok := s.Get("orders", live.Key)
	require.True(t, ok)
	assert.True(t, got.Tombstone)
	assert.Nil(t, got.Payload)
}

func TestMemoryEntityStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewMemoryEntityStore()
	_, err := s.EnumerateChanges(ctx, "orders", nil)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.TryApply(ctx, "orders", models.ChangeRecord{Key: "(ID=1)"}, false)
	assert.ErrorIs(t, err, context.Canceled)
}
