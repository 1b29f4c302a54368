package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestChangeRecord_Size(t *testing.T) {
	r := ChangeRecord{Key: "(ID=1)", Payload: []byte("0123456789"), ETag: "42"}
	assert.Equal(t, 6+10+2+changeRecordOverhead, r.Size())
	assert.Equal(t, changeRecordOverhead, ChangeRecord{}.Size())
}

func TestBatchHeader_Contains(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	h := BatchHeader{BatchCode: uuid.New(), BatchFileNames: []uuid.UUID{a}}

	assert.True(t, h.Contains(a))
	assert.False(t, h.Contains(b))
	assert.False(t, BatchHeader{}.Contains(a))
}

func TestContinuationToken_Equal(t *testing.T) {
	code := uuid.NullUUID{UUID: uuid.New(), Valid: true}
	base := ContinuationToken{ClientScopeName: "orders", BatchCode: code}

	assert.True(t, base.Equal(ContinuationToken{ClientScopeName: "orders", BatchCode: code, ClientKnowledge: []byte{}}))
	assert.True(t, base.HasTransfer())
	assert.False(t, ContinuationToken{}.HasTransfer())

	other := base
	other.IsLastBatch = true
	assert.False(t, base.Equal(other))

	other = base
	other.NextBatch = uuid.NullUUID{UUID: uuid.New(), Valid: true}
	assert.False(t, base.Equal(other))
}
