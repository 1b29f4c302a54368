// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"

	"github.com/google/uuid"
)

// ContinuationToken is the sync blob exchanged between client and server to
// resume a multi-batch transfer. Callers treat its encoded form as opaque.
type ContinuationToken struct {
	// ClientKnowledge is the requester's change-tracking watermark.
	ClientKnowledge []byte

	// ClientScopeName names the sync scope the transfer belongs to.
	ClientScopeName string

	// IsLastBatch is true once the final batch of a transfer was handed out.
	IsLastBatch bool

	// BatchCode identifies the transfer. Invalid before a transfer starts.
	BatchCode uuid.NullUUID

	// NextBatch is the sequence id of the batch to fetch next. Invalid when
	// no batches remain.
	NextBatch uuid.NullUUID
}

// HasTransfer reports whether the token points into an existing transfer.
func (t ContinuationToken) HasTransfer() bool {
	return t.BatchCode.Valid
}

// Equal compares two tokens field by field. A nil and an empty
// ClientKnowledge are considered equal.
func (t ContinuationToken) Equal(other ContinuationToken) bool {
	return bytes.Equal(t.ClientKnowledge, other.ClientKnowledge) &&
		t.ClientScopeName == other.ClientScopeName &&
		t.IsLastBatch == other.IsLastBatch &&
		t.BatchCode == other.BatchCode &&
		t.NextBatch == other.NextBatch
}
