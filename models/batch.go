// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/google/uuid"

// changeRecordOverhead approximates the framing cost of one record inside a
// serialized batch (field names, quoting, separators).
const changeRecordOverhead = 32

// ChangeRecord is a single entity change travelling through the batching
// pipeline. The payload is produced and consumed by the entity serializer;
// this module never looks inside it.
type ChangeRecord struct {
	// Key is the structured key string of the entity, e.g. `(ID=42,Region='eu')`.
	Key string `json:"key"`

	// Payload is the serialized entity.
	Payload []byte `json:"payload,omitempty"`

	// Tombstone marks the record as a deletion.
	Tombstone bool `json:"tombstone,omitempty"`

	// ETag is the concurrency token of the version the record was based on.
	// Empty for inserts.
	ETag string `json:"etag,omitempty"`
}

// Size returns the serialized footprint of the record used when
// partitioning a change set into batches.
func (c ChangeRecord) Size() int {
	return len(c.Key) + len(c.Payload) + len(c.ETag) + changeRecordOverhead
}

// ChangeSet is the result of one change enumeration: the changes the client
// has not seen yet and the knowledge watermark that covers them.
type ChangeSet struct {
	Changes   []ChangeRecord
	Knowledge []byte
}

// BatchHeader is the manifest of one logical transfer. BatchFileNames keeps
// the delivery order of the batches that belong to BatchCode.
type BatchHeader struct {
	BatchCode      uuid.UUID   `json:"batch_code"`
	BatchFileNames []uuid.UUID `json:"batch_file_names"`
}

// Contains reports whether fileName is advertised by the header.
func (h BatchHeader) Contains(fileName uuid.UUID) bool {
	for _, name := range h.BatchFileNames {
		if name == fileName {
			return true
		}
	}
	return false
}

// Batch is one independently retrievable partition of a change set.
type Batch struct {
	// FileName is the sequence id of the batch; it equals the entry
	// for this batch in BatchHeader.BatchFileNames.
	FileName uuid.UUID `json:"file_name"`

	// Changes holds the records of this partition in delivery order.
	Changes []ChangeRecord `json:"changes"`

	// IsLastBatch is set on the final partition only.
	IsLastBatch bool `json:"is_last_batch"`

	// Next is the FileName of the following batch; invalid on the last one.
	Next uuid.NullUUID `json:"next_file_name"`

	// Knowledge is the watermark covering the whole transfer. It is kept
	// with the last batch only and never sent to clients.
	Knowledge []byte `json:"knowledge,omitempty"`
}
