// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ConflictKind discriminates the variants of Conflict on the wire.
type ConflictKind string

const (
	ConflictKindLive  ConflictKind = "conflict"
	ConflictKindSync  ConflictKind = "sync_conflict"
	ConflictKindError ConflictKind = "sync_error"
)

// ErrUnknownConflictKind is returned when a serialized conflict carries a
// kind this package does not know.
var ErrUnknownConflictKind = errors.New("unknown conflict kind")

// Conflict is a per-entity outcome of an upload that the client has to learn
// about. It is a closed sum type: the only implementations are
// LiveConflict, SyncConflict and SyncError.
type Conflict interface {
	// Kind returns the variant tag.
	Kind() ConflictKind

	// LiveEntity returns the authoritative server-side version, if any.
	LiveEntity() *ChangeRecord

	// RequestKey returns the key of the request entity this record refers to.
	RequestKey() string

	sealed()
}

// LiveConflict carries only the live server entity.
type LiveConflict struct {
	Live ChangeRecord `json:"live_entity"`
}

// SyncConflict records a resolved concurrency conflict.
type SyncConflict struct {
	// Live is the entity that is stored after resolution.
	Live ChangeRecord `json:"live_entity"`

	// Losing is the version that lost resolution.
	Losing ChangeRecord `json:"losing_entity"`

	Resolution Resolution `json:"resolution"`
}

// SyncError records a backend failure while applying a client entity.
type SyncError struct {
	// Live is the current server version, nil when the store has none.
	Live *ChangeRecord `json:"live_entity,omitempty"`

	// ErrorEntity is a copy of the client entity that failed.
	ErrorEntity ChangeRecord `json:"error_entity"`

	Description string `json:"description"`
}

func (c LiveConflict) Kind() ConflictKind        { return ConflictKindLive }
func (c LiveConflict) LiveEntity() *ChangeRecord { return &c.Live }
func (c LiveConflict) RequestKey() string        { return c.Live.Key }
func (LiveConflict) sealed()                     {}

func (c SyncConflict) Kind() ConflictKind        { return ConflictKindSync }
func (c SyncConflict) LiveEntity() *ChangeRecord { return &c.Live }
func (SyncConflict) sealed()                     {}

// RequestKey returns the key of the client entity: the new live entity when
// the client won, the losing entity otherwise.
func (c SyncConflict) RequestKey() string {
	if c.Resolution == ClientWins {
		return c.Live.Key
	}
	return c.Losing.Key
}

func (c SyncError) Kind() ConflictKind        { return ConflictKindError }
func (c SyncError) LiveEntity() *ChangeRecord { return c.Live }
func (c SyncError) RequestKey() string        { return c.ErrorEntity.Key }
func (SyncError) sealed()                     {}

// conflictEnvelope is the tagged wire form of a Conflict.
type conflictEnvelope struct {
	Kind ConflictKind    `json:"kind"`
	Body json.RawMessage `json:"body"`
}

// MarshalConflict encodes c together with its kind tag.
func MarshalConflict(c Conflict) ([]byte, error) {
	body, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", c.Kind(), err)
	}
	return json.Marshal(conflictEnvelope{Kind: c.Kind(), Body: body})
}

// UnmarshalConflict decodes a tagged Conflict produced by MarshalConflict.
func UnmarshalConflict(data []byte) (Conflict, error) {
	var env conflictEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	switch env.Kind {
	case ConflictKindLive:
		var c LiveConflict
		err := json.Unmarshal(env.Body, &c)
		return c, err
	case ConflictKindSync:
		var c SyncConflict
		err := json.Unmarshal(env.Body, &c)
		return c, err
	case ConflictKindError:
		var c SyncError
		err := json.Unmarshal(env.Body, &c)
		return c, err
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConflictKind, env.Kind)
	}
}

// ConflictList is a JSON-friendly slice of conflicts.
type ConflictList []Conflict

// MarshalJSON implements json.Marshaler.
func (l ConflictList) MarshalJSON() ([]byte, error) {
	raw := make([]json.RawMessage, 0, len(l))
	for _, c := range l {
		b, err := MarshalConflict(c)
		if err != nil {
			return nil, err
		}
		raw = append(raw, b)
	}
	return json.Marshal(raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *ConflictList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(ConflictList, 0, len(raw))
	for _, r := range raw {
		c, err := UnmarshalConflict(r)
		if err != nil {
			return err
		}
		out = append(out, c)
	}
	*l = out
	return nil
}
