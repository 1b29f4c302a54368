// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package blob encodes and decodes the sync blob: the opaque continuation
// token a client sends back to resume a multi-batch transfer.
//
// The encoding is a fixed protobuf wire layout without a schema version:
//
//	1  client_knowledge  bytes   required
//	2  client_scope_name string  required
//	3  is_last_batch     varint  optional, 0 or 1
//	4  batch_code        bytes   optional, 16 bytes
//	5  next_batch        bytes   optional, 16 bytes
//
// Fields appear at most once and in ascending order. Decode rejects anything
// else; it never substitutes a default for a field that is present but corrupt.
package blob

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/MKhiriev/go-sync-batch/models"
)

const (
	fieldClientKnowledge protowire.Number = iota + 1
	fieldClientScopeName
	fieldIsLastBatch
	fieldBatchCode
	fieldNextBatch
)

// Encode serializes t. Absent optional fields are omitted entirely.
func Encode(t models.ContinuationToken) []byte {
	b := make([]byte, 0, 64+len(t.ClientKnowledge)+len(t.ClientScopeName))

	b = protowire.AppendTag(b, fieldClientKnowledge, protowire.BytesType)
	b = protowire.AppendBytes(b, t.ClientKnowledge)

	b = protowire.AppendTag(b, fieldClientScopeName, protowire.BytesType)
	b = protowire.AppendString(b, t.ClientScopeName)

	if t.IsLastBatch {
		b = protowire.AppendTag(b, fieldIsLastBatch, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	if t.BatchCode.Valid {
		b = protowire.AppendTag(b, fieldBatchCode, protowire.BytesType)
		b = protowire.AppendBytes(b, t.BatchCode.UUID[:])
	}
	if t.NextBatch.Valid {
		b = protowire.AppendTag(b, fieldNextBatch, protowire.BytesType)
		b = protowire.AppendBytes(b, t.NextBatch.UUID[:])
	}

	return b
}

// Decode parses a blob produced by Encode. Every failure wraps
// ErrMalformedBlob.
func Decode(data []byte) (models.ContinuationToken, error) {
	var t models.ContinuationToken

	if len(data) == 0 {
		return t, ErrEmptyBlob
	}

	var (
		last      protowire.Number
		knowledge bool
		scope     bool
	)
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return models.ContinuationToken{}, fieldError(0, protowire.ParseError(n))
		}
		if num <= last {
			return models.ContinuationToken{}, fieldError(num, ErrFieldOrder)
		}
		data = data[n:]

		var err error
		switch num {
		case fieldClientKnowledge:
			var v []byte
			v, n, err = consumeBytes(data, typ)
			t.ClientKnowledge = append(make([]byte, 0, len(v)), v...)
			knowledge = true
		case fieldClientScopeName:
			var v []byte
			v, n, err = consumeBytes(data, typ)
			if err == nil && !utf8.Valid(v) {
				err = ErrInvalidScopeName
			}
			t.ClientScopeName = string(v)
			scope = true
		case fieldIsLastBatch:
			t.IsLastBatch, n, err = consumeBool(data, typ)
		case fieldBatchCode:
			t.BatchCode, n, err = consumeUUID(data, typ)
		case fieldNextBatch:
			t.NextBatch, n, err = consumeUUID(data, typ)
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return models.ContinuationToken{}, fieldError(num, err)
		}

		data = data[n:]
		last = num
	}

	if !knowledge {
		return models.ContinuationToken{}, fieldError(fieldClientKnowledge, ErrMissingField)
	}
	if !scope {
		return models.ContinuationToken{}, fieldError(fieldClientScopeName, ErrMissingField)
	}
	return t, nil
}

// EncodeToString returns the base64url form used in headers and JSON bodies.
func EncodeToString(t models.ContinuationToken) string {
	return base64.RawURLEncoding.EncodeToString(Encode(t))
}

// DecodeString reverses EncodeToString.
func DecodeString(s string) (models.ContinuationToken, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return models.ContinuationToken{}, fmt.Errorf("%w: %w", ErrMalformedBlob, err)
	}
	return Decode(raw)
}

func consumeBytes(data []byte, typ protowire.Type) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, ErrWireType
	}
	v, n := protowire.ConsumeBytes(data)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeBool(data []byte, typ protowire.Type) (bool, int, error) {
	if typ != protowire.VarintType {
		return false, 0, ErrWireType
	}
	v, n := protowire.ConsumeVarint(data)
	if n < 0 {
		return false, 0, protowire.ParseError(n)
	}
	if v > 1 {
		return false, 0, ErrInvalidBool
	}
	return protowire.DecodeBool(v), n, nil
}

func consumeUUID(data []byte, typ protowire.Type) (uuid.NullUUID, int, error) {
	v, n, err := consumeBytes(data, typ)
	if err != nil {
		return uuid.NullUUID{}, 0, err
	}
	id, err := uuid.FromBytes(v)
	if err != nil {
		return uuid.NullUUID{}, 0, ErrInvalidUUID
	}
	return uuid.NullUUID{UUID: id, Valid: true}, n, nil
}
