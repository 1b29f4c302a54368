// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package keycodec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSchema is returned by ParseSchema.
var ErrInvalidSchema = errors.New("invalid key schema")

// ParseSchema reads a key schema written as `Name=type;Name=type`, e.g.
// `OrderID=int64;Region=string`. Type names are those of SemanticType.String.
func ParseSchema(text string) (Schema, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidSchema)
	}

	var schema Schema
	seen := make(map[string]bool)
	for _, part := range strings.Split(text, ";") {
		name, typeName, ok := strings.Cut(strings.TrimSpace(part), "=")
		name = strings.TrimSpace(name)
		if !ok || !isIdentifier(name) {
			return nil, fmt.Errorf("%w: bad field %q", ErrInvalidSchema, part)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, name)
		}
		seen[name] = true

		t, err := ParseSemanticType(strings.TrimSpace(typeName))
		if err != nil {
			return nil, fmt.Errorf("%w: field %s: %w", ErrInvalidSchema, name, err)
		}
		schema = append(schema, KeyField{Name: name, Type: t})
	}
	return schema, nil
}

// String renders the schema in the form accepted by ParseSchema.
func (s Schema) String() string {
	parts := make([]string, len(s))
	for i, f := range s {
		parts[i] = f.Name + "=" + f.Type.String()
	}
	return strings.Join(parts, ";")
}
