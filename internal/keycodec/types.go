// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package keycodec parses and formats the structured primary-key strings
// carried in entity identifiers, e.g. `(OrderID=42L,Region='eu')`.
//
// Literals follow the OData conventions: `guid'...'`, `datetime'...'`,
// `binary'...'` / `X'...'`, numeric suffixes L, f, D and M, and single
// quoted text with doubled inner quotes. Parsing never panics: input comes
// from untrusted requests, so every failure is reported as a result value.
package keycodec

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SemanticType is the target type a key literal is decoded into.
type SemanticType int

const (
	TypeString SemanticType = iota
	TypeBool
	TypeByte
	TypeInt16
	TypeInt32
	TypeInt64
	TypeSingle
	TypeDouble
	TypeDecimal
	TypeGUID
	TypeDateTime
	TypeBinary
	TypeXML
	TypeEnum
)

var typeNames = map[SemanticType]string{
	TypeString:   "string",
	TypeBool:     "bool",
	TypeByte:     "byte",
	TypeInt16:    "int16",
	TypeInt32:    "int32",
	TypeInt64:    "int64",
	TypeSingle:   "single",
	TypeDouble:   "double",
	TypeDecimal:  "decimal",
	TypeGUID:     "guid",
	TypeDateTime: "datetime",
	TypeBinary:   "binary",
	TypeXML:      "xml",
	TypeEnum:     "enum",
}

func (t SemanticType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// ParseSemanticType resolves a type name as used in scope key schemas.
func ParseSemanticType(name string) (SemanticType, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
}

// requiresQuotes reports whether literals of t must be single quoted.
func (t SemanticType) requiresQuotes() bool {
	switch t {
	case TypeString, TypeXML, TypeGUID, TypeDateTime, TypeBinary:
		return true
	default:
		return false
	}
}

// XML is an opaque XML fragment used as a key value.
type XML string

// Enum is the member name of an enumeration key value.
type Enum string

// TypeOf returns the semantic type of a Go value produced by Parse.
func TypeOf(v any) (SemanticType, bool) {
	switch v.(type) {
	case string:
		return TypeString, true
	case bool:
		return TypeBool, true
	case uint8:
		return TypeByte, true
	case int16:
		return TypeInt16, true
	case int32:
		return TypeInt32, true
	case int64:
		return TypeInt64, true
	case float32:
		return TypeSingle, true
	case float64:
		return TypeDouble, true
	case decimal.Decimal:
		return TypeDecimal, true
	case uuid.UUID:
		return TypeGUID, true
	case time.Time:
		return TypeDateTime, true
	case []byte:
		return TypeBinary, true
	case XML:
		return TypeXML, true
	case Enum:
		return TypeEnum, true
	default:
		return 0, false
	}
}

// KeyField describes one property of an entity key.
type KeyField struct {
	Name string
	Type SemanticType
}

// Schema is the ordered list of key properties of an entity type.
type Schema []KeyField

// KeyPart is one decoded (property, value) pair.
type KeyPart struct {
	Name  string
	Value any
}

// Identity is a typed primary-key value set in schema order.
type Identity []KeyPart
