package keycodec

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	prefixGUID     = "guid"
	prefixDateTime = "datetime"
	prefixBinary   = "binary"
	prefixHex      = "X"

	// dateTimeLayout is the canonical form; fractional seconds are written
	// only when non-zero and parsing accepts any precision.
	dateTimeLayout      = "2006-01-02T15:04:05.999999999"
	dateTimeParseLayout = "2006-01-02T15:04:05"
	dateTimeShortLayout = "2006-01-02T15:04"
)

// Parse decodes a single key literal into a value of the target type.
// It reports false for any malformed or mistyped input.
func Parse(text string, target SemanticType) (any, bool) {
	switch target {
	case TypeString:
		return unquote(text)
	case TypeXML:
		s, ok := unquote(text)
		return XML(s), ok
	case TypeGUID:
		return parseGUID(text)
	case TypeDateTime:
		return parseDateTime(text)
	case TypeBinary:
		return parseBinary(text)
	}

	// everything below is an unquoted literal
	if text == "" || isQuoted(text) {
		return nil, false
	}

	switch target {
	case TypeBool:
		switch strings.ToLower(text) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return nil, false
	case TypeByte:
		v, err := strconv.ParseUint(text, 10, 8)
		return uint8(v), err == nil
	case TypeInt16:
		v, err := strconv.ParseInt(text, 10, 16)
		return int16(v), err == nil
	case TypeInt32:
		v, err := strconv.ParseInt(text, 10, 32)
		return int32(v), err == nil
	case TypeInt64:
		s, _ := trimSuffixFold(text, "L")
		v, err := strconv.ParseInt(s, 10, 64)
		return v, err == nil
	case TypeSingle:
		v, ok := parseFloat(text, "f", 32)
		return float32(v), ok
	case TypeDouble:
		return parseFloat(text, "D", 64)
	case TypeDecimal:
		return parseDecimal(text)
	case TypeEnum:
		if !isIdentifier(text) {
			return nil, false
		}
		return Enum(text), true
	}

	return nil, false
}

// Format renders v in its canonical literal form. It is the inverse of
// Parse for every supported type.
func Format(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return quote(val), nil
	case XML:
		return quote(string(val)), nil
	case bool:
		return strconv.FormatBool(val), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10) + "L", nil
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32) + "f", nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64) + "D", nil
	case decimal.Decimal:
		return val.String() + "M", nil
	case uuid.UUID:
		return prefixGUID + quote(val.String()), nil
	case time.Time:
		utc := val.UTC()
		if year := utc.Year(); year < 0 || year > 9999 {
			return "", fmt.Errorf("%w: datetime year %d", ErrValueOutOfRange, year)
		}
		return prefixDateTime + quote(utc.Format(dateTimeLayout)), nil
	case []byte:
		return prefixBinary + quote(strings.ToUpper(hex.EncodeToString(val))), nil
	case Enum:
		if !isIdentifier(string(val)) {
			return "", keyError(string(val), "enum member is not an identifier")
		}
		return string(val), nil
	default:
		return "", ErrUnsupportedType
	}
}

func parseGUID(text string) (any, bool) {
	rest, ok := trimPrefixFold(text, prefixGUID)
	if !ok {
		return nil, false
	}
	s, ok := unquote(rest)
	if !ok || len(s) != 36 {
		return nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, false
	}
	return id, true
}

func parseDateTime(text string) (any, bool) {
	rest, ok := trimPrefixFold(text, prefixDateTime)
	if !ok {
		return nil, false
	}
	s, ok := unquote(rest)
	if !ok {
		return nil, false
	}

	for _, layout := range []string{time.RFC3339Nano, dateTimeParseLayout, dateTimeShortLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return nil, false
}

func parseBinary(text string) (any, bool) {
	rest, ok := trimPrefixFold(text, prefixBinary)
	if !ok {
		rest, ok = trimPrefixFold(text, prefixHex)
	}
	if !ok {
		return nil, false
	}
	s, ok := unquote(rest)
	if !ok || len(s)%2 != 0 {
		return nil, false
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return b, true
}

// parseFloat consumes an optional type suffix. Literals such as "+Inf" end
// in a letter that may collide with the suffix, so the unstripped text is
// tried as well.
func parseFloat(text, suffix string, bits int) (float64, bool) {
	if s, had := trimSuffixFold(text, suffix); had {
		if v, err := strconv.ParseFloat(s, bits); err == nil {
			return v, true
		}
	}
	v, err := strconv.ParseFloat(text, bits)
	return v, err == nil
}

// parseDecimal tries a strict decimal parse first and falls back to a float
// parse for inputs only the float grammar accepts.
func parseDecimal(text string) (any, bool) {
	s, _ := trimSuffixFold(text, "M")
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, false
	}
	return decimal.NewFromFloat(f), true
}

func isQuoted(text string) bool {
	return len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\''
}

// unquote strips the surrounding quotes and collapses doubled inner quotes.
// A lone inner quote makes the literal invalid.
func unquote(text string) (string, bool) {
	if !isQuoted(text) {
		return "", false
	}
	inner := text[1 : len(text)-1]

	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\'' {
			if i+1 >= len(inner) || inner[i+1] != '\'' {
				return "", false
			}
			i++
		}
		b.WriteByte(c)
	}
	return b.String(), true
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func trimPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

func trimSuffixFold(s, suffix string) (string, bool) {
	if len(s) <= len(suffix) || !strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return s, false
	}
	return s[:len(s)-len(suffix)], true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
