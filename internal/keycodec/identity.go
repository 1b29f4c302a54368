package keycodec

import "strings"

// ParseIdentity decodes a structured key string such as
// `(OrderID=42L,Region='eu')` against schema. A single-property schema also
// accepts the positional form `(42L)`. The returned identity follows schema
// order; every schema property must appear exactly once.
func ParseIdentity(text string, schema Schema) (Identity, error) {
	if len(schema) == 0 {
		return nil, keyError(text, "no key schema")
	}
	if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
		return nil, keyError(text, "key must be enclosed in parentheses")
	}

	segments, ok := splitOutsideQuotes(text[1:len(text)-1], ',')
	if !ok {
		return nil, keyError(text, "unbalanced quotes")
	}

	if len(schema) == 1 && len(segments) == 1 && !hasNamedPart(segments[0]) {
		field := schema[0]
		v, ok := Parse(strings.TrimSpace(segments[0]), field.Type)
		if !ok {
			return nil, keyError(text, "value of %s is not a valid %s literal", field.Name, field.Type)
		}
		return Identity{{Name: field.Name, Value: v}}, nil
	}

	values := make(map[string]any, len(segments))
	for _, seg := range segments {
		name, literal, found := strings.Cut(seg, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, keyError(text, "segment %q is not a name=value pair", seg)
		}

		field, known := schema.field(name)
		if !known {
			return nil, keyError(text, "unknown key property %s", name)
		}
		if _, dup := values[name]; dup {
			return nil, keyError(text, "duplicate key property %s", name)
		}

		v, ok := Parse(strings.TrimSpace(literal), field.Type)
		if !ok {
			return nil, keyError(text, "value of %s is not a valid %s literal", name, field.Type)
		}
		values[name] = v
	}

	id := make(Identity, 0, len(schema))
	for _, field := range schema {
		v, ok := values[field.Name]
		if !ok {
			return nil, keyError(text, "missing key property %s", field.Name)
		}
		id = append(id, KeyPart{Name: field.Name, Value: v})
	}
	return id, nil
}

// FormatIdentity renders id in the named form `(A=1,B='x')`.
func FormatIdentity(id Identity) (string, error) {
	var b strings.Builder
	b.WriteByte('(')
	for i, part := range id {
		literal, err := Format(part.Value)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(part.Name)
		b.WriteByte('=')
		b.WriteString(literal)
	}
	b.WriteByte(')')
	return b.String(), nil
}

// Canonicalize re-renders a key string in canonical form so that two
// spellings of the same key compare equal.
func Canonicalize(text string, schema Schema) (string, error) {
	id, err := ParseIdentity(text, schema)
	if err != nil {
		return "", err
	}
	return FormatIdentity(id)
}

func hasNamedPart(seg string) bool {
	parts, _ := splitOutsideQuotes(seg, '=')
	return len(parts) > 1
}

func (s Schema) field(name string) (KeyField, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return KeyField{}, false
}

// splitOutsideQuotes splits s on sep, ignoring separators inside single
// quoted literals. Doubled quotes toggle twice and so stay inside.
func splitOutsideQuotes(s string, sep byte) ([]string, bool) {
	var (
		parts   []string
		inQuote bool
		start   int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			inQuote = !inQuote
		case sep:
			if !inQuote {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if inQuote {
		return nil, false
	}
	return append(parts, s[start:]), true
}
