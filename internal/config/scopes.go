package config

import (
	"errors"
	"fmt"
	"strings"
)

// ScopeSpec is one entry of [Sync.Scopes]:
//
//	name[:policy[:key schema]]
//
// e.g. "orders", "orders:client_wins" or "orders:server_wins:ID=int64;Region=string".
// An empty policy falls back to [Sync.DefaultPolicy].
type ScopeSpec struct {
	Name      string
	Policy    string
	KeySchema string
}

// ParseScopeSpec splits a scope spec into its parts. Policy and schema are
// validated by their consumers.
func ParseScopeSpec(spec string) (ScopeSpec, error) {
	parts := strings.SplitN(strings.TrimSpace(spec), ":", 3)
	if parts[0] == "" {
		return ScopeSpec{}, errors.New("scope spec without name")
	}
	if strings.ContainsAny(parts[0], `/\ `) {
		return ScopeSpec{}, fmt.Errorf("invalid scope name %q", parts[0])
	}

	out := ScopeSpec{Name: parts[0]}
	if len(parts) > 1 {
		out.Policy = parts[1]
	}
	if len(parts) > 2 {
		out.KeySchema = parts[2]
	}
	return out, nil
}

// ScopeSpecs parses every configured scope, applying the default policy.
func (s Sync) ScopeSpecs() ([]ScopeSpec, error) {
	specs := make([]ScopeSpec, 0, len(s.Scopes))
	for _, raw := range s.Scopes {
		spec, err := ParseScopeSpec(raw)
		if err != nil {
			return nil, err
		}
		if spec.Policy == "" {
			spec.Policy = s.DefaultPolicy
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
