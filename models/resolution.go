package models

import "fmt"

// Resolution is the conflict resolution policy configured for a scope and
// the outcome recorded on a SyncConflict.
type Resolution int

const (
	ServerWins Resolution = iota
	ClientWins
	Merge
)

var resolutionNames = map[Resolution]string{
	ServerWins: "server_wins",
	ClientWins: "client_wins",
	Merge:      "merge",
}

func (r Resolution) String() string {
	if name, ok := resolutionNames[r]; ok {
		return name
	}
	return fmt.Sprintf("resolution(%d)", int(r))
}

// Valid reports whether r is one of the known policies.
func (r Resolution) Valid() bool {
	_, ok := resolutionNames[r]
	return ok
}

// ParseResolution converts a policy name (as used in config and on the wire)
// into a Resolution.
func ParseResolution(s string) (Resolution, error) {
	for r, name := range resolutionNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown resolution policy %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Resolution) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown resolution policy %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Resolution) UnmarshalText(text []byte) error {
	parsed, err := ParseResolution(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
