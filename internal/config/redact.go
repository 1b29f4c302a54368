// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

const redacted = "[REDACTED]"

// Redacted returns a copy of cfg that is safe to log: the diagnostics
// signing key is masked and so is the password of the database DSN.
func (cfg StructuredConfig) Redacted() StructuredConfig {
	if cfg.App.DiagnosticsSignKey != "" {
		cfg.App.DiagnosticsSignKey = redacted
	}
	cfg.Storage.DB.DSN = redactDSN(cfg.Storage.DB.DSN)
	return cfg
}

// redactDSN masks the password of a URL DSN. Keyword/value DSNs are not
// parsed; one that mentions a password is masked as a whole.
func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.Host != "" {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), redacted)
		}
		q := u.Query()
		if q.Has("password") {
			q.Set("password", redacted)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}
	if strings.Contains(strings.ToLower(dsn), "password") {
		return redacted
	}
	return dsn
}
