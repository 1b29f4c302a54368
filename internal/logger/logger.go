// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the sync server, its workers and the
// client adapter. Every component receives a *Logger at construction time;
// request handling code picks the request-scoped logger up from the context
// instead, so that each line carries the trace id set by the HTTP layer.
package logger

import (
	"context"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger, so the whole zerolog API is available on it.
type Logger struct {
	zerolog.Logger
}

// callerFuncName reports the calling function instead of file:line.
func callerFuncName(pc uintptr, _ string, _ int) string {
	return runtime.FuncForPC(pc).Name()
}

// NewLogger returns a JSON logger writing to stdout. Each entry carries the
// component role ("sync-server", "janitor", "sync-client"), a timestamp and
// the calling function under "func".
//
// NewLogger adjusts zerolog globals: the level is lowered to debug and the
// caller field is renamed.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = callerFuncName

	return &Logger{
		Logger: zerolog.New(os.Stdout).With().
			Str("role", role).
			Timestamp().
			Caller().
			Logger(),
	}
}

// Nop returns a logger that writes nothing. Tests use it.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// GetChildLogger copies l. Fields added to the copy stay off the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{Logger: l.With().Logger()}
}

// FromContext returns the logger attached to ctx with zerolog's
// WithContext, or zerolog's default logger when there is none.
func FromContext(ctx context.Context) *Logger {
	return &Logger{Logger: *log.Ctx(ctx)}
}

// FromRequest is FromContext for the context of r.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}
