// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the vault server and vaultctl.
//
// Components receive a *Logger at construction time. Code running inside a
// request or a worker pass pulls the scoped logger with FromContext or
// FromRequest, which carries the trace id attached by the HTTP middleware.
//
// Plaintext, keys and ciphertext must never be passed to a log field.
package logger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger, so *Logger exposes the whole zerolog API.
type Logger struct {
	zerolog.Logger
}

var setupGlobals sync.Once

// configureGlobals sets the process-wide zerolog knobs once: every level is
// emitted and the caller field records the function name.
func configureGlobals() {
	setupGlobals.Do(func() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})
}

// NewLogger returns a JSON logger writing to stdout. Every entry carries
// role, a timestamp and the calling function.
func NewLogger(role string) *Logger {
	return newJSONLogger(os.Stdout, role)
}

func newJSONLogger(w io.Writer, role string) *Logger {
	configureGlobals()

	return &Logger{zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// NewConsoleLogger returns a human readable logger for command line tools.
// Use stderr as w so log lines stay out of command output.
func NewConsoleLogger(role string, w io.Writer) *Logger {
	configureGlobals()

	return &Logger{zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).With().
		Str("role", role).
		Timestamp().
		Logger()}
}

// WithLevelName returns a copy of l that drops entries below level, given
// by name ("debug", "info", "warn", ...). An empty name returns l itself.
func (l *Logger) WithLevelName(level string) (*Logger, error) {
	if level == "" {
		return l, nil
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return &Logger{l.Level(lvl)}, nil
}

// GetChildLogger returns a copy of l. Fields added to the copy do not leak
// into l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// Nop discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// FromContext returns the logger attached to ctx with zerolog's WithContext.
// Without one it falls back to zerolog's default logger, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// FromRequest is FromContext for r.Context().
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}
