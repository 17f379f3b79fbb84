// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package logger builds the structured loggers used by mongowrap providers
// and repository middleware.
package logger

import (
	"fmt"
	"io"
	"log/slog"
)

// New returns a JSON slog.Logger writing to w, filtered at the given level.
func New(w io.Writer, levelText string) (*slog.Logger, error) {
	var level Level
	if err := level.UnmarshalText(levelText); err != nil {
		return nil, fmt.Errorf("%w: %s", err, levelText)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level.Slog()})
	return slog.New(handler), nil
}

// NewMock returns a logger that discards everything.
func NewMock() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
