// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package repository

import "github.com/absmach/mongowrap/pkg/errors"

// Wrapper for Repository errors.
var (
	// ErrPartialInsert indicates that a bulk insert stored only some of the documents.
	ErrPartialInsert = errors.New("bulk insert completed partially")

	// ErrMissingCollection indicates that no collection handle was provided.
	ErrMissingCollection = errors.New("missing collection handle")

	// ErrMissingProvider indicates that no connection provider was provided.
	ErrMissingProvider = errors.New("missing connection provider")
)
