// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package env wraps caarlos0/env so callers configure parsing without
// importing the library directly.
package env

import (
	"github.com/caarlos0/env/v7"
)

type Options struct {
	// Environment keys and values used instead of the process environment.
	Environment map[string]string

	// RequiredIfNoDef marks every field without 'envDefault' as required.
	RequiredIfNoDef bool

	// Prefix is prepended to each key.
	Prefix string
}

// Parse fills v from the environment, applying opts in order.
func Parse(v interface{}, opts ...Options) error {
	altOpts := []env.Options{}

	for _, opt := range opts {
		altOpts = append(altOpts, env.Options{
			Environment:     opt.Environment,
			RequiredIfNoDef: opt.RequiredIfNoDef,
			Prefix:          opt.Prefix,
		})
	}

	return env.Parse(v, altOpts...)
}
