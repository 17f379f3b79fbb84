// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package middleware decorates the repositories with logging and metrics.
// Every decorator forwards the call unchanged and records it afterwards.
package middleware
