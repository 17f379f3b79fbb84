// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package tracing provides tracing instrumentation for the repositories.
package tracing
