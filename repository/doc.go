// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package repository contains thin wrappers that forward CRUD and
// aggregation calls to a MongoDB collection handle. Each wrapper holds one
// Collection and adds no behaviour of its own, with two exceptions:
// InsertMany reports partially applied bulk writes through InsertManyResult,
// and Upsert forces the upsert flag on an UpdateOne call.
package repository
