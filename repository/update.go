// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ UpdateRepository = (*updateRepository)(nil)

type updateRepository struct {
	coll Collection
}

// NewUpdateRepository instantiates an UpdateRepository over coll.
func NewUpdateRepository(coll Collection) UpdateRepository {
	return &updateRepository{
		coll: coll,
	}
}

func (ur *updateRepository) UpdateOne(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return ur.coll.UpdateOne(ctx, query, update, opts...)
}

func (ur *updateRepository) UpdateMany(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return ur.coll.UpdateMany(ctx, query, update, opts...)
}

func (ur *updateRepository) Upsert(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	// Later options win when the driver merges them.
	opts = append(opts[:len(opts):len(opts)], options.Update().SetUpsert(true))

	return ur.coll.UpdateOne(ctx, query, update, opts...)
}
