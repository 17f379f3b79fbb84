// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ DeleteRepository = (*deleteRepository)(nil)

type deleteRepository struct {
	coll Collection
}

// NewDeleteRepository instantiates a DeleteRepository over coll.
func NewDeleteRepository(coll Collection) DeleteRepository {
	return &deleteRepository{
		coll: coll,
	}
}

func (dr *deleteRepository) DeleteOne(ctx context.Context, query interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	return dr.coll.DeleteOne(ctx, query, opts...)
}

func (dr *deleteRepository) DeleteMany(ctx context.Context, query interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	return dr.coll.DeleteMany(ctx, query, opts...)
}
