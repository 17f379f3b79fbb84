// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ FindRepository = (*findRepository)(nil)

type findRepository struct {
	coll Collection
}

// NewFindRepository instantiates a FindRepository over coll.
func NewFindRepository(coll Collection) FindRepository {
	return &findRepository{
		coll: coll,
	}
}

func (fr *findRepository) Find(ctx context.Context, query interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	if query == nil {
		query = bson.D{}
	}

	return fr.coll.Find(ctx, query, opts...)
}

func (fr *findRepository) FilterQuery(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error) {
	return fr.coll.Aggregate(ctx, pipeline, opts...)
}
