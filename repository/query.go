// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ QueryRepository = (*queryRepository)(nil)

type queryRepository struct {
	coll Collection
}

// NewQueryRepository instantiates a QueryRepository over coll.
func NewQueryRepository(coll Collection) QueryRepository {
	return &queryRepository{
		coll: coll,
	}
}

func (qr *queryRepository) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error) {
	return qr.coll.Aggregate(ctx, pipeline, opts...)
}

func (qr *queryRepository) AggregateExhausted(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) ([]bson.M, error) {
	cursor, err := qr.coll.Aggregate(ctx, pipeline, opts...)
	if err != nil {
		return nil, err
	}

	results := []bson.M{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}
