// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ Collection = (*mongo.Collection)(nil)

// Collection is the part of *mongo.Collection the repositories forward to.
type Collection interface {
	Name() string
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
	UpdateOne(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	UpdateMany(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// FindRepository runs queries against a collection.
type FindRepository interface {
	// Find returns a cursor over the documents matching query. A nil query
	// matches every document.
	Find(ctx context.Context, query interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)

	// FilterQuery runs pipeline and returns a cursor over its output.
	FilterQuery(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error)
}

// InsertRepository stores documents in a collection.
type InsertRepository interface {
	// InsertOne stores a single document.
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)

	// InsertMany stores documents in one bulk write. When the server rejects
	// some of them the result lists what was stored and what failed, and the
	// returned error wraps ErrPartialInsert.
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (InsertManyResult, error)
}

// UpdateRepository modifies documents in a collection.
type UpdateRepository interface {
	UpdateOne(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	UpdateMany(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)

	// Upsert updates the first document matching query, or inserts one built
	// from query and update when nothing matches.
	Upsert(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// DeleteRepository removes documents from a collection.
type DeleteRepository interface {
	DeleteOne(ctx context.Context, query interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	DeleteMany(ctx context.Context, query interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// QueryRepository runs aggregation pipelines against a collection.
type QueryRepository interface {
	// Aggregate runs pipeline and returns a cursor over its output.
	Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error)

	// AggregateExhausted runs pipeline and blocks until every result has been
	// read. The cursor is closed before returning.
	AggregateExhausted(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) ([]bson.M, error)
}
