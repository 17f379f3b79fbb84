// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/absmach/mongowrap/repository"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repository.Collection = (*Collection)(nil)

// Collection is a testify mock of a collection handle. Driver options are
// recorded as one slice argument.
type Collection struct {
	mock.Mock
}

func (m *Collection) Name() string {
	ret := m.Called()

	return ret.String(0)
}

func (m *Collection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	ret := m.Called(ctx, filter, opts)

	return cursor(ret), ret.Error(1)
}

func (m *Collection) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error) {
	ret := m.Called(ctx, pipeline, opts)

	return cursor(ret), ret.Error(1)
}

func (m *Collection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	ret := m.Called(ctx, document, opts)

	res, _ := ret.Get(0).(*mongo.InsertOneResult)
	return res, ret.Error(1)
}

func (m *Collection) InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	ret := m.Called(ctx, documents, opts)

	res, _ := ret.Get(0).(*mongo.InsertManyResult)
	return res, ret.Error(1)
}

func (m *Collection) UpdateOne(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	ret := m.Called(ctx, filter, update, opts)

	res, _ := ret.Get(0).(*mongo.UpdateResult)
	return res, ret.Error(1)
}

func (m *Collection) UpdateMany(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	ret := m.Called(ctx, filter, update, opts)

	res, _ := ret.Get(0).(*mongo.UpdateResult)
	return res, ret.Error(1)
}

func (m *Collection) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	ret := m.Called(ctx, filter, opts)

	res, _ := ret.Get(0).(*mongo.DeleteResult)
	return res, ret.Error(1)
}

func (m *Collection) DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	ret := m.Called(ctx, filter, opts)

	res, _ := ret.Get(0).(*mongo.DeleteResult)
	return res, ret.Error(1)
}

func cursor(ret mock.Arguments) *mongo.Cursor {
	cur, _ := ret.Get(0).(*mongo.Cursor)
	return cur
}
