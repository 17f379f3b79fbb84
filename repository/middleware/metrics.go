// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"time"

	"github.com/absmach/mongowrap/repository"
	"github.com/go-kit/kit/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	_ repository.FindRepository   = (*findMetricsMiddleware)(nil)
	_ repository.InsertRepository = (*insertMetricsMiddleware)(nil)
	_ repository.UpdateRepository = (*updateMetricsMiddleware)(nil)
	_ repository.DeleteRepository = (*deleteMetricsMiddleware)(nil)
	_ repository.QueryRepository  = (*queryMetricsMiddleware)(nil)
)

type instruments struct {
	counter metrics.Counter
	latency metrics.Histogram
}

func (in instruments) observe(method string, begin time.Time) {
	in.counter.With("method", method).Add(1)
	in.latency.With("method", method).Observe(time.Since(begin).Seconds())
}

type findMetricsMiddleware struct {
	instruments
	repo repository.FindRepository
}

// FindMetricsMiddleware instruments a find repository by tracking call count and latency.
func FindMetricsMiddleware(repo repository.FindRepository, counter metrics.Counter, latency metrics.Histogram) repository.FindRepository {
	return &findMetricsMiddleware{
		instruments: instruments{counter: counter, latency: latency},
		repo:        repo,
	}
}

func (ms *findMetricsMiddleware) Find(ctx context.Context, query interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	defer ms.observe("find", time.Now())

	return ms.repo.Find(ctx, query, opts...)
}

func (ms *findMetricsMiddleware) FilterQuery(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error) {
	defer ms.observe("filter_query", time.Now())

	return ms.repo.FilterQuery(ctx, pipeline, opts...)
}

type insertMetricsMiddleware struct {
	instruments
	repo repository.InsertRepository
}

// InsertMetricsMiddleware instruments an insert repository by tracking call count and latency.
func InsertMetricsMiddleware(repo repository.InsertRepository, counter metrics.Counter, latency metrics.Histogram) repository.InsertRepository {
	return &insertMetricsMiddleware{
		instruments: instruments{counter: counter, latency: latency},
		repo:        repo,
	}
}

func (ms *insertMetricsMiddleware) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	defer ms.observe("insert_one", time.Now())

	return ms.repo.InsertOne(ctx, document, opts...)
}

func (ms *insertMetricsMiddleware) InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (repository.InsertManyResult, error) {
	defer ms.observe("insert_many", time.Now())

	return ms.repo.InsertMany(ctx, documents, opts...)
}

type updateMetricsMiddleware struct {
	instruments
	repo repository.UpdateRepository
}

// UpdateMetricsMiddleware instruments an update repository by tracking call count and latency.
func UpdateMetricsMiddleware(repo repository.UpdateRepository, counter metrics.Counter, latency metrics.Histogram) repository.UpdateRepository {
	return &updateMetricsMiddleware{
		instruments: instruments{counter: counter, latency: latency},
		repo:        repo,
	}
}

func (ms *updateMetricsMiddleware) UpdateOne(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	defer ms.observe("update_one", time.Now())

	return ms.repo.UpdateOne(ctx, query, update, opts...)
}

func (ms *updateMetricsMiddleware) UpdateMany(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	defer ms.observe("update_many", time.Now())

	return ms.repo.UpdateMany(ctx, query, update, opts...)
}

func (ms *updateMetricsMiddleware) Upsert(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	defer ms.observe("upsert", time.Now())

	return ms.repo.Upsert(ctx, query, update, opts...)
}

type deleteMetricsMiddleware struct {
	instruments
	repo repository.DeleteRepository
}

// DeleteMetricsMiddleware instruments a delete repository by tracking call count and latency.
func DeleteMetricsMiddleware(repo repository.DeleteRepository, counter metrics.Counter, latency metrics.Histogram) repository.DeleteRepository {
	return &deleteMetricsMiddleware{
		instruments: instruments{counter: counter, latency: latency},
		repo:        repo,
	}
}

func (ms *deleteMetricsMiddleware) DeleteOne(ctx context.Context, query interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	defer ms.observe("delete_one", time.Now())

	return ms.repo.DeleteOne(ctx, query, opts...)
}

func (ms *deleteMetricsMiddleware) DeleteMany(ctx context.Context, query interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	defer ms.observe("delete_many", time.Now())

	return ms.repo.DeleteMany(ctx, query, opts...)
}

type queryMetricsMiddleware struct {
	instruments
	repo repository.QueryRepository
}

// QueryMetricsMiddleware instruments a query repository by tracking call count and latency.
func QueryMetricsMiddleware(repo repository.QueryRepository, counter metrics.Counter, latency metrics.Histogram) repository.QueryRepository {
	return &queryMetricsMiddleware{
		instruments: instruments{counter: counter, latency: latency},
		repo:        repo,
	}
}

func (ms *queryMetricsMiddleware) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error) {
	defer ms.observe("aggregate", time.Now())

	return ms.repo.Aggregate(ctx, pipeline, opts...)
}

func (ms *queryMetricsMiddleware) AggregateExhausted(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) ([]bson.M, error) {
	defer ms.observe("aggregate_exhausted", time.Now())

	return ms.repo.AggregateExhausted(ctx, pipeline, opts...)
}
