// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"context"

	"github.com/absmach/mongowrap/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	findOp               = "find"
	filterQueryOp        = "filter_query"
	insertOneOp          = "insert_one"
	insertManyOp         = "insert_many"
	updateOneOp          = "update_one"
	updateManyOp         = "update_many"
	upsertOp             = "upsert"
	deleteOneOp          = "delete_one"
	deleteManyOp         = "delete_many"
	aggregateOp          = "aggregate"
	aggregateExhaustedOp = "aggregate_exhausted"
)

var (
	_ repository.FindRepository   = (*findRepositoryMiddleware)(nil)
	_ repository.InsertRepository = (*insertRepositoryMiddleware)(nil)
	_ repository.UpdateRepository = (*updateRepositoryMiddleware)(nil)
	_ repository.DeleteRepository = (*deleteRepositoryMiddleware)(nil)
	_ repository.QueryRepository  = (*queryRepositoryMiddleware)(nil)
)

type findRepositoryMiddleware struct {
	tracer trace.Tracer
	coll   string
	repo   repository.FindRepository
}

// FindRepositoryMiddleware adds a span per call to a find repository.
// Spans carry the collection name coll.
func FindRepositoryMiddleware(tracer trace.Tracer, coll string, repo repository.FindRepository) repository.FindRepository {
	return findRepositoryMiddleware{
		tracer: tracer,
		coll:   coll,
		repo:   repo,
	}
}

func (frm findRepositoryMiddleware) Find(ctx context.Context, query interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	ctx, span := createSpan(ctx, frm.tracer, findOp, frm.coll)
	defer span.End()

	cur, err := frm.repo.Find(ctx, query, opts...)
	return cur, record(span, err)
}

func (frm findRepositoryMiddleware) FilterQuery(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error) {
	ctx, span := createSpan(ctx, frm.tracer, filterQueryOp, frm.coll)
	defer span.End()

	cur, err := frm.repo.FilterQuery(ctx, pipeline, opts...)
	return cur, record(span, err)
}

type insertRepositoryMiddleware struct {
	tracer trace.Tracer
	coll   string
	repo   repository.InsertRepository
}

// InsertRepositoryMiddleware adds a span per call to an insert repository.
func InsertRepositoryMiddleware(tracer trace.Tracer, coll string, repo repository.InsertRepository) repository.InsertRepository {
	return insertRepositoryMiddleware{
		tracer: tracer,
		coll:   coll,
		repo:   repo,
	}
}

func (irm insertRepositoryMiddleware) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	ctx, span := createSpan(ctx, irm.tracer, insertOneOp, irm.coll)
	defer span.End()

	res, err := irm.repo.InsertOne(ctx, document, opts...)
	return res, record(span, err)
}

func (irm insertRepositoryMiddleware) InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (repository.InsertManyResult, error) {
	ctx, span := createSpan(ctx, irm.tracer, insertManyOp, irm.coll)
	defer span.End()

	res, err := irm.repo.InsertMany(ctx, documents, opts...)
	span.SetAttributes(
		attribute.Int("documents", len(documents)),
		attribute.Int("inserted", len(res.InsertedIDs)),
		attribute.Int("failed", len(res.Failures)),
	)
	return res, record(span, err)
}

type updateRepositoryMiddleware struct {
	tracer trace.Tracer
	coll   string
	repo   repository.UpdateRepository
}

// UpdateRepositoryMiddleware adds a span per call to an update repository.
func UpdateRepositoryMiddleware(tracer trace.Tracer, coll string, repo repository.UpdateRepository) repository.UpdateRepository {
	return updateRepositoryMiddleware{
		tracer: tracer,
		coll:   coll,
		repo:   repo,
	}
}

func (urm updateRepositoryMiddleware) UpdateOne(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	ctx, span := createSpan(ctx, urm.tracer, updateOneOp, urm.coll)
	defer span.End()

	res, err := urm.repo.UpdateOne(ctx, query, update, opts...)
	return res, record(span, err)
}

func (urm updateRepositoryMiddleware) UpdateMany(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	ctx, span := createSpan(ctx, urm.tracer, updateManyOp, urm.coll)
	defer span.End()

	res, err := urm.repo.UpdateMany(ctx, query, update, opts...)
	return res, record(span, err)
}

func (urm updateRepositoryMiddleware) Upsert(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	ctx, span := createSpan(ctx, urm.tracer, upsertOp, urm.coll)
	defer span.End()

	res, err := urm.repo.Upsert(ctx, query, update, opts...)
	return res, record(span, err)
}

type deleteRepositoryMiddleware struct {
	tracer trace.Tracer
	coll   string
	repo   repository.DeleteRepository
}

// DeleteRepositoryMiddleware adds a span per call to a delete repository.
func DeleteRepositoryMiddleware(tracer trace.Tracer, coll string, repo repository.DeleteRepository) repository.DeleteRepository {
	return deleteRepositoryMiddleware{
		tracer: tracer,
		coll:   coll,
		repo:   repo,
	}
}

func (drm deleteRepositoryMiddleware) DeleteOne(ctx context.Context, query interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	ctx, span := createSpan(ctx, drm.tracer, deleteOneOp, drm.coll)
	defer span.End()

	res, err := drm.repo.DeleteOne(ctx, query, opts...)
	return res, record(span, err)
}

func (drm deleteRepositoryMiddleware) DeleteMany(ctx context.Context, query interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	ctx, span := createSpan(ctx, drm.tracer, deleteManyOp, drm.coll)
	defer span.End()

	res, err := drm.repo.DeleteMany(ctx, query, opts...)
	return res, record(span, err)
}

type queryRepositoryMiddleware struct {
	tracer trace.Tracer
	coll   string
	repo   repository.QueryRepository
}

// QueryRepositoryMiddleware adds a span per call to a query repository.
func QueryRepositoryMiddleware(tracer trace.Tracer, coll string, repo repository.QueryRepository) repository.QueryRepository {
	return queryRepositoryMiddleware{
		tracer: tracer,
		coll:   coll,
		repo:   repo,
	}
}

func (qrm queryRepositoryMiddleware) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (*mongo.Cursor, error) {
	ctx, span := createSpan(ctx, qrm.tracer, aggregateOp, qrm.coll)
	defer span.End()

	cur, err := qrm.repo.Aggregate(ctx, pipeline, opts...)
	return cur, record(span, err)
}

func (qrm queryRepositoryMiddleware) AggregateExhausted(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) ([]bson.M, error) {
	ctx, span := createSpan(ctx, qrm.tracer, aggregateExhaustedOp, qrm.coll)
	defer span.End()

	docs, err := qrm.repo.AggregateExhausted(ctx, pipeline, opts...)
	span.SetAttributes(attribute.Int("documents", len(docs)))
	return docs, record(span, err)
}

func createSpan(ctx context.Context, tracer trace.Tracer, opName, coll string) (context.Context, trace.Span) {
	return tracer.Start(ctx, opName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mongodb"),
			attribute.String("db.mongodb.collection", coll),
		),
	)
}

func record(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}
