// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/absmach/mongowrap/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	_ repository.FindRepository   = (*findLoggingMiddleware)(nil)
	_ repository.InsertRepository = (*insertLoggingMiddleware)(nil)
	_ repository.UpdateRepository = (*updateLoggingMiddleware)(nil)
	_ repository.DeleteRepository = (*deleteLoggingMiddleware)(nil)
	_ repository.QueryRepository  = (*queryLoggingMiddleware)(nil)
)

type findLoggingMiddleware struct {
	logger *slog.Logger
	repo   repository.FindRepository
}

// FindLoggingMiddleware adds logging facilities to a find repository.
func FindLoggingMiddleware(repo repository.FindRepository, logger *slog.Logger) repository.FindRepository {
	return &findLoggingMiddleware{logger, repo}
}

func (lm *findLoggingMiddleware) Find(ctx context.Context, query interface{}, opts ...*options.FindOptions) (cur *mongo.Cursor, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Find failed to complete successfully", args...)
			return
		}
		lm.logger.Info("Find completed successfully", args...)
	}(time.Now())

	return lm.repo.Find(ctx, query, opts...)
}

func (lm *findLoggingMiddleware) FilterQuery(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (cur *mongo.Cursor, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Int("stages", stages(pipeline)),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Filter query failed to complete successfully", args...)
			return
		}
		lm.logger.Info("Filter query completed successfully", args...)
	}(time.Now())

	return lm.repo.FilterQuery(ctx, pipeline, opts...)
}

type insertLoggingMiddleware struct {
	logger *slog.Logger
	repo   repository.InsertRepository
}

// InsertLoggingMiddleware adds logging facilities to an insert repository.
func InsertLoggingMiddleware(repo repository.InsertRepository, logger *slog.Logger) repository.InsertRepository {
	return &insertLoggingMiddleware{logger, repo}
}

func (lm *insertLoggingMiddleware) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (res *mongo.InsertOneResult, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Insert one failed to complete successfully", args...)
			return
		}
		if res != nil {
			args = append(args, slog.Any("inserted_id", res.InsertedID))
		}
		lm.logger.Info("Insert one completed successfully", args...)
	}(time.Now())

	return lm.repo.InsertOne(ctx, document, opts...)
}

func (lm *insertLoggingMiddleware) InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (res repository.InsertManyResult, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("documents",
				slog.Int("requested", len(documents)),
				slog.Int("inserted", len(res.InsertedIDs)),
				slog.Int("failed", len(res.Failures)),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Insert many failed to complete successfully", args...)
			return
		}
		lm.logger.Info("Insert many completed successfully", args...)
	}(time.Now())

	return lm.repo.InsertMany(ctx, documents, opts...)
}

type updateLoggingMiddleware struct {
	logger *slog.Logger
	repo   repository.UpdateRepository
}

// UpdateLoggingMiddleware adds logging facilities to an update repository.
func UpdateLoggingMiddleware(repo repository.UpdateRepository, logger *slog.Logger) repository.UpdateRepository {
	return &updateLoggingMiddleware{logger, repo}
}

func (lm *updateLoggingMiddleware) UpdateOne(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (res *mongo.UpdateResult, err error) {
	defer func(begin time.Time) {
		lm.logUpdate("Update one", begin, res, err)
	}(time.Now())

	return lm.repo.UpdateOne(ctx, query, update, opts...)
}

func (lm *updateLoggingMiddleware) UpdateMany(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (res *mongo.UpdateResult, err error) {
	defer func(begin time.Time) {
		lm.logUpdate("Update many", begin, res, err)
	}(time.Now())

	return lm.repo.UpdateMany(ctx, query, update, opts...)
}

func (lm *updateLoggingMiddleware) Upsert(ctx context.Context, query, update interface{}, opts ...*options.UpdateOptions) (res *mongo.UpdateResult, err error) {
	defer func(begin time.Time) {
		lm.logUpdate("Upsert", begin, res, err)
	}(time.Now())

	return lm.repo.Upsert(ctx, query, update, opts...)
}

func (lm *updateLoggingMiddleware) logUpdate(op string, begin time.Time, res *mongo.UpdateResult, err error) {
	args := []any{
		slog.String("duration", time.Since(begin).String()),
	}
	if err != nil {
		args = append(args, slog.Any("error", err))
		lm.logger.Warn(op+" failed to complete successfully", args...)
		return
	}
	if res != nil {
		args = append(args, slog.Group("result",
			slog.Int64("matched", res.MatchedCount),
			slog.Int64("modified", res.ModifiedCount),
			slog.Int64("upserted", res.UpsertedCount),
		))
	}
	lm.logger.Info(op+" completed successfully", args...)
}

type deleteLoggingMiddleware struct {
	logger *slog.Logger
	repo   repository.DeleteRepository
}

// DeleteLoggingMiddleware adds logging facilities to a delete repository.
func DeleteLoggingMiddleware(repo repository.DeleteRepository, logger *slog.Logger) repository.DeleteRepository {
	return &deleteLoggingMiddleware{logger, repo}
}

func (lm *deleteLoggingMiddleware) DeleteOne(ctx context.Context, query interface{}, opts ...*options.DeleteOptions) (res *mongo.DeleteResult, err error) {
	defer func(begin time.Time) {
		lm.logDelete("Delete one", begin, res, err)
	}(time.Now())

	return lm.repo.DeleteOne(ctx, query, opts...)
}

func (lm *deleteLoggingMiddleware) DeleteMany(ctx context.Context, query interface{}, opts ...*options.DeleteOptions) (res *mongo.DeleteResult, err error) {
	defer func(begin time.Time) {
		lm.logDelete("Delete many", begin, res, err)
	}(time.Now())

	return lm.repo.DeleteMany(ctx, query, opts...)
}

func (lm *deleteLoggingMiddleware) logDelete(op string, begin time.Time, res *mongo.DeleteResult, err error) {
	args := []any{
		slog.String("duration", time.Since(begin).String()),
	}
	if err != nil {
		args = append(args, slog.Any("error", err))
		lm.logger.Warn(op+" failed to complete successfully", args...)
		return
	}
	if res != nil {
		args = append(args, slog.Int64("deleted", res.DeletedCount))
	}
	lm.logger.Info(op+" completed successfully", args...)
}

type queryLoggingMiddleware struct {
	logger *slog.Logger
	repo   repository.QueryRepository
}

// QueryLoggingMiddleware adds logging facilities to a query repository.
func QueryLoggingMiddleware(repo repository.QueryRepository, logger *slog.Logger) repository.QueryRepository {
	return &queryLoggingMiddleware{logger, repo}
}

func (lm *queryLoggingMiddleware) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (cur *mongo.Cursor, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Int("stages", stages(pipeline)),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Aggregate failed to complete successfully", args...)
			return
		}
		lm.logger.Info("Aggregate completed successfully", args...)
	}(time.Now())

	return lm.repo.Aggregate(ctx, pipeline, opts...)
}

func (lm *queryLoggingMiddleware) AggregateExhausted(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (docs []bson.M, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Int("stages", stages(pipeline)),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Aggregate exhausted failed to complete successfully", args...)
			return
		}
		args = append(args, slog.Int("documents", len(docs)))
		lm.logger.Info("Aggregate exhausted completed successfully", args...)
	}(time.Now())

	return lm.repo.AggregateExhausted(ctx, pipeline, opts...)
}

// stages reports the pipeline length, or -1 when it is not a known slice type.
func stages(pipeline interface{}) int {
	switch p := pipeline.(type) {
	case mongo.Pipeline:
		return len(p)
	case []bson.D:
		return len(p)
	case bson.A:
		return len(p)
	case []bson.M:
		return len(p)
	case []interface{}:
		return len(p)
	default:
		return -1
	}
}
