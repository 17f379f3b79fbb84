// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package middleware_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/absmach/mongowrap/repository"
	"github.com/absmach/mongowrap/repository/middleware"
	"github.com/absmach/mongowrap/repository/mocks"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func newInstruments() (*prometheus.CounterVec, *prometheus.SummaryVec, *kitprometheus.Counter, *kitprometheus.Summary) {
	counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "operation_count",
		Help: "Number of repository operations performed.",
	}, []string{"method"})
	latencyVec := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: "operation_latency_seconds",
		Help: "Total duration of repository operations in seconds.",
	}, []string{"method"})

	return counterVec, latencyVec, kitprometheus.NewCounter(counterVec), kitprometheus.NewSummary(latencyVec)
}

func TestMetricsMiddleware(t *testing.T) {
	counterVec, latencyVec, counter, latency := newInstruments()

	coll := new(mocks.Collection)
	coll.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	coll.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).Return(nil, errDriver)
	coll.On("InsertOne", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.InsertOneResult{InsertedID: 1}, nil)
	coll.On("InsertMany", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.InsertManyResult{InsertedIDs: []interface{}{1}}, nil)
	coll.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{}, nil)
	coll.On("UpdateMany", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{}, nil)
	coll.On("DeleteOne", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.DeleteResult{}, nil)
	coll.On("DeleteMany", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.DeleteResult{}, nil)

	find := middleware.FindMetricsMiddleware(repository.NewFindRepository(coll), counter, latency)
	insert := middleware.InsertMetricsMiddleware(repository.NewInsertRepository(coll), counter, latency)
	update := middleware.UpdateMetricsMiddleware(repository.NewUpdateRepository(coll), counter, latency)
	del := middleware.DeleteMetricsMiddleware(repository.NewDeleteRepository(coll), counter, latency)
	query := middleware.QueryMetricsMiddleware(repository.NewQueryRepository(coll), counter, latency)

	ctx := context.Background()
	_, _ = find.Find(ctx, nil)
	_, _ = find.Find(ctx, bson.D{})
	_, _ = find.FilterQuery(ctx, mongo.Pipeline{})
	_, _ = insert.InsertOne(ctx, bson.D{})
	_, _ = insert.InsertMany(ctx, []interface{}{bson.D{}})
	_, _ = update.UpdateOne(ctx, bson.D{}, bson.D{})
	_, _ = update.UpdateMany(ctx, bson.D{}, bson.D{})
	_, _ = update.Upsert(ctx, bson.D{}, bson.D{})
	_, _ = del.DeleteOne(ctx, bson.D{})
	_, _ = del.DeleteMany(ctx, bson.D{})
	_, _ = query.Aggregate(ctx, mongo.Pipeline{})
	_, _ = query.AggregateExhausted(ctx, mongo.Pipeline{})

	cases := []struct {
		method string
		count  float64
	}{
		{"find", 2},
		{"filter_query", 1},
		{"insert_one", 1},
		{"insert_many", 1},
		{"update_one", 1},
		{"update_many", 1},
		{"upsert", 1},
		{"delete_one", 1},
		{"delete_many", 1},
		{"aggregate", 1},
		{"aggregate_exhausted", 1},
	}

	for _, tc := range cases {
		got := testutil.ToFloat64(counterVec.WithLabelValues(tc.method))
		assert.Equal(t, tc.count, got, fmt.Sprintf("%s: expected %v calls got %v", tc.method, tc.count, got))
	}
	assert.Equal(t, len(cases), testutil.CollectAndCount(latencyVec), "expected one latency series per method")
}
