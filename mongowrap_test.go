// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mongowrap_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/absmach/mongowrap"
	"github.com/absmach/mongowrap/connection"
	"github.com/absmach/mongowrap/logger"
	"github.com/absmach/mongowrap/pkg/errors"
	repoerr "github.com/absmach/mongowrap/pkg/errors/repository"
	"github.com/absmach/mongowrap/pkg/uuid"
	"github.com/absmach/mongowrap/repository/mocks"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const (
	unreachableURI = "mongodb://localhost:27017"
	testDB         = "shop"
	testColl       = "orders"
)

var errDriver = errors.New("driver failure")

func newMockCollection() *mocks.Collection {
	coll := new(mocks.Collection)
	coll.On("Name").Return(testColl)

	return coll
}

func TestNewFromCollection(t *testing.T) {
	_, err := mongowrap.NewFromCollection(nil)
	assert.True(t, errors.Contains(err, repoerr.ErrMissingCollection), fmt.Sprintf("expected %s got %s", repoerr.ErrMissingCollection, err))

	coll := newMockCollection()
	repo, err := mongowrap.NewFromCollection(coll)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Same(t, coll, repo.Collection(), "expected the given handle to be shared")
	assert.Nil(t, repo.Close(context.Background()), "closing a wrapped handle should be a no-op")
}

func TestAccessorsShareHandle(t *testing.T) {
	coll := newMockCollection()
	repo, err := mongowrap.NewFromCollection(coll)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	find1, find2 := repo.Find(), repo.Find()
	insert1, insert2 := repo.Insert(), repo.Insert()
	update1, update2 := repo.Update(), repo.Update()
	delete1, delete2 := repo.Delete(), repo.Delete()
	query1, query2 := repo.Query(), repo.Query()

	assert.NotSame(t, find1, find2, "find accessor should return independent wrappers")
	assert.NotSame(t, insert1, insert2, "insert accessor should return independent wrappers")
	assert.NotSame(t, update1, update2, "update accessor should return independent wrappers")
	assert.NotSame(t, delete1, delete2, "delete accessor should return independent wrappers")
	assert.NotSame(t, query1, query2, "query accessor should return independent wrappers")

	doc := bson.D{{Key: "_id", Value: 1}}
	coll.On("InsertOne", mock.Anything, doc, mock.Anything).Return(&mongo.InsertOneResult{InsertedID: 1}, nil)
	coll.On("Find", mock.Anything, doc, mock.Anything).Return(nil, nil)
	coll.On("DeleteOne", mock.Anything, doc, mock.Anything).Return(&mongo.DeleteResult{DeletedCount: 1}, nil)

	_, err = insert1.InsertOne(context.Background(), doc)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	_, err = find2.Find(context.Background(), doc)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	_, err = delete2.DeleteOne(context.Background(), doc)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	coll.AssertNumberOfCalls(t, "InsertOne", 1)
	coll.AssertNumberOfCalls(t, "Find", 1)
	coll.AssertNumberOfCalls(t, "DeleteOne", 1)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	_, err := mongowrap.New(ctx, nil, testDB, testColl)
	assert.True(t, errors.Contains(err, repoerr.ErrMissingProvider), fmt.Sprintf("expected %s got %s", repoerr.ErrMissingProvider, err))

	bad := connection.NewDirect("not-a-mongodb-uri")
	_, err = mongowrap.New(ctx, bad, testDB, testColl)
	assert.True(t, errors.Contains(err, connection.ErrConnect), fmt.Sprintf("expected %s got %s", connection.ErrConnect, err))

	provider := connection.NewDirect(unreachableURI)
	repo, err := mongowrap.New(ctx, provider, testDB, testColl)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	coll, ok := repo.Collection().(*mongo.Collection)
	require.True(t, ok, "expected a driver collection handle")
	assert.Equal(t, testColl, coll.Name(), "unexpected collection name")
	assert.Equal(t, testDB, coll.Database().Name(), "unexpected database name")

	assert.Nil(t, repo.Close(ctx), "unexpected error on close")
	assert.NotNil(t, provider.Client(), "closing the facade must leave a caller-owned provider open")
	assert.Nil(t, provider.Close(ctx), "unexpected error on provider close")
}

func TestNewWithHostConfig(t *testing.T) {
	ctx := context.Background()

	direct, err := mongowrap.New(ctx, connection.NewDirect(unreachableURI), testDB, testColl)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	provider, err := connection.NewHostConfig(nil, unreachableURI)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	host, err := mongowrap.New(ctx, provider, testDB, testColl)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	dc := direct.Collection().(*mongo.Collection)
	hc := host.Collection().(*mongo.Collection)
	assert.Equal(t, dc.Name(), hc.Name(), "host config without source should resolve the same collection")
	assert.Equal(t, dc.Database().Name(), hc.Database().Name(), "host config without source should resolve the same database")
	assert.Equal(t, unreachableURI, provider.URI(), "host config without source should use the fallback uri")

	configured, err := connection.NewHostConfig(connection.StaticSource{URI: unreachableURI, Database: "configured"}, "")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	repo, err := mongowrap.New(ctx, configured, testDB, testColl)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, "configured", repo.Collection().(*mongo.Collection).Database().Name(), "configured database should take precedence")
}

func TestDial(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	lg, err := logger.New(&buf, "debug")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	repo, err := mongowrap.Dial(ctx, unreachableURI, testDB, testColl, mongowrap.WithConnectionOptions(connection.WithLogger(lg)))
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Contains(t, buf.String(), "Created mongodb client", "expected connection options to reach the provider")

	assert.Nil(t, repo.Close(ctx), "unexpected error on close")
	assert.Contains(t, buf.String(), "Disconnected mongodb client", "expected Close to disconnect the owned client")

	_, err = mongowrap.Dial(ctx, "not-a-mongodb-uri", testDB, testColl)
	assert.True(t, errors.Contains(err, connection.ErrConnect), fmt.Sprintf("expected %s got %s", connection.ErrConnect, err))
}

func TestMiddlewareOptions(t *testing.T) {
	var buf bytes.Buffer
	lg, err := logger.New(&buf, "info")
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("mongowrap")

	counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "operation_count", Help: "count"}, []string{"method"})
	latencyVec := prometheus.NewSummaryVec(prometheus.SummaryOpts{Name: "operation_latency_seconds", Help: "latency"}, []string{"method"})

	coll := newMockCollection()
	coll.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{UpsertedCount: 1}, nil)
	coll.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).Return(nil, errDriver)

	repo, err := mongowrap.NewFromCollection(coll,
		mongowrap.WithLogger(lg),
		mongowrap.WithTracer(tracer),
		mongowrap.WithMetrics(kitprometheus.NewCounter(counterVec), kitprometheus.NewSummary(latencyVec)),
	)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	_, err = repo.Update().Upsert(context.Background(), bson.D{}, bson.D{})
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	_, err = repo.Query().Aggregate(context.Background(), mongo.Pipeline{})
	assert.True(t, errors.Contains(err, errDriver), fmt.Sprintf("expected %s got %s", errDriver, err))

	assert.Contains(t, buf.String(), `"collection":"orders"`, "log entries should carry the collection name")
	assert.Contains(t, buf.String(), "Upsert completed successfully", "expected upsert log entry")
	assert.Contains(t, buf.String(), "Aggregate failed to complete successfully", "expected aggregate log entry")

	ended := recorder.Ended()
	require.Len(t, ended, 2, "expected one span per call")
	assert.Equal(t, "upsert", ended[0].Name(), "unexpected span name")
	assert.Equal(t, "aggregate", ended[1].Name(), "unexpected span name")

	assert.Equal(t, float64(1), testutil.ToFloat64(counterVec.WithLabelValues("upsert")), "expected upsert to be counted")
	assert.Equal(t, float64(1), testutil.ToFloat64(counterVec.WithLabelValues("aggregate")), "expected aggregate to be counted")
}

func TestWithPrometheus(t *testing.T) {
	cases := []struct {
		desc string
		name string
	}{
		{desc: "first repository of a collection", name: testColl},
		{desc: "second repository of the same collection", name: testColl},
		{desc: "repository of another collection", name: "customers"},
	}

	for _, tc := range cases {
		coll := new(mocks.Collection)
		coll.On("Name").Return(tc.name)
		coll.On("DeleteOne", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.DeleteResult{}, nil)

		var repo *mongowrap.Repository
		var err error
		assert.NotPanics(t, func() {
			repo, err = mongowrap.NewFromCollection(coll, mongowrap.WithPrometheus("mongowrap", "facade_test"))
		}, fmt.Sprintf("%s: building the repository should not panic", tc.desc))
		require.Nil(t, err, fmt.Sprintf("%s: unexpected error: %s", tc.desc, err))

		_, err = repo.Delete().DeleteOne(context.Background(), bson.D{})
		assert.Nil(t, err, fmt.Sprintf("%s: unexpected error: %s", tc.desc, err))
	}

	count, err := testutil.GatherAndCount(prometheus.DefaultGatherer, "mongowrap_facade_test_operation_count")
	assert.Nil(t, err, fmt.Sprintf("unexpected error gathering metrics: %s", err))
	assert.Equal(t, 2, count, "expected one delete series per collection")
}

func TestIDProviderAssignsDocumentIDs(t *testing.T) {
	var idp mongowrap.IDProvider = uuid.New()

	docs := []interface{}{}
	ids := []interface{}{}
	for i := 0; i < 3; i++ {
		id, err := idp.ID()
		require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
		docs = append(docs, bson.D{{Key: "_id", Value: id}})
		ids = append(ids, id)
	}

	coll := newMockCollection()
	coll.On("InsertMany", mock.Anything, docs, mock.Anything).Return(&mongo.InsertManyResult{InsertedIDs: ids}, nil)

	repo, err := mongowrap.NewFromCollection(coll)
	require.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))

	res, err := repo.Insert().InsertMany(context.Background(), docs)
	assert.Nil(t, err, fmt.Sprintf("unexpected error: %s", err))
	assert.Equal(t, ids, res.InsertedIDs, "inserted ids should be the generated ones")
}
