// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mongowrap

import (
	"context"
	"log/slog"

	"github.com/absmach/mongowrap/connection"
	repoerr "github.com/absmach/mongowrap/pkg/errors/repository"
	"github.com/absmach/mongowrap/pkg/prometheus"
	"github.com/absmach/mongowrap/repository"
	"github.com/absmach/mongowrap/repository/middleware"
	"github.com/absmach/mongowrap/repository/tracing"
	"github.com/go-kit/kit/metrics"
	"go.opentelemetry.io/otel/trace"
)

// Repository gives access to the repositories of one collection. The
// collection handle is resolved once and shared by every repository the
// accessors return.
type Repository struct {
	coll     repository.Collection
	provider connection.Provider
	owned    bool

	logger   *slog.Logger
	counter  metrics.Counter
	latency  metrics.Histogram
	tracer   trace.Tracer
	connOpts []connection.Option

	// Prometheus instruments are made once the options are applied.
	promNamespace string
	promSubsystem string
	promEnabled   bool
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger logs every repository call. Entries carry the collection name.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// WithMetrics counts repository calls and observes their latency in seconds.
// Both instruments are labelled by method.
func WithMetrics(counter metrics.Counter, latency metrics.Histogram) Option {
	return func(r *Repository) {
		r.counter = counter
		r.latency = latency
	}
}

// WithPrometheus uses Prometheus instruments registered under namespace and
// subsystem as WithMetrics does. Repositories built with the same namespace
// and subsystem share the instruments and are told apart by the collection
// label.
func WithPrometheus(namespace, subsystem string) Option {
	return func(r *Repository) {
		r.promEnabled = true
		r.promNamespace = namespace
		r.promSubsystem = subsystem
	}
}

// WithTracer starts a span for every repository call.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Repository) {
		r.tracer = tracer
	}
}

// WithConnectionOptions configures the provider created by Dial. Other
// constructors ignore it.
func WithConnectionOptions(opts ...connection.Option) Option {
	return func(r *Repository) {
		r.connOpts = append(r.connOpts, opts...)
	}
}

// New resolves the collection named collection in database through
// provider. The caller keeps ownership of provider; Close leaves it open.
func New(ctx context.Context, provider connection.Provider, database, collection string, opts ...Option) (*Repository, error) {
	if provider == nil {
		return nil, repoerr.ErrMissingProvider
	}

	db, err := provider.Database(ctx, database)
	if err != nil {
		return nil, err
	}

	r := newRepository(db.Collection(collection), opts)
	r.provider = provider

	return r, nil
}

// Dial connects to uri with a Direct provider owned by the returned
// Repository, so Close disconnects the client.
func Dial(ctx context.Context, uri, database, collection string, opts ...Option) (*Repository, error) {
	cfg := &Repository{}
	for _, opt := range opts {
		opt(cfg)
	}

	provider := connection.NewDirect(uri, cfg.connOpts...)
	r, err := New(ctx, provider, database, collection, opts...)
	if err != nil {
		return nil, err
	}
	r.owned = true

	return r, nil
}

// NewFromCollection wraps an existing collection handle.
func NewFromCollection(coll repository.Collection, opts ...Option) (*Repository, error) {
	if coll == nil {
		return nil, repoerr.ErrMissingCollection
	}

	return newRepository(coll, opts), nil
}

func newRepository(coll repository.Collection, opts []Option) *Repository {
	r := &Repository{coll: coll}
	for _, opt := range opts {
		opt(r)
	}
	if r.promEnabled {
		counter, latency := prometheus.MakeMetrics(r.promNamespace, r.promSubsystem)
		r.counter = counter.With(prometheus.CollectionLabel, coll.Name())
		r.latency = latency.With(prometheus.CollectionLabel, coll.Name())
	}
	if r.logger != nil {
		r.logger = r.logger.With(slog.String("collection", coll.Name()))
	}
	if r.counter == nil || r.latency == nil {
		r.counter, r.latency = nil, nil
	}

	return r
}

// Collection returns the shared collection handle.
func (r *Repository) Collection() repository.Collection {
	return r.coll
}

// Find returns a new FindRepository over the shared collection.
func (r *Repository) Find() repository.FindRepository {
	repo := repository.NewFindRepository(r.coll)
	if r.tracer != nil {
		repo = tracing.FindRepositoryMiddleware(r.tracer, r.coll.Name(), repo)
	}
	if r.logger != nil {
		repo = middleware.FindLoggingMiddleware(repo, r.logger)
	}
	if r.counter != nil {
		repo = middleware.FindMetricsMiddleware(repo, r.counter, r.latency)
	}

	return repo
}

// Insert returns a new InsertRepository over the shared collection.
func (r *Repository) Insert() repository.InsertRepository {
	repo := repository.NewInsertRepository(r.coll)
	if r.tracer != nil {
		repo = tracing.InsertRepositoryMiddleware(r.tracer, r.coll.Name(), repo)
	}
	if r.logger != nil {
		repo = middleware.InsertLoggingMiddleware(repo, r.logger)
	}
	if r.counter != nil {
		repo = middleware.InsertMetricsMiddleware(repo, r.counter, r.latency)
	}

	return repo
}

// Update returns a new UpdateRepository over the shared collection.
func (r *Repository) Update() repository.UpdateRepository {
	repo := repository.NewUpdateRepository(r.coll)
	if r.tracer != nil {
		repo = tracing.UpdateRepositoryMiddleware(r.tracer, r.coll.Name(), repo)
	}
	if r.logger != nil {
		repo = middleware.UpdateLoggingMiddleware(repo, r.logger)
	}
	if r.counter != nil {
		repo = middleware.UpdateMetricsMiddleware(repo, r.counter, r.latency)
	}

	return repo
}

// Delete returns a new DeleteRepository over the shared collection.
func (r *Repository) Delete() repository.DeleteRepository {
	repo := repository.NewDeleteRepository(r.coll)
	if r.tracer != nil {
		repo = tracing.DeleteRepositoryMiddleware(r.tracer, r.coll.Name(), repo)
	}
	if r.logger != nil {
		repo = middleware.DeleteLoggingMiddleware(repo, r.logger)
	}
	if r.counter != nil {
		repo = middleware.DeleteMetricsMiddleware(repo, r.counter, r.latency)
	}

	return repo
}

// Query returns a new QueryRepository over the shared collection.
func (r *Repository) Query() repository.QueryRepository {
	repo := repository.NewQueryRepository(r.coll)
	if r.tracer != nil {
		repo = tracing.QueryRepositoryMiddleware(r.tracer, r.coll.Name(), repo)
	}
	if r.logger != nil {
		repo = middleware.QueryLoggingMiddleware(repo, r.logger)
	}
	if r.counter != nil {
		repo = middleware.QueryMetricsMiddleware(repo, r.counter, r.latency)
	}

	return repo
}

// Close disconnects the client when the Repository was created by Dial.
func (r *Repository) Close(ctx context.Context) error {
	if !r.owned || r.provider == nil {
		return nil
	}

	return r.provider.Close(ctx)
}
