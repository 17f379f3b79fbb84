// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package connection

import (
	"context"
	"log/slog"

	"github.com/absmach/mongowrap/logger"
	"github.com/absmach/mongowrap/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrConnect indicates the driver failed to create a client.
	ErrConnect = errors.New("failed to connect to mongodb server")

	// ErrDisconnect indicates the driver failed to close a client.
	ErrDisconnect = errors.New("failed to disconnect from mongodb server")
)

// Provider hands out database handles backed by one lazily created client.
type Provider interface {
	// Database returns a handle to the named database, creating the client
	// on first use.
	Database(ctx context.Context, name string) (*mongo.Database, error)

	// Close disconnects the client if one was created.
	Close(ctx context.Context) error
}

// ConnectFunc creates a driver client. mongo.Connect is the default.
type ConnectFunc func(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error)

// Option configures a Provider.
type Option func(*config)

type config struct {
	clientOpts []*options.ClientOptions
	connect    ConnectFunc
	logger     *slog.Logger
}

// WithClientOptions passes driver options to the client. They are applied
// after the connection string, so they take precedence over it.
func WithClientOptions(opts ...*options.ClientOptions) Option {
	return func(c *config) {
		c.clientOpts = append(c.clientOpts, opts...)
	}
}

// WithConnector replaces the function used to create the client.
func WithConnector(connect ConnectFunc) Option {
	return func(c *config) {
		if connect != nil {
			c.connect = connect
		}
	}
}

// WithLogger sets the logger used to report client lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		connect: mongo.Connect,
		logger:  logger.NewMock(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) dial(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := append([]*options.ClientOptions{options.Client().ApplyURI(uri)}, c.clientOpts...)
	client, err := c.connect(ctx, opts...)
	if err != nil {
		c.logger.Error("Failed to create mongodb client", slog.Any("error", err))
		return nil, errors.Wrap(ErrConnect, err)
	}
	c.logger.Debug("Created mongodb client")

	return client, nil
}

func (c config) disconnect(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		return errors.Wrap(ErrDisconnect, err)
	}
	c.logger.Debug("Disconnected mongodb client")

	return nil
}
