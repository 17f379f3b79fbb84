// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package connection

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

var _ Provider = (*HostConfig)(nil)

// HostConfig connects with settings taken from host configuration. The
// database name is resolved once, when the provider is created; the
// connection string is resolved when the first database is requested. Both
// are kept for the provider lifetime even if the source changes later.
//
// With a nil source HostConfig behaves exactly like Direct with fallbackURI.
type HostConfig struct {
	source      ConfigSource
	fallbackURI string
	dbName      string
	config      config

	mu       sync.Mutex
	uri      string
	resolved bool
	client   *mongo.Client
}

// NewHostConfig resolves the database name from source. Resolution errors,
// such as a missing configuration section, are returned unchanged.
func NewHostConfig(source ConfigSource, fallbackURI string, opts ...Option) (*HostConfig, error) {
	hc := &HostConfig{
		source:      source,
		fallbackURI: fallbackURI,
		config:      newConfig(opts),
	}

	if source != nil {
		settings, err := source.Resolve()
		if err != nil {
			return nil, err
		}
		hc.dbName = settings.Database
	}

	return hc, nil
}

// Database returns a database of the memoized client. The configured
// database name takes precedence over name; name is used only when host
// configuration provides none.
func (hc *HostConfig) Database(ctx context.Context, name string) (*mongo.Database, error) {
	client, err := hc.connect(ctx)
	if err != nil {
		return nil, err
	}

	if hc.dbName != "" {
		name = hc.dbName
	}

	return client.Database(name), nil
}

// DatabaseName returns the database name resolved at construction.
func (hc *HostConfig) DatabaseName() string {
	return hc.dbName
}

// URI returns the resolved connection string, empty before first use.
func (hc *HostConfig) URI() string {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	return hc.uri
}

// Client returns the memoized client, or nil before the first Database call.
func (hc *HostConfig) Client() *mongo.Client {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	return hc.client
}

// Close disconnects the memoized client and forgets it. The resolved
// connection string is kept.
func (hc *HostConfig) Close(ctx context.Context) error {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if err := hc.config.disconnect(ctx, hc.client); err != nil {
		return err
	}
	hc.client = nil

	return nil
}

func (hc *HostConfig) connect(ctx context.Context) (*mongo.Client, error) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if hc.client != nil {
		return hc.client, nil
	}

	if !hc.resolved {
		uri, err := hc.resolveURI()
		if err != nil {
			return nil, err
		}
		hc.uri = uri
		hc.resolved = true
	}

	client, err := hc.config.dial(ctx, hc.uri)
	if err != nil {
		return nil, err
	}
	hc.client = client

	return client, nil
}

func (hc *HostConfig) resolveURI() (string, error) {
	if hc.source == nil {
		return hc.fallbackURI, nil
	}

	settings, err := hc.source.Resolve()
	if err != nil {
		return "", err
	}

	return settings.URI, nil
}
