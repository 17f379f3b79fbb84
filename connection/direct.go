// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package connection

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

var _ Provider = (*Direct)(nil)

// Direct connects with an explicit connection string.
type Direct struct {
	uri    string
	config config

	mu     sync.Mutex
	client *mongo.Client
}

// NewDirect returns a provider for uri. No connection is made until the
// first call to Database.
func NewDirect(uri string, opts ...Option) *Direct {
	return &Direct{
		uri:    uri,
		config: newConfig(opts),
	}
}

// Database returns the named database of the memoized client.
func (d *Direct) Database(ctx context.Context, name string) (*mongo.Database, error) {
	client, err := d.connect(ctx)
	if err != nil {
		return nil, err
	}

	return client.Database(name), nil
}

// Client returns the memoized client, or nil before the first Database call.
func (d *Direct) Client() *mongo.Client {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.client
}

// URI returns the connection string the provider was created with.
func (d *Direct) URI() string {
	return d.uri
}

// Close disconnects the memoized client and forgets it.
func (d *Direct) Close(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.config.disconnect(ctx, d.client); err != nil {
		return err
	}
	d.client = nil

	return nil
}

func (d *Direct) connect(ctx context.Context) (*mongo.Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client != nil {
		return d.client, nil
	}

	client, err := d.config.dial(ctx, d.uri)
	if err != nil {
		return nil, err
	}
	d.client = client

	return client, nil
}
