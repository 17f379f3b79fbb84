// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package connection

import (
	"context"
	"fmt"

	"github.com/absmach/mongowrap/internal/env"
	"github.com/absmach/mongowrap/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

var errConfig = errors.New("failed to load mongodb client configuration")

// Config defines the options that are used when connecting to a MongoDB instance.
type Config struct {
	URI  string `env:"URI"  envDefault:""`
	Host string `env:"HOST" envDefault:"localhost"`
	Port string `env:"PORT" envDefault:"27017"`
	Name string `env:"NAME" envDefault:"test"`
}

// Address returns URI when set, otherwise a connection string built from
// Host and Port.
func (c Config) Address() string {
	if c.URI != "" {
		return c.URI
	}
	return fmt.Sprintf("mongodb://%s:%s", c.Host, c.Port)
}

// Connect creates a Direct provider for cfg and returns its configured
// database together with the provider that owns the client.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*mongo.Database, *Direct, error) {
	provider := NewDirect(cfg.Address(), opts...)
	db, err := provider.Database(ctx, cfg.Name)
	if err != nil {
		return nil, nil, err
	}

	return db, provider, nil
}

// Setup loads configuration from environment variables carrying envPrefix
// and connects to the configured database.
func Setup(ctx context.Context, envPrefix string, opts ...Option) (*mongo.Database, *Direct, error) {
	cfg, err := LoadConfig(envPrefix, nil)
	if err != nil {
		return nil, nil, err
	}

	return Connect(ctx, cfg, opts...)
}

// LoadConfig parses Config from environment variables carrying envPrefix.
// A non-nil environment replaces the process environment.
func LoadConfig(envPrefix string, environment map[string]string) (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg, env.Options{Prefix: envPrefix, Environment: environment}); err != nil {
		return Config{}, errors.Wrap(errConfig, err)
	}

	return cfg, nil
}
