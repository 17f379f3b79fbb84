// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package connection

import (
	"github.com/absmach/mongowrap/internal/env"
	"github.com/absmach/mongowrap/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// SectionName is the logical name of the host configuration section.
	SectionName = "mongodb"

	// DefaultEnvPrefix prefixes the variables read by EnvSource.
	DefaultEnvPrefix = "MONGODB_"

	uriKey    = "URI"
	dbNameKey = "DB_NAME"
)

var (
	// ErrMissingConfig indicates the host configuration lacks the mongodb
	// section or one of its entries.
	ErrMissingConfig = errors.New("failed to load mongodb configuration")

	errMissingSection = errors.New("missing configuration section")
	errMissingEntry   = errors.New("missing configuration entry")
)

// Settings is the connection descriptor held by host configuration.
type Settings struct {
	URI      string `env:"URI,required"`
	Database string `env:"DB_NAME,required"`
}

// ConfigSource resolves connection settings from host configuration.
type ConfigSource interface {
	Resolve() (Settings, error)
}

var (
	_ ConfigSource = (*EnvSource)(nil)
	_ ConfigSource = (*FileSource)(nil)
	_ ConfigSource = (*StaticSource)(nil)
)

// EnvSource reads <Prefix>URI and <Prefix>DB_NAME from the environment.
type EnvSource struct {
	// Prefix defaults to DefaultEnvPrefix.
	Prefix string

	// Environment replaces the process environment when set.
	Environment map[string]string
}

func (s EnvSource) Resolve() (Settings, error) {
	prefix := s.Prefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}

	var settings Settings
	if err := env.Parse(&settings, env.Options{Prefix: prefix, Environment: s.Environment}); err != nil {
		return Settings{}, errors.Wrap(ErrMissingConfig, err)
	}

	return settings, nil
}

// FileSource reads a settings file in any format viper understands. The
// file must hold the section databases.mongodb with URI and DB_NAME
// entries, for example in TOML:
//
//	[databases.mongodb]
//	URI = "mongodb://localhost:27017"
//	DB_NAME = "shop"
type FileSource struct {
	Path string
}

func (s FileSource) Resolve() (Settings, error) {
	v := viper.New()
	v.SetConfigFile(s.Path)
	if err := v.ReadInConfig(); err != nil {
		return Settings{}, errors.Wrap(ErrMissingConfig, err)
	}

	section := "databases." + SectionName
	if !v.IsSet(section) {
		return Settings{}, errors.Wrap(ErrMissingConfig, errors.Wrap(errMissingSection, errors.New(section)))
	}

	var settings Settings
	entries := []struct {
		key string
		dst *string
	}{
		{uriKey, &settings.URI},
		{dbNameKey, &settings.Database},
	}
	for _, e := range entries {
		path := section + "." + e.key
		if !v.IsSet(path) {
			return Settings{}, errors.Wrap(ErrMissingConfig, errors.Wrap(errMissingEntry, errors.New(path)))
		}
		*e.dst = v.GetString(path)
	}

	return settings, nil
}

// StaticSource always resolves to the settings it holds.
type StaticSource Settings

func (s StaticSource) Resolve() (Settings, error) {
	return Settings(s), nil
}
