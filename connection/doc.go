// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package connection resolves MongoDB connection strings and database
// handles.
//
// Two providers are available. Direct takes an explicit connection string.
// HostConfig takes the connection string and database name from a
// ConfigSource: environment variables (EnvSource), a settings file
// (FileSource) or fixed values (StaticSource). Both create their client on
// first use and keep it until Close.
package connection
