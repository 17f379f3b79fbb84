// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package mongowrap is a thin convenience layer over the MongoDB Go driver.
//
// A Repository resolves one collection handle, from a connection.Provider
// or an existing handle, and hands out find, insert, update, delete and query
// repositories that forward calls to it. Aggregation pipelines can be
// assembled with the pipeline package:
//
//	repo, err := mongowrap.Dial(ctx, "mongodb://localhost:27017", "shop", "orders",
//		mongowrap.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer repo.Close(ctx)
//
//	pl := pipeline.New().
//		Match(bson.D{{Key: "status", Value: "paid"}}).
//		Group([]interface{}{"customer"}, pipeline.Sum("total", "$amount")).
//		Sort(pipeline.Desc("total")).
//		Build()
//	docs, err := repo.Query().AggregateExhausted(ctx, pl)
package mongowrap
