// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package pipeline assembles MongoDB aggregation pipelines.
//
// A Builder appends one single-operator stage per call and returns itself,
// so a pipeline reads top to bottom:
//
//	p := pipeline.New().
//		Match(bson.D{{Key: "status", Value: "active"}}).
//		Group([]interface{}{"category", bson.E{Key: "month", Value: bson.D{{Key: "$month", Value: "$timestamp"}}}},
//			pipeline.Sum("total", "$amount")).
//		Sort(pipeline.Desc("total")).
//		Limit(10).
//		Build()
//
// Stages are kept exactly in call order. Nothing is validated or reordered;
// malformed stages surface as server errors when the pipeline runs.
package pipeline
