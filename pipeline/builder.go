// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	matchOp   = "$match"
	projectOp = "$project"
	groupOp   = "$group"
	sortOp    = "$sort"
	skipOp    = "$skip"
	limitOp   = "$limit"
	unwindOp  = "$unwind"

	idKey = "_id"
)

// Builder accumulates aggregation stages in the order they are appended.
// Every stage method returns the receiver so calls can be chained. A Builder
// is not reset by Build; use a fresh Builder per pipeline.
type Builder struct {
	stages mongo.Pipeline
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{stages: mongo.Pipeline{}}
}

// Match appends a $match stage. The criteria are not validated.
func (b *Builder) Match(criteria interface{}) *Builder {
	return b.Stage(matchOp, criteria)
}

// Project appends a $project stage. fields maps output names to 1/0 or to
// computed expressions.
func (b *Builder) Project(fields interface{}) *Builder {
	return b.Stage(projectOp, fields)
}

// Group appends a $group stage. Every string key k contributes k: "$k" to
// the _id document; bson.E, bson.D, bson.M and map[string]interface{} keys
// are merged into _id as they are. Keys of any other type are ignored.
// Accumulators follow _id in the order given.
func (b *Builder) Group(keys []interface{}, accumulators ...Accumulator) *Builder {
	id := bson.D{}
	for _, key := range keys {
		switch k := key.(type) {
		case string:
			id = set(id, k, "$"+k)
		case bson.E:
			id = set(id, k.Key, k.Value)
		case bson.D:
			for _, e := range k {
				id = set(id, e.Key, e.Value)
			}
		case bson.M:
			id = merge(id, k)
		case map[string]interface{}:
			id = merge(id, k)
		}
	}

	group := bson.D{{Key: idKey, Value: id}}
	for _, acc := range accumulators {
		group = set(group, acc.Name, acc.Expr)
	}

	return b.Stage(groupOp, group)
}

// Sort appends a $sort stage built from one or more fields, keeping the
// order in which they are given.
func (b *Builder) Sort(fields ...SortField) *Builder {
	order := bson.D{}
	for _, f := range fields {
		order = set(order, f.Field, f.Direction)
	}

	return b.Stage(sortOp, order)
}

// Skip appends a $skip stage. n is passed to the server untouched.
func (b *Builder) Skip(n int64) *Builder {
	return b.Stage(skipOp, n)
}

// Limit appends a $limit stage. n is passed to the server untouched.
func (b *Builder) Limit(n int64) *Builder {
	return b.Stage(limitOp, n)
}

// Unwind appends an $unwind stage with field as given, either a field path
// such as "$items" or a document with path and options.
func (b *Builder) Unwind(field interface{}) *Builder {
	return b.Stage(unwindOp, field)
}

// Stage appends an arbitrary single-operator stage, for operators the
// Builder has no dedicated method for.
func (b *Builder) Stage(operator string, payload interface{}) *Builder {
	b.stages = append(b.stages, bson.D{{Key: operator, Value: payload}})
	return b
}

// Build returns the stages appended so far. The returned pipeline does not
// change when more stages are appended afterwards.
func (b *Builder) Build() mongo.Pipeline {
	p := make(mongo.Pipeline, len(b.stages))
	copy(p, b.stages)
	return p
}

// Len returns the number of stages appended so far.
func (b *Builder) Len() int {
	return len(b.stages)
}

// set replaces the value of key in place or appends it when missing.
func set(d bson.D, key string, value interface{}) bson.D {
	for i := range d {
		if d[i].Key == key {
			d[i].Value = value
			return d
		}
	}
	return append(d, bson.E{Key: key, Value: value})
}

// merge adds the entries of m in sorted key order, since maps carry none.
func merge(d bson.D, m map[string]interface{}) bson.D {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		d = set(d, k, m[k])
	}
	return d
}
