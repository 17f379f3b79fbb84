// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package pipeline

import "go.mongodb.org/mongo-driver/bson"

const (
	// Ascending sorts a field from lowest to highest.
	Ascending = 1
	// Descending sorts a field from highest to lowest.
	Descending = -1
)

// SortField pairs a field name with a sort direction.
type SortField struct {
	Field     string
	Direction int
}

// Asc sorts field in ascending order.
func Asc(field string) SortField {
	return SortField{Field: field, Direction: Ascending}
}

// Desc sorts field in descending order.
func Desc(field string) SortField {
	return SortField{Field: field, Direction: Descending}
}

// By sorts field in the given direction. The direction is not validated.
func By(field string, direction int) SortField {
	return SortField{Field: field, Direction: direction}
}

// Accumulator is a named expression placed next to _id in a $group stage.
type Accumulator struct {
	Name string
	Expr interface{}
}

// Acc returns an accumulator with a caller-built expression.
func Acc(name string, expr interface{}) Accumulator {
	return Accumulator{Name: name, Expr: expr}
}

// Sum accumulates {$sum: expr} into name.
func Sum(name string, expr interface{}) Accumulator {
	return op(name, "$sum", expr)
}

// Avg accumulates {$avg: expr} into name.
func Avg(name string, expr interface{}) Accumulator {
	return op(name, "$avg", expr)
}

// Min accumulates {$min: expr} into name.
func Min(name string, expr interface{}) Accumulator {
	return op(name, "$min", expr)
}

// Max accumulates {$max: expr} into name.
func Max(name string, expr interface{}) Accumulator {
	return op(name, "$max", expr)
}

// First accumulates {$first: expr} into name.
func First(name string, expr interface{}) Accumulator {
	return op(name, "$first", expr)
}

// Last accumulates {$last: expr} into name.
func Last(name string, expr interface{}) Accumulator {
	return op(name, "$last", expr)
}

// Push accumulates {$push: expr} into name.
func Push(name string, expr interface{}) Accumulator {
	return op(name, "$push", expr)
}

// AddToSet accumulates {$addToSet: expr} into name.
func AddToSet(name string, expr interface{}) Accumulator {
	return op(name, "$addToSet", expr)
}

// Count counts the documents of each group into name.
func Count(name string) Accumulator {
	return op(name, "$sum", 1)
}

func op(name, operator string, expr interface{}) Accumulator {
	return Accumulator{Name: name, Expr: bson.D{{Key: operator, Value: expr}}}
}
