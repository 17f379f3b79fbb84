// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package repository

import (
	"context"
	stderrors "errors"

	"github.com/absmach/mongowrap/pkg/errors"
	repoerr "github.com/absmach/mongowrap/pkg/errors/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ InsertRepository = (*insertRepository)(nil)

// WriteFailure describes a document the server refused to store.
type WriteFailure struct {
	// Index is the position of the document in the slice passed to InsertMany.
	Index   int
	Code    int
	Message string
}

// InsertManyResult reports the outcome of a bulk insert.
type InsertManyResult struct {
	// InsertedIDs holds the _id of every stored document, in input order.
	InsertedIDs []interface{}
	Failures    []WriteFailure
}

// Partial reports whether some documents were refused.
func (res InsertManyResult) Partial() bool {
	return len(res.Failures) > 0
}

type insertRepository struct {
	coll Collection
}

// NewInsertRepository instantiates an InsertRepository over coll.
func NewInsertRepository(coll Collection) InsertRepository {
	return &insertRepository{
		coll: coll,
	}
}

func (ir *insertRepository) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	return ir.coll.InsertOne(ctx, document, opts...)
}

func (ir *insertRepository) InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (InsertManyResult, error) {
	res, err := ir.coll.InsertMany(ctx, documents, opts...)
	if err == nil {
		return InsertManyResult{InsertedIDs: res.InsertedIDs}, nil
	}

	var bwe mongo.BulkWriteException
	if !stderrors.As(err, &bwe) {
		// Unacknowledged writes still report the ids assigned by the driver.
		result := InsertManyResult{}
		if res != nil {
			result.InsertedIDs = res.InsertedIDs
		}
		return result, err
	}

	result := InsertManyResult{
		InsertedIDs: []interface{}{},
		Failures:    make([]WriteFailure, 0, len(bwe.WriteErrors)),
	}
	failed := make(map[int]bool, len(bwe.WriteErrors))
	first := len(documents)
	for _, we := range bwe.WriteErrors {
		result.Failures = append(result.Failures, WriteFailure{
			Index:   we.Index,
			Code:    we.Code,
			Message: we.Message,
		})
		failed[we.Index] = true
		if we.Index < first {
			first = we.Index
		}
	}

	if res != nil {
		// An ordered insert stops at the first refused document.
		last := len(res.InsertedIDs)
		if ordered(opts) && first < last {
			last = first
		}
		for i := 0; i < last; i++ {
			if !failed[i] {
				result.InsertedIDs = append(result.InsertedIDs, res.InsertedIDs[i])
			}
		}
	}

	return result, errors.Wrap(repoerr.ErrPartialInsert, err)
}

func ordered(opts []*options.InsertManyOptions) bool {
	merged := options.MergeInsertManyOptions(opts...)
	if merged.Ordered == nil {
		return true
	}

	return *merged.Ordered
}
