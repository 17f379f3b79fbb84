// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mongowrap

// IDProvider specifies an API for generating unique identifiers. Callers use
// it to assign string _id values to documents before inserting them, so the
// ids are known even when a bulk insert fails part way. pkg/uuid provides a
// UUID implementation.
//
//	id, err := idp.ID()
//	_, err = repo.Insert().InsertOne(ctx, bson.D{{Key: "_id", Value: id}})
type IDProvider interface {
	// ID generates the unique identifier.
	ID() (string, error)
}
