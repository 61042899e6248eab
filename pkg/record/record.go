// Package record implements the access protocol shared by every GRC resource:
// paged listing with free-text search, dual-key addressing (store-assigned
// identity vs caller-assigned business key), and single/bulk write paths.
// Resources parametrize the protocol with a Descriptor instead of
// reimplementing it.
package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Executor is the document-store contract the protocol runs on. It is
// implemented by *mongodb.Adapter; tests supply an in-memory fake.
type Executor interface {
	CountDocuments(ctx context.Context, collection string, filter interface{}) (int64, error)
	Find(ctx context.Context, collection string, filter interface{}, sort interface{}, skip, limit int64, results interface{}) error
	FindOne(ctx context.Context, collection string, filter interface{}, result interface{}) error
	InsertOne(ctx context.Context, collection string, doc interface{}) (*mongo.InsertOneResult, error)
	InsertMany(ctx context.Context, collection string, docs []interface{}) (*mongo.InsertManyResult, error)
	ReplaceOne(ctx context.Context, collection string, filter, replacement interface{}) (*mongo.UpdateResult, error)
	UpdateOne(ctx context.Context, collection string, filter, update interface{}) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, collection string, filter interface{}) (*mongo.DeleteResult, error)
	DeleteMany(ctx context.Context, collection string, filter interface{}) (*mongo.DeleteResult, error)
	EnsureUniqueIndex(ctx context.Context, collection, field string) error
}

// ErrNotFound reports a point operation that targeted an absent id or key.
var ErrNotFound = errors.New("record not found")

// ErrUpdateFailed reports a replace that matched a known id but modified
// nothing. The HTTP layer surfaces it as a server error.
var ErrUpdateFailed = errors.New("record update failed")

// ErrStoreUnavailable marks infrastructure failures of the underlying store.
// Match it with errors.Is; the concrete failure stays in the chain.
var ErrStoreUnavailable = errors.New("store unavailable")

// StoreError wraps a store-level failure with the operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: store unavailable: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStoreUnavailable) match wrapped store failures.
func (e *StoreError) Is(target error) bool { return target == ErrStoreUnavailable }

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// Descriptor parametrizes the shared protocol for one resource type. The
// accessor funcs take the place of reflection: each resource declares its
// collection, searchable fields and keyed-update field set exactly once.
type Descriptor[T any] struct {
	// Collection is the physical collection name. Collection names are
	// opaque configuration; several carry spaces ("Control Activities").
	Collection string

	// Path is the HTTP path segment under /api.
	Path string

	// SearchFields are the BSON names of the free-text fields included in
	// the search OR-match. Fixed per resource, never auto-discovered.
	SearchFields []string

	// KeyField is the BSON name of the caller-assigned business key.
	KeyField string

	// KeyedPatch returns the $set document for the keyed update: every
	// updatable field of the resource, never the key, the identity, or the
	// creation date.
	KeyedPatch func(*T) bson.M

	ID         func(*T) primitive.ObjectID
	SetID      func(*T, primitive.ObjectID)
	Key        func(*T) float64
	Created    func(*T) time.Time
	SetCreated func(*T, time.Time)

	// Paging selects between fixed and caller-controlled page size.
	Paging PageSizing

	// EnforceUniqueKey creates a unique index on KeyField at startup.
	// Off by default: duplicate keys are tolerated and keyed updates hit
	// the first match only.
	EnforceUniqueKey bool
}

// Validate checks that the descriptor is fully populated.
func (d Descriptor[T]) Validate() error {
	switch {
	case d.Collection == "":
		return errors.New("descriptor: collection is required")
	case d.Path == "":
		return errors.New("descriptor: path is required")
	case d.KeyField == "":
		return errors.New("descriptor: key field is required")
	case d.KeyedPatch == nil:
		return errors.New("descriptor: keyed patch builder is required")
	case d.ID == nil || d.SetID == nil:
		return errors.New("descriptor: identity accessors are required")
	case d.Key == nil:
		return errors.New("descriptor: key accessor is required")
	case d.Created == nil || d.SetCreated == nil:
		return errors.New("descriptor: creation date accessors are required")
	}
	return nil
}
