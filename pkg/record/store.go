package record

import (
	"context"
	"errors"
	"fmt"

	"github.com/grcledger/grcledger/pkg/observability/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DateField is the BSON name of the server-managed creation timestamp shared
// by every resource.
const DateField = "Date"

// UpdateOutcome is the three-state result of a keyed update. It separates
// "key not found" from "found but nothing changed", which the underlying
// modified-count primitive conflates.
type UpdateOutcome int

const (
	// OutcomeNotFound means no record carries the requested key.
	OutcomeNotFound UpdateOutcome = iota
	// OutcomeUnchanged means the key matched but the patch equaled the
	// stored values.
	OutcomeUnchanged
	// OutcomeModified means the key matched and the record was rewritten.
	OutcomeModified
)

// Store provides all identity-addressed and filter-addressed access to one
// resource's collection. It holds no state beyond the shared executor handle;
// every operation is a stateless request/response.
type Store[T any] struct {
	exec Executor
	desc Descriptor[T]
	log  logger.Logger
}

// NewStore validates the descriptor and binds it to an executor.
func NewStore[T any](exec Executor, desc Descriptor[T], log logger.Logger) (*Store[T], error) {
	if exec == nil {
		return nil, errors.New("executor is required")
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &Store[T]{exec: exec, desc: desc, log: log}, nil
}

// Descriptor returns the resource configuration the store was built with.
func (s *Store[T]) Descriptor() Descriptor[T] { return s.desc }

// EnsureIndexes creates the unique business-key index when the descriptor
// opts in. Without it duplicate keys are tolerated.
func (s *Store[T]) EnsureIndexes(ctx context.Context) error {
	if !s.desc.EnforceUniqueKey {
		return nil
	}
	if err := s.exec.EnsureUniqueIndex(ctx, s.desc.Collection, s.desc.KeyField); err != nil {
		return storeError("ensure indexes", err)
	}
	return nil
}

// Count returns the number of records matching filter.
func (s *Store[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := s.exec.CountDocuments(ctx, s.desc.Collection, filter)
	if err != nil {
		return 0, storeError("count", err)
	}
	return n, nil
}

// Find returns a finite slice of records matching filter. Sort is applied
// before skip/limit so sequential page fetches over a static dataset are
// deterministic.
func (s *Store[T]) Find(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]T, error) {
	var items []T
	if err := s.exec.Find(ctx, s.desc.Collection, filter, sort, skip, limit, &items); err != nil {
		return nil, storeError("find", err)
	}
	return items, nil
}

// GetByID returns the record with the given surrogate identity, or
// ErrNotFound. Absence is a normal outcome, not an infrastructure failure.
func (s *Store[T]) GetByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var item T
	err := s.exec.FindOne(ctx, s.desc.Collection, bson.M{"_id": id}, &item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeError("get by id", err)
	}
	return &item, nil
}

// InsertOne persists the record and writes the store-assigned identity back
// into it. The caller-supplied identity, if any, is discarded first.
func (s *Store[T]) InsertOne(ctx context.Context, item *T) error {
	s.desc.SetID(item, primitive.NilObjectID)
	res, err := s.exec.InsertOne(ctx, s.desc.Collection, item)
	if err != nil {
		return storeError("insert", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.desc.SetID(item, oid)
	}
	return nil
}

// InsertMany persists the batch all-or-nothing: identities are assigned up
// front, and when the ordered insert rejects a document partway through, the
// committed prefix is removed again so a failed batch leaves the collection
// unchanged.
func (s *Store[T]) InsertMany(ctx context.Context, items []T) ([]T, error) {
	if len(items) == 0 {
		return items, nil
	}
	ids := make([]primitive.ObjectID, len(items))
	docs := make([]interface{}, len(items))
	for i := range items {
		ids[i] = primitive.NewObjectID()
		s.desc.SetID(&items[i], ids[i])
		docs[i] = &items[i]
	}
	if _, err := s.exec.InsertMany(ctx, s.desc.Collection, docs); err != nil {
		// An ordered insert stops at the first rejected document with the
		// earlier ones committed. Deleting every pre-assigned identity
		// removes exactly that prefix.
		if _, cleanupErr := s.exec.DeleteMany(ctx, s.desc.Collection, bson.M{"_id": bson.M{"$in": ids}}); cleanupErr != nil {
			s.log.Error("batch insert rollback failed",
				"collection", s.desc.Collection, "error", cleanupErr)
		}
		return nil, storeError("insert many", err)
	}
	return items, nil
}

// ReplaceByID replaces the whole document addressed by surrogate identity.
// Returns true iff the store reports a modification; false covers both an
// unknown id and a replacement identical to the stored document.
func (s *Store[T]) ReplaceByID(ctx context.Context, id primitive.ObjectID, item *T) (bool, error) {
	s.desc.SetID(item, id)
	res, err := s.exec.ReplaceOne(ctx, s.desc.Collection, bson.M{"_id": id}, item)
	if err != nil {
		return false, storeError("replace", err)
	}
	return res.ModifiedCount > 0, nil
}

// DeleteByID removes the record with the given identity. A missing id is not
// an error; it reports false.
func (s *Store[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.exec.DeleteOne(ctx, s.desc.Collection, bson.M{"_id": id})
	if err != nil {
		return false, storeError("delete", err)
	}
	return res.DeletedCount > 0, nil
}

// DeleteMany removes every record whose identity appears in ids and returns
// the number actually deleted.
func (s *Store[T]) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.exec.DeleteMany(ctx, s.desc.Collection, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, storeError("delete many", err)
	}
	return res.DeletedCount, nil
}

// UpdateByKey applies the resource's keyed patch to the first record whose
// business key equals key. The patch never contains the key field, so the
// key is structurally immutable on this path. When duplicate keys exist only
// the first match is touched.
func (s *Store[T]) UpdateByKey(ctx context.Context, key float64, item *T) (UpdateOutcome, error) {
	patch := s.desc.KeyedPatch(item)
	if _, clobbers := patch[s.desc.KeyField]; clobbers {
		return OutcomeNotFound, fmt.Errorf("keyed patch for %s must not set %s", s.desc.Collection, s.desc.KeyField)
	}
	res, err := s.exec.UpdateOne(ctx, s.desc.Collection, bson.M{s.desc.KeyField: key}, bson.M{"$set": patch})
	if err != nil {
		return OutcomeNotFound, storeError("update by key", err)
	}
	switch {
	case res.MatchedCount == 0:
		return OutcomeNotFound, nil
	case res.ModifiedCount == 0:
		return OutcomeUnchanged, nil
	default:
		return OutcomeModified, nil
	}
}

// BulkUpdateByKey applies UpdateByKey once per item, sequentially, and
// returns the number of records modified. Unknown keys contribute zero
// silently. No transaction spans the batch: an error partway through leaves
// prior updates committed.
func (s *Store[T]) BulkUpdateByKey(ctx context.Context, items []T) (int64, error) {
	var modified int64
	for i := range items {
		outcome, err := s.UpdateByKey(ctx, s.desc.Key(&items[i]), &items[i])
		if err != nil {
			return modified, err
		}
		if outcome == OutcomeModified {
			modified++
		}
	}
	return modified, nil
}

// SortSpec returns the deterministic list ordering: creation date descending
// with the business key descending as tie-break, or key ascending when the
// caller selects ascending-by-key mode.
func SortSpec(keyField string, byKeyAsc bool) bson.D {
	if byKeyAsc {
		return bson.D{{Key: keyField, Value: 1}}
	}
	return bson.D{
		{Key: DateField, Value: -1},
		{Key: keyField, Value: -1},
	}
}
