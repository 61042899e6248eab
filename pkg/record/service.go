package record

import (
	"context"
	"time"

	"github.com/grcledger/grcledger/pkg/observability/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListParams carries the caller-supplied list query. Zero values mean
// "use the resource defaults".
type ListParams struct {
	Page        int
	PageSize    int
	Search      string
	SortByNoAsc bool
}

// Service composes the store, search filter, and page assembly into the
// operations the HTTP layer calls. One service instance exists per resource.
type Service[T any] struct {
	store *Store[T]
	desc  Descriptor[T]
	log   logger.Logger
	now   func() time.Time
}

// NewService creates a resource service over a validated store.
func NewService[T any](store *Store[T], log logger.Logger) *Service[T] {
	return &Service[T]{
		store: store,
		desc:  store.Descriptor(),
		log:   log,
		now:   time.Now,
	}
}

// Descriptor returns the resource configuration.
func (s *Service[T]) Descriptor() Descriptor[T] { return s.desc }

// List returns one page of records matching the optional search string.
// Count and fetch run against the same filter; the fetch sorts before it
// skips so pages of a static dataset neither overlap nor leave gaps.
func (s *Service[T]) List(ctx context.Context, params ListParams) (PagedResult[T], error) {
	page := NormalizePage(params.Page)
	pageSize := s.desc.Paging.Resolve(params.PageSize)

	filter := SearchFilter(params.Search, s.desc.SearchFields, s.desc.KeyField)

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return PagedResult[T]{}, err
	}

	sort := SortSpec(s.desc.KeyField, params.SortByNoAsc)
	skip := int64(page-1) * int64(pageSize)
	items, err := s.store.Find(ctx, filter, sort, skip, int64(pageSize))
	if err != nil {
		return PagedResult[T]{}, err
	}

	return AssemblePage(page, pageSize, total, items), nil
}

// Get returns the record addressed by surrogate identity, or ErrNotFound.
func (s *Service[T]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return s.store.GetByID(ctx, id)
}

// Create persists a new record. The store assigns the identity; the service
// stamps the creation date. Caller-supplied values for either are discarded.
func (s *Service[T]) Create(ctx context.Context, item *T) error {
	s.desc.SetCreated(item, s.now().UTC())
	return s.store.InsertOne(ctx, item)
}

// CreateMany persists a batch, stamping the creation date only where the
// caller left it unset. The batch is all-or-nothing at the store level.
func (s *Service[T]) CreateMany(ctx context.Context, items []T) ([]T, error) {
	if len(items) == 0 {
		return []T{}, nil
	}
	for i := range items {
		if s.desc.Created(&items[i]).IsZero() {
			s.desc.SetCreated(&items[i], s.now().UTC())
		}
	}
	return s.store.InsertMany(ctx, items)
}

// Update replaces the whole record addressed by id. Returns ErrNotFound for
// an unknown id, ErrUpdateFailed when the id is known but the store reports
// zero modified documents (e.g. an identical payload).
func (s *Service[T]) Update(ctx context.Context, id primitive.ObjectID, item *T) error {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return err
	}
	modified, err := s.store.ReplaceByID(ctx, id, item)
	if err != nil {
		return err
	}
	if !modified {
		return ErrUpdateFailed
	}
	return nil
}

// UpdateMany replaces each record by its embedded identity and returns the
// number modified. Items without an identity are skipped. Each replace is
// independent; there is no batch transaction.
func (s *Service[T]) UpdateMany(ctx context.Context, items []T) (int64, error) {
	var modified int64
	for i := range items {
		id := s.desc.ID(&items[i])
		if id.IsZero() {
			continue
		}
		ok, err := s.store.ReplaceByID(ctx, id, &items[i])
		if err != nil {
			return modified, err
		}
		if ok {
			modified++
		}
	}
	return modified, nil
}

// Delete removes the record addressed by id. Returns ErrNotFound for an
// unknown id, ErrUpdateFailed when the delete matched nothing after the
// existence check (a concurrent delete won the race).
func (s *Service[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return err
	}
	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUpdateFailed
	}
	return nil
}

// DeleteMany removes every listed identity and returns the count deleted.
func (s *Service[T]) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return s.store.DeleteMany(ctx, ids)
}

// UpdateByNo patches every updatable field of the record whose business key
// equals no. The key itself is never rewritten, and the outcome separates
// not-found from found-but-unchanged.
func (s *Service[T]) UpdateByNo(ctx context.Context, no float64, item *T) (UpdateOutcome, error) {
	return s.store.UpdateByKey(ctx, no, item)
}

// BulkUpdateByNo applies UpdateByNo per item, each one keyed by its own
// business key, and returns the number modified.
func (s *Service[T]) BulkUpdateByNo(ctx context.Context, items []T) (int64, error) {
	return s.store.BulkUpdateByKey(ctx, items)
}
