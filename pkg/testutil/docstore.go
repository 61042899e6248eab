// Package testutil provides test helpers: skip guards and an in-memory
// document store that stands in for the MongoDB adapter.
package testutil

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DocStore is an in-memory implementation of the record.Executor contract.
// It supports the filter shapes the protocol actually issues: match-all,
// field equality, $in on _id, and the search $or of $regex clauses plus the
// $expr/$regexMatch prefix match on the stringified key.
//
// Documents are stored as bson.M after a marshal round-trip, so value types
// match what the real driver would decode.
type DocStore struct {
	mu          sync.Mutex
	collections map[string][]bson.M

	// FailOn maps a method name ("Find", "InsertOne", ...) to an error that
	// the method returns instead of executing. Used to exercise store-failure
	// paths without a real outage.
	FailOn map[string]error

	// UniqueIndexes records EnsureUniqueIndex calls as "collection/field"
	// and is enforced on insert.
	UniqueIndexes map[string]bool
}

// NewDocStore creates an empty in-memory store.
func NewDocStore() *DocStore {
	return &DocStore{
		collections:   make(map[string][]bson.M),
		FailOn:        make(map[string]error),
		UniqueIndexes: make(map[string]bool),
	}
}

// Seed inserts documents directly, bypassing failure injection.
func (s *DocStore) Seed(collection string, docs ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range docs {
		m := toDoc(doc)
		if !hasID(m) {
			m["_id"] = primitive.NewObjectID()
		}
		s.collections[collection] = append(s.collections[collection], m)
	}
}

// All returns a copy of a collection's raw documents in insertion order.
func (s *DocStore) All(collection string) []bson.M {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bson.M(nil), s.collections[collection]...)
}

func (s *DocStore) fail(op string) error {
	if err, ok := s.FailOn[op]; ok {
		return err
	}
	return nil
}

// CountDocuments implements record.Executor.
func (s *DocStore) CountDocuments(_ context.Context, collection string, filter interface{}) (int64, error) {
	if err := s.fail("CountDocuments"); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

// Find implements record.Executor.
func (s *DocStore) Find(_ context.Context, collection string, filter interface{}, sortSpec interface{}, skip, limit int64, results interface{}) error {
	if err := s.fail("Find"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []bson.M
	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			matched = append(matched, doc)
		}
	}
	if matched == nil {
		matched = []bson.M{}
	}
	applySort(matched, sortSpec)

	if skip > int64(len(matched)) {
		skip = int64(len(matched))
	}
	matched = matched[skip:]
	if limit > 0 && limit < int64(len(matched)) {
		matched = matched[:limit]
	}

	raw, err := bson.Marshal(bson.M{"docs": matched})
	if err != nil {
		return err
	}
	var wrapper struct {
		Docs bson.RawValue `bson:"docs"`
	}
	if err := bson.Unmarshal(raw, &wrapper); err != nil {
		return err
	}
	return wrapper.Docs.Unmarshal(results)
}

// FindOne implements record.Executor.
func (s *DocStore) FindOne(_ context.Context, collection string, filter interface{}, result interface{}) error {
	if err := s.fail("FindOne"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			return decode(doc, result)
		}
	}
	return mongo.ErrNoDocuments
}

// InsertOne implements record.Executor.
func (s *DocStore) InsertOne(_ context.Context, collection string, doc interface{}) (*mongo.InsertOneResult, error) {
	if err := s.fail("InsertOne"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m := toDoc(doc)
	if !hasID(m) {
		m["_id"] = primitive.NewObjectID()
	}
	if err := s.checkUnique(collection, m); err != nil {
		return nil, err
	}
	s.collections[collection] = append(s.collections[collection], m)
	return &mongo.InsertOneResult{InsertedID: m["_id"]}, nil
}

// InsertMany implements record.Executor. Like an ordered InsertMany it stops
// at the first failure, leaving earlier documents inserted.
func (s *DocStore) InsertMany(_ context.Context, collection string, docs []interface{}) (*mongo.InsertManyResult, error) {
	if err := s.fail("InsertMany"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := &mongo.InsertManyResult{}
	for _, doc := range docs {
		m := toDoc(doc)
		if !hasID(m) {
			m["_id"] = primitive.NewObjectID()
		}
		if err := s.checkUnique(collection, m); err != nil {
			return result, err
		}
		s.collections[collection] = append(s.collections[collection], m)
		result.InsertedIDs = append(result.InsertedIDs, m["_id"])
	}
	return result, nil
}

// ReplaceOne implements record.Executor.
func (s *DocStore) ReplaceOne(_ context.Context, collection string, filter, replacement interface{}) (*mongo.UpdateResult, error) {
	if err := s.fail("ReplaceOne"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, doc := range s.collections[collection] {
		if !matches(doc, filter) {
			continue
		}
		next := toDoc(replacement)
		next["_id"] = doc["_id"]
		result := &mongo.UpdateResult{MatchedCount: 1}
		if !reflect.DeepEqual(doc, next) {
			s.collections[collection][i] = next
			result.ModifiedCount = 1
		}
		return result, nil
	}
	return &mongo.UpdateResult{}, nil
}

// UpdateOne implements record.Executor. Only $set updates are supported,
// which is the only shape the protocol issues.
func (s *DocStore) UpdateOne(_ context.Context, collection string, filter, update interface{}) (*mongo.UpdateResult, error) {
	if err := s.fail("UpdateOne"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := update.(bson.M)
	if !ok {
		return nil, fmt.Errorf("docstore: unsupported update %v", update)
	}
	set, ok := doc["$set"].(bson.M)
	if !ok {
		return nil, fmt.Errorf("docstore: unsupported update %v", update)
	}
	for i, doc := range s.collections[collection] {
		if !matches(doc, filter) {
			continue
		}
		result := &mongo.UpdateResult{MatchedCount: 1}
		for k, v := range set {
			if !valueEqual(doc[k], v) {
				doc[k] = v
				result.ModifiedCount = 1
			}
		}
		s.collections[collection][i] = doc
		return result, nil
	}
	return &mongo.UpdateResult{}, nil
}

// DeleteOne implements record.Executor.
func (s *DocStore) DeleteOne(_ context.Context, collection string, filter interface{}) (*mongo.DeleteResult, error) {
	if err := s.fail("DeleteOne"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.collections[collection]
	for i, doc := range docs {
		if matches(doc, filter) {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}

// DeleteMany implements record.Executor.
func (s *DocStore) DeleteMany(_ context.Context, collection string, filter interface{}) (*mongo.DeleteResult, error) {
	if err := s.fail("DeleteMany"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []bson.M
	var deleted int64
	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	s.collections[collection] = kept
	return &mongo.DeleteResult{DeletedCount: deleted}, nil
}

// EnsureUniqueIndex implements record.Executor.
func (s *DocStore) EnsureUniqueIndex(_ context.Context, collection, field string) error {
	if err := s.fail("EnsureUniqueIndex"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UniqueIndexes[collection+"/"+field] = true
	return nil
}

func (s *DocStore) checkUnique(collection string, doc bson.M) error {
	for key := range s.UniqueIndexes {
		prefix := collection + "/"
		if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
			continue
		}
		field := key[len(prefix):]
		for _, existing := range s.collections[collection] {
			if valueEqual(existing[field], doc[field]) {
				return fmt.Errorf("docstore: duplicate key %q in %s", field, collection)
			}
		}
	}
	return nil
}

func toDoc(v interface{}) bson.M {
	raw, err := bson.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("docstore: marshal: %v", err))
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		panic(fmt.Sprintf("docstore: unmarshal: %v", err))
	}
	return m
}

func decode(doc bson.M, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func hasID(doc bson.M) bool {
	id, ok := doc["_id"]
	if !ok {
		return false
	}
	if oid, ok := id.(primitive.ObjectID); ok {
		return !oid.IsZero()
	}
	return true
}

func matches(doc bson.M, filter interface{}) bool {
	m, ok := filter.(bson.M)
	if !ok || len(m) == 0 {
		return true
	}
	for key, cond := range m {
		switch key {
		case "$or":
			if !matchesAny(doc, cond) {
				return false
			}
		case "$expr":
			if !matchesExpr(doc, cond) {
				return false
			}
		default:
			if !matchesField(doc[key], cond) {
				return false
			}
		}
	}
	return true
}

func matchesAny(doc bson.M, cond interface{}) bool {
	clauses, ok := cond.([]bson.M)
	if !ok {
		return false
	}
	for _, clause := range clauses {
		if matches(doc, clause) {
			return true
		}
	}
	return false
}

// matchesExpr evaluates the one $expr shape the search filter emits:
// {"$regexMatch": {"input": {"$toString": "$Field"}, "regex": ..., "options": "i"}}.
func matchesExpr(doc bson.M, cond interface{}) bool {
	expr, ok := cond.(bson.M)
	if !ok {
		return false
	}
	rm, ok := expr["$regexMatch"].(bson.M)
	if !ok {
		return false
	}
	input, _ := rm["input"].(bson.M)
	fieldRef, _ := input["$toString"].(string)
	if len(fieldRef) < 2 || fieldRef[0] != '$' {
		return false
	}
	value := doc[fieldRef[1:]]

	var text string
	switch v := value.(type) {
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	case int32:
		text = strconv.FormatInt(int64(v), 10)
	case int64:
		text = strconv.FormatInt(v, 10)
	case string:
		text = v
	default:
		return false
	}

	pattern, _ := rm["regex"].(string)
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

func matchesField(value, cond interface{}) bool {
	if m, ok := cond.(bson.M); ok {
		if pattern, ok := m["$regex"].(string); ok {
			text, ok := value.(string)
			if !ok {
				return false
			}
			re, err := regexp.Compile("(?i)" + pattern)
			if err != nil {
				return false
			}
			return re.MatchString(text)
		}
		if in, ok := m["$in"]; ok {
			rv := reflect.ValueOf(in)
			if rv.Kind() != reflect.Slice {
				return false
			}
			for i := 0; i < rv.Len(); i++ {
				if valueEqual(value, rv.Index(i).Interface()) {
					return true
				}
			}
			return false
		}
		return false
	}
	return valueEqual(value, cond)
}

// valueEqual compares a stored BSON value with a filter value, promoting
// numeric types so int(3) matches int32(3) and float64(3).
func valueEqual(a, b interface{}) bool {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// applySort orders docs by a bson.D sort spec: positive values ascending,
// negative descending, fields compared in spec order. Missing fields sort
// first, matching how MongoDB orders absent keys ascending.
func applySort(docs []bson.M, sortSpec interface{}) {
	spec, ok := sortSpec.(bson.D)
	if !ok || len(spec) == 0 {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, field := range spec {
			dir, _ := asFloat(field.Value)
			c := compareValues(docs[i][field.Key], docs[j][field.Key])
			if c == 0 {
				continue
			}
			if dir < 0 {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareValues(a, b interface{}) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if ad, ok := a.(primitive.DateTime); ok {
		if bd, ok := b.(primitive.DateTime); ok {
			switch {
			case ad < bd:
				return -1
			case ad > bd:
				return 1
			}
			return 0
		}
	}
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		}
	}
	return 0
}
