// Package redistore is a Redis-backed document store implementing the
// goUsers.Storage capability contract. Documents are stored as JSON
// strings; per-collection name lists keep the engine's forward-scan order
// stable (insertion order via RPUSH).
//
// Values round-trip through encoding/json, so numeric document fields come
// back as float64. Uniqueness and matching on string fields, the common
// case, are unaffected.
package redistore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrEthical07/goUsers"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a fetched document does not exist.
var ErrNotFound = errors.New("redistore: document not found")

// Store implements goUsers.Storage over a Redis client. Safe for
// concurrent use; the single-writer registration assumption of the engine
// still applies.
type Store struct {
	rdb    *redis.Client
	prefix string
}

// New wraps a Redis client. An empty prefix defaults to "gousers".
func New(rdb *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "gousers"
	}
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) collectionsKey() string {
	return s.prefix + ":collections"
}

func (s *Store) namesKey(collection string) string {
	return fmt.Sprintf("%s:%s:names", s.prefix, collection)
}

func (s *Store) docKey(collection, name string) string {
	return fmt.Sprintf("%s:%s:doc:%s", s.prefix, collection, name)
}

// CreateCollection registers the collection name. Idempotent.
func (s *Store) CreateCollection(ctx context.Context, name string) error {
	return s.rdb.SAdd(ctx, s.collectionsKey(), name).Err()
}

// AddDocument marshals doc to JSON and appends its name to the
// collection's listing. The collection is registered implicitly.
func (s *Store) AddDocument(ctx context.Context, collection string, doc goUsers.Document) error {
	name, _ := doc[goUsers.FieldID].(string)
	if name == "" {
		name = uuid.NewString()
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.SAdd(ctx, s.collectionsKey(), collection)
	pipe.RPush(ctx, s.namesKey(collection), name)
	pipe.Set(ctx, s.docKey(collection, name), data, 0)
	_, err = pipe.Exec(ctx)
	return err
}

// ListDocumentNames returns the collection's document names in insertion
// order. An unknown collection yields an empty list.
func (s *Store) ListDocumentNames(ctx context.Context, collection string) ([]string, error) {
	return s.rdb.LRange(ctx, s.namesKey(collection), 0, -1).Result()
}

// FetchDocumentByName returns one document from a collection.
func (s *Store) FetchDocumentByName(ctx context.Context, collection, name string) (goUsers.Document, error) {
	data, err := s.rdb.Get(ctx, s.docKey(collection, name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var doc goUsers.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// FetchDocument resolves a document name anywhere in the store, trying
// each registered collection.
func (s *Store) FetchDocument(ctx context.Context, name string) (goUsers.Document, error) {
	collections, err := s.rdb.SMembers(ctx, s.collectionsKey()).Result()
	if err != nil {
		return nil, err
	}

	for _, collection := range collections {
		doc, err := s.FetchDocumentByName(ctx, collection, name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return doc, nil
	}
	return nil, ErrNotFound
}
