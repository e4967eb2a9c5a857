// Package memstore is an in-memory document store implementing the
// goUsers.Storage capability contract. Listing order is insertion order,
// which gives the engine's forward scans a deterministic sequence. Intended
// for tests, examples, and embedded single-process use.
package memstore

import (
	"context"
	"errors"
	"sync"

	"github.com/MrEthical07/goUsers"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a fetched document does not exist.
var ErrNotFound = errors.New("memstore: document not found")

// Store holds collections of documents in process memory. Safe for
// concurrent use.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]goUsers.Document
	order       map[string][]string
}

func New() *Store {
	return &Store{
		collections: map[string]map[string]goUsers.Document{},
		order:       map[string][]string{},
	}
}

// CreateCollection creates the named collection. Idempotent.
func (s *Store) CreateCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureCollection(name)
	return nil
}

func (s *Store) ensureCollection(name string) {
	if _, ok := s.collections[name]; !ok {
		s.collections[name] = map[string]goUsers.Document{}
	}
}

// AddDocument stores doc under its id field when that is a string, or a
// generated name otherwise. The collection is created implicitly.
func (s *Store) AddDocument(_ context.Context, collection string, doc goUsers.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureCollection(collection)

	name, _ := doc[goUsers.FieldID].(string)
	if name == "" {
		name = uuid.NewString()
	}

	if _, exists := s.collections[collection][name]; !exists {
		s.order[collection] = append(s.order[collection], name)
	}
	s.collections[collection][name] = doc

	return nil
}

// ListDocumentNames returns every document name in insertion order. An
// unknown collection yields an empty list.
func (s *Store) ListDocumentNames(_ context.Context, collection string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.order[collection]...), nil
}

// FetchDocumentByName returns one document from a collection.
func (s *Store) FetchDocumentByName(_ context.Context, collection, name string) (goUsers.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][name]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

// FetchDocument resolves a document name anywhere in the store, scanning
// collections until one matches.
func (s *Store) FetchDocument(_ context.Context, name string) (goUsers.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, docs := range s.collections {
		if doc, ok := docs[name]; ok {
			return doc, nil
		}
	}
	return nil, ErrNotFound
}
