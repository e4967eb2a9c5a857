package redistore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MrEthical07/goUsers"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return New(rdb, "test")
}

func TestAddAndFetch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := goUsers.Document{goUsers.FieldID: "u1", "email": "a@x.com"}
	if err := store.AddDocument(ctx, "users", doc); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}

	fetched, err := store.FetchDocumentByName(ctx, "users", "u1")
	if err != nil {
		t.Fatalf("FetchDocumentByName failed: %v", err)
	}
	if fetched["email"] != "a@x.com" {
		t.Fatalf("unexpected document: %v", fetched)
	}

	global, err := store.FetchDocument(ctx, "u1")
	if err != nil {
		t.Fatalf("FetchDocument failed: %v", err)
	}
	if global["email"] != "a@x.com" {
		t.Fatalf("unexpected document: %v", global)
	}
}

func TestListingPreservesInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		doc := goUsers.Document{goUsers.FieldID: fmt.Sprintf("u%d", i)}
		if err := store.AddDocument(ctx, "users", doc); err != nil {
			t.Fatalf("AddDocument failed: %v", err)
		}
	}

	names, err := store.ListDocumentNames(ctx, "users")
	if err != nil {
		t.Fatalf("ListDocumentNames failed: %v", err)
	}
	for i, name := range names {
		if name != fmt.Sprintf("u%d", i) {
			t.Fatalf("order broken at %d: %v", i, names)
		}
	}
}

func TestUnknownCollectionListsEmpty(t *testing.T) {
	store := newTestStore(t)

	names, err := store.ListDocumentNames(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("ListDocumentNames failed: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty listing, got %v", names)
	}
}

func TestFetchMissing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.FetchDocumentByName(ctx, "users", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.FetchDocument(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNumbersRoundTripAsFloat64(t *testing.T) {
	// JSON storage semantics: numeric fields come back as float64.
	store := newTestStore(t)
	ctx := context.Background()

	doc := goUsers.Document{goUsers.FieldID: "u1", goUsers.FieldCreateAt: int64(1700000000000)}
	if err := store.AddDocument(ctx, "users", doc); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}

	fetched, err := store.FetchDocumentByName(ctx, "users", "u1")
	if err != nil {
		t.Fatalf("FetchDocumentByName failed: %v", err)
	}
	if _, ok := fetched[goUsers.FieldCreateAt].(float64); !ok {
		t.Fatalf("expected float64 after round-trip, got %T", fetched[goUsers.FieldCreateAt])
	}
}
