package memstore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MrEthical07/goUsers"
)

func TestAddAndFetch(t *testing.T) {
	store := New()
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
	store := New()
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
	names, err := New().ListDocumentNames(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("ListDocumentNames failed: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty listing, got %v", names)
	}
}

func TestFetchMissing(t *testing.T) {
	store := New()
	ctx := context.Background()

	if _, err := store.FetchDocumentByName(ctx, "users", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.FetchDocument(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDocumentWithoutIDGetsGeneratedName(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.AddDocument(ctx, "users", goUsers.Document{"email": "a@x.com"}); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}

	names, _ := store.ListDocumentNames(ctx, "users")
	if len(names) != 1 || names[0] == "" {
		t.Fatalf("expected one generated name, got %v", names)
	}
}

func TestCreateCollectionIdempotent(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.CreateCollection(ctx, "users"); err != nil {
		t.Fatalf("CreateCollection failed: %v", err)
	}
	if err := store.AddDocument(ctx, "users", goUsers.Document{goUsers.FieldID: "u1"}); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}
	if err := store.CreateCollection(ctx, "users"); err != nil {
		t.Fatalf("repeat CreateCollection failed: %v", err)
	}

	names, _ := store.ListDocumentNames(ctx, "users")
	if len(names) != 1 {
		t.Fatalf("repeat creation must not reset the collection, got %v", names)
	}
}
