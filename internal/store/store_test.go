package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"resolvewise/internal/database"
	"resolvewise/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	s, err := New(db, zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := []models.User{{ID: 7, Name: "A", Email: "a@x", Role: models.RoleAgent}}
	if err := s.Put(ctx, CollUsers, in); err != nil {
		t.Fatalf("put: %v", err)
	}
	var out []models.User
	if err := s.Get(ctx, CollUsers, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestGetAbsentLeavesDefault(t *testing.T) {
	s := newTestStore(t)

	out := []models.Ticket{}
	if err := s.Get(context.Background(), "nothing", &out); err != nil {
		t.Fatalf("get absent: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected default empty, got %d records", len(out))
	}
}

func TestGetCorruptCollectionSwallowed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO collections (name, data) VALUES (?, ?)`,
		CollTickets, `{not json`); err != nil {
		t.Fatalf("inject corrupt row: %v", err)
	}

	var out []models.Ticket
	if err := s.Get(ctx, CollTickets, &out); err != nil {
		t.Fatalf("corrupt collection should not error: %v", err)
	}
	if out != nil {
		t.Fatalf("expected untouched dst, got %+v", out)
	}
}

func TestPutOverwritesWholeCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, CollUsers, []models.User{{ID: 1}, {ID: 2}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, CollUsers, []models.User{{ID: 3}}); err != nil {
		t.Fatalf("second put: %v", err)
	}
	var out []models.User
	if err := s.Get(ctx, CollUsers, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(out) != 1 || out[0].ID != 3 {
		t.Fatalf("expected overwrite to [3], got %+v", out)
	}
}

func TestEnsureSeededIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureSeeded(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	var users1 []models.User
	var tickets1 []models.Ticket
	if err := s.Get(ctx, CollUsers, &users1); err != nil {
		t.Fatal(err)
	}
	if err := s.Get(ctx, CollTickets, &tickets1); err != nil {
		t.Fatal(err)
	}
	if len(users1) != 2 {
		t.Fatalf("expected 2 seed users, got %d", len(users1))
	}
	if len(tickets1) != 3 {
		t.Fatalf("expected 3 seed tickets, got %d", len(tickets1))
	}

	if err := s.EnsureSeeded(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	var users2 []models.User
	var tickets2 []models.Ticket
	if err := s.Get(ctx, CollUsers, &users2); err != nil {
		t.Fatal(err)
	}
	if err := s.Get(ctx, CollTickets, &tickets2); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(users1, users2) {
		t.Fatal("users changed on repeated seed")
	}
	if !reflect.DeepEqual(tickets1, tickets2) {
		t.Fatal("tickets changed on repeated seed")
	}
}

func TestSeedTicketsShape(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.EnsureSeeded(ctx); err != nil {
		t.Fatal(err)
	}

	var tickets []models.Ticket
	if err := s.Get(ctx, CollTickets, &tickets); err != nil {
		t.Fatal(err)
	}
	byID := map[int64]models.Ticket{}
	for _, tk := range tickets {
		byID[tk.ID] = tk
	}
	first, ok := byID[1024]
	if !ok {
		t.Fatal("seed ticket 1024 missing")
	}
	if first.CustomerID != 2 || first.CustomerName != "Jane Doe" {
		t.Fatalf("ticket 1024 owner wrong: %+v", first)
	}
	if len(first.Comments) != 1 || first.Comments[0].UserID != 1 {
		t.Fatalf("ticket 1024 seed comment wrong: %+v", first.Comments)
	}
	if _, ok := byID[1023]; !ok {
		t.Fatal("seed ticket 1023 missing")
	}
	if _, ok := byID[1021]; !ok {
		t.Fatal("seed ticket 1021 missing")
	}
}
