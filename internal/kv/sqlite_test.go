package kv

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if _, ok, err := store.Get(ctx, "absent"); err != nil || ok {
		t.Fatalf("absent key: ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || string(raw) != `{"a":1}` {
		t.Fatalf("get: raw=%s ok=%v err=%v", raw, ok, err)
	}

	// Set replaces the whole document.
	if err := store.Set(ctx, "k", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("replace: %v", err)
	}
	raw, _, _ = store.Get(ctx, "k")
	if string(raw) != `{"a":2}` {
		t.Fatalf("replace returned %s", raw)
	}

	if err := store.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatalf("key survived remove")
	}
}
