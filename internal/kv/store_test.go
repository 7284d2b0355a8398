package kv

import (
	"context"
	"reflect"
	"testing"
)

type doc struct {
	Name  string         `json:"name"`
	Count int            `json:"count"`
	Tags  map[string]int `json:"tags"`
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	in := doc{Name: "alice", Count: 3, Tags: map[string]int{"a": 1, "b": 2}}
	if err := Save(ctx, store, "k", in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out := Load(ctx, store, "k", doc{})
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestLoadFallbackOnMissingKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	fallback := doc{Name: "default"}
	if got := Load(ctx, store, "absent", fallback); !reflect.DeepEqual(got, fallback) {
		t.Fatalf("expected fallback, got %+v", got)
	}
}

func TestLoadFallbackOnCorruptDocument(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	if err := store.Set(ctx, "k", []byte(`{not json`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	fallback := doc{Name: "default"}
	if got := Load(ctx, store, "k", fallback); !reflect.DeepEqual(got, fallback) {
		t.Fatalf("expected fallback on corrupt value, got %+v", got)
	}
}

func TestMemoryRemove(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	if err := store.Set(ctx, "k", []byte(`"v"`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatalf("key still present after remove")
	}
	// Removing again is a no-op, not an error.
	if err := store.Remove(ctx, "k"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	if err := store.Set(ctx, "k", []byte(`"v"`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	raw, _, _ := store.Get(ctx, "k")
	raw[0] = 'x'
	again, _, _ := store.Get(ctx, "k")
	if string(again) != `"v"` {
		t.Fatalf("stored bytes mutated through returned slice: %s", again)
	}
}
