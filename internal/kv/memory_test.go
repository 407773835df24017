package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on missing key: err = %v, want ErrNotFound", err)
	}

	if err := store.Put(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v1" {
		t.Fatalf("Get = %q, want %q", got, "v1")
	}

	// Put replaces
	if err := store.Put(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, _ = store.Get(ctx, "k")
	if string(got) != "v2" {
		t.Fatalf("Get after replace = %q, want %q", got, "v2")
	}
}

func TestMemoryStoreIsolatesBytes(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	in := []byte("original")
	if err := store.Put(ctx, "k", in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	in[0] = 'X'

	got, _ := store.Get(ctx, "k")
	if string(got) != "original" {
		t.Fatalf("stored value mutated through caller's slice: %q", got)
	}

	got[0] = 'Y'
	again, _ := store.Get(ctx, "k")
	if string(again) != "original" {
		t.Fatalf("stored value mutated through returned slice: %q", again)
	}
}
