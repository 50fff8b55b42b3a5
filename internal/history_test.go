package internal

import (
	"context"
	"fmt"
	"reflect"
	"testing"
)

func TestRepoHistory_Add(t *testing.T) {
	ctx := context.Background()
	h := NewRepoHistory(NewMemoryStore())

	for _, p := range []string{"/a", "/b", "/c", "/a", ""} {
		if err := h.Add(ctx, p); err != nil {
			t.Fatalf("Add(%q) error = %v", p, err)
		}
	}

	got, err := h.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if want := []string{"/a", "/c", "/b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestRepoHistory_Bounded(t *testing.T) {
	ctx := context.Background()
	h := NewRepoHistory(NewMemoryStore())

	for i := 0; i < MaxRepoHistory+5; i++ {
		if err := h.Add(ctx, fmt.Sprintf("/repo%d", i)); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	got, _ := h.List(ctx)
	if len(got) != MaxRepoHistory {
		t.Fatalf("len = %d, want %d", len(got), MaxRepoHistory)
	}
	if got[0] != fmt.Sprintf("/repo%d", MaxRepoHistory+4) {
		t.Errorf("most recent = %q", got[0])
	}
}

func TestRepoHistory_CorruptAndClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	_ = store.Set(ctx, repoHistoryKey, "{not json")
	h := NewRepoHistory(store)

	got, err := h.List(ctx)
	if err != nil || len(got) != 0 {
		t.Errorf("List() on corrupt value = %v, %v; want empty", got, err)
	}

	_ = h.Add(ctx, "/x")
	if err := h.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got, _ := h.List(ctx); len(got) != 0 {
		t.Errorf("List() after Clear = %v", got)
	}
}
