package memory

import (
	"context"
	"errors"
	"testing"

	"finman/internal/core"
)

func TestMemoryStoreAppendAndList(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.Append(ctx, core.NewIncome("Job", 1000))
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}
	ref, err = s.Append(ctx, core.NewExpense("Rent", 400))
	if err != nil || ref != "mem:2" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	items, err := s.List(ctx)
	if err != nil || len(items) != 2 {
		t.Fatalf("unexpected list: items=%v err=%v", items, err)
	}
	if items[0].Label != "Job" || items[1].Label != "Rent" {
		t.Fatalf("insertion order not preserved: %v", items)
	}

	// Mutating the returned slice must not leak into the store.
	items[0].Label = "changed"
	again, _ := s.List(ctx)
	if again[0].Label != "Job" {
		t.Fatalf("List returned shared backing array")
	}
}

func TestMemoryStoreRejectsInvalid(t *testing.T) {
	s := New()
	if _, err := s.Append(context.Background(), core.NewIncome("", 1)); !errors.Is(err, core.ErrEmptyLabel) {
		t.Fatalf("expected ErrEmptyLabel, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("invalid record was stored")
	}
}
