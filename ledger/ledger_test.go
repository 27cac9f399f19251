/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ledger

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryLedger(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	receipts := []Receipt{
		{RunID: "run-1", StreamName: "orders", SequenceNumber: "110"},
		{RunID: "run-1", StreamName: "orders", SequenceNumber: "99"},
		{RunID: "run-2", StreamName: "orders", SequenceNumber: "1"},
		{RunID: "run-1", StreamName: "audit", SequenceNumber: "500"},
	}
	for _, r := range receipts {
		if err := l.Append(ctx, r); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := l.List(ctx, "run-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 receipts, got %d", len(got))
	}

	want := []string{"audit/500", "orders/99", "orders/110"}
	for i, r := range got {
		if key := r.StreamName + "/" + r.SequenceNumber; key != want[i] {
			t.Errorf("Receipt %d: expected %s, got %s", i, want[i], key)
		}
	}

	empty, err := l.List(ctx, "unknown")
	if err != nil || len(empty) != 0 {
		t.Errorf("Expected no receipts for unknown run, got %v, %v", empty, err)
	}
}

func TestMemoryLedgerConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Append(ctx, Receipt{RunID: "run", StreamName: "orders"})
		}()
	}
	wg.Wait()

	got, _ := l.List(ctx, "run")
	if len(got) != 50 {
		t.Errorf("Expected 50 receipts, got %d", len(got))
	}
}

func TestDiscardLedger(t *testing.T) {
	var l Ledger = Discard{}
	if err := l.Append(context.Background(), Receipt{RunID: "run"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	got, err := l.List(context.Background(), "run")
	if err != nil || got != nil {
		t.Errorf("Expected nothing back, got %v, %v", got, err)
	}
}
