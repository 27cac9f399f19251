/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/go-openapi/strfmt"
)

// Receipt records where the service placed one written record.
type Receipt struct {
	RunID          string          `json:"runId" dynamodbav:"RunID"`
	StreamName     string          `json:"streamName" dynamodbav:"StreamName"`
	PartitionKey   string          `json:"partitionKey" dynamodbav:"PartitionKey"`
	ShardID        string          `json:"shardId" dynamodbav:"ShardID"`
	SequenceNumber string          `json:"sequenceNumber" dynamodbav:"SequenceNumber"`
	WrittenAt      strfmt.DateTime `json:"writtenAt" dynamodbav:"WrittenAt"`
}

// Ledger stores receipts grouped by run.
type Ledger interface {
	Append(ctx context.Context, receipt Receipt) error
	// List returns the receipts of a run ordered by stream and sequence number.
	List(ctx context.Context, runID string) ([]Receipt, error)
}

// Memory is a thread-safe in-process Ledger.
type Memory struct {
	mu   sync.RWMutex
	runs map[string][]Receipt
}

// NewMemory creates an empty Memory ledger
func NewMemory() *Memory {
	return &Memory{
		runs: make(map[string][]Receipt),
	}
}

// Append stores a receipt
func (m *Memory) Append(ctx context.Context, receipt Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs[receipt.RunID] = append(m.runs[receipt.RunID], receipt)
	return nil
}

// List returns a sorted copy of a run's receipts
func (m *Memory) List(ctx context.Context, runID string) ([]Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := append([]Receipt(nil), m.runs[runID]...)
	Sort(out)
	return out, nil
}

// Sort orders receipts by stream name, then sequence number. Sequence numbers
// are decimal strings; a shorter one is always smaller.
func Sort(receipts []Receipt) {
	sort.SliceStable(receipts, func(i, j int) bool {
		a, b := receipts[i], receipts[j]
		if a.StreamName != b.StreamName {
			return a.StreamName < b.StreamName
		}
		if len(a.SequenceNumber) != len(b.SequenceNumber) {
			return len(a.SequenceNumber) < len(b.SequenceNumber)
		}
		return a.SequenceNumber < b.SequenceNumber
	})
}

// Discard is a Ledger that drops every receipt.
type Discard struct{}

func (Discard) Append(context.Context, Receipt) error            { return nil }
func (Discard) List(context.Context, string) ([]Receipt, error) { return nil, nil }
