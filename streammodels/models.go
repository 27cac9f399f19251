/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package streammodels

import (
	"time"
)

// StreamStatus is the lifecycle state of a stream as reported by the service.
type StreamStatus string

const (
	// StatusUnknown is the waiter's state before the first successful check.
	StatusUnknown  StreamStatus = "UNKNOWN"
	StatusCreating StreamStatus = "CREATING"
	StatusActive   StreamStatus = "ACTIVE"
	StatusUpdating StreamStatus = "UPDATING"
	StatusDeleting StreamStatus = "DELETING"
)

// String implements fmt.Stringer.
func (s StreamStatus) String() string {
	return string(s)
}

// Stream describes a remote stream. The local program never owns it; the
// value is a snapshot taken by DescribeStream.
type Stream struct {
	// Name is unique within the account and region.
	Name string
	// ARN is the service-assigned resource name.
	ARN string
	// Status is the lifecycle state at the time of the describe call.
	Status StreamStatus
	// ShardCount is the number of open shards returned on this page.
	ShardCount int
	// RetentionHours is the record retention period.
	RetentionHours int
	// CreatedAt is when the service created the stream.
	CreatedAt time.Time
	// Shards holds at most the requested shard-page limit of descriptors.
	Shards []Shard
	// HasMoreShards reports whether the shard list was truncated.
	HasMoreShards bool
}

// Shard is a unit of throughput within a stream.
type Shard struct {
	ShardID         string
	ParentShardID   string
	StartingHashKey string
	EndingHashKey   string
}

// Record is an opaque payload routed to a shard by its partition key.
type Record struct {
	// Data is the record payload.
	Data []byte
	// PartitionKey is hashed by the service to select a shard.
	PartitionKey string
	// ExplicitHashKey optionally overrides the partition key hash.
	ExplicitHashKey string
}

// PutResult is what the service assigned to a written record.
type PutResult struct {
	ShardID        string
	SequenceNumber string
}

// ListPage is one page of stream names.
type ListPage struct {
	Names   []string
	HasMore bool
}

// PollResult is the outcome of a single status check made while waiting.
type PollResult struct {
	Stream  string
	Attempt int           // 1-based
	Elapsed time.Duration // since the wait started
	Status  StreamStatus  // empty when Err is set
	Err     error
}
