/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of streamservice.StreamService for testing
package mock

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/suparena/kinesisctl/errors"
	"github.com/suparena/kinesisctl/streammodels"
)

// Operation names used for call counting and error injection.
const (
	OpCreate   = "CreateStream"
	OpDescribe = "DescribeStream"
	OpList     = "ListStreams"
	OpPut      = "PutRecord"
	OpDelete   = "DeleteStream"
)

type stream struct {
	shardCount int
	// statuses is consumed one entry per describe; the last entry sticks.
	statuses []streammodels.StreamStatus
	records  []streammodels.Record
	sequence int
}

// Service is a mock implementation of streamservice.StreamService for testing
type Service struct {
	mu             sync.Mutex
	streams        map[string]*stream
	createStatuses []streammodels.StreamStatus
	errs           map[string][]error
	calls          map[string]int
	listCursors    []string
}

// New creates a new mock Service. Streams created through CreateStream report
// CREATING on the first describe and ACTIVE afterwards.
func New() *Service {
	return &Service{
		streams:        make(map[string]*stream),
		createStatuses: []streammodels.StreamStatus{streammodels.StatusCreating, streammodels.StatusActive},
		errs:           make(map[string][]error),
		calls:          make(map[string]int),
	}
}

// WithStream adds an existing stream whose describe calls walk through statuses
func (m *Service) WithStream(name string, shardCount int, statuses ...streammodels.StreamStatus) *Service {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(statuses) == 0 {
		statuses = []streammodels.StreamStatus{streammodels.StatusActive}
	}
	m.streams[name] = &stream{shardCount: shardCount, statuses: statuses}
	return m
}

// WithCreateStatuses sets the status sequence given to streams created later
func (m *Service) WithCreateStatuses(statuses ...streammodels.StreamStatus) *Service {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createStatuses = statuses
	return m
}

// WithError queues errors for an operation. Each call consumes one; a nil
// entry lets that call through.
func (m *Service) WithError(op string, errs ...error) *Service {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[op] = append(m.errs[op], errs...)
	return m
}

// CreateStream registers a new stream
func (m *Service) CreateStream(ctx context.Context, name string, shardCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin(OpCreate); err != nil {
		return err
	}
	if name == "" {
		return errors.NewValidationError("streamName", "must not be empty")
	}
	if shardCount <= 0 {
		return errors.NewValidationError("shardCount", "must be positive")
	}
	if _, exists := m.streams[name]; exists {
		return errors.NewAlreadyExistsError("stream", name, nil)
	}

	statuses := append([]streammodels.StreamStatus(nil), m.createStatuses...)
	m.streams[name] = &stream{shardCount: shardCount, statuses: statuses}
	return nil
}

// DescribeStream reports the next scripted status of a stream
func (m *Service) DescribeStream(ctx context.Context, name string, shardLimit int32) (*streammodels.Stream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin(OpDescribe); err != nil {
		return nil, err
	}
	s, exists := m.streams[name]
	if !exists {
		return nil, errors.NewNotFoundError("stream", name, nil)
	}
	if len(s.statuses) == 0 {
		return nil, errors.NewValidationError("statuses", "no status scripted for stream "+name)
	}

	status := s.statuses[0]
	if len(s.statuses) > 1 {
		s.statuses = s.statuses[1:]
	}

	shards := s.shardCount
	hasMore := false
	if shardLimit > 0 && shards > int(shardLimit) {
		shards = int(shardLimit)
		hasMore = true
	}

	out := &streammodels.Stream{
		Name:           name,
		ARN:            fmt.Sprintf("arn:aws:kinesis:us-west-2:000000000000:stream/%s", name),
		Status:         status,
		ShardCount:     shards,
		RetentionHours: 24,
		HasMoreShards:  hasMore,
	}
	for i := 0; i < shards; i++ {
		out.Shards = append(out.Shards, streammodels.Shard{ShardID: shardID(i)})
	}
	return out, nil
}

// ListStreams pages through stream names in lexical order
func (m *Service) ListStreams(ctx context.Context, cursor string, limit int32) (*streammodels.ListPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listCursors = append(m.listCursors, cursor)
	if err := m.begin(OpList); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(m.streams))
	for name := range m.streams {
		if cursor == "" || name > cursor {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	page := &streammodels.ListPage{Names: names}
	if limit > 0 && len(names) > int(limit) {
		page.Names = names[:limit]
		page.HasMore = true
	}
	return page, nil
}

// PutRecord appends a record to a stream
func (m *Service) PutRecord(ctx context.Context, name string, record streammodels.Record) (*streammodels.PutResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin(OpPut); err != nil {
		return nil, err
	}
	if record.PartitionKey == "" {
		return nil, errors.NewValidationError("partitionKey", "must not be empty")
	}
	s, exists := m.streams[name]
	if !exists {
		return nil, errors.NewNotFoundError("stream", name, nil)
	}
	if s.shardCount <= 0 {
		return nil, errors.NewValidationError("shardCount", "stream "+name+" has no shards")
	}

	h := fnv.New32a()
	h.Write([]byte(record.PartitionKey))
	shard := int(h.Sum32() % uint32(s.shardCount))

	s.records = append(s.records, record)
	s.sequence++
	return &streammodels.PutResult{
		ShardID:        shardID(shard),
		SequenceNumber: fmt.Sprintf("%056d", s.sequence),
	}, nil
}

// DeleteStream removes a stream
func (m *Service) DeleteStream(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin(OpDelete); err != nil {
		return err
	}
	if _, exists := m.streams[name]; !exists {
		return errors.NewNotFoundError("stream", name, nil)
	}
	delete(m.streams, name)
	return nil
}

// Helper methods for testing

// Calls returns how many times an operation was invoked
func (m *Service) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// ListCursors returns the cursors passed to ListStreams, in call order
func (m *Service) ListCursors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.listCursors...)
}

// Records returns a copy of the records written to a stream
func (m *Service) Records(name string) []streammodels.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, exists := m.streams[name]
	if !exists {
		return nil
	}
	return append([]streammodels.Record(nil), s.records...)
}

// Exists reports whether a stream is present
func (m *Service) Exists(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.streams[name]
	return exists
}

// begin counts a call and pops any injected error. Callers hold m.mu.
func (m *Service) begin(op string) error {
	m.calls[op]++

	queued := m.errs[op]
	if len(queued) == 0 {
		return nil
	}
	m.errs[op] = queued[1:]
	return queued[0]
}

func shardID(i int) string {
	return fmt.Sprintf("shardId-%012d", i)
}
