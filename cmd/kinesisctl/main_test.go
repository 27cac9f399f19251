/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suparena/kinesisctl/config"
	"github.com/suparena/kinesisctl/errors"
	"github.com/suparena/kinesisctl/ledger"
	"github.com/suparena/kinesisctl/streamservice"
	"github.com/suparena/kinesisctl/streamservice/mock"
)

type instantClock struct {
	now time.Time
}

func (c *instantClock) Now() time.Time { return c.now }

func (c *instantClock) Sleep(d time.Duration, interrupt <-chan struct{}) bool {
	c.now = c.now.Add(d)
	return false
}

type harness struct {
	svc    *mock.Service
	ledger *ledger.Memory
	out    *bytes.Buffer
	app    *app
}

func newHarness(svc *mock.Service) *harness {
	h := &harness{svc: svc, ledger: ledger.NewMemory(), out: &bytes.Buffer{}}
	a := newApp(h.out)
	a.newLogger = func(config.Logging) (*zap.Logger, error) { return zap.NewNop(), nil }
	a.newClients = func(context.Context, config.Config, *zap.Logger) (streamservice.StreamService, ledger.Ledger, error) {
		return h.svc, h.ledger, nil
	}
	a.clock = &instantClock{now: time.Date(2014, 6, 1, 0, 0, 0, 0, time.UTC)}
	h.app = a
	return h
}

func (h *harness) run(args ...string) error {
	cmd := newRootCmd(h.app)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	cmd.SetOut(h.out)
	cmd.SetErr(h.out)
	return cmd.ExecuteContext(context.Background())
}

func TestSampleCommand(t *testing.T) {
	h := newHarness(mock.New().WithStream("existing", 1, "ACTIVE"))

	require.NoError(t, h.run("sample", "--records", "3"))

	out := h.out.String()
	assert.Contains(t, out, "Waiting for boundary-test-stream to become ACTIVE...\n")
	assert.Contains(t, out, "  - current state: CREATING\n")
	assert.Contains(t, out, "  - current state: ACTIVE\n")
	assert.Contains(t, out, "List of my streams: \nboundary-test-stream\nexisting\n")
	assert.Contains(t, out, "Successfully putrecord, partition key : partitionKey-2, ShardID : shardId-000000000000\n")
	assert.Equal(t, 3, strings.Count(out, "Successfully putrecord"))

	assert.False(t, h.svc.Exists("boundary-test-stream"))
	assert.Equal(t, 2, h.svc.Calls(mock.OpDescribe))
	assert.Equal(t, 1, h.svc.Calls(mock.OpDelete))
}

func TestSampleCommandKeepsStream(t *testing.T) {
	h := newHarness(mock.New())

	require.NoError(t, h.run("sample", "--records", "2", "--keep"))

	assert.True(t, h.svc.Exists("boundary-test-stream"))
	assert.Len(t, h.svc.Records("boundary-test-stream"), 2)
	assert.Equal(t, 0, h.svc.Calls(mock.OpDelete))
}

func TestSampleCommandStreamName(t *testing.T) {
	t.Setenv("KINESIS_STREAM_NAME", "orders")
	h := newHarness(mock.New())

	require.NoError(t, h.run("sample", "--records", "0"))

	assert.Contains(t, h.out.String(), "Waiting for orders to become ACTIVE...")
	assert.Equal(t, 1, h.svc.Calls(mock.OpCreate))
}

func TestCreateCommand(t *testing.T) {
	h := newHarness(mock.New())

	require.NoError(t, h.run("create", "orders", "--shards", "2", "--wait"))

	out := h.out.String()
	assert.Contains(t, out, "Creating stream orders with 2 shard(s)")
	assert.Contains(t, out, "  - current state: ACTIVE")
	assert.True(t, h.svc.Exists("orders"))
}

func TestCreateCommandAlreadyExists(t *testing.T) {
	h := newHarness(mock.New().WithStream("orders", 1))

	err := h.run("create", "orders")
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestWaitCommandNotFound(t *testing.T) {
	h := newHarness(mock.New())

	err := h.run("wait", "missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, 1, h.svc.Calls(mock.OpDescribe))
}

func TestWaitCommandTimeout(t *testing.T) {
	h := newHarness(mock.New().WithStream("orders", 1, "CREATING"))

	err := h.run("wait", "orders", "--interval", "1m", "--max-wait", "3m")
	require.Error(t, err)
	assert.True(t, errors.IsTimeout(err))
	assert.Equal(t, 3, h.svc.Calls(mock.OpDescribe))
}

func TestDescribeCommand(t *testing.T) {
	h := newHarness(mock.New().WithStream("orders", 2, "ACTIVE"))

	require.NoError(t, h.run("describe", "orders"))

	out := h.out.String()
	assert.Contains(t, out, "Name:      orders\n")
	assert.Contains(t, out, "Status:    ACTIVE\n")
	assert.Contains(t, out, "  - shardId-000000000001\n")
}

func TestListCommandPages(t *testing.T) {
	h := newHarness(mock.New().
		WithStream("a", 1).
		WithStream("b", 1).
		WithStream("c", 1))

	require.NoError(t, h.run("list", "--limit", "2"))

	assert.Equal(t, "a\nb\nc\n", h.out.String())
	assert.Equal(t, []string{"", "b"}, h.svc.ListCursors())
}

func TestPutCommandRecordsReceipts(t *testing.T) {
	h := newHarness(mock.New().WithStream("orders", 1, "ACTIVE"))

	require.NoError(t, h.run("put", "orders", "--count", "2"))

	records := h.svc.Records("orders")
	require.Len(t, records, 2)
	assert.Equal(t, "partitionKey-1", records[1].PartitionKey)
	assert.Equal(t, []byte("testData-1"), records[1].Data)
}

func TestDeleteCommandMissingStream(t *testing.T) {
	h := newHarness(mock.New())

	err := h.run("delete", "missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestReceiptsCommand(t *testing.T) {
	h := newHarness(mock.New())
	require.NoError(t, h.ledger.Append(context.Background(), ledger.Receipt{
		RunID:          "run-1",
		StreamName:     "orders",
		PartitionKey:   "partitionKey-0",
		ShardID:        "shardId-000000000000",
		SequenceNumber: "49546986683135544286507457936321625675700192471156785154",
	}))

	require.NoError(t, h.run("receipts", "run-1"))

	assert.True(t, strings.HasPrefix(h.out.String(), "orders\tshardId-000000000000\t49546986683135544286507457936321625675700192471156785154\tpartitionKey-0\t"))
}

func TestInvalidConfiguration(t *testing.T) {
	t.Setenv("KINESIS_SHARD_COUNT", "0")
	h := newHarness(mock.New())

	err := h.run("list")
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Equal(t, 0, h.svc.Calls(mock.OpList))
}

func TestVersionCommand(t *testing.T) {
	h := newHarness(mock.New())
	h.app.newLogger = func(config.Logging) (*zap.Logger, error) {
		t.Fatal("version must not load configuration")
		return nil, nil
	}

	require.NoError(t, h.run("version"))
	assert.True(t, strings.HasPrefix(h.out.String(), "kinesisctl version "))
}

func TestNegativeRecordCountRejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "put", args: []string{"put", "orders", "--count", "-1"}},
		{name: "sample", args: []string{"sample", "--records", "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(mock.New().WithStream("orders", 1))

			err := h.run(tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsConfiguration(err), "got %v", err)

			assert.Equal(t, 0, h.svc.Calls(mock.OpCreate))
			assert.Equal(t, 0, h.svc.Calls(mock.OpPut))
		})
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("KINESIS_SHARD_COUNT", "3")
	h := newHarness(mock.New())

	require.NoError(t, h.run("create", "orders", "--shards", "2"))
	assert.Contains(t, h.out.String(), "Creating stream orders with 2 shard(s)")
}

func TestEnvironmentUsedWithoutFlag(t *testing.T) {
	t.Setenv("KINESIS_SHARD_COUNT", "3")
	h := newHarness(mock.New())

	require.NoError(t, h.run("create", "orders"))
	assert.Contains(t, h.out.String(), "Creating stream orders with 3 shard(s)")
}
