/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package waiter_test

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/kinesisctl/errors"
	"github.com/suparena/kinesisctl/streammodels"
	"github.com/suparena/kinesisctl/streamservice/mock"
	"github.com/suparena/kinesisctl/waiter"
)

// fakeClock advances only when the waiter sleeps. An interrupt that has
// fired cuts the sleep in half.
type fakeClock struct {
	mu          sync.Mutex
	now         time.Time
	sleeps      []time.Duration
	interrupted int
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2014, 6, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration, interrupt <-chan struct{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-interrupt:
		c.interrupted++
		c.now = c.now.Add(d / 2)
		c.sleeps = append(c.sleeps, d/2)
		return true
	default:
	}

	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	return false
}

func (c *fakeClock) elapsedSince(start time.Time) time.Duration {
	return c.Now().Sub(start)
}

func TestWaitBecomesActiveOnThirdPoll(t *testing.T) {
	svc := mock.New().WithStream("orders", 1,
		streammodels.StatusCreating,
		streammodels.StatusCreating,
		streammodels.StatusActive,
	)
	clock := newFakeClock()
	start := clock.Now()

	var polls []streammodels.PollResult
	w := waiter.New(svc, waiter.WithClock(clock))

	err := w.Wait(context.Background(), "orders",
		streammodels.WithPollInterval(20*time.Second),
		streammodels.WithObserver(func(r streammodels.PollResult) { polls = append(polls, r) }),
	)
	require.NoError(t, err)

	assert.Equal(t, 3, svc.Calls(mock.OpDescribe))
	assert.Equal(t, 60*time.Second, clock.elapsedSince(start))

	require.Len(t, polls, 3)
	for i, p := range polls {
		assert.Equal(t, i+1, p.Attempt)
		assert.Equal(t, time.Duration(i+1)*20*time.Second, p.Elapsed)
		assert.NoError(t, p.Err)
	}
	assert.Equal(t, streammodels.StatusActive, polls[2].Status)
}

func TestWaitReturnsOnFirstTargetObservation(t *testing.T) {
	svc := mock.New().WithStream("orders", 1,
		streammodels.StatusCreating,
		streammodels.StatusActive,
		streammodels.StatusUpdating,
	)
	clock := newFakeClock()

	err := waiter.New(svc, waiter.WithClock(clock)).Wait(context.Background(), "orders")
	require.NoError(t, err)

	assert.Equal(t, 2, svc.Calls(mock.OpDescribe))
	assert.Len(t, clock.sleeps, 2)
}

func TestWaitTimesOut(t *testing.T) {
	tests := []struct {
		name         string
		maxWait      time.Duration
		interval     time.Duration
		wantDescribe int
	}{
		{name: "deadline on a poll boundary", maxWait: 60 * time.Second, interval: 20 * time.Second, wantDescribe: 3},
		{name: "deadline between polls", maxWait: 50 * time.Second, interval: 20 * time.Second, wantDescribe: 3},
		{name: "interval longer than deadline", maxWait: 5 * time.Second, interval: 20 * time.Second, wantDescribe: 1},
		{name: "default interval and wait", maxWait: 10 * time.Minute, interval: 20 * time.Second, wantDescribe: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mock.New().WithStream("orders", 1, streammodels.StatusCreating)
			clock := newFakeClock()
			start := clock.Now()

			err := waiter.New(svc, waiter.WithClock(clock)).Wait(context.Background(), "orders",
				streammodels.WithMaxWait(tt.maxWait),
				streammodels.WithPollInterval(tt.interval),
			)
			require.Error(t, err)
			assert.True(t, errors.IsTimeout(err), "expected timeout, got %v", err)
			assert.Contains(t, err.Error(), "orders")

			assert.GreaterOrEqual(t, clock.elapsedSince(start), tt.maxWait)
			assert.Equal(t, tt.wantDescribe, svc.Calls(mock.OpDescribe))
		})
	}
}

func TestWaitNotFoundIsFatal(t *testing.T) {
	t.Run("first poll", func(t *testing.T) {
		svc := mock.New()
		clock := newFakeClock()

		err := waiter.New(svc, waiter.WithClock(clock)).Wait(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err), "expected not found, got %v", err)
		assert.False(t, errors.IsTransient(err))
		assert.False(t, errors.IsTimeout(err))
		assert.Contains(t, err.Error(), "missing never went active")

		assert.Equal(t, 1, svc.Calls(mock.OpDescribe))
		assert.Len(t, clock.sleeps, 1)
	})

	t.Run("after creating", func(t *testing.T) {
		svc := mock.New().
			WithStream("orders", 1, streammodels.StatusCreating).
			WithError(mock.OpDescribe, nil, errors.NewNotFoundError("stream", "orders", nil))
		clock := newFakeClock()

		err := waiter.New(svc, waiter.WithClock(clock)).Wait(context.Background(), "orders")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
		assert.Equal(t, 2, svc.Calls(mock.OpDescribe))
	})
}

func TestWaitServiceErrorIsTransient(t *testing.T) {
	svc := mock.New().
		WithStream("orders", 1, streammodels.StatusCreating).
		WithError(mock.OpDescribe, stderrors.New("Rate exceeded for stream orders"))
	clock := newFakeClock()

	var observed []streammodels.PollResult
	err := waiter.New(svc, waiter.WithClock(clock)).Wait(context.Background(), "orders",
		streammodels.WithObserver(func(r streammodels.PollResult) { observed = append(observed, r) }),
	)
	require.Error(t, err)
	assert.True(t, errors.IsTransient(err), "expected transient, got %v", err)
	assert.False(t, errors.IsNotFound(err))
	assert.Equal(t, 1, svc.Calls(mock.OpDescribe))

	require.Len(t, observed, 1)
	assert.Error(t, observed[0].Err)
}

func TestWaitInterruptionIsSwallowed(t *testing.T) {
	svc := mock.New().WithStream("orders", 1,
		streammodels.StatusCreating,
		streammodels.StatusCreating,
		streammodels.StatusActive,
	)
	clock := newFakeClock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waiter.New(svc, waiter.WithClock(clock)).Wait(ctx, "orders",
		streammodels.WithPollInterval(20*time.Second),
	)
	require.NoError(t, err)

	assert.Equal(t, 1, clock.interrupted, "the interruption is consumed once")
	assert.Equal(t, []time.Duration{10 * time.Second, 20 * time.Second, 20 * time.Second}, clock.sleeps)
	assert.Equal(t, 3, svc.Calls(mock.OpDescribe))
}

func TestWaitInterruptionDoesNotCancelDescribe(t *testing.T) {
	var seen []error
	describer := describeFunc(func(ctx context.Context, name string, limit int32) (*streammodels.Stream, error) {
		seen = append(seen, ctx.Err())
		return &streammodels.Stream{Name: name, Status: streammodels.StatusActive}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waiter.New(describer, waiter.WithClock(newFakeClock())).Wait(ctx, "orders")
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.NoError(t, seen[0])
}

func TestWaitCustomTarget(t *testing.T) {
	svc := mock.New().WithStream("orders", 1,
		streammodels.StatusActive,
		streammodels.StatusDeleting,
	)

	w := waiter.New(svc,
		waiter.WithClock(newFakeClock()),
		waiter.WithDefaults(streammodels.WithTarget(streammodels.StatusDeleting)),
	)
	require.NoError(t, w.Wait(context.Background(), "orders"))
	assert.Equal(t, 2, svc.Calls(mock.OpDescribe))
}

func TestWaitPassesShardLimit(t *testing.T) {
	var limits []int32
	describer := describeFunc(func(ctx context.Context, name string, limit int32) (*streammodels.Stream, error) {
		limits = append(limits, limit)
		return &streammodels.Stream{Name: name, Status: streammodels.StatusActive}, nil
	})

	w := waiter.New(describer, waiter.WithClock(newFakeClock()))
	require.NoError(t, w.Wait(context.Background(), "orders"))
	require.NoError(t, w.Wait(context.Background(), "orders", streammodels.WithShardLimit(3)))

	assert.Equal(t, []int32{10, 3}, limits)
}

func TestWaitValidation(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		opts   []streammodels.WaitOption
	}{
		{name: "empty stream name", stream: ""},
		{name: "zero interval", stream: "orders", opts: []streammodels.WaitOption{streammodels.WithPollInterval(0)}},
		{name: "negative max wait", stream: "orders", opts: []streammodels.WaitOption{streammodels.WithMaxWait(-time.Second)}},
		{name: "empty target", stream: "orders", opts: []streammodels.WaitOption{streammodels.WithTarget("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mock.New().WithStream("orders", 1)

			err := waiter.New(svc, waiter.WithClock(newFakeClock())).Wait(context.Background(), tt.stream, tt.opts...)
			assert.True(t, errors.IsValidationError(err), "expected validation error, got %v", err)
			assert.Equal(t, 0, svc.Calls(mock.OpDescribe))
		})
	}
}

func TestWaitRealClock(t *testing.T) {
	svc := mock.New().WithStream("orders", 1,
		streammodels.StatusCreating,
		streammodels.StatusActive,
	)

	start := time.Now()
	err := waiter.New(svc).Wait(context.Background(), "orders",
		streammodels.WithPollInterval(20*time.Millisecond),
		streammodels.WithMaxWait(5*time.Second),
	)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

type describeFunc func(ctx context.Context, name string, limit int32) (*streammodels.Stream, error)

func (f describeFunc) DescribeStream(ctx context.Context, name string, limit int32) (*streammodels.Stream, error) {
	return f(ctx, name, limit)
}
