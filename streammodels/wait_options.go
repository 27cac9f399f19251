/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package streammodels

import (
	"time"
)

// Defaults for waiting on a stream.
const (
	DefaultPollInterval = 20 * time.Second
	DefaultMaxWait      = 10 * time.Minute
	DefaultShardLimit   = int32(10)
)

// WaitOptions configures the readiness waiter
type WaitOptions struct {
	Target       StreamStatus     // Status that ends the wait (default: ACTIVE)
	MaxWait      time.Duration    // Maximum total wait (default: 10m)
	PollInterval time.Duration    // Sleep between checks (default: 20s)
	ShardLimit   int32            // Shard descriptors requested per describe (default: 10)
	Observer     func(PollResult) // Optional per-poll callback
}

// WaitOption is a functional option for configuring a wait
type WaitOption func(*WaitOptions)

// DefaultWaitOptions returns default wait options
func DefaultWaitOptions() WaitOptions {
	return WaitOptions{
		Target:       StatusActive,
		MaxWait:      DefaultMaxWait,
		PollInterval: DefaultPollInterval,
		ShardLimit:   DefaultShardLimit,
	}
}

// WithTarget sets the status that ends the wait
func WithTarget(status StreamStatus) WaitOption {
	return func(opts *WaitOptions) {
		opts.Target = status
	}
}

// WithMaxWait sets the maximum total wait
func WithMaxWait(d time.Duration) WaitOption {
	return func(opts *WaitOptions) {
		opts.MaxWait = d
	}
}

// WithPollInterval sets the sleep between status checks
func WithPollInterval(d time.Duration) WaitOption {
	return func(opts *WaitOptions) {
		opts.PollInterval = d
	}
}

// WithShardLimit sets the shard-page limit passed to each describe call
func WithShardLimit(limit int32) WaitOption {
	return func(opts *WaitOptions) {
		opts.ShardLimit = limit
	}
}

// WithObserver sets a callback invoked after every status check
func WithObserver(fn func(PollResult)) WaitOption {
	return func(opts *WaitOptions) {
		opts.Observer = fn
	}
}
