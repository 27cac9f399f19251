/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package waiter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/suparena/kinesisctl/errors"
	"github.com/suparena/kinesisctl/streammodels"
)

// Describer reports the current state of a stream.
type Describer interface {
	DescribeStream(ctx context.Context, name string, shardLimit int32) (*streammodels.Stream, error)
}

// Waiter blocks until a stream reaches a target status.
type Waiter struct {
	describer Describer
	clock     Clock
	logger    *zap.Logger
	defaults  []streammodels.WaitOption
}

// Option configures a Waiter
type Option func(*Waiter)

// WithClock replaces the wall clock, mainly for tests
func WithClock(clock Clock) Option {
	return func(w *Waiter) {
		w.clock = clock
	}
}

// WithLogger sets the logger used to report each poll
func WithLogger(logger *zap.Logger) Option {
	return func(w *Waiter) {
		w.logger = logger
	}
}

// WithDefaults sets wait options applied before the per-call options
func WithDefaults(opts ...streammodels.WaitOption) Option {
	return func(w *Waiter) {
		w.defaults = append(w.defaults, opts...)
	}
}

// New creates a Waiter that polls through describer.
func New(describer Describer, opts ...Option) *Waiter {
	w := &Waiter{
		describer: describer,
		clock:     RealClock(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Wait polls the stream every poll interval until its status equals the
// target, or fails with a TimeoutError once the maximum wait has elapsed.
//
// Every check is preceded by a sleep. A NotFound result ends the wait
// immediately; any other describe error ends it as a TransientError.
//
// Cancelling ctx while sleeping only cuts that sleep short: the interruption
// is logged and the wait goes on, because the service keeps creating the
// stream regardless. The interruption is consumed, so later sleeps run their
// full interval. Describe calls do not inherit ctx cancellation.
func (w *Waiter) Wait(ctx context.Context, name string, opts ...streammodels.WaitOption) error {
	options := streammodels.DefaultWaitOptions()
	for _, opt := range w.defaults {
		opt(&options)
	}
	for _, opt := range opts {
		opt(&options)
	}
	if err := validate(name, options); err != nil {
		return err
	}

	w.logger.Info("Waiting for stream",
		zap.String("stream", name),
		zap.Stringer("target", options.Target),
		zap.Duration("poll_interval", options.PollInterval),
		zap.Duration("max_wait", options.MaxWait),
	)

	start := w.clock.Now()
	deadline := start.Add(options.MaxWait)
	interrupt := ctx.Done()
	queryCtx := context.WithoutCancel(ctx)
	status := streammodels.StatusUnknown

	for attempt := 1; w.clock.Now().Before(deadline); attempt++ {
		if w.clock.Sleep(options.PollInterval, interrupt) {
			w.logger.Info("Wait interrupted, still waiting", zap.String("stream", name), zap.Stringer("status", status))
			interrupt = nil
		}

		stream, err := w.describer.DescribeStream(queryCtx, name, options.ShardLimit)
		result := streammodels.PollResult{
			Stream:  name,
			Attempt: attempt,
			Elapsed: w.clock.Now().Sub(start),
		}
		if err != nil {
			result.Err = err
			w.observe(options, result)
			return pollError(name, err)
		}

		status = stream.Status
		result.Status = status
		w.observe(options, result)
		w.logger.Info("  - current state", zap.String("stream", name), zap.Stringer("status", status), zap.Int("attempt", attempt))

		if status == options.Target {
			return nil
		}
	}

	return errors.NewTimeoutError("stream "+name, options.Target.String(), w.clock.Now().Sub(start))
}

func (w *Waiter) observe(options streammodels.WaitOptions, result streammodels.PollResult) {
	if options.Observer != nil {
		options.Observer(result)
	}
}

// pollError keeps NotFound and every other failure as distinct kinds.
func pollError(name string, err error) error {
	if errors.IsNotFound(err) {
		return fmt.Errorf("stream %s never went active: %w", name, err)
	}
	if !errors.IsTransient(err) {
		err = errors.NewTransientError("DescribeStream", err)
	}
	return fmt.Errorf("waiting for stream %s: %w", name, err)
}

func validate(name string, options streammodels.WaitOptions) error {
	if name == "" {
		return errors.NewValidationError("streamName", "must not be empty")
	}
	if options.Target == "" {
		return errors.NewValidationError("target", "must not be empty")
	}
	if options.PollInterval <= 0 {
		return errors.NewValidationError("pollInterval", "must be positive")
	}
	if options.MaxWait <= 0 {
		return errors.NewValidationError("maxWait", "must be positive")
	}
	return nil
}
