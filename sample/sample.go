/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sample

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suparena/kinesisctl/errors"
	"github.com/suparena/kinesisctl/ledger"
	"github.com/suparena/kinesisctl/streammodels"
	"github.com/suparena/kinesisctl/streamservice"
	"github.com/suparena/kinesisctl/waiter"
)

// Settings are the parameters of one sample run.
type Settings struct {
	StreamName  string
	ShardCount  int
	RecordCount int
	ListLimit   int32
	KeepStream  bool
	// WaitOptions are passed to every readiness wait.
	WaitOptions []streammodels.WaitOption
}

// Waiter blocks until a stream reaches a status.
type Waiter interface {
	Wait(ctx context.Context, name string, opts ...streammodels.WaitOption) error
}

// Summary describes what a run did.
type Summary struct {
	RunID    string
	Streams  []string
	Receipts []ledger.Receipt
	Deleted  bool
}

// Runner executes create, wait, list, put and delete against one stream and
// stops at the first failure.
type Runner struct {
	svc      streamservice.StreamService
	waiter   Waiter
	ledger   ledger.Ledger
	out      io.Writer
	logger   *zap.Logger
	runID    string
	now      func() time.Time
	settings Settings
}

// Option configures a Runner
type Option func(*Runner)

// WithWaiter replaces the default waiter built on the service
func WithWaiter(w Waiter) Option {
	return func(r *Runner) {
		r.waiter = w
	}
}

// WithLedger stores a receipt for every record written
func WithLedger(l ledger.Ledger) Option {
	return func(r *Runner) {
		r.ledger = l
	}
}

// WithOutput sets where the program output is printed
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithRunID fixes the run identifier instead of generating one
func WithRunID(id string) Option {
	return func(r *Runner) {
		r.runID = id
	}
}

// WithNow sets the clock used to timestamp receipts
func WithNow(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// New creates a Runner for svc.
func New(svc streamservice.StreamService, settings Settings, opts ...Option) *Runner {
	r := &Runner{
		svc:      svc,
		ledger:   ledger.Discard{},
		out:      io.Discard,
		logger:   zap.NewNop(),
		now:      time.Now,
		settings: settings,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.waiter == nil {
		r.waiter = waiter.New(svc, waiter.WithLogger(r.logger))
	}
	if r.runID == "" {
		r.runID = uuid.NewString()
	}
	return r
}

// Run performs the whole sequence. The returned Summary is filled as far as
// the run got, even on error.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	name := r.settings.StreamName
	summary := &Summary{RunID: r.runID}
	logger := r.logger.With(zap.String("stream", name), zap.String("run_id", r.runID))

	if err := validateCount(r.settings.RecordCount); err != nil {
		return summary, err
	}

	if err := r.svc.CreateStream(ctx, name, r.settings.ShardCount); err != nil {
		return summary, fmt.Errorf("create stream %s: %w", name, err)
	}
	logger.Info("Creating Stream", zap.Int("shards", r.settings.ShardCount))

	if err := r.afterCreate(ctx, name, summary, logger); err != nil {
		if ctx.Err() != nil && !r.settings.KeepStream {
			r.cleanup(ctx, name, summary, logger)
		}
		return summary, err
	}

	if r.settings.KeepStream {
		logger.Info("Keeping stream")
		return summary, nil
	}

	logger.Info("Deleting stream")
	if err := r.delete(ctx, name, summary); err != nil {
		return summary, err
	}
	logger.Info("Stream is now being deleted")

	return summary, nil
}

func (r *Runner) afterCreate(ctx context.Context, name string, summary *Summary, logger *zap.Logger) error {
	if err := r.WaitActive(ctx, name); err != nil {
		return err
	}

	streams, err := r.ListStreams(ctx)
	if err != nil {
		return err
	}
	summary.Streams = streams

	logger.Info("Putting records in stream", zap.Int("count", r.settings.RecordCount))
	receipts, err := r.PutRecords(ctx, name, r.settings.RecordCount)
	summary.Receipts = receipts
	return err
}

// cleanup deletes the stream of an interrupted run. Its own failure is only
// logged; the interruption stays the reported error.
func (r *Runner) cleanup(ctx context.Context, name string, summary *Summary, logger *zap.Logger) {
	logger.Info("Run interrupted, deleting stream")
	if err := r.delete(ctx, name, summary); err != nil {
		logger.Warn("Failed to delete stream after interruption", zap.Error(err))
	}
}

// delete runs even when ctx is cancelled.
func (r *Runner) delete(ctx context.Context, name string, summary *Summary) error {
	if err := r.svc.DeleteStream(context.WithoutCancel(ctx), name); err != nil {
		return fmt.Errorf("delete stream %s: %w", name, err)
	}
	summary.Deleted = true
	return nil
}

// WaitActive waits for name to become ACTIVE, printing each observed state.
func (r *Runner) WaitActive(ctx context.Context, name string) error {
	fmt.Fprintf(r.out, "Waiting for %s to become ACTIVE...\n", name)

	opts := append([]streammodels.WaitOption(nil), r.settings.WaitOptions...)
	opts = append(opts, streammodels.WithObserver(func(p streammodels.PollResult) {
		if p.Err == nil {
			fmt.Fprintf(r.out, "  - current state: %s\n", p.Status)
		}
	}))

	if err := r.waiter.Wait(ctx, name, opts...); err != nil {
		return fmt.Errorf("wait for stream %s: %w", name, err)
	}
	return nil
}

// ListStreams prints every stream name in the account.
func (r *Runner) ListStreams(ctx context.Context) ([]string, error) {
	names, err := streamservice.ListAllStreams(ctx, r.svc, r.settings.ListLimit)
	if err != nil {
		return nil, fmt.Errorf("list streams: %w", err)
	}

	r.logger.Info("Printing my list of streams", zap.Int("count", len(names)))
	if len(names) > 0 {
		fmt.Fprintln(r.out, "List of my streams: ")
	}
	for _, n := range names {
		fmt.Fprintln(r.out, n)
	}
	return names, nil
}

// PutRecords writes count records named testData-j with partition key
// partitionKey-j, one request each.
func (r *Runner) PutRecords(ctx context.Context, name string, count int) ([]ledger.Receipt, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	receipts := make([]ledger.Receipt, 0, count)

	for j := 0; j < count; j++ {
		record := streammodels.Record{
			Data:         []byte(fmt.Sprintf("testData-%d", j)),
			PartitionKey: fmt.Sprintf("partitionKey-%d", j),
		}

		res, err := r.svc.PutRecord(ctx, name, record)
		if err != nil {
			return receipts, fmt.Errorf("put record %d to %s: %w", j, name, err)
		}
		fmt.Fprintf(r.out, "Successfully putrecord, partition key : %s, ShardID : %s\n", record.PartitionKey, res.ShardID)

		receipt := ledger.Receipt{
			RunID:          r.runID,
			StreamName:     name,
			PartitionKey:   record.PartitionKey,
			ShardID:        res.ShardID,
			SequenceNumber: res.SequenceNumber,
			WrittenAt:      strfmt.DateTime(r.now().UTC()),
		}
		if err := r.ledger.Append(ctx, receipt); err != nil {
			return receipts, fmt.Errorf("record receipt for %s: %w", record.PartitionKey, err)
		}
		receipts = append(receipts, receipt)
	}

	return receipts, nil
}

func validateCount(count int) error {
	if count < 0 {
		return errors.NewValidationError("count", "must not be negative")
	}
	return nil
}
