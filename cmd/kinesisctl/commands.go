/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suparena/kinesisctl"
	"github.com/suparena/kinesisctl/sample"
	"github.com/suparena/kinesisctl/streammodels"
	"github.com/suparena/kinesisctl/streamservice"
)

func newSampleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Run the full create, wait, list, put and delete sequence",
		Long: `Run the full create, wait, list, put and delete sequence.

  An interrupt (Ctrl-C) while waiting for the stream only ends the current poll sleep. An interrupt during a later step stops the run and the stream is deleted before exiting, unless --keep is set. A second interrupt exits immediately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, l, err := a.clients(cmd.Context())
			if err != nil {
				return err
			}

			settings := sample.Settings{
				StreamName:  a.cfg.Stream.Name,
				ShardCount:  a.cfg.Stream.ShardCount,
				RecordCount: a.cfg.Stream.RecordCount,
				ListLimit:   a.cfg.Stream.ListLimit,
				KeepStream:  a.cfg.Stream.KeepStream,
			}

			runner := sample.New(svc, settings,
				sample.WithWaiter(a.waiter(svc)),
				sample.WithLedger(l),
				sample.WithOutput(a.out),
				sample.WithLogger(a.logger),
			)
			summary, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			a.logger.Info("Sample run complete",
				zap.String("run_id", summary.RunID),
				zap.Int("records", len(summary.Receipts)),
				zap.Bool("deleted", summary.Deleted),
			)
			return nil
		},
	}
	cmd.Flags().Bool("keep", false, "Keep the stream instead of deleting it")
	cmd.Flags().Int("records", 100, "Number of records to write (overrides configuration)")
	return cmd
}

func newCreateCmd(a *app) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := a.clients(cmd.Context())
			if err != nil {
				return err
			}
			shards := a.cfg.Stream.ShardCount
			if err := svc.CreateStream(cmd.Context(), args[0], shards); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Creating stream %s with %d shard(s)\n", args[0], shards)

			if !wait {
				return nil
			}
			return a.waiter(svc).Wait(cmd.Context(), args[0], observer(a))
		},
	}
	cmd.Flags().Int("shards", 1, "Number of shards")
	cmd.Flags().BoolVar(&wait, "wait", false, "Wait for the stream to become ACTIVE")
	return cmd
}

func newWaitCmd(a *app) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "wait NAME",
		Short: "Wait for a stream to reach a status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := a.clients(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Waiting for %s to become %s...\n", args[0], target)
			err = a.waiter(svc).Wait(cmd.Context(), args[0],
				streammodels.WithTarget(streammodels.StreamStatus(target)),
				observer(a),
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s is %s\n", args[0], target)
			return nil
		},
	}
	cmd.Flags().Duration("interval", 20*time.Second, "Poll interval (overrides configuration)")
	cmd.Flags().Duration("max-wait", 10*time.Minute, "Maximum wait (overrides configuration)")
	cmd.Flags().StringVar(&target, "target", string(streammodels.StatusActive), "Status to wait for")
	return cmd
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe NAME",
		Short: "Show a stream's status and shards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := a.clients(cmd.Context())
			if err != nil {
				return err
			}

			s, err := svc.DescribeStream(cmd.Context(), args[0], a.cfg.Stream.ShardLimit)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Name:      %s\n", s.Name)
			if s.ARN != "" {
				fmt.Fprintf(a.out, "ARN:       %s\n", s.ARN)
			}
			fmt.Fprintf(a.out, "Status:    %s\n", s.Status)
			fmt.Fprintf(a.out, "Retention: %dh\n", s.RetentionHours)
			for _, sh := range s.Shards {
				fmt.Fprintf(a.out, "  - %s\n", sh.ShardID)
			}
			if s.HasMoreShards {
				fmt.Fprintln(a.out, "  ...")
			}
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every stream in the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := a.clients(cmd.Context())
			if err != nil {
				return err
			}
			names, err := streamservice.ListAllStreams(cmd.Context(), svc, a.cfg.Stream.ListLimit)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(a.out, n)
			}
			return nil
		},
	}
	cmd.Flags().Int32("limit", 10, "Page size of each ListStreams call")
	return cmd
}

func newPutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put NAME",
		Short: "Write test records to a stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, l, err := a.clients(cmd.Context())
			if err != nil {
				return err
			}
			runner := sample.New(svc, sample.Settings{StreamName: args[0]},
				sample.WithLedger(l),
				sample.WithOutput(a.out),
				sample.WithLogger(a.logger),
			)
			receipts, err := runner.PutRecords(cmd.Context(), args[0], a.cfg.Stream.RecordCount)
			if err != nil {
				return err
			}
			if len(receipts) > 0 {
				a.logger.Info("Records written", zap.String("run_id", receipts[0].RunID), zap.Int("count", len(receipts)))
			}
			return nil
		},
	}
	cmd.Flags().Int("count", 100, "Number of records")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := a.clients(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.DeleteStream(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Stream %s is now being deleted\n", args[0])
			return nil
		},
	}
}

func newReceiptsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "receipts RUN_ID",
		Short: "Print the receipts recorded for a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, l, err := a.clients(cmd.Context())
			if err != nil {
				return err
			}

			receipts, err := l.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, r := range receipts {
				fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\t%s\n", r.StreamName, r.ShardID, r.SequenceNumber, r.PartitionKey, r.WrittenAt)
			}
			return nil
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// No configuration is needed to print the version.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			info := kinesisctl.GetVersionInfo()
			fmt.Fprintf(a.out, "kinesisctl version %s\n", info.Version)
			fmt.Fprintf(a.out, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(a.out, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(a.out, "Go version: %s\n", info.GoVersion)
			fmt.Fprintf(a.out, "Platform: %s\n", info.Platform)
		},
	}
}

func observer(a *app) streammodels.WaitOption {
	return streammodels.WithObserver(func(p streammodels.PollResult) {
		if p.Err == nil {
			fmt.Fprintf(a.out, "  - current state: %s\n", p.Status)
		}
	})
}
