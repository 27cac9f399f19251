/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suparena/kinesisctl/config"
	"github.com/suparena/kinesisctl/ledger"
	"github.com/suparena/kinesisctl/ledger/ddb"
	"github.com/suparena/kinesisctl/logging"
	"github.com/suparena/kinesisctl/streammodels"
	"github.com/suparena/kinesisctl/streamservice"
	"github.com/suparena/kinesisctl/streamservice/kds"
	"github.com/suparena/kinesisctl/waiter"
)

// clientFactory builds the service and ledger for a loaded configuration.
type clientFactory func(ctx context.Context, cfg config.Config, logger *zap.Logger) (streamservice.StreamService, ledger.Ledger, error)

type app struct {
	out io.Writer

	configPath string
	envFile    string

	cfg    config.Config
	logger *zap.Logger

	newClients clientFactory
	newLogger  func(cfg config.Logging) (*zap.Logger, error)
	clock      waiter.Clock
}

func newApp(out io.Writer) *app {
	return &app{
		out:        out,
		newClients: awsClients,
		newLogger: func(cfg config.Logging) (*zap.Logger, error) {
			return logging.New(cfg.Level, cfg.Development)
		},
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "kinesisctl",
		Short: "Create, inspect and exercise Amazon Kinesis data streams",
		Long: `kinesisctl walks through the Kinesis Data Streams lifecycle.

  The sample command creates a stream, waits for it to become ACTIVE, lists your streams, writes a batch of records and deletes the stream. Each step is also available as its own command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML configuration file")
	flags.StringVar(&a.envFile, "env-file", ".env", "Path to a .env file, ignored when missing")
	flags.String("region", "", "AWS region (overrides configuration)")
	flags.String("profile", "", "AWS shared config profile (overrides configuration)")
	flags.String("endpoint", "", "Kinesis endpoint URL, e.g. for LocalStack")
	flags.String("log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newSampleCmd(a),
		newCreateCmd(a),
		newWaitCmd(a),
		newDescribeCmd(a),
		newListCmd(a),
		newPutCmd(a),
		newDeleteCmd(a),
		newReceiptsCmd(a),
		newVersionCmd(a),
	)
	return root
}

// load resolves configuration, including the flags of the running command,
// and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, a.envFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := a.newLogger(cfg.Logging)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) waiter(svc streamservice.StreamService) *waiter.Waiter {
	opts := []waiter.Option{
		waiter.WithLogger(a.logger),
		waiter.WithDefaults(
			streammodels.WithPollInterval(a.cfg.Stream.PollInterval),
			streammodels.WithMaxWait(a.cfg.Stream.MaxWait),
			streammodels.WithShardLimit(a.cfg.Stream.ShardLimit),
		),
	}
	if a.clock != nil {
		opts = append(opts, waiter.WithClock(a.clock))
	}
	return waiter.New(svc, opts...)
}

func (a *app) clients(ctx context.Context) (streamservice.StreamService, ledger.Ledger, error) {
	return a.newClients(ctx, a.cfg, a.logger)
}

// awsClients connects to Kinesis, and to DynamoDB when a ledger table is set.
func awsClients(ctx context.Context, cfg config.Config, logger *zap.Logger) (streamservice.StreamService, ledger.Ledger, error) {
	awsCfg, err := config.AWSConfig(ctx, cfg.AWS)
	if err != nil {
		return nil, nil, err
	}

	svc := kds.New(kds.NewKinesisClient(awsCfg, cfg.AWS.Endpoint), kds.WithLogger(logger))
	if cfg.Ledger.Table == "" {
		return svc, ledger.Discard{}, nil
	}

	l, err := ddb.New(ddb.NewDynamoDBClient(awsCfg, cfg.Ledger.Endpoint), cfg.Ledger.Table, ddb.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Receipt ledger enabled", zap.String("table", cfg.Ledger.Table))
	return svc, l, nil
}
