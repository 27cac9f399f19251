/*
Package kinesisctl exercises the control and data plane of Amazon Kinesis Data
Streams: create a stream, wait for it to become ACTIVE, list streams, write
records and delete the stream.

The library is organised as:
  - streamservice: the service interface, with kds (Kinesis) and mock implementations
  - waiter: blocks until a stream reaches a status, with a fixed poll interval
  - sample: the end-to-end walkthrough
  - ledger: optional receipts of written records, in memory or DynamoDB
  - errors: NotFound, Transient, Timeout and Configuration error kinds
  - config, logging: settings and zap loggers for the kinesisctl command

Basic Usage:

	awsCfg, err := config.AWSConfig(ctx, cfg.AWS)
	if err != nil {
	    return err // errors.IsConfiguration(err)
	}
	svc := kds.New(kds.NewKinesisClient(awsCfg, ""))

	if err := svc.CreateStream(ctx, "orders", 1); err != nil {
	    return err
	}
	err = waiter.New(svc).Wait(ctx, "orders")

The service client is always passed explicitly.
*/
package kinesisctl
