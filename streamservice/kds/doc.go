/*
Package kds provides an Amazon Kinesis Data Streams implementation of the
StreamService interface.

	cfg, err := config.AWSConfig(ctx, appConfig)
	if err != nil {
	    return err
	}
	svc := kds.New(kds.NewKinesisClient(cfg, appConfig.Endpoint), kds.WithLogger(logger))

Service errors are mapped onto the errors package:
  - ResourceNotFoundException becomes errors.NotFoundError
  - ResourceInUseException on CreateStream becomes errors.AlreadyExistsError
  - anything else becomes errors.TransientError wrapping the SDK error

Requests are validated locally (stream name, shard count, partition key
length, record size) before they are sent.
*/
package kds
