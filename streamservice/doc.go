/*
Package streamservice defines the interface kinesisctl uses to talk to a
managed streaming service.

	type StreamService interface {
	    CreateStream(ctx context.Context, name string, shardCount int) error
	    DescribeStream(ctx context.Context, name string, shardLimit int32) (*streammodels.Stream, error)
	    ListStreams(ctx context.Context, cursor string, limit int32) (*streammodels.ListPage, error)
	    PutRecord(ctx context.Context, name string, record streammodels.Record) (*streammodels.PutResult, error)
	    DeleteStream(ctx context.Context, name string) error
	}

Implementations:
  - kds: Amazon Kinesis Data Streams on aws-sdk-go-v2
  - mock: scripted in-memory implementation for testing

The client is always passed explicitly; there is no package-level handle.
*/
package streamservice
