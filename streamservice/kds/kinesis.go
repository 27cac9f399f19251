/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package kds

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
	"go.uber.org/zap"

	streamerrors "github.com/suparena/kinesisctl/errors"
	"github.com/suparena/kinesisctl/streammodels"
)

// Service limits checked before a request is sent.
const (
	maxStreamNameLength   = 128
	maxPartitionKeyLength = 256
	maxRecordSize         = 1 << 20
	maxListLimit          = 10000
)

// KinesisAPI is the subset of the Kinesis client used by Service. Operating on
// an interface allows injecting a fake in tests.
type KinesisAPI interface {
	CreateStream(ctx context.Context, params *sdk.CreateStreamInput, optFns ...func(*sdk.Options)) (*sdk.CreateStreamOutput, error)
	DescribeStream(ctx context.Context, params *sdk.DescribeStreamInput, optFns ...func(*sdk.Options)) (*sdk.DescribeStreamOutput, error)
	ListStreams(ctx context.Context, params *sdk.ListStreamsInput, optFns ...func(*sdk.Options)) (*sdk.ListStreamsOutput, error)
	PutRecord(ctx context.Context, params *sdk.PutRecordInput, optFns ...func(*sdk.Options)) (*sdk.PutRecordOutput, error)
	DeleteStream(ctx context.Context, params *sdk.DeleteStreamInput, optFns ...func(*sdk.Options)) (*sdk.DeleteStreamOutput, error)
}

// Service implements streamservice.StreamService on Amazon Kinesis Data Streams.
type Service struct {
	client KinesisAPI
	logger *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewKinesisClient creates a Kinesis client from a loaded AWS configuration.
// endpoint overrides the service endpoint when non-empty (e.g. LocalStack).
func NewKinesisClient(cfg aws.Config, endpoint string) *sdk.Client {
	return sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// New wraps a Kinesis client.
func New(client KinesisAPI, opts ...Option) *Service {
	s := &Service{
		client: client,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateStream starts creating a provisioned stream with shardCount shards.
func (s *Service) CreateStream(ctx context.Context, name string, shardCount int) error {
	if err := validateName(name); err != nil {
		return err
	}
	if shardCount <= 0 {
		return streamerrors.NewValidationError("shardCount", "must be positive")
	}

	_, err := s.client.CreateStream(ctx, &sdk.CreateStreamInput{
		StreamName: aws.String(name),
		ShardCount: aws.Int32(int32(shardCount)),
	})
	if err != nil {
		return mapError("CreateStream", name, err)
	}

	s.logger.Debug("CreateStream accepted", zap.String("stream", name), zap.Int("shards", shardCount))
	return nil
}

// DescribeStream returns the stream status and at most shardLimit shard
// descriptors. A shardLimit of zero leaves the service default.
func (s *Service) DescribeStream(ctx context.Context, name string, shardLimit int32) (*streammodels.Stream, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	input := &sdk.DescribeStreamInput{
		StreamName: aws.String(name),
	}
	if shardLimit > 0 {
		input.Limit = aws.Int32(shardLimit)
	}

	out, err := s.client.DescribeStream(ctx, input)
	if err != nil {
		return nil, mapError("DescribeStream", name, err)
	}
	if out.StreamDescription == nil {
		return nil, streamerrors.NewTransientError("DescribeStream", errors.New("response has no stream description"))
	}

	stream := toStream(out.StreamDescription)
	s.logger.Debug("DescribeStream", zap.String("stream", name), zap.Stringer("status", stream.Status))
	return stream, nil
}

// ListStreams returns one page of stream names after cursor.
func (s *Service) ListStreams(ctx context.Context, cursor string, limit int32) (*streammodels.ListPage, error) {
	if limit < 0 || limit > maxListLimit {
		return nil, streamerrors.NewValidationError("limit", "must be between 0 and 10000")
	}

	input := &sdk.ListStreamsInput{}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}
	if cursor != "" {
		input.ExclusiveStartStreamName = aws.String(cursor)
	}

	out, err := s.client.ListStreams(ctx, input)
	if err != nil {
		return nil, mapError("ListStreams", cursor, err)
	}

	return &streammodels.ListPage{
		Names:   out.StreamNames,
		HasMore: aws.ToBool(out.HasMoreStreams),
	}, nil
}

// PutRecord writes a single record.
func (s *Service) PutRecord(ctx context.Context, name string, record streammodels.Record) (*streammodels.PutResult, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateRecord(record); err != nil {
		return nil, err
	}

	input := &sdk.PutRecordInput{
		StreamName:   aws.String(name),
		Data:         record.Data,
		PartitionKey: aws.String(record.PartitionKey),
	}
	if record.ExplicitHashKey != "" {
		input.ExplicitHashKey = aws.String(record.ExplicitHashKey)
	}

	out, err := s.client.PutRecord(ctx, input)
	if err != nil {
		return nil, mapError("PutRecord", name, err)
	}

	return &streammodels.PutResult{
		ShardID:        aws.ToString(out.ShardId),
		SequenceNumber: aws.ToString(out.SequenceNumber),
	}, nil
}

// DeleteStream starts deleting a stream.
func (s *Service) DeleteStream(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	_, err := s.client.DeleteStream(ctx, &sdk.DeleteStreamInput{
		StreamName: aws.String(name),
	})
	if err != nil {
		return mapError("DeleteStream", name, err)
	}

	s.logger.Debug("DeleteStream accepted", zap.String("stream", name))
	return nil
}

func toStream(desc *types.StreamDescription) *streammodels.Stream {
	stream := &streammodels.Stream{
		Name:           aws.ToString(desc.StreamName),
		ARN:            aws.ToString(desc.StreamARN),
		Status:         streammodels.StreamStatus(desc.StreamStatus),
		ShardCount:     len(desc.Shards),
		RetentionHours: int(aws.ToInt32(desc.RetentionPeriodHours)),
		CreatedAt:      aws.ToTime(desc.StreamCreationTimestamp),
		HasMoreShards:  aws.ToBool(desc.HasMoreShards),
	}

	for _, sh := range desc.Shards {
		shard := streammodels.Shard{
			ShardID:       aws.ToString(sh.ShardId),
			ParentShardID: aws.ToString(sh.ParentShardId),
		}
		if sh.HashKeyRange != nil {
			shard.StartingHashKey = aws.ToString(sh.HashKeyRange.StartingHashKey)
			shard.EndingHashKey = aws.ToString(sh.HashKeyRange.EndingHashKey)
		}
		stream.Shards = append(stream.Shards, shard)
	}
	return stream
}

func validateName(name string) error {
	if name == "" {
		return streamerrors.NewValidationError("streamName", "must not be empty")
	}
	if len(name) > maxStreamNameLength {
		return streamerrors.NewValidationError("streamName", "must be at most 128 characters")
	}
	return nil
}

func validateRecord(record streammodels.Record) error {
	n := utf8.RuneCountInString(record.PartitionKey)
	if n == 0 {
		return streamerrors.NewValidationError("partitionKey", "must not be empty")
	}
	if n > maxPartitionKeyLength {
		return streamerrors.NewValidationError("partitionKey", "must be at most 256 characters")
	}
	if len(record.Data)+len(record.PartitionKey) > maxRecordSize {
		return streamerrors.NewValidationError("data", "record exceeds 1 MiB")
	}
	return nil
}
