/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"go.uber.org/zap"

	streamerrors "github.com/suparena/kinesisctl/errors"
	"github.com/suparena/kinesisctl/ledger"
)

// DefaultIndexMap lays receipts out as one partition per run.
var DefaultIndexMap = map[string]string{
	"PK": "RUN#{RunID}",
	"SK": "STREAM#{StreamName}#SEQ#{SequenceNumber}",
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// DynamoDBAPI is the subset of the DynamoDB client used by Ledger.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
}

// Ledger implements ledger.Ledger on a single DynamoDB table.
type Ledger struct {
	client    DynamoDBAPI
	tableName string
	indexMap  map[string]string
	logger    *zap.Logger
}

// item is the stored form of a receipt. WrittenAt is kept as an RFC 3339 string.
type item struct {
	RunID          string `dynamodbav:"RunID"`
	StreamName     string `dynamodbav:"StreamName"`
	PartitionKey   string `dynamodbav:"PartitionKey"`
	ShardID        string `dynamodbav:"ShardID"`
	SequenceNumber string `dynamodbav:"SequenceNumber"`
	WrittenAt      string `dynamodbav:"WrittenAt"`
}

// Option configures a Ledger
type Option func(*Ledger)

// WithIndexMap overrides the PK/SK templates. Both keys are required.
func WithIndexMap(indexMap map[string]string) Option {
	return func(l *Ledger) {
		l.indexMap = indexMap
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// NewDynamoDBClient creates a DynamoDB client from a loaded AWS configuration.
func NewDynamoDBClient(cfg aws.Config, endpoint string) *sdk.Client {
	return sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

// New constructs a Ledger writing to tableName.
func New(client DynamoDBAPI, tableName string, opts ...Option) (*Ledger, error) {
	if tableName == "" {
		return nil, streamerrors.NewValidationError("tableName", "must not be empty")
	}

	l := &Ledger{
		client:    client,
		tableName: tableName,
		indexMap:  DefaultIndexMap,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if _, ok := l.indexMap["PK"]; !ok {
		return nil, streamerrors.NewValidationError("indexMap", "missing PK template")
	}
	if _, ok := l.indexMap["SK"]; !ok {
		return nil, streamerrors.NewValidationError("indexMap", "missing SK template")
	}
	return l, nil
}

// Append stores a receipt with its keys expanded from the index map.
func (l *Ledger) Append(ctx context.Context, receipt ledger.Receipt) error {
	if receipt.RunID == "" {
		return streamerrors.NewValidationError("runId", "must not be empty")
	}

	it := toItem(receipt)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt: %w", err)
	}

	expanded, err := expandMacros(l.indexMap, av)
	if err != nil {
		return err
	}
	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}

	_, err = l.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &l.tableName,
		Item:      av,
	})
	if err != nil {
		return streamerrors.NewTransientError("PutItem", err)
	}

	l.logger.Debug("Receipt stored", zap.String("pk", expanded["PK"]), zap.String("sk", expanded["SK"]))
	return nil
}

// List queries every receipt of a run, following LastEvaluatedKey.
func (l *Ledger) List(ctx context.Context, runID string) ([]ledger.Receipt, error) {
	if runID == "" {
		return nil, streamerrors.NewValidationError("runId", "must not be empty")
	}

	pk, err := expandTemplate(l.indexMap["PK"], map[string]types.AttributeValue{
		"RunID": &types.AttributeValueMemberS{Value: runID},
	})
	if err != nil {
		return nil, err
	}

	keyCond := "PK = :pk"
	input := &sdk.QueryInput{
		TableName:              &l.tableName,
		KeyConditionExpression: &keyCond,
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
		},
	}

	var receipts []ledger.Receipt
	for {
		out, err := l.client.Query(ctx, input)
		if err != nil {
			return nil, streamerrors.NewTransientError("Query", err)
		}

		for _, raw := range out.Items {
			var it item
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, fmt.Errorf("failed to unmarshal receipt: %w", err)
			}
			receipt, err := fromItem(it)
			if err != nil {
				return nil, err
			}
			receipts = append(receipts, receipt)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	ledger.Sort(receipts)
	return receipts, nil
}

func toItem(r ledger.Receipt) item {
	return item{
		RunID:          r.RunID,
		StreamName:     r.StreamName,
		PartitionKey:   r.PartitionKey,
		ShardID:        r.ShardID,
		SequenceNumber: r.SequenceNumber,
		WrittenAt:      r.WrittenAt.String(),
	}
}

func fromItem(it item) (ledger.Receipt, error) {
	r := ledger.Receipt{
		RunID:          it.RunID,
		StreamName:     it.StreamName,
		PartitionKey:   it.PartitionKey,
		ShardID:        it.ShardID,
		SequenceNumber: it.SequenceNumber,
	}
	if it.WrittenAt != "" {
		ts, err := strfmt.ParseDateTime(it.WrittenAt)
		if err != nil {
			return r, fmt.Errorf("failed to parse WrittenAt %q: %w", it.WrittenAt, err)
		}
		r.WrittenAt = ts
	}
	return r, nil
}

// expandMacros fills every template of indexMap with attribute values.
func expandMacros(indexMap map[string]string, av map[string]types.AttributeValue) (map[string]string, error) {
	res := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded, err := expandTemplate(template, av)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", field, err)
		}
		res[field] = expanded
	}
	return res, nil
}

// expandTemplate replaces each {Name} macro with the string or number value of
// attribute Name. A missing or non-scalar attribute is an error.
func expandTemplate(template string, av map[string]types.AttributeValue) (string, error) {
	var missing []string
	expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
		key := strings.Trim(macro, "{}")

		switch tv := av[key].(type) {
		case *types.AttributeValueMemberS:
			return tv.Value
		case *types.AttributeValueMemberN:
			return tv.Value
		default:
			missing = append(missing, key)
			return ""
		}
	})
	if len(missing) > 0 {
		return "", errors.New("no scalar value for macro " + strings.Join(missing, ", "))
	}
	return expanded, nil
}
