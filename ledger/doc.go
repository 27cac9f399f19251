/*
Package ledger keeps receipts of records written to a stream.

A receipt ties a run identifier to the shard and sequence number the service
assigned to each record:

	l := ledger.NewMemory()
	_ = l.Append(ctx, ledger.Receipt{RunID: runID, StreamName: "orders", ShardID: "shardId-000000000000"})
	receipts, _ := l.List(ctx, runID)

Implementations:
  - Memory: in-process, thread-safe
  - Discard: drops everything, the default when no table is configured
  - ddb: DynamoDB-backed
*/
package ledger
