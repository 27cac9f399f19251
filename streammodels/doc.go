/*
Package streammodels defines the data structures used throughout kinesisctl.

Key Types:

Stream:
A snapshot of a remote stream returned by DescribeStream:

	type Stream struct {
	    Name       string
	    Status     StreamStatus // CREATING, ACTIVE, UPDATING, DELETING
	    ShardCount int
	    Shards     []Shard
	    ...
	}

Record and PutResult:
A record is an opaque payload and a partition key; the service answers with
the shard and sequence number it assigned.

WaitOptions:
Configuration for waiting on a stream status:

	opts := []WaitOption{
	    WithPollInterval(20 * time.Second),
	    WithMaxWait(10 * time.Minute),
	    WithObserver(func(r PollResult) { ... }),
	}
*/
package streammodels
