/*
Package sample runs the Kinesis walkthrough: create a stream, wait for it to
become ACTIVE, list the account's streams, write a batch of records and
delete the stream again.

	svc := kds.New(kds.NewKinesisClient(awsCfg, ""))
	r := sample.New(svc, sample.Settings{
	    StreamName:  "boundary-test-stream",
	    ShardCount:  1,
	    RecordCount: 100,
	    ListLimit:   10,
	}, sample.WithOutput(os.Stdout))
	summary, err := r.Run(ctx)

The run halts on the first error; nothing is cleaned up after a failure.
*/
package sample
