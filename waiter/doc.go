/*
Package waiter blocks until a stream reaches a target status.

	w := waiter.New(svc, waiter.WithLogger(logger))
	err := w.Wait(ctx, "boundary-test-stream",
	    streammodels.WithPollInterval(20*time.Second),
	    streammodels.WithMaxWait(10*time.Minute),
	)

The waiter sleeps before every status check and never busy-loops. It fails
with errors.TimeoutError when the deadline passes, and ends immediately when
a check fails: errors.NotFoundError if the stream does not exist, otherwise
errors.TransientError.

Cancelling the context during a sleep is treated as an interruption, not an
error: the wait carries on.
*/
package waiter
