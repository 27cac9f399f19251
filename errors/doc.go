/*
Package errors provides semantic error types for kinesisctl.

The package defines the failure kinds a caller needs to tell apart, each as a
sentinel plus a typed error that matches it through errors.Is:

	var (
	    ErrNotFound      = errors.New("resource not found")
	    ErrAlreadyExists = errors.New("resource already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	    ErrTransient     = errors.New("service error")
	    ErrTimeout       = errors.New("wait timed out")
	    ErrConfiguration = errors.New("configuration error")
	)

Usage:

	err := w.Wait(ctx, "orders")
	switch {
	case errors.IsNotFound(err):
	    // the stream disappeared or was never created
	case errors.IsTimeout(err):
	    // still not ACTIVE after the maximum wait
	case errors.IsTransient(err):
	    // any other service failure, the cause is available via errors.Unwrap
	}

NotFound and Transient both abort a wait, but they stay distinct so callers
can report different diagnostics.
*/
package errors
