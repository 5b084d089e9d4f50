/*
Package errors provides semantic error types for the EntityQuery library.

Every failure an execution can report belongs to one of five kinds, each with a
sentinel that can be checked using the standard errors.Is() function or the
provided helper functions:

	var (
	    ErrInvalidPageSize         = errors.New("invalid page size")
	    ErrUnsupportedContinuation = errors.New("unsupported continuation")
	    ErrInvalidContinuation     = errors.New("invalid continuation")
	    ErrAmbiguousResult         = errors.New("ambiguous result")
	    ErrGateway                 = errors.New("gateway failure")
	)

Validation errors (page size and continuation) are raised before the store is
contacted. Ambiguous results and gateway failures come back from the store.

Usage:

	page, err := repo.Page(ctx, token, 0, query)
	if err != nil {
	    if errors.IsInvalidContinuation(err) {
	        // the caller sent back a token for another type
	        return nil, badRequest(err)
	    }
	    return nil, err
	}

GatewayError unwraps to the driver error, so context.Canceled and
context.DeadlineExceeded remain detectable through errors.Is.
*/
package errors
