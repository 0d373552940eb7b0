package geprice

import "errors"

var (
	// ErrNotFound reports an id unknown to the remote source, or a missing
	// full history on disk. It is permanent, do not retry.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited reports that the remote source refused the request because
	// of too many requests. The same request can be retried after a pause.
	ErrRateLimited = errors.New("rate limited")

	// ErrMalformed reports a response or a file that does not follow the expected format.
	ErrMalformed = errors.New("malformed data")

	// ErrNameNotFound reports a commodity name missing from the registry.
	ErrNameNotFound = errors.New("commodity name not found")

	// ErrIDNotFound reports a commodity id missing from the registry.
	ErrIDNotFound = errors.New("commodity id not found")
)
