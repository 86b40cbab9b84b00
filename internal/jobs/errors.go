package jobs

import "errors"

// ErrUnknownJobType marks a job whose type has no registered handler.
var ErrUnknownJobType = errors.New("unknown job type")

type nonRetryableError struct {
	err error
}

func (e *nonRetryableError) Error() string { return e.err.Error() }
func (e *nonRetryableError) Unwrap() error { return e.err }

// NonRetryable marks a handler error as permanent: the job fails
// immediately instead of entering the backoff cycle. Use it for malformed
// payloads and validation failures, where retrying cannot help.
func NonRetryable(err error) error {
	if err == nil {
		return nil
	}
	return &nonRetryableError{err: err}
}

func IsNonRetryable(err error) bool {
	var nr *nonRetryableError
	return errors.As(err, &nr)
}
