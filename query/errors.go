package query

import "errors"

// Sentinel errors returned or raised while constructing fragments.
var (
	// ErrInvalidArgument is returned by Ident for non-string or empty names.
	ErrInvalidArgument = errors.New("sqltag: invalid argument")

	// ErrSegmentMismatch is raised by SQL when the segment count is not exactly
	// one more than the value count. It always indicates a caller bug.
	ErrSegmentMismatch = errors.New("sqltag: segments must outnumber values by one")
)

// IsInvalidArgumentErr returns true if err is or wraps ErrInvalidArgument.
func IsInvalidArgumentErr(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
