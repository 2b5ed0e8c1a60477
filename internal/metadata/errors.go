package metadata

import "errors"

var (
	// ErrUnsafeURL indicates the URL failed safety validation: it did not
	// parse, its scheme is not http/https, or it points (directly or via
	// DNS) at a blocked network range.
	ErrUnsafeURL = errors.New("unsafe url")

	// ErrFetch indicates a network failure, a non-2xx status, or a timeout
	// during a static fetch or oEmbed call.
	ErrFetch = errors.New("fetch failed")
)
