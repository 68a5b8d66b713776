package driven

import "context"

// Validator checks that uploaded bytes form an openable PDF document
// before any storage happens. Implementations return an error wrapping
// domain.ErrInvalidDocument for streams that do not parse.
type Validator interface {
	Validate(ctx context.Context, data []byte) error
}
