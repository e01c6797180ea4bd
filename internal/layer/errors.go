package layer

import "errors"

// Stack construction errors
var (
	ErrNoLayers      = errors.New("no layers")
	ErrTooManyLayers = errors.New("too many layers")
	ErrDuplicateName = errors.New("duplicate or empty layer name")
	ErrUnknownLayer  = errors.New("unknown layer")
)
