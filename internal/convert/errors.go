package convert

import "errors"

// ErrInvalidArgument indicates a malformed document type selection or an
// unknown output format.
var ErrInvalidArgument = errors.New("invalid argument")
