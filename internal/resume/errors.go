package resume

import "errors"

// ErrInvalidInput marks a malformed document handed to the engine.
var ErrInvalidInput = errors.New("invalid input")
