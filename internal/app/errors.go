package app

import "errors"

// Application errors.
var (
	// ErrConfig indicates the configuration could not be loaded or is invalid.
	ErrConfig = errors.New("app: configuration error")

	// ErrBadKey indicates a key spec could not be parsed.
	ErrBadKey = errors.New("app: bad key spec")
)
