package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrInvalidSettings indicates a setting outside its valid range.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrParse indicates a settings file that could not be decoded.
	ErrParse = errors.New("parse settings")
)
