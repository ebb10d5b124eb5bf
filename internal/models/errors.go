package models

import "errors"

// File-level fatal errors: any one of these aborts the whole parse.
var (
	ErrMissingRequiredColumns = errors.New("missing required columns")
	ErrEncodingFailed         = errors.New("could not decode input in any known encoding")
	ErrEmptyHeader            = errors.New("header row is empty")
	ErrUnsupportedBroker      = errors.New("unsupported broker")
)

// Row-level recoverable errors, collected into ParseResult.Errors.
var (
	ErrInvalidNumber      = errors.New("invalid number")
	ErrNegativeDisallowed = errors.New("negative values are not allowed")
	ErrInvalidDateTime    = errors.New("invalid date/time")
	ErrInvalidDirection   = errors.New("unrecognized direction")
	ErrInvalidSymbol      = errors.New("symbol is required")
)
