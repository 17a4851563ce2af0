package tabjson

import "tabjson/internal/jsonerr"

// The error taxonomy from spec.md §7, re-exported so callers can test
// a Marshal failure with errors.Is(err, tabjson.ErrType) without
// reaching into an internal package.
var (
	ErrOption     = jsonerr.ErrOption
	ErrType       = jsonerr.ErrType
	ErrOverflow   = jsonerr.ErrOverflow
	ErrConversion = jsonerr.ErrConversion
	ErrShape      = jsonerr.ErrShape
	ErrResource   = jsonerr.ErrResource
	ErrHandler    = jsonerr.ErrHandler
)
