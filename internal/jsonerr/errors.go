// Package jsonerr centralizes the error vocabulary used across the
// encoder so every package reports failures in the same shape.
package jsonerr

import "errors"

// Sentinel errors, one per taxonomy class from the encoder design.
// Use errors.Is against these, and fmt.Errorf("...: %w", ErrX) to add
// detail while keeping the class identifiable.
var (
	// ErrOption covers invalid orientation, date unit, or precision
	// values supplied to the top-level entry point.
	ErrOption = errors.New("option error")

	// ErrType covers values that cannot be classified into any
	// supported JSON shape, including unhandled numeric dtypes and
	// zero-dimensional arrays.
	ErrType = errors.New("unsupported type")

	// ErrOverflow covers integers or durations outside the
	// representable range of their target encoding.
	ErrOverflow = errors.New("integer overflow")

	// ErrConversion covers datetime rendering and UTF-8 encoding
	// failures.
	ErrConversion = errors.New("conversion error")

	// ErrShape covers label-count vs. data-shape mismatches.
	ErrShape = errors.New("shape mismatch")

	// ErrResource covers the encoder exceeding its recursion-depth
	// limit.
	ErrResource = errors.New("resource error")

	// ErrHandler covers a default handler that returned an error or
	// produced nil where a value was required.
	ErrHandler = errors.New("handler error")
)
