// FILE: lixenwraith/envproxy/errors.go
package envproxy

import "errors"

// Error taxonomy. Every failure returned by the package wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	// ErrNotFound is returned when a key is absent (or empty) in the store
	// and no default was supplied.
	ErrNotFound = errors.New("value not found in environment")

	// ErrInvalidValue is returned when a present value cannot be converted
	// to the requested type.
	ErrInvalidValue = errors.New("invalid value")

	// ErrConfiguration marks static declaration mistakes: unsupported type
	// hints, reserved or duplicate field names, unbound fields.
	ErrConfiguration = errors.New("configuration error")

	// ErrAmbiguousAnnotation is returned in strict mode when a field has no
	// type hint and its annotation is missing or cannot be mapped to a getter.
	ErrAmbiguousAnnotation = errors.New("ambiguous field annotation")

	// ErrMutationRejected is returned when writing to a read-only field.
	ErrMutationRejected = errors.New("field is read-only")

	// ErrExport is returned when a field default cannot be rendered into
	// the sample environment document.
	ErrExport = errors.New("export failed")
)

const (
	hintWarningToError = "Set strict=true to turn this warning into an error instead."
	hintErrorToWarning = "Set strict=false to turn this error into a warning instead."
)
