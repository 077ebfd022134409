package rating

import "errors"

var (
	// ErrInvalidGranularity is returned when a granularity lies outside
	// [0, 20], or is a non-integer outside (0, 1).
	ErrInvalidGranularity = errors.New("invalid granularity")

	// ErrInvalidValueType is returned when a value or granularity supplied by
	// the host is not a number.
	ErrInvalidValueType = errors.New("invalid value type")

	// ErrInvalidConfig is returned when a configuration field fails
	// validation, such as a non-positive max value or icon span.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrEmptyProps is returned when a props document has no content.
	ErrEmptyProps = errors.New("empty props document")
)
