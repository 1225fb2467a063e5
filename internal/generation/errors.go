package generation

import "errors"

// Common errors returned by the generation package.
var (
	// ErrGenerationFailed is returned when commentary generation fails for
	// any general reason.
	ErrGenerationFailed = errors.New("failed to generate commentary")

	// ErrInvalidResponse is returned when the upstream response cannot be
	// parsed or is malformed.
	ErrInvalidResponse = errors.New("invalid response from generation backend")

	// ErrTransientFailure is returned for timeouts and transport errors that
	// might resolve on retry.
	ErrTransientFailure = errors.New("transient error during commentary generation")

	// ErrInvalidConfig is returned when a generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
