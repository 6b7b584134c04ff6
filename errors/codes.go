package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Source errors. These stop resolution before any key is looked at.
const (
	// ErrCodeBadEnvironmentKey indicates the environment key used to pick the
	// source file is not set in the process environment.
	ErrCodeBadEnvironmentKey ErrorCode = "BAD_ENVIRONMENT_KEY"
	// ErrCodeMissingEnvironmentFile indicates the resolved source file does not exist.
	ErrCodeMissingEnvironmentFile ErrorCode = "MISSING_ENVIRONMENT_FILE"
	// ErrCodeUnreadableSource indicates the source file exists but could not be parsed.
	ErrCodeUnreadableSource ErrorCode = "UNREADABLE_SOURCE"
)

// Validation errors
const (
	// ErrCodeInvalidConfiguration indicates one or more keys are missing or invalid.
	ErrCodeInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"
	// ErrCodeInvalidSpec indicates the configuration spec itself could not be built.
	ErrCodeInvalidSpec ErrorCode = "INVALID_SPEC"
)

// Lookup errors
const (
	// ErrCodeUnknownKey indicates a key that the spec does not declare.
	ErrCodeUnknownKey ErrorCode = "UNKNOWN_KEY"
)

// ErrCodeInternal covers failures that are not about configuration.
const ErrCodeInternal ErrorCode = "INTERNAL"

var fatalCodes = map[ErrorCode]bool{
	ErrCodeBadEnvironmentKey:      true,
	ErrCodeMissingEnvironmentFile: true,
	ErrCodeUnreadableSource:       true,
	ErrCodeInvalidSpec:            true,
}

// IsSourceCode returns true if the code means the resolution pipeline could
// not start at all, as opposed to a key-level failure.
func IsSourceCode(code ErrorCode) bool {
	return fatalCodes[code]
}
