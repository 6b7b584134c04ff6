package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Messages shared by the error constructors.
const (
	MsgInvalidConfiguration = "Invalid Configuration"
	msgMissingFile          = "Fatal error loading environment. The following file is missing: %s"
	msgBadEnvironmentKey    = "Bad environment key: %s"
)

// Sentinels for errors.Is. They match any ConfigError with the same code.
var (
	ErrBadEnvironmentKey      = &ConfigError{Code: ErrCodeBadEnvironmentKey}
	ErrMissingEnvironmentFile = &ConfigError{Code: ErrCodeMissingEnvironmentFile}
	ErrInvalidConfiguration   = &ConfigError{Code: ErrCodeInvalidConfiguration}
	ErrUnknownKey             = &ConfigError{Code: ErrCodeUnknownKey}
)

// ConfigError is the error type returned by every stage of configuration
// resolution.
type ConfigError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is the human-readable message. Error() returns it unchanged.
	Message string `json:"message"`
	// Key is the configuration or environment key the error is about, if any.
	Key string `json:"key,omitempty"`
	// Path is the source file the error is about, if any.
	Path string `json:"path,omitempty"`
	// MissingKeys lists required keys no layer supplied.
	MissingKeys []string `json:"missingKeys,omitempty"`
	// ValidationErrors lists keys whose value was rejected by their rule.
	ValidationErrors []string `json:"validationErrors,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the message of the error.
func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause of the error.
func (e *ConfigError) Unwrap() error { return e.Cause }

// Is reports whether target is a ConfigError with the same code.
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *ConfigError) WithCause(cause error) *ConfigError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *ConfigError) WithDetail(key string, value any) *ConfigError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// HTTPStatus is the status code used when the error is served over HTTP.
func (e *ConfigError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeUnknownKey:
		return http.StatusNotFound
	case ErrCodeInvalidConfiguration, ErrCodeInvalidSpec:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// New creates a ConfigError with the given code and message.
func New(code ErrorCode, message string) *ConfigError {
	return &ConfigError{Code: code, Message: message}
}

// --- Constructors ---

// BadEnvironmentKey reports that key is not set in the process environment.
func BadEnvironmentKey(key string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeBadEnvironmentKey,
		Message: fmt.Sprintf(msgBadEnvironmentKey, key),
		Key:     key,
	}
}

// MissingEnvironmentFile reports that the resolved source file does not exist.
func MissingEnvironmentFile(path string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeMissingEnvironmentFile,
		Message: fmt.Sprintf(msgMissingFile, path),
		Path:    path,
	}
}

// UnreadableSource reports a source file that exists but failed to parse.
func UnreadableSource(path string, cause error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeUnreadableSource,
		Message: fmt.Sprintf("Fatal error loading environment. The following file could not be read: %s", path),
		Path:    path,
		Cause:   cause,
	}
}

// InvalidConfiguration builds the composite error raised after every key has
// been checked.
func InvalidConfiguration(missingKeys, validationErrors []string) *ConfigError {
	return &ConfigError{
		Code:             ErrCodeInvalidConfiguration,
		Message:          MsgInvalidConfiguration,
		MissingKeys:      missingKeys,
		ValidationErrors: validationErrors,
	}
}

// InvalidSpec reports a spec declaration that could not be turned into rules.
// An empty key means the spec as a whole is unusable.
func InvalidSpec(key string, cause error) *ConfigError {
	msg := "Invalid configuration spec"
	if key != "" {
		msg = fmt.Sprintf("%s for %q", msg, key)
	}
	return &ConfigError{
		Code:    ErrCodeInvalidSpec,
		Message: msg,
		Key:     key,
		Cause:   cause,
	}
}

// UnknownKey reports a lookup of a key the spec does not declare.
func UnknownKey(key string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeUnknownKey,
		Message: fmt.Sprintf("Unknown configuration key: %s", key),
		Key:     key,
	}
}

// As returns the ConfigError in err's chain, if any.
func As(err error) (*ConfigError, bool) {
	var cfgErr *ConfigError
	if stderrors.As(err, &cfgErr) {
		return cfgErr, true
	}
	return nil, false
}

// HasCode reports whether err is a ConfigError with the given code.
func HasCode(err error, code ErrorCode) bool {
	cfgErr, ok := As(err)
	return ok && cfgErr.Code == code
}

// Internal wraps an arbitrary error for HTTP responses.
func Internal(cause error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInternal,
		Message: "Internal server error",
		Cause:   cause,
	}
}
