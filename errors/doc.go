// Package errors defines the structured error kinds raised while loading and
// validating configuration.
//
// Every failure carries a machine-readable ErrorCode and a human-readable
// message. The message of each kind is stable so callers and operators can
// match on it:
//
//	Bad environment key: NODE_ENV
//	Fatal error loading environment. The following file is missing: /app/config/test.env
//	Invalid Configuration
//
// Use errors.Is with the exported sentinels, or As to get at the missing keys
// and validation messages of a composite failure.
package errors
