package logger

// Standard field key constants for structured logging.
const (
	FieldComponent        = "component"
	FieldKey              = "key"
	FieldPath             = "path"
	FieldEnvKey           = "env_key"
	FieldStrategy         = "strategy"
	FieldLayer            = "resolved_from"
	FieldValue            = "value"
	FieldDefault          = "default"
	FieldDotenv           = "dotenv"
	FieldEnv              = "env"
	FieldExtra            = "is_extra"
	FieldMissingKeys      = "missing_keys"
	FieldValidationErrors = "validation_errors"
	FieldError            = "error"
	FieldDuration         = "duration_ms"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("key", "PORT", "layer", "env"))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(err error) map[string]interface{} {
	return map[string]interface{}{
		FieldError: err.Error(),
	}
}
