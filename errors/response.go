package errors

// ErrorResponse is the JSON structure returned to HTTP clients.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details sent to clients.
type ErrorBody struct {
	Code             ErrorCode      `json:"code"`
	Message          string         `json:"message"`
	MissingKeys      []string       `json:"missingKeys,omitempty"`
	ValidationErrors []string       `json:"validationErrors,omitempty"`
	Details          map[string]any `json:"details,omitempty"`
}

// ToResponse converts a ConfigError to an ErrorResponse for JSON serialization.
func (e *ConfigError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:             e.Code,
			Message:          e.Message,
			MissingKeys:      e.MissingKeys,
			ValidationErrors: e.ValidationErrors,
			Details:          e.Details,
		},
	}
}
