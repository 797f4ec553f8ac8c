package errors

const (
	HttpInternalError     = "internal_error"
	HttpInvalidJsonError  = "invalid_json"
	HttpInvalidQueryError = "invalid_query"
	HttpValidationError   = "validation_failed"
	HttpNotFoundError     = "not_found"
	HttpExportError       = "export_failed"
)

// ErrorResponse is the error response body for API errors.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
