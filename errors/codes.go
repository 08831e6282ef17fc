package errors

// ErrorCode identifies an application error class in API responses
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_VALIDATION
	ErrorCode_NOT_FOUND
	ErrorCode_DUPLICATE
	ErrorCode_UNAUTHORIZED
	ErrorCode_FORBIDDEN
	ErrorCode_FORMATTING
	ErrorCode_STORAGE
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:      "OK",
	ErrorCode_INTERNAL:     "INTERNAL_ERROR",
	ErrorCode_VALIDATION:   "VALIDATION_ERROR",
	ErrorCode_NOT_FOUND:    "NOT_FOUND",
	ErrorCode_DUPLICATE:    "DUPLICATE_ERROR",
	ErrorCode_UNAUTHORIZED: "UNAUTHORIZED",
	ErrorCode_FORBIDDEN:    "FORBIDDEN",
	ErrorCode_FORMATTING:   "FORMATTING_ERROR",
	ErrorCode_STORAGE:      "STORAGE_ERROR",
}

// String returns the wire name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "INTERNAL_ERROR"
}

// MarshalText renders the code as its wire name in JSON bodies
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
