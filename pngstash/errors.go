package pngstash

import "fmt"

// Error types for pngstash operations
var (
	// ErrInvalidSignature is returned when a buffer does not begin with the PNG signature
	ErrInvalidSignature = &PngError{Code: "INVALID_SIGNATURE", Message: "not a PNG: bad signature"}

	// ErrMalformedInput is returned when a buffer is shorter than a declared field requires
	ErrMalformedInput = &PngError{Code: "MALFORMED_INPUT", Message: "truncated chunk record"}

	// ErrInvalidChunkType is returned when a chunk type byte is not ASCII-alphabetic
	ErrInvalidChunkType = &PngError{Code: "INVALID_CHUNK_TYPE", Message: "chunk type must be 4 ASCII letters"}

	// ErrCrcMismatch is returned when the stored CRC does not match the computed one
	ErrCrcMismatch = &PngError{Code: "CRC_MISMATCH", Message: "chunk checksum does not match"}

	// ErrChunkNotFound is returned when no chunk of the requested type exists
	ErrChunkNotFound = &PngError{Code: "CHUNK_NOT_FOUND", Message: "chunk not found"}
)

// PngError represents a structured error in pngstash operations
type PngError struct {
	Code    string                 // Error code for programmatic handling
	Message string                 // Human-readable error message
	Cause   error                  // Underlying error, if any
	Details map[string]interface{} // Additional context
}

// Error implements the error interface
func (e *PngError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("[%s] %s (details: %v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *PngError) Unwrap() error {
	return e.Cause
}

// WithCause adds a cause to the error
func (e *PngError) WithCause(cause error) *PngError {
	return &PngError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   cause,
		Details: e.Details,
	}
}

// WithDetail adds a detail key-value pair to the error
func (e *PngError) WithDetail(key string, value interface{}) *PngError {
	details := make(map[string]interface{})
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &PngError{
		Code:    e.Code,
		Message: e.Message,
		Cause:   e.Cause,
		Details: details,
	}
}

// WithMessage overrides the error message
func (e *PngError) WithMessage(message string) *PngError {
	return &PngError{
		Code:    e.Code,
		Message: message,
		Cause:   e.Cause,
		Details: e.Details,
	}
}

// NewInvalidSignatureError creates an invalid signature error
func NewInvalidSignatureError(got []byte) error {
	return ErrInvalidSignature.WithDetail("got", fmt.Sprintf("% x", got))
}

// NewTruncatedInputError creates a malformed input error for a field that
// extends past the end of the buffer
func NewTruncatedInputError(field string, want, remaining int) error {
	return ErrMalformedInput.
		WithDetail("field", field).
		WithDetail("want", want).
		WithDetail("remaining", remaining)
}

// NewInvalidChunkTypeError creates an invalid chunk type error
func NewInvalidChunkTypeError(raw []byte) error {
	return ErrInvalidChunkType.WithDetail("raw", fmt.Sprintf("% x", raw))
}

// NewCrcMismatchError creates a CRC mismatch error
func NewCrcMismatchError(chunkType ChunkType, stored, computed uint32) error {
	return ErrCrcMismatch.
		WithDetail("chunkType", chunkType.String()).
		WithDetail("stored", fmt.Sprintf("%08x", stored)).
		WithDetail("computed", fmt.Sprintf("%08x", computed))
}

// NewChunkNotFoundError creates a chunk not found error
func NewChunkNotFoundError(chunkType ChunkType) error {
	return ErrChunkNotFound.WithDetail("chunkType", chunkType.String())
}

// IsPngError checks if an error is a PngError
func IsPngError(err error) bool {
	_, ok := err.(*PngError)
	return ok
}

// GetErrorCode extracts the error code from a PngError
func GetErrorCode(err error) string {
	if pngErr, ok := err.(*PngError); ok {
		return pngErr.Code
	}
	return ""
}
