package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeConfiguration = "CONFIGURATION_ERROR"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeUnavailable   = "UNAVAILABLE"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrEmptyMessage = NewDomainError(ErrCodeValidation, "message is required")
	ErrEmptyQuery   = NewDomainError(ErrCodeValidation, "query cannot be empty")
)

// Configuration errors
var (
	ErrProviderNotConfigured    = NewDomainError(ErrCodeConfiguration, "OpenAI API key not configured")
	ErrVectorStoreNotConfigured = NewDomainError(ErrCodeConfiguration, "Qdrant URL not configured")
)

// Availability errors
var (
	ErrVectorStoreUnavailable = NewDomainError(ErrCodeUnavailable, "vector database is not available")
)

// Provider errors
var (
	ErrRateLimited = NewDomainError(ErrCodeRateLimited, "rate limit exceeded")
)
