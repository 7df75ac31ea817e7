package domain

import (
	"errors"
	"fmt"
)

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
	ErrCodeEmptyIndex    = "EMPTY_INDEX"
	ErrCodeEmbedding     = "EMBEDDING_FAILURE"
	ErrCodeRender        = "RENDER_FAILURE"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// ErrEmptyIndex is returned when the knowledge index is queried before any
// corpus has been loaded. Callers treat it as "no results", not as fatal.
var ErrEmptyIndex = NewDomainError(ErrCodeEmptyIndex, "knowledge index is empty")

// NewEmbeddingError wraps a failure from the injected embedding provider.
// It propagates to the caller as-is; the engine never substitutes a
// default-similarity result.
func NewEmbeddingError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeEmbedding, "embedding provider failed", err)
}

// NewRenderError wraps a failure from the answer-rendering collaborator.
func NewRenderError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeRender, "answer generation failed", err)
}

// IsEmbeddingFailure reports whether err is an embedding provider failure.
func IsEmbeddingFailure(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == ErrCodeEmbedding
}
