package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes used across the application. Derivation-level failures
// use the sentinels in domain/core instead; these cover the
// infrastructure edges.
const (
	CodeInternal      = "INTERNAL_ERROR"
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeParseFailed   = "PARSE_FAILED"
	CodeStorage       = "STORAGE_ERROR"
)

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// ConfigInvalid creates a configuration error
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// ParseFailed creates an ingestion parse error
func ParseFailed(message string, cause error) *AppError {
	return &AppError{Code: CodeParseFailed, Message: message, Cause: cause}
}

// Storage creates a database-layer error
func Storage(message string, cause error) *AppError {
	return &AppError{Code: CodeStorage, Message: message, Cause: cause}
}
