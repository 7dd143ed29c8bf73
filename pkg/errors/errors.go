package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrAborted      ErrorCode = "ABORTED"
	ErrLocked       ErrorCode = "LOCKED"

	// Profile store errors
	ErrProfileExists   ErrorCode = "PROFILE_EXISTS"
	ErrProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"

	// Manifest and archive errors
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"
	ErrArchiveInvalid  ErrorCode = "ARCHIVE_INVALID"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Copy errors
	ErrNotFound  ErrorCode = "NOT_FOUND"
	ErrSamePath  ErrorCode = "SAME_PATH"
	ErrCopyDepth ErrorCode = "COPY_DEPTH"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// validationCodes are the codes reported to the operator as plain
// validation failures: bad names, missing profiles, malformed input.
var validationCodes = map[ErrorCode]bool{
	ErrInvalidInput:    true,
	ErrProfileExists:   true,
	ErrProfileNotFound: true,
	ErrManifestInvalid: true,
	ErrArchiveInvalid:  true,
	ErrAborted:         true,
	ErrLocked:          true,
}

// KonsaveError represents a structured error with code and details
type KonsaveError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *KonsaveError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *KonsaveError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *KonsaveError) Is(target error) bool {
	var targetErr *KonsaveError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new KonsaveError with the given code and message
func New(code ErrorCode, message string) *KonsaveError {
	return &KonsaveError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new KonsaveError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *KonsaveError {
	return &KonsaveError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a KonsaveError
func Wrap(err error, code ErrorCode, message string) *KonsaveError {
	if err == nil {
		return nil
	}
	return &KonsaveError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *KonsaveError {
	if err == nil {
		return nil
	}
	return &KonsaveError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *KonsaveError) WithDetail(key string, value interface{}) *KonsaveError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var konsaveErr *KonsaveError
	if errors.As(err, &konsaveErr) {
		return konsaveErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a KonsaveError
func GetErrorCode(err error) ErrorCode {
	var konsaveErr *KonsaveError
	if errors.As(err, &konsaveErr) {
		return konsaveErr.Code
	}
	return ErrUnknown
}

// IsValidation reports whether err is an operator-facing validation failure.
func IsValidation(err error) bool {
	return validationCodes[GetErrorCode(err)]
}

// UserMessage returns the message shown to the operator. Validation errors
// are reported by their message alone; everything else keeps the wrapped
// cause so disk and permission failures stay diagnosable.
func UserMessage(err error) string {
	var konsaveErr *KonsaveError
	if !errors.As(err, &konsaveErr) {
		return err.Error()
	}
	if validationCodes[konsaveErr.Code] || konsaveErr.Wrapped == nil {
		return konsaveErr.Message
	}
	return fmt.Sprintf("%s: %v", konsaveErr.Message, konsaveErr.Wrapped)
}
