package types

import "fmt"

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Configuration errors
	ErrConfigInvalid   ErrorCode = "CONFIG_INVALID"
	ErrUnknownMechanic ErrorCode = "UNKNOWN_MECHANIC"

	// Round lifecycle errors
	ErrRoundNotFound   ErrorCode = "ROUND_NOT_FOUND"
	ErrStateConflict   ErrorCode = "STATE_CONFLICT"
	ErrRoundRolledBack ErrorCode = "ROUND_ROLLED_BACK"

	// Deck errors
	ErrDeckNotFound  ErrorCode = "DECK_NOT_FOUND"
	ErrDeckExhausted ErrorCode = "DECK_EXHAUSTED"
	ErrDeckConflict  ErrorCode = "DECK_CONFLICT"

	// System errors
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
	ErrDatabaseError ErrorCode = "DATABASE_ERROR"
)

// EngineError represents an engine-related error
type EngineError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError
func NewEngineError(code ErrorCode, message string) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in an EngineError
func WrapError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsEngineError checks if an error is an EngineError and has a specific code
func IsEngineError(err error, code ErrorCode) bool {
	var engineErr *EngineError
	if err == nil {
		return false
	}
	if ok := As(err, &engineErr); !ok {
		return false
	}
	return engineErr.Code == code
}

// As is a helper function to safely type assert an error to an EngineError
func As(err error, target **EngineError) bool {
	if target == nil {
		return false
	}
	if engineErr, ok := err.(*EngineError); ok {
		*target = engineErr
		return true
	}
	return false
}
