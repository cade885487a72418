package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Fatal marks configuration errors that should terminate the caller.
	Fatal bool `json:"fatal"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError with the same code, so that
// errors.Is(err, errors.New(code, "")) matches on code alone.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic fatal detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Fatal:   IsFatalCode(code),
	}
}

// --- Constructors ---

// UnknownStage creates an error for a stage whose kind the runtime cannot dispatch.
func UnknownStage(kind string) *AppError {
	return &AppError{
		Code: ErrCodeUnknownStage, Message: fmt.Sprintf("Unknown stage type: %s", kind),
		Fatal: true, Details: map[string]any{"kind": kind},
	}
}

// InvalidWorkerCount creates an error for a farm built with n < 1 workers.
func InvalidWorkerCount(n int) *AppError {
	return &AppError{
		Code: ErrCodeInvalidWorkerCount, Message: fmt.Sprintf("A farm needs at least one worker (got %d).", n),
		Fatal: true, Details: map[string]any{"workers": n},
	}
}

// NotWired creates an error for a stage run before it was added to a pipeline.
func NotWired(stageID string) *AppError {
	return &AppError{
		Code: ErrCodeNotWired, Message: "Stage has no input/output channels; add it to a pipeline first.",
		Fatal: true, Details: map[string]any{"stage": stageID},
	}
}

// AlreadyWired creates an error for a stage that already belongs to a pipeline.
func AlreadyWired(stageID string) *AppError {
	return &AppError{
		Code: ErrCodeAlreadyWired, Message: "Stage is already attached to a pipeline.",
		Fatal: true, Details: map[string]any{"stage": stageID},
	}
}

// AlreadyRunning creates an error for a stage started twice without a collect.
func AlreadyRunning(stageID string) *AppError {
	return &AppError{
		Code: ErrCodeAlreadyRunning, Message: "Stage is already running; collect it before running again.",
		Details: map[string]any{"stage": stageID},
	}
}

// EmptyPipeline creates an error for an operation on a pipeline with no stages.
func EmptyPipeline(op string) *AppError {
	return &AppError{
		Code: ErrCodeEmptyPipeline, Message: "Pipeline has no stages.",
		Fatal: true, Details: map[string]any{"operation": op},
	}
}

// InvalidInput creates an error for an invalid argument.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Fatal: true, Details: details,
	}
}

// Validation creates an error for failed struct validation.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message, Fatal: true,
	}
}

// ChannelDestroyed creates an error for use of a channel after Destroy.
func ChannelDestroyed(op string) *AppError {
	return &AppError{
		Code: ErrCodeChannelDestroyed, Message: "Channel has been destroyed.",
		Details: map[string]any{"operation": op},
	}
}

// Internal creates an error for an unexpected internal failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Fatal: true, Cause: cause,
	}
}

// --- Helpers ---

// IsCode reports whether err wraps an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsFatal reports whether err wraps a fatal AppError.
func IsFatal(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Fatal
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
