package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors (fatal)
const (
	// ErrCodeUnknownStage indicates a stage of an unrecognised kind was supplied.
	ErrCodeUnknownStage ErrorCode = "UNKNOWN_STAGE"
	// ErrCodeInvalidWorkerCount indicates a farm was built with fewer than one worker.
	ErrCodeInvalidWorkerCount ErrorCode = "INVALID_WORKER_COUNT"
	// ErrCodeNotWired indicates a stage was run before its channels were attached.
	ErrCodeNotWired ErrorCode = "NOT_WIRED"
	// ErrCodeAlreadyWired indicates a stage is already attached to a pipeline.
	ErrCodeAlreadyWired ErrorCode = "ALREADY_WIRED"
	// ErrCodeEmptyPipeline indicates an operation that needs at least one stage.
	ErrCodeEmptyPipeline ErrorCode = "EMPTY_PIPELINE"
	// ErrCodeInvalidInput indicates an argument is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Lifecycle errors
const (
	// ErrCodeAlreadyRunning indicates a stage was started twice without a collect.
	ErrCodeAlreadyRunning ErrorCode = "ALREADY_RUNNING"
	// ErrCodeChannelDestroyed indicates use of a channel after Destroy.
	ErrCodeChannelDestroyed ErrorCode = "CHANNEL_DESTROYED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var fatalCodes = map[ErrorCode]bool{
	ErrCodeUnknownStage:       true,
	ErrCodeInvalidWorkerCount: true,
	ErrCodeNotWired:           true,
	ErrCodeAlreadyWired:       true,
	ErrCodeEmptyPipeline:      true,
	ErrCodeInvalidInput:       true,
	ErrCodeInternal:           true,
	ErrCodeAlreadyRunning:     false,
	ErrCodeChannelDestroyed:   false,
}

// IsFatalCode returns true if the error code marks a configuration error
// that callers are expected to treat as unrecoverable.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
