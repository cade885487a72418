package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldPipeline  = "pipeline"
	FieldStage     = "stage"
	FieldKind      = "kind"
	FieldWorkers   = "workers"
	FieldItems     = "items"
	FieldDropped   = "dropped"
	FieldMode      = "mode"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields builds a map[string]any from alternating key-value pairs.
//
//	logger.Debug("stage started", logger.Fields("stage", id, "workers", 4))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]any {
	return map[string]any{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}

// DurationFields creates fields for a timed operation.
func DurationFields(op string, d time.Duration) map[string]any {
	return map[string]any{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}
