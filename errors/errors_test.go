package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Fatal(t *testing.T) {
	err := New(ErrCodeUnknownStage, "bad stage")
	if err.Code != ErrCodeUnknownStage {
		t.Errorf("expected code %s, got %s", ErrCodeUnknownStage, err.Code)
	}
	if err.Message != "bad stage" {
		t.Errorf("expected message 'bad stage', got %q", err.Message)
	}
	if !err.Fatal {
		t.Error("UNKNOWN_STAGE should be fatal")
	}
}

func TestAppError_New_NotFatal(t *testing.T) {
	err := New(ErrCodeAlreadyRunning, "running")
	if err.Fatal {
		t.Error("ALREADY_RUNNING should not be fatal")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *AppError
		code  ErrorCode
		fatal bool
		key   string
		value any
	}{
		{"unknown stage", UnknownStage("mystery"), ErrCodeUnknownStage, true, "kind", "mystery"},
		{"invalid worker count", InvalidWorkerCount(0), ErrCodeInvalidWorkerCount, true, "workers", 0},
		{"not wired", NotWired("w-1"), ErrCodeNotWired, true, "stage", "w-1"},
		{"already wired", AlreadyWired("w-2"), ErrCodeAlreadyWired, true, "stage", "w-2"},
		{"already running", AlreadyRunning("w-3"), ErrCodeAlreadyRunning, false, "stage", "w-3"},
		{"empty pipeline", EmptyPipeline("put"), ErrCodeEmptyPipeline, true, "operation", "put"},
		{"invalid input", InvalidInput("stage", "nil"), ErrCodeInvalidInput, true, "field", "stage"},
		{"channel destroyed", ChannelDestroyed("get"), ErrCodeChannelDestroyed, false, "operation", "get"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.Fatal != tc.fatal {
				t.Errorf("expected fatal=%v, got %v", tc.fatal, tc.err.Fatal)
			}
			if tc.err.Details[tc.key] != tc.value {
				t.Errorf("expected %s=%v, got %v", tc.key, tc.value, tc.err.Details[tc.key])
			}
		})
	}
}

func TestAppError_Error_WithCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Internal(cause)
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_Is_MatchesOnCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotWired("w-1"))
	if !stderrors.Is(err, New(ErrCodeNotWired, "")) {
		t.Error("expected wrapped NOT_WIRED to match by code")
	}
	if stderrors.Is(err, New(ErrCodeUnknownStage, "")) {
		t.Error("did not expect match on a different code")
	}
}

func TestIsCode_ThroughJoin(t *testing.T) {
	joined := stderrors.Join(fmt.Errorf("plain"), ChannelDestroyed("destroy"))
	if !IsCode(joined, ErrCodeChannelDestroyed) {
		t.Error("expected IsCode to see through errors.Join")
	}
	if IsFatal(joined) {
		t.Error("CHANNEL_DESTROYED is not fatal")
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(UnknownStage("x")) {
		t.Error("expected fatal")
	}
	if IsFatal(fmt.Errorf("plain")) {
		t.Error("plain errors are not fatal")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(ErrCodeInternal, "x").WithDetail("a", 1).WithDetails(map[string]any{"b": 2})
	if err.Details["a"] != 1 || err.Details["b"] != 2 {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestAsAppError(t *testing.T) {
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("plain error should not convert")
	}
	appErr, ok := AsAppError(fmt.Errorf("wrap: %w", EmptyPipeline("run")))
	if !ok || appErr.Code != ErrCodeEmptyPipeline {
		t.Errorf("expected EMPTY_PIPELINE, got %v", appErr)
	}
	if !IsAppError(appErr) {
		t.Error("expected IsAppError")
	}
}
