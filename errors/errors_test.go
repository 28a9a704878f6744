package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidData,
				Detail: "compile module",
				Cause:  errors.New("magic mismatch"),
			},
			contains: []string{"[load]", "invalid_data", "compile module", "caused by", "magic mismatch"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseInit,
				Kind:  KindInstantiation,
			},
			contains: []string{"[init]", "instantiation"},
		},
		{
			name: "detail without cause",
			err: &Error{
				Phase:  PhaseConfig,
				Kind:   KindInvalidInput,
				Detail: "module path is required",
			},
			contains: []string{"[config]", "invalid_input", "module path is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseInit,
		Kind:  KindStartFailed,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not follow the cause chain")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseInit,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
	}

	if !err.Is(&Error{Phase: PhaseInit, Kind: KindInstantiation}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseLoad, Kind: KindInstantiation}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseInit, Kind: KindStartFailed}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseInit, Kind: KindInstantiation}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestIsKind(t *testing.T) {
	err := AlreadyInitialized("controller")

	if !IsKind(err, KindAlreadyInitialized) {
		t.Error("IsKind should match the error's kind")
	}
	if IsKind(err, KindNotFound) {
		t.Error("IsKind matched the wrong kind")
	}
	if IsKind(errors.New("plain"), KindAlreadyInitialized) {
		t.Error("IsKind matched a plain error")
	}

	wrapped := Wrap(PhaseRun, KindStartFailed, err, "outer")
	if !IsKind(wrapped, KindStartFailed) {
		t.Error("IsKind should see the outermost Error in the chain")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Config", func(t *testing.T) {
		cause := errors.New("toml: line 3")
		err := Config("parse manifest", cause)
		if err.Phase != PhaseConfig || err.Kind != KindInvalidData {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
		if !errors.Is(err, cause) {
			t.Error("cause not wrapped")
		}
	})

	t.Run("Load", func(t *testing.T) {
		err := Load("compile module", errors.New("bad magic"))
		if err.Phase != PhaseLoad || err.Kind != KindInvalidData {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
	})

	t.Run("Instantiation", func(t *testing.T) {
		err := Instantiation(errors.New("memory limit"))
		if err.Phase != PhaseInit || err.Kind != KindInstantiation {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
	})

	t.Run("StartFailed", func(t *testing.T) {
		err := StartFailed("_initialize", errors.New("unreachable"))
		if err.Kind != KindStartFailed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindStartFailed)
		}
		if !strings.Contains(err.Detail, "_initialize") {
			t.Errorf("Detail = %v, should name the export", err.Detail)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseInit, "export", "run")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if !strings.Contains(err.Detail, `"run"`) {
			t.Errorf("Detail = %v, should quote the name", err.Detail)
		}
	})

	t.Run("NotInitialized", func(t *testing.T) {
		err := NotInitialized(PhaseRun, "instance")
		if err.Kind != KindNotInitialized {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotInitialized)
		}
	})

	t.Run("AlreadyInitialized", func(t *testing.T) {
		err := AlreadyInitialized("module")
		if err.Phase != PhaseInit || err.Kind != KindAlreadyInitialized {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("inner")
		err := Wrap(PhaseHost, KindInvalidInput, cause, "bad handler")
		if err.Phase != PhaseHost || err.Kind != KindInvalidInput {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
		if !errors.Is(err, cause) {
			t.Error("cause not wrapped")
		}
	})
}
