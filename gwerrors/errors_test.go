package gwerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ParseError{
			Path:    "/path/to/api.json",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   cause,
		}

		msg := err.Error()
		if msg != "parse error in /path/to/api.json at line 42, column 10: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrParse only", func(t *testing.T) {
		err := &ParseError{Message: "test"}
		if !errors.Is(err, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
		if errors.Is(err, ErrRuleChain) {
			t.Error("ParseError should not match ErrRuleChain")
		}
	})

	t.Run("As extracts ParseError", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &ParseError{Path: "api.yaml", Line: 5})
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatal("errors.As should succeed")
		}
		if parseErr.Line != 5 {
			t.Errorf("unexpected line: %d", parseErr.Line)
		}
	})
}

func TestRuleChainError(t *testing.T) {
	t.Run("chain level error", func(t *testing.T) {
		err := &RuleChainError{Source: "chain.yaml", ActionIndex: -1, Message: "no actions"}
		if err.Error() != "rule chain error in chain.yaml: no actions" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("action level error", func(t *testing.T) {
		cause := errors.New("boom")
		err := &RuleChainError{Source: "<bundled>", ActionIndex: 2, Operation: "shift", Message: "from is required", Cause: cause}
		expected := "rule chain error in <bundled>: action[2] (shift): from is required: boom"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
		//nolint:errorlint // testing pointer identity
		if err.Unwrap() != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrRuleChain", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", &RuleChainError{ActionIndex: -1})
		if !errors.Is(err, ErrRuleChain) {
			t.Error("RuleChainError should match ErrRuleChain")
		}
	})
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Path: "/paths/~1pets/get", Message: "missing responses"}
	if err.Error() != "validation error at /paths/~1pets/get: missing responses" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should match ErrValidation")
	}
	if errors.Is(err, ErrConfig) {
		t.Error("ValidationError should not match ErrConfig")
	}
}

func TestConfigError(t *testing.T) {
	t.Run("full message", func(t *testing.T) {
		err := &ConfigError{Option: "format", Value: "xml", Message: "must be json or yaml"}
		if err.Error() != "configuration error for format (value: xml): must be json or yaml" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrConfig", func(t *testing.T) {
		if !errors.Is(&ConfigError{}, ErrConfig) {
			t.Error("ConfigError should match ErrConfig")
		}
	})
}
