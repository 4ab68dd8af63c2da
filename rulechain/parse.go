package rulechain

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/gw2oas/document"
	"github.com/erraggy/gw2oas/gwerrors"
	"go.yaml.in/yaml/v4"
)

// BundledSource is the Source of the chain returned by LoadDefault.
const BundledSource = "<bundled>"

//go:embed default.yaml
var defaultChain []byte

// LoadDefault parses the bundled chain.
func LoadDefault() (*Chain, error) {
	return parse(defaultChain, BundledSource)
}

// DefaultBytes returns the raw bundled chain document.
func DefaultBytes() []byte {
	out := make([]byte, len(defaultChain))
	copy(out, defaultChain)
	return out
}

// LoadFile reads and parses the chain at path.
func LoadFile(path string) (*Chain, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided CLI input
	if err != nil {
		return nil, &gwerrors.RuleChainError{Source: path, ActionIndex: -1, Message: "cannot read chain", Cause: err}
	}
	return parse(data, path)
}

// Load parses the chain at path, or the bundled chain when path is empty.
func Load(path string) (*Chain, error) {
	if path == "" {
		return LoadDefault()
	}
	return LoadFile(path)
}

// Parse parses a chain from YAML or JSON bytes and validates it.
func Parse(data []byte) (*Chain, error) {
	return parse(data, "")
}

func parse(data []byte, source string) (*Chain, error) {
	c := &Chain{source: source}
	// yaml.Unmarshal handles both YAML and JSON
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, &gwerrors.RuleChainError{Source: c.Source(), ActionIndex: -1, Message: "invalid chain document", Cause: err}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the chain structure and decodes action values.
// It returns the first problem as a *gwerrors.RuleChainError.
func (c *Chain) Validate() error {
	if c.Version == "" {
		return c.chainError("chain version is required")
	}
	if c.Version != SupportedVersion {
		return c.chainError(fmt.Sprintf("unsupported chain version %q; only %q is supported", c.Version, SupportedVersion))
	}

	for i := range c.Actions {
		action := &c.Actions[i]
		if err := validateAction(action); err != nil {
			var chainErr *gwerrors.RuleChainError
			if errors.As(err, &chainErr) {
				chainErr.Source = c.Source()
				chainErr.ActionIndex = i
				chainErr.Operation = string(action.Operation)
				return chainErr
			}
			return err
		}
	}
	return nil
}

func (c *Chain) chainError(message string) error {
	return &gwerrors.RuleChainError{Source: c.Source(), ActionIndex: -1, Message: message}
}

func validateAction(a *Action) error {
	switch a.Operation {
	case OpShift:
		if a.From == "" || a.To == "" {
			return &gwerrors.RuleChainError{Message: "shift requires from and to"}
		}
		if a.From == a.To {
			return &gwerrors.RuleChainError{Message: "shift from and to are the same path"}
		}
		return nil
	case OpRemove:
		if a.Path == "" {
			return &gwerrors.RuleChainError{Message: "path is required"}
		}
		return nil
	case OpDefault, OpUpdate:
		if a.Path == "" {
			return &gwerrors.RuleChainError{Message: "path is required"}
		}
		if a.value != nil {
			return nil
		}
		if a.Value == nil {
			return &gwerrors.RuleChainError{Message: "value is required"}
		}
		value, err := document.NodeValue(a.Value)
		if err != nil {
			return &gwerrors.RuleChainError{Message: "invalid value", Cause: err}
		}
		a.value = value
		return nil
	case "":
		return &gwerrors.RuleChainError{Message: "operation is required"}
	default:
		return &gwerrors.RuleChainError{Message: fmt.Sprintf("unknown operation %q", a.Operation)}
	}
}
