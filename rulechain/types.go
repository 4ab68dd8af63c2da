package rulechain

import (
	"go.yaml.in/yaml/v4"
)

// SupportedVersion is the only accepted value of the "chain" field.
const SupportedVersion = "1.0"

// Operation names what an action does.
type Operation string

const (
	// OpShift moves a value between two paths
	OpShift Operation = "shift"
	// OpDefault sets a value when the path is absent
	OpDefault Operation = "default"
	// OpRemove deletes a path
	OpRemove Operation = "remove"
	// OpUpdate merges or sets a value at a path
	OpUpdate Operation = "update"
)

// Chain is an ordered list of reshaping actions.
type Chain struct {
	// Version is the chain format version. Must be SupportedVersion.
	Version string `yaml:"chain" json:"chain"`

	// Description is an optional human-readable summary.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Actions run in order.
	Actions []Action `yaml:"actions" json:"actions"`

	// source names where the chain was loaded from, for error messages
	source string
}

// Source returns where the chain was loaded from: a file path, "<bundled>"
// or "<inline>".
func (c *Chain) Source() string {
	if c.source == "" {
		return "<inline>"
	}
	return c.source
}

// Action is a single reshaping step.
type Action struct {
	// Operation is one of shift, default, remove or update.
	Operation Operation `yaml:"operation" json:"operation"`

	// Path is the dot path acted on by default, remove and update.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// From is the source dot path of a shift.
	From string `yaml:"from,omitempty" json:"from,omitempty"`

	// To is the destination dot path of a shift.
	To string `yaml:"to,omitempty" json:"to,omitempty"`

	// Value is the content used by default and update.
	Value *yaml.Node `yaml:"value,omitempty" json:"value,omitempty"`

	// Description is an optional human-readable explanation of the action.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// value is Value decoded into a pathmap tree by Parse
	value any
}

// Target returns the path an action writes to.
func (a Action) Target() string {
	if a.Operation == OpShift {
		return a.To
	}
	return a.Path
}

// ChangeRecord describes what one action did.
type ChangeRecord struct {
	// ActionIndex is the zero-based index of the action
	ActionIndex int
	// Operation is the operation of the action
	Operation Operation
	// Path is the path written or removed
	Path string
	// Applied is false when the action found nothing to do
	Applied bool
}

// ApplyResult contains the reshaped document and a record per action.
type ApplyResult struct {
	// Document is the reshaped tree
	Document any
	// Changes has one record per action, in order
	Changes []ChangeRecord
}

// AppliedCount returns how many actions changed the document.
func (r *ApplyResult) AppliedCount() int {
	n := 0
	for _, c := range r.Changes {
		if c.Applied {
			n++
		}
	}
	return n
}
