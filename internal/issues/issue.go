// Package issues provides a unified issue type for conversion and validation problems.
package issues

import (
	"fmt"

	"github.com/erraggy/gw2oas/internal/severity"
)

// Issue represents a single problem found while converting or validating.
type Issue struct {
	// Path is the dot path of the problematic element (e.g., "paths./pets.get")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Policy is the policy tag involved, if any (e.g., "mock")
	Policy string
	// Value is the problematic value (optional)
	Value any
	// Context provides additional information about the issue (optional)
	Context string
	// Line is the 1-based line number in the source file (0 if unknown)
	Line int
	// Column is the 1-based column number in the source file (0 if unknown)
	Column int
	// File is the source file path (empty for in-memory input)
	File string
}

// String returns a formatted string representation of the issue,
// prefixed with the severity symbol.
func (i Issue) String() string {
	subject := i.Path
	if i.Policy != "" {
		subject = fmt.Sprintf("%s [%s]", i.Path, i.Policy)
	}

	var result string
	if i.Line > 0 {
		result = fmt.Sprintf("%s %s (line %d, col %d): %s", i.Severity.Symbol(), subject, i.Line, i.Column, i.Message)
	} else {
		result = fmt.Sprintf("%s %s: %s", i.Severity.Symbol(), subject, i.Message)
	}

	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}

	return result
}

// Location returns the source location in IDE-friendly format.
// Returns "file:line:column" if file is set, "line:column" if only line is set,
// or the dot path if location is unknown.
func (i Issue) Location() string {
	if i.Line == 0 {
		return i.Path
	}
	if i.File != "" {
		return fmt.Sprintf("%s:%d:%d", i.File, i.Line, i.Column)
	}
	return fmt.Sprintf("%d:%d", i.Line, i.Column)
}

// HasLocation returns true if this issue has source location information.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}

// Count returns how many issues are at least as severe as threshold.
func Count(list []Issue, threshold severity.Severity) int {
	n := 0
	for _, issue := range list {
		if issue.Severity.AtLeast(threshold) {
			n++
		}
	}
	return n
}
