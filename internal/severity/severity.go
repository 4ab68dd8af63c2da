// Package severity provides severity level constants for issues reported
// while converting gateway declarations and validating the produced document.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue.
type Severity int

const (
	// SeverityError indicates a produced document that fails Swagger 2.0 validation.
	SeverityError Severity = iota

	// SeverityWarning indicates input that was skipped or only partly documented,
	// such as a malformed policy payload or a forbidden HTTP method.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo

	// SeverityCritical indicates input that could not be processed at all.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Symbol returns the marker printed in front of an issue line.
func (s Severity) Symbol() string {
	switch s {
	case SeverityError, SeverityCritical:
		return "✗"
	case SeverityWarning:
		return "⚠"
	case SeverityInfo:
		return "ℹ"
	default:
		return "?"
	}
}

// Rank orders severities from least (0) to most severe (3).
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

// AtLeast reports whether s is as severe as threshold or more.
func (s Severity) AtLeast(threshold Severity) bool {
	return s.Rank() >= threshold.Rank()
}
