// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/erraggy/gw2oas/internal/issues"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteIssues writes a titled, indented issue list followed by a blank line.
// Nothing is written for an empty list.
func WriteIssues(w io.Writer, title string, list []issues.Issue) {
	if len(list) == 0 {
		return
	}
	Writef(w, "%s (%d):\n", title, len(list))
	for _, issue := range list {
		Writef(w, "  %s\n", issue.String())
	}
	Writef(w, "\n")
}

// FormatBytes renders a byte count with binary units (KiB, MiB, ...).
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
