// Package fileutil holds file permission constants and output helpers shared
// by the CLI, the doc server and the MCP server.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// OwnerReadWrite is the file permission mode for generated documents
// containing potentially sensitive gateway data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for documents meant to be
// published alongside the gateway.
const ReadableByAll os.FileMode = 0o644

// DirMode is the permission mode for output directories created on demand.
const DirMode os.FileMode = 0o755

// WriteFile writes data to path, creating missing parent directories first.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, DirMode); err != nil {
			return fmt.Errorf("fileutil: creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("fileutil: writing %s: %w", path, err)
	}
	return nil
}

// OpenAppend opens path for appending, creating it and its parent
// directories as needed.
func OpenAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, DirMode); err != nil {
			return nil, fmt.Errorf("fileutil: creating directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, OwnerReadWrite) //nolint:gosec // path is user-provided configuration
	if err != nil {
		return nil, fmt.Errorf("fileutil: opening %s: %w", path, err)
	}
	return f, nil
}
