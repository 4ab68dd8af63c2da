package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erraggy/gw2oas"
	"github.com/erraggy/gw2oas/converter"
	"github.com/erraggy/gw2oas/document"
	"github.com/erraggy/gw2oas/gwerrors"
	"github.com/erraggy/gw2oas/internal/cliutil"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// FormatInputPath returns a display-friendly path for the input.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatInputPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// ResolveOutputFormat picks the output format: an explicit --format wins,
// then the output file extension, then JSON.
func ResolveOutputFormat(flag, outputPath string) (document.Format, error) {
	if flag != "" {
		format, ok := document.ParseFormat(flag)
		if !ok {
			return document.FormatUnknown, &gwerrors.ConfigError{
				Option:  "format",
				Value:   flag,
				Message: "must be json or yaml",
			}
		}
		return format, nil
	}
	if outputPath != "" {
		if format := document.DetectFormatFromPath(outputPath); format != document.FormatUnknown {
			return format, nil
		}
	}
	return document.FormatJSON, nil
}

// ValidateOutputPath checks that writing outputPath cannot clobber an input
// file or follow a symlink.
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		if inputPath == "" || inputPath == StdinFilePath {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	return RejectSymlinkOutput(absOutputPath)
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
// This prevents symlink attacks where a symlink could redirect output to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// OutputConversionReport writes the conversion header, stats, issues and
// summary line.
func OutputConversionReport(w io.Writer, inputPath string, result *converter.ConversionResult) {
	cliutil.Writef(w, "Gateway to Swagger 2.0 Converter\n")
	cliutil.Writef(w, "================================\n\n")
	cliutil.Writef(w, "gw2oas version: %s\n", gw2oas.Version())
	cliutil.Writef(w, "Gateway: %s\n", FormatInputPath(inputPath))
	cliutil.Writef(w, "Source Format: %s\n", result.SourceFormat)
	cliutil.Writef(w, "Source Size: %s\n", cliutil.FormatBytes(result.SourceSize))
	cliutil.Writef(w, "Rule Chain: %s (%d changes)\n", result.ChainSource, result.ChainChanges)
	cliutil.Writef(w, "Paths: %d\n", result.Stats.PathCount)
	cliutil.Writef(w, "Operations: %d\n", result.Stats.OperationCount)
	cliutil.Writef(w, "Dropped Methods: %d\n\n", result.Stats.DroppedMethods)

	cliutil.WriteIssues(w, "Conversion Issues", result.Issues)

	if result.HasErrors() {
		cliutil.Writef(w, "✗ Conversion produced an invalid document: %d error(s)", result.ErrorCount)
		if result.WarningCount > 0 {
			cliutil.Writef(w, ", %d warning(s)", result.WarningCount)
		}
		cliutil.Writef(w, "\n")
		return
	}
	cliutil.Writef(w, "✓ Conversion successful")
	if result.InfoCount > 0 || result.WarningCount > 0 {
		cliutil.Writef(w, " (%d info, %d warnings)", result.InfoCount, result.WarningCount)
	}
	if result.Validated {
		cliutil.Writef(w, ", document is valid Swagger 2.0")
	}
	cliutil.Writef(w, "\n")
}
