package converter

import (
	"fmt"
	"log/slog"

	"github.com/erraggy/gw2oas/document"
	"github.com/erraggy/gw2oas/internal/issues"
	"github.com/erraggy/gw2oas/internal/severity"
	"github.com/erraggy/gw2oas/policy"
	"github.com/erraggy/gw2oas/rulechain"
	"github.com/erraggy/gw2oas/transform"
	"github.com/erraggy/gw2oas/validation"
)

// Severity indicates the severity level of a conversion issue
type Severity = severity.Severity

const (
	// SeverityError indicates the produced document is not valid Swagger 2.0
	SeverityError = severity.SeverityError
	// SeverityWarning indicates input that was skipped or only partly documented
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
)

// ConversionIssue represents a single problem found while converting
type ConversionIssue = issues.Issue

// ConversionResult contains the results of converting a gateway declaration
type ConversionResult struct {
	// Document contains the Swagger 2.0 document, usually a *pathmap.Map
	Document any
	// SourcePath is the input file path, empty for in-memory input
	SourcePath string
	// SourceFormat is the format of the input (JSON or YAML)
	SourceFormat document.Format
	// SourceSize is the size of the input in bytes
	SourceSize int64
	// ChainSource names the rule chain that was applied
	ChainSource string
	// ChainChanges is how many rule chain actions changed the document
	ChainChanges int
	// Stats counts paths and operations in the output
	Stats transform.Stats
	// Issues contains all conversion and validation issues
	Issues []ConversionIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// ErrorCount is the total number of validation errors
	ErrorCount int
	// Validated is true when the output was checked against the schema
	Validated bool
}

// HasErrors returns true if validation found any errors
func (r *ConversionResult) HasErrors() bool {
	return r.ErrorCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *ConversionResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// Converter runs conversions
type Converter struct {
	// Chain is the rule chain to apply. It takes precedence over ChainPath.
	Chain *rulechain.Chain
	// ChainPath is the rule chain file. Empty selects the bundled chain.
	ChainPath string
	// Validate checks the produced document against the Swagger 2.0 schema
	Validate bool
	// Registry resolves policy tags. Nil selects policy.DefaultRegistry().
	Registry *policy.Registry
	// Logger receives progress and warning logs. Nil discards them.
	Logger *slog.Logger
}

// New creates a new Converter instance with default settings
func New() *Converter {
	return &Converter{}
}

// Convert is a convenience function that converts the file at path with the
// bundled rule chain.
func Convert(path string) (*ConversionResult, error) {
	return New().Convert(path)
}

// Convert reads, decodes and converts the file at path.
func (c *Converter) Convert(path string) (*ConversionResult, error) {
	parsed, err := document.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return c.ConvertParsed(parsed)
}

// ConvertBytes decodes data and converts it. The format is detected from content.
func (c *Converter) ConvertBytes(data []byte) (*ConversionResult, error) {
	parsed, err := document.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	return c.ConvertParsed(parsed)
}

// ConvertParsed converts an already decoded document.
func (c *Converter) ConvertParsed(parsed *document.Result) (*ConversionResult, error) {
	if parsed == nil {
		return nil, fmt.Errorf("converter: nil parse result")
	}

	chain, err := c.chain()
	if err != nil {
		return nil, err
	}
	applied, err := chain.ApplyWithResult(parsed.Value)
	if err != nil {
		return nil, err
	}

	logger := c.logger()
	logger.Debug("applied rule chain",
		"chain", chain.Source(),
		"actions", len(chain.Actions),
		"changes", applied.AppliedCount(),
	)

	opts := []transform.Option{transform.WithLogger(transform.NewSlogAdapter(logger))}
	if c.Registry != nil {
		opts = append(opts, transform.WithRegistry(*c.Registry))
	}
	transformed := transform.New(opts...).TransformWithResult(applied.Document)

	result := &ConversionResult{
		Document:     transformed.Document,
		SourcePath:   parsed.SourcePath,
		SourceFormat: parsed.Format,
		SourceSize:   parsed.SourceSize,
		ChainSource:  chain.Source(),
		ChainChanges: applied.AppliedCount(),
		Stats:        transformed.Stats,
		Issues:       transformed.Issues,
	}

	if c.Validate {
		found, err := validation.Issues(result.Document)
		if err != nil {
			return nil, err
		}
		result.Issues = append(result.Issues, found...)
		result.Validated = true
		for _, issue := range found {
			logger.Warn("validation failed", "path", issue.Path, "message", issue.Message)
		}
	}

	c.updateCounts(result)
	return result, nil
}

func (c *Converter) chain() (*rulechain.Chain, error) {
	if c.Chain != nil {
		return c.Chain, nil
	}
	return rulechain.Load(c.ChainPath)
}

func (c *Converter) updateCounts(result *ConversionResult) {
	result.InfoCount, result.WarningCount, result.ErrorCount = 0, 0, 0
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityInfo:
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityError:
			result.ErrorCount++
		}
	}
}

func (c *Converter) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
