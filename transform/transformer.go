package transform

import (
	"fmt"

	"github.com/erraggy/gw2oas/internal/issues"
	"github.com/erraggy/gw2oas/internal/severity"
	"github.com/erraggy/gw2oas/pathmap"
	"github.com/erraggy/gw2oas/policy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SwaggerVersion is the value of the top-level "swagger" key.
const SwaggerVersion = "2.0"

// DefaultResponseDescription describes the "200" response added to operations
// no policy gave a response.
const DefaultResponseDescription = "No manipulation is done here"

// forbiddenMethods have no Swagger 2.0 operation.
var forbiddenMethods = map[string]bool{
	"trace":   true,
	"connect": true,
}

// Severity indicates the severity level of a transform issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about processing choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates skipped methods or malformed policy payloads
	SeverityWarning = severity.SeverityWarning
)

// Issue represents a single problem met while transforming
type Issue = issues.Issue

// Stats counts what a transform produced.
type Stats struct {
	// PathCount is the number of gateway paths visited
	PathCount int
	// OperationCount is the number of distinct operations emitted
	OperationCount int
	// DroppedMethods is the number of method entries skipped as unsupported
	DroppedMethods int
}

// Result contains the output document and what was noticed producing it.
type Result struct {
	// Document is the Swagger tree (*pathmap.Map), or the input itself when it
	// was not an object
	Document any
	// Issues lists skipped methods and malformed policy payloads in input order
	Issues []Issue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// Stats counts paths and operations
	Stats Stats
}

// HasWarnings returns true if there are any warnings
func (r *Result) HasWarnings() bool {
	return r.WarningCount > 0
}

// Transformer turns gateway declarations into Swagger documents.
// A Transformer is safe for concurrent use.
type Transformer struct {
	registry policy.Registry
	logger   Logger
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l Logger) Option {
	return func(t *Transformer) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithRegistry sets the policy registry. The default is policy.DefaultRegistry().
func WithRegistry(r policy.Registry) Option {
	return func(t *Transformer) {
		t.registry = r
	}
}

// New creates a Transformer.
func New(opts ...Option) *Transformer {
	t := &Transformer{
		registry: policy.DefaultRegistry(),
		logger:   NopLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform is a convenience function equivalent to New().Transform(input).
func Transform(input any) any {
	return New().Transform(input)
}

// Transform returns the Swagger document for input, or input unchanged when it
// is not an object.
func (t *Transformer) Transform(input any) any {
	return t.TransformWithResult(input).Document
}

// TransformWithResult is Transform that also reports issues and stats.
func (t *Transformer) TransformWithResult(input any) *Result {
	result := &Result{Document: input}

	doc, ok := input.(*pathmap.Map)
	if !ok {
		t.logger.Debug("input is not an object, passing it through", "type", fmt.Sprintf("%T", input))
		return result
	}

	run := &run{
		Transformer: t,
		result:      result,
		lower:       cases.Lower(language.Und),
	}

	out := pathmap.New()
	out.Merge(swaggerHeader())
	out.Merge(infoHeader(doc))
	out.Merge(run.paths(doc))
	result.Document = out

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityInfo:
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		}
	}

	t.logger.Debug("transformed gateway declaration",
		"paths", result.Stats.PathCount,
		"operations", result.Stats.OperationCount,
		"dropped_methods", result.Stats.DroppedMethods,
		"warnings", result.WarningCount,
	)
	return result
}

func swaggerHeader() *pathmap.Map {
	return pathmap.FromPairs("swagger", SwaggerVersion)
}

// infoHeader copies name, description and version into info, quoted.
// A null value counts as absent.
func infoHeader(doc *pathmap.Map) *pathmap.Map {
	header := pathmap.New()
	for _, field := range []struct{ from, to string }{
		{"name", "info.title"},
		{"description", "info.description"},
		{"version", "info.version"},
	} {
		value, ok := doc.GetFromPath(field.from)
		if !ok || value == nil {
			continue
		}
		header.SetFromPath(field.to, fmt.Sprintf("\"%v\"", value))
	}
	return header
}
