package validation

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/erraggy/gw2oas/gwerrors"
	"github.com/erraggy/gw2oas/internal/issues"
	"github.com/erraggy/gw2oas/internal/severity"
	"github.com/erraggy/gw2oas/pathmap"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaURL = "gw2oas-swagger-2.0.json"

//go:embed swagger-2.0.json
var schemaBytes []byte

var printer = message.NewPrinter(language.English)

// Validator checks documents against the embedded schema. It is safe for
// concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("validation: decoding schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft7)
	if err := compiler.AddResource(schemaURL, schemaDoc); err != nil {
		return nil, fmt.Errorf("validation: adding schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("validation: compiling schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

var defaultValidator = sync.OnceValues(New)

// Validate checks doc with a shared Validator.
func Validate(doc any) error {
	v, err := defaultValidator()
	if err != nil {
		return err
	}
	return v.Validate(doc)
}

// Issues checks doc with a shared Validator and reports violations as issues.
func Issues(doc any) ([]issues.Issue, error) {
	v, err := defaultValidator()
	if err != nil {
		return nil, err
	}
	return v.Issues(doc), nil
}

// Validate returns nil when doc matches the schema. Otherwise it returns one
// *gwerrors.ValidationError per violation, joined with errors.Join.
func (v *Validator) Validate(doc any) error {
	violations := v.violations(doc)
	if len(violations) == 0 {
		return nil
	}
	errs := make([]error, len(violations))
	for i, violation := range violations {
		errs[i] = violation
	}
	return errors.Join(errs...)
}

// Issues reports every violation as an error-severity issue.
func (v *Validator) Issues(doc any) []issues.Issue {
	violations := v.violations(doc)
	out := make([]issues.Issue, 0, len(violations))
	for _, violation := range violations {
		out = append(out, issues.Issue{
			Path:     violation.Path,
			Message:  violation.Message,
			Severity: severity.SeverityError,
		})
	}
	return out
}

func (v *Validator) violations(doc any) []*gwerrors.ValidationError {
	err := v.schema.Validate(pathmap.Plain(doc))
	if err == nil {
		return nil
	}
	var schemaErr *jsonschema.ValidationError
	if !errors.As(err, &schemaErr) {
		return []*gwerrors.ValidationError{{Path: "/", Message: "validation failed", Cause: err}}
	}
	var out []*gwerrors.ValidationError
	collectLeaves(schemaErr, &out)
	return out
}

// collectLeaves flattens the error tree into its most specific causes.
func collectLeaves(e *jsonschema.ValidationError, out *[]*gwerrors.ValidationError) {
	if len(e.Causes) == 0 {
		*out = append(*out, &gwerrors.ValidationError{
			Path:    pointer(e.InstanceLocation),
			Message: e.ErrorKind.LocalizedString(printer),
		})
		return
	}
	for _, cause := range e.Causes {
		collectLeaves(cause, out)
	}
}

// pointer renders a JSON Pointer for the instance location.
func pointer(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString("/")
		s = strings.ReplaceAll(s, "~", "~0")
		sb.WriteString(strings.ReplaceAll(s, "/", "~1"))
	}
	return sb.String()
}
