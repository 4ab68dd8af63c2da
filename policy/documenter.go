package policy

import (
	"fmt"

	"github.com/erraggy/gw2oas/pathmap"
)

// DescriptionKey is the operation field documenters append to.
const DescriptionKey = "description"

// Context is what a Documenter knows about the policy it documents.
type Context struct {
	// Path is the gateway path being documented, e.g. "/pets"
	Path string
	// Method is the lowercased HTTP method of the operation
	Method string
	// Key is the policy tag, e.g. "mock"
	Key string
	// Operation is the Swagger operation node to enrich
	Operation *pathmap.Map
	// OnWarning receives messages about payload parts that were skipped.
	// May be nil.
	OnWarning func(message string)
}

// Warnf reports a skipped or malformed part of the payload.
func (c Context) Warnf(format string, args ...any) {
	if c.OnWarning != nil {
		c.OnWarning(fmt.Sprintf(format, args...))
	}
}

// Documenter documents one policy payload on an operation node.
type Documenter func(ctx Context, value any)

// Noop is the documenter used for every tag without a registered documenter.
func Noop(Context, any) {}

// AppendDescription appends "\n" followed by text to the operation description.
// A missing description counts as the empty string.
func AppendDescription(op *pathmap.Map, text string) {
	current, _ := op.Get(DescriptionKey)
	prefix, _ := current.(string)
	op.Set(DescriptionKey, prefix+"\n"+text)
}

// payloadMap returns value as a map, warning when it has another shape.
func payloadMap(ctx Context, value any) (*pathmap.Map, bool) {
	m, ok := value.(*pathmap.Map)
	if !ok {
		ctx.Warnf("%s payload is %s, expected an object", ctx.Key, describe(value))
	}
	return m, ok
}

// scalar renders a payload scalar the way it appears in descriptions.
func scalar(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *pathmap.Map:
		return "an object"
	case []any:
		return "a list"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	default:
		return "a number"
	}
}
