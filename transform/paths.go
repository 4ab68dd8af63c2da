package transform

import (
	"fmt"

	"github.com/erraggy/gw2oas/pathmap"
	"github.com/erraggy/gw2oas/policy"
	"golang.org/x/text/cases"
)

// run holds the state of a single TransformWithResult call.
type run struct {
	*Transformer
	result *Result
	// lower is stateful and must not be shared between calls
	lower cases.Caser
}

func (r *run) warn(path, policyKey, message string) {
	r.result.Issues = append(r.result.Issues, Issue{
		Path:     path,
		Message:  message,
		Severity: SeverityWarning,
		Policy:   policyKey,
	})
	r.logger.Warn(message, "path", path)
}

// paths builds {"paths": {...}} from the gateway paths, in input order.
func (r *run) paths(doc *pathmap.Map) *pathmap.Map {
	out := pathmap.New()
	paths := out.NavigateOrCreateSegments("paths")

	value, ok := doc.GetFromPath("paths")
	if !ok {
		return out
	}
	gatewayPaths, ok := value.(*pathmap.Map)
	if !ok {
		r.warn("paths", "", fmt.Sprintf("paths is %T, expected an object", value))
		return out
	}

	gatewayPaths.Range(func(path string, blocksValue any) bool {
		r.result.Stats.PathCount++
		blocks, ok := blocksValue.([]any)
		if !ok {
			r.warn("paths."+path, "", fmt.Sprintf("policy blocks are %T, expected a list", blocksValue))
			return true
		}
		for i, b := range blocks {
			block, ok := b.(*pathmap.Map)
			if !ok {
				r.warn(fmt.Sprintf("paths.%s[%d]", path, i), "", fmt.Sprintf("policy block is %T, expected an object", b))
				continue
			}
			r.block(paths, path, block)
		}
		return true
	})
	return out
}

// block emits one operation per method of block under paths.<path>.
func (r *run) block(paths *pathmap.Map, path string, block *pathmap.Map) {
	pathItem := paths.NavigateOrCreateSegments(path)

	methodsValue, _ := block.Get("methods")
	methods, ok := methodsValue.([]any)
	if !ok {
		r.warn("paths."+path, "", "policy block has no methods list")
		return
	}

	for _, m := range methods {
		name, ok := m.(string)
		if !ok {
			r.warn("paths."+path, "", fmt.Sprintf("method %v is not a string", m))
			continue
		}
		method := r.lower.String(name)
		if forbiddenMethods[method] {
			r.result.Stats.DroppedMethods++
			r.warn("paths."+path, "", fmt.Sprintf("Trying to use unsupported method %s on %s", name, path))
			continue
		}

		if !pathItem.Has(method) {
			r.result.Stats.OperationCount++
		}
		op := pathItem.NavigateOrCreateSegments(method)
		r.document(op, path, method, block)
	}
}

// document runs every key of block through the registry, in block order,
// then makes sure the operation has a response.
func (r *run) document(op *pathmap.Map, path, method string, block *pathmap.Map) {
	if !op.Has(policy.DescriptionKey) {
		op.Set(policy.DescriptionKey, "")
	}

	opPath := fmt.Sprintf("paths.%s.%s", path, method)
	block.Range(func(key string, value any) bool {
		ctx := policy.Context{
			Path:      path,
			Method:    method,
			Key:       key,
			Operation: op,
			OnWarning: func(message string) {
				r.warn(opPath, key, message)
			},
		}
		// documenters get their own copy so the input stays untouched
		r.registry.Lookup(key)(ctx, pathmap.CloneValue(value))
		return true
	})

	if !op.Has("responses") {
		op.NavigateOrCreateSegments("responses", "200").Set("description", DefaultResponseDescription)
	}
}
