// Package transform converts a gateway declaration tree into a Swagger 2.0
// document tree.
//
// The input is the value produced by the document codec (and optionally
// reshaped by a rule chain): a *pathmap.Map with "name", "description",
// "version" and "paths" keys. The output has three top-level parts, in this
// order:
//
//   - "swagger": always "2.0"
//   - "info": title, description and version copied from the input, each
//     wrapped in literal double quotes
//   - "paths": one operation per path and lowercased method, described by the
//     policies of the block it came from
//
// Methods TRACE and CONNECT have no Swagger 2.0 operation and are dropped with
// a warning. Every operation gets a "description" (possibly empty) and at least
// one response; when no policy added one, a default "200" response is used.
//
// Inputs that are not objects are returned unchanged. The input is never
// modified.
//
// # Basic usage
//
//	out := transform.Transform(doc)
//
// # With options
//
//	t := transform.New(
//	    transform.WithLogger(transform.NewSlogAdapter(slog.Default())),
//	    transform.WithRegistry(policy.DefaultRegistry().With("x-audit", audit)),
//	)
//	result := t.TransformWithResult(doc)
//	for _, issue := range result.Issues {
//	    fmt.Println(issue)
//	}
package transform
