// Package pathmap provides an insertion-ordered tree of string-keyed maps with
// dot-separated path addressing.
//
// It is the working representation for both gateway input and Swagger output.
// Reads and writes follow different rules for missing keys:
//
//   - [Map.GetFromPath] never fails. A missing segment yields false, and a
//     segment that is not a map makes the rest of the path unresolved.
//   - [Map.NavigateOrCreate] and [Map.SetFromPath] create every missing
//     container on the way down.
//
// Documentation fragments are assembled in key order, so every layer that
// carries gateway data must preserve insertion order. Replacing [Map] with a
// sorted map changes generated descriptions.
//
// # Example
//
//	doc := pathmap.New()
//	doc.SetFromPath("info.title", "Pets")
//	title, ok := doc.GetFromPath("info.title")
package pathmap
