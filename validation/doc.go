// Package validation checks produced documents against an embedded JSON
// Schema describing the Swagger 2.0 structure gw2oas emits: a "2.0" swagger
// version, an info object with title and version, and paths whose operations
// carry at least one described response.
//
// The gateway input itself is never validated.
package validation
