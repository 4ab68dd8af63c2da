// Package converter runs the complete gateway to Swagger 2.0 pipeline.
//
// A conversion decodes the gateway declaration (JSON or YAML), applies a rule
// chain (the bundled default or a user file), transforms the result into a
// Swagger 2.0 document and, when requested, checks that document against the
// embedded Swagger 2.0 schema.
//
// # Quick Start
//
//	result, err := converter.Convert("gateway.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := document.MarshalJSONIndent(result.Document)
//
// Use a Converter to pick a rule chain, enable validation or log through slog:
//
//	c := converter.New()
//	c.ChainPath = "chain.yaml"
//	c.Validate = true
//	c.Logger = slog.Default()
//	result, err := c.Convert("gateway.yaml")
//
// # Issues
//
// Problems that do not stop the conversion are collected as issues on the
// Result: unsupported methods and malformed policy payloads are warnings,
// schema violations are errors. Decode and rule chain failures are returned
// as errors instead.
package converter
