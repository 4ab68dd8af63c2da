// Package gw2oas turns API gateway declarations into Swagger 2.0 documents.
//
// A gateway declaration lists URL paths, each with an ordered list of policy
// blocks (methods plus policy configuration such as mocks, header transforms or
// Groovy scripts). gw2oas walks that tree and produces a Swagger 2.0 document
// whose operations describe, in plain text, what the gateway does on each
// path, so the gateway configuration can double as published API
// documentation.
//
// # Packages
//
//   - pathmap: ordered map tree addressed by dot paths
//   - document: order preserving JSON and YAML decode and encode
//   - policy: policy tag to documenter registry and the built-in documenters
//   - transform: the gateway to Swagger transformation
//   - rulechain: reshaping actions applied before the transformation
//   - validation: structural check of the produced Swagger 2.0 document
//   - converter: the complete pipeline, from file to document
//
// # Quick Start
//
// Convert a gateway declaration file:
//
//	result, err := converter.Convert("gateway.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := document.MarshalJSONIndent(result.Document)
//
// Transform an already decoded tree:
//
//	parsed, _ := document.ParseBytes(data)
//	swagger := transform.Transform(parsed.Value)
//
// # Command Line
//
// The gw2oas command wraps the converter:
//
//	gw2oas convert -i gateway.json -o swagger.json
//	gw2oas convert -i gateway.yaml -o swagger.yaml --validate
//	gw2oas serve -i gateway.json --addr :8080
//	gw2oas policies
//	gw2oas chain > chain.yaml
package gw2oas
