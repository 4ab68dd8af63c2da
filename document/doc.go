// Package document decodes and encodes the JSON and YAML trees that flow
// through gw2oas.
//
// Decoding produces *pathmap.Map for objects so that key order from the
// source survives the whole pipeline. JSON numbers are kept as json.Number
// and written back verbatim. Encoding walks the same tree and writes maps in
// insertion order, using json-iterator streams for JSON and yaml.Node trees
// for YAML.
package document
