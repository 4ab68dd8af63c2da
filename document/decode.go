package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/erraggy/gw2oas/gwerrors"
	"github.com/erraggy/gw2oas/pathmap"
	jsoniter "github.com/json-iterator/go"
	"go.yaml.in/yaml/v4"
)

// maxAliasDepth bounds alias expansion in YAML input.
const maxAliasDepth = 64

var decodeAPI = jsoniter.Config{UseNumber: true}.Froze()

// Result is a decoded document together with where it came from.
type Result struct {
	// Value is the decoded tree: *pathmap.Map, []any or a scalar
	Value any
	// Format is the detected source format
	Format Format
	// SourcePath is the file path, or empty for in-memory input
	SourcePath string
	// SourceSize is the size of the raw input in bytes
	SourceSize int64
}

// ParseFile reads and decodes the file at path.
func ParseFile(path string) (*Result, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided CLI input
	if err != nil {
		return nil, fmt.Errorf("document: reading %s: %w", path, err)
	}
	format := DetectFormatFromPath(path)
	if format == FormatUnknown {
		format = DetectFormatFromContent(data)
	}
	return parse(data, format, path)
}

// ParseReader reads r to the end and decodes it, detecting the format from content.
func ParseReader(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("document: reading input: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes decodes data, detecting the format from content.
func ParseBytes(data []byte) (*Result, error) {
	return parse(data, DetectFormatFromContent(data), "")
}

func parse(data []byte, format Format, source string) (*Result, error) {
	var (
		value any
		err   error
	)
	switch format {
	case FormatJSON:
		value, err = decodeJSON(data)
	case FormatYAML:
		value, err = decodeYAML(data)
	default:
		return nil, &gwerrors.ParseError{Path: source, Message: "empty document"}
	}
	if err != nil {
		var parseErr *gwerrors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = source
			return nil, parseErr
		}
		return nil, &gwerrors.ParseError{Path: source, Cause: err}
	}
	return &Result{
		Value:      value,
		Format:     format,
		SourcePath: source,
		SourceSize: int64(len(data)),
	}, nil
}

// decodeJSON reads a JSON value keeping object keys in source order.
// Numbers are kept as json.Number so they survive re-encoding unchanged.
func decodeJSON(data []byte) (any, error) {
	iter := jsoniter.ParseBytes(decodeAPI, data)
	value := readJSONValue(iter)
	if iter.Error != nil {
		return nil, &gwerrors.ParseError{Message: "invalid JSON", Cause: iter.Error}
	}
	// only a clean end of input leaves io.EOF behind
	if iter.WhatIsNext() != jsoniter.InvalidValue || !errors.Is(iter.Error, io.EOF) {
		return nil, &gwerrors.ParseError{Message: "unexpected data after top-level value"}
	}
	return value, nil
}

func readJSONValue(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		m := pathmap.New()
		iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			m.Set(field, readJSONValue(it))
			return it.Error == nil
		})
		return m
	case jsoniter.ArrayValue:
		list := make([]any, 0)
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			list = append(list, readJSONValue(it))
			return it.Error == nil
		})
		return list
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		return iter.ReadNumber()
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	default:
		iter.ReportError("readJSONValue", "expected a JSON value")
		return nil
	}
}

var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// decodeYAML reads a YAML document through yaml.Node so mapping keys keep
// their source order.
func decodeYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		parseErr := &gwerrors.ParseError{Message: "invalid YAML", Cause: err}
		if m := yamlLinePattern.FindStringSubmatch(err.Error()); m != nil {
			parseErr.Line, _ = strconv.Atoi(m[1])
		}
		return nil, parseErr
	}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return nil, &gwerrors.ParseError{Message: "empty document"}
	}
	return nodeToValue(&root, 0)
}

// NodeValue converts a decoded YAML node into the same tree ParseBytes
// produces, with mappings as *pathmap.Map.
func NodeValue(node *yaml.Node) (any, error) {
	if node == nil {
		return nil, nil
	}
	return nodeToValue(node, 0)
}

func nodeToValue(node *yaml.Node, depth int) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return nodeToValue(node.Content[0], depth)

	case yaml.MappingNode:
		m := pathmap.New()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge" {
				return nil, &gwerrors.ParseError{
					Line:    key.Line,
					Column:  key.Column,
					Message: "merge keys (<<) are not supported",
				}
			}
			if key.Kind != yaml.ScalarNode {
				return nil, &gwerrors.ParseError{
					Line:    key.Line,
					Column:  key.Column,
					Message: "mapping keys must be scalars",
				}
			}
			value, err := nodeToValue(node.Content[i+1], depth)
			if err != nil {
				return nil, err
			}
			m.Set(key.Value, value)
		}
		return m, nil

	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := nodeToValue(child, depth)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		return list, nil

	case yaml.AliasNode:
		if depth >= maxAliasDepth || node.Alias == nil {
			return nil, &gwerrors.ParseError{
				Line:    node.Line,
				Column:  node.Column,
				Message: "alias nesting too deep",
			}
		}
		return nodeToValue(node.Alias, depth+1)

	default:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, &gwerrors.ParseError{Line: node.Line, Column: node.Column, Cause: err}
		}
		return value, nil
	}
}
