package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/gw2oas/pathmap"
	jsoniter "github.com/json-iterator/go"
	"go.yaml.in/yaml/v4"
)

var prettyAPI = jsoniter.Config{IndentionStep: 2}.Froze()

// Marshal encodes v in the requested format. Unknown formats fall back to JSON.
func Marshal(v any, format Format) ([]byte, error) {
	if format == FormatYAML {
		return MarshalYAML(v)
	}
	return MarshalJSONIndent(v)
}

// MarshalJSONIndent encodes v as JSON indented by two spaces, writing
// *pathmap.Map keys in insertion order. The output ends with a newline.
func MarshalJSONIndent(v any) ([]byte, error) {
	stream := prettyAPI.BorrowStream(nil)
	defer prettyAPI.ReturnStream(stream)

	writeJSONValue(stream, v)
	stream.WriteRaw("\n")
	if stream.Error != nil {
		return nil, fmt.Errorf("document: encoding JSON: %w", stream.Error)
	}
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}

func writeJSONValue(stream *jsoniter.Stream, v any) {
	switch val := v.(type) {
	case *pathmap.Map:
		if val.Len() == 0 {
			stream.WriteEmptyObject()
			return
		}
		stream.WriteObjectStart()
		first := true
		val.Range(func(key string, value any) bool {
			if !first {
				stream.WriteMore()
			}
			first = false
			stream.WriteObjectField(key)
			writeJSONValue(stream, value)
			return true
		})
		stream.WriteObjectEnd()
	case []any:
		if len(val) == 0 {
			stream.WriteEmptyArray()
			return
		}
		stream.WriteArrayStart()
		for i, item := range val {
			if i > 0 {
				stream.WriteMore()
			}
			writeJSONValue(stream, item)
		}
		stream.WriteArrayEnd()
	case string:
		stream.WriteString(val)
	case json.Number:
		if val == "" {
			stream.WriteRaw("0")
			return
		}
		stream.WriteRaw(val.String())
	default:
		stream.WriteVal(val)
	}
}

// MarshalYAML encodes v as YAML, writing *pathmap.Map keys in insertion order.
func MarshalYAML(v any) ([]byte, error) {
	node, err := valueToNode(v)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("document: encoding YAML: %w", err)
	}
	return out, nil
}

// scalarNode creates a yaml.Node for a scalar value.
func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func valueToNode(v any) (*yaml.Node, error) {
	if v == nil {
		return scalarNode("!!null", "null"), nil
	}

	switch val := v.(type) {
	case *pathmap.Map:
		node := &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: make([]*yaml.Node, 0, val.Len()*2),
		}
		var err error
		val.Range(func(key string, value any) bool {
			var child *yaml.Node
			child, err = valueToNode(value)
			if err != nil {
				return false
			}
			node.Content = append(node.Content, scalarNode("!!str", key), child)
			return true
		})
		if err != nil {
			return nil, err
		}
		return node, nil
	case []any:
		node := &yaml.Node{
			Kind:    yaml.SequenceNode,
			Content: make([]*yaml.Node, 0, len(val)),
		}
		for _, item := range val {
			child, err := valueToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case string:
		return scalarNode("!!str", val), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val)), nil
	case int:
		return scalarNode("!!int", strconv.Itoa(val)), nil
	case int64:
		return scalarNode("!!int", strconv.FormatInt(val, 10)), nil
	case uint64:
		return scalarNode("!!int", strconv.FormatUint(val, 10)), nil
	case float64:
		return scalarNode("!!float", strconv.FormatFloat(val, 'g', -1, 64)), nil
	case json.Number:
		if strings.ContainsAny(val.String(), ".eE") {
			return scalarNode("!!float", val.String()), nil
		}
		return scalarNode("!!int", val.String()), nil
	default:
		return nil, fmt.Errorf("document: cannot encode %T as YAML", v)
	}
}
