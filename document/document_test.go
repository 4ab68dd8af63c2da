package document

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erraggy/gw2oas/gwerrors"
	"github.com/erraggy/gw2oas/pathmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

// assertKeyOrder verifies that keys appear in the expected order within the output string.
func assertKeyOrder(t *testing.T, output string, keys []string) {
	t.Helper()
	for i := 0; i < len(keys)-1; i++ {
		idx1 := strings.Index(output, keys[i])
		idx2 := strings.Index(output, keys[i+1])
		assert.True(t, idx1 >= 0 && idx1 < idx2, "expected %q before %q", keys[i], keys[i+1])
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormatFromPath("api.json"))
	assert.Equal(t, FormatYAML, DetectFormatFromPath("api.YML"))
	assert.Equal(t, FormatYAML, DetectFormatFromPath("dir/api.yaml"))
	assert.Equal(t, FormatUnknown, DetectFormatFromPath("api.txt"))

	assert.Equal(t, FormatJSON, DetectFormatFromContent([]byte("  \n{\"a\":1}")))
	assert.Equal(t, FormatJSON, DetectFormatFromContent([]byte("[1]")))
	assert.Equal(t, FormatYAML, DetectFormatFromContent([]byte("name: Pets")))
	assert.Equal(t, FormatUnknown, DetectFormatFromContent([]byte(" \t\n")))
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat("YAML")
	assert.True(t, ok)
	assert.Equal(t, FormatYAML, f)

	_, ok = ParseFormat("xml")
	assert.False(t, ok)
}

func TestParseBytesJSONKeepsOrder(t *testing.T) {
	res, err := ParseBytes([]byte(`{
		"name": "Pets",
		"paths": {
			"/zebra": [{"methods": ["GET"], "mock": {"status": "404"}, "groovy": {"onRequest": "x"}}],
			"/alpha": []
		},
		"count": 3,
		"ratio": 1.50,
		"enabled": true,
		"nothing": null
	}`))
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, res.Format)

	doc, ok := res.Value.(*pathmap.Map)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "paths", "count", "ratio", "enabled", "nothing"}, doc.Keys())

	paths, _ := doc.Get("paths")
	assert.Equal(t, []string{"/zebra", "/alpha"}, paths.(*pathmap.Map).Keys())

	blocks, _ := doc.GetFromPath("paths./zebra")
	block := blocks.([]any)[0].(*pathmap.Map)
	assert.Equal(t, []string{"methods", "mock", "groovy"}, block.Keys())

	count, _ := doc.Get("count")
	assert.Equal(t, json.Number("3"), count)
	ratio, _ := doc.Get("ratio")
	assert.Equal(t, json.Number("1.50"), ratio)
	enabled, _ := doc.Get("enabled")
	assert.Equal(t, true, enabled)
	nothing, present := doc.Get("nothing")
	assert.True(t, present)
	assert.Nil(t, nothing)
}

func TestParseBytesYAMLKeepsOrder(t *testing.T) {
	res, err := ParseBytes([]byte(`
name: Pets
version: "1.0"
paths:
  /pets:
    - methods: [GET, POST]
      transform-headers:
        scope: REQUEST
        addHeaders: []
      groovy:
        onRequestScript: "x"
defaults: &defaults
  limit: 10
copy: *defaults
`))
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, res.Format)

	doc := res.Value.(*pathmap.Map)
	assert.Equal(t, []string{"name", "version", "paths", "defaults", "copy"}, doc.Keys())

	version, _ := doc.Get("version")
	assert.Equal(t, "1.0", version)

	blocks, _ := doc.GetFromPath("paths./pets")
	block := blocks.([]any)[0].(*pathmap.Map)
	assert.Equal(t, []string{"methods", "transform-headers", "groovy"}, block.Keys())

	limit, ok := doc.GetFromPath("copy.limit")
	require.True(t, ok)
	assert.Equal(t, 10, limit)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "   "},
		{"broken json", `{"name": `},
		{"trailing json", `{"name": "x"} {}`},
		{"trailing brace", `{"a":1} }`},
		{"trailing bracket", `{"a":1}]`},
		{"trailing garbage", `{"a":1} garbage`},
		{"broken yaml", "name: [unclosed"},
		{"non scalar key", "? [a, b]\n: value\n"},
		{"merge key", "base: &base\n  limit: 10\ncopy:\n  <<: *base\n  extra: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, gwerrors.ErrParse), "got %v", err)
		})
	}
}

func TestParseYAMLQuotedMergeKeyIsPlain(t *testing.T) {
	res, err := ParseBytes([]byte("copy:\n  \"<<\": literal\n"))
	require.NoError(t, err)
	v, ok := res.Value.(*pathmap.Map).GetFromSegments("copy", "<<")
	require.True(t, ok)
	assert.Equal(t, "literal", v)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gateway.conf")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Pets"}`), 0o600))

	res, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, res.Format, "unknown extension falls back to content detection")
	assert.Equal(t, path, res.SourcePath)
	assert.Equal(t, int64(15), res.SourceSize)

	_, err = ParseFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFileErrorCarriesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":`), 0o600))

	_, err := ParseFile(path)
	var parseErr *gwerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, path, parseErr.Path)
}

func TestParseReader(t *testing.T) {
	res, err := ParseReader(strings.NewReader("swagger: '2.0'\n"))
	require.NoError(t, err)
	v, _ := res.Value.(*pathmap.Map).Get("swagger")
	assert.Equal(t, "2.0", v)
}

func TestMarshalJSONIndent(t *testing.T) {
	doc := pathmap.New()
	doc.Set("swagger", "2.0")
	doc.SetFromPath("info.title", `"Pets"`)
	doc.SetFromPath("paths./pets.get.description", "")
	doc.SetFromPath("paths./pets.get.responses.200.description", "No manipulation is done here")
	doc.Set("empty", pathmap.New())
	doc.Set("list", []any{})
	doc.Set("number", json.Number("1.50"))
	doc.Set("html", "<b>&</b>")

	out, err := MarshalJSONIndent(doc)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasSuffix(text, "}\n"))
	assert.Contains(t, text, "\n  \"swagger\": \"2.0\"")
	assert.Contains(t, text, `"number": 1.50`)
	assert.Contains(t, text, `"html": "<b>&</b>"`)
	assertKeyOrder(t, text, []string{`"swagger"`, `"info"`, `"paths"`, `"empty"`, `"list"`})

	var generic map[string]any
	require.NoError(t, json.Unmarshal(out, &generic))
	assert.Equal(t, `"Pets"`, generic["info"].(map[string]any)["title"])
	assert.Equal(t, map[string]any{}, generic["empty"])
	assert.Equal(t, []any{}, generic["list"])
}

func TestMarshalJSONRoundTrip(t *testing.T) {
	input := `{"b":{"z":1,"a":[true,null,"x"]},"a":2.5e3}`
	res, err := ParseBytes([]byte(input))
	require.NoError(t, err)

	out, err := MarshalJSONIndent(res.Value)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
	assertKeyOrder(t, string(out), []string{`"b"`, `"z"`, `"a": [`})
}

func TestMarshalYAML(t *testing.T) {
	doc := pathmap.New()
	doc.Set("swagger", "2.0")
	doc.SetFromPath("info.version", `"1.0"`)
	doc.SetFromPath("paths./pets.get.description", "\nMock response\n\nWith status code 404")
	doc.SetFromPath("paths./pets.get.responses.404.description", "Response is mocked")
	doc.Set("count", json.Number("3"))
	doc.Set("ratio", 0.5)
	doc.Set("flag", false)
	doc.Set("nothing", nil)
	doc.Set("tags", []any{"a", 1})

	out, err := MarshalYAML(doc)
	require.NoError(t, err)
	assertKeyOrder(t, string(out), []string{"swagger", "info", "paths", "count", "ratio", "flag", "nothing", "tags"})

	var generic map[string]any
	require.NoError(t, yaml.Unmarshal(out, &generic))
	assert.Equal(t, "2.0", generic["swagger"], "version string must stay a string")
	assert.Equal(t, 3, generic["count"])
	assert.Equal(t, false, generic["flag"])

	paths := generic["paths"].(map[string]any)
	get := paths["/pets"].(map[string]any)["get"].(map[string]any)
	assert.Equal(t, "\nMock response\n\nWith status code 404", get["description"])
	responses := get["responses"].(map[string]any)
	assert.Contains(t, responses, "404")
}

func TestMarshalYAMLUnsupportedType(t *testing.T) {
	_, err := MarshalYAML(pathmap.FromPairs("ch", make(chan int)))
	assert.Error(t, err)
}

func TestMarshalSelectsFormat(t *testing.T) {
	doc := pathmap.FromPairs("swagger", "2.0")

	jsonOut, err := Marshal(doc, FormatJSON)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(jsonOut), "{"))

	yamlOut, err := Marshal(doc, FormatYAML)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(yamlOut), "swagger:"))
}
