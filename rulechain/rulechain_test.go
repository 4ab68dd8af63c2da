package rulechain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/gw2oas/document"
	"github.com/erraggy/gw2oas/gwerrors"
	"github.com/erraggy/gw2oas/pathmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, input string) *pathmap.Map {
	t.Helper()
	res, err := document.ParseBytes([]byte(input))
	require.NoError(t, err)
	doc, ok := res.Value.(*pathmap.Map)
	require.True(t, ok)
	return doc
}

func TestLoadDefault(t *testing.T) {
	chain, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, BundledSource, chain.Source())
	assert.Equal(t, SupportedVersion, chain.Version)
	require.NotEmpty(t, chain.Actions)
	for _, action := range chain.Actions {
		assert.Equal(t, OpRemove, action.Operation)
	}
	assert.NotEmpty(t, DefaultBytes())
}

func TestDefaultChainKeepsDocumentedSections(t *testing.T) {
	chain, err := LoadDefault()
	require.NoError(t, err)

	input := parseDoc(t, `{
		"name": "Pets",
		"version": "1.0",
		"description": "Pet store",
		"proxy": {"context_path": "/pets", "endpoints": []},
		"plans": [],
		"paths": {"/pets": [{"methods": ["GET"]}]},
		"visibility": "PUBLIC",
		"deployed_at": 1500000000,
		"flows": []
	}`)

	out, err := chain.Apply(input)
	require.NoError(t, err)

	doc := out.(*pathmap.Map)
	assert.Equal(t, []string{"name", "version", "description", "paths"}, doc.Keys())
	assert.True(t, input.Has("proxy"), "input must not be modified")
}

func TestApplyOperations(t *testing.T) {
	chain, err := Parse([]byte(`
chain: "1.0"
actions:
  - operation: shift
    from: api.name
    to: name
  - operation: default
    path: version
    value: "1.0"
  - operation: default
    path: name
    value: ignored
  - operation: update
    path: paths
    value:
      /health:
        - methods: [GET]
  - operation: update
    path: description
    value: Replaced
  - operation: remove
    path: api
`))
	require.NoError(t, err)

	input := parseDoc(t, `{
		"api": {"name": "Pets", "owner": "team"},
		"description": "old",
		"paths": {"/pets": [{"methods": ["GET"]}]}
	}`)

	result, err := chain.ApplyWithResult(input)
	require.NoError(t, err)

	doc := result.Document.(*pathmap.Map)
	assert.Equal(t, []string{"description", "paths", "name", "version"}, doc.Keys())

	name, _ := doc.Get("name")
	assert.Equal(t, "Pets", name)
	version, _ := doc.Get("version")
	assert.Equal(t, "1.0", version)
	description, _ := doc.Get("description")
	assert.Equal(t, "Replaced", description)

	paths, _ := doc.Get("paths")
	assert.Equal(t, []string{"/pets", "/health"}, paths.(*pathmap.Map).Keys())

	applied := make([]bool, 0, len(result.Changes))
	for _, change := range result.Changes {
		applied = append(applied, change.Applied)
	}
	assert.Equal(t, []bool{true, true, false, true, true, true}, applied)
	assert.Equal(t, 5, result.AppliedCount())
	assert.Equal(t, "name", result.Changes[0].Path)
}

func TestShiftMissingSourceIsNoop(t *testing.T) {
	chain, err := Parse([]byte(`{"chain": "1.0", "actions": [{"operation": "shift", "from": "a.b", "to": "c"}]}`))
	require.NoError(t, err)

	result, err := chain.ApplyWithResult(parseDoc(t, `{"x": 1}`))
	require.NoError(t, err)
	assert.False(t, result.Changes[0].Applied)
	assert.Equal(t, []string{"x"}, result.Document.(*pathmap.Map).Keys())
}

func TestUpdateValuesAreCopied(t *testing.T) {
	chain, err := Parse([]byte(`
chain: "1.0"
actions:
  - operation: update
    path: paths
    value:
      /health:
        - methods: [GET]
`))
	require.NoError(t, err)

	first, err := chain.Apply(parseDoc(t, `{}`))
	require.NoError(t, err)
	first.(*pathmap.Map).SetFromPath("paths./health", "mutated")

	second, err := chain.Apply(parseDoc(t, `{}`))
	require.NoError(t, err)
	health, _ := second.(*pathmap.Map).GetFromPath("paths./health")
	assert.IsType(t, []any{}, health)
}

func TestApplyNonObjectPassesThrough(t *testing.T) {
	chain, err := LoadDefault()
	require.NoError(t, err)

	out, err := chain.Apply([]any{"x"})
	require.NoError(t, err)
	assert.Equal(t, []any{"x"}, out)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		actionIndex int
		message     string
	}{
		{"not yaml", "chain: [", -1, "invalid chain document"},
		{"missing version", "actions: []", -1, "chain version is required"},
		{"wrong version", `chain: "2.0"`, -1, "unsupported chain version"},
		{"missing operation", "chain: '1.0'\nactions:\n  - path: x\n", 0, "operation is required"},
		{"unknown operation", "chain: '1.0'\nactions:\n  - operation: modify-overwrite\n    path: x\n", 0, "unknown operation"},
		{"shift without to", "chain: '1.0'\nactions:\n  - operation: remove\n    path: x\n  - operation: shift\n    from: a\n", 1, "shift requires from and to"},
		{"shift onto itself", "chain: '1.0'\nactions:\n  - operation: shift\n    from: a\n    to: a\n", 0, "same path"},
		{"remove without path", "chain: '1.0'\nactions:\n  - operation: remove\n", 0, "path is required"},
		{"default without value", "chain: '1.0'\nactions:\n  - operation: default\n    path: x\n", 0, "value is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, gwerrors.ErrRuleChain))

			var chainErr *gwerrors.RuleChainError
			require.ErrorAs(t, err, &chainErr)
			assert.Equal(t, tt.actionIndex, chainErr.ActionIndex)
			assert.Contains(t, chainErr.Error(), tt.message)
			assert.Equal(t, "<inline>", chainErr.Source)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chain.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chain: '1.0'\nactions:\n  - operation: remove\n    path: proxy\n"), 0o600))

	chain, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, chain.Source())
	assert.Len(t, chain.Actions, 1)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, gwerrors.ErrRuleChain)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("chain: '9'\n"), 0o600))
	_, err = LoadFile(bad)
	var chainErr *gwerrors.RuleChainError
	require.ErrorAs(t, err, &chainErr)
	assert.Equal(t, bad, chainErr.Source)
}

func TestLoadEmptyPathUsesBundled(t *testing.T) {
	chain, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BundledSource, chain.Source())
}

func TestApplyValidatesHandBuiltChains(t *testing.T) {
	chain := &Chain{Version: SupportedVersion, Actions: []Action{{Operation: OpDefault, Path: "x"}}}
	_, err := chain.Apply(pathmap.New())
	assert.ErrorIs(t, err, gwerrors.ErrRuleChain)
}
