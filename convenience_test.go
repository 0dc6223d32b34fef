// FILE: lixenwraith/envproxy/convenience_test.go
package envproxy

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newDumpClass(store Store) *Class {
	return NewClassBuilder("dump").
		WithStore(store).
		WithPrefix("APP").
		Field("port", NewField().WithHint(HintInt).WithDefault(8080)).
		Field("name", NewField().WithHint(HintStr)).
		Field("hosts", NewField().WithHint(HintList).WithDefault([]string{"a", "b"})).
		Field("extra", NewField().WithHint(HintJSON)).
		Field("absent", NewField().WithHint(HintStr).AsOptional()).
		MustBuild()
}

var dumpStore = map[string]string{
	"APP_NAME":  "svc",
	"APP_EXTRA": `{"k": "v"}`,
}

// TestDump tests writing resolved values in every format
func TestDump(t *testing.T) {
	c := newDumpClass(NewMapStore(dumpStore))

	t.Run("TOML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, c.Dump(&buf, FormatTOML))

		var decoded map[string]any
		_, err := toml.Decode(buf.String(), &decoded)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"port":  int64(8080),
			"name":  "svc",
			"hosts": []any{"a", "b"},
			"extra": map[string]any{"k": "v"},
		}, decoded)
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, c.Dump(&buf, FormatYAML))

		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, map[string]any{
			"port":  8080,
			"name":  "svc",
			"hosts": []any{"a", "b"},
			"extra": map[string]any{"k": "v"},
		}, decoded)
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, c.Dump(&buf, FormatJSON))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, 8080.0, decoded["port"])
		assert.NotContains(t, decoded, "absent")
	})

	t.Run("Env", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, c.Dump(&buf, FormatEnv))
		assert.Equal(t, "APP_EXTRA={\"k\":\"v\"}\n"+
			"APP_HOSTS=a,b\n"+
			"APP_NAME=svc\n"+
			"APP_PORT=8080\n", buf.String())
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		var buf bytes.Buffer
		err := c.Dump(&buf, "xml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported dump format "xml"`)
	})

	t.Run("ResolutionFailure", func(t *testing.T) {
		var buf bytes.Buffer
		err := newDumpClass(NewMapStore(nil)).Dump(&buf, FormatTOML)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Zero(t, buf.Len())
	})
}

// TestDumpFile tests format detection by extension
func TestDumpFile(t *testing.T) {
	dir := t.TempDir()
	c := newDumpClass(NewMapStore(dumpStore))

	path := filepath.Join(dir, "resolved.yml")
	require.NoError(t, c.DumpFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: svc")

	path = filepath.Join(dir, "resolved.env")
	require.NoError(t, c.DumpFile(path))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "APP_PORT=8080\n")

	err = c.DumpFile(filepath.Join(dir, "resolved.txt"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unable to determine dump format")
}
