// FILE: lixenwraith/envproxy/cmd/envproxy/main_test.go
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/envproxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliSchema = `
name = "cli"
prefix = "CLITEST"

[[fields]]
name = "port"
hint = "int"
description = "Listen port."

[[fields]]
name = "ratio"
hint = "float"
default = 3.14
optional = true
`

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { envproxy.SetLogger(nil) })

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.toml")
	require.NoError(t, os.WriteFile(path, []byte(cliSchema), 0644))
	return path
}

// TestGetCommand tests reading single variables
func TestGetCommand(t *testing.T) {
	t.Setenv("CLITEST_PORT", "8080")
	t.Setenv("CLITEST_HOSTS", "a, b")

	t.Run("Typed", func(t *testing.T) {
		out, _, err := run(t, "get", "port", "--prefix", "clitest", "--type", "int")
		require.NoError(t, err)
		assert.Equal(t, "8080\n", out)
	})

	t.Run("List", func(t *testing.T) {
		out, _, err := run(t, "get", "hosts", "-p", "clitest", "-t", "list")
		require.NoError(t, err)
		assert.Equal(t, "[a b]\n", out)
	})

	t.Run("Default", func(t *testing.T) {
		out, _, err := run(t, "get", "absent-key", "-p", "clitest", "-d", "fallback")
		require.NoError(t, err)
		assert.Equal(t, "fallback\n", out)
	})

	t.Run("Missing", func(t *testing.T) {
		_, _, err := run(t, "get", "absent-key", "-p", "clitest")
		assert.ErrorIs(t, err, envproxy.ErrNotFound)
	})

	t.Run("BadType", func(t *testing.T) {
		_, _, err := run(t, "get", "port", "-t", "decimal")
		assert.ErrorIs(t, err, envproxy.ErrConfiguration)
	})

	t.Run("Verbose", func(t *testing.T) {
		_, stderr, err := run(t, "--verbose", "get", "port", "-p", "clitest")
		require.NoError(t, err)
		assert.Contains(t, stderr, "CLITEST_PORT")
	})
}

// TestExportCommand tests sample file generation from a schema
func TestExportCommand(t *testing.T) {
	schema := writeSchema(t)
	expected := "# port (int) [required]\n" +
		"# Listen port.\n" +
		"CLITEST_PORT=\n" +
		"\n" +
		"# ratio (float) [optional]\n" +
		"CLITEST_RATIO=3.14\n"

	t.Run("Stdout", func(t *testing.T) {
		out, _, err := run(t, "export", "--schema", schema, "--sort")
		require.NoError(t, err)
		assert.Equal(t, expected, out)
	})

	t.Run("File", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "sample.env")
		_, _, err := run(t, "export", "-s", schema, "-o", target)
		require.NoError(t, err)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, expected, string(data))
	})

	t.Run("NoDefaults", func(t *testing.T) {
		out, _, err := run(t, "export", "-s", schema, "--no-defaults")
		require.NoError(t, err)
		assert.Contains(t, out, "CLITEST_RATIO=\n")
	})

	t.Run("DiscoveredSchema", func(t *testing.T) {
		t.Setenv("ENVPROXY_SCHEMA", schema)
		out, _, err := run(t, "export")
		require.NoError(t, err)
		assert.Equal(t, expected, out)
	})
}

// TestDumpCommand tests resolving a schema against dotenv files
func TestDumpCommand(t *testing.T) {
	schema := writeSchema(t)
	envFile := filepath.Join(t.TempDir(), "values.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CLITEST_PORT=9000\n"), 0644))

	os.Unsetenv("CLITEST_PORT")
	t.Cleanup(func() { os.Unsetenv("CLITEST_PORT") })

	out, _, err := run(t, "dump", "-s", schema, "-f", "env", "-e", envFile)
	require.NoError(t, err)
	assert.Equal(t, "CLITEST_PORT=9000\nCLITEST_RATIO=3.14\n", out)
}
