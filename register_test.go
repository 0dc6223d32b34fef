// FILE: lixenwraith/envproxy/register_test.go
package envproxy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerConfig struct {
	Timeout   float64        `default:"100" description:"Service timeout."`
	Services  []string       `default:"rabbitmq, redis"`
	Backoff   int            `env:"retry_backoff"`
	Debug     *bool          `mutable:"true"`
	Extra     map[string]any `hint:"json" optional:"true"`
	APIKey    string         `alias:"api-key" prefix:"secret"`
	Interval  time.Duration  `hint:"str" default:"5s"`
	Ignored   string         `env:"-"`
	unexposed string
}

// TestDeclareStruct tests declaring class fields from struct tags
func TestDeclareStruct(t *testing.T) {
	store := NewMapStore(nil)
	c, err := DeclareStruct(NewClassBuilder("registered").WithStore(store), &registerConfig{}).Build()
	require.NoError(t, err)

	var names []string
	for _, f := range c.Fields() {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"timeout", "services", "retry_backoff", "debug", "extra", "api_key", "interval"}, names)

	t.Run("Defaults", func(t *testing.T) {
		assert.Equal(t, 100.0, c.index["timeout"].Default())
		assert.Equal(t, []string{"rabbitmq", "redis"}, c.index["services"].Default())
		assert.True(t, c.index["retry_backoff"].Required())
		assert.Nil(t, c.index["debug"].Default())
		assert.Nil(t, c.index["extra"].Default())
		assert.Equal(t, "5s", c.index["interval"].Default())
	})

	t.Run("Metadata", func(t *testing.T) {
		assert.Equal(t, "Service timeout.", c.index["timeout"].Description())
		assert.Equal(t, TypeOf[float64](), c.index["timeout"].Annotation())
		assert.Equal(t, HintJSON, c.index["extra"].Hint())
		assert.True(t, c.index["debug"].Mutable())
		assert.False(t, c.index["timeout"].Mutable())
		assert.Equal(t, "SECRET_API_KEY", c.index["api_key"].EnvKey())
	})

	t.Run("Resolve", func(t *testing.T) {
		err := WithEnv(store, map[string]string{
			"RETRY_BACKOFF":  "3",
			"DEBUG":          "on",
			"SECRET_API_KEY": "k",
		}, func() error {
			backoff, err := c.Int("retry_backoff")
			require.NoError(t, err)
			assert.Equal(t, 3, backoff)

			debug, err := c.Bool("debug")
			require.NoError(t, err)
			assert.True(t, debug)

			key, err := c.String("api_key")
			require.NoError(t, err)
			assert.Equal(t, "k", key)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("ValueReceiver", func(t *testing.T) {
		c, err := DeclareStruct(NewClassBuilder("value"), registerConfig{}).Build()
		require.NoError(t, err)
		assert.Len(t, c.Fields(), 7)
	})
}

// TestDeclareStructErrors tests invalid prototypes and tags
func TestDeclareStructErrors(t *testing.T) {
	tests := []struct {
		name  string
		proto any
		match string
	}{
		{"NilPointer", (*registerConfig)(nil), "non-nil struct pointer"},
		{"NotStruct", 42, "requires a struct"},
		{"BadHint", &struct {
			A string `hint:"nope"`
		}{}, `unsupported type hint "nope"`},
		{"BadBool", &struct {
			A string `strict:"maybe"`
		}{}, `invalid strict tag "maybe"`},
		{"BadDefault", &struct {
			Port int `default:"eighty"`
		}{}, `default "eighty" does not match type int`},
		{"Reserved", &struct {
			Prefix string
		}{}, `field name "prefix" is reserved`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeclareStruct(NewClassBuilder("broken"), tt.proto).Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.Contains(t, err.Error(), tt.match)
		})
	}
}

// TestToSnakeCase tests Go identifier conversion
func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Timeout":     "timeout",
		"MaxConns":    "max_conns",
		"APIKey":      "api_key",
		"HTTPServer2": "http_server2",
		"UserID":      "user_id",
		"V2Endpoint":  "v2_endpoint",
		"already":     "already",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, toSnakeCase(in), in)
	}
}

// TestStringify tests the textual form written to the store
func TestStringify(t *testing.T) {
	assert.Equal(t, "", stringify(nil))
	assert.Equal(t, "text", stringify("text"))
	assert.Equal(t, "a,b", stringify([]string{"a", "b"}))
	assert.Equal(t, "1,x", stringify([]any{1, "x"}))
	assert.Equal(t, "3.14", stringify(3.14))
	assert.Equal(t, "100", stringify(100.0))
	assert.Equal(t, "0.5", stringify(float32(0.5)))
	assert.Equal(t, "true", stringify(true))
	assert.Equal(t, "1m30s", stringify(90*time.Second))
	assert.Equal(t, "<unset>", stringify(Unset))
}
