// FILE: lixenwraith/envproxy/store_test.go
package envproxy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMapStore tests the in-memory store
func TestMapStore(t *testing.T) {
	seed := map[string]string{"B": "2", "A": "1"}
	s := NewMapStore(seed)
	seed["C"] = "3"

	assert.Equal(t, []string{"A", "B"}, s.Keys())

	require.NoError(t, s.Store("C", "3"))
	v, ok := s.Lookup("C")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	require.NoError(t, s.Delete("C"))
	require.NoError(t, s.Delete("missing"))
	_, ok = s.Lookup("C")
	assert.False(t, ok)

	var zero MapStore
	require.NoError(t, zero.Store("K", "V"))
	assert.Equal(t, []string{"K"}, zero.Keys())
}

// TestApply tests scoped mutation and restoration
func TestApply(t *testing.T) {
	t.Run("RestoresPriorState", func(t *testing.T) {
		s := NewMapStore(map[string]string{"KEEP": "old", "UNTOUCHED": "same"})

		restore, err := Apply(s, map[string]string{"KEEP": "new", "ADDED": "x"})
		require.NoError(t, err)
		v, _ := s.Lookup("KEEP")
		assert.Equal(t, "new", v)
		v, _ = s.Lookup("ADDED")
		assert.Equal(t, "x", v)

		require.NoError(t, restore())
		v, _ = s.Lookup("KEEP")
		assert.Equal(t, "old", v)
		_, ok := s.Lookup("ADDED")
		assert.False(t, ok)
		assert.Equal(t, []string{"KEEP", "UNTOUCHED"}, s.Keys())
	})

	t.Run("RestoreOnce", func(t *testing.T) {
		s := NewMapStore(nil)
		restore, err := Apply(s, map[string]string{"K": "v"})
		require.NoError(t, err)
		require.NoError(t, restore())

		require.NoError(t, s.Store("K", "later"))
		require.NoError(t, restore())
		v, _ := s.Lookup("K")
		assert.Equal(t, "later", v)
	})

	t.Run("NestedScopes", func(t *testing.T) {
		s := NewMapStore(map[string]string{"K": "original"})

		outer, err := Apply(s, map[string]string{"K": "outer"})
		require.NoError(t, err)
		inner, err := Apply(s, map[string]string{"K": "inner", "NEW": "1"})
		require.NoError(t, err)

		v, _ := s.Lookup("K")
		assert.Equal(t, "inner", v)

		require.NoError(t, inner())
		v, _ = s.Lookup("K")
		assert.Equal(t, "outer", v)
		_, ok := s.Lookup("NEW")
		assert.False(t, ok)

		require.NoError(t, outer())
		v, _ = s.Lookup("K")
		assert.Equal(t, "original", v)
	})

	t.Run("ProcessEnvironment", func(t *testing.T) {
		const key = "ENVPROXY_APPLY_TEST"
		os.Unsetenv(key)

		err := WithEnv(nil, map[string]string{key: "scoped"}, func() error {
			assert.Equal(t, "scoped", os.Getenv(key))
			return nil
		})
		require.NoError(t, err)

		_, ok := os.LookupEnv(key)
		assert.False(t, ok)
	})
}

// TestWithEnv tests restoration on every exit path
func TestWithEnv(t *testing.T) {
	t.Run("ErrorPropagates", func(t *testing.T) {
		s := NewMapStore(nil)
		sentinelErr := errors.New("boom")

		err := WithEnv(s, map[string]string{"K": "v"}, func() error { return sentinelErr })
		assert.ErrorIs(t, err, sentinelErr)
		assert.Empty(t, s.Keys())
	})

	t.Run("Panic", func(t *testing.T) {
		s := NewMapStore(map[string]string{"K": "before"})

		assert.Panics(t, func() {
			_ = WithEnv(s, map[string]string{"K": "during"}, func() error {
				panic("inside scope")
			})
		})

		v, _ := s.Lookup("K")
		assert.Equal(t, "before", v)
	})

	t.Run("RequiredFieldLifecycle", func(t *testing.T) {
		s := NewMapStore(nil)
		c := NewClassBuilder("scoped").
			WithStore(s).
			WithPrefix("SCOPED").
			Field("token", NewField().WithHint(HintStr)).
			MustBuild()

		_, err := c.Get("token")
		assert.ErrorIs(t, err, ErrNotFound)

		err = WithEnv(s, map[string]string{"SCOPED_TOKEN": "secret"}, func() error {
			v, err := c.Get("token")
			require.NoError(t, err)
			assert.Equal(t, "secret", v)
			return nil
		})
		require.NoError(t, err)

		_, err = c.Get("token")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// TestLoadDotenv tests reading dotenv files into a store
func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	require.NoError(t, os.WriteFile(first, []byte("# comment\nAPP_PORT=8080\nAPP_HOST=example.com\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("APP_PORT=9090\nAPP_DEBUG=yes\n"), 0644))

	s := NewMapStore(map[string]string{"APP_HOST": "preset"})
	require.NoError(t, LoadDotenv(s, first, second))

	for key, expected := range map[string]string{
		"APP_PORT":  "8080",
		"APP_HOST":  "preset",
		"APP_DEBUG": "yes",
	} {
		v, ok := s.Lookup(key)
		assert.True(t, ok, key)
		assert.Equal(t, expected, v, key)
	}

	err := LoadDotenv(s, filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read dotenv file")
}
