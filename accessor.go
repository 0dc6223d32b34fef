// FILE: lixenwraith/envproxy/accessor.go
package envproxy

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Boolean vocabulary. Matching is case-insensitive and on the whole word.
var (
	boolTruthy = []string{"yes", "true", "1", "on", "enable", "enabled", "allow"}
	boolFalsy  = []string{"no", "false", "0", "off", "disable", "disabled", "deny", "disallow"}
)

// Default list settings used by GetList and by list-typed fields.
const (
	DefaultListSeparator = ","
	DefaultListStrip     = true
)

// AccessorOptions configures key derivation and the backing store of an Accessor.
type AccessorOptions struct {
	// Prefix is joined to every key with "_". Empty means no prefix.
	Prefix string

	// Uppercase converts derived keys to upper case.
	Uppercase bool

	// Underscore replaces '-' with '_' in derived keys.
	Underscore bool

	// Store is the key/value store read and written by the accessor.
	// Nil means the process environment.
	Store Store
}

// DefaultAccessorOptions returns the standard accessor options:
// no prefix, uppercase keys, dashes turned into underscores, process environment.
func DefaultAccessorOptions() AccessorOptions {
	return AccessorOptions{
		Uppercase:  true,
		Underscore: true,
		Store:      Environ{},
	}
}

// Accessor converts raw store values into typed values.
// It holds no mutable state and is safe for concurrent use.
type Accessor struct {
	opts AccessorOptions
}

// NewAccessor returns an Accessor with default options and the given prefix.
func NewAccessor(prefix string) *Accessor {
	opts := DefaultAccessorOptions()
	opts.Prefix = prefix
	return NewAccessorWithOptions(opts)
}

// NewAccessorWithOptions returns an Accessor using opts.
func NewAccessorWithOptions(opts AccessorOptions) *Accessor {
	if opts.Store == nil {
		opts.Store = Environ{}
	}
	return &Accessor{opts: opts}
}

// Prefix returns the configured key prefix.
func (a *Accessor) Prefix() string { return a.opts.Prefix }

// Options returns a copy of the accessor configuration.
func (a *Accessor) Options() AccessorOptions { return a.opts }

// Key returns the physical store key for the logical key.
func (a *Accessor) Key(key string) string {
	return DeriveKey(key, a.opts.Prefix, a.opts.Uppercase, a.opts.Underscore)
}

// raw looks up key, treating an empty value the same as a missing one.
func (a *Accessor) raw(key string) (string, bool) {
	physical := a.Key(key)
	getLogger().WithFields(log.Fields{"key": physical}).Debug("Reading key from store")
	value, ok := a.opts.Store.Lookup(physical)
	if !ok || value == "" {
		getLogger().WithFields(log.Fields{"key": physical}).Debug("No value for key in store")
		return "", false
	}
	return value, true
}

// resolveDefault returns def, or ErrNotFound when def is Unset.
func (a *Accessor) resolveDefault(key string, def any) (any, error) {
	if IsUnset(def) {
		return nil, fmt.Errorf("%w: no value found for key %q", ErrNotFound, key)
	}
	getLogger().WithFields(log.Fields{"key": key}).Debug("Using default value")
	return def, nil
}

type converter func(key, raw string) (any, error)

func (a *Accessor) read(key string, def any, conv converter) (any, error) {
	raw, ok := a.raw(key)
	if !ok {
		return a.resolveDefault(key, def)
	}
	return conv(key, raw)
}

// Get reads key using the getter selected by hint. def may be Unset (the
// key is required), nil, or any value returned as-is when the key is absent.
func (a *Accessor) Get(hint TypeHint, key string, def any) (any, error) {
	conv, ok := converters[hint]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported type hint %q", ErrConfiguration, hint)
	}
	return a.read(key, def, conv)
}

// GetAny returns the raw value of key.
func (a *Accessor) GetAny(key string, def ...any) (any, error) {
	return a.read(key, firstOrUnset(def), convertString)
}

// GetString returns the value of key as a string.
func (a *Accessor) GetString(key string, def ...string) (string, error) {
	return readTyped[string](a, key, def, convertString)
}

// GetBool returns the value of key as a bool.
//
// Truthy words: yes, true, 1, on, enable, enabled, allow.
// Falsy words: no, false, 0, off, disable, disabled, deny, disallow.
// Any other value fails with ErrInvalidValue.
func (a *Accessor) GetBool(key string, def ...bool) (bool, error) {
	return readTyped[bool](a, key, def, convertBool)
}

// GetInt returns the value of key parsed as a base-10 integer.
func (a *Accessor) GetInt(key string, def ...int) (int, error) {
	return readTyped[int](a, key, def, convertInt)
}

// GetFloat returns the value of key parsed as a float64.
func (a *Accessor) GetFloat(key string, def ...float64) (float64, error) {
	return readTyped[float64](a, key, def, convertFloat)
}

// GetList splits the value of key on commas and trims every element.
func (a *Accessor) GetList(key string, def ...[]string) ([]string, error) {
	return a.GetListSep(key, DefaultListSeparator, DefaultListStrip, def...)
}

// GetListSep splits the value of key on sep. With strip, leading and
// trailing whitespace is removed from every element; inner whitespace is kept.
func (a *Accessor) GetListSep(key, sep string, strip bool, def ...[]string) ([]string, error) {
	return readTyped[[]string](a, key, def, listConverter(sep, strip))
}

// GetJSON parses the value of key as JSON. Objects decode to map[string]any,
// arrays to []any and numbers to float64.
func (a *Accessor) GetJSON(key string, def ...any) (any, error) {
	return a.read(key, firstOrUnset(def), convertJSON)
}

// Set stringifies value and stores it under the physical key for key.
func (a *Accessor) Set(key string, value any) error {
	physical := a.Key(key)
	getLogger().WithFields(log.Fields{"key": physical}).Debug("Setting key in store")
	if err := a.opts.Store.Store(physical, stringify(value)); err != nil {
		return fmt.Errorf("failed to set %q: %w", physical, err)
	}
	return nil
}

// readTyped reads key and asserts the result to T. A nil default passed
// through the untyped path never reaches here, so the assertion holds.
func readTyped[T any](a *Accessor, key string, def []T, conv converter) (T, error) {
	var zero T
	v, err := a.read(key, firstOrUnset(def), conv)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

func firstOrUnset[T any](def []T) any {
	if len(def) == 0 {
		return Unset
	}
	return def[0]
}

var converters = map[TypeHint]converter{
	HintAny:   convertString,
	HintBool:  convertBool,
	HintFloat: convertFloat,
	HintInt:   convertInt,
	HintStr:   convertString,
	HintList:  listConverter(DefaultListSeparator, DefaultListStrip),
	HintJSON:  convertJSON,
}

func convertString(_, raw string) (any, error) {
	return raw, nil
}

func convertBool(key, raw string) (any, error) {
	lowered := strings.ToLower(raw)
	for _, word := range boolTruthy {
		if lowered == word {
			return true, nil
		}
	}
	for _, word := range boolFalsy {
		if lowered == word {
			return false, nil
		}
	}
	return nil, fmt.Errorf("%w: key %q is present in the environment, but its value %q is neither truthy, nor falsy",
		ErrInvalidValue, key, raw)
}

func convertInt(key, raw string) (any, error) {
	i, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: value for key %q is not a valid integer: %w", ErrInvalidValue, key, err)
	}
	return i, nil
}

func convertFloat(key, raw string) (any, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: value for key %q is not a valid float: %w", ErrInvalidValue, key, err)
	}
	return f, nil
}

func listConverter(sep string, strip bool) converter {
	return func(_, raw string) (any, error) {
		values := strings.Split(raw, sep)
		if strip {
			for i, v := range values {
				values[i] = strings.TrimSpace(v)
			}
		}
		return values, nil
	}
}

func convertJSON(key, raw string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("%w: value for key %q is not valid JSON: %w", ErrInvalidValue, key, err)
	}
	return v, nil
}
