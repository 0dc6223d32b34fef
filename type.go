// FILE: lixenwraith/envproxy/type.go
package envproxy

import (
	"fmt"
	"reflect"
	"strconv"
)

// Value resolves the named field and asserts the result to T.
// An optional field with no value yields the zero T and no error.
func Value[T any](c *Class, name string) (T, error) {
	var zero T
	v, err := c.Get(name)
	if err != nil || v == nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: field %q holds %T, not %T", ErrInvalidValue, name, v, zero)
	}
	return typed, nil
}

// String resolves the named field as a string.
// Attempts conversion from common types if the value isn't already a string.
func (c *Class) String(name string) (string, error) {
	v, err := c.Get(name)
	if err != nil || v == nil {
		return "", err
	}
	return stringify(v), nil
}

// Int resolves the named field as an int.
// Attempts conversion from numeric types and parsable strings.
func (c *Class) Int(name string) (int, error) {
	v, err := c.Get(name)
	if err != nil || v == nil {
		return 0, err
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != float64(int(f)) {
			return 0, fmt.Errorf("%w: field %q holds non-integral %v", ErrInvalidValue, name, f)
		}
		return int(f), nil
	case reflect.String:
		i, err := strconv.Atoi(rv.String())
		if err != nil {
			return 0, fmt.Errorf("%w: cannot convert %q of field %q to int: %w", ErrInvalidValue, rv.String(), name, err)
		}
		return i, nil
	}
	return 0, fmt.Errorf("%w: cannot convert %T of field %q to int", ErrInvalidValue, v, name)
}

// Float resolves the named field as a float64.
func (c *Class) Float(name string) (float64, error) {
	v, err := c.Get(name)
	if err != nil || v == nil {
		return 0, err
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.String:
		f, err := strconv.ParseFloat(rv.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: cannot convert %q of field %q to float64: %w", ErrInvalidValue, rv.String(), name, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: cannot convert %T of field %q to float64", ErrInvalidValue, v, name)
}

// Bool resolves the named field as a bool. Strings are matched against the
// boolean vocabulary of GetBool.
func (c *Class) Bool(name string) (bool, error) {
	v, err := c.Get(name)
	if err != nil || v == nil {
		return false, err
	}

	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := convertBool(name, b)
		if err != nil {
			return false, err
		}
		return parsed.(bool), nil
	}
	return false, fmt.Errorf("%w: cannot convert %T of field %q to bool", ErrInvalidValue, v, name)
}

// List resolves the named field as a list of strings. JSON arrays are
// accepted, their elements stringified.
func (c *Class) List(name string) ([]string, error) {
	v, err := c.Get(name)
	if err != nil || v == nil {
		return nil, err
	}

	switch l := v.(type) {
	case []string:
		return l, nil
	case []any:
		out := make([]string, len(l))
		for i, item := range l {
			out[i] = stringify(item)
		}
		return out, nil
	case string:
		conv, _ := listConverter(DefaultListSeparator, DefaultListStrip)(name, l)
		return conv.([]string), nil
	}
	return nil, fmt.Errorf("%w: cannot convert %T of field %q to a list", ErrInvalidValue, v, name)
}
