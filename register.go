// FILE: lixenwraith/envproxy/register.go
package envproxy

import (
	"fmt"
	"reflect"
	"strconv"
)

// Struct tags understood by DeclareStruct.
const (
	tagEnv         = "env"         // field name, "-" skips the field
	tagAlias       = "alias"       // logical key override
	tagDescription = "description" // documentation
	tagDefault     = "default"     // default, converted like a stored value
	tagHint        = "hint"        // explicit type hint
	tagPrefix      = "prefix"      // per-field prefix
	tagStrict      = "strict"      // "true"/"false"
	tagMutable     = "mutable"     // "true"/"false"
	tagOptional    = "optional"    // "true" makes the field default to nil
)

// DeclareStruct declares one field on b for every exported field of proto,
// a struct or struct pointer. The Go type of each struct field becomes the
// field annotation; tags supply the rest:
//
//	type App struct {
//	    Timeout  float64  `env:"timeout" default:"100" description:"Service timeout."`
//	    Services []string `default:"rabbitmq,redis"`
//	    Extra    map[string]any `hint:"json" optional:"true"`
//	}
//
// Without an env tag the field name is converted to snake_case.
// Nested structs are not descended into; they need a hint like any other
// complicated type.
func DeclareStruct(b *ClassBuilder, proto any) *ClassBuilder {
	v := reflect.ValueOf(proto)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			b.errs = append(b.errs, fmt.Errorf("%w: DeclareStruct requires a non-nil struct pointer or value", ErrConfiguration))
			return b
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		b.errs = append(b.errs, fmt.Errorf("%w: DeclareStruct requires a struct or struct pointer, got %T", ErrConfiguration, proto))
		return b
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := sf.Tag.Get(tagEnv)
		if name == "-" {
			continue
		}
		if name == "" {
			name = toSnakeCase(sf.Name)
		}

		f, err := fieldFromStructField(sf)
		if err != nil {
			b.errs = append(b.errs, fmt.Errorf("struct field %s (name %s): %w", sf.Name, name, err))
			continue
		}
		b.Field(name, f)
	}
	return b
}

func fieldFromStructField(sf reflect.StructField) (*Field, error) {
	f := NewField().
		WithAnnotation(sf.Type).
		WithAlias(sf.Tag.Get(tagAlias)).
		WithDescription(sf.Tag.Get(tagDescription))

	if hint, ok := sf.Tag.Lookup(tagHint); ok {
		h, err := ParseTypeHint(hint)
		if err != nil {
			return nil, err
		}
		f.WithHint(h)
	}
	if prefix, ok := sf.Tag.Lookup(tagPrefix); ok {
		f.WithPrefix(prefix)
	}

	for tag, apply := range map[string]func(bool){
		tagStrict:  func(v bool) { f.WithStrict(v) },
		tagMutable: func(v bool) { f.WithMutable(v) },
		tagOptional: func(v bool) {
			if v {
				f.AsOptional()
			}
		},
	} {
		raw, ok := sf.Tag.Lookup(tag)
		if !ok {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid %s tag %q: %w", ErrConfiguration, tag, raw, err)
		}
		apply(v)
	}

	if raw, ok := sf.Tag.Lookup(tagDefault); ok {
		def, err := convertDefault(f, raw)
		if err != nil {
			return nil, err
		}
		f.WithDefault(def)
	}
	return f, nil
}

// convertDefault converts a textual default with the converter of the hint
// the field will be read with. Fields without a usable hint keep the text.
func convertDefault(f *Field, raw string) (any, error) {
	hint := f.hint
	if hint == "" {
		h, ok := f.SimplifiedAnnotation()
		if !ok {
			return raw, nil
		}
		hint = h
	}
	v, err := converters[hint]("default", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: default %q does not match type %s: %w", ErrConfiguration, raw, hint, err)
	}
	return v, nil
}
