// FILE: lixenwraith/envproxy/hint.go
package envproxy

import (
	"fmt"
	"reflect"

	log "github.com/sirupsen/logrus"
)

// TypeHint selects the accessor getter used for a field.
type TypeHint string

// Supported type hints.
const (
	HintAny   TypeHint = "any"
	HintBool  TypeHint = "bool"
	HintFloat TypeHint = "float"
	HintInt   TypeHint = "int"
	HintStr   TypeHint = "str"
	HintList  TypeHint = "list"
	HintJSON  TypeHint = "json"
)

// Valid reports whether h belongs to the supported vocabulary.
func (h TypeHint) Valid() bool {
	_, ok := converters[h]
	return ok
}

// ParseTypeHint validates s as a type hint.
func ParseTypeHint(s string) (TypeHint, error) {
	h := TypeHint(s)
	if !h.Valid() {
		return "", fmt.Errorf("%w: unsupported type hint %q", ErrConfiguration, s)
	}
	return h, nil
}

// TypeOf returns the reflect.Type of T, for use as a field annotation.
// Pointer types mark the field optional:
//
//	envproxy.NewField().WithAnnotation(envproxy.TypeOf[*float64]())
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// simpleHint maps a predeclared scalar type or the empty interface to its hint.
// Named types such as time.Duration are deliberately not matched.
func simpleHint(t reflect.Type) (TypeHint, bool) {
	if t.Kind() == reflect.Interface {
		return HintAny, t.NumMethod() == 0
	}
	if t.PkgPath() != "" || t.Name() == "" {
		return "", false
	}
	switch t.Kind() {
	case reflect.Bool:
		return HintBool, true
	case reflect.Float32, reflect.Float64:
		return HintFloat, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return HintInt, true
	case reflect.String:
		return HintStr, true
	}
	return "", false
}

// simplifyAnnotation reduces an annotation to the hint of the getter that can
// serve it. Lists of anything but strings are accepted with a warning and are
// still read as lists of strings. ok is false when t is too complicated.
func simplifyAnnotation(t reflect.Type) (hint TypeHint, ok bool) {
	if t == nil {
		return "", false
	}
	if h, ok := simpleHint(t); ok {
		return h, true
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		if t.Name() == "" {
			if elem := t.Elem(); elem.Kind() != reflect.String || elem.PkgPath() != "" {
				getLogger().WithFields(log.Fields{"annotation": t.String()}).
					Warnf("Annotation %s is a list of %s, only string is supported.", t, elem)
			}
			return HintList, true
		}
	case reflect.Pointer:
		elem := t.Elem()
		if h, ok := simpleHint(elem); ok {
			return h, true
		}
		if (elem.Kind() == reflect.Slice || elem.Kind() == reflect.Array) && elem.Name() == "" {
			return simplifyAnnotation(elem)
		}
	}

	getLogger().WithFields(log.Fields{"annotation": t.String()}).
		Warnf("Annotation %s is too complicated to parse.", t)
	return "", false
}

// isOptionalAnnotation reports whether t is a nullable wrapper, i.e. a
// pointer, around a type simplifyAnnotation can serve.
func isOptionalAnnotation(t reflect.Type) bool {
	if t == nil || t.Kind() != reflect.Pointer {
		return false
	}
	elem := t.Elem()
	if _, ok := simpleHint(elem); ok {
		return true
	}
	return (elem.Kind() == reflect.Slice || elem.Kind() == reflect.Array) && elem.Name() == ""
}
