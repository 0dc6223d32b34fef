// FILE: lixenwraith/envproxy/field.go
package envproxy

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Reserved names hold class-wide settings and cannot be declared as fields.
// Names starting with "_" are reserved as well.
var reservedNames = []string{"accessor", "prefix", "strict", "mutable"}

// Field declares one configuration item of a Class.
//
// A Field is configured with the With* methods and then declared on exactly
// one Class through ClassBuilder.Field. Configure it fully before declaring it.
type Field struct {
	alias       string
	description string
	def         any
	hint        TypeHint
	annotation  reflect.Type
	optional    bool

	strict   *bool
	mutable  *bool
	prefix   *string
	accessor *Accessor

	mu    sync.Mutex
	name  string
	owner *Class

	// Resolution memo, filled on first use.
	resolvedAccessor *Accessor
	simplified       *TypeHint
	simplifiedDone   bool
	getter           TypeHint
}

// NewField returns a required, untyped field with no overrides.
func NewField() *Field {
	return &Field{def: Unset}
}

// WithAlias sets the logical name used for key derivation instead of the field name.
func (f *Field) WithAlias(alias string) *Field {
	f.alias = alias
	return f
}

// WithDescription sets the free-text documentation. It may span several lines.
func (f *Field) WithDescription(description string) *Field {
	f.description = description
	return f
}

// WithDefault sets the value returned when the key is absent. nil is a valid default.
func (f *Field) WithDefault(def any) *Field {
	f.def = def
	return f
}

// WithHint sets an explicit type hint, which takes precedence over the annotation.
func (f *Field) WithHint(hint TypeHint) *Field {
	f.hint = hint
	return f
}

// WithAnnotation sets the static type the field is read as. See TypeOf.
func (f *Field) WithAnnotation(t reflect.Type) *Field {
	f.annotation = t
	return f
}

// AsOptional makes the field default to nil when no default is declared.
func (f *Field) AsOptional() *Field {
	f.optional = true
	return f
}

// WithStrict overrides the owner's strict mode for this field.
func (f *Field) WithStrict(strict bool) *Field {
	f.strict = &strict
	return f
}

// WithMutable overrides the owner's mutability for this field.
func (f *Field) WithMutable(mutable bool) *Field {
	f.mutable = &mutable
	return f
}

// WithPrefix reads this field through an accessor using prefix.
func (f *Field) WithPrefix(prefix string) *Field {
	f.prefix = &prefix
	return f
}

// WithAccessor reads this field through a.
func (f *Field) WithAccessor(a *Accessor) *Field {
	f.accessor = a
	return f
}

// bind attaches the field to its owner. It happens once, when the class is built.
func (f *Field) bind(owner *Class, name string) error {
	if err := validateFieldName(name); err != nil {
		return err
	}
	if f.hint != "" && !f.hint.Valid() {
		return fmt.Errorf("%w: unsupported type hint %q on field %q", ErrConfiguration, f.hint, name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.owner != nil {
		return fmt.Errorf("%w: field %q is already declared as %q on %q", ErrConfiguration, name, f.name, f.owner.name)
	}
	f.owner = owner
	f.name = name
	return nil
}

func validateFieldName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: field name cannot be empty", ErrConfiguration)
	}
	for _, reserved := range reservedNames {
		if name == reserved {
			return fmt.Errorf("%w: field name %q is reserved for internal use", ErrConfiguration, name)
		}
	}
	if strings.HasPrefix(name, "_") {
		return fmt.Errorf("%w: field name %q is reserved for internal use", ErrConfiguration, name)
	}
	return nil
}

// Name returns the declared field name, or "" before the field is declared.
func (f *Field) Name() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.name
}

// Owner returns the class the field is declared on, or nil.
func (f *Field) Owner() *Class {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.owner
}

func (f *Field) checkBound() error {
	if f.Owner() == nil {
		return fmt.Errorf("%w: field was not properly initialized and has no name or owner", ErrConfiguration)
	}
	return nil
}

// Alias returns the alias, or "".
func (f *Field) Alias() string { return f.alias }

// Description returns the documentation text.
func (f *Field) Description() string { return f.description }

// Hint returns the explicit type hint, or "".
func (f *Field) Hint() TypeHint { return f.hint }

// Annotation returns the declared static type, or nil.
func (f *Field) Annotation() reflect.Type { return f.annotation }

// KeyName returns the logical key: the alias if set, else the field name.
func (f *Field) KeyName() string {
	if f.alias != "" {
		return f.alias
	}
	return f.Name()
}

// EnvKey returns the physical store key the field is read from.
func (f *Field) EnvKey() string {
	return f.Accessor().Key(f.KeyName())
}

// Strict reports whether ambiguous annotations fail instead of degrading to
// the "any" getter. Field setting, then owner setting, then true.
func (f *Field) Strict() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.strict != nil {
		return *f.strict
	}
	if f.owner != nil && f.owner.strict != nil {
		inherited := *f.owner.strict
		f.strict = &inherited
		return inherited
	}
	return true
}

// Mutable reports whether the field accepts writes. Field setting, then
// owner setting, then false.
func (f *Field) Mutable() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutable != nil {
		return *f.mutable
	}
	if f.owner != nil && f.owner.mutable != nil {
		inherited := *f.owner.mutable
		f.mutable = &inherited
		return inherited
	}
	return false
}

// Accessor returns the accessor the field reads through: the field's own
// accessor, else one built from the field prefix, else the owner's accessor,
// else a fresh default accessor. The result is memoized once the field is
// declared; before that the owner settings are unknown and nothing is cached.
func (f *Field) Accessor() *Accessor {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resolvedAccessor != nil {
		return f.resolvedAccessor
	}

	resolved := f.resolveAccessorLocked()
	if f.owner != nil {
		f.resolvedAccessor = resolved
	}
	return resolved
}

func (f *Field) resolveAccessorLocked() *Accessor {
	logger := getLogger().WithFields(log.Fields{"field": f.name})
	switch {
	case f.accessor != nil:
		logger.Debug("Using provided accessor")
		return f.accessor
	case f.prefix != nil:
		logger.WithFields(log.Fields{"prefix": *f.prefix}).Debug("Creating accessor from field prefix")
		opts := DefaultAccessorOptions()
		opts.Prefix = *f.prefix
		opts.Store = f.ownerStore()
		return NewAccessorWithOptions(opts)
	case f.owner != nil && f.owner.accessor != nil:
		logger.Debug("Using accessor of owner class")
		return f.owner.accessor
	default:
		logger.Debug("No accessor on field nor owner, creating one with an empty prefix")
		opts := DefaultAccessorOptions()
		opts.Store = f.ownerStore()
		return NewAccessorWithOptions(opts)
	}
}

func (f *Field) ownerStore() Store {
	if f.owner != nil && f.owner.store != nil {
		return f.owner.store
	}
	return Environ{}
}

// AnnotatedOptional reports whether the annotation is a pointer to a
// supported simple type.
func (f *Field) AnnotatedOptional() bool {
	return isOptionalAnnotation(f.annotation)
}

// Default returns the effective default: the declared default, else nil for
// optional fields, else Unset, meaning the field is required.
func (f *Field) Default() any {
	if !IsUnset(f.def) {
		return f.def
	}
	if f.optional || f.AnnotatedOptional() {
		return nil
	}
	return Unset
}

// Required reports whether reading the field fails when its key is absent.
func (f *Field) Required() bool {
	return IsUnset(f.Default())
}

// SimplifiedAnnotation returns the hint the annotation maps to, if any.
func (f *Field) SimplifiedAnnotation() (TypeHint, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.simplifiedLocked()
}

func (f *Field) simplifiedLocked() (TypeHint, bool) {
	if !f.simplifiedDone {
		if f.annotation != nil {
			if h, ok := simplifyAnnotation(f.annotation); ok {
				f.simplified = &h
			}
		}
		f.simplifiedDone = true
	}
	if f.simplified == nil {
		return "", false
	}
	return *f.simplified, true
}

// getterHint picks the getter: the explicit hint, else the simplified
// annotation, else "any" when not strict. Only successful choices are memoized,
// so a strict failure is reported on every read.
func (f *Field) getterHint() (TypeHint, error) {
	strict := f.Strict()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getter != "" {
		return f.getter, nil
	}

	if f.hint != "" {
		if !f.hint.Valid() {
			return "", fmt.Errorf("%w: unsupported type hint %q", ErrConfiguration, f.hint)
		}
		f.getter = f.hint
		return f.getter, nil
	}

	logger := getLogger().WithFields(log.Fields{"field": f.name})
	if f.annotation == nil {
		msg := fmt.Sprintf("No type annotation nor type hint found for field %q.", f.name)
		if strict {
			return "", fmt.Errorf("%w: %s %s", ErrAmbiguousAnnotation, msg, hintErrorToWarning)
		}
		logger.Warnf("%s Falling back to 'any'. %s", msg, hintWarningToError)
		f.getter = HintAny
		return f.getter, nil
	}

	if h, ok := f.simplifiedLocked(); ok {
		f.getter = h
		return f.getter, nil
	}

	msg := fmt.Sprintf("Failed to determine value getter for field %q. "+
		"No type hint was provided and the annotation is too complicated.", f.name)
	if strict {
		return "", fmt.Errorf("%w: %s %s", ErrAmbiguousAnnotation, msg, hintErrorToWarning)
	}
	logger.Warnf("%s %s", msg, hintWarningToError)
	f.getter = HintAny
	return f.getter, nil
}

// TypeLabel names the field type for documentation: the hint, else the
// simplified annotation, else "unknown type".
func (f *Field) TypeLabel() string {
	if f.hint != "" {
		return string(f.hint)
	}
	if h, ok := f.SimplifiedAnnotation(); ok {
		return string(h)
	}
	return "unknown type"
}

// Get resolves the field against its store.
func (f *Field) Get() (any, error) {
	if err := f.checkBound(); err != nil {
		return nil, err
	}
	hint, err := f.getterHint()
	if err != nil {
		return nil, err
	}
	return f.Accessor().Get(hint, f.KeyName(), f.Default())
}

// Set stores value under the field's physical key. It fails with
// ErrMutationRejected unless the field is mutable.
func (f *Field) Set(value any) error {
	if err := f.checkBound(); err != nil {
		return err
	}
	if !f.Mutable() {
		return fmt.Errorf("%w: field %q of %q", ErrMutationRejected, f.Name(), f.Owner().name)
	}
	// JSON fields store JSON text so the next read parses what was written.
	if _, isString := value.(string); !isString && value != nil {
		if hint, err := f.getterHint(); err == nil && hint == HintJSON {
			encoded, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("%w: value for field %q cannot be encoded as JSON: %w", ErrInvalidValue, f.Name(), err)
			}
			value = string(encoded)
		}
	}
	return f.Accessor().Set(f.KeyName(), value)
}
