// FILE: lixenwraith/envproxy/builder.go
package envproxy

import (
	"errors"
	"fmt"
)

// ClassBuilder provides a fluent interface for declaring a Class.
// Declaration errors accumulate and are reported by Build.
type ClassBuilder struct {
	class *Class
	errs  []error
	built bool
}

// NewClassBuilder starts the declaration of a class called name.
func NewClassBuilder(name string) *ClassBuilder {
	return &ClassBuilder{
		class: &Class{
			name:  name,
			index: make(map[string]*Field),
		},
	}
}

// WithStrict sets the strict mode inherited by fields.
func (b *ClassBuilder) WithStrict(strict bool) *ClassBuilder {
	if b.rejectBuilt() {
		return b
	}
	b.class.strict = &strict
	return b
}

// WithMutable sets the mutability inherited by fields.
func (b *ClassBuilder) WithMutable(mutable bool) *ClassBuilder {
	if b.rejectBuilt() {
		return b
	}
	b.class.mutable = &mutable
	return b
}

// WithAccessor sets the accessor shared by fields without their own.
func (b *ClassBuilder) WithAccessor(a *Accessor) *ClassBuilder {
	if b.rejectBuilt() {
		return b
	}
	b.class.accessor = a
	return b
}

// WithPrefix sets a class-wide key prefix. It is ignored when WithAccessor is used.
func (b *ClassBuilder) WithPrefix(prefix string) *ClassBuilder {
	if b.rejectBuilt() {
		return b
	}
	b.class.prefix = prefix
	return b
}

// WithStore sets the store used by accessors the class and its fields create
// implicitly. Explicit accessors keep their own store.
func (b *ClassBuilder) WithStore(store Store) *ClassBuilder {
	if b.rejectBuilt() {
		return b
	}
	b.class.store = store
	return b
}

// Field declares f under name. Reserved, empty and duplicate names are
// rejected, as is a field already declared elsewhere.
func (b *ClassBuilder) Field(name string, f *Field) *ClassBuilder {
	if b.rejectBuilt() {
		return b
	}
	if f == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: field %q is nil", ErrConfiguration, name))
		return b
	}
	if _, exists := b.class.index[name]; exists {
		b.errs = append(b.errs, fmt.Errorf("%w: field %q is declared twice on %q", ErrConfiguration, name, b.class.name))
		return b
	}
	if err := f.bind(b.class, name); err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.class.fields = append(b.class.fields, f)
	b.class.index[name] = f
	return b
}

// rejectBuilt records an error for declarations made after a successful
// Build. The built class does not change.
func (b *ClassBuilder) rejectBuilt() bool {
	if b.built {
		b.errs = append(b.errs, fmt.Errorf("%w: class %q is already built", ErrConfiguration, b.class.name))
	}
	return b.built
}

// Build finishes the declaration. Once it succeeds, further declarations on
// the builder are rejected and every later Build call reports them.
func (b *ClassBuilder) Build() (*Class, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("failed to declare class %q: %w", b.class.name, errors.Join(b.errs...))
	}

	c := b.class
	if c.store == nil {
		c.store = Environ{}
	}
	if c.accessor == nil && c.prefix != "" {
		opts := DefaultAccessorOptions()
		opts.Prefix = c.prefix
		opts.Store = c.store
		c.accessor = NewAccessorWithOptions(opts)
	}
	b.built = true
	return c, nil
}

// MustBuild is like Build but panics on error.
func (b *ClassBuilder) MustBuild() *Class {
	c, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("class declaration failed: %v", err))
	}
	return c
}
