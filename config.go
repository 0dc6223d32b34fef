// FILE: lixenwraith/envproxy/config.go
package envproxy

import (
	"errors"
	"fmt"
	"slices"

	log "github.com/sirupsen/logrus"
)

// Class is a configuration type: an ordered set of declared fields plus
// class-wide defaults the fields inherit unless they override them.
// A Class is created by ClassBuilder and does not change afterwards.
type Class struct {
	name     string
	strict   *bool
	mutable  *bool
	accessor *Accessor
	prefix   string
	store    Store

	fields []*Field
	index  map[string]*Field
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Strict returns the class-wide strict setting and whether it was declared.
func (c *Class) Strict() (strict, declared bool) {
	if c.strict == nil {
		return false, false
	}
	return *c.strict, true
}

// Mutable returns the class-wide mutability and whether it was declared.
func (c *Class) Mutable() (mutable, declared bool) {
	if c.mutable == nil {
		return false, false
	}
	return *c.mutable, true
}

// Accessor returns the shared accessor, or nil when the class declares none.
func (c *Class) Accessor() *Accessor { return c.accessor }

// Prefix returns the class-wide key prefix.
func (c *Class) Prefix() string { return c.prefix }

// Fields returns the declared fields in declaration order.
func (c *Class) Fields() []*Field { return slices.Clone(c.fields) }

// Field returns the field declared under name.
func (c *Class) Field(name string) (*Field, bool) {
	f, ok := c.index[name]
	return f, ok
}

func (c *Class) field(name string) (*Field, error) {
	f, ok := c.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: class %q has no field %q", ErrConfiguration, c.name, name)
	}
	return f, nil
}

// Get resolves the named field against the store.
func (c *Class) Get(name string) (any, error) {
	f, err := c.field(name)
	if err != nil {
		return nil, err
	}
	return f.Get()
}

// Set writes value to the store under the named field's key.
// Only mutable fields accept writes.
func (c *Class) Set(name string, value any) error {
	f, err := c.field(name)
	if err != nil {
		return err
	}
	return f.Set(value)
}

// Snapshot resolves every field and returns the values keyed by field name.
// Fields that fail are left out and their errors are joined.
func (c *Class) Snapshot() (map[string]any, error) {
	values := make(map[string]any, len(c.fields))
	var errs []error
	for _, f := range c.fields {
		v, err := f.Get()
		if err != nil {
			errs = append(errs, fmt.Errorf("field %q: %w", f.Name(), err))
			continue
		}
		values[f.Name()] = v
	}
	if len(errs) > 0 {
		getLogger().WithFields(log.Fields{"class": c.name, "failed": len(errs)}).
			Debug("Snapshot incomplete")
	}
	return values, errors.Join(errs...)
}
