// FILE: lixenwraith/envproxy/docs.go
package envproxy

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
)

// ExportOptions controls sample environment file rendering.
type ExportOptions struct {
	// IncludeDefaults writes field defaults as values. Otherwise every value is empty.
	IncludeDefaults bool

	// SortByName orders fields by key name instead of declaration order.
	SortByName bool
}

// DefaultExportOptions returns options that include defaults in declaration order.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{IncludeDefaults: true}
}

// DocsBuilder renders fields into a sample environment file.
// It only reads field metadata, never the store.
type DocsBuilder struct {
	fields []*Field
}

// NewDocsBuilder returns a builder over a copy of fields.
func NewDocsBuilder(fields []*Field) *DocsBuilder {
	return &DocsBuilder{fields: slices.Clone(fields)}
}

// Generate renders one block per field:
//
//	# <key name> (<type>) [required|optional]
//	# <description lines>
//	<ENV_KEY>=<default>
//
// Blocks are separated by a blank line.
func (d *DocsBuilder) Generate(opts ExportOptions) (string, error) {
	fields := d.fields
	if opts.SortByName {
		fields = slices.Clone(fields)
		slices.SortStableFunc(fields, func(a, b *Field) int {
			return strings.Compare(a.KeyName(), b.KeyName())
		})
	}

	blocks := make([]string, 0, len(fields))
	for _, f := range fields {
		block, err := renderField(f, opts.IncludeDefaults)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n"), nil
}

func renderField(f *Field, includeDefaults bool) (string, error) {
	required := "optional"
	if f.Required() {
		required = "required"
	}

	def := ""
	if includeDefaults {
		var err error
		if def, err = renderDefault(f); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s) [%s]\n", f.KeyName(), f.TypeLabel(), required)
	desc := strings.ReplaceAll(f.Description(), "\r\n", "\n")
	if desc = strings.TrimRight(desc, "\n"); desc != "" {
		for _, line := range strings.Split(desc, "\n") {
			b.WriteString("# " + line + "\n")
		}
	}
	fmt.Fprintf(&b, "%s=%s\n", f.EnvKey(), def)
	return b.String(), nil
}

func renderDefault(f *Field) (string, error) {
	def := f.Default()
	if def == nil || IsUnset(def) {
		return "", nil
	}
	if _, isString := def.(string); !isString && f.Hint() == HintJSON {
		encoded, err := json.Marshal(def)
		if err != nil {
			return "", fmt.Errorf("%w: failed to export default for field %q, its default value cannot be encoded as JSON: %w",
				ErrExport, f.Name(), err)
		}
		return string(encoded), nil
	}
	return stringify(def), nil
}

// ExportEnv writes the sample environment file of the class to w.
func (c *Class) ExportEnv(w io.Writer, opts ExportOptions) error {
	content, err := NewDocsBuilder(c.fields).Generate(opts)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("failed to write sample environment of %q: %w", c.name, err)
	}
	return nil
}

// ExportEnvFile writes the sample environment file of the class to path,
// replacing it atomically.
func (c *Class) ExportEnvFile(path string, opts ExportOptions) error {
	content, err := NewDocsBuilder(c.fields).Generate(opts)
	if err != nil {
		return err
	}
	return atomicWriteFile(path, []byte(content))
}
