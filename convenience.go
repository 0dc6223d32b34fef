// File: lixenwraith/envproxy/convenience.go
package envproxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Dump formats supported by Class.Dump.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatEnv  = "env"
)

// Dump resolves every field and writes the values to w in format, one of
// FormatTOML, FormatYAML, FormatJSON or FormatEnv. FormatEnv writes
// KEY=value lines keyed by the physical store key. Optional fields without
// a value are omitted. Resolution failures abort the dump.
func (c *Class) Dump(w io.Writer, format string) error {
	values, err := c.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to resolve class %q: %w", c.name, err)
	}
	for name, v := range values {
		if v == nil {
			delete(values, name)
		}
	}

	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(values); err != nil {
			return fmt.Errorf("failed to marshal class %q to TOML: %w", c.name, err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(values); err != nil {
			return fmt.Errorf("failed to marshal class %q to YAML: %w", c.name, err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to marshal class %q to YAML: %w", c.name, err)
		}
	case FormatJSON:
		encoder := json.NewEncoder(&buf)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(values); err != nil {
			return fmt.Errorf("failed to marshal class %q to JSON: %w", c.name, err)
		}
	case FormatEnv:
		for _, name := range sortedKeys(values) {
			f := c.index[name]
			v := values[name]
			if f.Hint() == HintJSON {
				encoded, err := json.Marshal(v)
				if err != nil {
					return fmt.Errorf("failed to marshal field %q to JSON: %w", name, err)
				}
				fmt.Fprintf(&buf, "%s=%s\n", f.EnvKey(), encoded)
				continue
			}
			fmt.Fprintf(&buf, "%s=%s\n", f.EnvKey(), stringify(v))
		}
	default:
		return fmt.Errorf("unsupported dump format %q", format)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write dump of class %q: %w", c.name, err)
	}
	return nil
}

// DumpFile writes the resolved values to path, choosing the format from the
// file extension (.toml, .yaml/.yml, .json, .env). The file is replaced atomically.
func (c *Class) DumpFile(path string) error {
	format := detectFileFormat(path)
	if format == "" {
		return fmt.Errorf("unable to determine dump format for file '%s'", path)
	}

	var buf bytes.Buffer
	if err := c.Dump(&buf, format); err != nil {
		return err
	}
	return atomicWriteFile(path, buf.Bytes())
}

// MustGet is like Class.Get but panics on error.
func (c *Class) MustGet(name string) any {
	v, err := c.Get(name)
	if err != nil {
		panic(fmt.Sprintf("config field %q: %v", name, err))
	}
	return v
}
