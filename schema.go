// FILE: lixenwraith/envproxy/schema.go
package envproxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// FieldSchema declares one field in a schema file.
type FieldSchema struct {
	Name        string `toml:"name"`
	Alias       string `toml:"alias"`
	Description string `toml:"description"`
	Hint        string `toml:"hint"`
	Prefix      string `toml:"prefix"`
	Default     any    `toml:"default"`
	Optional    bool   `toml:"optional"`
	Strict      *bool  `toml:"strict"`
	Mutable     *bool  `toml:"mutable"`
}

// ClassSchema declares a Class in a TOML, YAML or JSON file, so classes can
// be documented and inspected without Go code:
//
//	name = "myapp"
//	prefix = "MYAPP"
//
//	[[fields]]
//	name = "timeout"
//	hint = "float"
//	default = 100
//	description = "Service timeout."
type ClassSchema struct {
	Name    string        `toml:"name"`
	Prefix  string        `toml:"prefix"`
	Strict  *bool         `toml:"strict"`
	Mutable *bool         `toml:"mutable"`
	Fields  []FieldSchema `toml:"fields"`
}

// LoadSchema reads a schema file, detecting the format from its extension.
func LoadSchema(path string) (*ClassSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file '%s': %w", path, err)
	}
	return ParseSchema(data, detectFileFormat(path))
}

// ParseSchema decodes a schema in format (FormatTOML, FormatYAML or FormatJSON).
func ParseSchema(data []byte, format string) (*ClassSchema, error) {
	raw := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse TOML schema: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML schema: %w", err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON schema: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported schema format %q", format)
	}

	// One struct shape for every format; mapstructure bridges the decoders.
	var schema ClassSchema
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &schema,
		TagName:          "toml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &schema, nil
}

// Builder turns the schema into a ClassBuilder, ready for further
// declarations or Build.
func (s *ClassSchema) Builder() *ClassBuilder {
	b := NewClassBuilder(s.Name).WithPrefix(s.Prefix)
	if s.Strict != nil {
		b.WithStrict(*s.Strict)
	}
	if s.Mutable != nil {
		b.WithMutable(*s.Mutable)
	}

	for _, fs := range s.Fields {
		f := NewField().
			WithAlias(fs.Alias).
			WithDescription(fs.Description)
		if fs.Hint != "" {
			f.WithHint(TypeHint(fs.Hint))
		}
		if fs.Prefix != "" {
			f.WithPrefix(fs.Prefix)
		}
		if fs.Optional {
			f.AsOptional()
		}
		if fs.Strict != nil {
			f.WithStrict(*fs.Strict)
		}
		if fs.Mutable != nil {
			f.WithMutable(*fs.Mutable)
		}
		if fs.Default != nil {
			def, err := normalizeDefault(f.hint, fs.Default)
			if err != nil {
				b.errs = append(b.errs, fmt.Errorf("field %q: %w", fs.Name, err))
				continue
			}
			f.WithDefault(def)
		}
		b.Field(fs.Name, f)
	}
	return b
}

// normalizeDefault brings a decoded default in line with what the hint's
// getter returns: textual defaults are converted, numbers widened, and lists
// turned into []string.
func normalizeDefault(hint TypeHint, v any) (any, error) {
	if s, ok := v.(string); ok && hint != "" && hint != HintStr && hint != HintAny {
		conv, known := converters[hint]
		if !known {
			return v, nil // reported when the field is declared
		}
		out, err := conv("default", s)
		if err != nil {
			return nil, fmt.Errorf("%w: default %q does not match type %s: %w", ErrConfiguration, s, hint, err)
		}
		return out, nil
	}

	switch hint {
	case HintFloat:
		var f float64
		if err := mapstructure.WeakDecode(v, &f); err != nil {
			return nil, fmt.Errorf("%w: default %v is not a float: %w", ErrConfiguration, v, err)
		}
		return f, nil
	case HintInt:
		var i int
		if err := mapstructure.WeakDecode(v, &i); err != nil {
			return nil, fmt.Errorf("%w: default %v is not an int: %w", ErrConfiguration, v, err)
		}
		return i, nil
	case HintList:
		var l []string
		if err := mapstructure.WeakDecode(v, &l); err != nil {
			return nil, fmt.Errorf("%w: default %v is not a list: %w", ErrConfiguration, v, err)
		}
		return l, nil
	}
	return v, nil
}
