// FILE: lixenwraith/envproxy/decode.go
package envproxy

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Scan resolves every field and decodes the values into target, a non-nil
// pointer to a struct or map. Struct fields are matched by their "env" tag,
// falling back to a case-insensitive match on the field name, so a struct
// passed to DeclareStruct scans back without extra tags.
//
// Fields that fail to resolve are skipped and their errors are returned
// joined, after the rest has been decoded.
func (c *Class) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	values, resolveErr := c.Snapshot()

	input := make(map[string]any, len(values))
	for name, v := range values {
		if v == nil {
			continue
		}
		input[name] = v
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          tagEnv,
		WeaklyTypedInput: true,
		MatchName:        matchFieldName,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToSliceHookFunc(DefaultListSeparator),
		),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(input); err != nil {
		return errors.Join(fmt.Errorf("failed to scan class %q into %T: %w", c.name, target, err), resolveErr)
	}
	return resolveErr
}

// matchFieldName matches a map key against a struct field name, treating
// snake_case keys and CamelCase names as equal.
func matchFieldName(mapKey, fieldName string) bool {
	return strings.EqualFold(mapKey, fieldName) || mapKey == toSnakeCase(fieldName)
}
