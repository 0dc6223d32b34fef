// FILE: lixenwraith/envproxy/key.go
package envproxy

import (
	"strings"
	"sync"
)

type keySpec struct {
	key        string
	prefix     string
	uppercase  bool
	underscore bool
}

// derivedKeys memoizes DeriveKey. The function is pure, so entries never expire.
var derivedKeys sync.Map // keySpec -> string

// DeriveKey maps a logical key to the physical store key.
// The prefix, when set, is joined with "_" first; the whole key is then
// uppercased and has '-' replaced by '_' unless those steps are disabled.
//
//	DeriveKey("my-var", "app", true, true) == "APP_MY_VAR"
func DeriveKey(key, prefix string, uppercase, underscore bool) string {
	spec := keySpec{key: key, prefix: prefix, uppercase: uppercase, underscore: underscore}
	if cached, ok := derivedKeys.Load(spec); ok {
		return cached.(string)
	}

	derived := key
	if prefix != "" {
		derived = prefix + "_" + key
	}
	if uppercase {
		derived = strings.ToUpper(derived)
	}
	if underscore {
		derived = strings.ReplaceAll(derived, "-", "_")
	}

	derivedKeys.Store(spec, derived)
	return derived
}
