// FILE: lixenwraith/envproxy/sentinel.go
package envproxy

// sentinel carries a byte so that distinct allocations can never share an
// address; Unset is the only instance ever created.
type sentinel struct{ _ byte }

func (*sentinel) String() string { return "<unset>" }

// Unset marks "no value was supplied" where nil is itself a legitimate
// value, e.g. a field default explicitly set to nil versus no default at all.
var Unset any = &sentinel{}

// IsUnset reports whether v is the Unset marker.
func IsUnset(v any) bool {
	s, ok := v.(*sentinel)
	return ok && s == Unset.(*sentinel)
}
