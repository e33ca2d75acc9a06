package owsql

import "fmt"

// Value is anything Ow-family methods accept: integers, floats, strings,
// runes, or anything implementing fmt.Stringer — the "to_string()"
// capability the Design Notes describe, covering the {integer, floating,
// character, string} variants.
type Value interface{}

// stringify renders v the way the original implementation's to_string()
// would: runes render as the character itself (not its code point), a
// fmt.Stringer is asked directly, and everything else falls back to
// fmt.Sprint's default formatting.
func stringify(v Value) string {
	switch x := v.(type) {
	case string:
		return x
	case rune:
		// rune is an alias for int32; most callers reach this branch only
		// when they explicitly pass a rune, since untyped integer literals
		// default to int.
		return string(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

// Params collects heterogeneous stringifiable values into a homogeneous
// list for AddAllowlist, mirroring spec.md's params(...) construct.
func Params(values ...Value) []Value {
	return values
}
