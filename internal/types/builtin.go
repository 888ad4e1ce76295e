package types

// BuiltinKind enumerates the primitive builtin types (spec §3).
type BuiltinKind string

const (
	BuiltinInt    BuiltinKind = "int"
	BuiltinUInt   BuiltinKind = "uint"
	BuiltinFloat  BuiltinKind = "float"
	BuiltinChar   BuiltinKind = "char"
	BuiltinBool   BuiltinKind = "bool"
	BuiltinSymbol BuiltinKind = "symbol"
)

// Builtin is a primitive type: int, uint, float, char, bool, symbol.
type Builtin struct {
	Name BuiltinKind
}

// Interned builtin instances. Builtins are immutable and safe to share
// (spec "Lifecycles": "shared interned builtins are created once").
var (
	Int    = &Builtin{Name: BuiltinInt}
	UInt   = &Builtin{Name: BuiltinUInt}
	Float  = &Builtin{Name: BuiltinFloat}
	Char   = &Builtin{Name: BuiltinChar}
	Bool   = &Builtin{Name: BuiltinBool}
	Symbol = &Builtin{Name: BuiltinSymbol}
)

func (b *Builtin) TypeKind() Kind      { return KindBuiltin }
func (b *Builtin) String() string      { return string(b.Name) }
func (b *Builtin) IsTemplate() bool    { return false }
func (b *Builtin) Equals(o Type) bool {
	ob, ok := o.(*Builtin)
	return ok && ob.Name == b.Name
}

// IsNumeric reports whether b is int, uint, or float.
func (b *Builtin) IsNumeric() bool {
	return b.Name == BuiltinInt || b.Name == BuiltinUInt || b.Name == BuiltinFloat
}

// builtinByName looks up a builtin by its surface-syntax name, or returns
// (nil, false) if name does not name a builtin.
func builtinByName(name string) (*Builtin, bool) {
	switch name {
	case "int":
		return Int, true
	case "uint":
		return UInt, true
	case "float":
		return Float, true
	case "char":
		return Char, true
	case "bool":
		return Bool, true
	case "symbol":
		return Symbol, true
	default:
		return nil, false
	}
}

// LookupBuiltin is the exported form of builtinByName, used by the
// TypeResolver (spec §4.2 "Primary type").
func LookupBuiltin(name string) (*Builtin, bool) {
	return builtinByName(name)
}
