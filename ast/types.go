package ast

// Type represents a source-level type label.  The type system is a closed
// set: there are no user-defined recursive types and no generics.
type Type int

// Enumeration of the closed set of types.
const (
	UnitType Type = iota // `()`: the type of functions returning nothing.
	BoolType             // `bool`
	I32Type              // `i32`
	StrType              // `str`

	// The small fixed family of "complex" types used only for parameter
	// passing.  They carry no structure the compiler inspects: they lower to
	// plain shell strings.
	PathType     // `path`: a filesystem path.
	URLType      // `url`: a network location.
	DurationType // `duration`: a second count.
)

// typeNames maps types to their display names.
var typeNames = map[Type]string{
	UnitType:     "()",
	BoolType:     "bool",
	I32Type:      "i32",
	StrType:      "str",
	PathType:     "path",
	URLType:      "url",
	DurationType: "duration",
}

func (t Type) String() string {
	return typeNames[t]
}

// TypeByName returns the type with the given source name if one exists.
func TypeByName(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}

	return UnitType, false
}

// IsScalar returns whether the type is one of the scalar value types.
func (t Type) IsScalar() bool {
	return t == BoolType || t == I32Type || t == StrType
}
