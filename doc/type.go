package doc

import "fmt"

// Type is the tag of a Value.
type Type uint8

const (
	NullType Type = iota
	BoolType
	IntType
	DoubleType
	StringType
	DateType
	BlobType
	ArrayType
	DictionaryType
)

var typeNames = map[Type]string{
	NullType:       "Null",
	BoolType:       "Boolean",
	IntType:        "Integer",
	DoubleType:     "Double",
	StringType:     "String",
	DateType:       "Date",
	BlobType:       "Blob",
	ArrayType:      "Array",
	DictionaryType: "Dictionary",
}

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for tt, name := range typeNames {
		if name == string(d) {
			*t = tt
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		IntType,
		DoubleType,
		StringType,
		DateType,
		BlobType,
		ArrayType,
		DictionaryType,
	}
}

// IsLeaf reports whether values of type t hold no nested values.
func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, DictionaryType:
		return false
	default:
		return true
	}
}

// IsNumber reports whether t is IntType or DoubleType.
func (t Type) IsNumber() bool {
	return t == IntType || t == DoubleType
}
