package doc

import (
	"cmp"
	"slices"
	"strings"
)

// Compare returns an integer comparing two values.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Integers and doubles compare numerically. A Date compares as its
// ISO-8601 text, so it equals a String holding the same text. Dictionaries
// compare by their sorted keys then values, so key order does not matter.
func Compare(a, b Value) int {
	rankA := rank(a.typ)
	rankB := rank(b.typ)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.typ {
	case NullType:
		return 0
	case BoolType:
		if a.b == b.b {
			return 0
		}
		if !a.b {
			return -1
		}
		return 1
	case IntType, DoubleType:
		return compareNumbers(a, b)
	case StringType, DateType:
		return strings.Compare(a.Str(), b.Str())
	case BlobType:
		if c := strings.Compare(a.blob.digest, b.blob.digest); c != 0 {
			return c
		}
		if c := strings.Compare(a.blob.contentType, b.blob.contentType); c != 0 {
			return c
		}
		return cmp.Compare(a.blob.length, b.blob.length)
	case ArrayType:
		return compareArrays(a.arr, b.arr)
	case DictionaryType:
		return compareDicts(a.dict, b.dict)
	}
	return 0
}

// Equal reports whether Compare(a, b) == 0.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a type.
// Order: Null < Boolean < Number < String/Date < Blob < Array < Dictionary
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case IntType, DoubleType:
		return 2
	case StringType, DateType:
		return 3
	case BlobType:
		return 4
	case ArrayType:
		return 5
	case DictionaryType:
		return 6
	}
	return 100
}

func compareNumbers(a, b Value) int {
	if a.typ == IntType && b.typ == IntType {
		return cmp.Compare(a.i, b.i)
	}
	if a.typ == DoubleType && b.typ == DoubleType {
		return cmp.Compare(a.f, b.f)
	}
	// mixed: compare as doubles, break ties exactly for large integers
	af, bf := a.Float64(), b.Float64()
	if c := cmp.Compare(af, bf); c != 0 {
		return c
	}
	if a.typ == IntType {
		return compareIntDouble(a.i, b.f)
	}
	return -compareIntDouble(b.i, a.f)
}

func compareIntDouble(i int64, f float64) int {
	if f >= 9.223372036854775807e18 {
		return -1
	}
	if f < -9.223372036854775808e18 {
		return 1
	}
	return cmp.Compare(i, int64(f))
}

func compareArrays(a, b *arrayNode) int {
	if a == b {
		return 0
	}
	lenA := len(a.vals)
	lenB := len(b.vals)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.vals[i], b.vals[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareDicts(a, b *dictNode) int {
	if a == b {
		return 0
	}
	keysA := slices.Sorted(slices.Values(a.keys))
	keysB := slices.Sorted(slices.Values(b.keys))
	minLen := min(len(keysA), len(keysB))

	for i := 0; i < minLen; i++ {
		if c := strings.Compare(keysA[i], keysB[i]); c != 0 {
			return c
		}
		va, _ := a.get(keysA[i])
		vb, _ := b.get(keysB[i])
		if c := Compare(va, vb); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(keysA), len(keysB))
}
