package doc

import (
	"encoding/json"
	"iter"
	"math"
	"strconv"
	"time"
)

// Value is the content of a single slot in a document: a tagged union over
// the closed set of document types.
//
// The zero Value is null. Array and Dictionary values hold a reference to
// their backing node, so copying a Value copies the reference, not the
// contents.
type Value struct {
	typ Type

	b    bool
	i    int64
	f    float64
	s    string
	t    time.Time
	blob *Blob
	arr  *arrayNode
	dict *dictNode
}

func Null() Value {
	return Value{}
}

func FromBool(v bool) Value {
	return Value{typ: BoolType, b: v}
}

func FromInt(v int64) Value {
	return Value{typ: IntType, i: v}
}

// FromFloat returns a Double value. Non finite values are rejected when the
// value is stored into a container.
func FromFloat(f float64) Value {
	return Value{typ: DoubleType, f: f}
}

func FromString(v string) Value {
	return Value{typ: StringType, s: v}
}

// FromDate returns a Date value normalized to UTC with millisecond
// precision.
func FromDate(t time.Time) Value {
	return Value{typ: DateType, t: canonicalTime(t)}
}

// FromBlob returns a Blob value, or null if b is nil.
func FromBlob(b *Blob) Value {
	if b == nil {
		return Null()
	}
	return Value{typ: BlobType, blob: b}
}

func (v Value) Type() Type {
	return v.typ
}

func (v Value) IsNull() bool {
	return v.typ == NullType
}

// Bool returns the boolean interpretation of v: false for null and false,
// numbers are true when non-zero, every other value is true.
func (v Value) Bool() bool {
	switch v.typ {
	case NullType:
		return false
	case BoolType:
		return v.b
	case IntType:
		return v.i != 0
	case DoubleType:
		return v.f != 0
	default:
		return true
	}
}

// Int64 returns v as an integer. Doubles are truncated, booleans are 0 or 1
// and every other type yields 0.
func (v Value) Int64() int64 {
	switch v.typ {
	case IntType:
		return v.i
	case DoubleType:
		if math.IsNaN(v.f) {
			return 0
		}
		return int64(v.f)
	case BoolType:
		if v.b {
			return 1
		}
	}
	return 0
}

// Float64 returns v as a double, or 0 if v is not numeric or boolean.
func (v Value) Float64() float64 {
	switch v.typ {
	case IntType:
		return float64(v.i)
	case DoubleType:
		return v.f
	case BoolType:
		if v.b {
			return 1
		}
	}
	return 0
}

// Str returns the text of a String value, the ISO-8601 form of a Date
// value, or "" otherwise.
func (v Value) Str() string {
	switch v.typ {
	case StringType:
		return v.s
	case DateType:
		return FormatDate(v.t)
	}
	return ""
}

// Date returns the time of a Date value, or of a String value holding an
// ISO-8601 timestamp. Any other value yields the zero time.
func (v Value) Date() time.Time {
	switch v.typ {
	case DateType:
		return v.t
	case StringType:
		t, err := ParseDate(v.s)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	return time.Time{}
}

func (v Value) Blob() *Blob {
	if v.typ != BlobType {
		return nil
	}
	return v.blob
}

// Number returns the JSON number text of an Integer or Double value, or ""
// for any other type.
func (v Value) Number() json.Number {
	switch v.typ {
	case IntType:
		return json.Number(strconv.FormatInt(v.i, 10))
	case DoubleType:
		return json.Number(appendDouble(nil, v.f))
	}
	return ""
}

// Len returns the number of entries of an Array or Dictionary value, 0
// otherwise.
func (v Value) Len() int {
	switch v.typ {
	case ArrayType:
		return len(v.arr.vals)
	case DictionaryType:
		return len(v.dict.keys)
	}
	return 0
}

// Elems iterates over the elements of an Array value.
func (v Value) Elems() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		if v.typ != ArrayType {
			return
		}
		for i := 0; i < len(v.arr.vals); i++ {
			if !yield(i, v.arr.vals[i]) {
				return
			}
		}
	}
}

// Entries iterates over the entries of a Dictionary value in key order.
func (v Value) Entries() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if v.typ != DictionaryType {
			return
		}
		for i := 0; i < len(v.dict.keys); i++ {
			if !yield(v.dict.keys[i], v.dict.vals[i]) {
				return
			}
		}
	}
}

// Lookup returns the entry of a Dictionary value at key.
func (v Value) Lookup(key string) (Value, bool) {
	if v.typ != DictionaryType {
		return Value{}, false
	}
	return v.dict.get(key)
}

// At returns the element of an Array value at i.
func (v Value) At(i int) (Value, bool) {
	if v.typ != ArrayType || i < 0 || i >= len(v.arr.vals) {
		return Value{}, false
	}
	return v.arr.vals[i], true
}

// Native returns v as a plain Go value: nil, bool, int64, float64, string,
// time.Time, *Blob, *MutableArray, *MutableDictionary, or for values read
// from an immutable container *Array and *Dictionary.
func (v Value) Native() any {
	switch v.typ {
	case BoolType:
		return v.b
	case IntType:
		return v.i
	case DoubleType:
		return v.f
	case StringType:
		return v.s
	case DateType:
		return v.t
	case BlobType:
		return v.blob
	case ArrayType:
		if v.arr.frozen {
			return &Array{n: v.arr}
		}
		return &MutableArray{n: v.arr}
	case DictionaryType:
		if v.dict.frozen {
			return &Dictionary{n: v.dict}
		}
		return &MutableDictionary{n: v.dict}
	}
	return nil
}

// Plain returns a deep copy of v built from nil, bool, int64, float64,
// string, time.Time, *Blob, []any and map[string]any.
func (v Value) Plain() any {
	switch v.typ {
	case ArrayType:
		res := make([]any, len(v.arr.vals))
		for i, elt := range v.arr.vals {
			res[i] = elt.Plain()
		}
		return res
	case DictionaryType:
		res := make(map[string]any, len(v.dict.keys))
		for i, k := range v.dict.keys {
			res[k] = v.dict.vals[i].Plain()
		}
		return res
	}
	return v.Native()
}

// String returns the JSON text of v.
func (v Value) String() string {
	return string(AppendJSON(nil, v))
}

// mutableArray returns a live view of an array value, nil otherwise.
func (v Value) mutableArray() *MutableArray {
	if v.typ != ArrayType || v.arr.frozen {
		return nil
	}
	return &MutableArray{n: v.arr}
}

func (v Value) mutableDictionary() *MutableDictionary {
	if v.typ != DictionaryType || v.dict.frozen {
		return nil
	}
	return &MutableDictionary{n: v.dict}
}

func (v Value) frozenArray() *Array {
	if v.typ != ArrayType || !v.arr.frozen {
		return nil
	}
	return &Array{n: v.arr}
}

func (v Value) frozenDictionary() *Dictionary {
	if v.typ != DictionaryType || !v.dict.frozen {
		return nil
	}
	return &Dictionary{n: v.dict}
}

// readOnly reports whether v is a container from an immutable tree.
func (v Value) readOnly() bool {
	switch v.typ {
	case ArrayType:
		return v.arr.frozen
	case DictionaryType:
		return v.dict.frozen
	}
	return false
}
