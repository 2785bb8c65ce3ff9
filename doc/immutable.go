package doc

import (
	"encoding/json"
	"iter"
	"slices"
	"time"
)

// Dictionary is a read only dictionary, as produced by
// MutableDictionary.Freeze. Nested containers read from it are read only
// as well. Like its mutable counterpart it accepts a nil receiver.
type Dictionary struct {
	n *dictNode
}

// AsValue returns d as a Dictionary value.
func (d *Dictionary) AsValue() Value {
	if d == nil || d.n == nil {
		return Value{}
	}
	return Value{typ: DictionaryType, dict: d.n}
}

// Mutable returns an independent mutable copy of d.
func (d *Dictionary) Mutable() *MutableDictionary {
	v := d.AsValue()
	if v.typ != DictionaryType {
		return NewMutableDictionary()
	}
	return &MutableDictionary{n: v.thaw().dict}
}

func (d *Dictionary) Count() int {
	return d.AsValue().Len()
}

func (d *Dictionary) Keys() []string {
	if d == nil || d.n == nil {
		return nil
	}
	return slices.Clone(d.n.keys)
}

func (d *Dictionary) Contains(key string) bool {
	_, ok := d.AsValue().Lookup(key)
	return ok
}

func (d *Dictionary) Value(key string) (Value, bool) {
	return d.AsValue().Lookup(key)
}

func (d *Dictionary) Get(key string) any {
	v, _ := d.Value(key)
	return v.Native()
}

func (d *Dictionary) String(key string) string {
	v, _ := d.Value(key)
	if v.typ != StringType && v.typ != DateType {
		return ""
	}
	return v.Str()
}

func (d *Dictionary) Int(key string) int {
	v, _ := d.Value(key)
	return int(v.Int64())
}

func (d *Dictionary) Int64(key string) int64 {
	v, _ := d.Value(key)
	return v.Int64()
}

func (d *Dictionary) Float(key string) float32 {
	v, _ := d.Value(key)
	return float32(v.Float64())
}

func (d *Dictionary) Double(key string) float64 {
	v, _ := d.Value(key)
	return v.Float64()
}

func (d *Dictionary) Number(key string) json.Number {
	v, _ := d.Value(key)
	return v.Number()
}

func (d *Dictionary) Bool(key string) bool {
	v, _ := d.Value(key)
	return v.Bool()
}

func (d *Dictionary) Date(key string) time.Time {
	v, _ := d.Value(key)
	return v.Date()
}

func (d *Dictionary) Blob(key string) *Blob {
	v, _ := d.Value(key)
	return v.Blob()
}

func (d *Dictionary) Array(key string) *Array {
	v, _ := d.Value(key)
	return v.frozenArray()
}

func (d *Dictionary) Dictionary(key string) *Dictionary {
	v, _ := d.Value(key)
	return v.frozenDictionary()
}

func (d *Dictionary) All() iter.Seq2[string, Value] {
	return d.AsValue().Entries()
}

func (d *Dictionary) ToMap() map[string]any {
	if d.AsValue().typ != DictionaryType {
		return map[string]any{}
	}
	return d.AsValue().Plain().(map[string]any)
}

// Fragment returns a read only accessor for key. Writes through it fail
// with ErrReadOnly.
func (d *Dictionary) Fragment(key string) *Fragment {
	return rootFragment(d.AsValue()).Key(key)
}

func (d *Dictionary) ToJSON() string {
	if d.AsValue().typ != DictionaryType {
		return "{}"
	}
	return d.AsValue().String()
}

func (d *Dictionary) MarshalJSON() ([]byte, error) {
	return []byte(d.ToJSON()), nil
}

// Array is a read only array, as produced by MutableArray.Freeze.
type Array struct {
	n *arrayNode
}

func (a *Array) AsValue() Value {
	if a == nil || a.n == nil {
		return Value{}
	}
	return Value{typ: ArrayType, arr: a.n}
}

// Mutable returns an independent mutable copy of a.
func (a *Array) Mutable() *MutableArray {
	v := a.AsValue()
	if v.typ != ArrayType {
		return NewMutableArray()
	}
	return &MutableArray{n: v.thaw().arr}
}

func (a *Array) Count() int {
	return a.AsValue().Len()
}

func (a *Array) Value(i int) (Value, bool) {
	return a.AsValue().At(i)
}

func (a *Array) Get(i int) any {
	v, _ := a.Value(i)
	return v.Native()
}

func (a *Array) String(i int) string {
	v, _ := a.Value(i)
	if v.typ != StringType && v.typ != DateType {
		return ""
	}
	return v.Str()
}

func (a *Array) Int(i int) int {
	v, _ := a.Value(i)
	return int(v.Int64())
}

func (a *Array) Int64(i int) int64 {
	v, _ := a.Value(i)
	return v.Int64()
}

func (a *Array) Float(i int) float32 {
	v, _ := a.Value(i)
	return float32(v.Float64())
}

func (a *Array) Double(i int) float64 {
	v, _ := a.Value(i)
	return v.Float64()
}

func (a *Array) Number(i int) json.Number {
	v, _ := a.Value(i)
	return v.Number()
}

func (a *Array) Bool(i int) bool {
	v, _ := a.Value(i)
	return v.Bool()
}

func (a *Array) Date(i int) time.Time {
	v, _ := a.Value(i)
	return v.Date()
}

func (a *Array) Blob(i int) *Blob {
	v, _ := a.Value(i)
	return v.Blob()
}

func (a *Array) Array(i int) *Array {
	v, _ := a.Value(i)
	return v.frozenArray()
}

func (a *Array) Dictionary(i int) *Dictionary {
	v, _ := a.Value(i)
	return v.frozenDictionary()
}

func (a *Array) All() iter.Seq2[int, Value] {
	return a.AsValue().Elems()
}

func (a *Array) ToSlice() []any {
	if a.AsValue().typ != ArrayType {
		return []any{}
	}
	return a.AsValue().Plain().([]any)
}

func (a *Array) Fragment(i int) *Fragment {
	return rootFragment(a.AsValue()).Index(i)
}

func (a *Array) ToJSON() string {
	if a.AsValue().typ != ArrayType {
		return "[]"
	}
	return a.AsValue().String()
}

func (a *Array) MarshalJSON() ([]byte, error) {
	return []byte(a.ToJSON()), nil
}
