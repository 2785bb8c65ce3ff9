package doc

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"time"
)

// MutableDictionary is a key addressed container of values. Keys are
// unique and enumerate in the order they were first set.
//
// A MutableDictionary obtained from another container (by Dictionary,
// Fragment or Get) is a live view: it shares storage with the container
// it was read from. The zero value is an empty dictionary ready to use.
//
// Read methods accept a nil receiver and behave as on an empty
// dictionary, so lookups can be chained:
//
//	d.Dictionary("a").Dictionary("b").String("c")
type MutableDictionary struct {
	n *dictNode
}

// NewMutableDictionary returns an empty dictionary with its own storage.
func NewMutableDictionary() *MutableDictionary {
	return &MutableDictionary{n: newDictNode(0)}
}

// NewMutableDictionaryFromData returns a dictionary holding the coerced
// contents of data.
func NewMutableDictionaryFromData(data map[string]any) (*MutableDictionary, error) {
	d := NewMutableDictionary()
	if err := d.SetData(data); err != nil {
		return nil, err
	}
	d.n.changed = false
	return d, nil
}

// NewMutableDictionaryFromJSON returns a dictionary parsed from a JSON
// object.
func NewMutableDictionaryFromJSON(text string) (*MutableDictionary, error) {
	d := NewMutableDictionary()
	if err := d.SetJSON(text); err != nil {
		return nil, err
	}
	d.n.changed = false
	return d, nil
}

func (d *MutableDictionary) node() *dictNode {
	if d.n == nil {
		d.n = newDictNode(0)
	}
	return d.n
}

// AsValue returns d as a Dictionary value sharing d's storage.
func (d *MutableDictionary) AsValue() Value {
	if d == nil {
		return Value{}
	}
	return Value{typ: DictionaryType, dict: d.node()}
}

// SetValue coerces v and stores it at key, replacing any previous value
// in place. A nil v stores null; the key stays present.
func (d *MutableDictionary) SetValue(key string, v any) error {
	val, err := Coerce(v)
	if err != nil {
		return keyError(key, err)
	}
	return d.store(key, val)
}

func (d *MutableDictionary) store(key string, val Value) error {
	n := d.node()
	if err := checkCycle(n, val); err != nil {
		return keyError(key, err)
	}
	n.set(key, val)
	return nil
}

func (d *MutableDictionary) SetString(key, v string) error {
	return d.store(key, FromString(v))
}

// SetNumber stores a JSON number: Integer when it is integral and fits in
// 64 bits, Double otherwise.
func (d *MutableDictionary) SetNumber(key string, v json.Number) error {
	return d.SetValue(key, v)
}

func (d *MutableDictionary) SetInt(key string, v int) error {
	return d.store(key, FromInt(int64(v)))
}

func (d *MutableDictionary) SetInt64(key string, v int64) error {
	return d.store(key, FromInt(v))
}

func (d *MutableDictionary) SetFloat(key string, v float32) error {
	return d.SetValue(key, v)
}

func (d *MutableDictionary) SetDouble(key string, v float64) error {
	return d.SetValue(key, v)
}

func (d *MutableDictionary) SetBool(key string, v bool) error {
	return d.store(key, FromBool(v))
}

func (d *MutableDictionary) SetDate(key string, v time.Time) error {
	return d.store(key, FromDate(v))
}

// SetBlob stores b, or null if b is nil.
func (d *MutableDictionary) SetBlob(key string, b *Blob) error {
	return d.store(key, FromBlob(b))
}

// SetArray stores a as a view: later changes through a are visible in d.
// A nil a stores null.
func (d *MutableDictionary) SetArray(key string, a *MutableArray) error {
	return d.SetValue(key, a)
}

// SetDictionary stores o as a view, or null if o is nil.
func (d *MutableDictionary) SetDictionary(key string, o *MutableDictionary) error {
	return d.SetValue(key, o)
}

// SetData replaces the whole contents of d with the coerced contents of
// data. On error d is left unchanged.
func (d *MutableDictionary) SetData(data map[string]any) error {
	val, err := Coerce(data)
	if err != nil {
		return err
	}
	if val.typ != DictionaryType {
		val = Value{typ: DictionaryType, dict: newDictNode(0)}
	}
	n := d.node()
	if err := checkCycle(n, val); err != nil {
		return err
	}
	n.replace(val.dict)
	return nil
}

// SetJSON replaces the whole contents of d with the JSON object text. On
// error d is left unchanged.
func (d *MutableDictionary) SetJSON(text string) error {
	val, err := ParseJSON([]byte(text))
	if err != nil {
		return err
	}
	if val.typ != DictionaryType {
		return fmt.Errorf("%w: expected object, got %s", ErrInvalidJSONTopLevel, val.typ)
	}
	d.node().replace(val.dict)
	return nil
}

// SetEntries replaces the whole contents of d with the entries of src in
// src's key order. Nested containers are shared with src, so src becomes a
// second live view of them.
func (d *MutableDictionary) SetEntries(src *MutableDictionary) error {
	n := d.node()
	if src == nil || src.n == nil {
		n.replace(newDictNode(0))
		return nil
	}
	if src.n == n {
		return nil
	}
	top := newDictNode(len(src.n.keys))
	for i, k := range src.n.keys {
		top.set(k, src.n.vals[i])
	}
	if err := checkCycle(n, Value{typ: DictionaryType, dict: top}); err != nil {
		return err
	}
	n.replace(top)
	return nil
}

// Remove deletes key. Removing an absent key does nothing.
func (d *MutableDictionary) Remove(key string) {
	d.node().remove(key)
}

func (d *MutableDictionary) Count() int {
	return d.AsValue().Len()
}

// Keys returns the keys of d in insertion order.
func (d *MutableDictionary) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.node().keys)
}

func (d *MutableDictionary) Contains(key string) bool {
	_, ok := d.AsValue().Lookup(key)
	return ok
}

// Value returns the value at key and whether key is present.
func (d *MutableDictionary) Value(key string) (Value, bool) {
	return d.AsValue().Lookup(key)
}

// Get returns the value at key as a native Go value (see Value.Native),
// or nil if key is absent.
func (d *MutableDictionary) Get(key string) any {
	v, _ := d.Value(key)
	return v.Native()
}

func (d *MutableDictionary) String(key string) string {
	v, _ := d.Value(key)
	if v.typ != StringType && v.typ != DateType {
		return ""
	}
	return v.Str()
}

func (d *MutableDictionary) Int(key string) int {
	v, _ := d.Value(key)
	return int(v.Int64())
}

func (d *MutableDictionary) Int64(key string) int64 {
	v, _ := d.Value(key)
	return v.Int64()
}

func (d *MutableDictionary) Float(key string) float32 {
	v, _ := d.Value(key)
	return float32(v.Float64())
}

func (d *MutableDictionary) Double(key string) float64 {
	v, _ := d.Value(key)
	return v.Float64()
}

func (d *MutableDictionary) Number(key string) json.Number {
	v, _ := d.Value(key)
	return v.Number()
}

func (d *MutableDictionary) Bool(key string) bool {
	v, _ := d.Value(key)
	return v.Bool()
}

func (d *MutableDictionary) Date(key string) time.Time {
	v, _ := d.Value(key)
	return v.Date()
}

func (d *MutableDictionary) Blob(key string) *Blob {
	v, _ := d.Value(key)
	return v.Blob()
}

// Array returns a live view of the array at key, or nil if key is absent
// or holds another type.
func (d *MutableDictionary) Array(key string) *MutableArray {
	v, _ := d.Value(key)
	return v.mutableArray()
}

// Dictionary returns a live view of the dictionary at key, or nil if key
// is absent or holds another type.
func (d *MutableDictionary) Dictionary(key string) *MutableDictionary {
	v, _ := d.Value(key)
	return v.mutableDictionary()
}

// All iterates over the entries of d in insertion order.
func (d *MutableDictionary) All() iter.Seq2[string, Value] {
	return d.AsValue().Entries()
}

// ToMap returns a deep copy of d built from plain Go values.
func (d *MutableDictionary) ToMap() map[string]any {
	if d == nil {
		return map[string]any{}
	}
	return d.AsValue().Plain().(map[string]any)
}

// Path returns a lazily resolved accessor for the kinded path p, such as
// "a.b[0]". The empty path is d itself, which can be read but not
// written through.
func (d *MutableDictionary) Path(p string) *Fragment {
	return rootFragment(d.AsValue()).Path(p)
}

// Fragment returns a lazily resolved accessor for key.
func (d *MutableDictionary) Fragment(key string) *Fragment {
	return rootFragment(d.AsValue()).Key(key)
}

// ToJSON returns the compact JSON text of d.
func (d *MutableDictionary) ToJSON() string {
	if d == nil {
		return "{}"
	}
	return d.AsValue().String()
}

func (d *MutableDictionary) MarshalJSON() ([]byte, error) {
	return AppendJSON(nil, d.AsValue()), nil
}

func (d *MutableDictionary) UnmarshalJSON(data []byte) error {
	return d.SetJSON(string(data))
}

// Freeze returns an immutable deep copy of d.
func (d *MutableDictionary) Freeze() *Dictionary {
	return d.AsValue().freeze().frozenDictionary()
}

// Changed reports whether d or anything below it was modified since it
// was created or since the last ClearChanged.
func (d *MutableDictionary) Changed() bool {
	if d == nil {
		return false
	}
	return d.AsValue().changedDeep()
}

func (d *MutableDictionary) ClearChanged() {
	d.AsValue().clearChanged()
}

// Equal reports whether d and o hold equal contents.
func (d *MutableDictionary) Equal(o *MutableDictionary) bool {
	return Equal(d.AsValue(), o.AsValue())
}

func keyError(key string, err error) error {
	return fmt.Errorf("key %q: %w", key, err)
}
