package doc

import (
	"encoding/json"
	"fmt"
	"iter"
	"time"
)

// MutableArray is an index addressed container of values.
//
// Like MutableDictionary, an array read from another container is a live
// view of it, the zero value is an empty array, and read methods accept a
// nil receiver. Reads outside [0, Count()) return zero values; writes
// outside that range fail with ErrIndexOutOfBounds.
type MutableArray struct {
	n *arrayNode
}

// NewMutableArray returns an empty array with its own storage.
func NewMutableArray() *MutableArray {
	return &MutableArray{n: newArrayNode(0)}
}

// NewMutableArrayFromData returns an array holding the coerced elements of
// data.
func NewMutableArrayFromData(data []any) (*MutableArray, error) {
	a := NewMutableArray()
	if err := a.SetData(data); err != nil {
		return nil, err
	}
	a.n.changed = false
	return a, nil
}

// NewMutableArrayFromJSON returns an array parsed from a JSON array.
func NewMutableArrayFromJSON(text string) (*MutableArray, error) {
	a := NewMutableArray()
	if err := a.SetJSON(text); err != nil {
		return nil, err
	}
	a.n.changed = false
	return a, nil
}

func (a *MutableArray) node() *arrayNode {
	if a.n == nil {
		a.n = newArrayNode(0)
	}
	return a.n
}

// AsValue returns a as an Array value sharing a's storage.
func (a *MutableArray) AsValue() Value {
	if a == nil {
		return Value{}
	}
	return Value{typ: ArrayType, arr: a.node()}
}

func (a *MutableArray) coerce(v any) (Value, error) {
	val, err := Coerce(v)
	if err != nil {
		return Value{}, err
	}
	if err := checkCycle(a.node(), val); err != nil {
		return Value{}, err
	}
	return val, nil
}

// SetValue coerces v and stores it at index i.
func (a *MutableArray) SetValue(i int, v any) error {
	val, err := a.coerce(v)
	if err != nil {
		return indexContext(i, err)
	}
	return a.node().set(i, val)
}

// Insert coerces v and inserts it before index i. i may equal Count().
func (a *MutableArray) Insert(i int, v any) error {
	val, err := a.coerce(v)
	if err != nil {
		return indexContext(i, err)
	}
	return a.node().insert(i, val)
}

// Append coerces v and adds it at the end of a.
func (a *MutableArray) Append(v any) error {
	val, err := a.coerce(v)
	if err != nil {
		return indexContext(a.Count(), err)
	}
	n := a.node()
	n.vals = append(n.vals, val)
	n.changed = true
	return nil
}

// Remove deletes the element at i, shifting later elements left.
func (a *MutableArray) Remove(i int) error {
	return a.node().remove(i)
}

func (a *MutableArray) SetString(i int, v string) error {
	return a.node().set(i, FromString(v))
}

func (a *MutableArray) SetNumber(i int, v json.Number) error {
	return a.SetValue(i, v)
}

func (a *MutableArray) SetInt(i int, v int) error {
	return a.node().set(i, FromInt(int64(v)))
}

func (a *MutableArray) SetInt64(i int, v int64) error {
	return a.node().set(i, FromInt(v))
}

func (a *MutableArray) SetFloat(i int, v float32) error {
	return a.SetValue(i, v)
}

func (a *MutableArray) SetDouble(i int, v float64) error {
	return a.SetValue(i, v)
}

func (a *MutableArray) SetBool(i int, v bool) error {
	return a.node().set(i, FromBool(v))
}

func (a *MutableArray) SetDate(i int, v time.Time) error {
	return a.node().set(i, FromDate(v))
}

func (a *MutableArray) SetBlob(i int, b *Blob) error {
	return a.node().set(i, FromBlob(b))
}

func (a *MutableArray) SetArray(i int, o *MutableArray) error {
	return a.SetValue(i, o)
}

func (a *MutableArray) SetDictionary(i int, o *MutableDictionary) error {
	return a.SetValue(i, o)
}

func (a *MutableArray) AppendString(v string) error {
	return a.Append(v)
}

func (a *MutableArray) AppendInt(v int) error {
	return a.Append(v)
}

func (a *MutableArray) AppendInt64(v int64) error {
	return a.Append(v)
}

func (a *MutableArray) AppendDouble(v float64) error {
	return a.Append(v)
}

func (a *MutableArray) AppendBool(v bool) error {
	return a.Append(v)
}

func (a *MutableArray) AppendDate(v time.Time) error {
	return a.Append(v)
}

func (a *MutableArray) AppendBlob(b *Blob) error {
	return a.Append(b)
}

func (a *MutableArray) AppendArray(o *MutableArray) error {
	return a.Append(o)
}

func (a *MutableArray) AppendDictionary(o *MutableDictionary) error {
	return a.Append(o)
}

// SetData replaces the whole contents of a with the coerced elements of
// data. On error a is left unchanged.
func (a *MutableArray) SetData(data []any) error {
	val, err := Coerce(data)
	if err != nil {
		return err
	}
	if val.typ != ArrayType {
		val = Value{typ: ArrayType, arr: newArrayNode(0)}
	}
	n := a.node()
	if err := checkCycle(n, val); err != nil {
		return err
	}
	n.replace(val.arr)
	return nil
}

// SetJSON replaces the whole contents of a with the JSON array text. On
// error a is left unchanged.
func (a *MutableArray) SetJSON(text string) error {
	val, err := ParseJSON([]byte(text))
	if err != nil {
		return err
	}
	if val.typ != ArrayType {
		return fmt.Errorf("%w: expected array, got %s", ErrInvalidJSONTopLevel, val.typ)
	}
	a.node().replace(val.arr)
	return nil
}

func (a *MutableArray) Count() int {
	return a.AsValue().Len()
}

// Value returns the element at i and whether i is in range.
func (a *MutableArray) Value(i int) (Value, bool) {
	return a.AsValue().At(i)
}

func (a *MutableArray) Get(i int) any {
	v, _ := a.Value(i)
	return v.Native()
}

func (a *MutableArray) String(i int) string {
	v, _ := a.Value(i)
	if v.typ != StringType && v.typ != DateType {
		return ""
	}
	return v.Str()
}

func (a *MutableArray) Int(i int) int {
	v, _ := a.Value(i)
	return int(v.Int64())
}

func (a *MutableArray) Int64(i int) int64 {
	v, _ := a.Value(i)
	return v.Int64()
}

func (a *MutableArray) Float(i int) float32 {
	v, _ := a.Value(i)
	return float32(v.Float64())
}

func (a *MutableArray) Double(i int) float64 {
	v, _ := a.Value(i)
	return v.Float64()
}

func (a *MutableArray) Number(i int) json.Number {
	v, _ := a.Value(i)
	return v.Number()
}

func (a *MutableArray) Bool(i int) bool {
	v, _ := a.Value(i)
	return v.Bool()
}

func (a *MutableArray) Date(i int) time.Time {
	v, _ := a.Value(i)
	return v.Date()
}

func (a *MutableArray) Blob(i int) *Blob {
	v, _ := a.Value(i)
	return v.Blob()
}

// Array returns a live view of the array at i, or nil.
func (a *MutableArray) Array(i int) *MutableArray {
	v, _ := a.Value(i)
	return v.mutableArray()
}

// Dictionary returns a live view of the dictionary at i, or nil.
func (a *MutableArray) Dictionary(i int) *MutableDictionary {
	v, _ := a.Value(i)
	return v.mutableDictionary()
}

func (a *MutableArray) All() iter.Seq2[int, Value] {
	return a.AsValue().Elems()
}

// ToSlice returns a deep copy of a built from plain Go values.
func (a *MutableArray) ToSlice() []any {
	if a == nil {
		return []any{}
	}
	return a.AsValue().Plain().([]any)
}

// Path returns a lazily resolved accessor for the kinded path p, such as
// "a.b[0]". The empty path is a itself, which can be read but not
// written through.
func (a *MutableArray) Path(p string) *Fragment {
	return rootFragment(a.AsValue()).Path(p)
}

// Fragment returns a lazily resolved accessor for index i.
func (a *MutableArray) Fragment(i int) *Fragment {
	return rootFragment(a.AsValue()).Index(i)
}

func (a *MutableArray) ToJSON() string {
	if a == nil {
		return "[]"
	}
	return a.AsValue().String()
}

func (a *MutableArray) MarshalJSON() ([]byte, error) {
	return AppendJSON(nil, a.AsValue()), nil
}

func (a *MutableArray) UnmarshalJSON(data []byte) error {
	return a.SetJSON(string(data))
}

// Freeze returns an immutable deep copy of a.
func (a *MutableArray) Freeze() *Array {
	return a.AsValue().freeze().frozenArray()
}

func (a *MutableArray) Changed() bool {
	if a == nil {
		return false
	}
	return a.AsValue().changedDeep()
}

func (a *MutableArray) ClearChanged() {
	a.AsValue().clearChanged()
}

func (a *MutableArray) Equal(o *MutableArray) bool {
	return Equal(a.AsValue(), o.AsValue())
}

func indexContext(i int, err error) error {
	return fmt.Errorf("index %d: %w", i, err)
}
