package doc

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/signadot/docval/doc/kpath"
)

// Fragment is a path bound accessor over a container. It holds no value of
// its own: every read or write resolves the path against the container as
// it is at that moment.
//
// Reads through a fragment whose path does not resolve yield zero values.
// Writes require the parent of the last segment to resolve to a container
// of the matching kind, or fail with ErrNotContainer.
type Fragment struct {
	parent *Fragment
	root   Value // set on the root fragment only

	key     string
	index   int
	byIndex bool

	err error // path parse error, reported on write
}

func rootFragment(root Value) *Fragment {
	return &Fragment{root: root}
}

func (f *Fragment) isRoot() bool {
	return f.parent == nil
}

// Key returns a fragment for key below f.
func (f *Fragment) Key(key string) *Fragment {
	return &Fragment{parent: f, key: key, err: f.err}
}

// Index returns a fragment for index i below f.
func (f *Fragment) Index(i int) *Fragment {
	return &Fragment{parent: f, index: i, byIndex: true, err: f.err}
}

// Path returns a fragment for the kinded path p below f, e.g. "a.b[0]".
func (f *Fragment) Path(p string) *Fragment {
	kp, err := kpath.Parse(p)
	if err != nil {
		return &Fragment{parent: f, err: err}
	}
	res := f
	for x := kp; x != nil; x = x.Next {
		switch {
		case x.Field != nil:
			res = res.Key(*x.Field)
		case x.Index != nil:
			res = res.Index(*x.Index)
		}
	}
	return res
}

// KPath returns the path of f relative to its root container.
func (f *Fragment) KPath() *kpath.KPath {
	if f.isRoot() {
		return nil
	}
	seg := kpath.Field(f.key)
	if f.byIndex {
		seg = kpath.Index(f.index)
	}
	return f.parent.KPath().Append(seg)
}

func (f *Fragment) resolve() (Value, bool) {
	if f.isRoot() {
		return f.root, f.root.typ == ArrayType || f.root.typ == DictionaryType
	}
	if f.err != nil {
		return Value{}, false
	}
	p, ok := f.parent.resolve()
	if !ok {
		return Value{}, false
	}
	if f.byIndex {
		return p.At(f.index)
	}
	return p.Lookup(f.key)
}

// Exists reports whether the path of f currently resolves.
func (f *Fragment) Exists() bool {
	_, ok := f.resolve()
	return ok
}

// Value returns the value at f, or null if it does not resolve.
func (f *Fragment) Value() Value {
	v, _ := f.resolve()
	return v
}

func (f *Fragment) Get() any {
	return f.Value().Native()
}

func (f *Fragment) String() string {
	v := f.Value()
	if v.typ != StringType && v.typ != DateType {
		return ""
	}
	return v.Str()
}

func (f *Fragment) Int() int {
	return int(f.Value().Int64())
}

func (f *Fragment) Int64() int64 {
	return f.Value().Int64()
}

func (f *Fragment) Float() float32 {
	return float32(f.Value().Float64())
}

func (f *Fragment) Double() float64 {
	return f.Value().Float64()
}

func (f *Fragment) Number() json.Number {
	return f.Value().Number()
}

func (f *Fragment) Bool() bool {
	return f.Value().Bool()
}

func (f *Fragment) Date() time.Time {
	return f.Value().Date()
}

func (f *Fragment) Blob() *Blob {
	return f.Value().Blob()
}

// Array returns a live view of the array at f, or nil.
func (f *Fragment) Array() *MutableArray {
	return f.Value().mutableArray()
}

// Dictionary returns a live view of the dictionary at f, or nil.
func (f *Fragment) Dictionary() *MutableDictionary {
	return f.Value().mutableDictionary()
}

// container resolves the parent of f for a write.
func (f *Fragment) container() (Value, error) {
	if f.err != nil {
		return Value{}, f.err
	}
	if f.isRoot() {
		return Value{}, fmt.Errorf("%w: fragment has no key or index", ErrNotContainer)
	}
	p, ok := f.parent.resolve()
	if !ok {
		return Value{}, fmt.Errorf("%w: %q does not resolve", ErrNotContainer, f.parent.KPath().String())
	}
	if p.readOnly() {
		return Value{}, fmt.Errorf("%w: %q", ErrReadOnly, f.KPath().String())
	}
	want := DictionaryType
	if f.byIndex {
		want = ArrayType
	}
	if p.typ != want {
		return Value{}, fmt.Errorf("%w: %q is %s, not %s", ErrNotContainer, f.parent.KPath().String(), p.typ, want)
	}
	return p, nil
}

// SetValue coerces v and stores it at f.
func (f *Fragment) SetValue(v any) error {
	p, err := f.container()
	if err != nil {
		return err
	}
	if f.byIndex {
		return p.mutableArray().SetValue(f.index, v)
	}
	return p.mutableDictionary().SetValue(f.key, v)
}

// Remove deletes the entry at f. Removing an absent dictionary key does
// nothing; an absent array index fails with ErrIndexOutOfBounds.
func (f *Fragment) Remove() error {
	p, err := f.container()
	if err != nil {
		return err
	}
	if f.byIndex {
		return p.mutableArray().Remove(f.index)
	}
	p.mutableDictionary().Remove(f.key)
	return nil
}

func (f *Fragment) SetString(v string) error {
	return f.SetValue(v)
}

func (f *Fragment) SetNumber(v json.Number) error {
	return f.SetValue(v)
}

func (f *Fragment) SetInt(v int) error {
	return f.SetValue(v)
}

func (f *Fragment) SetInt64(v int64) error {
	return f.SetValue(v)
}

func (f *Fragment) SetFloat(v float32) error {
	return f.SetValue(v)
}

func (f *Fragment) SetDouble(v float64) error {
	return f.SetValue(v)
}

func (f *Fragment) SetBool(v bool) error {
	return f.SetValue(v)
}

func (f *Fragment) SetDate(v time.Time) error {
	return f.SetValue(v)
}

func (f *Fragment) SetBlob(b *Blob) error {
	return f.SetValue(b)
}

func (f *Fragment) SetArray(a *MutableArray) error {
	return f.SetValue(a)
}

func (f *Fragment) SetDictionary(d *MutableDictionary) error {
	return f.SetValue(d)
}
