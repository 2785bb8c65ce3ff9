package doc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArrayBounds(t *testing.T) {
	a := NewMutableArray()
	if err := a.SetValue(0, 1); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("set on empty: expected ErrIndexOutOfBounds, got %v", err)
	}
	if err := a.Insert(0, "first"); err != nil {
		t.Fatal(err)
	}
	if err := a.Insert(1, "last"); err != nil {
		t.Fatal(err)
	}
	if err := a.Insert(3, "past"); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("insert past end: expected ErrIndexOutOfBounds, got %v", err)
	}
	if err := a.Remove(-1); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("remove -1: expected ErrIndexOutOfBounds, got %v", err)
	}
	if err := a.SetString(2, "x"); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("typed set past end: expected ErrIndexOutOfBounds, got %v", err)
	}
	if a.ToJSON() != `["first","last"]` {
		t.Errorf("got %s", a.ToJSON())
	}
	if v, ok := a.Value(5); ok || !v.IsNull() {
		t.Errorf("out of range read should be absent")
	}
	if a.String(-1) != "" || a.Int(9) != 0 || a.Array(2) != nil {
		t.Errorf("out of range reads should be zero")
	}
}

func TestArrayRemoveShifts(t *testing.T) {
	a, err := NewMutableArrayFromJSON(`[0,1,2,3]`)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Remove(1); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{int64(0), int64(2), int64(3)}, a.ToSlice()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if err := a.Insert(1, 1.5); err != nil {
		t.Fatal(err)
	}
	if a.ToJSON() != `[0,1.5,2,3]` {
		t.Errorf("got %s", a.ToJSON())
	}
}

func TestArraySetJSON(t *testing.T) {
	a, err := NewMutableArrayFromData([]any{"keep"})
	if err != nil {
		t.Fatal(err)
	}
	if err := a.SetJSON(`{"a":1}`); !errors.Is(err, ErrInvalidJSONTopLevel) {
		t.Errorf("expected ErrInvalidJSONTopLevel, got %v", err)
	}
	if err := a.SetJSON(`[1,`); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("expected ErrInvalidJSON, got %v", err)
	}
	if a.ToJSON() != `["keep"]` {
		t.Errorf("contents changed to %s", a.ToJSON())
	}
	if err := a.SetJSON(`[{"k":[]}]`); err != nil {
		t.Fatal(err)
	}
	if a.Dictionary(0).Array("k") == nil {
		t.Errorf("got %s", a.ToJSON())
	}
}

func TestArrayNested(t *testing.T) {
	a := NewMutableArray()
	inner := NewMutableArray()
	if err := a.AppendArray(inner); err != nil {
		t.Fatal(err)
	}
	if err := a.AppendDictionary(NewMutableDictionary()); err != nil {
		t.Fatal(err)
	}
	if err := a.Array(0).AppendString("x"); err != nil {
		t.Fatal(err)
	}
	if err := a.Dictionary(1).SetInt("k", 1); err != nil {
		t.Fatal(err)
	}
	if inner.String(0) != "x" {
		t.Errorf("view not shared")
	}
	if err := inner.AppendArray(a); !errors.Is(err, ErrCyclicReference) {
		t.Errorf("expected ErrCyclicReference, got %v", err)
	}
	if err := a.SetArray(0, a); !errors.Is(err, ErrCyclicReference) {
		t.Errorf("expected ErrCyclicReference, got %v", err)
	}
	if a.ToJSON() != `[["x"],{"k":1}]` {
		t.Errorf("got %s", a.ToJSON())
	}
}

func TestArrayFreeze(t *testing.T) {
	a, err := NewMutableArrayFromData([]any{1, []any{2}})
	if err != nil {
		t.Fatal(err)
	}
	f := a.Freeze()
	if err := a.Array(1).AppendInt(3); err != nil {
		t.Fatal(err)
	}
	if f.Array(1).Count() != 1 {
		t.Errorf("frozen copy changed: %s", f.ToJSON())
	}
	if err := f.Fragment(0).SetInt(5); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	m := f.Mutable()
	if err := m.SetInt(0, 9); err != nil {
		t.Fatal(err)
	}
	if f.Int(0) != 1 || m.Int(0) != 9 {
		t.Errorf("copies aliased")
	}
	if !a.Changed() {
		t.Errorf("expected changed")
	}
}
