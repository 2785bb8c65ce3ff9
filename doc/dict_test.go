package doc

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func mustDict(t *testing.T, text string) *MutableDictionary {
	t.Helper()
	d, err := NewMutableDictionaryFromJSON(text)
	if err != nil {
		t.Fatalf("parse %s: %v", text, err)
	}
	return d
}

func TestDictionaryScenario(t *testing.T) {
	d := NewMutableDictionary()
	if err := d.SetInt("n", 42); err != nil {
		t.Fatal(err)
	}
	if err := d.SetString("s", "hi"); err != nil {
		t.Fatal(err)
	}
	if got := d.ToJSON(); got != `{"n":42,"s":"hi"}` {
		t.Errorf("got %s", got)
	}
}

func TestDictionaryInsertionOrder(t *testing.T) {
	d := NewMutableDictionary()
	for _, k := range []string{"z", "a", "m"} {
		if err := d.SetBool(k, true); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.SetInt("a", 2); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, d.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if got := d.ToJSON(); got != `{"z":true,"a":2,"m":true}` {
		t.Errorf("got %s", got)
	}
	d.Remove("z")
	if err := d.SetBool("z", false); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "m", "z"}, d.Keys()); diff != "" {
		t.Errorf("keys after re-add (-want +got):\n%s", diff)
	}
}

func TestDictionaryLiveView(t *testing.T) {
	d := NewMutableDictionary()
	a := NewMutableArray()
	if err := d.SetArray("k", a); err != nil {
		t.Fatal(err)
	}
	if err := d.Array("k").Append("x"); err != nil {
		t.Fatal(err)
	}
	if a.Count() != 1 || a.String(0) != "x" {
		t.Errorf("append through view not visible in original: %s", a.ToJSON())
	}
	other := d.Array("k")
	if err := a.AppendInt(2); err != nil {
		t.Fatal(err)
	}
	if other.Count() != 2 {
		t.Errorf("append through original not visible in view: %s", other.ToJSON())
	}
	if got := d.ToJSON(); got != `{"k":["x",2]}` {
		t.Errorf("got %s", got)
	}

	child := d.Dictionary("missing")
	if child != nil {
		t.Errorf("expected nil view for missing key")
	}
	if err := d.SetJSON(`{"c":{"v":1}}`); err != nil {
		t.Fatal(err)
	}
	child = d.Dictionary("c")
	if err := child.SetInt("v", 2); err != nil {
		t.Fatal(err)
	}
	if d.Dictionary("c").Int("v") != 2 {
		t.Errorf("got %s", d.ToJSON())
	}
}

func TestDictionaryRemoveIdempotent(t *testing.T) {
	d := mustDict(t, `{"a":1,"b":2}`)
	d.Remove("a")
	first := d.ToJSON()
	d.Remove("a")
	if second := d.ToJSON(); first != second || second != `{"b":2}` {
		t.Errorf("first %s, second %s", first, second)
	}
	d.Remove("never")
	if d.Count() != 1 {
		t.Errorf("count %d", d.Count())
	}
}

func TestDictionarySetDataReplaces(t *testing.T) {
	d := mustDict(t, `{"old":1,"keep":2}`)
	if err := d.SetData(map[string]any{"keep": 3, "new": []any{"x"}}); err != nil {
		t.Fatal(err)
	}
	if d.Contains("old") {
		t.Errorf("old key survived SetData")
	}
	want := map[string]any{"keep": int64(3), "new": []any{"x"}}
	if diff := cmp.Diff(want, d.ToMap()); diff != "" {
		t.Errorf("contents (-want +got):\n%s", diff)
	}
}

func TestDictionaryTypeMismatch(t *testing.T) {
	d := NewMutableDictionary()
	if err := d.SetString("k", "x"); err != nil {
		t.Fatal(err)
	}
	if d.Array("k") != nil {
		t.Errorf("expected nil array")
	}
	if d.Dictionary("k") != nil {
		t.Errorf("expected nil dictionary")
	}
	if d.Blob("k") != nil {
		t.Errorf("expected nil blob")
	}
	if d.Int("k") != 0 || d.Double("k") != 0 {
		t.Errorf("expected zero numbers")
	}
	if d.String("missing") != "" || d.Get("missing") != nil {
		t.Errorf("expected zero values for a missing key")
	}
}

func TestDictionaryAtomicFailure(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"out of range number", `{"a": {"b": 1e999}}`, ErrUnsupportedValueType},
		{"malformed", `{"a": {"b": }}`, ErrInvalidJSON},
		{"truncated", `{"a": `, ErrInvalidJSON},
		{"trailing", `{} {}`, ErrInvalidJSON},
		{"empty", ``, ErrInvalidJSON},
		{"array top level", `[1]`, ErrInvalidJSONTopLevel},
		{"scalar top level", `3`, ErrInvalidJSONTopLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustDict(t, `{"x":1}`)
			err := d.SetJSON(tt.text)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if got := d.ToJSON(); got != `{"x":1}` {
				t.Errorf("contents changed to %s", got)
			}
		})
	}

	d := mustDict(t, `{"x":1}`)
	err := d.SetData(map[string]any{"a": map[string]any{"b": make(chan int)}})
	if !errors.Is(err, ErrUnsupportedValueType) {
		t.Fatalf("expected ErrUnsupportedValueType, got %v", err)
	}
	if got := d.ToJSON(); got != `{"x":1}` {
		t.Errorf("contents changed to %s", got)
	}
}

func TestDictionaryNull(t *testing.T) {
	d := NewMutableDictionary()
	if err := d.SetValue("k", nil); err != nil {
		t.Fatal(err)
	}
	if err := d.SetBlob("b", nil); err != nil {
		t.Fatal(err)
	}
	if err := d.SetDictionary("d", nil); err != nil {
		t.Fatal(err)
	}
	v, ok := d.Value("k")
	if !ok || !v.IsNull() {
		t.Errorf("expected present null, got %v %s", ok, v.Type())
	}
	if got := d.ToJSON(); got != `{"k":null,"b":null,"d":null}` {
		t.Errorf("got %s", got)
	}
}

func TestDictionaryCycles(t *testing.T) {
	d := NewMutableDictionary()
	if err := d.SetDictionary("me", d); !errors.Is(err, ErrCyclicReference) {
		t.Errorf("direct: expected ErrCyclicReference, got %v", err)
	}
	child := NewMutableDictionary()
	if err := d.SetDictionary("c", child); err != nil {
		t.Fatal(err)
	}
	arr := NewMutableArray()
	if err := child.SetArray("a", arr); err != nil {
		t.Fatal(err)
	}
	if err := arr.Append(d); !errors.Is(err, ErrCyclicReference) {
		t.Errorf("transitive: expected ErrCyclicReference, got %v", err)
	}
	if err := d.SetData(map[string]any{"x": d}); !errors.Is(err, ErrCyclicReference) {
		t.Errorf("set data: expected ErrCyclicReference, got %v", err)
	}
	if got := d.ToJSON(); got != `{"c":{"a":[]}}` {
		t.Errorf("contents changed to %s", got)
	}
	// the same child twice is fine
	if err := d.SetDictionary("c2", child); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDictionaryTypedGetters(t *testing.T) {
	when := time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)
	d := NewMutableDictionary()
	for _, err := range []error{
		d.SetDouble("d", 2.5),
		d.SetFloat("f", 0.5),
		d.SetInt64("i", 1<<40),
		d.SetNumber("n", json.Number("7")),
		d.SetDate("t", when),
		d.SetString("ts", "2023-05-06T07:08:09Z"),
		d.SetBool("no", false),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	if d.Int("d") != 2 || d.Int64("d") != 2 || d.Double("d") != 2.5 || d.Number("d") != "2.5" {
		t.Errorf("double getters: %d %d %v %q", d.Int("d"), d.Int64("d"), d.Double("d"), d.Number("d"))
	}
	if d.Float("f") != 0.5 {
		t.Errorf("float %v", d.Float("f"))
	}
	if d.Int64("i") != 1<<40 || d.Double("i") != float64(1<<40) {
		t.Errorf("int getters %d %v", d.Int64("i"), d.Double("i"))
	}
	if v, _ := d.Value("n"); v.Type() != IntType {
		t.Errorf("number stored as %s", v.Type())
	}
	if !d.Date("t").Equal(when) || !d.Date("ts").Equal(when) {
		t.Errorf("dates %v %v", d.Date("t"), d.Date("ts"))
	}
	if d.String("t") != "2023-05-06T07:08:09.000Z" {
		t.Errorf("date text %q", d.String("t"))
	}
	if !d.Bool("d") || d.Bool("no") || d.Bool("missing") || !d.Bool("ts") {
		t.Errorf("bool conversions")
	}
	if _, ok := d.Get("t").(time.Time); !ok {
		t.Errorf("expected native time, got %T", d.Get("t"))
	}
}

func TestDictionaryNilReceiver(t *testing.T) {
	var d *MutableDictionary
	if d.Count() != 0 || d.Contains("a") || d.Keys() != nil {
		t.Errorf("nil dictionary not empty")
	}
	if got := d.Dictionary("a").Dictionary("b").String("c"); got != "" {
		t.Errorf("got %q", got)
	}
	if d.ToJSON() != "{}" {
		t.Errorf("got %s", d.ToJSON())
	}
}

func TestDictionaryZeroValue(t *testing.T) {
	var d MutableDictionary
	if err := d.SetInt("a", 1); err != nil {
		t.Fatal(err)
	}
	if d.ToJSON() != `{"a":1}` {
		t.Errorf("got %s", d.ToJSON())
	}
}

func TestDictionaryChanged(t *testing.T) {
	d := mustDict(t, `{"a":{"b":1}}`)
	if d.Changed() {
		t.Fatal("fresh dictionary reports changed")
	}
	if err := d.Dictionary("a").SetInt("b", 2); err != nil {
		t.Fatal(err)
	}
	if !d.Changed() {
		t.Error("nested change not reported")
	}
	d.ClearChanged()
	if d.Changed() || d.Dictionary("a").Changed() {
		t.Error("ClearChanged did not reset")
	}
	d.Remove("nope")
	if d.Changed() {
		t.Error("removing an absent key reported a change")
	}
}

func TestDictionaryFreeze(t *testing.T) {
	d := mustDict(t, `{"x":1,"sub":{"y":[1,2]}}`)
	f := d.Freeze()
	if err := d.SetInt("x", 2); err != nil {
		t.Fatal(err)
	}
	if f.Int("x") != 1 {
		t.Errorf("frozen copy changed")
	}
	if f.Dictionary("sub").Array("y").Int(1) != 2 {
		t.Errorf("frozen nested read: %s", f.ToJSON())
	}
	if _, ok := f.Get("sub").(*Dictionary); !ok {
		t.Errorf("expected *Dictionary, got %T", f.Get("sub"))
	}
	if err := f.Fragment("x").SetInt(3); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	m := f.Mutable()
	if err := m.Dictionary("sub").Array("y").Append(3); err != nil {
		t.Fatal(err)
	}
	if f.ToJSON() != `{"x":1,"sub":{"y":[1,2]}}` {
		t.Errorf("mutable copy aliased frozen tree: %s", f.ToJSON())
	}
}

func TestDictionaryJSONMarshaler(t *testing.T) {
	d := mustDict(t, `{"z":1,"a":[true,null]}`)
	data, err := json.Marshal(map[string]any{"d": d})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"d":{"z":1,"a":[true,null]}}` {
		t.Errorf("got %s", data)
	}

	var holder struct{ D *MutableDictionary }
	if err := json.Unmarshal([]byte(`{"D":{"z":1,"a":{"k":"v"}}}`), &holder); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(holder.D.Keys(), []string{"z", "a"}) {
		t.Errorf("keys %v", holder.D.Keys())
	}
	if holder.D.Dictionary("a").String("k") != "v" {
		t.Errorf("got %s", holder.D.ToJSON())
	}
}

func TestDictionaryAll(t *testing.T) {
	d := mustDict(t, `{"b":1,"a":2,"c":3}`)
	var keys []string
	for k, v := range d.All() {
		if k == "c" {
			break
		}
		keys = append(keys, k+"="+v.String())
	}
	if diff := cmp.Diff([]string{"b=1", "a=2"}, keys); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDictionarySetEntries(t *testing.T) {
	d := mustDict(t, `{"a":1}`)
	d.ClearChanged()
	src := mustDict(t, `{"z":{"k":1},"b":2}`)
	if err := d.SetEntries(src); err != nil {
		t.Fatal(err)
	}
	if got := d.ToJSON(); got != `{"z":{"k":1},"b":2}` {
		t.Errorf("got %s", got)
	}
	if !d.Changed() {
		t.Errorf("SetEntries not tracked as a change")
	}
	if err := src.SetInt("c", 3); err != nil {
		t.Fatal(err)
	}
	if d.Contains("c") {
		t.Errorf("top level shared with source")
	}
	if err := src.Dictionary("z").SetInt("k", 2); err != nil {
		t.Fatal(err)
	}
	if d.Dictionary("z").Int("k") != 2 {
		t.Errorf("nested containers should be shared")
	}
	if err := d.Dictionary("z").SetEntries(d); !errors.Is(err, ErrCyclicReference) {
		t.Errorf("expected ErrCyclicReference, got %v", err)
	}
	if err := d.SetEntries(nil); err != nil || d.Count() != 0 {
		t.Errorf("nil source should clear: %v %s", err, d.ToJSON())
	}
}
