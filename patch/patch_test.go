package patch

import (
	"errors"
	"testing"
	"time"

	"github.com/signadot/docval/doc"
)

func mustDict(t *testing.T, text string) *doc.MutableDictionary {
	t.Helper()
	d, err := doc.NewMutableDictionaryFromJSON(text)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestApply(t *testing.T) {
	d := mustDict(t, `{"z":1,"a":{"y":[1,2],"x":"s"},"m":2.0}`)
	err := Apply(d, []byte(`[
		{"op":"replace","path":"/z","value":10},
		{"op":"add","path":"/a/y/-","value":3},
		{"op":"remove","path":"/a/x"},
		{"op":"add","path":"/b","value":true}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := d.ToJSON(), `{"z":10,"a":{"y":[1,2,3]},"m":2.0,"b":true}`; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestApplyAtomic(t *testing.T) {
	d := mustDict(t, `{"a":1}`)
	before := d.ToJSON()
	err := Apply(d, []byte(`[
		{"op":"replace","path":"/a","value":2},
		{"op":"remove","path":"/missing"}
	]`))
	if !errors.Is(err, ErrPatch) {
		t.Errorf("expected ErrPatch, got %v", err)
	}
	if d.ToJSON() != before {
		t.Errorf("failed patch changed the dictionary: %s", d.ToJSON())
	}
	if err := Apply(d, []byte(`{"op":"add"}`)); !errors.Is(err, ErrPatch) {
		t.Errorf("expected ErrPatch for malformed patch, got %v", err)
	}
	err = Apply(d, []byte(`[{"op":"test","path":"/a","value":5}]`))
	if !errors.Is(err, ErrPatch) {
		t.Errorf("expected failed test operation, got %v", err)
	}
}

func TestApplyKeepsTypes(t *testing.T) {
	when := time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)
	blob := doc.NewBlob("text/plain", []byte("body"))
	d := doc.NewMutableDictionary()
	if err := d.SetDate("when", when); err != nil {
		t.Fatal(err)
	}
	if err := d.SetBlob("att", blob); err != nil {
		t.Fatal(err)
	}
	if err := Apply(d, []byte(`[{"op":"add","path":"/n","value":1}]`)); err != nil {
		t.Fatal(err)
	}
	if v, _ := d.Value("when"); v.Type() != doc.DateType {
		t.Errorf("date became %s", v.Type())
	}
	if b := d.Blob("att"); b == nil || string(b.Content()) != "body" {
		t.Errorf("blob content lost")
	}
}

func TestMerge(t *testing.T) {
	d := mustDict(t, `{"b":1,"a":{"x":1,"y":2}}`)
	if err := Merge(d, []byte(`{"a":{"x":null,"z":3},"c":"new"}`)); err != nil {
		t.Fatal(err)
	}
	if got, want := d.ToJSON(), `{"b":1,"a":{"y":2,"z":3},"c":"new"}`; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if err := Merge(d, []byte(`[`)); !errors.Is(err, ErrPatch) {
		t.Errorf("expected ErrPatch, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	from := mustDict(t, `{"a":[1,2],"b":{"c":1},"d":"x"}`)
	to := mustDict(t, `{"a":[1,2,3],"b":{"c":2},"e":null}`)
	p := Create(from, to)
	work := mustDict(t, from.ToJSON())
	if err := Apply(work, []byte(p)); err != nil {
		t.Fatalf("%s: %v", p, err)
	}
	if !work.Equal(to) {
		t.Errorf("patch %s produced %s", p, work.ToJSON())
	}

	mp, err := CreateMerge(from, to)
	if err != nil {
		t.Fatal(err)
	}
	work = mustDict(t, from.ToJSON())
	if err := Merge(work, mp); err != nil {
		t.Fatal(err)
	}
	// merge patches cannot set null
	if work.Contains("e") || work.Contains("d") {
		t.Errorf("merge result %s", work.ToJSON())
	}
}
