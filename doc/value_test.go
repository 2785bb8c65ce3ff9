package doc

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestValueBool(t *testing.T) {
	tests := []struct {
		in   Value
		want bool
	}{
		{Null(), false},
		{FromBool(false), false},
		{FromBool(true), true},
		{FromInt(0), false},
		{FromInt(-1), true},
		{FromFloat(0), false},
		{FromFloat(0.1), true},
		{FromString(""), true},
		{FromString("false"), true},
		{mustParse(t, `[]`), true},
	}
	for _, tt := range tests {
		if got := tt.in.Bool(); got != tt.want {
			t.Errorf("%s.Bool() = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestValueNumbers(t *testing.T) {
	if FromFloat(-2.7).Int64() != -2 {
		t.Errorf("truncation")
	}
	if FromBool(true).Int64() != 1 || FromBool(true).Float64() != 1 {
		t.Errorf("bool as number")
	}
	if FromString("3").Int64() != 0 || FromString("3").Number() != "" {
		t.Errorf("strings are not numbers")
	}
	if FromFloat(3).Number() != "3.0" || FromInt(3).Number() != "3" {
		t.Errorf("number text")
	}
}

func TestValuePlain(t *testing.T) {
	when := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	d := NewMutableDictionary()
	if err := d.SetData(map[string]any{"a": []any{1, "x", nil, when}, "b": map[string]any{"c": 0.5}}); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"a": []any{int64(1), "x", nil, when},
		"b": map[string]any{"c": 0.5},
	}
	if diff := cmp.Diff(want, d.AsValue().Plain()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestValueIteration(t *testing.T) {
	v := mustParse(t, `{"k":[1,2,3]}`)
	if v.Len() != 1 {
		t.Errorf("len %d", v.Len())
	}
	arr, ok := v.Lookup("k")
	if !ok {
		t.Fatal("missing k")
	}
	sum := int64(0)
	for i, elt := range arr.Elems() {
		sum += int64(i) * elt.Int64()
	}
	if sum != 0*1+1*2+2*3 {
		t.Errorf("sum %d", sum)
	}
	if _, ok := arr.At(3); ok {
		t.Errorf("At out of range")
	}
	if _, ok := arr.Lookup("k"); ok {
		t.Errorf("Lookup on array")
	}
	for range FromInt(1).Entries() {
		t.Errorf("scalar has entries")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"2024-01-02T03:04:05Z", "2024-01-02T03:04:05.000Z", false},
		{"2024-01-02T03:04:05.123456+02:00", "2024-01-02T01:04:05.123Z", false},
		{"2024-01-02", "2024-01-02T00:00:00.000Z", false},
		{"yesterday", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.err {
			if err == nil {
				t.Errorf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		if FormatDate(got) != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.in, tt.want, FormatDate(got))
		}
	}
}

func TestTypeText(t *testing.T) {
	for _, typ := range Types() {
		text, err := typ.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Type
		if err := back.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if back != typ {
			t.Errorf("%s round tripped to %s", typ, back)
		}
	}
	var bad Type
	if err := bad.UnmarshalText([]byte("Float")); err == nil {
		t.Errorf("expected error")
	}
}
