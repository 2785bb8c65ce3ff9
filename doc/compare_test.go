package doc

import (
	"math"
	"testing"
	"time"
)

func mustParse(t *testing.T, text string) Value {
	t.Helper()
	v, err := ParseJSON([]byte(text))
	if err != nil {
		t.Fatalf("parse %s: %v", text, err)
	}
	return v
}

func TestCompare(t *testing.T) {
	when := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	blobA := FromBlob(NewBlob("", []byte("a")))
	tests := []struct {
		name     string
		a, b     string
		va, vb   *Value
		expected int
	}{
		// Type Ranking: Null < Bool < Number < String < Blob < Array < Dictionary
		{name: "Null < Bool", a: `null`, b: `false`, expected: -1},
		{name: "Bool < Number", a: `true`, b: `0`, expected: -1},
		{name: "Number < String", a: `1`, b: `""`, expected: -1},
		{name: "String < Array", a: `"z"`, b: `[]`, expected: -1},
		{name: "Array < Dictionary", a: `[1]`, b: `{}`, expected: -1},

		{name: "false < true", a: `false`, b: `true`, expected: -1},
		{name: "Int == Double", a: `1`, b: `1.0`, expected: 0},
		{name: "Int < Double", a: `1`, b: `1.5`, expected: -1},
		{name: "Double > Int", a: `2.5`, b: `2`, expected: 1},
		{name: "String order", a: `"a"`, b: `"b"`, expected: -1},

		{name: "Short Array < Long Array", a: `[1]`, b: `[1,2]`, expected: -1},
		{name: "Array Element", a: `[1,3]`, b: `[2]`, expected: -1},
		{name: "Dictionary key order ignored", a: `{"a":1,"b":2}`, b: `{"b":2,"a":1}`, expected: 0},
		{name: "Dictionary value", a: `{"a":1}`, b: `{"a":2}`, expected: -1},
		{name: "Dictionary key", a: `{"a":1}`, b: `{"b":0}`, expected: -1},
		{name: "Dictionary size", a: `{"a":1}`, b: `{"a":1,"b":0}`, expected: -1},

		{name: "Date == String", va: ptr(FromDate(when)), vb: ptr(FromString("2022-01-01T00:00:00.000Z")), expected: 0},
		{name: "String < Blob", va: ptr(FromString("x")), vb: &blobA, expected: -1},
		{name: "Blob == Blob", va: &blobA, vb: ptr(FromBlob(NewBlob("", []byte("a")))), expected: 0},
		{name: "MaxInt64 < 2^63", va: ptr(FromInt(math.MaxInt64)), vb: ptr(FromFloat(math.Exp2(63))), expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := tt.va, tt.vb
			if a == nil {
				a, b = ptr(mustParse(t, tt.a)), ptr(mustParse(t, tt.b))
			}
			if got := Compare(*a, *b); got != tt.expected {
				t.Errorf("Compare(%s, %s) = %d, expected %d", a, b, got, tt.expected)
			}
			if got := Compare(*b, *a); got != -tt.expected {
				t.Errorf("Compare(%s, %s) = %d, expected %d", b, a, got, -tt.expected)
			}
			if tt.expected == 0 && a.Hash() != b.Hash() {
				t.Errorf("equal values hash differently: %s %s", a, b)
			}
		})
	}
}

func ptr(v Value) *Value {
	return &v
}

func TestHashDistinguishes(t *testing.T) {
	vals := []string{`null`, `false`, `0`, `0.5`, `""`, `"0"`, `[]`, `{}`, `[0]`, `{"a":0}`, `{"a":"0"}`, `[[]]`, `["a","b"]`, `["ab"]`}
	seen := map[uint64]string{}
	for _, text := range vals {
		h := mustParse(t, text).Hash()
		if prev, ok := seen[h]; ok {
			t.Errorf("%s and %s hash equally", prev, text)
		}
		seen[h] = text
	}
	d := mustParse(t, `{"x":[1,2]}`)
	if d.Digest() != mustParse(t, `{"x":[1,2.0]}`).Digest() {
		t.Errorf("digest not structural")
	}
	if len(d.Digest()) != 64 {
		t.Errorf("digest %q", d.Digest())
	}
}
