package kpath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func stringPtr(s string) *string { return &s }
func intPtr(i int) *int          { return &i }

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *KPath
		wantErr bool
	}{
		{
			name:  "empty path",
			input: "",
			want:  nil,
		},
		{
			name:  "simple field",
			input: "a",
			want:  &KPath{Field: stringPtr("a")},
		},
		{
			name:  "nested fields",
			input: "a.b.c",
			want: &KPath{
				Field: stringPtr("a"),
				Next: &KPath{
					Field: stringPtr("b"),
					Next:  &KPath{Field: stringPtr("c")},
				},
			},
		},
		{
			name:  "field then index",
			input: "a[3]",
			want: &KPath{
				Field: stringPtr("a"),
				Next:  &KPath{Index: intPtr(3)},
			},
		},
		{
			name:  "leading index",
			input: "[0].x",
			want: &KPath{
				Index: intPtr(0),
				Next:  &KPath{Field: stringPtr("x")},
			},
		},
		{
			name:  "quoted field",
			input: `a."b.c"[1]`,
			want: &KPath{
				Field: stringPtr("a"),
				Next: &KPath{
					Field: stringPtr("b.c"),
					Next:  &KPath{Index: intPtr(1)},
				},
			},
		},
		{
			name:  "quoted field with escape",
			input: `"say \"hi\""`,
			want:  &KPath{Field: stringPtr(`say "hi"`)},
		},
		{name: "double dot", input: "a..b", wantErr: true},
		{name: "leading dot", input: ".a", wantErr: true},
		{name: "unclosed bracket", input: "a[1", wantErr: true},
		{name: "negative index", input: "a[-1]", wantErr: true},
		{name: "unterminated quote", input: `"abc`, wantErr: true},
		{name: "junk after index", input: "a[1]b", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %s", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, in := range []string{
		"a",
		"a.b",
		"a[0].b",
		"[2][3]",
		`"with space".x`,
		`a."x.y"`,
		`""`,
	} {
		kp, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got := kp.String(); got != in {
			t.Errorf("String() = %q, want %q", got, in)
		}
	}
}

func TestAppendParentLast(t *testing.T) {
	kp := Field("a").Append(Index(2)).Append(Field("b c"))
	if got, want := kp.String(), `a[2]."b c"`; got != want {
		t.Errorf("Append: got %q want %q", got, want)
	}
	if got, want := kp.Parent().String(), "a[2]"; got != want {
		t.Errorf("Parent: got %q want %q", got, want)
	}
	if got, want := kp.Last().SegmentString(), `"b c"`; got != want {
		t.Errorf("Last: got %q want %q", got, want)
	}
	if kp.Len() != 3 {
		t.Errorf("Len: got %d want 3", kp.Len())
	}
	if Field("a").Parent() != nil {
		t.Errorf("single segment parent should be nil")
	}
}

func TestJoin(t *testing.T) {
	tests := []struct{ a, b, want string }{
		{"a", "b", "a.b"},
		{"a", "[0]", "a[0]"},
		{"", "b", "b"},
		{"a", "", "a"},
	}
	for _, tt := range tests {
		if got := Join(tt.a, tt.b); got != tt.want {
			t.Errorf("Join(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPointer(t *testing.T) {
	tests := []struct{ in, want string }{
		{"a.b[0]", "/a/b/0"},
		{`"x/y"."t~"`, "/x~1y/t~0"},
		{"", ""},
	}
	for _, tt := range tests {
		var kp *KPath
		if tt.in != "" {
			var err error
			kp, err = Parse(tt.in)
			if err != nil {
				t.Fatal(err)
			}
		}
		if got := kp.Pointer(); got != tt.want {
			t.Errorf("Pointer(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
