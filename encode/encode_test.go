package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/signadot/docval/doc"
	"github.com/signadot/docval/format"
	"github.com/signadot/docval/parse"
)

func mustValue(t *testing.T, text string) doc.Value {
	t.Helper()
	v, err := doc.ParseJSON([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestEncodeJSON(t *testing.T) {
	tests := []struct {
		in   string
		opts []EncodeOption
		out  string
	}{
		{in: `{"n":42,"s":"hi"}`, out: "{\n  \"n\": 42,\n  \"s\": \"hi\"\n}\n"},
		{in: `{"n":42,"s":"hi"}`, opts: []EncodeOption{EncodeWire(true)}, out: "{\"n\":42,\"s\":\"hi\"}\n"},
		{in: `{"a":[],"b":{},"c":[1.0,null]}`, opts: []EncodeOption{EncodeIndent(1)}, out: "{\n \"a\": [],\n \"b\": {},\n \"c\": [\n  1.0,\n  null\n ]\n}\n"},
		{in: `"x"`, out: "\"x\"\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Encode(mustValue(t, tt.in), &buf, tt.opts...); err != nil {
			t.Fatal(err)
		}
		if buf.String() != tt.out {
			t.Errorf("%s: expected %q, got %q", tt.in, tt.out, buf.String())
		}
	}
}

func TestEncodeJSONReparses(t *testing.T) {
	in := mustValue(t, `{"z":{"y":[1,2.5,"s",{"q":null}]},"a":true}`)
	out, err := doc.ParseJSON([]byte(MustString(in)))
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != in.String() {
		t.Errorf("expected %s, got %s", in, out)
	}
}

func TestEncodeColors(t *testing.T) {
	c := NewColors()
	marked := &Colors{Default: colorDefault, Map: map[Colorable]func(string, ...any) string{}}
	for k := range c.Map {
		marked.Map[k] = func(v string, _ ...any) string { return "<" + v + ">" }
	}
	got := MustString(mustValue(t, `{"k":1}`), EncodeWire(true), EncodeColors(marked))
	if got != `<{><"k"><:><1><}>` {
		t.Errorf("got %s", got)
	}
}

func TestEncodeYAML(t *testing.T) {
	d, err := doc.NewMutableDictionaryFromJSON(`{"z":1,"a":[true,"007",1.0,null],"m":{},"d":"2024-01-02T00:00:00.000Z"}`)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetBlob("raw", doc.NewBlob(doc.OctetStream, []byte("hello"))); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(d.AsValue(), &buf, EncodeFormat(format.YAMLFormat)); err != nil {
		t.Fatal(err)
	}
	text := buf.String()
	if !strings.HasPrefix(text, "z: 1\na:\n") {
		t.Errorf("key order lost:\n%s", text)
	}
	if !strings.Contains(text, "!!binary") {
		t.Errorf("binary blob not tagged:\n%s", text)
	}
	back, err := parse.Parse(buf.Bytes(), parse.ParseYAML())
	if err != nil {
		t.Fatal(err)
	}
	// the date string stays a string in JSON text but reads back as a Date
	if !doc.Equal(back, d.AsValue()) {
		t.Errorf("round trip:\n%s\n%s", d.ToJSON(), back)
	}
	raw, _ := back.Lookup("raw")
	if raw.Blob() == nil || string(raw.Blob().Content()) != "hello" {
		t.Errorf("blob content lost: %s", raw)
	}
}

func TestEncodeCBOR(t *testing.T) {
	in := mustValue(t, `{"b":[1,"x"],"a":{}}`)
	var buf bytes.Buffer
	if err := Encode(in, &buf, EncodeFormat(format.CBORFormat)); err != nil {
		t.Fatal(err)
	}
	back, err := parse.Parse(buf.Bytes(), parse.ParseCBOR())
	if err != nil {
		t.Fatal(err)
	}
	if back.String() != in.String() {
		t.Errorf("got %s", back)
	}
}

func TestEncodeBlobPlaceholder(t *testing.T) {
	b := doc.NewBlob("text/plain", []byte("hi"))
	got := MustString(doc.FromBlob(b), EncodeWire(true))
	want := doc.FromBlob(b).String()
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestFormatFromOpts(t *testing.T) {
	if FormatFromOpts(EncodeWire(true)) != format.JSONFormat {
		t.Errorf("default format")
	}
	if FormatFromOpts(EncodeFormat(format.YAMLFormat)) != format.YAMLFormat {
		t.Errorf("yaml format")
	}
}
