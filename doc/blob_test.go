package doc

import (
	"testing"
)

func TestBlob(t *testing.T) {
	content := []byte("payload")
	b := NewBlob("application/x-test", content)
	content[0] = 'X'
	if string(b.Content()) != "payload" {
		t.Errorf("blob shares caller's buffer")
	}
	if b.Digest() != ComputeDigest([]byte("payload")) || !ValidDigest(b.Digest()) {
		t.Errorf("digest %q", b.Digest())
	}
	ref := NewBlobRef(b.ContentType(), b.Digest(), b.Length())
	if ref.HasContent() || !ref.Equal(b) {
		t.Errorf("reference should equal its blob")
	}
	if got := ref.WithContent(b.Content()); !got.HasContent() || !got.Equal(b) {
		t.Errorf("WithContent")
	}
	props := b.Properties()
	if props.String(BlobTypeKey) != BlobTypeValue || props.Int64(BlobLengthKey) != 7 {
		t.Errorf("properties %s", props.ToJSON())
	}
	if parsed, ok := blobFromProperties(props.n); !ok || !parsed.Equal(b) {
		t.Errorf("properties not recognized")
	}
}

func TestValidDigest(t *testing.T) {
	for _, d := range []string{"", "blake3-", "sha1-AAAA", "blake3-AAAA", ComputeDigest(nil)[1:]} {
		if ValidDigest(d) {
			t.Errorf("%q accepted", d)
		}
	}
	if !ValidDigest(ComputeDigest(nil)) {
		t.Errorf("empty content digest rejected")
	}
}

func TestBlobPlaceholderNeedsDigest(t *testing.T) {
	v := mustParse(t, `{"@type":"blob","length":3}`)
	if v.Type() != DictionaryType {
		t.Errorf("placeholder without digest read as %s", v.Type())
	}
}
