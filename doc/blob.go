package doc

import (
	"encoding/base64"
	"strings"

	"github.com/zeebo/blake3"
)

// Blob property names used in the placeholder object written in place of
// blob content.
const (
	BlobTypeKey        = "@type"
	BlobTypeValue      = "blob"
	BlobContentTypeKey = "content_type"
	BlobDigestKey      = "digest"
	BlobLengthKey      = "length"

	digestPrefix = "blake3-"
)

// Blob is an opaque binary payload with a content type. A Blob either
// carries its content, or is a reference (digest and length only) to
// content held by a blob store.
//
// Blobs are immutable once created.
type Blob struct {
	contentType string
	digest      string
	length      int64
	content     []byte
}

// NewBlob returns a blob holding a copy of content.
func NewBlob(contentType string, content []byte) *Blob {
	c := make([]byte, len(content))
	copy(c, content)
	return &Blob{
		contentType: contentType,
		digest:      ComputeDigest(c),
		length:      int64(len(c)),
		content:     c,
	}
}

// NewBlobRef returns a blob reference with no content.
func NewBlobRef(contentType, digest string, length int64) *Blob {
	return &Blob{
		contentType: contentType,
		digest:      digest,
		length:      length,
	}
}

// ComputeDigest returns the blob digest of content.
func ComputeDigest(content []byte) string {
	sum := blake3.Sum256(content)
	return digestPrefix + base64.StdEncoding.EncodeToString(sum[:])
}

// ValidDigest reports whether d has the form produced by ComputeDigest.
func ValidDigest(d string) bool {
	enc, ok := strings.CutPrefix(d, digestPrefix)
	if !ok {
		return false
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	return err == nil && len(raw) == 32
}

func (b *Blob) ContentType() string { return b.contentType }
func (b *Blob) Digest() string      { return b.digest }
func (b *Blob) Length() int64       { return b.length }

// Content returns the blob bytes, or nil for a reference. The returned
// slice must not be modified.
func (b *Blob) Content() []byte { return b.content }

func (b *Blob) HasContent() bool { return b.content != nil }

// WithContent returns a blob carrying content for the reference b.
func (b *Blob) WithContent(content []byte) *Blob {
	return &Blob{
		contentType: b.contentType,
		digest:      b.digest,
		length:      int64(len(content)),
		content:     content,
	}
}

// Equal reports whether b and o describe the same payload.
func (b *Blob) Equal(o *Blob) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.digest == o.digest && b.contentType == o.contentType && b.length == o.length
}

// Properties returns the placeholder object for b, keyed in the order it
// is encoded.
func (b *Blob) Properties() *Dictionary {
	n := newDictNode(4)
	n.set(BlobTypeKey, FromString(BlobTypeValue))
	if b.contentType != "" {
		n.set(BlobContentTypeKey, FromString(b.contentType))
	}
	n.set(BlobDigestKey, FromString(b.digest))
	n.set(BlobLengthKey, FromInt(b.length))
	n.frozen = true
	return &Dictionary{n: n}
}

// blobFromProperties recognizes a placeholder object.
func blobFromProperties(n *dictNode) (*Blob, bool) {
	typ, ok := n.get(BlobTypeKey)
	if !ok || typ.typ != StringType || typ.s != BlobTypeValue {
		return nil, false
	}
	digest, ok := n.get(BlobDigestKey)
	if !ok || digest.typ != StringType {
		return nil, false
	}
	b := &Blob{digest: digest.s}
	if ct, ok := n.get(BlobContentTypeKey); ok && ct.typ == StringType {
		b.contentType = ct.s
	}
	if ln, ok := n.get(BlobLengthKey); ok && ln.typ.IsNumber() {
		b.length = ln.Int64()
	}
	return b, true
}

// BlobFromProperties returns the blob reference described by a placeholder
// dictionary, or false when d is not a placeholder.
func BlobFromProperties(d *MutableDictionary) (*Blob, bool) {
	if d == nil || d.n == nil {
		return nil, false
	}
	return blobFromProperties(d.n)
}
