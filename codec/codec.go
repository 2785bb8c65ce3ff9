package codec

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"math/big"
	"reflect"
	"slices"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/signadot/docval/doc"
)

// CBOR tag numbers for document types without a native CBOR form.
const (
	// TagDict wraps a flat [k1, v1, k2, v2, ...] array so that the key
	// order of a dictionary survives encoding.
	TagDict uint64 = 0x646f6301
	// TagBlob wraps the blob placeholder map.
	TagBlob uint64 = 0x646f6302
	// TagDate is the standard RFC 3339 date/time string tag.
	TagDate uint64 = 0
)

var ErrDecode = errors.New("cbor decode error")

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): the same document always produces identical
// bytes.
var encMode cbor.EncMode

// decMode decodes untagged maps as map[string]any.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR.
func Marshal(v doc.Value) ([]byte, error) {
	return encMode.Marshal(toCBOR(v))
}

// MarshalDictionary encodes d to CBOR.
func MarshalDictionary(d *doc.MutableDictionary) ([]byte, error) {
	return Marshal(d.AsValue())
}

// Encode writes the CBOR encoding of v to w.
func Encode(w io.Writer, v doc.Value) error {
	return encMode.NewEncoder(w).Encode(toCBOR(v))
}

func toCBOR(v doc.Value) any {
	switch v.Type() {
	case doc.NullType:
		return nil
	case doc.BoolType:
		return v.Bool()
	case doc.IntType:
		return v.Int64()
	case doc.DoubleType:
		return v.Float64()
	case doc.StringType:
		return v.Str()
	case doc.DateType:
		return cbor.Tag{Number: TagDate, Content: doc.FormatDate(v.Date())}
	case doc.BlobType:
		b := v.Blob()
		props := map[string]any{
			doc.BlobDigestKey: b.Digest(),
			doc.BlobLengthKey: b.Length(),
		}
		if ct := b.ContentType(); ct != "" {
			props[doc.BlobContentTypeKey] = ct
		}
		return cbor.Tag{Number: TagBlob, Content: props}
	case doc.ArrayType:
		res := make([]any, 0, v.Len())
		for _, elt := range v.Elems() {
			res = append(res, toCBOR(elt))
		}
		return res
	case doc.DictionaryType:
		flat := make([]any, 0, 2*v.Len())
		for k, elt := range v.Entries() {
			flat = append(flat, k, toCBOR(elt))
		}
		return cbor.Tag{Number: TagDict, Content: flat}
	}
	return nil
}

// Unmarshal decodes a CBOR document. Untagged maps are accepted and read
// with their keys sorted.
func Unmarshal(data []byte) (doc.Value, error) {
	var raw any
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return doc.Value{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return fromCBOR(raw)
}

// UnmarshalDictionary decodes a CBOR document whose top level must be a
// dictionary.
func UnmarshalDictionary(data []byte) (*doc.MutableDictionary, error) {
	v, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	d, ok := v.Native().(*doc.MutableDictionary)
	if !ok {
		return nil, fmt.Errorf("%w: expected dictionary, got %s", ErrDecode, v.Type())
	}
	return d, nil
}

// Decode reads one CBOR document from r.
func Decode(r io.Reader) (doc.Value, error) {
	var raw any
	if err := decMode.NewDecoder(r).Decode(&raw); err != nil {
		return doc.Value{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return fromCBOR(raw)
}

func fromCBOR(raw any) (doc.Value, error) {
	switch x := raw.(type) {
	case cbor.Tag:
		return fromTag(x)
	case time.Time:
		return doc.FromDate(x), nil
	case big.Int:
		if x.IsInt64() {
			return doc.FromInt(x.Int64()), nil
		}
		f, _ := new(big.Float).SetInt(&x).Float64()
		return doc.Coerce(f)
	case []any:
		a := doc.NewMutableArray()
		for i, elt := range x {
			v, err := fromCBOR(elt)
			if err != nil {
				return doc.Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			if err := a.Append(v); err != nil {
				return doc.Value{}, err
			}
		}
		return a.AsValue(), nil
	case map[string]any:
		d := doc.NewMutableDictionary()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			v, err := fromCBOR(x[k])
			if err != nil {
				return doc.Value{}, fmt.Errorf("%s: %w", k, err)
			}
			if err := d.SetValue(k, v); err != nil {
				return doc.Value{}, err
			}
		}
		return d.AsValue(), nil
	}
	v, err := doc.Coerce(raw)
	if err != nil {
		return doc.Value{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return v, nil
}

func fromTag(t cbor.Tag) (doc.Value, error) {
	switch t.Number {
	case TagDict:
		flat, ok := t.Content.([]any)
		if !ok || len(flat)%2 != 0 {
			return doc.Value{}, fmt.Errorf("%w: dictionary tag content must be an even length array", ErrDecode)
		}
		d := doc.NewMutableDictionary()
		for i := 0; i < len(flat); i += 2 {
			k, ok := flat[i].(string)
			if !ok {
				return doc.Value{}, fmt.Errorf("%w: dictionary key %v is not a string", ErrDecode, flat[i])
			}
			v, err := fromCBOR(flat[i+1])
			if err != nil {
				return doc.Value{}, fmt.Errorf("%s: %w", k, err)
			}
			if err := d.SetValue(k, v); err != nil {
				return doc.Value{}, err
			}
		}
		return d.AsValue(), nil
	case TagBlob:
		props, ok := t.Content.(map[string]any)
		if !ok {
			return doc.Value{}, fmt.Errorf("%w: blob tag content must be a map", ErrDecode)
		}
		digest, _ := props[doc.BlobDigestKey].(string)
		if !doc.ValidDigest(digest) {
			return doc.Value{}, fmt.Errorf("%w: blob digest %q", ErrDecode, digest)
		}
		ct, _ := props[doc.BlobContentTypeKey].(string)
		var length int64
		switch n := props[doc.BlobLengthKey].(type) {
		case uint64:
			length = int64(n)
		case int64:
			length = n
		}
		return doc.FromBlob(doc.NewBlobRef(ct, digest, length)), nil
	case TagDate:
		s, ok := t.Content.(string)
		if !ok {
			return doc.Value{}, fmt.Errorf("%w: date tag content must be text", ErrDecode)
		}
		when, err := doc.ParseDate(s)
		if err != nil {
			return doc.Value{}, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return doc.FromDate(when), nil
	}
	return doc.Value{}, fmt.Errorf("%w: unsupported tag %d", ErrDecode, t.Number)
}
