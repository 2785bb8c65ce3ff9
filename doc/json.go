package doc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/signadot/docval/debug"
	"github.com/signadot/docval/doc/kpath"
)

// AppendJSON appends the compact JSON text of v to dst.
//
// Dictionary keys are written in insertion order, dates as ISO-8601 UTC
// strings and blobs as their placeholder object (see Blob.Properties).
// Doubles always carry a fraction or exponent so that they read back as
// doubles.
func AppendJSON(dst []byte, v Value) []byte {
	switch v.typ {
	case NullType:
		return append(dst, "null"...)
	case BoolType:
		return strconv.AppendBool(dst, v.b)
	case IntType:
		return strconv.AppendInt(dst, v.i, 10)
	case DoubleType:
		return appendDouble(dst, v.f)
	case StringType:
		return AppendJSONString(dst, v.s)
	case DateType:
		return AppendJSONString(dst, FormatDate(v.t))
	case BlobType:
		return AppendJSON(dst, v.blob.Properties().AsValue())
	case ArrayType:
		dst = append(dst, '[')
		for i, elt := range v.arr.vals {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendJSON(dst, elt)
		}
		return append(dst, ']')
	case DictionaryType:
		dst = append(dst, '{')
		for i, k := range v.dict.keys {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendJSONString(dst, k)
			dst = append(dst, ':')
			dst = AppendJSON(dst, v.dict.vals[i])
		}
		return append(dst, '}')
	}
	return dst
}

// appendDouble formats f the way encoding/json does, adding ".0" to
// integral values. f must be finite.
func appendDouble(dst []byte, f float64) []byte {
	abs := math.Abs(f)
	fmtByte := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmtByte = 'e'
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, fmtByte, -1, 64)
	if fmtByte == 'e' {
		// clean up e-09 to e-9
		n := len(dst)
		if n-start >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
		return dst
	}
	if bytes.IndexByte(dst[start:], '.') < 0 {
		dst = append(dst, ".0"...)
	}
	return dst
}

const hexDigits = "0123456789abcdef"

// AppendJSONString appends s as a JSON string. Unlike encoding/json it does
// not escape HTML characters. Invalid UTF-8 is replaced by U+FFFD.
func AppendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			if b >= 0x20 && b != '"' && b != '\\' {
				i++
				continue
			}
			dst = append(dst, s[start:i]...)
			switch b {
			case '"', '\\':
				dst = append(dst, '\\', b)
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			default:
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[b>>4], hexDigits[b&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, s[start:i]...)
			dst = append(dst, "\ufffd"...)
			i += size
			start = i
			continue
		}
		i += size
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}

// ParseJSON parses a single JSON value of any kind.
//
// Objects keep the key order of the text; a repeated key keeps its first
// position and its last value. Numbers become Integer when integral and
// within 64 bits, Double otherwise. Objects in blob placeholder form become
// blob references. Failures wrap ErrInvalidJSON, or ErrUnsupportedValueType
// for numbers outside the range of a double.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	p := &jsonParser{dec: dec}
	tok, err := p.token()
	if err != nil {
		return Value{}, err
	}
	v, err := p.value(tok)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after top level value")
		}
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	v.clearChanged()
	if debug.JSON() {
		debug.Logf("parsed %s with %d entries\n", v.typ, v.Len())
	}
	return v, nil
}

type jsonParser struct {
	dec  *json.Decoder
	path []*kpath.KPath
}

func (p *jsonParser) token() (json.Token, error) {
	tok, err := p.dec.Token()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return tok, nil
}

func (p *jsonParser) value(tok json.Token) (Value, error) {
	switch x := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case json.Number:
		v, err := numberValue(string(x))
		if err != nil {
			return Value{}, &CoercionError{Path: kpathString(p.path), GoType: "json.Number", Err: err}
		}
		return v, nil
	case json.Delim:
		switch x {
		case '{':
			return p.object()
		case '[':
			return p.array()
		}
	}
	return Value{}, fmt.Errorf("%w: unexpected token %v", ErrInvalidJSON, tok)
}

func (p *jsonParser) object() (Value, error) {
	n := newDictNode(0)
	for p.dec.More() {
		tok, err := p.token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: object key %v is not a string", ErrInvalidJSON, tok)
		}
		if tok, err = p.token(); err != nil {
			return Value{}, err
		}
		p.path = append(p.path, kpath.Field(key))
		v, err := p.value(tok)
		p.path = p.path[:len(p.path)-1]
		if err != nil {
			return Value{}, err
		}
		n.set(key, v)
	}
	if _, err := p.token(); err != nil {
		return Value{}, err
	}
	if b, ok := blobFromProperties(n); ok {
		return FromBlob(b), nil
	}
	return Value{typ: DictionaryType, dict: n}, nil
}

func (p *jsonParser) array() (Value, error) {
	n := newArrayNode(0)
	for p.dec.More() {
		tok, err := p.token()
		if err != nil {
			return Value{}, err
		}
		p.path = append(p.path, kpath.Index(len(n.vals)))
		v, err := p.value(tok)
		p.path = p.path[:len(p.path)-1]
		if err != nil {
			return Value{}, err
		}
		n.vals = append(n.vals, v)
	}
	if _, err := p.token(); err != nil {
		return Value{}, err
	}
	return Value{typ: ArrayType, arr: n}, nil
}
