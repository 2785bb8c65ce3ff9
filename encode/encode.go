package encode

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/docval/codec"
	"github.com/signadot/docval/doc"
	"github.com/signadot/docval/format"
	"gopkg.in/yaml.v3"
)

type EncState struct {
	depth, indent int
	wire          bool

	format format.Format

	Color func(doc.Type, ColorAttr, string) string
}

// Encode writes v to w. JSON output is indented unless EncodeWire is
// given; text formats end with a newline.
func Encode(v doc.Value, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.JSONFormat:
		if es.wire {
			es.indent = 0
		}
		if err := encodeJSON(v, w, es); err != nil {
			return err
		}
		return writeString(w, "\n")
	case format.YAMLFormat:
		return encodeYAML(v, w, es)
	case format.CBORFormat:
		return codec.Encode(w, v)
	}
	return fmt.Errorf("%w: %w: %d", ErrEncoding, format.ErrBadFormat, es.format)
}

func writeNL(w io.Writer, es *EncState) error {
	if es.indent == 0 {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*es.depth))
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func applyColor(es *EncState, t doc.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, attr, v)
}

func encodeJSON(v doc.Value, w io.Writer, es *EncState) error {
	switch v.Type() {
	case doc.ArrayType:
		return encodeArray(v, w, es)
	case doc.DictionaryType:
		return encodeObject(v, doc.DictionaryType, w, es)
	case doc.BlobType:
		return encodeObject(v.Blob().Properties().AsValue(), doc.BlobType, w, es)
	}
	return writeString(w, applyColor(es, v.Type(), ValueColor, string(doc.AppendJSON(nil, v))))
}

func encodeObject(v doc.Value, t doc.Type, w io.Writer, es *EncState) error {
	sep := func(s string) error {
		return writeString(w, applyColor(es, t, SepColor, s))
	}
	if err := sep("{"); err != nil {
		return err
	}
	if v.Len() == 0 {
		return sep("}")
	}
	es.depth++
	i := 0
	for k, elt := range v.Entries() {
		if i > 0 {
			if err := sep(","); err != nil {
				return err
			}
		}
		i++
		if err := writeNL(w, es); err != nil {
			return err
		}
		field := string(doc.AppendJSONString(nil, k))
		if err := writeString(w, applyColor(es, t, FieldColor, field)); err != nil {
			return err
		}
		colon := ":"
		if es.indent > 0 {
			colon = ": "
		}
		if err := sep(colon); err != nil {
			return err
		}
		if err := encodeJSON(elt, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return sep("}")
}

func encodeArray(v doc.Value, w io.Writer, es *EncState) error {
	sep := func(s string) error {
		return writeString(w, applyColor(es, doc.ArrayType, SepColor, s))
	}
	if err := sep("["); err != nil {
		return err
	}
	if v.Len() == 0 {
		return sep("]")
	}
	es.depth++
	for i, elt := range v.Elems() {
		if i > 0 {
			if err := sep(","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encodeJSON(elt, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return sep("]")
}

func encodeYAML(v doc.Value, w io.Writer, es *EncState) error {
	enc := yaml.NewEncoder(w)
	if es.indent > 0 {
		enc.SetIndent(es.indent)
	}
	if err := enc.Encode(yamlNode(v)); err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return enc.Close()
}

// yamlNode builds the yaml.v3 node for v. Octet-stream blobs with content
// become !!binary scalars; other blobs become their placeholder mapping.
func yamlNode(v doc.Value) *yaml.Node {
	scalar := func(tag, text string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
	}
	switch v.Type() {
	case doc.NullType:
		return scalar("!!null", "null")
	case doc.BoolType:
		return scalar("!!bool", strconv.FormatBool(v.Bool()))
	case doc.IntType:
		return scalar("!!int", strconv.FormatInt(v.Int64(), 10))
	case doc.DoubleType:
		return scalar("!!float", v.String())
	case doc.StringType:
		return scalar("!!str", v.Str())
	case doc.DateType:
		return scalar("!!timestamp", v.Str())
	case doc.BlobType:
		b := v.Blob()
		if b.HasContent() && b.ContentType() == doc.OctetStream {
			return scalar("!!binary", base64.StdEncoding.EncodeToString(b.Content()))
		}
		return yamlNode(b.Properties().AsValue())
	case doc.ArrayType:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, elt := range v.Elems() {
			n.Content = append(n.Content, yamlNode(elt))
		}
		return n
	case doc.DictionaryType:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, elt := range v.Entries() {
			n.Content = append(n.Content, scalar("!!str", k), yamlNode(elt))
		}
		return n
	}
	return scalar("!!null", "null")
}
