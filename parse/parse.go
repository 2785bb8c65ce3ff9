package parse

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/signadot/docval/codec"
	"github.com/signadot/docval/doc"
	"github.com/signadot/docval/format"
	"github.com/tidwall/jsonc"
)

// Parse reads a single document value of any type. JSON is the default
// format.
func Parse(data []byte, opts ...ParseOption) (doc.Value, error) {
	o := newParseOpts(opts)
	switch o.format {
	case format.JSONFormat:
		if o.comments {
			data = jsonc.ToJSON(data)
		}
		return doc.ParseJSON(data)
	case format.YAMLFormat:
		return parseYAML(data)
	case format.CBORFormat:
		return codec.Unmarshal(data)
	}
	return doc.Value{}, fmt.Errorf("%w: %w", ErrParse, format.ErrBadFormat)
}

// ParseDictionary reads a document whose top level is a dictionary.
func ParseDictionary(data []byte, opts ...ParseOption) (*doc.MutableDictionary, error) {
	v, err := Parse(data, opts...)
	if err != nil {
		return nil, err
	}
	d, ok := v.Native().(*doc.MutableDictionary)
	if !ok {
		if newParseOpts(opts).format == format.JSONFormat {
			return nil, fmt.Errorf("%w: %w: got %s", ErrTopLevel, doc.ErrInvalidJSONTopLevel, v.Type())
		}
		return nil, fmt.Errorf("%w: got %s", ErrTopLevel, v.Type())
	}
	d.ClearChanged()
	return d, nil
}

// ParseFile reads the document in path. Without a ParseFormat option the
// format is taken from the file extension, defaulting to JSON. Files
// ending in .jsonc accept comments.
func ParseFile(path string, opts ...ParseOption) (doc.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return doc.Value{}, err
	}
	var pre []ParseOption
	if f, ok := format.FromPath(path); ok {
		pre = append(pre, ParseFormat(f))
	}
	if filepath.Ext(path) == ".jsonc" {
		pre = append(pre, ParseComments(true))
	}
	v, err := Parse(data, append(pre, opts...)...)
	if err != nil {
		return doc.Value{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
