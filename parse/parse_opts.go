package parse

import "github.com/signadot/docval/format"

type parseOpts struct {
	format   format.Format
	comments bool
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseCBOR() ParseOption {
	return ParseFormat(format.CBORFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseComments allows // and /* */ comments and trailing commas in JSON
// input. YAML always accepts comments; CBOR has none.
func ParseComments(v bool) ParseOption {
	return func(o *parseOpts) { o.comments = v }
}

func newParseOpts(opts []ParseOption) *parseOpts {
	o := &parseOpts{format: format.JSONFormat}
	for _, f := range opts {
		f(o)
	}
	return o
}
