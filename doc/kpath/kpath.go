package kpath

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrUnterminated = errors.New("unterminated quoted field")
	ErrBadEscape    = errors.New("bad escape in quoted field")
	ErrBadUTF8      = errors.New("bad utf8 in quoted field")
)

// KPath is a parsed path into a document. Each segment is either a
// dictionary key (Field) or an array index (Index).
//
//   - "a.b"    → key a, then key b
//   - "a[0]"   → key a, then index 0
//   - `"x.y"`  → the single key x.y
type KPath struct {
	Field *string // dictionary key
	Index *int    // array index
	Next  *KPath  // nil for the last segment
}

// Field returns a single segment path for a dictionary key.
func Field(name string) *KPath {
	return &KPath{Field: &name}
}

// Index returns a single segment path for an array index.
func Index(i int) *KPath {
	return &KPath{Index: &i}
}

// String returns the kinded path string of p.
//
//	KPath{Field: &"a", Next: &KPath{Field: &"b"}}  → "a.b"
//	KPath{Field: &"a", Next: &KPath{Index: &0}}    → "a[0]"
//	KPath{Field: &"odd key"}                       → `"odd key"`
func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Field != nil:
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(quoteField(*x.Field))
		case x.Index != nil:
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
	}
	return buf.String()
}

// SegmentString returns the string of the first segment of p only.
func (p *KPath) SegmentString() string {
	if p == nil {
		return ""
	}
	switch {
	case p.Field != nil:
		return quoteField(*p.Field)
	case p.Index != nil:
		return "[" + strconv.Itoa(*p.Index) + "]"
	}
	return ""
}

// Len returns the number of segments in p.
func (p *KPath) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// Append returns a copy of p followed by a copy of q.
func (p *KPath) Append(q *KPath) *KPath {
	var head, tail *KPath
	for _, src := range []*KPath{p, q} {
		for x := src; x != nil; x = x.Next {
			seg := x.copySegment()
			if head == nil {
				head = seg
			} else {
				tail.Next = seg
			}
			tail = seg
		}
	}
	return head
}

// Parent returns p without its last segment, or nil for a single segment.
func (p *KPath) Parent() *KPath {
	if p == nil || p.Next == nil {
		return nil
	}
	head := p.copySegment()
	tail := head
	for x := p.Next; x.Next != nil; x = x.Next {
		tail.Next = x.copySegment()
		tail = tail.Next
	}
	return head
}

// Last returns the last segment of p.
func (p *KPath) Last() *KPath {
	if p == nil {
		return nil
	}
	x := p
	for x.Next != nil {
		x = x.Next
	}
	return x.copySegment()
}

func (p *KPath) copySegment() *KPath {
	res := &KPath{}
	if p.Field != nil {
		f := *p.Field
		res.Field = &f
	}
	if p.Index != nil {
		i := *p.Index
		res.Index = &i
	}
	return res
}

func (p *KPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *KPath) UnmarshalText(d []byte) error {
	q, err := Parse(string(d))
	if err != nil {
		return err
	}
	if q == nil {
		*p = KPath{}
		return nil
	}
	*p = *q
	return nil
}

// Join joins two path strings.
//
//   - Join("a", "b")    → "a.b"
//   - Join("a", "[0]")  → "a[0]"
//   - Join("", "b")     → "b"
func Join(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	if suffix == "" {
		return prefix
	}
	if suffix[0] == '[' {
		return prefix + suffix
	}
	return prefix + "." + suffix
}

// Parse parses a kinded path. The empty string yields a nil path.
func Parse(kp string) (*KPath, error) {
	if kp == "" {
		return nil, nil
	}
	root := &KPath{}
	if err := parseFrag(kp, root, true); err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", kp, err)
	}
	return root, nil
}

func parseFrag(frag string, p *KPath, first bool) error {
	var rest string
	switch {
	case frag[0] == '[':
		i := strings.IndexByte(frag, ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		u64, err := strconv.ParseUint(frag[1:i], 10, 31)
		if err != nil {
			return fmt.Errorf("invalid array index %q: %w", frag[1:i], err)
		}
		idx := int(u64)
		p.Index = &idx
		rest = frag[i+1:]
	case frag[0] == '.' && !first:
		field, r, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		p.Field = &field
		rest = r
	case first:
		field, r, err := parseField(frag)
		if err != nil {
			return err
		}
		p.Field = &field
		rest = r
	default:
		return fmt.Errorf("expected '.' or '[', got %q", frag[0])
	}
	if rest == "" {
		return nil
	}
	p.Next = &KPath{}
	return parseFrag(rest, p.Next, false)
}

// parseField parses a dictionary key, stopping at '.' or '['. Keys may be
// double quoted with Go string escapes.
func parseField(frag string) (field, rest string, err error) {
	if frag == "" {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] == '"' {
		n, err := quotedEnd(frag)
		if err != nil {
			return "", "", err
		}
		field, err = strconv.Unquote(frag[:n])
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrBadEscape, err)
		}
		return field, frag[n:], nil
	}
	i := strings.IndexAny(frag, ".[")
	if i == 0 {
		return "", "", fmt.Errorf("empty field")
	}
	if i == -1 {
		return frag, "", nil
	}
	return frag[:i], frag[i:], nil
}

// quotedEnd returns the length of the double quoted string at the start
// of s, closing quote included.
func quotedEnd(s string) (int, error) {
	escaped := false
	for i := 1; i < len(s); {
		r, sz := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && sz == 1 {
			return 0, ErrBadUTF8
		}
		i += sz
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			return i, nil
		}
	}
	return 0, ErrUnterminated
}

// QuoteField reports whether a key must be quoted in a path string.
func QuoteField(f string) bool {
	if f == "" {
		return true
	}
	for _, r := range f {
		switch r {
		case '.', '[', ']', '"', '\'', '\\':
			return true
		}
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return true
		}
	}
	return false
}

func quoteField(f string) string {
	if QuoteField(f) {
		return strconv.Quote(f)
	}
	return f
}

// Pointer returns p as an RFC 6901 JSON Pointer. The nil path is the
// empty pointer, which refers to the whole document.
//
//	"a.b[0]"  → "/a/b/0"
//	`"x/y"`   → "/x~1y"
func (p *KPath) Pointer() string {
	var b strings.Builder
	for x := p; x != nil; x = x.Next {
		b.WriteByte('/')
		switch {
		case x.Field != nil:
			b.WriteString(strings.NewReplacer("~", "~0", "/", "~1").Replace(*x.Field))
		case x.Index != nil:
			b.WriteString(strconv.Itoa(*x.Index))
		}
	}
	return b.String()
}
