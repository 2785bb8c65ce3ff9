package diff

import (
	"github.com/signadot/docval/debug"
	"github.com/signadot/docval/doc"
	"github.com/signadot/docval/doc/kpath"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op string

const (
	Add     Op = "add"
	Remove  Op = "remove"
	Replace Op = "replace"
)

// Change is one edit. From is null for Add and To is null for Remove.
type Change struct {
	Op       Op
	Path     *kpath.KPath
	From, To doc.Value
}

func (c Change) String() string {
	p := c.Path.String()
	if p == "" {
		p = "."
	}
	switch c.Op {
	case Add:
		return "+ " + p + ": " + c.To.String()
	case Remove:
		return "- " + p + ": " + c.From.String()
	}
	return "~ " + p + ": " + c.From.String() + " -> " + c.To.String()
}

// Values returns the changes turning from into to, in an order in which
// they can be applied one after another: an array index refers to the
// array as left by the preceding changes.
//
// Values are compared the way doc.Equal compares them, so an Integer and
// an equal Double, or a Date and its ISO-8601 String, are not changes.
// Dictionary key order is ignored; added keys come after existing ones.
func Values(from, to doc.Value) []Change {
	var res []Change
	values(from, to, nil, &res)
	if debug.Diff() {
		debug.Logf("diff: %d changes\n", len(res))
	}
	return res
}

// Dictionaries is Values for two dictionaries.
func Dictionaries(from, to *doc.MutableDictionary) []Change {
	return Values(from.AsValue(), to.AsValue())
}

func values(from, to doc.Value, path *kpath.KPath, res *[]Change) {
	switch {
	case from.Type() == doc.DictionaryType && to.Type() == doc.DictionaryType:
		dicts(from, to, path, res)
	case from.Type() == doc.ArrayType && to.Type() == doc.ArrayType:
		arrays(from, to, path, res)
	case !doc.Equal(from, to):
		*res = append(*res, Change{Op: Replace, Path: path, From: from, To: to})
	}
}

func dicts(from, to doc.Value, path *kpath.KPath, res *[]Change) {
	for k, fv := range from.Entries() {
		sub := path.Append(kpath.Field(k))
		tv, ok := to.Lookup(k)
		if !ok {
			*res = append(*res, Change{Op: Remove, Path: sub, From: fv})
			continue
		}
		values(fv, tv, sub, res)
	}
	for k, tv := range to.Entries() {
		if _, ok := from.Lookup(k); ok {
			continue
		}
		*res = append(*res, Change{Op: Add, Path: path.Append(kpath.Field(k)), To: tv})
	}
}

// arrays aligns elements by summary with a rune diff. Leaves are
// summarized by digest and containers by type, so containers of the same
// type line up and are compared recursively.
func arrays(from, to doc.Value, path *kpath.KPath, res *[]Change) {
	m := map[string]rune{}
	fromRunes := summaries(m, from)
	toRunes := summaries(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	at := func(i int) *kpath.KPath {
		return path.Append(kpath.Index(i))
	}
	elt := func(v doc.Value, i int) doc.Value {
		e, _ := v.At(i)
		return e
	}
	fi, ti, ri := 0, 0, 0
	for i := 0; i < len(diffs); i++ {
		d := &diffs[i]
		n := len([]rune(d.Text))
		switch d.Type {
		case diffpatch.DiffEqual:
			for range n {
				values(elt(from, fi), elt(to, ti), at(ri), res)
				fi, ti, ri = fi+1, ti+1, ri+1
			}
		case diffpatch.DiffDelete:
			ins := 0
			if i+1 < len(diffs) && diffs[i+1].Type == diffpatch.DiffInsert {
				ins = len([]rune(diffs[i+1].Text))
				i++
			}
			paired := min(n, ins)
			for range paired {
				values(elt(from, fi), elt(to, ti), at(ri), res)
				fi, ti, ri = fi+1, ti+1, ri+1
			}
			for range n - paired {
				*res = append(*res, Change{Op: Remove, Path: at(ri), From: elt(from, fi)})
				fi++
			}
			for range ins - paired {
				*res = append(*res, Change{Op: Add, Path: at(ri), To: elt(to, ti)})
				ti, ri = ti+1, ri+1
			}
		case diffpatch.DiffInsert:
			for range n {
				*res = append(*res, Change{Op: Add, Path: at(ri), To: elt(to, ti)})
				ti, ri = ti+1, ri+1
			}
		}
	}
}

func summaries(m map[string]rune, v doc.Value) []rune {
	rs := make([]rune, 0, v.Len())
	for _, elt := range v.Elems() {
		var sum string
		if elt.Type().IsLeaf() {
			sum = elt.Digest()
		} else {
			sum = elt.Type().String()
		}
		r, ok := m[sum]
		if !ok {
			r = rune(len(m) + 1)
			if r >= 0xD800 {
				r += 0x800
			}
			m[sum] = r
		}
		rs = append(rs, r)
	}
	return rs
}
