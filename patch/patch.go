package patch

import (
	"errors"
	"fmt"

	"github.com/signadot/docval/debug"
	"github.com/signadot/docval/diff"
	"github.com/signadot/docval/doc"

	jsonpatch "github.com/evanphx/json-patch"
)

var ErrPatch = errors.New("patch error")

// Apply applies an RFC 6902 JSON Patch to d. Either every operation
// succeeds and d holds the result, or d is left unchanged.
func Apply(d *doc.MutableDictionary, patch []byte) error {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPatch, err)
	}
	if debug.Patch() {
		debug.Logf("json patch: %d operations\n", len(ops))
	}
	out, err := ops.Apply([]byte(d.ToJSON()))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return install(d, out)
}

// Merge applies an RFC 7386 JSON Merge Patch to d, with the same
// all-or-nothing behavior as Apply.
func Merge(d *doc.MutableDictionary, patch []byte) error {
	if debug.Patch() {
		debug.Logf("merge patch: %d bytes\n", len(patch))
	}
	out, err := jsonpatch.MergePatch([]byte(d.ToJSON()), patch)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return install(d, out)
}

// Create returns the JSON Patch turning from into to.
func Create(from, to *doc.MutableDictionary) string {
	return diff.JSONPatch(diff.Dictionaries(from, to))
}

// CreateMerge returns the JSON Merge Patch turning from into to.
func CreateMerge(from, to *doc.MutableDictionary) ([]byte, error) {
	out, err := jsonpatch.CreateMergePatch([]byte(from.ToJSON()), []byte(to.ToJSON()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return out, nil
}

func install(d *doc.MutableDictionary, out []byte) error {
	v, err := doc.ParseJSON(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPatch, err)
	}
	if v.Type() != doc.DictionaryType {
		return fmt.Errorf("%w: result is %s, not a dictionary", ErrPatch, v.Type())
	}
	res, ok := restore(d.AsValue(), v).Native().(*doc.MutableDictionary)
	if !ok {
		return fmt.Errorf("%w: result is not a mutable dictionary", ErrPatch)
	}
	return d.SetEntries(res)
}

// restore carries what JSON text loses back onto a patched value: the
// key order of surviving dictionary entries, blob content, and the types
// of Date and Double leaves that compare equal to their patched text.
func restore(orig, patched doc.Value) doc.Value {
	switch {
	case orig.Type() == doc.DictionaryType && patched.Type() == doc.DictionaryType:
		res := doc.NewMutableDictionary()
		for k, ov := range orig.Entries() {
			if pv, ok := patched.Lookup(k); ok {
				_ = res.SetValue(k, restore(ov, pv))
			}
		}
		for k, pv := range patched.Entries() {
			if !res.Contains(k) {
				_ = res.SetValue(k, pv)
			}
		}
		return res.AsValue()
	case orig.Type() == doc.ArrayType && patched.Type() == doc.ArrayType:
		res := doc.NewMutableArray()
		for i, pv := range patched.Elems() {
			if ov, ok := orig.At(i); ok {
				pv = restore(ov, pv)
			}
			_ = res.Append(pv)
		}
		return res.AsValue()
	case orig.Type().IsLeaf() && doc.Equal(orig, patched):
		return orig
	}
	return patched
}
