package diff

import "github.com/signadot/docval/doc"

// JSONPatch renders changes as an RFC 6902 patch document.
func JSONPatch(changes []Change) string {
	ops := doc.NewMutableArray()
	for _, c := range changes {
		op := doc.NewMutableDictionary()
		// string and value stores into a fresh dictionary cannot fail
		_ = op.SetString("op", string(c.Op))
		_ = op.SetString("path", c.Path.Pointer())
		if c.Op != Remove {
			_ = op.SetValue("value", c.To)
		}
		_ = ops.AppendDictionary(op)
	}
	return ops.ToJSON()
}
