// Package doc provides mutable document values: trees of typed values
// edited in place before being handed to a storage engine.
//
// # Overview
//
// A document is a tree whose leaves are scalars and whose inner nodes are
// arrays and dictionaries. Every slot holds a Value, a tagged union over a
// closed set of types:
//
//   - NullType: null
//   - BoolType: true or false
//   - IntType: 64-bit signed integer
//   - DoubleType: finite 64-bit float
//   - StringType: UTF-8 text
//   - DateType: instant in UTC with millisecond precision
//   - BlobType: binary payload with a content type, see Blob
//   - ArrayType: ordered values, see MutableArray
//   - DictionaryType: string keyed values in insertion order, see
//     MutableDictionary
//
// # Coercion
//
// Go values enter a document through Coerce, directly or through the
// SetValue family of methods. Coercion maps every integer width to
// Integer, floats to Double, time.Time to Date, []byte to Blob, slices to
// Array and string keyed maps to Dictionary. Anything else is rejected
// with ErrUnsupportedValueType, never stored as an approximation. A
// failed write leaves the container unchanged.
//
// # Live views
//
// Containers are handles to shared backing nodes. The dictionary returned
// by d.Dictionary("k") is not a copy: changes through it show in d and
// changes through d show in it. Storing a MutableArray or
// MutableDictionary into another container stores a view as well. A
// container may never end up inside itself; such writes fail with
// ErrCyclicReference.
//
// Freeze produces an immutable deep copy (Dictionary, Array) suitable for
// committing. Storing an immutable container copies it.
//
// # Fragments
//
// A Fragment is a path over a container, resolved on every access:
//
//	d.Fragment("a").Key("b").Index(0).SetString("x")
//	d.Fragment("a").Path(`b[0]`).String()
//
// Reads that do not resolve yield zero values. Writes fail if the parent
// of the last segment is not a container of the right kind.
//
// # JSON
//
// ToJSON, AppendJSON and ParseJSON convert between documents and JSON
// text, keeping dictionary key order. Blobs are written as placeholder
// objects:
//
//	{"@type":"blob","content_type":"image/png","digest":"blake3-...","length":1024}
//
// # Concurrency
//
// Containers have no internal locking. A tree may be read concurrently
// once no goroutine mutates it; any mutation requires exclusive access.
package doc
