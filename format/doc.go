// Package format names the serialized forms of a document.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	if f, ok := format.FromPath("doc.cbor"); ok { ... }
//
// # Related Packages
//
//   - github.com/signadot/docval/parse - Parse bytes to a document
//   - github.com/signadot/docval/encode - Encode a document to bytes
package format
