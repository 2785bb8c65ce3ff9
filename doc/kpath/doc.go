// Package kpath parses and formats kinded paths into documents.
//
// A kinded path encodes the kind of each container it walks through:
//   - .field or a leading field - Dictionary key
//   - [index] - Array index
//
// Keys containing separators, quotes or whitespace are double quoted:
//
//	kp, err := kpath.Parse(`users[0]."display name"`)
//	parent := kp.Parent() // users[0]
//	child := parent.Append(kpath.Field("email"))
//
// # Related Packages
//
//   - github.com/signadot/docval/doc - Document values and fragments
package kpath
