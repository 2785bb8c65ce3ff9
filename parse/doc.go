// Package parse reads documents from JSON, JSON with comments, YAML and
// CBOR.
//
// YAML mappings keep their key order. Mapping keys must be scalars and
// are read as their text. Merge keys (<<) are expanded with explicitly
// written keys taking precedence. !!binary scalars become octet-stream
// blobs, and mappings shaped like a blob placeholder become blob
// references, as they do in JSON.
package parse
