// Package codec provides the binary commit form of a document: a
// deterministic CBOR encoding (RFC 8949 Core Deterministic Encoding) that
// round-trips every document type exactly.
//
// Dictionaries are encoded as tag TagDict around a flat key/value array
// so that key order survives; dates use the standard tag 0 and blobs the
// tag TagBlob around their metadata. Blob content is never inlined.
package codec
