// Package encode writes document values as JSON, YAML or CBOR.
//
// JSON is indented by default, EncodeWire gives compact output, and
// EncodeColors highlights fields and values for terminals. Dictionaries
// are always written in insertion order. Blobs are written as their
// placeholder object; YAML writes octet-stream blob content as !!binary.
package encode
