// Package blobstore holds blob content outside of documents.
//
// Documents carry blobs by digest; a Store maps digests to content.
// InstallAll moves content from a document into a store before commit and
// LoadAll resolves references back into content.
package blobstore
