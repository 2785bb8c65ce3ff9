// Package patch edits dictionaries with RFC 6902 JSON Patch and RFC 7386
// JSON Merge Patch documents.
//
// Patches are applied to the JSON text of a dictionary and the result is
// installed only when the whole patch succeeds. Keys that survive a patch
// keep their position, new keys follow them.
package patch
