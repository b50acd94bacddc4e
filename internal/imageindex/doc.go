// Package imageindex discovers image files under a source root and resolves
// the loosely-specified filenames found in mapping rows against that
// snapshot.
//
// The index is built once before the row loop so per-row matching never
// re-traverses the directory tree. Mapping files are frequently typed without
// extensions or with inconsistent casing; Resolve applies a staged fallback
// (exact path, extension inference, case-insensitive exact, case-insensitive
// prefix) to maximize the match rate without inspecting file contents.
package imageindex
