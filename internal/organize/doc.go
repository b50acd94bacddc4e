// Package organize implements the mapping-driven run that places photos into
// folders.
//
// A run is strictly sequential: parse the mapping file, resolve the
// configured columns, snapshot the source directory into an image index, then
// walk the rows one by one. Each row terminates in exactly one of four
// states: processed, skipped, missing, or duplicate. Only configuration
// problems abort a run; everything per-row is recorded on the Summary and
// processing continues. Cancellation is cooperative and observed between
// rows, so the in-flight file operation always completes and nothing is
// rolled back.
package organize
