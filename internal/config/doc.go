// Package config loads, normalizes, and validates snapsort configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SNAPSORT_SOURCE_DIR. The Config type centralizes every knob the CLI needs,
// so source/output directories, column roles, and processing switches are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical mode strings, and clear validation errors.
package config
