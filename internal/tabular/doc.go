// Package tabular parses the mapping files that drive an organize run.
//
// It owns the line tokenizer (a quote-toggle splitter that tolerates
// malformed quoting), the CSV and XLSX loaders that produce a uniform Table,
// and the header resolver that maps configured column names onto field
// positions.
package tabular
