package tabular

import "strings"

const (
	fieldSeparator = ','
	quoteChar      = '"'
)

// SplitLine tokenizes one line of tabular text into fields. A double quote
// toggles quoted state; separators inside quotes are literal. There is no
// escaped-quote support: malformed quoting degrades to best-effort
// tokenization rather than erroring. The result always contains at least one
// field; an empty line yields a single empty field.
func SplitLine(line string) []string {
	fields := make([]string, 0, 8)
	var field strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == quoteChar:
			inQuotes = !inQuotes
		case r == fieldSeparator && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	return append(fields, field.String())
}
