package utils

import "strings"

// EscapeCSV formats a single CSV data field. Every data field is wrapped in
// double quotes regardless of content, and embedded quotes are doubled. The
// unconditional quoting matches the legacy export output byte-for-byte,
// which is why encoding/csv (which quotes only when needed) is not used.
func EscapeCSV(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// ConvertToCSV renders a header row (unquoted) followed by escaped data rows,
// joined with newlines.
func ConvertToCSV(headers []string, rows [][]string) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(headers, ","))
	for _, row := range rows {
		escaped := make([]string, len(row))
		for i, field := range row {
			escaped[i] = EscapeCSV(field)
		}
		sb.WriteString("\n")
		sb.WriteString(strings.Join(escaped, ","))
	}
	return sb.String()
}
