package mcp

import "github.com/Aman-CERP/compcheck/internal/report"

// MimeTypeForFormat returns the MIME type of an exported report.
func MimeTypeForFormat(f report.Format) string {
	switch f {
	case report.FormatJSON:
		return "application/json"
	case report.FormatYAML:
		return "application/yaml"
	case report.FormatMarkdown:
		return "text/markdown"
	case report.FormatHTML:
		return "text/html"
	case report.FormatCSV:
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
