// Package report persists compatibility reports.
//
// ExportReport picks the format from the file extension: JSON (the default
// and the canonical schema), YAML, Markdown, HTML and CSV. JSON and YAML can be
// read back with ReadReport.
package report
