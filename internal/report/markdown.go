package report

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/Aman-CERP/compcheck/internal/compat"
)

var (
	markdownOnce sync.Once
	markdown     goldmark.Markdown
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdown
}

// cell escapes text for a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func renderMarkdown(r compat.Report) string {
	var b strings.Builder

	b.WriteString("# Windows 11 Compatibility Report\n\n")
	fmt.Fprintf(&b, "**Verdict:** %s\n\n", r.Verdict())
	fmt.Fprintf(&b, "- Passed: %d / %d checks\n", r.Summary.TotalPassed, r.Summary.TotalChecks)
	fmt.Fprintf(&b, "- Essential requirements met: %s\n", boolString(r.Summary.EssentialMet))
	if r.Host != "" {
		fmt.Fprintf(&b, "- Host: %s\n", r.Host)
	}
	if r.GeneratedAt != "" {
		fmt.Fprintf(&b, "- Generated: %s\n", r.GeneratedAt)
	}
	b.WriteString("\n")

	b.WriteString("| Requirement | Status | Result | Essential |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, c := range compat.AllCriteria {
		res := r.Result(c)
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			cell(c.Title()), passFail(res.Status), cell(compat.Describe(c, res)), boolString(compat.IsEssential(c)))
	}

	b.WriteString("\n## Details\n")
	for _, c := range compat.AllCriteria {
		fmt.Fprintf(&b, "\n### %s\n\n", c.Title())
		for _, line := range compat.DetailLines(r.Result(c).Details) {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}
	return b.String()
}

func renderHTML(r compat.Report) ([]byte, error) {
	var body bytes.Buffer
	if err := getMarkdown().Convert([]byte(renderMarkdown(r)), &body); err != nil {
		return nil, err
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", html.EscapeString("Windows 11 Compatibility Report: "+r.Verdict()))
	page.WriteString("<style>body{font-family:Segoe UI,sans-serif;max-width:60em;margin:2em auto}" +
		"table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:.3em .6em}</style>\n")
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
