package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aman-CERP/compcheck/internal/compat"
	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
)

// Format is an on-disk report encoding.
type Format string

// Supported formats.
const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatCSV      Format = "csv"
)

// FormatFromPath selects the format by extension. No extension means JSON.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "", ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".html", ".htm":
		return FormatHTML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", ccerrors.New(ccerrors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported report format %q", ext), nil).
			WithDetail("path", path).
			WithSuggestion("Use .json, .yaml, .md, .html or .csv")
	}
}

// Encode renders r in format f.
func Encode(r compat.Report, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return encodeJSON(r)
	case FormatYAML:
		return encodeYAML(r)
	case FormatMarkdown:
		return []byte(renderMarkdown(r)), nil
	case FormatHTML:
		return renderHTML(r)
	case FormatCSV:
		return encodeCSV(r)
	default:
		return nil, ccerrors.New(ccerrors.ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported report format %q", f), nil)
	}
}

// Stamp records when and where r was produced. Host is left empty when the
// hostname is unavailable.
func Stamp(r compat.Report, at time.Time) compat.Report {
	r.GeneratedAt = at.UTC().Format(time.RFC3339)
	if host, err := os.Hostname(); err == nil {
		r.Host = host
	}
	return r
}

// ExportReport writes r to path and returns the absolute path written.
// Missing parent directories are created. The file is replaced atomically;
// a failed export leaves no partial file.
func ExportReport(r compat.Report, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ccerrors.New(ccerrors.ErrCodeInvalidPath, "export path is empty", nil)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", ccerrors.New(ccerrors.ErrCodeInvalidPath, "cannot resolve export path", err).
			WithDetail("path", path)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return "", ccerrors.New(ccerrors.ErrCodeInvalidPath, "export path is a directory", nil).
			WithDetail("path", abs)
	}

	format, err := FormatFromPath(abs)
	if err != nil {
		return "", err
	}

	data, err := Encode(r, format)
	if err != nil {
		return "", ccerrors.ExportError(abs, err)
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return "", ccerrors.ExportError(abs, err)
	}
	if err := writeAtomic(abs, data); err != nil {
		return "", ccerrors.ExportError(abs, err)
	}
	return abs, nil
}

// writeAtomic writes data to a temp file next to path and renames it over.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
