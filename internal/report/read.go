package report

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/compcheck/internal/compat"
	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
)

// ReadReport loads a JSON or YAML report written by ExportReport.
func ReadReport(path string) (compat.Report, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return compat.Report{}, err
	}
	if format != FormatJSON && format != FormatYAML {
		return compat.Report{}, ccerrors.New(ccerrors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("%s reports cannot be read back", format), nil).
			WithDetail("path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		code := ccerrors.ErrCodeFileNotFound
		if os.IsPermission(err) {
			code = ccerrors.ErrCodeFilePermission
		}
		return compat.Report{}, ccerrors.New(code, "cannot read report", err).WithDetail("path", path)
	}

	var r compat.Report
	if format == FormatYAML {
		err = yaml.Unmarshal(data, &r)
	} else {
		err = json.Unmarshal(data, &r)
	}
	if err != nil {
		return compat.Report{}, ccerrors.New(ccerrors.ErrCodeReportCorrupt, "report is not valid "+string(format), err).
			WithDetail("path", path)
	}
	return r, nil
}
