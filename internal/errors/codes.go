// Package errors provides structured error handling for compcheck.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (files, temporary artifacts, report export)
//   - 3XX: Probe errors (OS facility missing, failed, timed out, malformed output)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryProbe indicates a failed query against an OS facility.
	CategoryProbe Category = "PROBE"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
	// SeverityInfo indicates informational only.
	SeverityInfo Severity = "INFO"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound   = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    = "ERR_102_CONFIG_INVALID"
	ErrCodeConfigPermission = "ERR_103_CONFIG_PERMISSION"

	// IO errors (200-299)
	ErrCodeFileNotFound    = "ERR_201_FILE_NOT_FOUND"
	ErrCodeFilePermission  = "ERR_202_FILE_PERMISSION"
	ErrCodeExportFailed    = "ERR_203_EXPORT_FAILED"
	ErrCodeArtifactTimeout = "ERR_204_ARTIFACT_TIMEOUT"
	ErrCodeTempFile        = "ERR_205_TEMP_FILE"
	ErrCodeReportCorrupt   = "ERR_206_REPORT_CORRUPT"

	// Probe errors (300-399)
	ErrCodeProbeUnavailable = "ERR_301_PROBE_UNAVAILABLE"
	ErrCodeProbeFailed      = "ERR_302_PROBE_FAILED"
	ErrCodeProbeTimeout     = "ERR_303_PROBE_TIMEOUT"
	ErrCodeProbeMalformed   = "ERR_304_PROBE_MALFORMED"
	ErrCodeProbeUnsupported = "ERR_305_PROBE_UNSUPPORTED"
	ErrCodeProbeNoSignal    = "ERR_306_PROBE_NO_SIGNAL"

	// Validation errors (400-499)
	ErrCodeInvalidInput      = "ERR_401_INVALID_INPUT"
	ErrCodeInvalidPath       = "ERR_402_INVALID_PATH"
	ErrCodeUnsupportedFormat = "ERR_403_UNSUPPORTED_FORMAT"

	// Internal errors (500-599)
	ErrCodeInternal   = "ERR_501_INTERNAL"
	ErrCodeLockFailed = "ERR_502_LOCK_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract numeric portion (e.g., "301" from "ERR_301_PROBE_UNAVAILABLE")
	numStr := code[4:7]

	switch numStr[0] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryProbe
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	// A probe failure never aborts a run: the criterion degrades to false.
	if categoryFromCode(code) == CategoryProbe {
		return SeverityWarning
	}

	switch code {
	case ErrCodeArtifactTimeout, ErrCodeLockFailed:
		return SeverityWarning
	}

	return SeverityError
}

// isRetryableCode checks if an error code represents a retryable error.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeProbeTimeout, ErrCodeArtifactTimeout, ErrCodeLockFailed:
		return true
	default:
		return false
	}
}
