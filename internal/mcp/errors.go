// Package mcp implements the Model Context Protocol (MCP) server for compcheck.
// It lets AI clients run the compatibility check and export its report.
package mcp

import (
	"context"
	"errors"
	"fmt"

	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
)

// Custom MCP error codes for compcheck.
const (
	// ErrCodeNoReport indicates no check has run in this session.
	ErrCodeNoReport = -32001

	// ErrCodeExportFailed indicates the report could not be written.
	ErrCodeExportFailed = -32002

	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout = -32003

	// ErrCodeBusy indicates another run holds the run lock.
	ErrCodeBusy = -32004

	// Standard JSON-RPC error codes.
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// Sentinel errors for internal use.
var (
	// ErrNoReport indicates no check has run in this session.
	ErrNoReport = errors.New("no report available")

	// ErrToolNotFound indicates the requested tool does not exist.
	ErrToolNotFound = errors.New("tool not found")
)

// MCPError represents an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts internal errors to MCP errors.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var mcpErr *MCPError
	if errors.As(err, &mcpErr) {
		return mcpErr
	}

	var checkErr *ccerrors.CheckError
	if errors.As(err, &checkErr) {
		return mapCheckError(checkErr)
	}

	switch {
	case errors.Is(err, ErrNoReport):
		return &MCPError{
			Code:    ErrCodeNoReport,
			Message: "No report yet. Call check_compatibility first.",
		}
	case errors.Is(err, ErrToolNotFound):
		return &MCPError{
			Code:    ErrCodeMethodNotFound,
			Message: "Tool not found.",
		}
	case errors.Is(err, context.DeadlineExceeded):
		return &MCPError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out.",
		}
	case errors.Is(err, context.Canceled):
		return &MCPError{
			Code:    ErrCodeTimeout,
			Message: "Request was canceled.",
		}
	default:
		return &MCPError{
			Code:    ErrCodeInternalError,
			Message: "Internal server error.",
		}
	}
}

// NewInvalidParamsError creates an error for invalid parameters with a custom message.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{
		Code:    ErrCodeInvalidParams,
		Message: msg,
	}
}

// NewMethodNotFoundError creates an error for unknown tools.
func NewMethodNotFoundError(name string) *MCPError {
	return &MCPError{
		Code:    ErrCodeMethodNotFound,
		Message: fmt.Sprintf("Tool '%s' not found.", name),
	}
}

// NewResourceNotFoundError creates an error for unknown resources.
func NewResourceNotFoundError(uri string) *MCPError {
	return &MCPError{
		Code:    ErrCodeMethodNotFound,
		Message: fmt.Sprintf("Resource '%s' not found.", uri),
	}
}

// mapCheckError converts a CheckError to an MCPError.
func mapCheckError(ce *ccerrors.CheckError) *MCPError {
	message := ce.Message
	if ce.Suggestion != "" {
		message = fmt.Sprintf("%s. %s", ce.Message, ce.Suggestion)
	}

	switch ce.Category {
	case ccerrors.CategoryValidation:
		return &MCPError{Code: ErrCodeInvalidParams, Message: message}
	case ccerrors.CategoryIO:
		return &MCPError{Code: ErrCodeExportFailed, Message: message}
	case ccerrors.CategoryProbe:
		if ce.Code == ccerrors.ErrCodeProbeTimeout {
			return &MCPError{Code: ErrCodeTimeout, Message: message}
		}
		return &MCPError{Code: ErrCodeInternalError, Message: message}
	default:
		if ce.Code == ccerrors.ErrCodeLockFailed {
			return &MCPError{Code: ErrCodeBusy, Message: message}
		}
		return &MCPError{Code: ErrCodeInternalError, Message: message}
	}
}
