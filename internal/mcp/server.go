package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/compcheck/internal/compat"
	"github.com/Aman-CERP/compcheck/internal/report"
	"github.com/Aman-CERP/compcheck/pkg/version"
)

// Runner produces a compatibility report. *compat.Checker implements it.
type Runner interface {
	RunAll(ctx context.Context) compat.Report
}

var _ Runner = (*compat.Checker)(nil)

// Server is the MCP server for compcheck.
type Server struct {
	mcp    *mcp.Server
	runner Runner
	logger *slog.Logger
	now    func() time.Time

	// runMu serializes runs within this process; the run lock covers
	// other processes.
	runMu sync.Mutex

	mu   sync.RWMutex
	last *compat.Report
}

// ToolInfo contains information about a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

var tools = []ToolInfo{
	{
		Name:        "check_compatibility",
		Description: "Check whether this Windows machine can upgrade to Windows 11. Probes CPU, RAM, storage, TPM, Secure Boot, GPT partitioning, DirectX/WDDM and architecture, and returns a per-requirement verdict. Takes several seconds.",
	},
	{
		Name:        "export_report",
		Description: "Write the compatibility report to a file. The extension selects the format: .json, .yaml, .md, .html or .csv. Uses the last report of this session unless refresh is set.",
	},
	{
		Name:        "get_requirements",
		Description: "List the Windows 11 hardware requirements compcheck evaluates, with minimums and whether each one is essential.",
	},
}

// NewServer creates a new MCP server around runner.
func NewServer(runner Runner, logger *slog.Logger) (*Server, error) {
	if runner == nil {
		return nil, errors.New("runner is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		runner: runner,
		logger: logger,
		now:    time.Now,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "compcheck",
			Version: version.Version,
		},
		nil, // capabilities are inferred from registered tools/resources
	)

	s.registerTools()
	s.registerResources()

	return s, nil
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Info returns the server name and version.
func (s *Server) Info() (name, ver string) {
	return "compcheck", version.Version
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return append([]ToolInfo(nil), tools...)
}

// LastReport returns the most recent report of this session.
func (s *Server) LastReport() (compat.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return compat.Report{}, false
	}
	return *s.last, true
}

// CallTool invokes a tool by name with JSON-style arguments.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case "check_compatibility":
		var in CheckInput
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		out, _, err := s.handleCheck(ctx, in)
		return out, err
	case "export_report":
		var in ExportInput
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return s.handleExport(ctx, in)
	case "get_requirements":
		return Requirements(), nil
	default:
		return nil, NewMethodNotFoundError(name)
	}
}

func decodeArgs(args map[string]any, into any) error {
	if len(args) == 0 {
		return nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return NewInvalidParamsError(err.Error())
	}
	if err := json.Unmarshal(data, into); err != nil {
		return NewInvalidParamsError(fmt.Sprintf("invalid arguments: %v", err))
	}
	return nil
}

// run probes the machine, or returns the cached report when allowed.
func (s *Server) run(ctx context.Context, useCached bool) compat.Report {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if useCached {
		if r, ok := s.LastReport(); ok {
			return r
		}
	}

	r := report.Stamp(s.runner.RunAll(ctx), s.now())

	s.mu.Lock()
	s.last = &r
	s.mu.Unlock()
	return r
}

// handleCheck handles the check_compatibility tool invocation.
func (s *Server) handleCheck(ctx context.Context, in CheckInput) (CheckOutput, compat.Report, error) {
	start := time.Now()
	requestID := generateRequestID()

	s.logger.Info("check_compatibility started",
		slog.String("request_id", requestID),
		slog.Bool("use_cached", in.UseCached))

	r := s.run(ctx, in.UseCached)

	s.logger.Info("check_compatibility completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
		slog.Bool("compatible", r.Compatible),
		slog.Int("passed", r.Summary.TotalPassed))

	return ToCheckOutput(r), r, nil
}

// handleExport handles the export_report tool invocation.
func (s *Server) handleExport(ctx context.Context, in ExportInput) (ExportOutput, error) {
	requestID := generateRequestID()

	if strings.TrimSpace(in.Path) == "" {
		return ExportOutput{}, NewInvalidParamsError("path parameter is required")
	}
	format, err := report.FormatFromPath(in.Path)
	if err != nil {
		return ExportOutput{}, MapError(err)
	}

	r := s.run(ctx, !in.Refresh)

	written, err := report.ExportReport(r, in.Path)
	if err != nil {
		s.logger.Error("export_report failed",
			slog.String("request_id", requestID),
			slog.String("path", in.Path),
			slog.String("error", err.Error()))
		return ExportOutput{}, MapError(err)
	}

	s.logger.Info("export_report completed",
		slog.String("request_id", requestID),
		slog.String("path", written),
		slog.String("format", string(format)))

	return ExportOutput{
		Path:       written,
		Format:     string(format),
		MIMEType:   MimeTypeForFormat(format),
		Compatible: r.Compatible,
	}, nil
}

// registerTools registers all tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[0].Name, Description: tools[0].Description}, s.mcpCheckHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[1].Name, Description: tools[1].Description}, s.mcpExportHandler)
	mcp.AddTool(s.mcp, &mcp.Tool{Name: tools[2].Name, Description: tools[2].Description}, s.mcpRequirementsHandler)

	s.logger.Debug("MCP tools registered", slog.Int("count", len(tools)))
}

// mcpCheckHandler is the MCP SDK handler for the check_compatibility tool.
func (s *Server) mcpCheckHandler(ctx context.Context, _ *mcp.CallToolRequest, in CheckInput) (
	*mcp.CallToolResult,
	CheckOutput,
	error,
) {
	out, r, err := s.handleCheck(ctx, in)
	if err != nil {
		return nil, CheckOutput{}, MapError(err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatCheckResult(r)}},
	}, out, nil
}

// mcpExportHandler is the MCP SDK handler for the export_report tool.
func (s *Server) mcpExportHandler(ctx context.Context, _ *mcp.CallToolRequest, in ExportInput) (
	*mcp.CallToolResult,
	ExportOutput,
	error,
) {
	out, err := s.handleExport(ctx, in)
	if err != nil {
		return nil, ExportOutput{}, err
	}
	return nil, out, nil
}

// mcpRequirementsHandler is the MCP SDK handler for the get_requirements tool.
func (s *Server) mcpRequirementsHandler(_ context.Context, _ *mcp.CallToolRequest, _ RequirementsInput) (
	*mcp.CallToolResult,
	RequirementsOutput,
	error,
) {
	return nil, Requirements(), nil
}

// Serve starts the server with the specified transport.
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("Starting MCP server", slog.String("transport", transport))

	switch transport {
	case "", "stdio":
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
			return err
		}
		s.logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
