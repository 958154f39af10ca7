package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Resource URIs.
const (
	URIRequirements = "compcheck://requirements"
	URILatestReport = "compcheck://report/latest"
)

// registerResources exposes the requirement list and the last report.
func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        "requirements",
		URI:         URIRequirements,
		Description: "Windows 11 hardware requirements evaluated by compcheck",
		MIMEType:    "application/json",
	}, func(ctx context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return s.ReadResource(ctx, URIRequirements)
	})

	s.mcp.AddResource(&mcp.Resource{
		Name:        "latest-report",
		URI:         URILatestReport,
		Description: "Most recent compatibility report of this session",
		MIMEType:    "application/json",
	}, func(ctx context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return s.ReadResource(ctx, URILatestReport)
	})
}

// ReadResource reads a resource by URI.
func (s *Server) ReadResource(_ context.Context, uri string) (*mcp.ReadResourceResult, error) {
	var v any
	switch uri {
	case URIRequirements:
		v = Requirements()
	case URILatestReport:
		r, ok := s.LastReport()
		if !ok {
			return nil, MapError(ErrNoReport)
		}
		v = r
	default:
		return nil, NewResourceNotFoundError(uri)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, MapError(err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
