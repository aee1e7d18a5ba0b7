// Package server implements the MCP server for agent-safe choice resolution.
package server

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/electa-hq/electa/core"
	"github.com/electa-hq/electa/core/report"
	"github.com/electa-hq/electa/core/report/sarif"
)

const (
	// maxOutputBytes is the maximum response size before truncation (1 MB).
	maxOutputBytes = 1 << 20
)

// Server is the electa MCP server.
type Server struct {
	version      string
	allowedPaths []string

	mu    sync.RWMutex
	cache *core.ScanResult
}

// New creates a new MCP server. If allowedPaths is empty, any path is allowed.
func New(version string, allowedPaths []string) *Server {
	// Resolve allowed paths to absolute for consistent comparison.
	resolved := make([]string, 0, len(allowedPaths))
	for _, p := range allowedPaths {
		abs, err := filepath.Abs(p)
		if err == nil {
			resolved = append(resolved, abs)
		}
	}
	return &Server{
		version:      version,
		allowedPaths: resolved,
	}
}

// Serve starts the MCP server on stdio and blocks until the client disconnects.
func (s *Server) Serve() error {
	srv := mcpserver.NewMCPServer(
		"electa",
		s.version,
		mcpserver.WithRecovery(),
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithResourceCapabilities(false, false),
	)

	s.registerTools(srv)
	s.registerResources(srv)

	return mcpserver.ServeStdio(srv)
}

func (s *Server) registerTools(srv *mcpserver.MCPServer) {
	// scan tool — runs the full resolution pipeline.
	srv.AddTool(
		mcp.NewTool("scan",
			mcp.WithDescription("Resolve choice rules against a project directory"),
			mcp.WithString("path",
				mcp.Description("Absolute path to the directory to scan"),
				mcp.Required(),
			),
			mcp.WithString("rules",
				mcp.Description("Rules file or directory (default: scan.rules from .electa.yaml)"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleScan,
	)

	// get_findings tool — returns resolved choices from the last scan.
	srv.AddTool(
		mcp.NewTool("get_findings",
			mcp.WithDescription("Get resolved choices from the last scan"),
			mcp.WithString("format",
				mcp.Description("Output format: json or sarif"),
				mcp.Enum("json", "sarif"),
				mcp.DefaultString("json"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetFindings,
	)
}

func (s *Server) registerResources(srv *mcpserver.MCPServer) {
	srv.AddResource(
		mcp.NewResource("electa://findings", "Findings JSON",
			mcp.WithResourceDescription("Resolved choices in electa JSON format"),
			mcp.WithMIMEType("application/json"),
		),
		s.handleResourceFindings,
	)

	srv.AddResource(
		mcp.NewResource("electa://sarif", "SARIF Report",
			mcp.WithResourceDescription("Resolved choices in SARIF 2.1.0 format"),
			mcp.WithMIMEType("application/json"),
		),
		s.handleResourceSARIF,
	)
}

// isPathAllowed checks if the given path is under one of the allowed workspace roots.
func (s *Server) isPathAllowed(path string) error {
	if len(s.allowedPaths) == 0 {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve path: %w", err)
	}

	for _, allowed := range s.allowedPaths {
		rel, err := filepath.Rel(allowed, abs)
		if err != nil {
			continue
		}
		// If the relative path doesn't start with "..", it's under the allowed root.
		if !strings.HasPrefix(rel, "..") {
			return nil
		}
	}

	return fmt.Errorf("path %q is outside allowed workspaces", path)
}

func (s *Server) handleScan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: path"), nil
	}

	if err := s.isPathAllowed(path); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := core.RunScanContext(ctx, path, core.ScanOptions{
		RulesPath: request.GetString("rules", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	// Cache the result for subsequent tool/resource calls.
	s.mu.Lock()
	s.cache = result
	s.mu.Unlock()

	summary := fmt.Sprintf("Scan complete: %d of %d rule(s) resolved across %d file(s)",
		len(result.Findings), result.Rules.Len(), result.FilesScanned)

	return mcp.NewToolResultText(summary), nil
}

func (s *Server) handleGetFindings(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.RLock()
	cache := s.cache
	s.mu.RUnlock()

	if cache == nil {
		return mcp.NewToolResultError("no scan results available — run the scan tool first"), nil
	}

	format := request.GetString("format", "json")

	var data []byte
	var err error

	switch format {
	case "sarif":
		r := sarif.NewReporter(s.version, cache.Rules)
		data, err = r.Generate(cache.Findings)
	default:
		r := report.NewJSONReporter(s.version)
		data, err = r.Generate(cache.Findings)
	}

	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report generation failed: %v", err)), nil
	}

	return mcp.NewToolResultText(truncate(string(data))), nil
}

// Resource handlers.

func (s *Server) handleResourceFindings(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.mu.RLock()
	cache := s.cache
	s.mu.RUnlock()

	if cache == nil {
		return nil, fmt.Errorf("no scan results available")
	}

	r := report.NewJSONReporter(s.version)
	data, err := r.Generate(cache.Findings)
	if err != nil {
		return nil, fmt.Errorf("generating findings JSON: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     truncate(string(data)),
		},
	}, nil
}

func (s *Server) handleResourceSARIF(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.mu.RLock()
	cache := s.cache
	s.mu.RUnlock()

	if cache == nil {
		return nil, fmt.Errorf("no scan results available")
	}

	r := sarif.NewReporter(s.version, cache.Rules)
	data, err := r.Generate(cache.Findings)
	if err != nil {
		return nil, fmt.Errorf("generating SARIF: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     truncate(string(data)),
		},
	}, nil
}

// truncate limits output to maxOutputBytes, appending a truncation notice if needed.
func truncate(s string) string {
	if len(s) <= maxOutputBytes {
		return s
	}
	return s[:maxOutputBytes] + "\n... [truncated: output exceeded 1MB limit]"
}
