package mcp

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/caseworks/judgment-converter/internal/config"
	"github.com/caseworks/judgment-converter/internal/descriptions"
	"github.com/caseworks/judgment-converter/internal/docxgen"
	"github.com/caseworks/judgment-converter/internal/layout"
	"github.com/caseworks/judgment-converter/internal/pdf"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	mcpServer  *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service) (*Server, error) {
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		mcpServer:  mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	judgmentConvertFileTool := mcp.NewTool(
		"judgment_convert_file",
		mcp.WithDescription(descriptions.JudgmentConvertFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the judgment PDF file"),
		),
		mcp.WithString("numbering",
			mcp.Description("List numbering: 'literal' keeps source markers (default), 'automatic' omits them"),
		),
	)
	s.mcpServer.AddTool(judgmentConvertFileTool, s.handleJudgmentConvertFile)

	judgmentLayoutFileTool := mcp.NewTool(
		"judgment_layout_file",
		mcp.WithDescription(descriptions.JudgmentLayoutFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the judgment PDF file"),
		),
	)
	s.mcpServer.AddTool(judgmentLayoutFileTool, s.handleJudgmentLayoutFile)

	pdfValidateFileTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription(descriptions.PDFValidateFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(pdfValidateFileTool, s.handlePDFValidateFile)

	serverInfoTool := mcp.NewTool(
		"server_info",
		mcp.WithDescription(descriptions.ServerInfoDescription),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleJudgmentConvertFile(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	numbering := docxgen.NumberingLiteral
	if n, ok := request.GetArguments()["numbering"].(string); ok && n != "" {
		switch n {
		case string(docxgen.NumberingLiteral):
			numbering = docxgen.NumberingLiteral
		case string(docxgen.NumberingAutomatic):
			numbering = docxgen.NumberingAutomatic
		default:
			return mcp.NewToolResultError(fmt.Sprintf("invalid numbering mode: %s", n)), nil
		}
	}

	result, err := s.pdfService.ConvertDocument(ctx, pdf.ConvertDocumentRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Converted judgment: %s\n", result.Path)
	fmt.Fprintf(&sb, "Pages: %d\n", result.PageCount)
	fmt.Fprintf(&sb, "Fragments: %d\n", result.FragmentCount)
	fmt.Fprintf(&sb, "Paragraphs: %d\n", len(result.Layout.Paragraphs))
	if len(result.Layout.Warnings) > 0 {
		fmt.Fprintf(&sb, "Warnings: %d (see layout tool for details)\n", len(result.Layout.Warnings))
	}
	sb.WriteString("\n")

	writer := docxgen.NewJSONWriter(docxgen.Options{Numbering: numbering})
	if err := writer.Write(&sb, result.Layout.Paragraphs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleJudgmentLayoutFile(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.ConvertDocument(ctx, pdf.ConvertDocumentRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatLayoutSummary(result)), nil
}

func (s *Server) handlePDFValidateFile(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.ValidateFile(pdf.ValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable (%d pages, %d bytes)",
			result.Path, result.PageCount, result.FileSize)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.pdfService.ServerInfo(pdf.ServerInfoRequest{},
		s.config.ServerName, s.config.Version, s.availableTools())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatServerInfoResult(result)), nil
}

// availableTools lists the registered tools for the info response
func (s *Server) availableTools() []pdf.ToolInfo {
	return []pdf.ToolInfo{
		{
			Name:        "judgment_convert_file",
			Description: "Convert a judgment PDF into structured paragraphs",
			Parameters:  "path (required), numbering (optional: literal|automatic)",
		},
		{
			Name:        "judgment_layout_file",
			Description: "Summarize the reconstructed layout of a judgment PDF",
			Parameters:  "path (required)",
		},
		{
			Name:        "pdf_validate_file",
			Description: "Validate that a file is a readable PDF",
			Parameters:  "path (required)",
		},
		{
			Name:        "server_info",
			Description: "Get server capabilities and configuration",
			Parameters:  "none",
		},
	}
}

// Formatting methods
func (s *Server) formatLayoutSummary(result *pdf.ConvertDocumentResult) string {
	stats := result.Layout.Stats

	var sb strings.Builder
	fmt.Fprintf(&sb, "Layout summary for: %s\n", result.Path)
	fmt.Fprintf(&sb, "Pages: %d\n", result.PageCount)
	fmt.Fprintf(&sb, "Fragments: %d\n", stats.FragmentCount)
	fmt.Fprintf(&sb, "Logical units: %d\n", stats.UnitCount)
	fmt.Fprintf(&sb, "Paragraphs: %d\n", len(result.Layout.Paragraphs))
	if stats.ArtifactCount > 0 {
		fmt.Fprintf(&sb, "Artifacts removed: %d\n", stats.ArtifactCount)
	}

	if len(stats.RolesEmitted) > 0 {
		sb.WriteString("\nParagraphs by role:\n")
		roles := make([]layout.Role, 0, len(stats.RolesEmitted))
		for role := range stats.RolesEmitted {
			roles = append(roles, role)
		}
		sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
		for _, role := range roles {
			fmt.Fprintf(&sb, "  %-18s %d\n", role, stats.RolesEmitted[role])
		}
	}

	if len(result.Layout.Warnings) > 0 {
		fmt.Fprintf(&sb, "\nWarnings (%d):\n", len(result.Layout.Warnings))
		for _, w := range result.Layout.Warnings {
			fmt.Fprintf(&sb, "  [%s] %s", w.Code, w.Message)
			if w.Page > 0 {
				fmt.Fprintf(&sb, " (page %d)", w.Page)
			}
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString("\nNo warnings.\n")
	}

	return sb.String()
}

func (s *Server) formatServerInfoResult(result *pdf.ServerInfoResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s v%s - Server Information\n", result.ServerName, result.Version)
	fmt.Fprintf(&sb, "Input Directory: %s\n", result.InputDirectory)
	fmt.Fprintf(&sb, "Max File Size: %d MB\n\n", result.MaxFileSize/(1024*1024))

	if len(result.DirectoryContents) > 0 {
		fmt.Fprintf(&sb, "Directory Contents (%d PDF files found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 { // Limit to first 10 files for readability
				fmt.Fprintf(&sb, "   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			fmt.Fprintf(&sb, "   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("Directory Contents: No PDF files found in input directory\n\n")
	}

	sb.WriteString("Available Tools:\n")
	for _, tool := range result.AvailableTools {
		fmt.Fprintf(&sb, "\n• %s\n", tool.Name)
		fmt.Fprintf(&sb, "  Description: %s\n", tool.Description)
		fmt.Fprintf(&sb, "  Parameters: %s\n", tool.Parameters)
	}

	return sb.String()
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting judgment converter MCP server in stdio mode")
		log.Printf("Input directory: %s", s.config.InputDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting judgment converter MCP server on %s", s.config.Address())
	}

	httpServer := server.NewStreamableHTTPServer(s.mcpServer)
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start(s.config.Address())
	}()

	select {
	case <-ctx.Done():
		return httpServer.Shutdown(context.Background())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}
		return nil
	}
}
