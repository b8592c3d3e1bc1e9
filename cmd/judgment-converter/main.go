package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/caseworks/judgment-converter/internal/config"
	"github.com/caseworks/judgment-converter/internal/docxgen"
	"github.com/caseworks/judgment-converter/internal/mcp"
	"github.com/caseworks/judgment-converter/internal/pdf"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, redirect log output to stderr to avoid interfering with MCP protocol
		log.SetOutput(os.Stderr)
		// Reduce log verbosity in stdio mode unless debug is enabled
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// runServerMode handles server mode execution with signal handling
func runServerMode(ctx context.Context, cancel context.CancelFunc, server *mcp.Server) {
	// Set up signal handling for graceful shutdown
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Run(ctx)
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		log.Println("Initiating graceful shutdown...")
		cancel()

		if err := <-serverErrCh; err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Server stopped successfully")
}

// runStdioMode handles stdio mode execution
func runStdioMode(ctx context.Context, _ context.CancelFunc, server *mcp.Server) {
	// In stdio mode, the parent process controls our lifecycle
	if err := server.Run(ctx); err != nil {
		// Only log to stderr in debug mode to avoid protocol interference
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

// runConvertMode converts the files named on the command line and writes
// the result to stdout
func runConvertMode(ctx context.Context, cfg *config.Config, pdfService *pdf.Service) error {
	paths := pflag.Args()
	if len(paths) == 0 {
		return fmt.Errorf("convert mode requires at least one PDF file argument")
	}

	opts := docxgen.Options{Numbering: docxgen.NumberingMode(cfg.Numbering)}
	var writer docxgen.Writer
	if cfg.OutputFormat == config.FormatText {
		writer = docxgen.NewTextWriter(opts)
	} else {
		writer = docxgen.NewJSONWriter(opts)
	}

	for _, path := range paths {
		result, err := pdfService.ConvertDocument(ctx, pdf.ConvertDocumentRequest{Path: path})
		if err != nil {
			return fmt.Errorf("failed to convert %s: %w", path, err)
		}

		for _, w := range result.Layout.Warnings {
			log.Printf("warning [%s] %s", w.Code, w.Message)
		}

		if err := writer.Write(os.Stdout, result.Layout.Paragraphs); err != nil {
			return fmt.Errorf("failed to render %s: %w", path, err)
		}
	}
	return nil
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && cfg.IsServerMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	pdfService, err := pdf.NewServiceWithConfig(cfg.MaxFileSize, cfg.InputDirectory, cfg.DetectionConfig())
	if err != nil {
		log.Fatalf("Failed to create PDF service: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsConvertMode() {
		if err := runConvertMode(ctx, cfg, pdfService); err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("Conversion failed: %v", err)
		}
		return
	}

	server, err := mcp.NewServer(cfg, pdfService)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	if cfg.IsServerMode() {
		runServerMode(ctx, cancel, server)
	} else {
		runStdioMode(ctx, cancel, server)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Judgment Converter\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
