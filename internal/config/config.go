package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/caseworks/judgment-converter/internal/layout"
)

const (
	// Mode constants
	ModeStdio   = "stdio"
	ModeServer  = "server"
	ModeConvert = "convert"

	// Output format constants (convert mode)
	FormatJSON = "json"
	FormatText = "text"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the judgment converter
type Config struct {
	// Server configuration
	Mode string // "stdio", "server" or "convert"
	Host string
	Port int

	// Input configuration
	InputDirectory string

	// Layout detection tuning
	CenterTolerancePercent float64
	IndentThresholdPt      float64
	MaxLineGapPt           float64

	// Convert mode output
	OutputFormat string // "json" or "text"
	Numbering    string // "literal" or "automatic"

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	detection := layout.DefaultDetectionConfig()

	return &Config{
		Mode:                   ModeStdio, // Default to stdio mode for MCP compatibility
		Host:                   DefaultHost,
		Port:                   DefaultPort,
		InputDirectory:         currentDir,
		CenterTolerancePercent: detection.CenterTolerancePercent,
		IndentThresholdPt:      detection.IndentThresholdPt,
		MaxLineGapPt:           detection.MaxLineGapPt,
		OutputFormat:           FormatJSON,
		Numbering:              "literal",
		Version:                "1.0.0",
		ServerName:             "judgment-converter",
		LogLevel:               DefaultLogLevel,
		MaxFileSize:            DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.InputDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.InputDirectory); err == nil {
			cfg.InputDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("MCP_JUDGMENT")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.InputDirectory)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("centertolerance", cfg.CenterTolerancePercent)
	viper.SetDefault("indentthreshold", cfg.IndentThresholdPt)
	viper.SetDefault("maxlinegap", cfg.MaxLineGapPt)
	viper.SetDefault("format", cfg.OutputFormat)
	viper.SetDefault("numbering", cfg.Numbering)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'stdio' for MCP standard I/O, 'server' for HTTP server, 'convert' for one-shot conversion")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.InputDirectory, "Directory containing judgment PDF files")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Float64("center-tolerance", cfg.CenterTolerancePercent, "Center alignment tolerance as percent of page width")
	pflag.Float64("indent-threshold", cfg.IndentThresholdPt, "Minimum indent in points for list continuation lines")
	pflag.Float64("max-line-gap", cfg.MaxLineGapPt, "Maximum vertical gap in points between merged lines")
	pflag.String("format", cfg.OutputFormat, "Convert mode output format: 'json' or 'text'")
	pflag.String("numbering", cfg.Numbering, "List numbering: 'literal' keeps source markers, 'automatic' defers to the writer")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("centertolerance", pflag.Lookup("center-tolerance"))
	_ = viper.BindPFlag("indentthreshold", pflag.Lookup("indent-threshold"))
	_ = viper.BindPFlag("maxlinegap", pflag.Lookup("max-line-gap"))
	_ = viper.BindPFlag("format", pflag.Lookup("format"))
	_ = viper.BindPFlag("numbering", pflag.Lookup("numbering"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nJudgment Converter - reconstructs paragraph layout from legal judgment PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          "+
			"# stdio mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/judgments                 "+
			"# stdio mode with custom directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --dir=/path/to/judgments   # HTTP server mode\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=convert case.pdf                  # one-shot conversion to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  MCP_JUDGMENT_MODE             Run mode\n")
		fmt.Fprintf(os.Stderr, "  MCP_JUDGMENT_HOST             Server host\n")
		fmt.Fprintf(os.Stderr, "  MCP_JUDGMENT_PORT             Server port\n")
		fmt.Fprintf(os.Stderr, "  MCP_JUDGMENT_DIR              Input directory\n")
		fmt.Fprintf(os.Stderr, "  MCP_JUDGMENT_LOGLEVEL         Log level\n")
		fmt.Fprintf(os.Stderr, "  MCP_JUDGMENT_MAXFILESIZE      Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  MCP_JUDGMENT_CENTERTOLERANCE  Center alignment tolerance\n")
		fmt.Fprintf(os.Stderr, "  MCP_JUDGMENT_INDENTTHRESHOLD  Continuation indent threshold\n")
		fmt.Fprintf(os.Stderr, "  MCP_JUDGMENT_MAXLINEGAP       Maximum merged line gap\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.InputDirectory = viper.GetString("dir")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.CenterTolerancePercent = viper.GetFloat64("centertolerance")
	cfg.IndentThresholdPt = viper.GetFloat64("indentthreshold")
	cfg.MaxLineGapPt = viper.GetFloat64("maxlinegap")
	cfg.OutputFormat = viper.GetString("format")
	cfg.Numbering = viper.GetString("numbering")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer && c.Mode != ModeConvert {
		return errors.New("mode must be one of 'stdio', 'server' or 'convert'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.InputDirectory == "" {
		return errors.New("input directory cannot be empty")
	}

	// Check if input directory exists, create if it doesn't
	if _, err := os.Stat(c.InputDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.InputDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create input directory %s: %w", c.InputDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access input directory %s: %w", c.InputDirectory, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.CenterTolerancePercent <= 0 || c.CenterTolerancePercent >= 50 {
		return errors.New("center tolerance must be between 0 and 50 percent")
	}
	if c.IndentThresholdPt <= 0 {
		return errors.New("indent threshold must be positive")
	}
	if c.MaxLineGapPt <= 0 {
		return errors.New("maximum line gap must be positive")
	}

	if c.OutputFormat != FormatJSON && c.OutputFormat != FormatText {
		return fmt.Errorf("invalid output format: %s (must be 'json' or 'text')", c.OutputFormat)
	}
	if c.Numbering != "literal" && c.Numbering != "automatic" {
		return fmt.Errorf("invalid numbering mode: %s (must be 'literal' or 'automatic')", c.Numbering)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// DetectionConfig returns the layout detection configuration derived from
// the tuning flags
func (c *Config) DetectionConfig() layout.DetectionConfig {
	detection := layout.DefaultDetectionConfig()
	detection.CenterTolerancePercent = c.CenterTolerancePercent
	detection.IndentThresholdPt = c.IndentThresholdPt
	detection.MaxLineGapPt = c.MaxLineGapPt
	return detection
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, InputDirectory: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Host, c.Port, c.InputDirectory, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// IsConvertMode returns true if running in one-shot convert mode
func (c *Config) IsConvertMode() bool {
	return c.Mode == ModeConvert
}
