package pdf

import (
	"context"
	"fmt"

	"github.com/caseworks/judgment-converter/internal/layout"
	"github.com/caseworks/judgment-converter/internal/pdf/security"
)

// Service orchestrates the conversion pipeline: path containment,
// validation, fragment extraction and layout reconstruction.
type Service struct {
	maxFileSize   int64
	validator     *Validator
	source        *Source
	engine        *layout.Engine
	pathValidator *security.PathValidator
	infoCache     directoryCache
}

// NewService creates a PDF service with the default layout configuration
func NewService(maxFileSize int64, inputDirectory string) (*Service, error) {
	return NewServiceWithConfig(maxFileSize, inputDirectory, layout.DefaultDetectionConfig())
}

// NewServiceWithConfig creates a PDF service with a custom layout
// configuration
func NewServiceWithConfig(maxFileSize int64, inputDirectory string, cfg layout.DetectionConfig) (*Service, error) {
	pathValidator, err := security.NewPathValidator(inputDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		maxFileSize:   maxFileSize,
		validator:     NewValidator(maxFileSize),
		source:        NewSource(maxFileSize),
		engine:        layout.NewEngineWithConfig(cfg),
		pathValidator: pathValidator,
	}, nil
}

// ValidateFile performs validation on a PDF file
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.validator.ValidateFile(req)
}

// ExtractFragments extracts the positioned fragment stream of a PDF file
func (s *Service) ExtractFragments(req ExtractFragmentsRequest) (*ExtractFragmentsResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.source.ExtractFragments(req)
}

// ConvertDocument runs the full pipeline over a PDF file and returns the
// reconstructed paragraph stream
func (s *Service) ConvertDocument(ctx context.Context, req ConvertDocumentRequest) (*ConvertDocumentResult, error) {
	extracted, err := s.ExtractFragments(ExtractFragmentsRequest{Path: req.Path})
	if err != nil {
		return nil, err
	}

	layoutResult, err := s.engine.Reconstruct(ctx, extracted.Fragments, extracted.PageWidth)
	if err != nil {
		return nil, fmt.Errorf("layout reconstruction failed: %w", err)
	}

	return &ConvertDocumentResult{
		Path:          req.Path,
		PageCount:     extracted.PageCount,
		FragmentCount: len(extracted.Fragments),
		Layout:        layoutResult,
	}, nil
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// InputDirectory returns the directory conversions are restricted to
func (s *Service) InputDirectory() string {
	return s.pathValidator.InputDirectory()
}
