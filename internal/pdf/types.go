package pdf

import "github.com/caseworks/judgment-converter/internal/layout"

// Request Types

// ValidateFileRequest represents a request to validate a PDF file
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// ExtractFragmentsRequest represents a request to extract positioned text
// fragments from a PDF file
type ExtractFragmentsRequest struct {
	Path string `json:"path"`
}

// ConvertDocumentRequest represents a request to run the full layout
// reconstruction pipeline over a PDF file
type ConvertDocumentRequest struct {
	Path string `json:"path"`
}

// Result Types

// ValidateFileResult represents the result of validating a PDF file
type ValidateFileResult struct {
	Path      string `json:"path"`
	Valid     bool   `json:"valid"`
	Message   string `json:"message,omitempty"`
	PageCount int    `json:"page_count,omitempty"`
	FileSize  int64  `json:"file_size,omitempty"`
}

// ExtractFragmentsResult represents the ordered fragment stream extracted
// from one document, together with the page geometry the layout engine
// needs.
type ExtractFragmentsResult struct {
	Path       string            `json:"path"`
	PageCount  int               `json:"page_count"`
	PageWidth  float64           `json:"page_width"`
	PageHeight float64           `json:"page_height"`
	Fragments  []layout.Fragment `json:"fragments"`
}

// ConvertDocumentResult represents a completed conversion: the finalized
// paragraph stream plus extraction information.
type ConvertDocumentResult struct {
	Path          string         `json:"path"`
	PageCount     int            `json:"page_count"`
	FragmentCount int            `json:"fragment_count"`
	Layout        *layout.Result `json:"layout"`
}
