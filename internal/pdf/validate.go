package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validator checks that an input file is a readable PDF within the
// configured size limit before extraction is attempted.
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a validator with the specified size constraint
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{maxFileSize: maxFileSize}
}

// ValidateFile validates a PDF file. Validation failures are reported in
// the result, not as an error; an error means the check itself could not
// run.
func (v *Validator) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	result := &ValidateFileResult{Path: req.Path}

	pageCount, size, err := v.check(req.Path)
	if err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // validation failure is part of the result
	}

	result.Valid = true
	result.PageCount = pageCount
	result.FileSize = size
	return result, nil
}

// check performs the actual file and structure checks
func (v *Validator) check(path string) (pageCount int, size int64, err error) {
	if path == "" {
		return 0, 0, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return 0, 0, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return 0, 0, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return 0, 0, fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() == 0 {
		return 0, 0, fmt.Errorf("file is empty: %s", path)
	}
	if fileInfo.Size() > v.maxFileSize {
		return 0, 0, fmt.Errorf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), v.maxFileSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	// Scanned judgments are frequently produced by sloppy generators, so
	// relaxed validation is the only workable mode.
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid PDF file: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, 0, fmt.Errorf("cannot determine page count: %w", err)
	}

	return ctx.PageCount, fileInfo.Size(), nil
}
