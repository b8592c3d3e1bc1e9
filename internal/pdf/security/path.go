package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator restricts file access to a single configured input
// directory. Conversion requests name arbitrary paths, so every path is
// containment-checked before it reaches the extractor.
type PathValidator struct {
	inputDirectory string
}

// NewPathValidator creates a path validator rooted at the given directory.
// The directory does not have to exist yet; validation is skipped until
// it does.
func NewPathValidator(inputDirectory string) (*PathValidator, error) {
	if inputDirectory == "" {
		return nil, fmt.Errorf("input directory cannot be empty")
	}
	return &PathValidator{inputDirectory: inputDirectory}, nil
}

// ValidatePath checks that a path resolves inside the input directory
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if _, err := os.Stat(v.inputDirectory); os.IsNotExist(err) {
		return nil
	}

	within, err := v.isWithinInputDirectory(path)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return fmt.Errorf("path is outside input directory: %s", path)
	}
	return nil
}

// isWithinInputDirectory resolves symlinks on both sides before the
// containment check, so a link pointing out of the directory cannot
// smuggle a path in.
func (v *PathValidator) isWithinInputDirectory(path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}
	absDir, err := filepath.Abs(v.inputDirectory)
	if err != nil {
		return false, fmt.Errorf("failed to resolve input directory: %w", err)
	}

	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(absDir)

	realPath := cleanPath
	if info, err := os.Lstat(cleanPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
			realPath = resolved
		}
	}
	realDir := cleanDir
	if resolved, err := filepath.EvalSymlinks(cleanDir); err == nil {
		realDir = resolved
	}

	return (containedIn(cleanPath, cleanDir) || containedIn(cleanPath, realDir)) &&
		(containedIn(realPath, cleanDir) || containedIn(realPath, realDir)), nil
}

func containedIn(path, dir string) bool {
	if path == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dir)
}

// NormalizePath resolves a possibly-relative path against the input
// directory and validates the result
func (v *PathValidator) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	path = strings.ReplaceAll(path, "\x00", "")

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.inputDirectory, path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if err := v.ValidatePath(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// InputDirectory returns the configured input directory
func (v *PathValidator) InputDirectory() string {
	return v.inputDirectory
}
