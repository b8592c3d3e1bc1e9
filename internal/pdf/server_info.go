package pdf

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	directoryCacheTTL = 30 * time.Second
	directoryScanMax  = 100
)

// FileInfo describes one PDF file found in the input directory
type FileInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// ToolInfo describes one tool exposed by the server
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  string `json:"parameters"`
}

// ServerInfoRequest represents a request for server information
type ServerInfoRequest struct{}

// ServerInfoResult represents the server information response
type ServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	InputDirectory    string     `json:"input_directory"`
	MaxFileSize       int64      `json:"max_file_size"`
	DirectoryContents []FileInfo `json:"directory_contents"`
	AvailableTools    []ToolInfo `json:"available_tools"`
}

// directoryCache caches input directory listings so repeated server_info
// calls do not rescan large directories.
type directoryCache struct {
	mu         sync.RWMutex
	files      []FileInfo
	lastUpdate time.Time
	path       string
}

func (c *directoryCache) get(path string) ([]FileInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.path != path || time.Since(c.lastUpdate) > directoryCacheTTL {
		return nil, false
	}
	return c.files, true
}

func (c *directoryCache) set(path string, files []FileInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.path = path
	c.files = files
	c.lastUpdate = time.Now()
}

// ServerInfo reports server capabilities and a bounded listing of the
// input directory
func (s *Service) ServerInfo(_ ServerInfoRequest, serverName, version string, tools []ToolInfo) (*ServerInfoResult, error) {
	dir := s.InputDirectory()

	files, ok := s.infoCache.get(dir)
	if !ok {
		files = scanForPDFs(dir, directoryScanMax)
		s.infoCache.set(dir, files)
	}

	return &ServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		InputDirectory:    dir,
		MaxFileSize:       s.maxFileSize,
		DirectoryContents: files,
		AvailableTools:    tools,
	}, nil
}

// scanForPDFs walks the input directory collecting PDF files, stopping
// once the limit is reached
func scanForPDFs(dir string, limit int) []FileInfo {
	var files []FileInfo

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".pdf") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr
		}
		files = append(files, FileInfo{Name: d.Name(), Path: path, Size: info.Size()})
		if len(files) >= limit {
			return fs.SkipAll
		}
		return nil
	})

	return files
}
