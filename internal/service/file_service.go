package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bizdocs/internal/config"
	"bizdocs/internal/domain"
	"bizdocs/internal/port"
)

// FileService exposes the rendered files in the output directory.
type FileService interface {
	List() ([]domain.FileEntry, error)
	// Path resolves a listed file name to its location on disk.
	Path(name string) (string, error)
}

type fileService struct {
	lister port.FileLister
	cfg    config.RenderConfig
}

// NewFileService creates a new FileService implementation.
func NewFileService(lister port.FileLister, cfg config.RenderConfig) FileService {
	return &fileService{lister: lister, cfg: cfg}
}

func (s *fileService) List() ([]domain.FileEntry, error) {
	files, err := s.lister.List(s.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("fileService.List: %w", err)
	}
	return files, nil
}

// Path accepts bare, non-hidden file names only, so nothing outside the
// output directory can be reached.
func (s *fileService) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") || strings.ContainsRune(name, '\\') {
		return "", domain.ErrNotFound
	}
	p := filepath.Join(s.cfg.OutputDir, name)
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("fileService.Path: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", domain.ErrNotFound
	}
	return p, nil
}
