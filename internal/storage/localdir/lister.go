// Package localdir lists rendered documents on the local filesystem.
package localdir

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"bizdocs/internal/domain"
	"bizdocs/internal/port"
)

type lister struct{}

// NewLister returns a FileLister over the local filesystem.
func NewLister() port.FileLister {
	return lister{}
}

// List returns the regular, non-hidden files in dir, newest first. CreatedAt
// is the modification time, which for rendered documents is when the final
// rename happened. A missing directory lists as empty.
func (lister) List(dir string) ([]domain.FileEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.FileEntry{}, nil
		}
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	files := make([]domain.FileEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, domain.FileEntry{
			Name:      e.Name(),
			Size:      info.Size(),
			CreatedAt: info.ModTime().UTC(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].CreatedAt.Equal(files[j].CreatedAt) {
			return files[i].Name < files[j].Name
		}
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	return files, nil
}
