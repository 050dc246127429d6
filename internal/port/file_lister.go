package port

import "bizdocs/internal/domain"

// FileLister lists the regular files of a directory.
type FileLister interface {
	List(dir string) ([]domain.FileEntry, error)
}
