package localdir

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bizdocs/internal/domain"
)

// WriteFile streams write into dir/name through a hidden temp file in the same
// directory. The temp file is synced, closed and renamed into place; only a
// completed rename counts as success and the temp file is removed on any failure.
// Errors from write are returned unchanged, filesystem errors wrap domain.ErrOutputFailed.
func WriteFile(dir, name string, write func(io.Writer) error) (path string, size int64, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("creating output dir: %w: %w", domain.ErrOutputFailed, err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", 0, fmt.Errorf("creating temp file: %w: %w", domain.ErrOutputFailed, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	cw := &countingWriter{w: tmp}
	if err = write(cw); err != nil {
		return "", 0, err
	}
	if err = tmp.Sync(); err != nil {
		return "", 0, fmt.Errorf("syncing %s: %w: %w", name, domain.ErrOutputFailed, err)
	}
	if err = tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("closing %s: %w: %w", name, domain.ErrOutputFailed, err)
	}

	path = filepath.Join(dir, name)
	if err = os.Rename(tmpName, path); err != nil {
		return "", 0, fmt.Errorf("renaming %s: %w: %w", name, domain.ErrOutputFailed, err)
	}
	return path, cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
