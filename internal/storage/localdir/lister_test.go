package localdir

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "invoice_A.pdf")
	newer := filepath.Join(dir, "quotation_B.pdf")
	require.NoError(t, os.WriteFile(older, []byte("12345"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("123"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".invoice_C.pdf.tmp"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	files, err := NewLister().List(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "quotation_B.pdf", files[0].Name)
	assert.Equal(t, int64(3), files[0].Size)
	assert.Equal(t, "invoice_A.pdf", files[1].Name)
	assert.Equal(t, int64(5), files[1].Size)
	assert.WithinDuration(t, past, files[1].CreatedAt, time.Second)
}

func TestList_MissingDirectory(t *testing.T) {
	files, err := NewLister().List(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, files)
}
