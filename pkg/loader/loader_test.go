package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhad/askdocs/internal/types"
	"github.com/xhad/askdocs/pkg/loader"
)

func TestLoadTextFile(t *testing.T) {
	l := loader.NewWithConfig(loader.LoaderConfig{TempDir: t.TempDir()})

	uploads := []types.Upload{
		{Name: "notes.txt", Body: strings.NewReader("Plain text notes about the project.")},
	}

	docs, err := l.LoadFiles(context.Background(), uploads)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, "notes.txt", docs[0].Source)
	assert.Contains(t, docs[0].Content, "Plain text notes")
}

func TestUnsupportedExtensionRejectsBatch(t *testing.T) {
	tmpDir := t.TempDir()
	l := loader.NewWithConfig(loader.LoaderConfig{TempDir: tmpDir})

	uploads := []types.Upload{
		{Name: "notes.txt", Body: strings.NewReader("fine")},
		{Name: "payload.exe", Body: strings.NewReader("not fine")},
	}

	docs, err := l.LoadFiles(context.Background(), uploads)
	require.Error(t, err)
	assert.Nil(t, docs)

	var unsupported *loader.UnsupportedFileError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "payload.exe", unsupported.Name)

	// The batch was rejected before anything was spooled or parsed.
	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseFailureNamesFile(t *testing.T) {
	l := loader.NewWithConfig(loader.LoaderConfig{TempDir: t.TempDir()})

	uploads := []types.Upload{
		{Name: "broken.pdf", Body: strings.NewReader("this is not a pdf")},
	}

	_, err := l.LoadFiles(context.Background(), uploads)
	require.Error(t, err)

	var parseErr *loader.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "broken.pdf", parseErr.Name)
	assert.Contains(t, err.Error(), "broken.pdf")
}

func TestBatchDirCleanedUp(t *testing.T) {
	tmpDir := t.TempDir()
	l := loader.NewWithConfig(loader.LoaderConfig{TempDir: tmpDir})

	uploads := []types.Upload{
		{Name: "a.txt", Body: strings.NewReader("first file")},
		{Name: "b.txt", Body: strings.NewReader("second file")},
	}

	docs, err := l.LoadFiles(context.Background(), uploads)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	// Batch directories are removed on success as well as on failure.
	matches, err := filepath.Glob(filepath.Join(tmpDir, "batch-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMultipleDocumentsKeepOrder(t *testing.T) {
	l := loader.NewWithConfig(loader.LoaderConfig{TempDir: t.TempDir()})

	uploads := []types.Upload{
		{Name: "first.txt", Body: strings.NewReader("alpha")},
		{Name: "second.txt", Body: strings.NewReader("beta")},
	}

	docs, err := l.LoadFiles(context.Background(), uploads)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "first.txt", docs[0].Source)
	assert.Equal(t, "second.txt", docs[1].Source)
}
