package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644))
}

func TestNewFolder_RejectsMissingOrNonDirectory(t *testing.T) {
	_, err := NewFolder(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	writeFile(t, dir, "file.txt", "contents")
	_, err = NewFolder(filepath.Join(dir, "file.txt"))
	assert.Error(t, err)
}

func TestFolder_LoadsMatchingFilesInStableOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "beta.txt", "Beta contents.")
	writeFile(t, dir, "alpha.md", "Alpha contents.")
	writeFile(t, dir, "ignored.bin", "binary")

	folder, err := NewFolder(dir)
	require.NoError(t, err)

	docs, err := folder.Documents(context.Background())
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "alpha", docs[0].Title)
	assert.Equal(t, "Alpha contents.", docs[0].Contents)
	assert.Equal(t, "beta", docs[1].Title)
	assert.Equal(t, "Beta contents.", docs[1].Contents)

	again, err := folder.Documents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, docs, again, "unchanged folder yields identical documents")
}

func TestFolder_WalksSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writeFile(t, dir, "top.txt", "Top.")
	writeFile(t, sub, "deep.txt", "Deep.")

	folder, err := NewFolder(dir)
	require.NoError(t, err)

	docs, err := folder.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
}

func TestFolder_ExtraExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.rst", "Rst contents.")

	folder, err := NewFolder(dir, ".rst")
	require.NoError(t, err)

	docs, err := folder.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "notes", docs[0].Title)
}

func TestFolder_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.txt", "Contents.")

	folder, err := NewFolder(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = folder.Documents(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSlice(t *testing.T) {
	docs, err := Slice(nil).Documents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}
