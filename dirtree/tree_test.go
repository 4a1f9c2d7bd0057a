package dirtree

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func render(t *testing.T, root string, opts Options) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, root, opts))
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestRender_AlphabeticalOrderAndGlyphs(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "b.txt"), "b")
	write(t, filepath.Join(root, "a.txt"), "a")

	lines := render(t, root, Options{MaxDepth: -1})

	require.Len(t, lines, 3)
	assert.Equal(t, filepath.Base(root), lines[0])
	assert.Equal(t, "├───a.txt", lines[1])
	assert.Equal(t, "└───b.txt", lines[2], "the last entry gets the corner glyph")
}

func TestRender_Subdirectories(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "top.txt"), "x")
	write(t, filepath.Join(root, "sub", "c.txt"), "c")
	write(t, filepath.Join(root, "sub", "nested", "d.txt"), "d")

	lines := render(t, root, Options{MaxDepth: -1})

	assert.Equal(t, []string{
		filepath.Base(root),
		"└───top.txt",
		"├───sub/",
		"    └───c.txt",
		"    ├───nested/",
		"        └───d.txt",
	}, lines)
}

func TestRender_SortByTime(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.txt"), "a")
	write(t, filepath.Join(root, "b.txt"), "b")

	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, "b.txt"), old, old))

	lines := render(t, root, Options{MaxDepth: -1, SortByTime: true})

	assert.Equal(t, "├───b.txt", lines[1], "ascending mtime puts the older file first")
	assert.Equal(t, "└───a.txt", lines[2])
}

func TestRender_FileFilter(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "notes.md"), "n")
	write(t, filepath.Join(root, "main.py"), "m")
	write(t, filepath.Join(root, "docs", "guide.md"), "g")

	lines := render(t, root, Options{MaxDepth: -1, FileFilter: "*.md"})

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "notes.md")
	assert.Contains(t, joined, "guide.md")
	assert.NotContains(t, joined, "main.py")
	assert.Contains(t, joined, "├───docs/", "directories are unaffected by the file filter")
}

func TestRender_MaxDepth(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "top.txt"), "x")
	write(t, filepath.Join(root, "sub", "deep", "d.txt"), "d")

	lines := render(t, root, Options{MaxDepth: 0})
	assert.Equal(t, []string{filepath.Base(root), "└───top.txt"}, lines)

	lines = render(t, root, Options{MaxDepth: 1})
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "├───sub/")
	assert.NotContains(t, joined, "deep/")
	assert.NotContains(t, joined, "d.txt")
}

func TestRender_ExcludeDirs(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "app.py"), "a")
	write(t, filepath.Join(root, "venv", "lib.py"), "l")

	lines := render(t, root, Options{MaxDepth: -1, ExcludeDirs: []string{"venv"}})

	joined := strings.Join(lines, "\n")
	assert.NotContains(t, joined, "venv")
	assert.NotContains(t, joined, "lib.py")
}

func TestRender_SizeAndTimeAnnotations(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "hello.txt"), "hello")

	lines := render(t, root, Options{MaxDepth: -1, IncludeSizes: true, IncludeTimes: true})

	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "└───hello.txt")
	assert.Contains(t, lines[1], "5 bytes")
	assert.Contains(t, lines[1], "Modified: ")
}

func TestRender_MissingRoot(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, filepath.Join(t.TempDir(), "missing"), Options{MaxDepth: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}
