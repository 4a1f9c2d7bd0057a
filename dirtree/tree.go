// Package dirtree prints an indented tree of a directory subtree.
package dirtree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Branch glyphs: tee for all but the last file in a listing, corner for the last.
const (
	teeGlyph    = "├───"
	cornerGlyph = "└───"
)

const timeLayout = "2006-01-02 15:04:05"

// Options customizes the rendered tree.
type Options struct {
	// ExcludeDirs are directory names skipped entirely, matched by exact
	// normalized name.
	ExcludeDirs []string
	// FileFilter is an optional glob applied to file names only.
	FileFilter string
	// MaxDepth limits descent; directories deeper than this are skipped.
	// Negative means unlimited. Depth is the count of path separators
	// between the root and the current directory.
	MaxDepth int
	// IncludeSizes annotates each file with its byte length.
	IncludeSizes bool
	// IncludeTimes annotates each file with its last-modified timestamp.
	IncludeTimes bool
	// SortByTime orders files by modification time ascending instead of
	// lexicographically.
	SortByTime bool
}

// Render writes the directory tree rooted at startPath. The root name is
// printed alone on the first line; directories are indented 4 spaces per
// depth level and suffixed with a slash; files sit one level deeper.
func Render(w io.Writer, startPath string, opts Options) error {
	startPath = filepath.Clean(startPath)
	info, err := os.Stat(startPath)
	if err != nil {
		return fmt.Errorf("%s does not exist", startPath)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", startPath)
	}

	excluded := make(map[string]bool, len(opts.ExcludeDirs))
	for _, dir := range opts.ExcludeDirs {
		excluded[filepath.Clean(dir)] = true
	}

	fmt.Fprintln(w, filepath.Base(startPath))
	return renderDir(w, startPath, 0, opts, excluded)
}

func renderDir(w io.Writer, dir string, level int, opts Options, excluded map[string]bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// A directory deleted or made unreadable mid-walk is skipped,
		// not fatal.
		return nil
	}

	var subdirs []string
	var files []os.DirEntry
	for _, entry := range entries {
		if entry.IsDir() {
			if !excluded[entry.Name()] {
				subdirs = append(subdirs, entry.Name())
			}
			continue
		}
		if opts.FileFilter != "" {
			if ok, _ := filepath.Match(opts.FileFilter, entry.Name()); !ok {
				continue
			}
		}
		files = append(files, entry)
	}

	if level > 0 {
		fmt.Fprintf(w, "%s%s%s/\n", indent(level-1), teeGlyph, filepath.Base(dir))
	}

	sortFiles(files, opts.SortByTime)

	for i, file := range files {
		glyph := teeGlyph
		if i == len(files)-1 {
			glyph = cornerGlyph
		}
		fmt.Fprintf(w, "%s%s%s%s\n", indent(level), glyph, file.Name(), fileDetails(file, opts))
	}

	for _, name := range subdirs {
		if opts.MaxDepth >= 0 && level+1 > opts.MaxDepth {
			continue
		}
		if err := renderDir(w, filepath.Join(dir, name), level+1, opts, excluded); err != nil {
			return err
		}
	}
	return nil
}

// sortFiles orders a listing alphabetically, or by ascending modification
// time when requested. Entries whose stat fails keep a zero time and sort first.
func sortFiles(files []os.DirEntry, byTime bool) {
	if !byTime {
		sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })
		return
	}
	modTime := func(e os.DirEntry) time.Time {
		info, err := e.Info()
		if err != nil {
			return time.Time{}
		}
		return info.ModTime()
	}
	sort.SliceStable(files, func(i, j int) bool { return modTime(files[i]).Before(modTime(files[j])) })
}

// fileDetails builds the optional size/time annotation for one file. A file
// deleted between listing and stat is rendered without annotations.
func fileDetails(file os.DirEntry, opts Options) string {
	if !opts.IncludeSizes && !opts.IncludeTimes {
		return ""
	}
	info, err := file.Info()
	if err != nil {
		return ""
	}

	var details []string
	if opts.IncludeSizes {
		details = append(details, fmt.Sprintf("%d bytes", info.Size()))
	}
	if opts.IncludeTimes {
		details = append(details, "Modified: "+info.ModTime().Format(timeLayout))
	}
	return " " + strings.Join(details, " ")
}

func indent(level int) string {
	return strings.Repeat(" ", 4*level)
}
