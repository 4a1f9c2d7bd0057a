// Package analyzer statically inspects Python source files with tree-sitter
// and reports function signatures, docstrings, call dependencies, and class
// attributes.
package analyzer

import (
	"io/fs"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"pyscope/analyzer/models"
)

const pythonExt = ".py"

// Options configures analysis. It replaces the reference tool's habit of
// reading global flag state from inside the walker.
type Options struct {
	// IncludeVenv keeps the conventional virtual-environment directory in
	// directory-mode walks instead of skipping it.
	IncludeVenv bool
	// ClassAttrs records the source text of class-level assignments.
	ClassAttrs bool
	// FileFilter is an optional glob applied to file names in directory mode.
	FileFilter string
	// ExcludeDirs are directory names pruned wholesale during directory walks.
	ExcludeDirs []string
}

// Analyzer drives parsing and walking of Python files.
type Analyzer struct {
	opts  Options
	cache *CacheManager
}

// NewAnalyzer initializes an Analyzer. A nil cache disables report caching.
func NewAnalyzer(opts Options, cache *CacheManager) *Analyzer {
	return &Analyzer{opts: opts, cache: cache}
}

// AnalyzeFile parses a single Python file and walks its syntax tree.
// It fails with NotFoundError when the path does not reference an existing
// file, WrongKindError when the extension is not .py, and ParseError when the
// content is not syntactically valid Python.
func (a *Analyzer) AnalyzeFile(path string) (*models.FileReport, error) {
	if err := a.checkSourcePath(path); err != nil {
		return nil, err
	}

	variant := "plain"
	if a.opts.ClassAttrs {
		variant = "classattrs"
	}
	if a.cache != nil {
		if report, found := a.cache.GetReportCache(path, variant); found {
			return report, nil
		}
	}

	root, content, err := a.parseFile(path)
	if err != nil {
		return nil, err
	}

	report := collect(root, content, "", a.opts.ClassAttrs)

	if a.cache != nil {
		// A failed cache write never fails the analysis.
		_ = a.cache.SetReportCache(path, variant, report)
	}
	return report, nil
}

// ModuleDocstring returns only the module-level docstring of a file, without
// running the full analysis. Path and parse failures match AnalyzeFile.
func (a *Analyzer) ModuleDocstring(path string) (string, error) {
	if err := a.checkSourcePath(path); err != nil {
		return "", err
	}
	root, content, err := a.parseFile(path)
	if err != nil {
		return "", err
	}
	return moduleDocstring(root, content), nil
}

// VisitFunc receives the outcome of one file during a directory walk. Exactly
// one of report and err is set.
type VisitFunc func(path string, report *models.FileReport, err error)

// AnalyzeDirectory analyzes every matching Python file under root. Per-file
// failures are handed to visit and never abort the remaining walk; the only
// returned error is NotFoundError for a missing root.
func (a *Analyzer) AnalyzeDirectory(root string, visit VisitFunc) error {
	return a.walkPythonFiles(root, func(path string) {
		report, err := a.AnalyzeFile(path)
		visit(path, report, err)
	})
}

// ModuleDocstrings walks root like AnalyzeDirectory but extracts only each
// file's module-level docstring.
func (a *Analyzer) ModuleDocstrings(root string, visit func(path, docstring string, err error)) error {
	return a.walkPythonFiles(root, func(path string) {
		docstring, err := a.ModuleDocstring(path)
		visit(path, docstring, err)
	})
}

// walkPythonFiles enumerates .py files under root, pruning excluded
// directories and applying the configured file glob.
func (a *Analyzer) walkPythonFiles(root string, handle func(path string)) error {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return &NotFoundError{Path: root}
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries do not abort the batch.
			return nil
		}
		if d.IsDir() {
			if path != root && a.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != pythonExt {
			return nil
		}
		if a.opts.FileFilter != "" {
			if ok, _ := filepath.Match(a.opts.FileFilter, d.Name()); !ok {
				return nil
			}
		}
		handle(path)
		return nil
	})
}

// skipDir decides whether a directory is pruned from the walk. The venv
// directory is governed by IncludeVenv regardless of the exclude list.
func (a *Analyzer) skipDir(name string) bool {
	if name == "venv" {
		return !a.opts.IncludeVenv
	}
	for _, dir := range a.opts.ExcludeDirs {
		if name == filepath.Clean(dir) {
			return true
		}
	}
	return false
}

// checkSourcePath validates existence and extension before any parsing.
func (a *Analyzer) checkSourcePath(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return &NotFoundError{Path: path}
	}
	if filepath.Ext(path) != pythonExt {
		return &WrongKindError{Path: path}
	}
	return nil
}

// parseFile reads and parses one file, returning the tree root and content.
// The file is fully read and closed before parsing begins.
func (a *Analyzer) parseFile(path string) (*sitter.Node, []byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &NotFoundError{Path: path}
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree := parser.Parse(nil, content)

	root := tree.RootNode()
	if root.HasError() {
		line, column := firstErrorPosition(root)
		return nil, nil, &ParseError{Path: path, Line: line, Column: column}
	}
	return root, content, nil
}

// firstErrorPosition locates the first error or missing node in a tree that
// is known to contain one, returning a 1-indexed line and column.
func firstErrorPosition(node *sitter.Node) (int, int) {
	if node.Type() == "ERROR" || node.IsMissing() {
		return int(node.StartPoint().Row) + 1, int(node.StartPoint().Column) + 1
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsMissing() {
			return firstErrorPosition(child)
		}
	}
	return int(node.StartPoint().Row) + 1, int(node.StartPoint().Column) + 1
}
