package analyzer

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"pyscope/analyzer/models"
)

// DocstringMode controls how docstrings appear in rendered reports.
type DocstringMode int

const (
	// DocstringInclude renders the full report, docstrings included.
	DocstringInclude DocstringMode = iota
	// DocstringExclude trims docstrings from every entry.
	DocstringExclude
	// DocstringFocus isolates the docstring field: names and docstrings only.
	DocstringFocus
)

// Renderer writes a human-readable rendering of a file report. With Highlight
// set, Python source snippets are colorized with chroma using Theme.
type Renderer struct {
	Mode      DocstringMode
	Theme     string
	Highlight bool
}

// Render writes one block per function in insertion order, followed by class
// attribute listings when present.
func (r *Renderer) Render(w io.Writer, report *models.FileReport) error {
	for _, name := range report.Order {
		fn := report.Functions[name]

		if r.Mode == DocstringFocus {
			fmt.Fprintln(w, fn.QualifiedName)
			writeIndented(w, "docstring: ", fn.Docstring)
			continue
		}

		fmt.Fprintln(w, signature(fn))
		if r.Mode != DocstringExclude && fn.Docstring != "" {
			writeIndented(w, "docstring: ", fn.Docstring)
		}
		if len(fn.Dependencies) > 0 {
			fmt.Fprintf(w, "    calls: %s\n", strings.Join(fn.Dependencies, ", "))
		}
	}

	for _, class := range report.ClassOrder {
		fmt.Fprintf(w, "%s class attributes:\n", class)
		for _, snippet := range report.ClassAttrs[class] {
			if err := r.writeSnippet(w, snippet); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeSnippet prints one source snippet, highlighted when enabled.
func (r *Renderer) writeSnippet(w io.Writer, snippet string) error {
	fmt.Fprint(w, "    ")
	if r.Highlight {
		return quick.Highlight(w, snippet+"\n", "python", "terminal256", r.Theme)
	}
	fmt.Fprintln(w, snippet)
	return nil
}

// signature formats a function line: name(params) -> return  [entry point].
func signature(fn *models.FunctionReport) string {
	var b strings.Builder
	b.WriteString(fn.QualifiedName)
	b.WriteByte('(')
	for i, p := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Annotation != "" {
			b.WriteString(": ")
			b.WriteString(p.Annotation)
		}
	}
	b.WriteByte(')')
	if fn.Return != "" {
		b.WriteString(" -> ")
		b.WriteString(fn.Return)
	}
	if fn.EntryPoint {
		b.WriteString("  [entry point]")
	}
	return b.String()
}

// writeIndented prints a possibly multi-line value under a 4-space label line,
// with continuation lines indented to the label width. Empty values print the
// bare label so focused output still shows which entries lack a docstring.
func writeIndented(w io.Writer, label, value string) {
	lines := strings.Split(value, "\n")
	fmt.Fprintf(w, "    %s%s\n", label, strings.TrimSpace(lines[0]))
	pad := strings.Repeat(" ", 4+len(label))
	for _, line := range lines[1:] {
		fmt.Fprintf(w, "%s%s\n", pad, strings.TrimSpace(line))
	}
}
