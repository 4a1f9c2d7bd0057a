package models

// Param is a single function parameter with its optional annotation source text.
type Param struct {
	Name       string
	Annotation string
}

// FunctionReport holds the extracted details of one function or method.
type FunctionReport struct {
	QualifiedName string
	Params        []Param
	Return        string
	Docstring     string
	Dependencies  []string
	EntryPoint    bool
}

// FileReport maps qualified function/method names to their reports, keeping the
// source insertion order. Class attribute snippets are recorded per class name.
// Order fields are exported so cached reports survive a gob round trip.
type FileReport struct {
	Functions  map[string]*FunctionReport
	ClassAttrs map[string][]string
	Order      []string
	ClassOrder []string
}

func NewFileReport() *FileReport {
	return &FileReport{
		Functions:  make(map[string]*FunctionReport),
		ClassAttrs: make(map[string][]string),
	}
}

// Add inserts a function report. A duplicate qualified name overwrites the
// earlier value but keeps its original position, matching dict semantics.
func (r *FileReport) Add(fn *FunctionReport) {
	if _, exists := r.Functions[fn.QualifiedName]; !exists {
		r.Order = append(r.Order, fn.QualifiedName)
	}
	r.Functions[fn.QualifiedName] = fn
}

// AddClassAttrs records the raw source text of a class's top-level assignments.
func (r *FileReport) AddClassAttrs(className string, snippets []string) {
	if len(snippets) == 0 {
		return
	}
	if _, exists := r.ClassAttrs[className]; !exists {
		r.ClassOrder = append(r.ClassOrder, className)
	}
	r.ClassAttrs[className] = snippets
}

// Merge appends another report's entries, preserving insertion order.
func (r *FileReport) Merge(other *FileReport) {
	if other == nil {
		return
	}
	for _, name := range other.Order {
		r.Add(other.Functions[name])
	}
	for _, class := range other.ClassOrder {
		r.AddClassAttrs(class, other.ClassAttrs[class])
	}
}

// Len reports the number of functions in the report.
func (r *FileReport) Len() int {
	return len(r.Order)
}
