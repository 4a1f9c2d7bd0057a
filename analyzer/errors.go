package analyzer

import "fmt"

// NotFoundError reports a path that does not reference an existing file or directory.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s does not exist", e.Path)
}

// WrongKindError reports a path that exists but is not a Python source file.
type WrongKindError struct {
	Path string
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("%s is not a Python file", e.Path)
}

// ParseError reports syntactically invalid source, carrying the position of the
// first syntax error found by the parser.
type ParseError struct {
	Path   string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s contains syntax errors: invalid syntax at line %d, column %d", e.Path, e.Line, e.Column)
}

// ConflictingOptionsError reports two mutually exclusive CLI options supplied together.
type ConflictingOptionsError struct {
	First  string
	Second string
}

func (e *ConflictingOptionsError) Error() string {
	return fmt.Sprintf("options %s and %s are mutually exclusive", e.First, e.Second)
}
