package analyzer

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyscope/analyzer/models"
)

func parsePython(t *testing.T, source string) (*sitter.Node, []byte) {
	t.Helper()

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree := parser.Parse(nil, []byte(source))
	require.False(t, tree.RootNode().HasError(), "test source must be valid Python")

	return tree.RootNode(), []byte(source)
}

func TestCollect_FunctionDetails(t *testing.T) {
	root, source := parsePython(t, `
def tally(items: list[str], start: int = 0, verbose=False) -> int:
    """Count the items."""
    total = compute(items, start)
    logger.info(total)
    return total
`)

	report := collect(root, source, "", false)
	require.Equal(t, 1, report.Len())

	fn := report.Functions["tally"]
	require.NotNil(t, fn)
	assert.Equal(t, "tally", fn.QualifiedName)
	assert.Equal(t, []models.Param{
		{Name: "items", Annotation: "list[str]"},
		{Name: "start", Annotation: "int"},
		{Name: "verbose"},
	}, fn.Params)
	assert.Equal(t, "int", fn.Return)
	assert.Equal(t, "Count the items.", fn.Docstring)
	assert.Equal(t, []string{"compute", "info"}, fn.Dependencies)
	assert.False(t, fn.EntryPoint)
}

func TestCollect_MethodQualifiedNames(t *testing.T) {
	root, source := parsePython(t, `
class Greeter:
    """A greeter."""

    default_name = "world"

    def __init__(self, name):
        self.name = name

    def greet(self) -> None:
        print(self.name)
`)

	report := collect(root, source, "", true)
	assert.Equal(t, []string{"Greeter.__init__", "Greeter.greet"}, report.Order)

	greet := report.Functions["Greeter.greet"]
	require.NotNil(t, greet)
	assert.Equal(t, "None", greet.Return)
	assert.Equal(t, []string{"print"}, greet.Dependencies)
	assert.False(t, greet.EntryPoint, "methods are never entry points")

	assert.Equal(t, []string{`default_name = "world"`}, report.ClassAttrs["Greeter"])
}

func TestCollect_ClassAttrsDisabled(t *testing.T) {
	root, source := parsePython(t, `
class Config:
    retries = 3
`)

	report := collect(root, source, "", false)
	assert.Empty(t, report.ClassAttrs)
}

func TestCollect_EntryPoint(t *testing.T) {
	root, source := parsePython(t, `
def __main__():
    run()

def helper():
    pass

class App:
    def __main__(self):
        pass
`)

	report := collect(root, source, "", false)

	require.NotNil(t, report.Functions["__main__"])
	assert.True(t, report.Functions["__main__"].EntryPoint)
	assert.False(t, report.Functions["helper"].EntryPoint)
	assert.False(t, report.Functions["App.__main__"].EntryPoint)
}

func TestCollect_DuplicateNameLastWins(t *testing.T) {
	root, source := parsePython(t, `
def task():
    """first"""

def helper():
    pass

def task():
    """second"""
`)

	report := collect(root, source, "", false)

	// Later duplicates overwrite the value but keep the original position.
	assert.Equal(t, []string{"task", "helper"}, report.Order)
	assert.Equal(t, "second", report.Functions["task"].Docstring)
}

func TestCollect_NestedCallDependencies(t *testing.T) {
	root, source := parsePython(t, `
def chain():
    outer(inner(x))
    outer(y)
    cursor.execute(query)
`)

	report := collect(root, source, "", false)

	fn := report.Functions["chain"]
	require.NotNil(t, fn)
	// Source order, deduplicated; attribute calls report the member name.
	assert.Equal(t, []string{"outer", "inner", "execute"}, fn.Dependencies)
}

func TestCollect_DecoratedDefinitions(t *testing.T) {
	root, source := parsePython(t, `
@lru_cache
def cached(n):
    return n

class Service:
    @staticmethod
    def ping():
        pass
`)

	report := collect(root, source, "", false)
	assert.Equal(t, []string{"cached", "Service.ping"}, report.Order)
}

func TestCollect_IgnoresNonDefinitionNodes(t *testing.T) {
	root, source := parsePython(t, `
import os

x = 1

print(x)
`)

	report := collect(root, source, "", false)
	assert.Equal(t, 0, report.Len())
}

func TestCollect_SplatParametersSkipped(t *testing.T) {
	root, source := parsePython(t, `
def mixed(a, *args, **kwargs):
    pass

def typed(b: int, *args: int, **kwargs: str) -> None:
    pass
`)

	report := collect(root, source, "", false)

	assert.Equal(t, []models.Param{{Name: "a"}}, report.Functions["mixed"].Params)
	assert.Equal(t, []models.Param{{Name: "b", Annotation: "int"}}, report.Functions["typed"].Params)
}

func TestCollect_MissingAnnotationsAndDocstring(t *testing.T) {
	root, source := parsePython(t, `
def bare(a, b):
    return a + b
`)

	report := collect(root, source, "", false)

	fn := report.Functions["bare"]
	require.NotNil(t, fn)
	assert.Equal(t, []models.Param{{Name: "a"}, {Name: "b"}}, fn.Params)
	assert.Empty(t, fn.Return)
	assert.Empty(t, fn.Docstring)
	assert.Empty(t, fn.Dependencies)
}

func TestModuleDocstring(t *testing.T) {
	root, source := parsePython(t, `
"""Top level docs."""

def f():
    pass
`)

	assert.Equal(t, "Top level docs.", moduleDocstring(root, source))
}
