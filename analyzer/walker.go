package analyzer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"pyscope/analyzer/models"
)

// Node kinds produced by tree-sitter-python that the walker dispatches on.
const (
	nodeModule    = "module"
	nodeClass     = "class_definition"
	nodeFunction  = "function_definition"
	nodeDecorated = "decorated_definition"
	nodeCall      = "call"
	nodeExprStmt  = "expression_statement"
	nodeString    = "string"
)

// entryPointName marks a top-level function as an entry point.
const entryPointName = "__main__"

// collect walks a parsed syntax tree and accumulates function and method
// reports. className carries the enclosing class context; it is empty at
// module level. Node kinds outside the dispatch set yield an empty report.
func collect(node *sitter.Node, source []byte, className string, classAttrs bool) *models.FileReport {
	report := models.NewFileReport()
	if node == nil {
		return report
	}

	switch node.Type() {
	case nodeModule:
		for i := 0; i < int(node.ChildCount()); i++ {
			report.Merge(collect(node.Child(i), source, "", classAttrs))
		}

	case nodeDecorated:
		// tree-sitter wraps decorated defs; unwrap to the inner definition.
		if def := node.ChildByFieldName("definition"); def != nil {
			report.Merge(collect(def, source, className, classAttrs))
		}

	case nodeClass:
		name := nodeText(node.ChildByFieldName("name"), source)
		body := node.ChildByFieldName("body")
		if body == nil {
			break
		}
		for i := 0; i < int(body.ChildCount()); i++ {
			report.Merge(collect(body.Child(i), source, name, classAttrs))
		}
		if classAttrs {
			report.AddClassAttrs(name, classAssignments(body, source))
		}

	case nodeFunction:
		report.Add(functionReport(node, source, className))
	}

	return report
}

// functionReport builds the report for a single function or method definition.
func functionReport(node *sitter.Node, source []byte, className string) *models.FunctionReport {
	name := nodeText(node.ChildByFieldName("name"), source)
	qualified := name
	if className != "" {
		qualified = className + "." + name
	}

	body := node.ChildByFieldName("body")

	return &models.FunctionReport{
		QualifiedName: qualified,
		Params:        parameters(node.ChildByFieldName("parameters"), source),
		Return:        nodeText(node.ChildByFieldName("return_type"), source),
		Docstring:     blockDocstring(body, source),
		Dependencies:  callTargets(body, source),
		EntryPoint:    className == "" && name == entryPointName,
	}
}

// parameters extracts the ordered parameter list with annotation source text.
// Splat parameters (*args, **kwargs) are not part of the report, matching the
// positional-argument scope of the reports this tool produces.
func parameters(params *sitter.Node, source []byte) []models.Param {
	if params == nil {
		return nil
	}

	var out []models.Param
	for i := 0; i < int(params.ChildCount()); i++ {
		child := params.Child(i)
		switch child.Type() {
		case "identifier":
			out = append(out, models.Param{Name: child.Content(source)})
		case "typed_parameter":
			// Typed splats (*args: int, **kwargs: str) land here too; their
			// first child is a splat pattern, not an identifier. Skip them.
			id := child.Child(0)
			if id == nil || id.Type() != "identifier" {
				continue
			}
			out = append(out, models.Param{
				Name:       id.Content(source),
				Annotation: nodeText(child.ChildByFieldName("type"), source),
			})
		case "default_parameter", "typed_default_parameter":
			out = append(out, models.Param{
				Name:       nodeText(child.ChildByFieldName("name"), source),
				Annotation: nodeText(child.ChildByFieldName("type"), source),
			})
		}
	}
	return out
}

// blockDocstring returns the docstring of a block: the first statement when it
// is a bare string literal, otherwise empty.
func blockDocstring(block *sitter.Node, source []byte) string {
	if block == nil || block.ChildCount() == 0 {
		return ""
	}
	first := block.Child(0)
	if first.Type() != nodeExprStmt || first.ChildCount() == 0 {
		return ""
	}
	str := first.Child(0)
	if str.Type() != nodeString {
		return ""
	}
	return stringContent(str, source)
}

// stringContent strips the quotes from a string node and trims surrounding
// whitespace, which covers both single- and triple-quoted literals.
func stringContent(node *sitter.Node, source []byte) string {
	raw := node.Content(source)
	return strings.TrimSpace(strings.Trim(raw, `"'`))
}

// callTargets walks a function body for call nodes and returns the called
// names in source order, deduplicated. The target is the called identifier,
// or the attribute name when the call goes through a member access.
func callTargets(body *sitter.Node, source []byte) []string {
	if body == nil {
		return nil
	}

	var targets []string
	seen := make(map[string]bool)

	stack := []*sitter.Node{body}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if node.Type() == nodeCall {
			if target := callTarget(node, source); target != "" && !seen[target] {
				seen[target] = true
				targets = append(targets, target)
			}
		}

		// Children pushed in reverse so calls surface in source order.
		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			if child := node.Child(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
	return targets
}

// callTarget resolves the dependency name of a single call node.
func callTarget(call *sitter.Node, source []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return fn.Content(source)
	case "attribute":
		return nodeText(fn.ChildByFieldName("attribute"), source)
	}
	return ""
}

// classAssignments returns the source text of top-level assignment statements
// in a class body.
func classAssignments(body *sitter.Node, source []byte) []string {
	var snippets []string
	for i := 0; i < int(body.ChildCount()); i++ {
		stmt := body.Child(i)
		if stmt.Type() != nodeExprStmt || stmt.ChildCount() == 0 {
			continue
		}
		if expr := stmt.Child(0); expr.Type() == "assignment" || expr.Type() == "augmented_assignment" {
			snippets = append(snippets, expr.Content(source))
		}
	}
	return snippets
}

// moduleDocstring returns the module-level docstring of a parsed file.
func moduleDocstring(root *sitter.Node, source []byte) string {
	return blockDocstring(root, source)
}

func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(source)
}
