// Package syntaxcheck parses a finished amalgamation with tree-sitter and
// reports the places the grammar could not make sense of.
package syntaxcheck

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Problem is one syntax error found in the checked source.
type Problem struct {
	// Line and Column are 1-based.
	Line    int
	Column  int
	Missing bool
	// Node is the type of the missing node, empty for parse errors.
	Node string
}

func (p Problem) String() string {
	if p.Missing {
		return fmt.Sprintf("%d:%d: missing %s", p.Line, p.Column, p.Node)
	}
	return fmt.Sprintf("%d:%d: syntax error", p.Line, p.Column)
}

// Check parses src as language and returns its syntax problems in source
// order. The check is best effort: the preprocessor is not run, so heavy
// macro use can produce false positives.
func Check(ctx context.Context, src []byte, language Language) ([]Problem, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(language.grammar())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s code: %w", language.Name, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}

	var problems []Problem
	var walk func(*sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.IsMissing() {
			problems = append(problems, problemAt(n, true))
			return
		}
		if n.IsError() {
			problems = append(problems, problemAt(n, false))
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	return problems, nil
}

func problemAt(n *sitter.Node, missing bool) Problem {
	p := Problem{
		Line:    int(n.StartPoint().Row) + 1,
		Column:  int(n.StartPoint().Column) + 1,
		Missing: missing,
	}
	if missing {
		p.Node = n.Type()
	}
	return p
}
