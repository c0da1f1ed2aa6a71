// Package format renders syntax and element trees as indented text for the
// CLI and debug logs.
package format

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kelly-lin/bevyml/itree"
	"github.com/kelly-lin/bevyml/log"
	"github.com/kelly-lin/bevyml/parser"
)

const indentUnit = "  "

type stackItem[T any] struct {
	node  T
	depth int
}

// SyntaxTree writes every node under node, one per line, as
// "kind [start..end]: text" indented by depth.
func SyntaxTree(w io.Writer, node *sitter.Node, source []byte) error {
	if node == nil {
		return nil
	}
	stack := parser.NewStack[stackItem[*sitter.Node]]()
	stack.Push(stackItem[*sitter.Node]{node: node})
	for stack.HasItems() {
		current, _ := stack.Pop()
		text := current.node.Content(source)
		if !utf8.ValidString(text) {
			text = "<invalid utf8>"
		}
		if _, err := fmt.Fprintf(
			w,
			"%s%s [%d..%d]: %s\n",
			strings.Repeat(indentUnit, current.depth),
			current.node.Type(),
			current.node.StartByte(),
			current.node.EndByte(),
			text,
		); err != nil {
			return err
		}
		// Reverse order so the first child is popped first.
		for i := int(current.node.ChildCount()) - 1; i >= 0; i-- {
			child := current.node.Child(i)
			if child == nil {
				continue
			}
			stack.Push(stackItem[*sitter.Node]{node: child, depth: current.depth + 1})
		}
	}
	return nil
}

// Tree writes the element tree, one element per line.
func Tree(w io.Writer, tree *itree.Tree) error {
	var err error
	walkLines(tree, func(line string) bool {
		_, err = fmt.Fprintln(w, line)
		return err == nil
	})
	return err
}

// LogTree writes the element tree to logger at debug level.
func LogTree(logger *log.Logger, tree *itree.Tree) {
	if !logger.DebugEnabled() {
		return
	}
	walkLines(tree, func(line string) bool {
		logger.Debugf("%s", line)
		return true
	})
}

func walkLines(tree *itree.Tree, emit func(line string) bool) {
	if tree == nil {
		return
	}
	stack := parser.NewStack[stackItem[*itree.Node]]()
	for i := len(tree.Roots) - 1; i >= 0; i-- {
		stack.Push(stackItem[*itree.Node]{node: tree.Roots[i]})
	}
	for stack.HasItems() {
		current, _ := stack.Pop()
		if !emit(elementLine(current.node, current.depth)) {
			return
		}
		for i := len(current.node.Children) - 1; i >= 0; i-- {
			stack.Push(stackItem[*itree.Node]{node: current.node.Children[i], depth: current.depth + 1})
		}
	}
}

func elementLine(node *itree.Node, depth int) string {
	elementName := node.ElementName
	if elementName == "" {
		elementName = "<unknown>"
	}
	return fmt.Sprintf(
		"%s- node_type=%s element=%s simplified_content=%q",
		strings.Repeat(indentUnit, depth),
		node.Type,
		elementName,
		node.SimplifiedContent,
	)
}
