// Package itree builds the intermediate element tree from a BevyML syntax
// tree. Only elements are kept; text, comments and doctypes are dropped.
package itree

import (
	"errors"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kelly-lin/bevyml/attributes"
	"github.com/kelly-lin/bevyml/layout"
	"github.com/kelly-lin/bevyml/log"
)

var (
	ErrMissingParseTree   = errors.New("parser produced no tree")
	ErrMissingRootElement = errors.New("parsed tree contains no element nodes")
)

// 0 indexed row and column of a position in a document. Columns are byte
// offsets within the row.
type Point struct {
	Row    uint32
	Column uint32
}

// Range has a 0 indexed start and end point. The end point is exclusive.
type Range struct {
	Start Point
	End   Point
}

type Tree struct {
	Roots []*Node
}

// Node is a single element.
type Node struct {
	Type NodeType
	// ElementName is the tag name as written, empty when the element has none.
	ElementName   string
	Attributes    attributes.Attributes
	StartByte     uint32
	EndByte       uint32
	StartPosition Point
	EndPosition   Point
	// SimplifiedContent is a short preview of the element's source, with the
	// inner content collapsed to "...".
	SimplifiedContent string
	OriginalText      string
	IsSelfClosing     bool
	// Layout is the element's default layout with its inline style applied.
	Layout   layout.Node
	Children []*Node
}

// Range returns the source range covered by the element.
func (n *Node) Range() Range {
	return Range{Start: n.StartPosition, End: n.EndPosition}
}

// Build converts the syntax tree of source into an element tree. Unsupported
// inline styles are reported to logger as warnings.
func Build(tree *sitter.Tree, source []byte, logger *log.Logger) (*Tree, error) {
	if tree == nil {
		return nil, ErrMissingParseTree
	}
	root := tree.RootNode()
	if root == nil {
		return nil, ErrMissingParseTree
	}
	b := builder{source: source, logger: logger}
	var roots []*Node
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if isElement(child) {
			roots = append(roots, b.build(child))
		}
	}
	if len(roots) == 0 {
		return nil, ErrMissingRootElement
	}
	return &Tree{Roots: roots}, nil
}

// Walk calls fn for every node in depth first order, parents before children.
// Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			if fn(n, depth) {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(t.Roots, 0)
}

type builder struct {
	source []byte
	logger *log.Logger
}

func (b *builder) build(node *sitter.Node) *Node {
	info, selfClosing := resolveElement(node)
	elementName := tagName(info, b.source)
	nodeType := UnknownNodeType
	if elementName != "" {
		nodeType = FromTagName(elementName)
	}

	result := &Node{
		Type:          nodeType,
		ElementName:   elementName,
		StartByte:     info.StartByte(),
		EndByte:       info.EndByte(),
		StartPosition: Point{Row: info.StartPoint().Row, Column: info.StartPoint().Column},
		EndPosition:   Point{Row: info.EndPoint().Row, Column: info.EndPoint().Column},
		OriginalText:  info.Content(b.source),
		IsSelfClosing: selfClosing,
		Layout:        nodeType.DefaultLayout(),
	}
	if selfClosing {
		result.SimplifiedContent = result.OriginalText
	} else {
		result.SimplifiedContent = previewElementText(info, b.source)
	}

	b.extractAttributes(info, &result.Attributes)
	if style := result.Attributes.Style(); style != nil {
		for _, unsupported := range style.Unsupported {
			b.logger.Warnf("<%s> at %d:%d: %s", elementName, result.StartPosition.Row+1, result.StartPosition.Column+1, unsupported.Reason)
		}
		style.Apply(&result.Layout)
	}

	if !selfClosing {
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if isElement(child) {
				result.Children = append(result.Children, b.build(child))
			}
		}
	}
	return result
}

func (b *builder) extractAttributes(node *sitter.Node, attrs *attributes.Attributes) {
	var parent *sitter.Node
	switch node.Type() {
	case "self_closing_tag":
		parent = node
	case "element", "script_element", "style_element":
		parent = findChild(node, "start_tag")
	}
	if parent == nil {
		return
	}
	for i := 0; i < int(parent.ChildCount()); i++ {
		child := parent.Child(i)
		if child.Type() != "attribute" {
			continue
		}
		nameNode := findChild(child, "attribute_name")
		if nameNode == nil {
			continue
		}
		attrs.Add(nameNode.Content(b.source), attributeValue(child, b.source))
	}
}

func attributeValue(attribute *sitter.Node, source []byte) *string {
	valueNode := findChild(attribute, "attribute_value")
	if valueNode == nil {
		valueNode = findChild(attribute, "quoted_attribute_value")
	}
	if valueNode == nil {
		return nil
	}
	value := unquote(valueNode.Content(source))
	return &value
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

func isElement(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	switch node.Type() {
	case "element", "script_element", "style_element":
		return true
	}
	return false
}

// resolveElement returns the node carrying the element's tag and whether the
// element is self-closing. A self-closing element is an element wrapping a
// lone self_closing_tag.
func resolveElement(node *sitter.Node) (*sitter.Node, bool) {
	if node.Type() == "self_closing_tag" {
		return node, true
	}
	if node.Type() == "element" && findChild(node, "start_tag") == nil && findChild(node, "end_tag") == nil {
		if selfClosing := findChild(node, "self_closing_tag"); selfClosing != nil {
			return selfClosing, true
		}
	}
	return node, false
}

func tagName(node *sitter.Node, source []byte) string {
	tag := node
	if node.Type() != "self_closing_tag" {
		tag = findChild(node, "start_tag")
		if tag == nil {
			return ""
		}
	}
	name := findChild(tag, "tag_name")
	if name == nil {
		return ""
	}
	return name.Content(source)
}

func previewElementText(node *sitter.Node, source []byte) string {
	startTag := findChild(node, "start_tag")
	endTag := findChild(node, "end_tag")
	if startTag == nil || endTag == nil {
		return node.Content(source)
	}
	start := startTag.Content(source)
	end := endTag.Content(source)
	if start == "" || end == "" {
		return node.Content(source)
	}
	// Anything besides the two tags counts as content.
	if node.NamedChildCount() > 2 {
		return start + "..." + end
	}
	return start + end
}

func findChild(node *sitter.Node, kind string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() == kind {
			return child
		}
	}
	return nil
}
