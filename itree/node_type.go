package itree

import (
	"fmt"
	"strings"

	"github.com/kelly-lin/bevyml/layout"
)

type Kind int

const (
	Custom Kind = iota
	Html
	Head
	Body
	Title
	Meta
	Link
	Style
	Script
	Div
	Span
	P
	A
	Img
	Button
	Input
	Label
	Textarea
	Select
	Option
	Ul
	Ol
	Li
	Table
	Thead
	Tbody
	Tfoot
	Tr
	Th
	Td
	Header
	Footer
	Nav
	Main
	Section
	Article
	Aside
	Form
	Canvas
	Svg
	Br
	Hr
	H1
	H2
	H3
	H4
	H5
	H6
)

var kindNames = [...]string{
	Custom:   "Custom",
	Html:     "Html",
	Head:     "Head",
	Body:     "Body",
	Title:    "Title",
	Meta:     "Meta",
	Link:     "Link",
	Style:    "Style",
	Script:   "Script",
	Div:      "Div",
	Span:     "Span",
	P:        "P",
	A:        "A",
	Img:      "Img",
	Button:   "Button",
	Input:    "Input",
	Label:    "Label",
	Textarea: "Textarea",
	Select:   "Select",
	Option:   "Option",
	Ul:       "Ul",
	Ol:       "Ol",
	Li:       "Li",
	Table:    "Table",
	Thead:    "Thead",
	Tbody:    "Tbody",
	Tfoot:    "Tfoot",
	Tr:       "Tr",
	Th:       "Th",
	Td:       "Td",
	Header:   "Header",
	Footer:   "Footer",
	Nav:      "Nav",
	Main:     "Main",
	Section:  "Section",
	Article:  "Article",
	Aside:    "Aside",
	Form:     "Form",
	Canvas:   "Canvas",
	Svg:      "Svg",
	Br:       "Br",
	Hr:       "Hr",
	H1:       "H1",
	H2:       "H2",
	H3:       "H3",
	H4:       "H4",
	H5:       "H5",
	H6:       "H6",
}

// Keyed by lower case tag name.
var tagKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for kind, name := range kindNames {
		if Kind(kind) == Custom {
			continue
		}
		m[strings.ToLower(name)] = Kind(kind)
	}
	return m
}()

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// NodeType is the kind of an element. Tag is only set for Custom elements and
// holds the tag name as written.
type NodeType struct {
	Kind Kind
	Tag  string
}

// UnknownNodeType is used for elements without a tag name.
var UnknownNodeType = NodeType{Kind: Custom, Tag: "unknown"}

// FromTagName maps a tag name to its node type, ignoring case.
func FromTagName(tagName string) NodeType {
	if kind, ok := tagKinds[strings.ToLower(tagName)]; ok {
		return NodeType{Kind: kind}
	}
	return NodeType{Kind: Custom, Tag: tagName}
}

func (t NodeType) String() string {
	if t.Kind == Custom {
		return fmt.Sprintf("Custom(%q)", t.Tag)
	}
	return t.Kind.String()
}

const baseFontPx = 16

// DefaultLayout returns the layout an element of this type starts with before
// its inline style is applied. The values follow common user agent defaults.
func (t NodeType) DefaultLayout() layout.Node {
	n := layout.DefaultNode()
	switch t.Kind {
	case Head, Title, Meta, Link, Style, Script:
		n.Display = layout.DisplayNone
	case Body:
		n.Display = layout.DisplayBlock
		n.Margin = layout.RectAll(layout.PxVal(8))
		n.Width = layout.VwVal(100)
		n.Height = layout.VhVal(100)
	case Html, Div, Header, Footer, Nav, Main, Section, Article, Aside, Form,
		Li, Table, Thead, Tbody, Tfoot, Tr, Th, Td:
		n.Display = layout.DisplayBlock
	case P, H3:
		blockWithMargin(&n, baseFontPx)
	case Ul, Ol:
		blockWithMargin(&n, baseFontPx)
		n.Padding.Left = layout.PxVal(40)
	case Hr:
		blockWithMargin(&n, baseFontPx*0.5)
		n.Height = layout.PxVal(1)
		n.Width = layout.PercentVal(100)
	case H1:
		blockWithMargin(&n, baseFontPx*0.67)
	case H2:
		blockWithMargin(&n, baseFontPx*0.83)
	case H4:
		blockWithMargin(&n, baseFontPx*1.33)
	case H5:
		blockWithMargin(&n, baseFontPx*1.67)
	case H6:
		blockWithMargin(&n, baseFontPx*2.33)
	}
	return n
}

func blockWithMargin(n *layout.Node, px float32) {
	n.Display = layout.DisplayBlock
	n.Margin.Top = layout.PxVal(px)
	n.Margin.Bottom = layout.PxVal(px)
}
