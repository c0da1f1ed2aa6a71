package itree_test

import (
	"bytes"
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kelly-lin/bevyml/attributes"
	"github.com/kelly-lin/bevyml/itree"
	"github.com/kelly-lin/bevyml/layout"
	"github.com/kelly-lin/bevyml/log"
)

func parse(t *testing.T, source []byte) *sitter.Tree {
	t.Helper()
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(html.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func TestBuild(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("nested elements", func(t *testing.T) {
		assert := assert.New(t)
		source := []byte("<div id=\"root\" class=\"a b\">\n  <p>hello</p>\n  <br/>\n  <span></span>\n</div>")
		tree, err := itree.Build(parse(t, source), source, nil)
		require.NoError(t, err)
		require.Len(t, tree.Roots, 1)

		div := tree.Roots[0]
		assert.Equal(itree.NodeType{Kind: itree.Div}, div.Type)
		assert.Equal("div", div.ElementName)
		assert.Equal("root", div.Attributes.ID())
		assert.Equal([]string{"a", "b"}, div.Attributes.Classes())
		assert.Equal(`<div id="root" class="a b">...</div>`, div.SimplifiedContent)
		assert.Equal(string(source), div.OriginalText)
		assert.Equal(uint32(0), div.StartByte)
		assert.Equal(uint32(len(source)), div.EndByte)
		assert.Equal(itree.Range{Start: itree.Point{Row: 0, Column: 0}, End: itree.Point{Row: 4, Column: 6}}, div.Range())
		assert.False(div.IsSelfClosing)
		assert.Equal(layout.DisplayBlock, div.Layout.Display)
		require.Len(t, div.Children, 3)

		p := div.Children[0]
		assert.Equal(itree.NodeType{Kind: itree.P}, p.Type)
		assert.Equal("<p>...</p>", p.SimplifiedContent)
		assert.Equal("<p>hello</p>", p.OriginalText)
		assert.Equal(itree.Point{Row: 1, Column: 2}, p.StartPosition)
		assert.Empty(p.Children)

		br := div.Children[1]
		assert.Equal(itree.NodeType{Kind: itree.Br}, br.Type)
		assert.True(br.IsSelfClosing)
		assert.Equal("<br/>", br.SimplifiedContent)

		span := div.Children[2]
		assert.Equal("<span></span>", span.SimplifiedContent)
		assert.False(span.IsSelfClosing)
	})

	t.Run("multiple roots and custom tags", func(t *testing.T) {
		assert := assert.New(t)
		source := []byte("<!DOCTYPE html>\n<Panel data-x=1></Panel>\ntext\n<button disabled>ok</button>")
		tree, err := itree.Build(parse(t, source), source, nil)
		require.NoError(t, err)
		require.Len(t, tree.Roots, 2)

		panel := tree.Roots[0]
		assert.Equal(itree.NodeType{Kind: itree.Custom, Tag: "Panel"}, panel.Type)
		assert.Equal([]string{"1"}, panel.Attributes.Data("x"))

		button := tree.Roots[1]
		assert.Equal(itree.NodeType{Kind: itree.Button}, button.Type)
		disabled, ok := button.Attributes.Get(attributes.Disabled)
		assert.True(ok)
		assert.True(disabled.Bool)
	})

	t.Run("inline style is applied over the default layout", func(t *testing.T) {
		assert := assert.New(t)
		var buf bytes.Buffer
		source := []byte(`<body style="margin: 0; display: flex; float: left"></body>`)
		tree, err := itree.Build(parse(t, source), source, log.New(&buf, false))
		require.NoError(t, err)
		require.Len(t, tree.Roots, 1)

		body := tree.Roots[0]
		assert.Equal(layout.DisplayFlex, body.Layout.Display)
		assert.Equal(layout.RectAll(layout.PxVal(0)), body.Layout.Margin)
		assert.Equal(layout.VwVal(100), body.Layout.Width)
		assert.Contains(buf.String(), "float")
		assert.Contains(buf.String(), "<body> at 1:1")
	})

	t.Run("walk", func(t *testing.T) {
		assert := assert.New(t)
		source := []byte("<ul><li><a></a></li><li></li></ul>")
		tree, err := itree.Build(parse(t, source), source, nil)
		require.NoError(t, err)

		var names []string
		var depths []int
		tree.Walk(func(n *itree.Node, depth int) bool {
			names = append(names, n.ElementName)
			depths = append(depths, depth)
			return true
		})
		assert.Equal([]string{"ul", "li", "a", "li"}, names)
		assert.Equal([]int{0, 1, 2, 1}, depths)

		names = nil
		tree.Walk(func(n *itree.Node, depth int) bool {
			names = append(names, n.ElementName)
			return n.Type.Kind != itree.Li
		})
		assert.Equal([]string{"ul", "li", "li"}, names)
	})

	t.Run("errors", func(t *testing.T) {
		assert := assert.New(t)
		_, err := itree.Build(nil, nil, nil)
		assert.ErrorIs(err, itree.ErrMissingParseTree)

		for _, source := range []string{"", "just text", "<!-- comment -->"} {
			_, err = itree.Build(parse(t, []byte(source)), []byte(source), nil)
			assert.ErrorIs(err, itree.ErrMissingRootElement, source)
		}
	})
}

func TestNodeTrees(t *testing.T) {
	defer goleak.VerifyNone(t)
	assert := assert.New(t)

	source := []byte("<div><h1>title</h1><img/></div>")
	tree, err := itree.Build(parse(t, source), source, nil)
	require.NoError(t, err)

	got := tree.NodeTrees()
	require.Len(t, got, 1)
	assert.Equal("div", got[0].Bundle.Name)
	assert.Equal(itree.NodeType{Kind: itree.Div}, got[0].Bundle.Type)
	require.Len(t, got[0].Children, 2)
	assert.Equal("h1", got[0].Children[0].Bundle.Name)
	assert.Equal(itree.NodeType{Kind: itree.H1}.DefaultLayout(), got[0].Children[0].Bundle.Layout)
	assert.Equal("img", got[0].Children[1].Bundle.Name)

	assert.Equal("unknown", (&itree.Node{Type: itree.UnknownNodeType}).Bundle().Name)
}
