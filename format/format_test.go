package format_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kelly-lin/bevyml/format"
	"github.com/kelly-lin/bevyml/itree"
	"github.com/kelly-lin/bevyml/log"
	"github.com/kelly-lin/bevyml/parser"
)

func TestSyntaxTree(t *testing.T) {
	defer goleak.VerifyNone(t)
	assert := assert.New(t)

	p, err := parser.Default()
	require.NoError(t, err)
	defer p.Close()

	source := []byte("<p>hi</p>")
	tree, err := p.ParseTree(context.Background(), source)
	require.NoError(t, err)
	defer tree.Close()

	var buf bytes.Buffer
	assert.NoError(format.SyntaxTree(&buf, tree.RootNode(), source))
	want := `fragment [0..9]: <p>hi</p>
  element [0..9]: <p>hi</p>
    start_tag [0..3]: <p>
      < [0..1]: <
      tag_name [1..2]: p
      > [2..3]: >
    text [3..5]: hi
    end_tag [5..9]: </p>
      </ [5..7]: </
      tag_name [7..8]: p
      > [8..9]: >
`
	assert.Equal(want, buf.String())
	assert.NoError(format.SyntaxTree(&buf, nil, source))
}

func TestTree(t *testing.T) {
	defer goleak.VerifyNone(t)
	assert := assert.New(t)

	tree := &itree.Tree{
		Roots: []*itree.Node{
			{
				Type:              itree.NodeType{Kind: itree.Div},
				ElementName:       "div",
				SimplifiedContent: "<div>...</div>",
				Children: []*itree.Node{
					{Type: itree.NodeType{Kind: itree.Br}, ElementName: "br", SimplifiedContent: "<br/>"},
					{Type: itree.FromTagName("x-item"), ElementName: "x-item", SimplifiedContent: "<x-item></x-item>"},
				},
			},
			{Type: itree.UnknownNodeType, SimplifiedContent: "<>"},
		},
	}
	want := `- node_type=Div element=div simplified_content="<div>...</div>"
  - node_type=Br element=br simplified_content="<br/>"
  - node_type=Custom("x-item") element=x-item simplified_content="<x-item></x-item>"
- node_type=Custom("unknown") element=<unknown> simplified_content="<>"
`

	var buf bytes.Buffer
	assert.NoError(format.Tree(&buf, tree))
	assert.Equal(want, buf.String())

	var logBuf bytes.Buffer
	format.LogTree(log.New(&logBuf, true), tree)
	assert.Contains(logBuf.String(), `- node_type=Br element=br simplified_content="<br/>"`)

	logBuf.Reset()
	format.LogTree(log.New(&logBuf, false), tree)
	assert.Empty(logBuf.String())
	assert.NotPanics(func() { format.LogTree(nil, tree) })
}
