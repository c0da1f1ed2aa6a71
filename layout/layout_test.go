package layout_test

import (
	"testing"

	"github.com/kelly-lin/bevyml/layout"
	"github.com/stretchr/testify/assert"
)

func TestHex(t *testing.T) {
	type TestCase struct {
		Desc  string
		Input string
		Want  layout.Color
	}
	testCases := []TestCase{
		{Desc: "short", Input: "#f00", Want: layout.Red},
		{Desc: "short without hash", Input: "0f0", Want: layout.Lime},
		{Desc: "short with alpha", Input: "#00f0", Want: layout.Color{B: 1}},
		{Desc: "long", Input: "#ffffff", Want: layout.White},
		{Desc: "long with alpha", Input: "#000000ff", Want: layout.Black},
	}
	for _, testCase := range testCases {
		t.Run(testCase.Desc, func(t *testing.T) {
			got, err := layout.Hex(testCase.Input)
			assert.NoError(t, err)
			assert.Equal(t, testCase.Want, got)
		})
	}

	for _, input := range []string{"", "#", "#ff", "#gggggg", "#12345"} {
		_, err := layout.Hex(input)
		assert.ErrorIs(t, err, layout.ErrInvalidHex, input)
	}
}

func TestNamedColor(t *testing.T) {
	assert := assert.New(t)
	got, ok := layout.NamedColor("GREY")
	assert.True(ok)
	assert.Equal(layout.Gray, got)

	_, ok = layout.NamedColor("rebeccapurple")
	assert.False(ok)
}

func TestVal(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(layout.AutoVal(), layout.Val{})
	assert.Equal("Auto", layout.AutoVal().String())
	assert.Equal("Px(12.5)", layout.PxVal(12.5).String())
	assert.Equal("Percent(50)", layout.PercentVal(50).String())
}

func TestDefaultNode(t *testing.T) {
	assert := assert.New(t)
	n := layout.DefaultNode()
	assert.Equal(layout.DisplayFlex, n.Display)
	assert.Equal(layout.AutoVal(), n.Width)
	assert.Equal(layout.RectAll(layout.PxVal(0)), n.Margin)
	assert.Equal(layout.BorderRadiusAll(layout.PxVal(0)), n.BorderRadius)
	assert.Nil(n.BackgroundColor)
}
