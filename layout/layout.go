// Package layout holds the UI layout values produced from BevyML elements and
// their inline styles.
package layout

import "fmt"

type ValKind int

const (
	Auto ValKind = iota
	Px
	Percent
	Vw
	Vh
	VMin
	VMax
)

func (k ValKind) String() string {
	switch k {
	case Auto:
		return "Auto"
	case Px:
		return "Px"
	case Percent:
		return "Percent"
	case Vw:
		return "Vw"
	case Vh:
		return "Vh"
	case VMin:
		return "VMin"
	case VMax:
		return "VMax"
	default:
		return fmt.Sprintf("ValKind(%d)", int(k))
	}
}

// Val is a length. The zero value is Auto.
type Val struct {
	Kind  ValKind
	Value float32
}

var Zero = Val{Kind: Px}

func AutoVal() Val { return Val{Kind: Auto} }
func PxVal(v float32) Val { return Val{Kind: Px, Value: v} }
func PercentVal(v float32) Val { return Val{Kind: Percent, Value: v} }
func VwVal(v float32) Val { return Val{Kind: Vw, Value: v} }
func VhVal(v float32) Val { return Val{Kind: Vh, Value: v} }
func VMinVal(v float32) Val { return Val{Kind: VMin, Value: v} }
func VMaxVal(v float32) Val { return Val{Kind: VMax, Value: v} }

func (v Val) String() string {
	if v.Kind == Auto {
		return "Auto"
	}
	return fmt.Sprintf("%s(%g)", v.Kind, v.Value)
}

// Rect holds one value per side.
type Rect struct {
	Left   Val
	Right  Val
	Top    Val
	Bottom Val
}

func NewRect(left, right, top, bottom Val) Rect {
	return Rect{Left: left, Right: right, Top: top, Bottom: bottom}
}

func RectAll(v Val) Rect {
	return Rect{Left: v, Right: v, Top: v, Bottom: v}
}

// BorderRadius holds one radius per corner.
type BorderRadius struct {
	TopLeft     Val
	TopRight    Val
	BottomRight Val
	BottomLeft  Val
}

func NewBorderRadius(topLeft, topRight, bottomRight, bottomLeft Val) BorderRadius {
	return BorderRadius{TopLeft: topLeft, TopRight: topRight, BottomRight: bottomRight, BottomLeft: bottomLeft}
}

func BorderRadiusAll(v Val) BorderRadius {
	return NewBorderRadius(v, v, v, v)
}

type Display int

const (
	DisplayFlex Display = iota
	DisplayGrid
	DisplayBlock
	DisplayNone
)

func (d Display) String() string {
	switch d {
	case DisplayFlex:
		return "Flex"
	case DisplayGrid:
		return "Grid"
	case DisplayBlock:
		return "Block"
	case DisplayNone:
		return "None"
	default:
		return fmt.Sprintf("Display(%d)", int(d))
	}
}

type AlignItems int

const (
	AlignItemsDefault AlignItems = iota
	AlignItemsStart
	AlignItemsEnd
	AlignItemsFlexStart
	AlignItemsFlexEnd
	AlignItemsCenter
	AlignItemsBaseline
	AlignItemsStretch
)

type JustifyContent int

const (
	JustifyContentDefault JustifyContent = iota
	JustifyContentStart
	JustifyContentEnd
	JustifyContentFlexStart
	JustifyContentFlexEnd
	JustifyContentCenter
	JustifyContentStretch
	JustifyContentSpaceBetween
	JustifyContentSpaceAround
	JustifyContentSpaceEvenly
)

// Node is the layout of a single UI node.
type Node struct {
	Display        Display
	Width          Val
	Height         Val
	MinWidth       Val
	MaxWidth       Val
	MinHeight      Val
	MaxHeight      Val
	Left           Val
	Right          Val
	Top            Val
	Bottom         Val
	Margin         Rect
	Padding        Rect
	Border         Rect
	BorderRadius   BorderRadius
	AlignItems     AlignItems
	JustifyContent JustifyContent
	RowGap         Val
	ColumnGap      Val
	FlexBasis      Val
	// BackgroundColor is nil when no background was set.
	BackgroundColor *Color
}

// DefaultNode returns a flex node with auto sizes and zero spacing.
func DefaultNode() Node {
	return Node{
		Display:      DisplayFlex,
		Margin:       RectAll(Zero),
		Padding:      RectAll(Zero),
		Border:       RectAll(Zero),
		BorderRadius: BorderRadiusAll(Zero),
		RowGap:       Zero,
		ColumnGap:    Zero,
	}
}
