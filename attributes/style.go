package attributes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kelly-lin/bevyml/layout"
)

// Property identifies what a style declaration sets.
type Property string

const (
	PropDisplay        Property = "display"
	PropWidth          Property = "width"
	PropHeight         Property = "height"
	PropMinWidth       Property = "min-width"
	PropMaxWidth       Property = "max-width"
	PropMinHeight      Property = "min-height"
	PropMaxHeight      Property = "max-height"
	PropLeft           Property = "left"
	PropRight          Property = "right"
	PropTop            Property = "top"
	PropBottom         Property = "bottom"
	PropMargin         Property = "margin"
	PropMarginLeft     Property = "margin-left"
	PropMarginRight    Property = "margin-right"
	PropMarginTop      Property = "margin-top"
	PropMarginBottom   Property = "margin-bottom"
	PropPadding        Property = "padding"
	PropPaddingLeft    Property = "padding-left"
	PropPaddingRight   Property = "padding-right"
	PropPaddingTop     Property = "padding-top"
	PropPaddingBottom  Property = "padding-bottom"
	PropBorder         Property = "border"
	PropBorderLeft     Property = "border-left"
	PropBorderRight    Property = "border-right"
	PropBorderTop      Property = "border-top"
	PropBorderBottom   Property = "border-bottom"
	PropBorderRadius   Property = "border-radius"
	PropBackground     Property = "background-color"
	PropAlignItems     Property = "align-items"
	PropJustifyContent Property = "justify-content"
	PropRowGap         Property = "row-gap"
	PropColumnGap      Property = "column-gap"
	PropGap            Property = "gap"
	PropFlexBasis      Property = "flex-basis"
)

// Declaration is one supported style declaration. The field used depends on
// Property: single lengths use Val, margin/padding/border use Rect, gap uses
// Val for the row gap and Column for the column gap.
type Declaration struct {
	Property       Property
	Val            layout.Val
	Column         layout.Val
	Rect           layout.Rect
	Radius         layout.BorderRadius
	Color          layout.Color
	Display        layout.Display
	AlignItems     layout.AlignItems
	JustifyContent layout.JustifyContent
}

// Apply sets the declaration on n.
func (d Declaration) Apply(n *layout.Node) {
	switch d.Property {
	case PropDisplay:
		n.Display = d.Display
	case PropWidth:
		n.Width = d.Val
	case PropHeight:
		n.Height = d.Val
	case PropMinWidth:
		n.MinWidth = d.Val
	case PropMaxWidth:
		n.MaxWidth = d.Val
	case PropMinHeight:
		n.MinHeight = d.Val
	case PropMaxHeight:
		n.MaxHeight = d.Val
	case PropLeft:
		n.Left = d.Val
	case PropRight:
		n.Right = d.Val
	case PropTop:
		n.Top = d.Val
	case PropBottom:
		n.Bottom = d.Val
	case PropMargin:
		n.Margin = d.Rect
	case PropMarginLeft:
		n.Margin.Left = d.Val
	case PropMarginRight:
		n.Margin.Right = d.Val
	case PropMarginTop:
		n.Margin.Top = d.Val
	case PropMarginBottom:
		n.Margin.Bottom = d.Val
	case PropPadding:
		n.Padding = d.Rect
	case PropPaddingLeft:
		n.Padding.Left = d.Val
	case PropPaddingRight:
		n.Padding.Right = d.Val
	case PropPaddingTop:
		n.Padding.Top = d.Val
	case PropPaddingBottom:
		n.Padding.Bottom = d.Val
	case PropBorder:
		n.Border = d.Rect
	case PropBorderLeft:
		n.Border.Left = d.Val
	case PropBorderRight:
		n.Border.Right = d.Val
	case PropBorderTop:
		n.Border.Top = d.Val
	case PropBorderBottom:
		n.Border.Bottom = d.Val
	case PropBorderRadius:
		n.BorderRadius = d.Radius
	case PropBackground:
		color := d.Color
		n.BackgroundColor = &color
	case PropAlignItems:
		n.AlignItems = d.AlignItems
	case PropJustifyContent:
		n.JustifyContent = d.JustifyContent
	case PropRowGap:
		n.RowGap = d.Val
	case PropColumnGap:
		n.ColumnGap = d.Val
	case PropGap:
		n.RowGap = d.Val
		n.ColumnGap = d.Column
	case PropFlexBasis:
		n.FlexBasis = d.Val
	}
}

// Unsupported is a declaration that could not be turned into a Declaration.
// Reason explains why and is meant for logs.
type Unsupported struct {
	Property string
	Value    string
	Reason   string
}

type StyleAttribute struct {
	Raw          string
	Declarations []Declaration
	Unsupported  []Unsupported
}

// Apply sets every declaration on n in source order.
func (s *StyleAttribute) Apply(n *layout.Node) {
	if s == nil {
		return
	}
	for _, d := range s.Declarations {
		d.Apply(n)
	}
}

// ParseStyle parses an inline style attribute. Declarations are separated by
// ";" and a trailing "!important" is ignored. Entries that cannot be applied
// are kept in Unsupported; an entry without a property name is dropped.
func ParseStyle(raw string) *StyleAttribute {
	s := &StyleAttribute{Raw: raw}
	for _, declaration := range strings.Split(raw, ";") {
		trimmed := strings.TrimSpace(declaration)
		if trimmed == "" {
			continue
		}
		name, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			s.unsupported(trimmed, "", "style declaration missing ':'")
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		value = stripImportant(value)
		if value == "" {
			s.unsupported(name, value, fmt.Sprintf("style declaration missing value for '%s'", name))
			continue
		}
		s.parseProperty(name, value)
	}
	return s
}

func (s *StyleAttribute) unsupported(property, value, reason string) {
	s.Unsupported = append(s.Unsupported, Unsupported{Property: property, Value: value, Reason: reason})
}

func (s *StyleAttribute) invalid(property, value string, err error) {
	s.unsupported(property, value, fmt.Sprintf("unsupported style value for '%s': %q (%s)", property, value, err))
}

func (s *StyleAttribute) push(d Declaration) {
	s.Declarations = append(s.Declarations, d)
}

func (s *StyleAttribute) parseProperty(name, value string) {
	property := Property(strings.ToLower(name))
	switch property {
	case PropWidth, PropHeight, PropMinWidth, PropMaxWidth, PropMinHeight, PropMaxHeight,
		PropLeft, PropRight, PropTop, PropBottom,
		PropMarginLeft, PropMarginRight, PropMarginTop, PropMarginBottom,
		PropPaddingLeft, PropPaddingRight, PropPaddingTop, PropPaddingBottom,
		PropRowGap, PropColumnGap, PropFlexBasis:
		val, err := ParseVal(value)
		if err != nil {
			s.invalid(name, value, err)
			return
		}
		s.push(Declaration{Property: property, Val: val})

	case PropMargin, PropPadding, "border-width":
		rect, err := parseRect(value)
		if err != nil {
			s.invalid(name, value, err)
			return
		}
		if property == "border-width" {
			property = PropBorder
		}
		s.push(Declaration{Property: property, Rect: rect})

	case PropBorder, PropBorderLeft, PropBorderRight, PropBorderTop, PropBorderBottom:
		width, hasExtras, err := parseBorderShorthand(value)
		if err != nil {
			s.invalid(name, value, err)
			return
		}
		if property == PropBorder {
			s.push(Declaration{Property: PropBorder, Rect: layout.RectAll(width)})
		} else {
			s.push(Declaration{Property: property, Val: width})
		}
		if hasExtras {
			s.unsupported(name, value, fmt.Sprintf("unsupported extra tokens in '%s': %q", name, value))
		}

	case "border-left-width", "border-right-width", "border-top-width", "border-bottom-width":
		val, err := ParseVal(value)
		if err != nil {
			s.invalid(name, value, err)
			return
		}
		s.push(Declaration{Property: Property(strings.TrimSuffix(string(property), "-width")), Val: val})

	case PropBorderRadius:
		radius, err := parseBorderRadius(value)
		if err != nil {
			s.invalid(name, value, err)
			return
		}
		s.push(Declaration{Property: property, Radius: radius})

	case PropBackground:
		color, err := ParseColor(value)
		if err != nil {
			s.invalid(name, value, err)
			return
		}
		s.push(Declaration{Property: property, Color: color})

	case PropDisplay:
		display, err := parseKeyword(value, displayKeywords)
		if err != nil {
			s.invalid(name, value, err)
			return
		}
		s.push(Declaration{Property: property, Display: display})

	case PropAlignItems:
		align, err := parseKeyword(value, alignItemsKeywords)
		if err != nil {
			s.invalid(name, value, err)
			return
		}
		s.push(Declaration{Property: property, AlignItems: align})

	case PropJustifyContent:
		justify, err := parseKeyword(value, justifyContentKeywords)
		if err != nil {
			s.invalid(name, value, err)
			return
		}
		s.push(Declaration{Property: property, JustifyContent: justify})

	case PropGap:
		row, column, err := parseGap(value)
		if err != nil {
			s.invalid(name, value, err)
			return
		}
		s.push(Declaration{Property: property, Val: row, Column: column})

	default:
		s.unsupported(name, value, fmt.Sprintf("unsupported style property '%s'", name))
	}
}

var (
	ErrEmptyValue    = errors.New("empty value")
	ErrInvalidNumber = errors.New("invalid number")
)

// UnitError is returned for a well-formed number with an unknown unit.
type UnitError struct {
	Unit string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unsupported unit '%s'", e.Unit)
}

type arityError struct {
	expected string
	found    int
}

func (e *arityError) Error() string {
	return fmt.Sprintf("expected %s, found %d", e.expected, e.found)
}

func stripImportant(value string) string {
	trimmed := strings.TrimSpace(value)
	if stripped, ok := strings.CutSuffix(trimmed, "!important"); ok {
		return strings.TrimSpace(stripped)
	}
	return trimmed
}

var valUnits = []struct {
	suffix string
	val    func(float32) layout.Val
}{
	{"px", layout.PxVal},
	{"%", layout.PercentVal},
	{"vw", layout.VwVal},
	{"vh", layout.VhVal},
	{"vmin", layout.VMinVal},
	{"vmax", layout.VMaxVal},
}

// ParseVal parses a single length: "auto", a number with a px, %, vw, vh,
// vmin or vmax suffix, or a bare number of pixels.
func ParseVal(value string) (layout.Val, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return layout.Val{}, ErrEmptyValue
	}
	if strings.EqualFold(trimmed, "auto") {
		return layout.AutoVal(), nil
	}
	for _, unit := range valUnits {
		if number, ok := strings.CutSuffix(trimmed, unit.suffix); ok {
			f, err := parseNumber(number)
			if err != nil {
				return layout.Val{}, err
			}
			return unit.val(f), nil
		}
	}
	if f, err := strconv.ParseFloat(trimmed, 32); err == nil {
		return layout.PxVal(float32(f)), nil
	}
	number, unit := splitUnit(trimmed)
	if unit == "" {
		return layout.Val{}, ErrInvalidNumber
	}
	if _, err := parseNumber(number); err != nil {
		return layout.Val{}, ErrInvalidNumber
	}
	return layout.Val{}, &UnitError{Unit: unit}
}

func parseNumber(raw string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return float32(f), nil
}

// splitUnit splits off the trailing run of letters and '%'.
func splitUnit(value string) (string, string) {
	split := len(value)
	for split > 0 {
		c := value[split-1]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '%' {
			split--
			continue
		}
		break
	}
	return value[:split], value[split:]
}

// ParseColor parses "transparent", a hex colour, or a basic colour name.
func ParseColor(value string) (layout.Color, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return layout.Color{}, ErrEmptyValue
	}
	if strings.EqualFold(trimmed, "transparent") {
		return layout.Transparent, nil
	}
	if color, err := layout.Hex(trimmed); err == nil {
		return color, nil
	}
	if color, ok := layout.NamedColor(trimmed); ok {
		return color, nil
	}
	return layout.Color{}, fmt.Errorf("invalid color '%s'", trimmed)
}

var displayKeywords = map[string]layout.Display{
	"flex":        layout.DisplayFlex,
	"grid":        layout.DisplayGrid,
	"block":       layout.DisplayBlock,
	"none":        layout.DisplayNone,
	"inline-flex": layout.DisplayFlex,
	"inline-grid": layout.DisplayGrid,
}

var alignItemsKeywords = map[string]layout.AlignItems{
	"default":    layout.AlignItemsDefault,
	"normal":     layout.AlignItemsDefault,
	"auto":       layout.AlignItemsDefault,
	"start":      layout.AlignItemsStart,
	"end":        layout.AlignItemsEnd,
	"flex-start": layout.AlignItemsFlexStart,
	"flex-end":   layout.AlignItemsFlexEnd,
	"center":     layout.AlignItemsCenter,
	"baseline":   layout.AlignItemsBaseline,
	"stretch":    layout.AlignItemsStretch,
}

var justifyContentKeywords = map[string]layout.JustifyContent{
	"default":       layout.JustifyContentDefault,
	"normal":        layout.JustifyContentDefault,
	"auto":          layout.JustifyContentDefault,
	"start":         layout.JustifyContentStart,
	"end":           layout.JustifyContentEnd,
	"flex-start":    layout.JustifyContentFlexStart,
	"flex-end":      layout.JustifyContentFlexEnd,
	"center":        layout.JustifyContentCenter,
	"stretch":       layout.JustifyContentStretch,
	"space-between": layout.JustifyContentSpaceBetween,
	"space-around":  layout.JustifyContentSpaceAround,
	"space-evenly":  layout.JustifyContentSpaceEvenly,
}

func parseKeyword[T any](value string, keywords map[string]T) (T, error) {
	var zero T
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return zero, ErrEmptyValue
	}
	result, ok := keywords[strings.ToLower(trimmed)]
	if !ok {
		return zero, fmt.Errorf("invalid keyword '%s'", trimmed)
	}
	return result, nil
}

func parseValList(value string) ([]layout.Val, error) {
	var values []layout.Val
	for _, token := range strings.Fields(value) {
		val, err := ParseVal(token)
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	if len(values) == 0 {
		return nil, ErrEmptyValue
	}
	if len(values) > 4 {
		return nil, &arityError{expected: "1-4 values", found: len(values)}
	}
	return values, nil
}

// parseRect follows the CSS margin shorthand: top, right, bottom, left with
// missing sides copied from their opposite.
func parseRect(value string) (layout.Rect, error) {
	values, err := parseValList(value)
	if err != nil {
		return layout.Rect{}, err
	}
	switch len(values) {
	case 1:
		return layout.RectAll(values[0]), nil
	case 2:
		return layout.NewRect(values[1], values[1], values[0], values[0]), nil
	case 3:
		return layout.NewRect(values[1], values[1], values[0], values[2]), nil
	default:
		return layout.NewRect(values[3], values[1], values[0], values[2]), nil
	}
}

// parseBorderRadius ignores the vertical radii after "/".
func parseBorderRadius(value string) (layout.BorderRadius, error) {
	value, _, _ = strings.Cut(value, "/")
	values, err := parseValList(value)
	if err != nil {
		return layout.BorderRadius{}, err
	}
	switch len(values) {
	case 1:
		return layout.BorderRadiusAll(values[0]), nil
	case 2:
		return layout.NewBorderRadius(values[0], values[1], values[0], values[1]), nil
	case 3:
		return layout.NewBorderRadius(values[0], values[1], values[2], values[1]), nil
	default:
		return layout.NewBorderRadius(values[0], values[1], values[2], values[3]), nil
	}
}

func parseGap(value string) (layout.Val, layout.Val, error) {
	values, err := parseValList(value)
	if err != nil {
		return layout.Val{}, layout.Val{}, err
	}
	switch len(values) {
	case 1:
		return values[0], values[0], nil
	case 2:
		return values[0], values[1], nil
	default:
		return layout.Val{}, layout.Val{}, &arityError{expected: "1-2 values", found: len(values)}
	}
}

// parseBorderShorthand takes the first length of a border shorthand such as
// "1px solid red" as the width. hasExtras reports any other token.
func parseBorderShorthand(value string) (width layout.Val, hasExtras bool, err error) {
	found := false
	var unitErr *UnitError
	for _, token := range strings.Fields(value) {
		val, parseErr := ParseVal(token)
		if parseErr != nil {
			hasExtras = true
			var e *UnitError
			if errors.As(parseErr, &e) {
				unitErr = e
			}
			continue
		}
		if found {
			hasExtras = true
			continue
		}
		width = val
		found = true
	}
	if !found {
		if unitErr != nil {
			return layout.Val{}, false, unitErr
		}
		return layout.Val{}, false, ErrInvalidNumber
	}
	return width, hasExtras, nil
}
