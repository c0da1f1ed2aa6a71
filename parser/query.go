package parser

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kelly-lin/bevyml/grammar"
	"github.com/kelly-lin/bevyml/itree"
)

var ErrNoElement = errors.New("no element found")

// Find the first element with the provided id inside source and returns its
// range if it was found. Attribute names are matched ignoring case, values
// are not. If there is no such element then error ErrNoElement
// will be returned.
func FindElementByID(id string, source []byte) (itree.Range, error) {
	handle, err := grammar.GetHandle()
	if err != nil {
		return itree.Range{}, err
	}
	n, err := sitter.ParseCtx(context.Background(), source, handle.Language())
	if err != nil {
		return itree.Range{}, err
	}

	pattern := fmt.Sprintf(`(
    (attribute
        (attribute_name) @name
        [
            (attribute_value) @value
            (quoted_attribute_value (attribute_value) @value)
        ])
    (#match? @name "^[iI][dD]$")
    (#eq? @value %q)
)`, id)
	q, err := sitter.NewQuery([]byte(pattern), handle.Language())
	if err != nil {
		return itree.Range{}, err
	}

	qc := sitter.NewQueryCursor()
	qc.Exec(q, n)
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, source)
		for _, c := range m.Captures {
			if q.CaptureNameForId(c.Index) != "name" {
				continue
			}
			// attribute_name -> attribute -> tag -> element
			element := c.Node.Parent()
			for i := 0; i < 2 && element != nil; i++ {
				element = element.Parent()
			}
			if element == nil {
				continue
			}
			start := element.StartPoint()
			end := element.EndPoint()
			return itree.Range{
				Start: itree.Point{Row: start.Row, Column: start.Column},
				End:   itree.Point{Row: end.Row, Column: end.Column},
			}, nil
		}
	}
	return itree.Range{}, ErrNoElement
}
