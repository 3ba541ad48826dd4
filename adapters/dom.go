package adapters

import (
	"strings"

	"ssg-pdp/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// selectionNode adapts a goquery selection to types.Node.
// It always wraps exactly one element.
type selectionNode struct {
	sel *goquery.Selection
}

// NewNode wraps the first element of a selection, returning nil for an empty selection
func NewNode(sel *goquery.Selection) types.Node {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	return &selectionNode{sel: sel.First()}
}

// DocumentNode returns the root node of a parsed document
func DocumentNode(doc *goquery.Document) types.Node {
	if doc == nil {
		return nil
	}
	return NewNode(doc.Selection)
}

func nodes(sel *goquery.Selection) []types.Node {
	result := make([]types.Node, 0, sel.Length())
	sel.Each(func(i int, s *goquery.Selection) {
		result = append(result, &selectionNode{sel: s})
	})
	return result
}

func (n *selectionNode) FindOne(selector string) types.Node {
	return NewNode(n.sel.Find(selector))
}

func (n *selectionNode) FindAll(selector string) []types.Node {
	return nodes(n.sel.Find(selector))
}

func (n *selectionNode) Children(selector string) []types.Node {
	return nodes(n.sel.ChildrenFiltered(selector))
}

func (n *selectionNode) Text() string {
	return strings.TrimSpace(n.sel.Text())
}

func (n *selectionNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n *selectionNode) NextSibling() types.Node {
	return NewNode(n.sel.Next())
}

func (n *selectionNode) Parent() types.Node {
	return NewNode(n.sel.Parent())
}

func (n *selectionNode) Closest(selector string) types.Node {
	return NewNode(n.sel.Closest(selector))
}
