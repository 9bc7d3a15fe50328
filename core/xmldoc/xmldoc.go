// Package xmldoc loads edition XML files into navigable trees that retain
// the source line number of every element. Line numbers are what make a
// validator finding actionable, so losing them is not an option here.
package xmldoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document is a parsed XML file.
type Document struct {
	path  string
	root  *xmlquery.Node
	lines map[*xmlquery.Node]int
}

// Node is an element inside a Document.
type Node struct {
	node *xmlquery.Node
	doc  *Document
}

// Load reads and parses the file at path. A missing file or malformed XML
// is an environment error: the caller is expected to abort the run.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses XML data. The path is retained for reporting only.
func Parse(path string, data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &Document{
		path:  path,
		root:  root,
		lines: elementLines(root, data),
	}, nil
}

// elementLines pairs every element node with its source line. xmlquery does
// not record positions, so the raw bytes are tokenized a second time with
// encoding/xml and start-elements are matched up in document order; both
// parsers are built on the same tokenizer, so the sequences agree.
func elementLines(root *xmlquery.Node, data []byte) map[*xmlquery.Node]int {
	var elems []*xmlquery.Node
	var collect func(n *xmlquery.Node)
	collect = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xmlquery.ElementNode {
				elems = append(elems, c)
			}
			collect(c)
		}
	}
	collect(root)

	lines := make(map[*xmlquery.Node]int, len(elems))
	dec := xml.NewDecoder(bytes.NewReader(data))
	line := 1
	pos := int64(0)
	i := 0
	for i < len(elems) {
		startLine := line
		tok, err := dec.Token()
		if err != nil {
			break
		}
		off := dec.InputOffset()
		for _, b := range data[pos:off] {
			if b == '\n' {
				line++
			}
		}
		pos = off
		if _, ok := tok.(xml.StartElement); ok {
			lines[elems[i]] = startLine
			i++
		}
	}
	return lines
}

// Path returns the file path the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// Root returns the document's root element, or nil for an empty document.
func (d *Document) Root() *Node {
	for c := d.root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return &Node{node: c, doc: d}
		}
	}
	return nil
}

// Find runs an XPath query against the whole document and returns the
// matches in document order.
func (d *Document) Find(expr string) ([]*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	nodes, err := xmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query %q: %w", expr, err)
	}
	return d.wrap(nodes), nil
}

// MustFind is Find for expressions known valid at compile time.
func (d *Document) MustFind(expr string) []*Node {
	nodes, err := d.Find(expr)
	if err != nil {
		panic(err)
	}
	return nodes
}

func (d *Document) wrap(nodes []*xmlquery.Node) []*Node {
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = &Node{node: n, doc: d}
	}
	return out
}

// Name returns the element name.
func (n *Node) Name() string {
	return n.node.Data
}

// Line returns the source line of the element's start tag, or 0 when the
// position could not be determined.
func (n *Node) Line() int {
	return n.doc.lines[n.node]
}

// Attr returns an attribute value and whether the attribute is present.
// Present-vs-absent matters: an absent optional attribute is never an
// error, an empty one may be.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.node.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue returns an attribute value, empty when absent.
func (n *Node) AttrValue(name string) string {
	v, _ := n.Attr(name)
	return v
}

// Find runs an XPath query relative to this element.
func (n *Node) Find(expr string) ([]*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	nodes, err := xmlquery.QueryAll(n.node, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query %q: %w", expr, err)
	}
	return n.doc.wrap(nodes), nil
}

// MustFind is Find for expressions known valid at compile time.
func (n *Node) MustFind(expr string) []*Node {
	nodes, err := n.Find(expr)
	if err != nil {
		panic(err)
	}
	return nodes
}

// FindFirst returns the first match of an XPath query, or nil.
func (n *Node) FindFirst(expr string) *Node {
	node, err := xmlquery.Query(n.node, expr)
	if err != nil || node == nil {
		return nil
	}
	return &Node{node: node, doc: n.doc}
}

// Walk visits every descendant element of n in document order. The node
// itself is excluded, so a scan over a block cannot mistake the block's own
// attributes for a nested marker.
func (n *Node) Walk(fn func(*Node)) {
	var walk func(x *xmlquery.Node)
	walk = func(x *xmlquery.Node) {
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xmlquery.ElementNode {
				fn(&Node{node: c, doc: n.doc})
			}
			walk(c)
		}
	}
	walk(n.node)
}

// InnerText returns the concatenated text content of the element.
func (n *Node) InnerText() string {
	return n.node.InnerText()
}
