// Package locmap derives the letter -> page -> line location map from the
// transcription and textual-tradition documents.
//
// Pages and lines are associated by document order, not by nesting: the
// source markup lets a page region span several enclosing text blocks, so
// each scan is a single pass that carries a current-letter and current-page
// register across the walk.
package locmap

import "github.com/briefedition/verweislint/core/xmldoc"

// Map records, per letter and page, the set of known line indices.
type Map map[string]map[string]map[string]struct{}

// Add records a (letter, page, line) triple.
func (m Map) Add(letter, page, line string) {
	pages, ok := m[letter]
	if !ok {
		pages = make(map[string]map[string]struct{})
		m[letter] = pages
	}
	lines, ok := pages[page]
	if !ok {
		lines = make(map[string]struct{})
		pages[page] = lines
	}
	lines[line] = struct{}{}
}

// HasLetter reports whether any page is known for the letter.
func (m Map) HasLetter(letter string) bool {
	_, ok := m[letter]
	return ok
}

// HasPage reports whether the page is known under the letter.
func (m Map) HasPage(letter, page string) bool {
	_, ok := m[letter][page]
	return ok
}

// HasLine reports whether the line is known under the (letter, page) pair.
func (m Map) HasLine(letter, page, line string) bool {
	_, ok := m[letter][page][line]
	return ok
}

// ScanLetterText walks the transcription document and records every
// (letter, page, line) triple encountered.
//
// State rules: a letterText marker loads the letter register; a page marker
// with an index loads the page register (an index-less page changes
// nothing, and the page register deliberately survives letterText
// transitions); a line marker with an index records a triple only while
// both registers are loaded.
func ScanLetterText(doc *xmldoc.Document) Map {
	m := make(Map)
	root := doc.Root()
	if root == nil {
		return m
	}
	scope := root
	if d := root.FindFirst("//document"); d != nil {
		scope = d
	}

	var currentLetter, currentPage string
	scope.Walk(func(n *xmldoc.Node) {
		switch n.Name() {
		case "letterText":
			currentLetter = n.AttrValue("letter")
		case "page":
			if idx, ok := n.Attr("index"); ok && idx != "" {
				currentPage = idx
			}
		case "line":
			idx := n.AttrValue("index")
			if currentLetter != "" && currentPage != "" && idx != "" {
				m.Add(currentLetter, currentPage, idx)
			}
		}
	})
	return m
}

// ScanTraditions walks the textual-tradition document. Each letterTradition
// block supplies its own letter identifier and resets the page register;
// nothing carries across blocks. The block element itself is excluded from
// its scan so its attributes cannot be mistaken for a nested marker.
func ScanTraditions(doc *xmldoc.Document) Map {
	m := make(Map)
	for _, block := range doc.MustFind("//letterTradition") {
		letter := block.AttrValue("letter")
		if letter == "" {
			continue
		}
		currentPage := ""
		block.Walk(func(n *xmldoc.Node) {
			switch n.Name() {
			case "page":
				if idx, ok := n.Attr("index"); ok && idx != "" {
					currentPage = idx
				}
			case "line":
				idx := n.AttrValue("index")
				if currentPage != "" && idx != "" {
					m.Add(letter, currentPage, idx)
				}
			}
		})
	}
	return m
}

// Merge unions b into a per (letter, page) and returns a. Union is
// idempotent, so merge order cannot change the result.
func Merge(a, b Map) Map {
	for letter, pages := range b {
		for page, lines := range pages {
			for line := range lines {
				a.Add(letter, page, line)
			}
		}
	}
	return a
}
