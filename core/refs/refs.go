// Package refs builds the flat identifier sets the validator resolves
// references against: persons, locations, hands, apparatus entries, edit
// reasons, and letters.
package refs

import "github.com/briefedition/verweislint/core/xmldoc"

// Set is an identifier set for one reference kind. Membership only; no
// ordering is ever observed.
type Set map[string]struct{}

// Has reports whether id is a known identifier.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s Set) Add(id string) {
	s[id] = struct{}{}
}

// Len returns the number of identifiers in the set.
func (s Set) Len() int {
	return len(s)
}

// Indices holds one identifier set per reference kind.
type Indices struct {
	Persons   Set
	Locations Set
	Hands     Set
	Apps      Set
	Edits     Set
	Letters   Set
}

// Build collects the identifier sets from the metadata, references, and
// edits documents. No validation happens here: absent identifying
// attributes are skipped and duplicates collapse silently. The sets only
// answer "is X a known identifier of kind Y".
func Build(meta, references, edits *xmldoc.Document) *Indices {
	return &Indices{
		Persons:   collect(references, "//personDef", "index"),
		Locations: collect(references, "//locationDef", "index"),
		Hands:     collect(references, "//handDef", "index"),
		Apps:      collect(references, "//appDef", "index"),
		Edits:     collect(edits, "//editreason", "index"),
		Letters:   collect(meta, "//letterDesc", "letter"),
	}
}

func collect(doc *xmldoc.Document, expr, attr string) Set {
	set := make(Set)
	for _, n := range doc.MustFind(expr) {
		if v, ok := n.Attr(attr); ok {
			set.Add(v)
		}
	}
	return set
}
