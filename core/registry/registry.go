// Package registry collects commentary-entry and subsection identifiers
// from register documents.
//
// The two kinds are separate namespaces: an identifier may legally appear
// once as a kommentar and once as a subsection. Within a kind, identifiers
// must be unique both inside a single register and across all registers of
// the run.
package registry

import (
	"fmt"

	"github.com/briefedition/verweislint/core/xmldoc"
)

// Reporter receives violations found while collecting a register.
type Reporter interface {
	Add(file string, line int, message string)
}

// Registry holds the global commentary identifier pools for one run.
type Registry struct {
	Kommentars  map[string]struct{}
	Subsections map[string]struct{}
}

// New returns an empty registry. One registry is built per run and passed
// into every check; nothing is process-global.
func New() *Registry {
	return &Registry{
		Kommentars:  make(map[string]struct{}),
		Subsections: make(map[string]struct{}),
	}
}

// HasKommentar reports whether id is a registered commentary entry.
func (r *Registry) HasKommentar(id string) bool {
	_, ok := r.Kommentars[id]
	return ok
}

// HasSubsection reports whether id is a registered subsection.
func (r *Registry) HasSubsection(id string) bool {
	_, ok := r.Subsections[id]
	return ok
}

// CollectRegister scans one register document and registers its kommentar
// and subsection identifiers, reporting a violation for every missing id,
// duplicate, or entry without a lemma child. Duplicate violations never
// block traversal, and an identifier ends up registered globally exactly
// once no matter how many violations it raised.
func (r *Registry) CollectRegister(doc *xmldoc.Document, rep Reporter) {
	r.collectKind(doc, rep, "kommentar", r.Kommentars)
	r.collectKind(doc, rep, "subsection", r.Subsections)
}

func (r *Registry) collectKind(doc *xmldoc.Document, rep Reporter, kind string, global map[string]struct{}) {
	local := make(map[string]struct{})
	for _, elem := range doc.MustFind("//" + kind) {
		id, ok := elem.Attr("id")
		if !ok || id == "" {
			rep.Add(doc.Path(), elem.Line(), fmt.Sprintf("<%s> missing @id", kind))
			continue
		}

		if _, dup := local[id]; dup {
			rep.Add(doc.Path(), elem.Line(), fmt.Sprintf("Duplicate <%s id='%s'> in this file", kind, id))
		} else {
			local[id] = struct{}{}
		}

		if _, dup := global[id]; dup {
			rep.Add(doc.Path(), elem.Line(), fmt.Sprintf("Duplicate <%s id='%s'> across multiple registers", kind, id))
		} else {
			global[id] = struct{}{}
		}

		// The lemma may sit anywhere in the entry's subtree.
		if elem.FindFirst(".//lemma") == nil {
			rep.Add(doc.Path(), elem.Line(), fmt.Sprintf("<%s id='%s'> missing <lemma> child", kind, id))
		}
	}
}
