package check

import (
	"fmt"
	"path/filepath"

	"github.com/briefedition/verweislint/core/locmap"
	"github.com/briefedition/verweislint/core/refs"
	"github.com/briefedition/verweislint/core/xmldoc"
)

// CommentaryPools resolves commentary link targets. Implemented by
// registry.Registry; declared here so the checks depend on behavior, not
// on the builder package.
type CommentaryPools interface {
	HasKommentar(id string) bool
	HasSubsection(id string) bool
}

// attr returns a present, non-empty attribute value. The edition treats an
// empty attribute like an absent one.
func attr(n *xmldoc.Node, name string) (string, bool) {
	v, ok := n.Attr(name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// CheckLetterMeta validates sender, receiver, and location refs of every
// letter descriptor. A letter carries at most one location element.
// Absent refs are fine; only a present but unresolvable ref is a defect.
func CheckLetterMeta(meta *xmldoc.Document, idx *refs.Indices, acc *Accumulator) {
	for _, letter := range meta.MustFind("//letterDesc") {
		letterID := letter.AttrValue("letter")

		for _, sender := range letter.MustFind(".//sender") {
			if ref, ok := attr(sender, "ref"); ok && !idx.Persons.Has(ref) {
				acc.Add(meta.Path(), sender.Line(),
					fmt.Sprintf("Invalid sender ref: %s in letter=%s", ref, letterID))
			}
		}

		for _, receiver := range letter.MustFind(".//receiver") {
			if ref, ok := attr(receiver, "ref"); ok && !idx.Persons.Has(ref) {
				acc.Add(meta.Path(), receiver.Line(),
					fmt.Sprintf("Invalid receiver ref: %s in letter=%s", ref, letterID))
			}
		}

		if loc := letter.FindFirst(".//location"); loc != nil {
			if ref, ok := attr(loc, "ref"); ok && !idx.Locations.Has(ref) {
				acc.Add(meta.Path(), loc.Line(),
					fmt.Sprintf("Invalid location ref: %s in letter=%s", ref, letterID))
			}
		}
	}
}

// CheckLetterTexts validates the transcription document: every letterText
// must name a known letter, and nested hand/edit refs must resolve.
func CheckLetterTexts(briefe *xmldoc.Document, idx *refs.Indices, acc *Accumulator) {
	for _, letterText := range briefe.MustFind("//letterText") {
		letterID := letterText.AttrValue("letter")

		if letterID != "" && !idx.Letters.Has(letterID) {
			acc.Add(briefe.Path(), letterText.Line(),
				fmt.Sprintf("Invalid letter reference: %s in %s", letterID, filepath.Base(briefe.Path())))
		}

		for _, hand := range letterText.MustFind(".//hand") {
			if ref, ok := attr(hand, "ref"); ok && !idx.Hands.Has(ref) {
				acc.Add(briefe.Path(), hand.Line(),
					fmt.Sprintf("Invalid hand ref: %s in letter %s", ref, letterID))
			}
		}

		for _, edit := range letterText.MustFind(".//edit") {
			if ref, ok := attr(edit, "ref"); ok && !idx.Edits.Has(ref) {
				acc.Add(briefe.Path(), edit.Line(),
					fmt.Sprintf("Invalid edit ref: %s in letter %s", ref, letterID))
			}
		}
	}
}

// CheckTraditions validates the textual-tradition document: every
// letterTradition must name a known letter, and nested app/hand refs must
// resolve.
func CheckTraditions(traditions *xmldoc.Document, idx *refs.Indices, acc *Accumulator) {
	for _, tradition := range traditions.MustFind("//letterTradition") {
		letterID := tradition.AttrValue("letter")

		if letterID != "" && !idx.Letters.Has(letterID) {
			acc.Add(traditions.Path(), tradition.Line(),
				fmt.Sprintf("Invalid letterTradition reference: %s", letterID))
		}

		for _, app := range tradition.MustFind(".//app") {
			if ref, ok := attr(app, "ref"); ok && !idx.Apps.Has(ref) {
				acc.Add(traditions.Path(), app.Line(),
					fmt.Sprintf("Invalid app ref: %s in letterTradition %s", ref, letterID))
			}
		}

		for _, hand := range tradition.MustFind(".//hand") {
			if ref, ok := attr(hand, "ref"); ok && !idx.Hands.Has(ref) {
				acc.Add(traditions.Path(), hand.Line(),
					fmt.Sprintf("Invalid hand ref: %s in letterTradition %s", ref, letterID))
			}
		}
	}
}

// CheckIntlinks validates every intlink in doc against the merged location
// map. The letter attribute is mandatory; once it fails, the page and line
// checks for that link are skipped. A line without a page is always a
// defect, while a page without a line is always fine.
func CheckIntlinks(doc *xmldoc.Document, letters refs.Set, m locmap.Map, acc *Accumulator) {
	for _, intlink := range doc.MustFind("//intlink") {
		line := intlink.Line()
		letterID, hasLetter := attr(intlink, "letter")
		pageID, hasPage := attr(intlink, "page")
		lineID, hasLine := attr(intlink, "line")

		if !hasLetter || !letters.Has(letterID) {
			acc.Add(doc.Path(), line, fmt.Sprintf("Invalid intlink letter=%s", letterID))
			continue
		}

		if !m.HasLetter(letterID) {
			acc.Add(doc.Path(), line, fmt.Sprintf("No pages known for letter=%s in intlink", letterID))
			continue
		}

		if hasPage {
			if !m.HasPage(letterID, pageID) {
				acc.Add(doc.Path(), line,
					fmt.Sprintf("Invalid page=%s for letter=%s in intlink", pageID, letterID))
			} else if hasLine && !m.HasLine(letterID, pageID, lineID) {
				acc.Add(doc.Path(), line,
					fmt.Sprintf("Invalid line=%s for letter=%s, page=%s in intlink", lineID, letterID, pageID))
			}
		} else if hasLine {
			acc.Add(doc.Path(), line,
				fmt.Sprintf("intlink has line=%s but no page=? for letter=%s", lineID, letterID))
		}
	}
}

// CheckMarginals validates the marginal-note anchors. Unlike intlinks the
// letter, page, and line attributes are all mandatory; resolution cascades
// through the three levels and stops at the first unresolved one.
func CheckMarginals(marginalien *xmldoc.Document, letters refs.Set, m locmap.Map, acc *Accumulator) {
	for _, marginal := range marginalien.MustFind("//marginal") {
		line := marginal.Line()
		letterID := marginal.AttrValue("letter")
		pageID := marginal.AttrValue("page")
		lineID := marginal.AttrValue("line")

		if !letters.Has(letterID) {
			acc.Add(marginalien.Path(), line,
				fmt.Sprintf("Invalid marginal letter reference: %s (not in meta)", letterID))
			continue
		}
		if !m.HasLetter(letterID) {
			acc.Add(marginalien.Path(), line,
				fmt.Sprintf("No pages/lines known for letter=%s in briefe/traditions", letterID))
			continue
		}
		if !m.HasPage(letterID, pageID) {
			acc.Add(marginalien.Path(), line,
				fmt.Sprintf("Invalid page reference: letter=%s, page=%s", letterID, pageID))
			continue
		}
		if !m.HasLine(letterID, pageID, lineID) {
			acc.Add(marginalien.Path(), line,
				fmt.Sprintf("Invalid line reference: letter=%s, page=%s, line=%s", letterID, pageID, lineID))
		}
	}
}

// CheckCommentaryLinks validates link elements anywhere in doc. A ref may
// point at either pool; a subref must name a subsection.
func CheckCommentaryLinks(doc *xmldoc.Document, pools CommentaryPools, acc *Accumulator) {
	for _, link := range doc.MustFind("//link") {
		if ref, ok := attr(link, "ref"); ok {
			if !pools.HasKommentar(ref) && !pools.HasSubsection(ref) {
				acc.Add(doc.Path(), link.Line(),
					fmt.Sprintf("Invalid <link ref='%s'> (not in kommentar/subsection IDs)", ref))
			}
		}
		if subref, ok := attr(link, "subref"); ok {
			if !pools.HasSubsection(subref) {
				acc.Add(doc.Path(), link.Line(),
					fmt.Sprintf("Invalid <link subref='%s'> (not in <subsection> IDs)", subref))
			}
		}
	}
}
