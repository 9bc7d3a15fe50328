package check

import (
	"log/slog"

	"github.com/briefedition/verweislint/core/locmap"
	"github.com/briefedition/verweislint/core/refs"
	"github.com/briefedition/verweislint/core/registry"
	"github.com/briefedition/verweislint/core/xmldoc"
)

// Inputs names the documents of one validation run.
type Inputs struct {
	Meta        string
	References  string
	Briefe      string
	Edits       string
	Traditions  string
	Marginalien string
	Registers   []string
}

// Run loads every document, builds the derived indices, and executes all
// checks. A load failure returns an error immediately (fatal tier); all
// validation findings accumulate and come back together, in traversal
// order, so one run surfaces every defect at once.
func Run(in Inputs) ([]Violation, error) {
	meta, err := xmldoc.Load(in.Meta)
	if err != nil {
		return nil, err
	}
	references, err := xmldoc.Load(in.References)
	if err != nil {
		return nil, err
	}
	briefe, err := xmldoc.Load(in.Briefe)
	if err != nil {
		return nil, err
	}
	edits, err := xmldoc.Load(in.Edits)
	if err != nil {
		return nil, err
	}
	traditions, err := xmldoc.Load(in.Traditions)
	if err != nil {
		return nil, err
	}
	marginalien, err := xmldoc.Load(in.Marginalien)
	if err != nil {
		return nil, err
	}
	registers := make([]*xmldoc.Document, 0, len(in.Registers))
	for _, path := range in.Registers {
		reg, err := xmldoc.Load(path)
		if err != nil {
			return nil, err
		}
		registers = append(registers, reg)
	}

	idx := refs.Build(meta, references, edits)
	slog.Debug("built reference indices",
		"persons", idx.Persons.Len(),
		"locations", idx.Locations.Len(),
		"hands", idx.Hands.Len(),
		"apps", idx.Apps.Len(),
		"edits", idx.Edits.Len(),
		"letters", idx.Letters.Len())

	acc := NewAccumulator()

	pools := registry.New()
	for _, reg := range registers {
		pools.CollectRegister(reg, acc)
	}
	slog.Debug("collected commentary registers",
		"registers", len(registers),
		"kommentars", len(pools.Kommentars),
		"subsections", len(pools.Subsections))

	CheckLetterMeta(meta, idx, acc)
	CheckLetterTexts(briefe, idx, acc)
	CheckTraditions(traditions, idx, acc)

	m := locmap.Merge(locmap.ScanLetterText(briefe), locmap.ScanTraditions(traditions))
	slog.Debug("merged location map", "letters", len(m))

	CheckIntlinks(traditions, idx.Letters, m, acc)
	CheckIntlinks(marginalien, idx.Letters, m, acc)
	for _, reg := range registers {
		CheckIntlinks(reg, idx.Letters, m, acc)
	}

	CheckMarginals(marginalien, idx.Letters, m, acc)

	for _, doc := range []*xmldoc.Document{meta, references, briefe, edits, traditions, marginalien} {
		CheckCommentaryLinks(doc, pools, acc)
	}
	for _, reg := range registers {
		CheckCommentaryLinks(reg, pools, acc)
	}

	return acc.Violations(), nil
}
