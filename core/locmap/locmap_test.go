package locmap

import (
	"testing"

	"github.com/briefedition/verweislint/core/xmldoc"
)

func parse(t *testing.T, path, data string) *xmldoc.Document {
	t.Helper()
	doc, err := xmldoc.Parse(path, []byte(data))
	if err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}
	return doc
}

// TestScanLetterText verifies the basic letter/page/line association.
func TestScanLetterText(t *testing.T) {
	doc := parse(t, "briefe.xml", `<opus><document>
		<letterText letter="L1">
			<page index="1"/>
			<line index="1"/>
			<line index="2"/>
			<page index="2"/>
			<line index="1"/>
		</letterText>
	</document></opus>`)

	m := ScanLetterText(doc)

	for _, triple := range [][3]string{
		{"L1", "1", "1"}, {"L1", "1", "2"}, {"L1", "2", "1"},
	} {
		if !m.HasLine(triple[0], triple[1], triple[2]) {
			t.Errorf("missing (%s, %s, %s)", triple[0], triple[1], triple[2])
		}
	}
	if m.HasLine("L1", "1", "3") {
		t.Error("unexpected line recorded")
	}
}

// TestScanLetterTextPageSpansBlocks verifies the page register survives a
// letterText transition: a page region may span enclosing text blocks, so
// only a new page marker replaces it.
func TestScanLetterTextPageSpansBlocks(t *testing.T) {
	doc := parse(t, "briefe.xml", `<document>
		<letterText letter="L1">
			<page index="7"/>
			<line index="1"/>
		</letterText>
		<letterText letter="L2">
			<line index="4"/>
		</letterText>
	</document>`)

	m := ScanLetterText(doc)

	if !m.HasLine("L2", "7", "4") {
		t.Error("page register should carry across letterText blocks")
	}
}

// TestScanLetterTextIndexlessMarkers verifies markers without an index
// neither update state nor record anything.
func TestScanLetterTextIndexlessMarkers(t *testing.T) {
	doc := parse(t, "briefe.xml", `<document>
		<letterText letter="L1">
			<page index="3"/>
			<page/>
			<line index="5"/>
			<line/>
		</letterText>
	</document>`)

	m := ScanLetterText(doc)

	if !m.HasLine("L1", "3", "5") {
		t.Error("index-less page must not reset the page register")
	}
	if len(m["L1"]) != 1 || len(m["L1"]["3"]) != 1 {
		t.Errorf("unexpected entries: %v", m)
	}
}

// TestScanLetterTextNoContext verifies lines before any letter or page are
// silently ignored.
func TestScanLetterTextNoContext(t *testing.T) {
	doc := parse(t, "briefe.xml", `<document>
		<line index="1"/>
		<letterText letter="L1">
			<line index="2"/>
			<page index="1"/>
			<line index="3"/>
		</letterText>
	</document>`)

	m := ScanLetterText(doc)

	if len(m) != 1 || len(m["L1"]) != 1 || len(m["L1"]["1"]) != 1 || !m.HasLine("L1", "1", "3") {
		t.Errorf("only (L1, 1, 3) should be recorded, got %v", m)
	}
}

// TestScanTraditions verifies per-block letters with no carry-over, and
// that a block's own attributes are not read as markers.
func TestScanTraditions(t *testing.T) {
	doc := parse(t, "traditions.xml", `<traditions>
		<letterTradition letter="L1">
			<page index="3"/>
			<line index="7"/>
		</letterTradition>
		<letterTradition letter="L2">
			<line index="9"/>
		</letterTradition>
		<letterTradition>
			<page index="4"/>
			<line index="1"/>
		</letterTradition>
	</traditions>`)

	m := ScanTraditions(doc)

	if !m.HasLine("L1", "3", "7") {
		t.Error("missing (L1, 3, 7)")
	}
	if m.HasLetter("L2") {
		t.Error("L2 has no page in its own block; nothing may carry over from L1")
	}
	if len(m) != 1 {
		t.Errorf("letter-less block must be skipped, got %v", m)
	}
}

// TestMergeUnion verifies every pair from either scan appears in the
// merged map, and merge order does not matter.
func TestMergeUnion(t *testing.T) {
	briefe := parse(t, "briefe.xml", `<document>
		<letterText letter="L1"><page index="3"/><line index="5"/></letterText>
	</document>`)
	traditions := parse(t, "traditions.xml", `<traditions>
		<letterTradition letter="L1"><page index="3"/><line index="7"/></letterTradition>
	</traditions>`)

	a := Merge(ScanLetterText(briefe), ScanTraditions(traditions))
	b := Merge(ScanTraditions(traditions), ScanLetterText(briefe))

	for _, m := range []Map{a, b} {
		if !m.HasLine("L1", "3", "5") || !m.HasLine("L1", "3", "7") {
			t.Errorf("merged map missing a contributed line: %v", m)
		}
		if len(m["L1"]["3"]) != 2 {
			t.Errorf("want exactly lines 5 and 7 under (L1, 3), got %v", m["L1"]["3"])
		}
	}
}
