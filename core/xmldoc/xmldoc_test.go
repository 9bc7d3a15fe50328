package xmldoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestParseValid verifies parsing of a well-formed document.
func TestParseValid(t *testing.T) {
	data := `<?xml version="1.0"?>
<root>
	<element attr="value">text</element>
</root>`

	doc, err := Parse("root.xml", []byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Path() != "root.xml" {
		t.Errorf("Path = %q, want root.xml", doc.Path())
	}
	if doc.Root() == nil || doc.Root().Name() != "root" {
		t.Fatalf("Root element not found")
	}
}

// TestParseInvalid verifies malformed XML is rejected with the file named.
func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"unclosed tag", "<root><element></root>"},
		{"mismatched tags", "<root></other>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.xml", []byte(tt.xml))
			if err == nil {
				t.Fatal("Parse should fail for invalid XML")
			}
			if !strings.Contains(err.Error(), "bad.xml") {
				t.Errorf("error should name the file: %v", err)
			}
		})
	}
}

// TestLoadMissingFile verifies a missing file is a load error, not a panic.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.xml"))
	if err == nil {
		t.Fatal("Load should fail for a missing file")
	}
}

// TestLoadFile verifies loading from disk keeps the path.
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xml")
	if err := os.WriteFile(path, []byte("<root/>"), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.Path() != path {
		t.Errorf("Path = %q, want %q", doc.Path(), path)
	}
}

// TestElementLines verifies every element reports its source line.
func TestElementLines(t *testing.T) {
	data := `<?xml version="1.0"?>
<meta>
  <letterDesc letter="L1">
    <sender ref="P1"/>
    <receiver ref="P2"/>
  </letterDesc>
  <letterDesc letter="L2"/>
</meta>`

	doc, err := Parse("meta.xml", []byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := map[string]int{
		"sender":   4,
		"receiver": 5,
	}
	for name, line := range want {
		nodes := doc.MustFind("//" + name)
		if len(nodes) != 1 {
			t.Fatalf("found %d %s elements, want 1", len(nodes), name)
		}
		if got := nodes[0].Line(); got != line {
			t.Errorf("%s line = %d, want %d", name, got, line)
		}
	}

	descs := doc.MustFind("//letterDesc")
	if len(descs) != 2 {
		t.Fatalf("found %d letterDesc elements, want 2", len(descs))
	}
	if descs[0].Line() != 3 || descs[1].Line() != 7 {
		t.Errorf("letterDesc lines = %d, %d; want 3, 7", descs[0].Line(), descs[1].Line())
	}
}

// TestAttrPresence verifies Attr distinguishes absent from empty.
func TestAttrPresence(t *testing.T) {
	doc, err := Parse("t.xml", []byte(`<root><page index=""/><page index="3"/><page/></root>`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	pages := doc.MustFind("//page")
	if len(pages) != 3 {
		t.Fatalf("found %d pages, want 3", len(pages))
	}

	if v, ok := pages[0].Attr("index"); !ok || v != "" {
		t.Errorf("pages[0]: got (%q, %v), want present empty", v, ok)
	}
	if v, ok := pages[1].Attr("index"); !ok || v != "3" {
		t.Errorf("pages[1]: got (%q, %v), want (3, true)", v, ok)
	}
	if _, ok := pages[2].Attr("index"); ok {
		t.Error("pages[2]: attribute should be absent")
	}
}

// TestWalkExcludesRoot verifies Walk visits descendants in document order
// but never the node itself.
func TestWalkExcludesRoot(t *testing.T) {
	doc, err := Parse("t.xml", []byte(`<block><a/><b><c/></b></block>`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	block := doc.Root()

	var visited []string
	block.Walk(func(n *Node) {
		visited = append(visited, n.Name())
	})

	want := []string{"a", "b", "c"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}
}

// TestFindRelative verifies element-relative queries.
func TestFindRelative(t *testing.T) {
	doc, err := Parse("t.xml", []byte(`<root><outer><hand ref="H1"/></outer><hand ref="H2"/></root>`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	outer := doc.MustFind("//outer")[0]
	hands := outer.MustFind(".//hand")
	if len(hands) != 1 || hands[0].AttrValue("ref") != "H1" {
		t.Errorf("relative query returned %d hands, want the nested one only", len(hands))
	}
}
