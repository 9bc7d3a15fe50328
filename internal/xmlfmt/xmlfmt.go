// Package xmlfmt rewrites whitespace in edition files. It is a textual
// companion to the validator: it produces and consumes the same XML files
// but carries no semantic model and takes no part in validation.
package xmlfmt

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/briefedition/verweislint/core/xmldoc"
)

// Mode names a formatting profile.
type Mode string

const (
	// ModeBriefe applies the line-oriented rewrite the transcription
	// file needs: page/line markers each start a line, letterText blocks
	// are separated by a blank line, mixed text content stays untouched.
	ModeBriefe Mode = "briefe"
	// ModeMeta pretty-prints the metadata document.
	ModeMeta Mode = "meta"
	// ModeReferences pretty-prints the references document.
	ModeReferences Mode = "references"
)

// structuralTags are the elements the briefe rewrite aligns on line
// boundaries. Everything else is transcribed letter text and must not be
// reflowed.
var structuralTags = []string{"page", "line", "letterText", "opus", "document"}

type tagRules struct {
	stripBeforeAny  *regexp.Regexp // whitespace before any tag of this name
	stripBeforeEnd  *regexp.Regexp
	stripAfterOpen  *regexp.Regexp // after opening tags only, not self-closing
	stripAfterEnd   *regexp.Regexp
	trimAfterSelf   *regexp.Regexp
	breakBeforeAny  *regexp.Regexp
	breakBeforeSelf *regexp.Regexp
	breakBeforeEnd  *regexp.Regexp
}

var rules []tagRules

var (
	breakAfterPage   = regexp.MustCompile(`(<page[^>]*/>)([^\n])`)
	blankBeforeBlock = regexp.MustCompile(`(\n)(<letterText[^>]*>)`)
)

func init() {
	for _, tag := range structuralTags {
		rules = append(rules, tagRules{
			stripBeforeAny:  regexp.MustCompile(`\s*(<` + tag + `[^>]*>)`),
			stripBeforeEnd:  regexp.MustCompile(`\s*(</` + tag + `>)`),
			stripAfterOpen:  regexp.MustCompile(`(<` + tag + `[^/>]*>)\s*`),
			stripAfterEnd:   regexp.MustCompile(`(</` + tag + `>)\s*`),
			trimAfterSelf:   regexp.MustCompile(`<` + tag + `[^>]*/>\s*`),
			breakBeforeAny:  regexp.MustCompile(`([^\n])(<` + tag + `[^>]*>)`),
			breakBeforeSelf: regexp.MustCompile(`([^\n])(<` + tag + `[^>]*/>)`),
			breakBeforeEnd:  regexp.MustCompile(`([^\n])(</` + tag + `>)`),
		})
	}
}

// Briefe rewrites whitespace around the structural tags of the
// transcription file. The transform is idempotent.
func Briefe(content []byte) []byte {
	s := string(content)

	for _, r := range rules {
		s = r.stripBeforeAny.ReplaceAllString(s, "$1")
		s = r.stripBeforeEnd.ReplaceAllString(s, "$1")
		s = r.stripAfterOpen.ReplaceAllString(s, "$1")
		s = r.stripAfterEnd.ReplaceAllString(s, "$1")
		s = r.trimAfterSelf.ReplaceAllStringFunc(s, func(m string) string {
			return strings.TrimRight(m, " \t\r\n")
		})
	}

	for _, r := range rules {
		s = r.breakBeforeAny.ReplaceAllString(s, "$1\n$2")
		s = r.breakBeforeSelf.ReplaceAllString(s, "$1\n$2")
		s = r.breakBeforeEnd.ReplaceAllString(s, "$1\n$2")
	}

	s = breakAfterPage.ReplaceAllString(s, "$1\n$2")
	s = blankBeforeBlock.ReplaceAllString(s, "$1\n$2")

	return []byte(s)
}

// Pretty pretty-prints an XML document with two-space indentation.
func Pretty(data []byte) ([]byte, error) {
	return xmldoc.Format(data, xmldoc.FormatOptions{Indent: "  "})
}

// File rewrites the file at path in place using the given mode.
func File(path string, mode Mode) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var out []byte
	switch mode {
	case ModeBriefe:
		out = Briefe(data)
	case ModeMeta, ModeReferences:
		out, err = Pretty(data)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format mode: %s", mode)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
