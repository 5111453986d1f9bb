package render

import (
	"reflect"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/lehigh-university-libraries/bookstruct/pkg/structure"
)

func testBook() *structure.Book {
	sec := &structure.Header{
		ID: "h-2", Kind: structure.KindSection, Level: 2,
		Title: "Überblick", Number: "1.1",
	}
	ch := &structure.Header{
		ID: "h-1", Kind: structure.KindChapter, Level: 1,
		Title: "Einleitung", Number: "1",
		Children: []*structure.Header{sec},
	}

	return &structure.Book{
		Headers: []*structure.Header{ch},
		Paragraphs: []structure.Paragraph{
			{ID: "p-1", Text: "Ein Absatz mit Inhalt.", Kind: structure.ParagraphRegular},
		},
		Dialogues: []structure.Dialogue{
			{ID: "d-1", Speaker: "Sokrates", SpeakerNote: "lachend", Text: "Gewiss doch.", Confidence: 0.8},
			{ID: "d-2", Speaker: "Phaidros", Text: "So sei es.", Confidence: 0.7},
		},
		Footnotes: []structure.Footnote{
			{ID: "fn-1", Reference: "1", Text: "Eine Anmerkung.", Kind: structure.FootnoteNumeric},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(testBook())

	for _, want := range []string{
		"# 1 Einleitung",
		"## 1.1 Überblick",
		"Ein Absatz mit Inhalt.",
		"**Sokrates** *(lachend)*: Gewiss doch.",
		"**Phaidros**: So sei es.",
		"---",
		"[^1]: Eine Anmerkung.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() output missing %q:\n%s", want, md)
		}
	}

	if !strings.HasSuffix(md, "\n") || strings.HasSuffix(md, "\n\n") {
		t.Error("Markdown() output should end with exactly one newline")
	}
}

func TestMarkdownHeadingLevels(t *testing.T) {
	md := Markdown(testBook())

	doc := goldmark.New().Parser().Parse(gmtext.NewReader([]byte(md)))

	var levels []int
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			levels = append(levels, h.Level)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("ast.Walk() error = %v", err)
	}

	if !reflect.DeepEqual(levels, []int{1, 2}) {
		t.Errorf("heading levels = %v, want [1 2]", levels)
	}
}

func TestMarkdownNumberAlreadyInTitle(t *testing.T) {
	book := &structure.Book{
		Headers: []*structure.Header{
			{Kind: structure.KindSection, Level: 2, Title: "1.1 Überblick", Number: "1.1"},
		},
	}

	md := Markdown(book)
	if !strings.Contains(md, "## 1.1 Überblick") || strings.Contains(md, "1.1 1.1") {
		t.Errorf("Markdown() doubled the header number:\n%s", md)
	}
}

func TestMarkdownLevelClamping(t *testing.T) {
	book := &structure.Book{
		Headers: []*structure.Header{
			{Title: "Ohne Stufe", Level: 0},
			{Title: "Zu tief", Level: 9},
		},
	}

	md := Markdown(book)
	if !strings.Contains(md, "# Ohne Stufe") {
		t.Errorf("level 0 should render as a level 1 heading:\n%s", md)
	}
	if !strings.Contains(md, "###### Zu tief") || strings.Contains(md, "#######") {
		t.Errorf("deep levels should clamp to six:\n%s", md)
	}
}

func TestMarkdownEmptyBook(t *testing.T) {
	md := Markdown(&structure.Book{})
	if md != "\n" {
		t.Errorf("Markdown() of an empty book = %q, want a single newline", md)
	}
}
