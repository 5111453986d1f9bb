// Package structure infers the structural model of a book from recognized
// text: headers and their hierarchy, footnotes, paragraphs, and dialogue
// turns.
package structure

// HeaderKind classifies a header line.
type HeaderKind string

const (
	KindChapter    HeaderKind = "chapter"
	KindLecture    HeaderKind = "lecture"
	KindSection    HeaderKind = "section"
	KindSubsection HeaderKind = "subsection"
)

// Level returns the hierarchy depth for a header kind.
func (k HeaderKind) Level() int {
	switch k {
	case KindChapter, KindLecture:
		return 1
	case KindSection:
		return 2
	case KindSubsection:
		return 3
	}
	return 0
}

// FootnoteKind classifies the marker style of a footnote.
type FootnoteKind string

const (
	FootnoteNumeric     FootnoteKind = "numeric"
	FootnoteAlphabetic  FootnoteKind = "alphabetic"
	FootnoteSymbol      FootnoteKind = "symbol"
	FootnoteSuperscript FootnoteKind = "superscript"
)

// ParagraphKind classifies a paragraph by its leading characters.
type ParagraphKind string

const (
	ParagraphRegular  ParagraphKind = "regular"
	ParagraphNumbered ParagraphKind = "numbered"
	ParagraphBulleted ParagraphKind = "bulleted"
	ParagraphIndented ParagraphKind = "indented"
)

// NumberingStyle describes the numbering scheme used by the headers.
type NumberingStyle string

const (
	NumberingNumeric    NumberingStyle = "numeric"
	NumberingRoman      NumberingStyle = "roman"
	NumberingAlphabetic NumberingStyle = "alphabetic"
	NumberingMixed      NumberingStyle = "mixed"
)

// Header is one detected header with its nested children. Children are
// ordered by line number and always carry a strictly greater level.
type Header struct {
	ID         string     `json:"id" yaml:"id"`
	Kind       HeaderKind `json:"kind" yaml:"kind"`
	Level      int        `json:"level" yaml:"level"`
	Title      string     `json:"title" yaml:"title"`
	Number     string     `json:"number,omitempty" yaml:"number,omitempty"`
	Line       int        `json:"line" yaml:"line"`
	Confidence float64    `json:"confidence" yaml:"confidence"`
	PatternID  string     `json:"pattern_id" yaml:"pattern_id"`
	Children   []*Header  `json:"children,omitempty" yaml:"children,omitempty"`
}

// Footnote is one detected footnote body line.
type Footnote struct {
	ID         string       `json:"id" yaml:"id"`
	Reference  string       `json:"reference" yaml:"reference"`
	Text       string       `json:"text" yaml:"text"`
	Kind       FootnoteKind `json:"kind" yaml:"kind"`
	Confidence float64      `json:"confidence" yaml:"confidence"`
	Line       int          `json:"line" yaml:"line"`
}

// Paragraph is a block of contiguous non-blank lines.
type Paragraph struct {
	ID      string        `json:"id" yaml:"id"`
	Text    string        `json:"text" yaml:"text"`
	Kind    ParagraphKind `json:"kind" yaml:"kind"`
	Level   int           `json:"level" yaml:"level"`
	Markers []string      `json:"markers,omitempty" yaml:"markers,omitempty"`
}

// Dialogue is one speaker turn.
type Dialogue struct {
	ID          string  `json:"id" yaml:"id"`
	Speaker     string  `json:"speaker" yaml:"speaker"`
	Text        string  `json:"text" yaml:"text"`
	SpeakerNote string  `json:"speaker_note,omitempty" yaml:"speaker_note,omitempty"`
	Confidence  float64 `json:"confidence" yaml:"confidence"`
}

// Hierarchy aggregates the header tree.
type Hierarchy struct {
	MaxLevel            int                `json:"max_level" yaml:"max_level"`
	Counts              map[HeaderKind]int `json:"counts" yaml:"counts"`
	NumberingStyle      NumberingStyle     `json:"numbering_style" yaml:"numbering_style"`
	ConsistentNumbering bool               `json:"consistent_numbering" yaml:"consistent_numbering"`
}

// Book is the complete structural model of one document pass. It is built
// fresh per pass and never mutated after Extract returns it.
type Book struct {
	Headers    []*Header   `json:"headers" yaml:"headers"`
	Footnotes  []Footnote  `json:"footnotes" yaml:"footnotes"`
	Paragraphs []Paragraph `json:"paragraphs" yaml:"paragraphs"`
	Dialogues  []Dialogue  `json:"dialogues" yaml:"dialogues"`
	Hierarchy  Hierarchy   `json:"hierarchy" yaml:"hierarchy"`
}

// FlatHeaders returns every header in the tree in line order.
func (b *Book) FlatHeaders() []*Header {
	var flat []*Header
	var walk func(hs []*Header)
	walk = func(hs []*Header) {
		for _, h := range hs {
			flat = append(flat, h)
			walk(h.Children)
		}
	}
	walk(b.Headers)
	return flat
}
