package structure

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lehigh-university-libraries/bookstruct/pkg/rules"
)

// Header confidence scoring, per the extraction heuristics: a pattern match
// starts at the base and earns boosts for corroborating signals.
const (
	headerBaseConfidence    = 0.6
	headerGroupBoost        = 0.2
	headerShortLineBoost    = 0.1
	headerKeywordBoost      = 0.2
	headerShortLineMaxChars = 100
)

type headerPattern struct {
	id       string
	kind     HeaderKind
	re       *regexp.Regexp
	keywords []string
}

type footnotePattern struct {
	id   string
	kind FootnoteKind
	re   *regexp.Regexp
}

type dialoguePattern struct {
	id string
	re *regexp.Regexp
}

// Extractor classifies recognized text lines into structural elements.
// Patterns come from an injected rule set and are compiled once; the
// extractor holds no mutable state across Extract calls.
type Extractor struct {
	headers   []headerPattern
	footnotes []footnotePattern
	dialogues []dialoguePattern
	log       *slog.Logger
}

// NewExtractor compiles the rule set's pattern groups. Patterns are
// evaluated in rule-set order within each group; groups run in priority
// order: headers, then footnotes, then dialogue.
func NewExtractor(rs rules.RuleSet, log *slog.Logger) (*Extractor, error) {
	if log == nil {
		log = slog.Default()
	}
	e := &Extractor{log: log}

	for _, p := range rs.HeaderPatterns {
		kind := HeaderKind(p.Kind)
		if kind.Level() == 0 {
			return nil, fmt.Errorf("header pattern %q has unknown kind %q", p.ID, p.Kind)
		}
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("header pattern %q is invalid: %w", p.ID, err)
		}
		e.headers = append(e.headers, headerPattern{id: p.ID, kind: kind, re: re, keywords: p.Keywords})
	}

	for _, p := range rs.FootnotePatterns {
		switch FootnoteKind(p.Kind) {
		case FootnoteNumeric, FootnoteAlphabetic, FootnoteSymbol, FootnoteSuperscript:
		default:
			return nil, fmt.Errorf("footnote pattern %q has unknown kind %q", p.ID, p.Kind)
		}
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("footnote pattern %q is invalid: %w", p.ID, err)
		}
		e.footnotes = append(e.footnotes, footnotePattern{id: p.ID, kind: FootnoteKind(p.Kind), re: re})
	}

	for _, p := range rs.DialoguePatterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("dialogue pattern %q is invalid: %w", p.ID, err)
		}
		e.dialogues = append(e.dialogues, dialoguePattern{id: p.ID, re: re})
	}

	return e, nil
}

// Extract builds the structural model of the given text.
func (e *Extractor) Extract(text string) *Book {
	return e.extract(text, nil)
}

// ExtractAnnotated additionally consumes geometric superscript markers,
// keyed by 1-based line number. A line opening with one of its markers
// is a footnote even when the marker glyph is a plain digit the footnote
// patterns would not recognize.
func (e *Extractor) ExtractAnnotated(text string, superscripts map[int][]string) *Book {
	return e.extract(text, superscripts)
}

func (e *Extractor) extract(text string, superscripts map[int][]string) *Book {
	book := &Book{
		Footnotes:  []Footnote{},
		Paragraphs: []Paragraph{},
		Dialogues:  []Dialogue{},
	}

	var flat []*Header
	var para []string
	headerSeq, footnoteSeq, paraSeq, dialogueSeq := 0, 0, 0, 0

	flush := func() {
		if len(para) == 0 {
			return
		}
		paraSeq++
		book.Paragraphs = append(book.Paragraphs, buildParagraph(para, paraSeq))
		para = nil
	}

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		if strings.TrimSpace(raw) == "" {
			flush()
			continue
		}

		header, matched, skip := e.matchHeader(raw, lineNo)
		if skip {
			continue
		}
		if matched {
			flush()
			headerSeq++
			header.ID = fmt.Sprintf("h-%d", headerSeq)
			flat = append(flat, header)
			continue
		}

		if fn, ok := e.matchGeometricFootnote(raw, lineNo, superscripts); ok {
			flush()
			footnoteSeq++
			fn.ID = fmt.Sprintf("fn-%d", footnoteSeq)
			book.Footnotes = append(book.Footnotes, fn)
			continue
		}

		fn, matched, skip := e.matchFootnote(raw, lineNo)
		if skip {
			continue
		}
		if matched {
			flush()
			footnoteSeq++
			fn.ID = fmt.Sprintf("fn-%d", footnoteSeq)
			book.Footnotes = append(book.Footnotes, fn)
			continue
		}

		if d, ok := e.matchDialogue(raw); ok {
			flush()
			dialogueSeq++
			d.ID = fmt.Sprintf("d-%d", dialogueSeq)
			book.Dialogues = append(book.Dialogues, d)
			continue
		}

		para = append(para, raw)
	}
	flush()

	book.Headers = buildTree(flat)
	book.Hierarchy = buildHierarchy(flat)
	return book
}

// matchHeader tries the header patterns in order. The third return value
// reports an extraction failure: the pattern matched but lacks the capture
// groups its kind requires, so the line is skipped and logged rather than
// misfiled.
func (e *Extractor) matchHeader(line string, lineNo int) (*Header, bool, bool) {
	for _, p := range e.headers {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if p.re.NumSubexp() < 1 {
			e.log.Warn("header pattern matched without capture groups, skipping line",
				"line", lineNo, "pattern", p.id)
			return nil, false, true
		}

		number := strings.TrimSpace(m[1])
		title := ""
		if len(m) > 2 {
			title = strings.TrimSpace(m[2])
		}
		if title == "" {
			title = strings.TrimSpace(line)
		}

		confidence := headerBaseConfidence
		if nonEmptyGroups(m) >= 2 {
			confidence += headerGroupBoost
		}
		if len(line) < headerShortLineMaxChars {
			confidence += headerShortLineBoost
		}
		if containsKeyword(line, p.keywords) {
			confidence += headerKeywordBoost
		}
		if confidence > 1.0 {
			confidence = 1.0
		}

		return &Header{
			Kind:       p.kind,
			Level:      p.kind.Level(),
			Title:      title,
			Number:     number,
			Line:       lineNo,
			Confidence: confidence,
			PatternID:  p.id,
		}, true, false
	}
	return nil, false, false
}

func (e *Extractor) matchFootnote(line string, lineNo int) (Footnote, bool, bool) {
	for _, p := range e.footnotes {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if p.re.NumSubexp() < 2 {
			e.log.Warn("footnote pattern matched without reference and text groups, skipping line",
				"line", lineNo, "pattern", p.id)
			return Footnote{}, false, true
		}

		reference := strings.TrimSpace(m[1])
		body := strings.TrimSpace(m[2])
		if reference == "" || body == "" {
			continue
		}

		return Footnote{
			Reference:  reference,
			Text:       body,
			Kind:       p.kind,
			Confidence: 0.8,
			Line:       lineNo,
		}, true, false
	}
	return Footnote{}, false, false
}

// matchGeometricFootnote consults the superscript markers the geometric
// detector found on this line. A marker standing alone at the start of the
// line is a footnote reference regardless of its glyph; a marker that is
// merely a prefix of the first word ("1" in "10 Jahre") is not.
func (e *Extractor) matchGeometricFootnote(line string, lineNo int, superscripts map[int][]string) (Footnote, bool) {
	marks := superscripts[lineNo]
	if len(marks) == 0 {
		return Footnote{}, false
	}
	trimmed := strings.TrimSpace(line)
	for _, mark := range marks {
		if mark == "" || !strings.HasPrefix(trimmed, mark) {
			continue
		}
		rest := trimmed[len(mark):]
		if rest == "" {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsSpace(r) {
			continue
		}
		body := strings.TrimSpace(rest)
		if body == "" {
			continue
		}
		return Footnote{
			Reference:  mark,
			Text:       body,
			Kind:       FootnoteSuperscript,
			Confidence: 0.9,
			Line:       lineNo,
		}, true
	}
	return Footnote{}, false
}

func (e *Extractor) matchDialogue(line string) (Dialogue, bool) {
	for _, p := range e.dialogues {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		var speaker, note, text string
		switch p.re.NumSubexp() {
		case 3:
			speaker, note, text = m[1], m[2], m[3]
		case 2:
			speaker, text = m[1], m[2]
		default:
			continue
		}

		speaker = strings.TrimSpace(speaker)
		text = strings.TrimSpace(text)
		note = strings.TrimSpace(note)
		if speaker == "" || text == "" {
			continue
		}

		confidence := 0.7
		if note != "" {
			confidence += 0.1
		}

		return Dialogue{
			Speaker:     speaker,
			Text:        text,
			SpeakerNote: note,
			Confidence:  confidence,
		}, true
	}
	return Dialogue{}, false
}

func nonEmptyGroups(m []string) int {
	count := 0
	for _, g := range m[1:] {
		if strings.TrimSpace(g) != "" {
			count++
		}
	}
	return count
}

func containsKeyword(line string, keywords []string) bool {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
