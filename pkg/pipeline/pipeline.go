// Package pipeline runs the full reconstruction pass over one document:
// geometric annotation, stitching, error correction, structure extraction,
// and quality validation.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/bookstruct/pkg/ocr"
	"github.com/lehigh-university-libraries/bookstruct/pkg/quality"
	"github.com/lehigh-university-libraries/bookstruct/pkg/rules"
	"github.com/lehigh-university-libraries/bookstruct/pkg/structure"
)

// Options bundles the tunables of one pipeline instance.
type Options struct {
	Detection ocr.DetectionConfig
	Weights   quality.Weights
	// Workers bounds concurrent per-page annotation. Page results are
	// always reassembled in page order.
	Workers int
}

// DefaultOptions returns the standard pipeline configuration.
func DefaultOptions() Options {
	return Options{
		Detection: ocr.DefaultDetectionConfig(),
		Weights:   quality.DefaultWeights(),
		Workers:   4,
	}
}

// Result is the complete outcome of one document pass. It is only ever
// returned whole; a cancelled pass yields no partial result.
type Result struct {
	Book          *structure.Book `json:"book" yaml:"book"`
	Report        quality.Report  `json:"report" yaml:"report"`
	Corrections   int             `json:"corrections" yaml:"corrections"`
	CorrectedText string          `json:"-" yaml:"-"`
}

// Pipeline holds the compiled components for one language. It is safe for
// concurrent use across documents: all state is read-only after New.
type Pipeline struct {
	ruleSet   rules.RuleSet
	opts      Options
	corrector *ocr.Corrector
	extractor *structure.Extractor
	validator *quality.Validator
	log       *slog.Logger
}

// New compiles a pipeline for the given rule set.
func New(rs rules.RuleSet, opts Options, log *slog.Logger) (*Pipeline, error) {
	if log == nil {
		log = slog.Default()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	corrector, err := ocr.NewCorrector(rs.Substitutions)
	if err != nil {
		return nil, fmt.Errorf("failed to compile substitutions for %q: %w", rs.Language, err)
	}
	extractor, err := structure.NewExtractor(rs, log)
	if err != nil {
		return nil, fmt.Errorf("failed to compile patterns for %q: %w", rs.Language, err)
	}

	return &Pipeline{
		ruleSet:   rs,
		opts:      opts,
		corrector: corrector,
		extractor: extractor,
		validator: quality.NewValidator(opts.Weights, rs.Abbreviations, log),
		log:       log,
	}, nil
}

// ProcessText runs the pass over plain recognized text. Without geometry
// the annotation stage is skipped.
func (p *Pipeline) ProcessText(ctx context.Context, text string) (*Result, error) {
	return p.process(ctx, text, nil)
}

// ProcessPages runs the pass over per-page recognizer output. Pages are
// sorted by page number first; concatenating out of order would corrupt
// hyphenation resolution and line numbering.
func (p *Pipeline) ProcessPages(ctx context.Context, pages []ocr.Page) (*Result, error) {
	sorted := make([]ocr.Page, len(pages))
	copy(sorted, pages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})

	annotated, err := p.AnnotatePages(ctx, sorted)
	if err != nil {
		return nil, err
	}

	doc := assembleDocument(sorted, annotated)
	return p.process(ctx, doc.text(), doc.superscripts())
}

func (p *Pipeline) process(ctx context.Context, text string, superscripts map[int][]string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	corrected, corrections := p.corrector.Apply(text)
	p.log.Debug("correction stage completed", "language", p.ruleSet.Language, "corrections", corrections)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var book *structure.Book
	if superscripts == nil {
		book = p.extractor.Extract(corrected)
	} else {
		book = p.extractor.ExtractAnnotated(corrected, superscripts)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := p.validator.Validate(corrected, text, quality.EnhancementStats{})

	return &Result{
		Book:          book,
		Report:        report,
		Corrections:   corrections,
		CorrectedText: corrected,
	}, nil
}

// docLine pairs a text line with the superscript markers detected on it.
type docLine struct {
	text  string
	marks []string
}

type document struct {
	lines []docLine
}

func (d document) text() string {
	parts := make([]string, len(d.lines))
	for i, l := range d.lines {
		parts[i] = l.text
	}
	return strings.Join(parts, "\n")
}

func (d document) superscripts() map[int][]string {
	marks := make(map[int][]string)
	for i, l := range d.lines {
		if len(l.marks) > 0 {
			marks[i+1] = l.marks
		}
	}
	return marks
}

// assembleDocument flattens annotated pages into a line sequence,
// resolving hyphenation across page boundaries: when the stitcher joins
// a page's last line and the next page's first line into one word, the
// two lines collapse into one.
func assembleDocument(pages []ocr.Page, annotated [][]ocr.Line) document {
	var doc document

	for i, page := range pages {
		var pageLines []docLine
		if len(annotated[i]) > 0 {
			for _, line := range annotated[i] {
				pageLines = append(pageLines, docLine{
					text:  line.Text(),
					marks: line.Superscripts(),
				})
			}
		} else {
			for _, raw := range strings.Split(page.Text, "\n") {
				pageLines = append(pageLines, docLine{text: raw})
			}
		}

		doc.lines = appendPage(doc.lines, pageLines)
	}

	return doc
}

func appendPage(lines, pageLines []docLine) []docLine {
	if len(lines) == 0 || len(pageLines) == 0 {
		return append(lines, pageLines...)
	}

	last := lines[len(lines)-1]
	first := pageLines[0]
	// Only a hyphenated non-empty line pair is a merge candidate. A blank
	// last line is a paragraph separator and must survive the boundary.
	if last.text == "" || first.text == "" || !strings.HasSuffix(last.text, "-") {
		return append(lines, pageLines...)
	}

	joined := ocr.StitchPair(last.text, first.text)
	if joined != last.text+" "+first.text {
		// Hyphenation resolved across the boundary; merge the lines.
		lines[len(lines)-1] = docLine{
			text:  joined,
			marks: append(append([]string{}, last.marks...), first.marks...),
		}
		return append(lines, pageLines[1:]...)
	}

	return append(lines, pageLines...)
}
