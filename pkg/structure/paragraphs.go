package structure

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lehigh-university-libraries/bookstruct/pkg/ocr"
)

var (
	numberedMarker = regexp.MustCompile(`^(\d+)\.\s+`)
	bulletMarker   = regexp.MustCompile(`^([-•–])\s+`)
)

const indentUnit = 4

// buildParagraph turns a run of contiguous non-blank lines into one
// paragraph. Kind and level come from the first line's leading characters;
// markers collect the numbering or bullet tokens of every line in the run.
// Lines are joined with the stitcher, so a word hyphenated across a line
// break inside the paragraph is rejoined.
func buildParagraph(lines []string, seq int) Paragraph {
	first := lines[0]
	leading := leadingSpaces(first)
	trimmedFirst := strings.TrimSpace(first)

	kind := ParagraphRegular
	switch {
	case numberedMarker.MatchString(trimmedFirst):
		kind = ParagraphNumbered
	case bulletMarker.MatchString(trimmedFirst):
		kind = ParagraphBulleted
	case leading >= indentUnit:
		kind = ParagraphIndented
	}

	var markers []string
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if m := numberedMarker.FindStringSubmatch(trimmed); m != nil {
			markers = appendUnique(markers, m[1]+".")
		} else if m := bulletMarker.FindStringSubmatch(trimmed); m != nil {
			markers = appendUnique(markers, m[1])
		}
		parts = append(parts, trimmed)
	}

	return Paragraph{
		ID:      fmt.Sprintf("p-%d", seq),
		Text:    ocr.Stitch(parts),
		Kind:    kind,
		Level:   leading / indentUnit,
		Markers: markers,
	}
}

func leadingSpaces(line string) int {
	count := 0
	for _, r := range line {
		switch r {
		case ' ':
			count++
		case '\t':
			count += indentUnit
		default:
			return count
		}
	}
	return count
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
