package quality

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	sentenceEnd  = regexp.MustCompile(`[.!?]+`)
	paragraphSep = regexp.MustCompile(`\n\s*\n`)
	artifactRun  = regexp.MustCompile(`[|~]{2,}|_{3,}|\.{4,}`)
	spaceRun     = regexp.MustCompile(` {3,}`)
)

// abbreviationDot protects sentence-internal periods during splitting.
const abbreviationDot = ''

// countWords counts whitespace-separated tokens.
func countWords(text string) int {
	return len(strings.Fields(text))
}

// splitSentences splits text on terminal punctuation, treating the
// configured abbreviations ("z.B.", "Dr.", ...) as sentence-internal.
func splitSentences(text string, abbreviations []string) []string {
	protected := text
	for _, abbr := range abbreviations {
		masked := strings.ReplaceAll(abbr, ".", string(abbreviationDot))
		protected = strings.ReplaceAll(protected, abbr, masked)
	}

	var sentences []string
	for _, part := range sentenceEnd.Split(protected, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sentences = append(sentences, strings.ReplaceAll(part, string(abbreviationDot), "."))
	}
	return sentences
}

// countParagraphs counts blank-line separated blocks.
func countParagraphs(text string) int {
	count := 0
	for _, block := range paragraphSep.Split(text, -1) {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}

// readabilityScore approximates readability from average words per
// sentence: 1.0 inside the 10-25 band, decaying linearly with distance
// from the band edge. This is deliberately not a full Flesch computation.
func readabilityScore(wordCount, sentenceCount int) float64 {
	if wordCount == 0 || sentenceCount == 0 {
		return 0
	}
	avg := float64(wordCount) / float64(sentenceCount)

	const low, high, falloff = 10.0, 25.0, 30.0
	var distance float64
	switch {
	case avg < low:
		distance = low - avg
	case avg > high:
		distance = avg - high
	default:
		return 1.0
	}
	score := 1.0 - distance/falloff
	if score < 0 {
		return 0
	}
	return score
}

// structureScore rewards paragraph segmentation, saturating at ten
// paragraphs.
func structureScore(paragraphCount int) float64 {
	score := float64(paragraphCount) / 10.0
	if score > 1 {
		return 1
	}
	return score
}

// cleanlinessScore penalizes leftover recognizer debris: unprintable
// runes and runs of repeated artifact punctuation.
func cleanlinessScore(text string) float64 {
	total := utf8.RuneCountInString(text)
	if total == 0 {
		return 1
	}

	problematic := 0
	for _, r := range text {
		if isGarbageRune(r) {
			problematic++
		}
	}
	runs := len(artifactRun.FindAllString(text, -1))

	score := 1.0 - float64(problematic+runs)/float64(total)
	if score < 0 {
		return 0
	}
	return score
}

// isGarbageRune mirrors the debris classes recognizers leave behind:
// control bytes outside normal whitespace, replacement characters, and
// private-use codepoints.
func isGarbageRune(r rune) bool {
	if r == utf8.RuneError || r == '�' {
		return true
	}
	if r >= 0xE000 && r <= 0xF8FF {
		return true
	}
	if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
		return true
	}
	return false
}

// longSentenceRatio returns the share of sentences longer than the word
// limit.
func longSentenceRatio(sentences []string, limit int) float64 {
	if len(sentences) == 0 {
		return 0
	}
	long := 0
	for _, s := range sentences {
		if len(strings.Fields(s)) > limit {
			long++
		}
	}
	return float64(long) / float64(len(sentences))
}

// uniqueLongWords returns the lowercased set of words longer than the
// given rune count.
func uniqueLongWords(text string, minLen int) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		w = strings.ToLower(strings.Trim(w, `.,;:!?"'()[]`))
		if utf8.RuneCountInString(w) > minLen {
			words[w] = true
		}
	}
	return words
}

// missingWordRatio returns the fraction of original's unique long words
// absent from processed.
func missingWordRatio(original, processed string, minLen int) float64 {
	origWords := uniqueLongWords(original, minLen)
	if len(origWords) == 0 {
		return 0
	}
	procWords := uniqueLongWords(processed, minLen)

	missing := 0
	for w := range origWords {
		if !procWords[w] {
			missing++
		}
	}
	return float64(missing) / float64(len(origWords))
}

// countLines counts non-empty lines.
func countLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// lineEndingStyles counts the distinct newline conventions present.
func lineEndingStyles(text string) int {
	crlf := strings.Count(text, "\r\n")
	lf := strings.Count(text, "\n") - crlf
	cr := strings.Count(text, "\r") - crlf

	styles := 0
	for _, n := range []int{crlf, lf, cr} {
		if n > 0 {
			styles++
		}
	}
	return styles
}
