package ocr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Stitch joins page or line fragments into continuous text, resolving
// hyphenation at fragment boundaries: a fragment ending in "-" followed by a
// fragment starting with a lowercase letter is a broken word, so the hyphen
// is dropped and the halves joined directly. Any other boundary gets a
// single space. Empty fragments are skipped. The lowercase test covers all
// Unicode letters, not just ASCII, so "Gebäu-" + "de" joins correctly.
func Stitch(fragments []string) string {
	var b strings.Builder

	for _, f := range fragments {
		if f == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(f)
			continue
		}

		joined := b.String()
		if strings.HasSuffix(joined, "-") && startsWithLower(f) {
			result := joined[:len(joined)-1] + f
			b.Reset()
			b.WriteString(result)
		} else {
			b.WriteString(" ")
			b.WriteString(f)
		}
	}

	return b.String()
}

// StitchPair joins exactly two fragments under the same rule.
func StitchPair(a, b string) string {
	return Stitch([]string{a, b})
}

func startsWithLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLower(r)
}
