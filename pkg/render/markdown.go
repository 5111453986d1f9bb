// Package render emits reconstructed book structures as Markdown.
package render

import (
	"fmt"
	"strings"

	"github.com/lehigh-university-libraries/bookstruct/pkg/structure"
)

// Markdown renders the book as a Markdown document: headers become ATX
// headings at their hierarchy level, dialogues bold the speaker, and
// footnotes use reference-style footnote syntax.
func Markdown(book *structure.Book) string {
	var b strings.Builder

	writeHeaders(&b, book.Headers)

	for _, p := range book.Paragraphs {
		b.WriteString(p.Text)
		b.WriteString("\n\n")
	}

	for _, d := range book.Dialogues {
		if d.SpeakerNote != "" {
			fmt.Fprintf(&b, "**%s** *(%s)*: %s\n\n", d.Speaker, d.SpeakerNote, d.Text)
		} else {
			fmt.Fprintf(&b, "**%s**: %s\n\n", d.Speaker, d.Text)
		}
	}

	if len(book.Footnotes) > 0 {
		b.WriteString("---\n\n")
		for _, fn := range book.Footnotes {
			fmt.Fprintf(&b, "[^%s]: %s\n", fn.Reference, fn.Text)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeHeaders(b *strings.Builder, headers []*structure.Header) {
	for _, h := range headers {
		level := h.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}

		title := h.Title
		if h.Number != "" && !strings.HasPrefix(title, h.Number) {
			title = h.Number + " " + title
		}

		fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", level), title)
		writeHeaders(b, h.Children)
	}
}
