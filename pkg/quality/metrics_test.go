package quality

import (
	"math"
	"testing"
)

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestReadabilityScore(t *testing.T) {
	tests := []struct {
		name      string
		words     int
		sentences int
		expected  float64
	}{
		{"no words", 0, 0, 0},
		{"no sentences", 5, 0, 0},
		{"inside the band", 100, 5, 1.0},
		{"band lower edge", 10, 1, 1.0},
		{"band upper edge", 25, 1, 1.0},
		{"slightly short sentences", 7, 1, 0.9},
		{"long sentences", 40, 1, 0.5},
		{"extremely long sentences", 100, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readabilityScore(tt.words, tt.sentences)
			if !floatEquals(got, tt.expected) {
				t.Errorf("readabilityScore(%d, %d) = %v, want %v", tt.words, tt.sentences, got, tt.expected)
			}
		})
	}
}

func TestStructureScore(t *testing.T) {
	tests := []struct {
		paragraphs int
		expected   float64
	}{
		{0, 0},
		{1, 0.1},
		{5, 0.5},
		{10, 1.0},
		{15, 1.0},
	}

	for _, tt := range tests {
		got := structureScore(tt.paragraphs)
		if !floatEquals(got, tt.expected) {
			t.Errorf("structureScore(%d) = %v, want %v", tt.paragraphs, got, tt.expected)
		}
	}
}

func TestCleanlinessScore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{"empty text", "", 1.0},
		{"clean text", "abc", 1.0},
		{"replacement character", "ab�d", 0.75},
		{"artifact run", "ab|||cd", 1.0 - 1.0/7.0},
		{"control byte", "ab\x01c", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanlinessScore(tt.text)
			if !floatEquals(got, tt.expected) {
				t.Errorf("cleanlinessScore(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		abbreviations []string
		expected      int
	}{
		{"empty", "", nil, 0},
		{"single sentence", "Ein Satz ohne Ende", nil, 1},
		{"three sentences", "Erster! Zweiter? Dritter.", nil, 3},
		{
			name:          "abbreviation protected",
			text:          "Wir nehmen z.B. diesen Satz. Und noch einen.",
			abbreviations: []string{"z.B."},
			expected:      2,
		},
		{
			name:     "abbreviation unprotected splits too often",
			text:     "Wir nehmen z.B. diesen Satz. Und noch einen.",
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitSentences(tt.text, tt.abbreviations)
			if len(got) != tt.expected {
				t.Errorf("splitSentences(%q) = %d sentences, want %d", tt.text, len(got), tt.expected)
			}
		})
	}
}

func TestSplitSentencesRestoresAbbreviations(t *testing.T) {
	sentences := splitSentences("Vgl. dazu Dr. Meier. Zweiter Satz.", []string{"Vgl.", "Dr."})
	if len(sentences) != 2 {
		t.Fatalf("got %d sentences, want 2", len(sentences))
	}
	if sentences[0] != "Vgl. dazu Dr. Meier" {
		t.Errorf("first sentence = %q, masked periods must be restored", sentences[0])
	}
}

func TestCountParagraphs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"empty", "", 0},
		{"single block", "eine Zeile\nzweite Zeile", 1},
		{"two blocks", "erster\n\nzweiter", 2},
		{"blank line with spaces", "erster\n  \nzweiter", 2},
		{"multiple blank lines", "erster\n\n\n\nzweiter", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countParagraphs(tt.text); got != tt.expected {
				t.Errorf("countParagraphs(%q) = %d, want %d", tt.text, got, tt.expected)
			}
		})
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"empty", "", 0},
		{"two lines", "a\nb", 2},
		{"blank lines skipped", "a\n\n\nb", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countLines(tt.text); got != tt.expected {
				t.Errorf("countLines(%q) = %d, want %d", tt.text, got, tt.expected)
			}
		})
	}
}

func TestLineEndingStyles(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"no endings", "abc", 0},
		{"unix only", "a\nb\nc", 1},
		{"windows only", "a\r\nb\r\nc", 1},
		{"mixed", "a\r\nb\nc", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lineEndingStyles(tt.text); got != tt.expected {
				t.Errorf("lineEndingStyles(%q) = %d, want %d", tt.text, got, tt.expected)
			}
		})
	}
}

func TestMissingWordRatio(t *testing.T) {
	original := "alpha bravo charlie delta echo foxtrot golf hotel india juliett"

	tests := []struct {
		name      string
		processed string
		expected  float64
	}{
		{"nothing missing", original, 0},
		{"two of ten missing", "alpha bravo charlie delta echo foxtrot golf hotel", 0.2},
		{"case and punctuation ignored", "Alpha, bravo charlie delta echo foxtrot golf hotel india juliett.", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := missingWordRatio(original, tt.processed, 3)
			if !floatEquals(got, tt.expected) {
				t.Errorf("missingWordRatio() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLongSentenceRatio(t *testing.T) {
	sentences := []string{
		"ein zwei drei",
		"eins zwei drei vier fünf sechs",
	}
	if got := longSentenceRatio(sentences, 5); !floatEquals(got, 0.5) {
		t.Errorf("longSentenceRatio() = %v, want 0.5", got)
	}
	if got := longSentenceRatio(nil, 5); got != 0 {
		t.Errorf("longSentenceRatio(nil) = %v, want 0", got)
	}
}
