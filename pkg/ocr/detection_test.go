package ocr

import (
	"testing"
)

func TestGroupIntoLines(t *testing.T) {
	tests := []struct {
		name          string
		symbols       []Symbol
		tolerance     float64
		expectedLines int
	}{
		{
			name:          "empty symbols",
			symbols:       []Symbol{},
			tolerance:     10,
			expectedLines: 0,
		},
		{
			name: "single symbol",
			symbols: []Symbol{
				{Text: "a", BBox: BBox{X0: 10, Y0: 10, X1: 40, Y1: 30}},
			},
			tolerance:     10,
			expectedLines: 1,
		},
		{
			name: "two symbols same line",
			symbols: []Symbol{
				{Text: "a", BBox: BBox{X0: 10, Y0: 10, X1: 40, Y1: 30}},
				{Text: "b", BBox: BBox{X0: 50, Y0: 12, X1: 80, Y1: 32}},
			},
			tolerance:     10,
			expectedLines: 1,
		},
		{
			name: "two symbols different lines",
			symbols: []Symbol{
				{Text: "a", BBox: BBox{X0: 10, Y0: 10, X1: 40, Y1: 30}},
				{Text: "b", BBox: BBox{X0: 10, Y0: 50, X1: 40, Y1: 70}},
			},
			tolerance:     10,
			expectedLines: 2,
		},
		{
			name: "drift past tolerance starts new line",
			symbols: []Symbol{
				{Text: "a", BBox: BBox{X0: 10, Y0: 10, X1: 40, Y1: 30}},
				{Text: "b", BBox: BBox{X0: 50, Y0: 18, X1: 80, Y1: 38}},
				{Text: "c", BBox: BBox{X0: 90, Y0: 26, X1: 120, Y1: 46}},
			},
			tolerance:     10,
			expectedLines: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GroupIntoLines(tt.symbols, tt.tolerance)
			if len(result) != tt.expectedLines {
				t.Errorf("GroupIntoLines() returned %d lines, want %d", len(result), tt.expectedLines)
			}
		})
	}
}

func TestGroupIntoLinesReadingOrder(t *testing.T) {
	// Symbols arrive in recognizer order, not reading order.
	symbols := []Symbol{
		{Text: "drei", BBox: BBox{X0: 200, Y0: 100, X1: 260, Y1: 150}},
		{Text: "eins", BBox: BBox{X0: 10, Y0: 102, X1: 70, Y1: 152}},
		{Text: "zwei", BBox: BBox{X0: 100, Y0: 101, X1: 160, Y1: 151}},
	}

	lines := GroupIntoLines(symbols, 10)
	if len(lines) != 1 {
		t.Fatalf("GroupIntoLines() returned %d lines, want 1", len(lines))
	}
	if got := lines[0].Text(); got != "eins zwei drei" {
		t.Errorf("Line.Text() = %q, want %q", got, "eins zwei drei")
	}
}

func TestDetectSuperscripts(t *testing.T) {
	// A line like "250¹ J" where the footnote marker is smaller and raised,
	// and a tall symbol must not drag the size threshold down.
	symbols := []Symbol{
		{Text: "2", BBox: BBox{X0: 10, Y0: 1123, X1: 40, Y1: 1177}},
		{Text: "5", BBox: BBox{X0: 45, Y0: 1123, X1: 75, Y1: 1177}},
		{Text: "0", BBox: BBox{X0: 80, Y0: 1123, X1: 110, Y1: 1177}},
		{Text: "1", BBox: BBox{X0: 115, Y0: 1119, X1: 135, Y1: 1155}},
		{Text: "J", BBox: BBox{X0: 150, Y0: 1120, X1: 185, Y1: 1195}},
	}
	line := Line{Symbols: symbols}

	DetectSuperscripts(&line, DefaultDetectionConfig())

	expected := []bool{false, false, false, true, false}
	for i, s := range line.Symbols {
		if s.Superscript != expected[i] {
			t.Errorf("symbol %q superscript = %v, want %v", s.Text, s.Superscript, expected[i])
		}
	}
}

func TestDetectSuperscriptsOverridesRecognizerFlags(t *testing.T) {
	// The recognizer marked a regular-size symbol as superscript; geometry
	// says otherwise and wins.
	line := Line{Symbols: []Symbol{
		{Text: "Wort", Superscript: true, BBox: BBox{X0: 10, Y0: 100, X1: 70, Y1: 154}},
		{Text: "mehr", BBox: BBox{X0: 80, Y0: 100, X1: 140, Y1: 154}},
	}}

	DetectSuperscripts(&line, DefaultDetectionConfig())

	for _, s := range line.Symbols {
		if s.Superscript {
			t.Errorf("symbol %q superscript = true, want false", s.Text)
		}
	}
}

func TestDetectSuperscriptsShortLine(t *testing.T) {
	// A single-symbol line gives no statistical basis; the recognizer's
	// flag survives untouched.
	line := Line{Symbols: []Symbol{
		{Text: "1", Superscript: true, BBox: BBox{X0: 10, Y0: 100, X1: 25, Y1: 130}},
	}}

	DetectSuperscripts(&line, DefaultDetectionConfig())

	if !line.Symbols[0].Superscript {
		t.Error("single-symbol line should keep the recognizer's superscript flag")
	}
}

func TestAnnotatePage(t *testing.T) {
	page := Page{
		Number: 1,
		Symbols: []Symbol{
			{Text: "Der", BBox: BBox{X0: 10, Y0: 100, X1: 60, Y1: 154}},
			{Text: "Text", BBox: BBox{X0: 70, Y0: 100, X1: 130, Y1: 154}},
			{Text: "1", BBox: BBox{X0: 10, Y0: 197, X1: 25, Y1: 227}},
			{Text: "Siehe", BBox: BBox{X0: 40, Y0: 200, X1: 110, Y1: 254}},
			{Text: "oben.", BBox: BBox{X0: 120, Y0: 200, X1: 190, Y1: 254}},
		},
	}

	lines := AnnotatePage(page, DefaultDetectionConfig())
	if len(lines) != 2 {
		t.Fatalf("AnnotatePage() returned %d lines, want 2", len(lines))
	}
	if got := lines[0].Text(); got != "Der Text" {
		t.Errorf("first line = %q, want %q", got, "Der Text")
	}
	if got := lines[1].Text(); got != "1 Siehe oben." {
		t.Errorf("second line = %q, want %q", got, "1 Siehe oben.")
	}

	marks := lines[1].Superscripts()
	if len(marks) != 1 || marks[0] != "1" {
		t.Errorf("second line superscripts = %v, want [1]", marks)
	}
	if len(lines[0].Superscripts()) != 0 {
		t.Errorf("first line superscripts = %v, want none", lines[0].Superscripts())
	}
}

func TestAnnotatePageWithoutGeometry(t *testing.T) {
	page := Page{Number: 1, Text: "nur Text, keine Geometrie"}

	lines := AnnotatePage(page, DefaultDetectionConfig())
	if len(lines) != 0 {
		t.Errorf("AnnotatePage() returned %d lines for a geometry-free page, want 0", len(lines))
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"empty", []float64{}, 0},
		{"single", []float64{5}, 5},
		{"odd count", []float64{54, 36, 75}, 54},
		{"even count", []float64{10, 20, 30, 40}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := median(tt.values); got != tt.expected {
				t.Errorf("median(%v) = %v, want %v", tt.values, got, tt.expected)
			}
		})
	}
}

func TestOutlierExcludedAverage(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		limit    float64
		expected float64
	}{
		{"all within limit", []float64{54, 54, 54, 36, 75}, 81, 54.6},
		{"outlier excluded", []float64{50, 50, 200}, 75, 50},
		{"all excluded", []float64{100, 200}, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outlierExcludedAverage(tt.values, tt.limit); got != tt.expected {
				t.Errorf("outlierExcludedAverage(%v, %v) = %v, want %v", tt.values, tt.limit, got, tt.expected)
			}
		})
	}
}
