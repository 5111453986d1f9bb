package ocr

import (
	"sort"
)

// DetectionConfig holds the geometric thresholds for line grouping and
// superscript detection. The defaults are empirical; they can be tuned
// per document source.
type DetectionConfig struct {
	// LineTolerance is the maximum y0 distance in pixels between symbols
	// grouped onto the same line.
	LineTolerance float64
	// SuperscriptHeightRatio flags a symbol whose height is below this
	// fraction of the line's outlier-excluded average height.
	SuperscriptHeightRatio float64
	// SuperscriptOffset is the pixel band above the line top a superscript
	// must start within.
	SuperscriptOffset float64
	// OutlierHeightFactor excludes heights above this multiple of the
	// median from the line average.
	OutlierHeightFactor float64
}

// DefaultDetectionConfig returns the thresholds used when none are supplied.
func DefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		LineTolerance:          10,
		SuperscriptHeightRatio: 0.7,
		SuperscriptOffset:      3,
		OutlierHeightFactor:    1.5,
	}
}

// GroupIntoLines clusters symbols into lines by y0 proximity. Symbols are
// sorted top to bottom; a symbol starts a new line when its y0 is more than
// the tolerance below the first symbol of the current line. Within a line,
// symbols are ordered left to right.
func GroupIntoLines(symbols []Symbol, tolerance float64) []Line {
	if len(symbols) == 0 {
		return nil
	}

	sorted := make([]Symbol, len(symbols))
	copy(sorted, symbols)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Y0 < sorted[j].BBox.Y0
	})

	var lines []Line
	current := []Symbol{sorted[0]}
	anchor := sorted[0].BBox.Y0

	for _, s := range sorted[1:] {
		if s.BBox.Y0-anchor <= tolerance {
			current = append(current, s)
		} else {
			lines = append(lines, newLine(current))
			current = []Symbol{s}
			anchor = s.BBox.Y0
		}
	}
	lines = append(lines, newLine(current))

	return lines
}

func newLine(symbols []Symbol) Line {
	sort.SliceStable(symbols, func(i, j int) bool {
		return symbols[i].BBox.X0 < symbols[j].BBox.X0
	})
	return Line{Symbols: symbols}
}

// DetectSuperscripts flags the symbols of a line that sit above the baseline
// and are markedly smaller than their neighbors. The recognizer's own
// superscript flags are overwritten: they are unreliable for subtle size and
// position differences, so the geometric result wins either way. Lines with
// fewer than two symbols are left untouched, there is no statistical basis
// to judge them.
func DetectSuperscripts(line *Line, cfg DetectionConfig) {
	if len(line.Symbols) < 2 {
		return
	}

	heights := make([]float64, len(line.Symbols))
	minY0 := line.Symbols[0].BBox.Y0
	for i, s := range line.Symbols {
		heights[i] = s.BBox.Height()
		if s.BBox.Y0 < minY0 {
			minY0 = s.BBox.Y0
		}
	}

	med := median(heights)
	avg := outlierExcludedAverage(heights, med*cfg.OutlierHeightFactor)
	if avg <= 0 {
		return
	}

	for i := range line.Symbols {
		s := &line.Symbols[i]
		small := s.BBox.Height() < cfg.SuperscriptHeightRatio*avg
		raised := s.BBox.Y0 < minY0+cfg.SuperscriptOffset
		s.Superscript = small && raised
	}
}

// AnnotatePage groups a page's symbols into lines and runs superscript
// detection on each. Pages without geometry yield no lines.
func AnnotatePage(p Page, cfg DetectionConfig) []Line {
	lines := GroupIntoLines(p.Symbols, cfg.LineTolerance)
	for i := range lines {
		DetectSuperscripts(&lines[i], cfg)
	}
	return lines
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func outlierExcludedAverage(values []float64, limit float64) float64 {
	sum := 0.0
	count := 0
	for _, v := range values {
		if v <= limit {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
