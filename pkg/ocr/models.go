package ocr

// Symbol is a single recognized glyph or word fragment with its geometry.
type Symbol struct {
	Text        string  `json:"text" yaml:"text"`
	Confidence  float64 `json:"confidence" yaml:"confidence"`
	BBox        BBox    `json:"bbox" yaml:"bbox"`
	Superscript bool    `json:"superscript,omitempty" yaml:"superscript,omitempty"`
	Subscript   bool    `json:"subscript,omitempty" yaml:"subscript,omitempty"`
}

// BBox is a pixel rectangle locating a recognized symbol.
type BBox struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Y0 float64 `json:"y0" yaml:"y0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Page is the recognizer output for one page. Either Symbols carries
// per-glyph geometry, or Text holds plain recognized text when no
// geometry is available.
type Page struct {
	Number  int      `json:"number" yaml:"number"`
	Symbols []Symbol `json:"symbols,omitempty" yaml:"symbols,omitempty"`
	Text    string   `json:"text,omitempty" yaml:"text,omitempty"`
}

// Line is a group of symbols clustered onto one baseline.
type Line struct {
	Symbols []Symbol
}

// Text joins the line's symbol texts in reading order.
func (l Line) Text() string {
	var out string
	for i, s := range l.Symbols {
		if i > 0 {
			out += " "
		}
		out += s.Text
	}
	return out
}

// Superscripts returns the texts of symbols flagged as superscript.
func (l Line) Superscripts() []string {
	var marks []string
	for _, s := range l.Symbols {
		if s.Superscript {
			marks = append(marks, s.Text)
		}
	}
	return marks
}
