package ttf

import (
	"fmt"
	"log"
)

// Measurer measures text with the advance widths of a parsed font.
type Measurer struct {
	font Font
}

// NewMeasurer parses the TrueType font in bytes.
func NewMeasurer(bytes []byte) (*Measurer, error) {
	m := &Measurer{}
	if err := Parse(bytes, &m.font); err != nil {
		return nil, fmt.Errorf("unable to parse font file: %w", err)
	}
	return m, nil
}

// MustNewMeasurer is like NewMeasurer but panics on error.
func MustNewMeasurer(bytes []byte) *Measurer {
	m, err := NewMeasurer(bytes)
	if err != nil {
		log.Panicf("unable to load label font: %v", err)
	}
	return m
}

func (m *Measurer) Font() *Font {
	return &m.font
}

func (m *Measurer) GlyphWidth(char rune) (gid uint16, width float32) {
	gid = m.font.GlyphId(char)
	width = m.font.Width(gid)

	return
}

// MeasureEm returns the advance width of text in ems.
func (m *Measurer) MeasureEm(text string) float64 {
	var width float32
	for _, c := range text {
		_, w := m.GlyphWidth(c)
		width += w
	}
	return float64(width) / 1000
}
