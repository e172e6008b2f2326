// Copyright ©2025 The go-pdf Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ticks

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// decimalPointRunes is how much narrower than a digit a decimal point is, in
// characters.
const decimalPointRunes = 0.4

// Measurer reports the advance width of a label in ems of its font.
type Measurer interface {
	MeasureEm(label string) float64
}

// charMeasurer counts characters, each glyphAspect ems wide, with a decimal
// point counted as a fraction of a character.
type charMeasurer struct{}

func (charMeasurer) MeasureEm(label string) float64 {
	return charCount(label) * glyphAspect
}

func charCount(label string) float64 {
	n := float64(utf8.RuneCountInString(label))
	if strings.ContainsRune(label, '.') {
		n -= decimalPointRunes
	}
	return n
}

// FaceMeasurer measures labels with the advances of a font face.
type FaceMeasurer struct {
	Face font.Face

	// PixelsPerEm is the size the face was opened at.
	PixelsPerEm float64
}

func (m FaceMeasurer) MeasureEm(label string) float64 {
	adv := font.MeasureString(m.Face, label)
	return float64(adv) / 64 / m.PixelsPerEm
}

const goFaceSize = 12

// NewGoFaceMeasurer returns a FaceMeasurer for the Go Regular font.
func NewGoFaceMeasurer() (FaceMeasurer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return FaceMeasurer{}, fmt.Errorf("unable to parse go regular font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    goFaceSize,
		DPI:     pointsPerInch,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return FaceMeasurer{}, fmt.Errorf("unable to open go regular face: %w", err)
	}

	return FaceMeasurer{Face: face, PixelsPerEm: goFaceSize}, nil
}
