// Copyright ©2025 The go-pdf Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ticks

const (
	// minLabelEms is the narrowest a label is assumed to be along the axis,
	// in font sizes. One-character labels would otherwise pack too tightly.
	minLabelEms = 2.0

	// orthogonalCos is the |cos| at or below which labels run across the
	// axis rather than along it.
	orthogonalCos = 0.05

	// parallelGuess and orthogonalGuess are the label extents, in font sizes,
	// assumed before any label text is known.
	parallelGuess   = 1.5
	orthogonalGuess = 1.35
)

// estimator converts label text into data units along one axis.
type estimator struct {
	ctx     RenderContext
	span    float64
	format  Formatter
	measure Measurer
}

// charScale is the length of one font size in data units.
func (e estimator) charScale() float64 {
	return e.ctx.SizeRatio() * e.span
}

func (e estimator) orthogonal() bool {
	return e.ctx.CosRotation() <= orthogonalCos
}

// guess returns the label width to use before any tick is known.
func (e estimator) guess() float64 {
	if e.orthogonal() {
		return orthogonalGuess * e.charScale()
	}
	return parallelGuess * e.charScale()
}

// labelWidth returns the along-axis extent of the widest of the first and
// last labels of locs. Labels across the axis are as wide as one line of
// text, whatever they say.
func (e estimator) labelWidth(locs []float64) float64 {
	if len(locs) == 0 {
		return e.guess()
	}
	if e.orthogonal() {
		return orthogonalGuess * e.charScale()
	}

	var ems float64
	for _, v := range [...]float64{locs[0], locs[len(locs)-1]} {
		ems = max(ems, e.measure.MeasureEm(e.format.Format(v, locs)))
	}
	return max(minLabelEms, ems*e.ctx.CosRotation()) * e.charScale()
}
