// Copyright ©2025 The go-pdf Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ticks

import (
	"math"
)

const (
	// glyphAspect is the typical width of a digit glyph, in ems.
	glyphAspect = 0.65

	// pointsPerInch converts device lengths to the unit of font sizes.
	pointsPerInch = 72
)

// RenderContext describes how an axis and its tick labels are drawn.
type RenderContext struct {
	// PixelLength is the length of the axis in device pixels.
	PixelLength float64

	// FontSize is the size of the tick label font in points.
	FontSize float64

	// Rotation is the tick label rotation in degrees; 0 is horizontal text.
	Rotation float64

	// DPI is the device resolution. Zero means 72, so that PixelLength is
	// given in points.
	DPI float64

	// Vertical marks a y axis. Labels on a vertical axis are measured across
	// their text, as if rotated by a further 90 degrees.
	Vertical bool
}

// Geometry reports the current render context of an axis. It is called once
// per tick computation.
type Geometry func() RenderContext

// Fixed returns a Geometry that always reports ctx.
func Fixed(ctx RenderContext) Geometry {
	return func() RenderContext {
		return ctx
	}
}

// LengthPt returns the axis length in points.
func (c RenderContext) LengthPt() float64 {
	dpi := c.DPI
	if dpi == 0 {
		dpi = pointsPerInch
	}
	return c.PixelLength / dpi * pointsPerInch
}

// SizeRatio returns the label font size relative to the axis length.
func (c RenderContext) SizeRatio() float64 {
	return c.FontSize / c.LengthPt()
}

// CosRotation returns |cos| of the angle between the label text and the axis.
func (c RenderContext) CosRotation() float64 {
	rotation := c.Rotation
	if c.Vertical {
		rotation += 90
	}
	return math.Abs(math.Cos(rotation * math.Pi / 180))
}

// FontAspect returns the along-axis extent of one label character relative
// to the font size.
func (c RenderContext) FontAspect() float64 {
	return glyphAspect * c.CosRotation()
}

func (c RenderContext) valid() bool {
	ratio := c.SizeRatio()
	return ratio > 0 && !math.IsInf(ratio, 0) && !math.IsNaN(c.Rotation)
}
