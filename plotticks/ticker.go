// Copyright ©2025 The go-pdf Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package plotticks places gonum/plot axis ticks with a ticks.Locator.
package plotticks

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	ticks "github.com/kofi-q/ticks-go"
)

// Ticker is a plot.Ticker whose major ticks come from a Locator.
type Ticker struct {
	Locator *ticks.Locator
}

var _ plot.Ticker = Ticker{}

func (t Ticker) Ticks(min, max float64) []plot.Tick {
	locs := t.Locator.Ticks(min, max)
	labels := t.Locator.Labels(locs)

	out := make([]plot.Tick, len(locs))
	for i, loc := range locs {
		out[i] = plot.Tick{Value: loc, Label: labels[i]}
	}
	return out
}

// Geometry returns the render context of an axis drawn length long with the
// tick label style of axis. The label rotation of a plot is in radians.
func Geometry(axis *plot.Axis, length vg.Length, vertical bool) ticks.Geometry {
	return func() ticks.RenderContext {
		return ticks.RenderContext{
			PixelLength: length.Points(),
			FontSize:    float64(axis.Tick.Label.Font.Size),
			Rotation:    axis.Tick.Label.Rotation * 180 / math.Pi,
			Vertical:    vertical,
		}
	}
}

// New returns a Ticker for axis, drawn length long.
func New(axis *plot.Axis, length vg.Length, vertical bool, cfg ticks.Config) (Ticker, error) {
	l, err := ticks.NewLocator(Geometry(axis, length, vertical), cfg)
	if err != nil {
		return Ticker{}, err
	}
	return Ticker{Locator: l}, nil
}
