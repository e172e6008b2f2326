// Copyright ©2025 The go-pdf Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ticks places readable tick marks on a linear axis.
//
// A Locator picks "nice" tick values (multiples of 1, 2, 2.5, 5, ...) inside
// an axis range so that the tick labels, as rendered with the axis font size
// and rotation, neither overlap one another nor overhang the ends of the
// axis. Label widths depend on the tick values being chosen, so the Locator
// guesses a width, searches, measures the labels it found and searches again
// when the guess was off.
//
//	l, err := ticks.NewLocator(ticks.Fixed(ticks.RenderContext{
//		PixelLength: 400,
//		FontSize:    10,
//	}), ticks.Config{})
//	if err != nil {
//		return err
//	}
//	locs := l.Ticks(0, 1000)
//	labels := l.Labels(locs)
//
// Tickmarks returns the loose, label-agnostic ticks of Heckbert's nice
// numbers algorithm for comparison.
package ticks
