// Copyright ©2025 The go-pdf Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ticks

// edgeMargin is the part of a label width that must lie between an end tick
// and the axis bound.
const edgeMargin = 0.5

// prune drops end ticks whose labels would overhang the axis bounds. A lone
// tick is never dropped.
func prune(locs []float64, vmin, vmax, labelWidth float64) []float64 {
	if len(locs) > 1 && locs[0]-vmin < edgeMargin*labelWidth {
		locs = locs[1:]
	}
	if len(locs) > 1 && vmax-locs[len(locs)-1] < edgeMargin*labelWidth {
		locs = locs[:len(locs)-1]
	}
	return locs
}

// contain returns the ticks of locs inside [vmin, vmax].
func contain(locs []float64, vmin, vmax float64) []float64 {
	var out []float64
	for _, loc := range locs {
		if vmin <= loc && loc <= vmax {
			out = append(out, loc)
		}
	}
	return out
}
