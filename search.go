// Copyright ©2025 The go-pdf Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ticks

import (
	"math"
	"sort"
)

const (
	// offsetThreshold is the ratio of |mean| to span above which step
	// arithmetic is done relative to an offset.
	offsetThreshold = 100

	// minLabelSpacing is the smallest tick step, in label widths.
	minLabelSpacing = 1.1

	// comfortableSpacing is the tick step, in label widths, above which
	// labels read as clearly separated.
	comfortableSpacing = 1.5
)

// scaleRange returns the power of ten at or below the step that splits
// [vmin, vmax] into n intervals, and an offset that is non-zero when the
// range sits far from zero compared to its span.
func scaleRange(vmin, vmax float64, n int) (scale, offset float64) {
	dv := vmax - vmin
	mean := (vmin + vmax) / 2
	if math.Abs(mean)/dv >= offsetThreshold {
		offset = math.Copysign(math.Pow10(int(math.Floor(math.Log10(math.Abs(mean))))), mean)
	}
	scale = math.Pow10(int(math.Floor(math.Log10(dv / float64(n)))))
	return scale, offset
}

// search returns the ticks inside [lo, hi] for the first step of c, family by
// family and coarsest first, that places between minTicks and maxTicks ticks
// at least minLabelSpacing label widths apart. It returns nil when no step
// does.
func search(c *Catalog, lo, hi float64, minTicks, maxTicks int, labelWidth float64) []float64 {
	if !(lo < hi) || maxTicks < 1 || minTicks > maxTicks {
		return nil
	}

	intervals := max(maxTicks-1, 1)
	scale, offset := scaleRange(lo, hi, intervals)

	p := placement{
		lo:       lo - offset,
		hi:       hi - offset,
		offset:   offset,
		scale:    scale,
		minTicks: minTicks,
		maxTicks: maxTicks,
		minStep:  minLabelSpacing * labelWidth,
	}
	p.rawStep = max(p.minStep, (p.hi-p.lo)/float64(intervals))
	p.center, p.hasCenter = roundNear(p.lo, p.hi)

	var (
		best     []float64
		bestStep float64
	)
	comfortable := comfortableSpacing * labelWidth
	for i := range c.families {
		locs, step := p.walk(&c.families[i], i > 0)
		if locs == nil {
			continue
		}
		if best == nil ||
			(step >= comfortable && bestStep < comfortable && len(locs) <= len(best)) {
			best, bestStep = locs, step
		}
	}
	return best
}

// placement is the state of one search, in offset coordinates.
type placement struct {
	lo, hi, offset, scale float64
	minTicks, maxTicks    int

	minStep float64
	rawStep float64

	center    float64
	hasCenter bool
}

// walk tries the steps of f from the smallest one at or above rawStep down to
// minStep. nudge aligns the grid on the round value near the middle of the
// range instead of on zero.
func (p *placement) walk(f *family, nudge bool) (locs []float64, step float64) {
	i0 := sort.Search(len(f.steps), func(i int) bool {
		return f.steps[i]*p.scale >= p.rawStep
	})
	i0 = min(i0, len(f.steps)-1)

	for i := i0; i >= 0; i-- {
		step = f.steps[i] * p.scale
		if step < p.minStep {
			break
		}

		origin := math.Floor(p.lo/step) * step
		if nudge && p.hasCenter {
			origin = p.center - math.Ceil((p.center-p.lo)/step)*step
		}

		e := newEdge(step, p.offset)
		tooMany := true
		for j, phase := range [...]float64{0, f.half(i) * p.scale} {
			if j > 0 && phase == 0 {
				continue
			}
			base := origin + phase
			low := e.ceil(p.lo - base)
			high := e.floor(p.hi - base)
			n := high - low + 1
			if n > p.maxTicks {
				continue
			}
			tooMany = false
			if n < p.minTicks {
				continue
			}

			locs = make([]float64, n)
			for k := range locs {
				locs[k] = base + float64(low+k)*step + p.offset
			}
			return locs, step
		}

		// Finer steps only add ticks.
		if tooMany {
			break
		}
	}
	return nil, 0
}
