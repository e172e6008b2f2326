// Copyright ©2025 The go-pdf Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ticks

import (
	"math"
)

// Tolerances used when snapping a step remainder to a step boundary. They
// were tuned empirically against axes with large offsets and tiny spans, so
// change them only together with the tolerance tests.
const (
	// edgeTolerance is the snap distance, in fractions of a step, used when
	// the axis has no offset and as the lower bound otherwise.
	edgeTolerance = 1e-10

	// edgeToleranceMax caps the snap distance so that a remainder can never
	// snap to both boundaries at once.
	edgeToleranceMax = 0.4999

	// edgeToleranceDigits is the number of decimal digits of float64
	// precision assumed to survive subtracting the offset.
	edgeToleranceDigits = 12
)

// edge counts whole steps with a tolerance that grows with the ratio between
// the axis offset and the step, since subtracting a large offset leaves
// round-off in the low digits.
type edge struct {
	step   float64
	offset float64
}

func newEdge(step, offset float64) edge {
	return edge{step: step, offset: math.Abs(offset)}
}

func (e edge) tolerance() float64 {
	if e.offset > 0 {
		digits := math.Log10(e.offset / e.step)
		tol := max(edgeTolerance, math.Pow(10, digits-edgeToleranceDigits))
		return min(edgeToleranceMax, tol)
	}
	return edgeTolerance
}

func (e edge) closeTo(ms, boundary float64) bool {
	return math.Abs(ms-boundary) < e.tolerance()
}

// floor returns the largest n with n*step <= x.
func (e edge) floor(x float64) int {
	d, m := divmod(x, e.step)
	if e.closeTo(m/e.step, 1) {
		return int(d) + 1
	}
	return int(d)
}

// ceil returns the smallest n with n*step >= x.
func (e edge) ceil(x float64) int {
	d, m := divmod(x, e.step)
	if e.closeTo(m/e.step, 0) {
		return int(d)
	}
	return int(d) + 1
}

// floorStep returns the largest n with n*step <= x, treating x as being on a
// step boundary when it is within tolerance of one. offset is the value that
// was subtracted from the axis before x was computed.
func floorStep(x, offset, step float64) int {
	return newEdge(step, offset).floor(x)
}

// ceilStep returns the smallest n with n*step >= x under the same tolerance
// as floorStep.
func ceilStep(x, offset, step float64) int {
	return newEdge(step, offset).ceil(x)
}

// divmod is floored division for floats: the quotient is integral and the
// remainder takes the sign of y.
func divmod(x, y float64) (div, mod float64) {
	mod = math.Mod(x, y)
	div = (x - mod) / y
	if mod != 0 && (y < 0) != (mod < 0) {
		mod += y
		div -= 1
	}

	floor := math.Floor(div)
	if div-floor > 0.5 {
		floor += 1
	}

	return floor, mod
}
