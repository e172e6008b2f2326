// Copyright ©2025 The go-pdf Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ticks

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

var (
	// ErrEmptyFamily is returned when a catalog has no families, or a family
	// has no steps.
	ErrEmptyFamily = errors.New("empty step family")

	// ErrInvalidStep is returned for steps that are not positive, finite and
	// strictly increasing within their family.
	ErrInvalidStep = errors.New("invalid step")
)

// DefaultStepFamilies lists the step multipliers tried by a Locator, nicest
// family first.
var DefaultStepFamilies = [][]float64{
	{1, 2, 5, 10},
	{2.5},
	{3, 4, 6, 8},
	{1.5, 7, 9},
}

// DenseSteps is the fallback family used when no default family produces at
// least two ticks.
var DenseSteps = []float64{1, 1.5, 2, 2.5, 3, 4, 5, 6, 7, 8, 9, 10}

var denseCatalog = mustCatalog([][]float64{DenseSteps})

// family is one staircase of steps. Bit i of halves is set when steps[i] has
// an even multiplier and so admits ticks shifted by half a step.
type family struct {
	steps  []float64
	halves bitset.BitSet
}

// half returns the half-phase shift of steps[i], or 0 if it has none.
func (f *family) half(i int) float64 {
	if f.halves.Test(uint(i)) {
		return f.steps[i] / 2
	}
	return 0
}

// Catalog is an immutable, ordered list of step families.
type Catalog struct {
	families []family
}

// NewCatalog builds a catalog from step multiplier families. Each family
// [a, b, ..., z] is stored as the staircase [a/10, a, b, ..., z, 10z] so that
// finer and coarser variants of the family are available to the search.
func NewCatalog(families [][]float64) (*Catalog, error) {
	if len(families) == 0 {
		return nil, fmt.Errorf("catalog: %w", ErrEmptyFamily)
	}

	c := &Catalog{families: make([]family, len(families))}
	for i, steps := range families {
		if err := validateFamily(steps); err != nil {
			return nil, fmt.Errorf("catalog family %d %v: %w", i, steps, err)
		}
		c.families[i] = newFamily(steps)
	}

	return c, nil
}

func mustCatalog(families [][]float64) *Catalog {
	c, err := NewCatalog(families)
	if err != nil {
		panic(err)
	}
	return c
}

func validateFamily(steps []float64) error {
	if len(steps) == 0 {
		return ErrEmptyFamily
	}
	for i, s := range steps {
		if !(s > 0) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: %v is not positive", ErrInvalidStep, s)
		}
		if i > 0 && s <= steps[i-1] {
			return fmt.Errorf("%w: %v does not follow %v", ErrInvalidStep, s, steps[i-1])
		}
	}
	return nil
}

func newFamily(steps []float64) family {
	last := len(steps) - 1

	f := family{steps: make([]float64, 0, len(steps)+2)}
	f.steps = append(f.steps, 0.1*steps[0])
	f.steps = append(f.steps, steps...)
	f.steps = append(f.steps, 10*steps[last])

	mark := func(i int, multiplier float64) {
		if isEven(multiplier) {
			f.halves.Set(uint(i))
		}
	}
	mark(0, steps[0])
	for i, s := range steps {
		mark(i+1, s)
	}
	mark(len(f.steps)-1, steps[last])

	return f
}

func isEven(x float64) bool {
	return math.Mod(x, 2) < 1e-6
}

// Len returns the number of families.
func (c *Catalog) Len() int {
	return len(c.families)
}

// Staircase returns a copy of the stored steps of family i.
func (c *Catalog) Staircase(i int) []float64 {
	return slices.Clone(c.families[i].steps)
}

// HalfOffsets returns the half-phase shifts matching Staircase(i); entries
// for steps without an even multiplier are 0.
func (c *Catalog) HalfOffsets(i int) []float64 {
	f := &c.families[i]
	offsets := make([]float64, len(f.steps))
	for j := range offsets {
		offsets[j] = f.half(j)
	}
	return offsets
}
