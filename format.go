// Copyright ©2025 The go-pdf Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ticks

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Formatter turns a tick value into label text. locs is the full set of ticks
// being labelled; implementations use it to pick one precision for every
// label of the set.
type Formatter interface {
	Format(value float64, locs []float64) string
}

// ScalarFormatter prints plain decimal labels with the fewest decimals that
// keep every tick of the set distinct. Values whose magnitude falls outside
// PowerLimits are printed as a mantissa with an "e" exponent shared by the
// whole set.
type ScalarFormatter struct {
	// PowerLimits holds the decimal exponents at or beyond which the set is
	// scaled. The zero value means {-5, 6}.
	PowerLimits [2]int
}

var defaultPowerLimits = [2]int{-5, 6}

func (f ScalarFormatter) Format(value float64, locs []float64) string {
	oom := f.orderOfMagnitude(locs)
	scale := math.Pow10(-oom)

	scaled := make([]float64, len(locs))
	for i, loc := range locs {
		scaled[i] = loc * scale
	}

	label := formatFixed(value*scale, sharedDecimals(scaled))
	if oom != 0 {
		label += "e" + strconv.Itoa(oom)
	}
	return label
}

func (f ScalarFormatter) orderOfMagnitude(locs []float64) int {
	limits := f.PowerLimits
	if limits == [2]int{} {
		limits = defaultPowerLimits
	}

	var biggest float64
	for _, loc := range locs {
		biggest = max(biggest, math.Abs(loc))
	}
	if biggest == 0 || math.IsInf(biggest, 0) || math.IsNaN(biggest) {
		return 0
	}

	oom := int(math.Floor(math.Log10(biggest)))
	if oom <= limits[0] || oom >= limits[1] {
		return oom
	}
	return 0
}

// SIFormatter prints labels with a metric prefix shared by the whole set,
// such as "250k" or "1.5M".
type SIFormatter struct {
	// Unit is appended after the prefix.
	Unit string
}

func (f SIFormatter) Format(value float64, locs []float64) string {
	var biggest float64
	for _, loc := range locs {
		biggest = max(biggest, math.Abs(loc))
	}
	if biggest == 0 {
		biggest = math.Abs(value)
	}

	scale, prefix := 1.0, ""
	if biggest != 0 && !math.IsInf(biggest, 0) {
		var mantissa float64
		mantissa, prefix = humanize.ComputeSI(biggest)
		scale = math.Pow10(int(math.Round(math.Log10(biggest / mantissa))))
	}

	scaled := make([]float64, len(locs))
	for i, loc := range locs {
		scaled[i] = loc / scale
	}

	return formatFixed(value/scale, sharedDecimals(scaled)) + prefix + f.Unit
}

// sharedDecimals returns the smallest number of decimals that still
// distinguishes every value of locs, to within a thousandth of their spread.
func sharedDecimals(locs []float64) int {
	if len(locs) == 0 {
		return 0
	}

	spread := math.Abs(locs[0])
	if len(locs) > 1 {
		lo, hi := locs[0], locs[0]
		for _, loc := range locs[1:] {
			lo = min(lo, loc)
			hi = max(hi, loc)
		}
		spread = hi - lo
	}
	if spread == 0 || math.IsInf(spread, 0) || math.IsNaN(spread) {
		spread = 1
	}

	spreadOom := int(math.Floor(math.Log10(spread)))
	thresh := 1e-3 * math.Pow10(spreadOom)

	decimals := max(0, 3-spreadOom)
	for ; decimals >= 0; decimals-- {
		if !roundsWithin(locs, decimals, thresh) {
			break
		}
	}
	return decimals + 1
}

func roundsWithin(locs []float64, decimals int, thresh float64) bool {
	scale := math.Pow10(decimals)
	for _, loc := range locs {
		if math.Abs(loc-math.Round(loc*scale)/scale) >= thresh {
			return false
		}
	}
	return true
}

func formatFixed(v float64, decimals int) string {
	label := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.HasPrefix(label, "-") && strings.Trim(label, "-0.") == "" {
		label = label[1:]
	}
	return label
}
