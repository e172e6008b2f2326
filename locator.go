// Copyright ©2025 The go-pdf Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ticks

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// defaultMinTicks is the fewest ticks a search asks for before the
	// locator starts relaxing its constraints.
	defaultMinTicks = 2

	// maxBins caps tick counts derived from very long axes.
	maxBins = 1 << 16

	// widthTolerance is the relative difference under which two label width
	// estimates are the same.
	widthTolerance = 1e-9

	// spacingSlack absorbs round-off in tick differences.
	spacingSlack = 1e-9

	// settleRounds and maxAttempts bound the refinement loops.
	settleRounds = 8
	maxAttempts  = 16
)

// binLadder holds the label spacings, in label widths, tried in turn when
// the first placement is poor. The first one that leaves room for at least
// ladderBins ticks is used.
var binLadder = [...]float64{1.5, 1.35, 1.1}

const ladderBins = 4

// ErrInvalidConfig is returned by NewLocator for unusable configurations.
var ErrInvalidConfig = errors.New("invalid locator config")

// Ticker computes tick positions for an axis range.
type Ticker interface {
	Ticks(vmin, vmax float64) []float64
}

// Config holds the construction-time settings of a Locator.
type Config struct {
	// MaxTicks caps the number of ticks. Zero lets the axis length decide.
	MaxTicks int

	// KeepEdges disables dropping end ticks whose labels would overhang the
	// axis bounds.
	KeepEdges bool

	// StepFamilies overrides DefaultStepFamilies.
	StepFamilies [][]float64

	// Formatter renders labels. The zero value uses ScalarFormatter.
	Formatter Formatter

	// Measurer measures labels. The zero value counts characters.
	Measurer Measurer

	// Logger receives debug traces of the refinement steps.
	Logger logrus.FieldLogger
}

// Locator places ticks within an axis range so that their labels neither
// overlap nor overhang the axis ends. A Locator rewrites its working fields
// during Ticks and restores them before returning; it must not be used from
// several goroutines at once.
type Locator struct {
	maxTicks  int
	keepEdges bool
	format    Formatter
	measure   Measurer
	geometry  Geometry
	log       logrus.FieldLogger

	// Working fields.
	nbins    int
	minTicks int
	catalog  *Catalog
}

// NewLocator returns a Locator for an axis whose render context is reported
// by geometry.
func NewLocator(geometry Geometry, cfg Config) (*Locator, error) {
	if geometry == nil {
		return nil, fmt.Errorf("%w: nil geometry", ErrInvalidConfig)
	}
	if cfg.MaxTicks < 0 {
		return nil, fmt.Errorf("%w: negative max ticks %d", ErrInvalidConfig, cfg.MaxTicks)
	}

	families := cfg.StepFamilies
	if families == nil {
		families = DefaultStepFamilies
	}
	catalog, err := NewCatalog(families)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	l := &Locator{
		maxTicks:  cfg.MaxTicks,
		keepEdges: cfg.KeepEdges,
		format:    cfg.Formatter,
		measure:   cfg.Measurer,
		geometry:  geometry,
		log:       cfg.Logger,
		nbins:     cfg.MaxTicks,
		minTicks:  defaultMinTicks,
		catalog:   catalog,
	}
	if l.format == nil {
		l.format = ScalarFormatter{}
	}
	if l.measure == nil {
		l.measure = charMeasurer{}
	}
	if l.log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		quiet.SetLevel(logrus.PanicLevel)
		l.log = quiet
	}

	return l, nil
}

// MustNewLocator is like NewLocator but panics on error.
func MustNewLocator(geometry Geometry, cfg Config) *Locator {
	l, err := NewLocator(geometry, cfg)
	if err != nil {
		log.Panicf("could not create locator: %+v", err)
	}
	return l
}

// MaxTicks returns the current tick cap; 0 means automatic.
func (l *Locator) MaxTicks() int { return l.nbins }

// MinTicks returns the current minimum tick count.
func (l *Locator) MinTicks() int { return l.minTicks }

// Catalog returns the current step catalog.
func (l *Locator) Catalog() *Catalog { return l.catalog }

// Labels formats locs with the configured Formatter.
func (l *Locator) Labels(locs []float64) []string {
	labels := make([]string, len(locs))
	for i, loc := range locs {
		labels[i] = l.format.Format(loc, locs)
	}
	return labels
}

// LabelWidth returns the estimated width, in data units, of the widest end
// label of locs on the axis [vmin, vmax].
func (l *Locator) LabelWidth(vmin, vmax float64, locs []float64) float64 {
	return l.estimator(l.geometry(), vmin, vmax).labelWidth(locs)
}

func (l *Locator) estimator(ctx RenderContext, vmin, vmax float64) estimator {
	return estimator{
		ctx:     ctx,
		span:    vmax - vmin,
		format:  l.format,
		measure: l.measure,
	}
}

// Ticks returns ascending tick values inside [vmin, vmax]. It returns nil
// for empty or non-finite ranges and when no tick fits.
func (l *Locator) Ticks(vmin, vmax float64) []float64 {
	if !(vmin < vmax) || math.IsInf(vmin, 0) || math.IsInf(vmax, 0) {
		return nil
	}
	ctx := l.geometry()
	if !ctx.valid() {
		return nil
	}

	restore := l.override()
	defer restore()

	r := &run{
		l:    l,
		est:  l.estimator(ctx, vmin, vmax),
		vmin: vmin,
		vmax: vmax,
		span: vmax - vmin,
		log:  l.log.WithFields(logrus.Fields{"vmin": vmin, "vmax": vmax}),
	}
	return contain(r.locate(), vmin, vmax)
}

// run is the state of one Ticks call.
type run struct {
	l          *Locator
	est        estimator
	vmin, vmax float64
	span       float64
	log        logrus.FieldLogger

	// minBound is the minimum tick count set by the first guess.
	minBound int
}

func (r *run) locate() []float64 {
	lw := r.initialGuess()

	locs := r.searchDown(lw)
	if locs == nil {
		r.trace("no step fits, placing a single tick", lw)
		return r.single()
	}

	est := r.est.labelWidth(locs)
	if !scalar.EqualWithinRel(est, lw, widthTolerance) {
		r.trace("label width revised", est)
		if again := r.search(est); again != nil {
			locs = again
		}
		lw = r.est.labelWidth(locs)
	}

	if r.wellPlaced(locs, lw) {
		if settled, fw, ok := r.settle(locs, lw); ok && len(settled) >= 2 && r.spaced(settled, fw) {
			return settled
		}
	}

	return r.escalate(lw)
}

// initialGuess sets the working tick counts from a label width guessed from
// the font alone, and returns that width.
func (r *run) initialGuess() float64 {
	lw := r.est.guess()

	spacing, wide := minLabelSpacing, 1.35
	if r.est.orthogonal() {
		spacing, wide = 1.25, comfortableSpacing
	}

	usable := r.span - 2*r.margin(lw)
	nbins := binsFor(usable, spacing*lw)
	if nbins > 4 {
		nbins = binsFor(usable, wide*lw)
		r.l.minTicks = 3
	}
	r.l.nbins = r.capBins(nbins)
	r.l.minTicks = min(r.l.minTicks, r.l.nbins)
	r.minBound = r.l.minTicks

	r.trace("first guess", lw)
	return lw
}

// binsFor returns how many ticks spacing apart fit in usable.
func binsFor(usable, spacing float64) int {
	n := usable / spacing
	switch {
	case !(n < maxBins):
		return maxBins
	case n < 0:
		return 1
	}
	return int(n) + 1
}

func (r *run) capBins(n int) int {
	if r.l.maxTicks > 0 {
		n = min(n, r.l.maxTicks)
	}
	return min(max(n, 1), maxBins)
}

func (r *run) margin(lw float64) float64 {
	if r.l.keepEdges {
		return 0
	}
	return edgeMargin * lw
}

func (r *run) prune(locs []float64, lw float64) []float64 {
	if r.l.keepEdges {
		return locs
	}
	return prune(locs, r.vmin, r.vmax, lw)
}

// search places ticks with the working fields of the locator, keeping the
// prune margin of lw clear at both ends.
func (r *run) search(lw float64) []float64 {
	m := r.margin(lw)
	locs := search(r.l.catalog, r.vmin+m, r.vmax-m, r.l.minTicks, r.l.nbins, lw)
	return contain(locs, r.vmin, r.vmax)
}

// searchDown lowers the minimum tick count until a search succeeds.
func (r *run) searchDown(lw float64) []float64 {
	for {
		if locs := r.search(lw); locs != nil {
			return locs
		}
		if r.l.minTicks <= 1 {
			return nil
		}
		r.l.minTicks--
	}
}

// wellPlaced reports whether locs has enough ticks, ends close enough to the
// bounds and steps wide enough for labels lw wide.
func (r *run) wellPlaced(locs []float64, lw float64) bool {
	if len(locs) < 3 {
		return false
	}

	step := locs[1] - locs[0]
	gap := min(step, comfortableSpacing*lw) * (1 + spacingSlack)
	if locs[0]-r.vmin > gap || r.vmax-locs[len(locs)-1] > gap {
		return false
	}

	need := comfortableSpacing
	if len(locs) < 4 {
		need = minLabelSpacing
	}
	return step >= need*lw*(1-spacingSlack)
}

// settle prunes locs until the width of the surviving labels no longer
// exceeds the width they were pruned for. It returns the pruned ticks and
// their label width.
func (r *run) settle(locs []float64, lw float64) ([]float64, float64, bool) {
	for i := 0; i < settleRounds; i++ {
		pruned := r.prune(locs, lw)
		fw := r.est.labelWidth(pruned)
		if fw <= lw*(1+spacingSlack) {
			return pruned, fw, true
		}
		lw = fw
	}
	return nil, lw, false
}

// spaced reports whether consecutive ticks are far enough apart for labels
// lw wide.
func (r *run) spaced(locs []float64, lw float64) bool {
	need := minLabelSpacing * lw * (1 - spacingSlack)
	for i := 1; i < len(locs); i++ {
		if locs[i]-locs[i-1] < need {
			return false
		}
	}
	return true
}

// escalate searches again with tick counts derived from lw, then with a
// denser catalog if that finds fewer than two ticks.
func (r *run) escalate(lw float64) []float64 {
	usable := r.span - 2*r.margin(lw)
	var nbins int
	for _, spacing := range binLadder {
		if nbins = binsFor(usable, spacing*lw); nbins >= ladderBins {
			break
		}
	}
	r.l.nbins = r.capBins(nbins)
	r.trace("escalating", lw)

	locs := r.descend(lw)
	if len(locs) < 2 && lw < r.span/2 {
		r.trace("trying dense steps", lw)
		dense := r.l.withCatalog(denseCatalog, func() []float64 {
			return r.descend(lw)
		})
		if len(dense) > len(locs) {
			locs = dense
		}
	}

	if len(locs) < 2 {
		if single := r.single(); single != nil {
			return single
		}
	}
	return locs
}

// descend lowers the minimum tick count from its bound to 1 until a search
// yields well spaced ticks. It returns a lone tick if that is all it finds.
func (r *run) descend(lw float64) []float64 {
	var (
		lone   []float64
		halved bool
	)

	m := min(r.minBound, r.l.nbins)
	for attempt := 0; m >= 1 && attempt < maxAttempts; attempt++ {
		r.l.minTicks = m

		locs := r.search(lw)
		if len(locs) == 0 {
			if m > 1 && !halved {
				lw /= 2
				halved = true
				r.trace("halving label width", lw)
				continue
			}
			m--
			continue
		}

		settled, fw, ok := r.settle(locs, lw)
		if ok && len(settled) >= 2 && r.spaced(settled, fw) {
			return settled
		}
		if ok && len(settled) == 1 && lone == nil {
			lone = settled
		}
		if fw > lw {
			lw = fw
			continue
		}
		m--
	}
	return lone
}

// single returns one tick at the roundest value near the middle of the
// range, or nil if there is none strictly inside it.
func (r *run) single() []float64 {
	if t, ok := roundNear(r.vmin, r.vmax); ok {
		return []float64{t}
	}
	return nil
}

func (r *run) trace(msg string, lw float64) {
	r.log.WithFields(logrus.Fields{
		"nbins":       r.l.nbins,
		"min_ticks":   r.l.minTicks,
		"label_width": lw,
	}).Debug(msg)
}
