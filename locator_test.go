package ticks_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	ticks "github.com/kofi-q/ticks-go"
	"github.com/kofi-q/ticks-go/ttf"
)

func newLocator(t *testing.T, ctx ticks.RenderContext, cfg ticks.Config) *ticks.Locator {
	t.Helper()
	l, err := ticks.NewLocator(ticks.Fixed(ctx), cfg)
	require.NoError(t, err)
	return l
}

var wideAxis = ticks.RenderContext{PixelLength: 200, FontSize: 10}

func TestTicksDecades(t *testing.T) {
	l := newLocator(t, wideAxis, ticks.Config{
		StepFamilies: [][]float64{{1, 2, 5, 10}},
	})

	got := l.Ticks(0, 100)
	if diff := cmp.Diff([]float64{20, 40, 60, 80}, got, approx); diff != "" {
		t.Errorf("Ticks(0, 100) mismatch (-want +got):\n%s", diff)
	}
}

func TestTicksNarrowAxisSingleTick(t *testing.T) {
	l := newLocator(t, ticks.RenderContext{PixelLength: 20, FontSize: 10}, ticks.Config{})
	require.Equal(t, []float64{0}, l.Ticks(-1, 1))

	l = newLocator(t, ticks.RenderContext{PixelLength: 10, FontSize: 10}, ticks.Config{})
	got := l.Ticks(0, 1)
	require.Len(t, got, 1)
	require.InDelta(t, 0.5, got[0], 1e-12)
}

func TestTicksMaxTicks(t *testing.T) {
	l := newLocator(t, ticks.RenderContext{PixelLength: 400, FontSize: 10}, ticks.Config{MaxTicks: 2})

	got := l.Ticks(0, 1000)
	require.NotEmpty(t, got)
	require.LessOrEqual(t, len(got), 2)

	unbounded := newLocator(t, ticks.RenderContext{PixelLength: 400, FontSize: 10}, ticks.Config{})
	require.Greater(t, len(unbounded.Ticks(0, 1000)), 2)
}

func TestTicksRotated(t *testing.T) {
	ctx := wideAxis
	ctx.Rotation = 90
	l := newLocator(t, ctx, ticks.Config{})

	got := l.Ticks(0, 100)
	require.NotEmpty(t, got)
	requireReadable(t, l, 0, 100, got)
	require.InDelta(t, 6.75, l.LabelWidth(0, 100, got), 1e-9)
}

func TestTicksDegenerate(t *testing.T) {
	l := newLocator(t, wideAxis, ticks.Config{})

	for _, r := range [][2]float64{
		{1, 1},
		{2, 1},
		{math.NaN(), 1},
		{0, math.NaN()},
		{math.Inf(-1), 0},
		{0, math.Inf(1)},
	} {
		require.Nil(t, l.Ticks(r[0], r[1]), "Ticks(%v, %v)", r[0], r[1])
	}

	for _, ctx := range []ticks.RenderContext{
		{PixelLength: 200},
		{FontSize: 10},
		{PixelLength: -200, FontSize: 10},
		{PixelLength: 200, FontSize: 10, Rotation: math.NaN()},
	} {
		l := newLocator(t, ctx, ticks.Config{})
		require.Nil(t, l.Ticks(0, 1), "context %+v", ctx)
	}
}

func TestTicksKeepEdges(t *testing.T) {
	l := newLocator(t, wideAxis, ticks.Config{KeepEdges: true})

	got := l.Ticks(0, 100)
	require.NotEmpty(t, got)
	for _, loc := range got {
		require.GreaterOrEqual(t, loc, 0.0)
		require.LessOrEqual(t, loc, 100.0)
	}
}

func TestTicksIdempotent(t *testing.T) {
	l := newLocator(t, wideAxis, ticks.Config{MaxTicks: 7})

	maxTicks, minTicks, catalog := l.MaxTicks(), l.MinTicks(), l.Catalog()

	first := l.Ticks(-3.7, 12.2)
	second := l.Ticks(-3.7, 12.2)
	require.Equal(t, first, second)

	require.Equal(t, maxTicks, l.MaxTicks())
	require.Equal(t, minTicks, l.MinTicks())
	require.Same(t, catalog, l.Catalog())
}

type panicFormatter struct{}

func (panicFormatter) Format(float64, []float64) string {
	panic("format failed")
}

func TestTicksRestoresAfterPanic(t *testing.T) {
	l := newLocator(t, wideAxis, ticks.Config{Formatter: panicFormatter{}})

	maxTicks, minTicks, catalog := l.MaxTicks(), l.MinTicks(), l.Catalog()
	require.PanicsWithValue(t, "format failed", func() {
		l.Ticks(0, 100)
	})

	require.Equal(t, maxTicks, l.MaxTicks())
	require.Equal(t, minTicks, l.MinTicks())
	require.Same(t, catalog, l.Catalog())
}

func TestTicksLogsRefinement(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	l := newLocator(t, wideAxis, ticks.Config{Logger: logger})
	require.NotEmpty(t, l.Ticks(0, 100))

	require.NotEmpty(t, hook.AllEntries())
	entry := hook.AllEntries()[0]
	require.Equal(t, logrus.DebugLevel, entry.Level)
	require.Equal(t, 0.0, entry.Data["vmin"])
	require.Equal(t, 100.0, entry.Data["vmax"])
	require.Contains(t, entry.Data, "label_width")
}

func TestNewLocatorErrors(t *testing.T) {
	geometry := ticks.Fixed(wideAxis)

	_, err := ticks.NewLocator(nil, ticks.Config{})
	require.ErrorIs(t, err, ticks.ErrInvalidConfig)

	_, err = ticks.NewLocator(geometry, ticks.Config{MaxTicks: -1})
	require.ErrorIs(t, err, ticks.ErrInvalidConfig)

	_, err = ticks.NewLocator(geometry, ticks.Config{StepFamilies: [][]float64{{2, 1}}})
	require.ErrorIs(t, err, ticks.ErrInvalidConfig)
	require.ErrorIs(t, err, ticks.ErrInvalidStep)

	require.Panics(t, func() {
		ticks.MustNewLocator(geometry, ticks.Config{StepFamilies: [][]float64{}})
	})
}

func TestLabelWidth(t *testing.T) {
	l := newLocator(t, wideAxis, ticks.Config{})

	require.InDelta(t, 10, l.LabelWidth(0, 100, []float64{20, 40, 60, 80}), 1e-9)
	require.InDelta(t, 1300, l.LabelWidth(0, 10000, []float64{2000, 4000, 6000, 8000}), 1e-9)
	require.InDelta(t, 0.117, l.LabelWidth(0, 1, []float64{0.25, 0.5, 0.75}), 1e-12)

	// Without candidates, the first guess.
	require.InDelta(t, 7.5, l.LabelWidth(0, 100, nil), 1e-9)

	for _, ctx := range []ticks.RenderContext{
		{PixelLength: 200, FontSize: 10, Rotation: 90},
		{PixelLength: 200, FontSize: 10, Vertical: true},
		{PixelLength: 400, FontSize: 10, DPI: 144, Rotation: -90},
	} {
		l := newLocator(t, ctx, ticks.Config{})
		require.InDelta(t, 6.75, l.LabelWidth(0, 100, []float64{2000, 8000}), 1e-9, "context %+v", ctx)
	}
}

type fixedMeasurer float64

func (m fixedMeasurer) MeasureEm(string) float64 { return float64(m) }

func TestLabelWidthMeasurer(t *testing.T) {
	l := newLocator(t, wideAxis, ticks.Config{Measurer: fixedMeasurer(4)})
	require.InDelta(t, 20, l.LabelWidth(0, 100, []float64{50}), 1e-9)

	ctx := wideAxis
	ctx.Rotation = 60
	l = newLocator(t, ctx, ticks.Config{Measurer: fixedMeasurer(6)})
	require.InDelta(t, 15, l.LabelWidth(0, 100, []float64{50}), 1e-9)
}

func TestTicksFontMetrics(t *testing.T) {
	m := ttf.MustNewMeasurer(goregular.TTF)
	l := newLocator(t, ticks.RenderContext{PixelLength: 400, FontSize: 10}, ticks.Config{Measurer: m})

	got := l.Ticks(0, 1000)
	require.NotEmpty(t, got)
	for i, loc := range got {
		require.GreaterOrEqual(t, loc, 0.0)
		require.LessOrEqual(t, loc, 1000.0)
		if i > 0 {
			require.Greater(t, loc, got[i-1])
		}
	}
	require.Greater(t, l.LabelWidth(0, 1000, got), 0.0)
}

// requireReadable checks that locs are ascending, inside the range, spaced
// for their labels, and clear of the axis ends.
func requireReadable(t *testing.T, l *ticks.Locator, vmin, vmax float64, locs []float64) {
	t.Helper()

	width := l.LabelWidth(vmin, vmax, locs)
	for i, loc := range locs {
		require.GreaterOrEqual(t, loc, vmin)
		require.LessOrEqual(t, loc, vmax)
		if i > 0 {
			require.Greater(t, loc, locs[i-1])
			require.GreaterOrEqual(t, loc-locs[i-1], 1.1*width*(1-1e-6), "ticks %v, label width %v", locs, width)
		}
	}

	if len(locs) >= 2 {
		require.GreaterOrEqual(t, locs[0]-vmin, 0.5*width*(1-1e-6), "ticks %v, label width %v", locs, width)
		require.GreaterOrEqual(t, vmax-locs[len(locs)-1], 0.5*width*(1-1e-6), "ticks %v, label width %v", locs, width)
	}
}

func TestTicksSweep(t *testing.T) {
	for inches := 1.0; inches < 5; inches += 0.5 {
		for _, scale := range []float64{1e-4, 1e-2, 1e-1, 1, 10, 1000} {
			for _, offset := range []float64{scale / 3, 1, 5 * scale} {
				t.Run(fmt.Sprintf("%gin/%g/%g", inches, scale, offset), func(t *testing.T) {
					l := newLocator(t, ticks.RenderContext{
						PixelLength: inches * 0.775 * 100,
						DPI:         100,
						FontSize:    10,
					}, ticks.Config{})

					vmin, vmax := offset-scale, offset+scale
					got := l.Ticks(vmin, vmax)
					require.NotEmpty(t, got)
					requireReadable(t, l, vmin, vmax, got)
				})
			}
		}
	}
}
