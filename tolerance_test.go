package ticks

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStepRounding(t *testing.T) {
	for _, tt := range []struct {
		x, offset, step float64
		floor, ceil     int
	}{
		{x: 0.3, step: 0.1, floor: 3, ceil: 3},
		{x: 0.35, step: 0.1, floor: 3, ceil: 4},
		{x: -0.25, step: 0.1, floor: -3, ceil: -2},
		{x: 1, step: 0.25, floor: 4, ceil: 4},
		{x: 0, step: 7, floor: 0, ceil: 0},

		// A remainder this close to a boundary only snaps when a large
		// offset was subtracted first.
		{x: 0.0029995, step: 1e-3, floor: 2, ceil: 3},
		{x: 0.0029995, offset: 1e6, step: 1e-3, floor: 3, ceil: 3},
		{x: 0.0010005, step: 1e-3, floor: 1, ceil: 2},
		{x: 0.0010005, offset: -1e6, step: 1e-3, floor: 1, ceil: 1},
	} {
		require.Equal(t, tt.floor, floorStep(tt.x, tt.offset, tt.step), "floorStep(%v, %v, %v)", tt.x, tt.offset, tt.step)
		require.Equal(t, tt.ceil, ceilStep(tt.x, tt.offset, tt.step), "ceilStep(%v, %v, %v)", tt.x, tt.offset, tt.step)
	}
}

func TestEdgeTolerance(t *testing.T) {
	require.Equal(t, edgeTolerance, newEdge(0.1, 0).tolerance())
	require.Equal(t, edgeTolerance, newEdge(1, 1).tolerance())
	require.InDelta(t, 1e-3, newEdge(1e-3, 1e6).tolerance(), 1e-12)
	require.InDelta(t, 1e-3, newEdge(1e-3, -1e6).tolerance(), 1e-12)
	require.Equal(t, edgeToleranceMax, newEdge(1, 1e20).tolerance())
}

func TestDivmod(t *testing.T) {
	for _, tt := range []struct {
		x, y, div, mod float64
	}{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{7, -2, -4, -1},
		{-7, -2, 3, -1},
		{6, 3, 2, 0},
	} {
		div, mod := divmod(tt.x, tt.y)
		require.Equal(t, tt.div, div, "divmod(%v, %v)", tt.x, tt.y)
		require.Equal(t, tt.mod, mod, "divmod(%v, %v)", tt.x, tt.y)
	}
}
