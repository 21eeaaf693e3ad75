package viewport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodework/internal/geometry"
)

var window = geometry.New(1280, 720)

func TestNew(t *testing.T) {
	vb := New(window)

	assert.Equal(t, 1.0, vb.Zoom)
	assert.Equal(t, geometry.Zero, vb.Offset)
	assert.Equal(t, window, vb.Resolution)
	assert.Equal(t, "0 0 1280 720", vb.Attr())
}

func TestUpdateZoom(t *testing.T) {
	limits := DefaultLimits()

	t.Run("positive delta zooms out one step", func(t *testing.T) {
		vb := New(window).UpdateZoom(120, window, limits)
		assert.InDelta(t, 1.1, vb.Zoom, 1e-9)
		assert.Equal(t, window.Scale(vb.Zoom), vb.Resolution)
	})

	t.Run("negative delta zooms in one step", func(t *testing.T) {
		vb := New(window).UpdateZoom(-3, window, limits)
		assert.InDelta(t, 0.9, vb.Zoom, 1e-9)
	})

	t.Run("never leaves the bounds", func(t *testing.T) {
		vb := New(window)
		for i := 0; i < 100; i++ {
			vb = vb.UpdateZoom(1, window, limits)
			require.LessOrEqual(t, vb.Zoom, DefaultZoomMax)
			require.GreaterOrEqual(t, vb.Zoom, DefaultZoomMin)
		}
		assert.Equal(t, DefaultZoomMax, vb.Zoom)

		for i := 0; i < 100; i++ {
			vb = vb.UpdateZoom(-1, window, limits)
			require.LessOrEqual(t, vb.Zoom, DefaultZoomMax)
			require.GreaterOrEqual(t, vb.Zoom, DefaultZoomMin)
		}
		assert.Equal(t, DefaultZoomMin, vb.Zoom)
	})

	t.Run("alternating scrolls stay in bounds", func(t *testing.T) {
		vb := New(window)
		deltas := []float64{1, 1, -1, 1, 1, 1, -1, -1, -1, -1, -1, -1, -1, 1}
		for _, d := range deltas {
			vb = vb.UpdateZoom(d, window, limits)
			assert.True(t, vb.Zoom >= DefaultZoomMin && vb.Zoom <= DefaultZoomMax, "zoom %v", vb.Zoom)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	points := []geometry.Vector{
		geometry.New(0, 0),
		geometry.New(17, 3),
		geometry.New(-250, 640),
		geometry.New(1279, 719),
		geometry.New(-999, -1),
	}
	offsets := []geometry.Vector{
		geometry.Zero,
		geometry.New(120, -40),
		geometry.New(-500, 500),
	}

	for zoom := DefaultZoomMin; zoom <= DefaultZoomMax+1e-9; zoom += DefaultZoomStep {
		for _, off := range offsets {
			vb := ViewBox{Offset: off, Resolution: window.Scale(zoom), Zoom: zoom}
			tolerance := int(math.Ceil(zoom / 2))

			for _, p := range points {
				got := vb.ToWorld(vb.ToScreen(p))
				assert.LessOrEqual(t, abs(got.X-p.X), tolerance, "zoom %.1f offset %v point %v", zoom, off, p)
				assert.LessOrEqual(t, abs(got.Y-p.Y), tolerance, "zoom %.1f offset %v point %v", zoom, off, p)
			}
		}
	}
}

func TestToWorldAtUnitZoomIsExact(t *testing.T) {
	vb := New(window).WithOffset(geometry.New(30, -60))
	p := geometry.New(101, 202)

	assert.Equal(t, geometry.New(131, 142), vb.ToWorld(p))
	assert.Equal(t, p, vb.ToScreen(vb.ToWorld(p)))
}

func TestBoundedOffset(t *testing.T) {
	tests := []struct {
		name   string
		anchor geometry.Vector
		cursor geometry.Vector
		want   geometry.Vector
	}{
		{"no movement", geometry.New(100, 100), geometry.New(100, 100), geometry.Zero},
		{"drag right pans left", geometry.New(100, 100), geometry.New(160, 100), geometry.New(-60, 0)},
		{"drag up pans down", geometry.New(0, 0), geometry.New(0, -45), geometry.New(0, 45)},
		{"clamped", geometry.New(0, 0), geometry.New(2000, -2000), geometry.New(-500, 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BoundedOffset(tt.anchor, tt.cursor, DefaultPanLimit))
		})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
