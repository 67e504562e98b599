package view_test

import (
	"testing"

	"github.com/soypat/slab"
	"github.com/soypat/slab/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestTransformRoundTrip(t *testing.T) {
	tr := view.Transform{Pan: r2.Vec{X: 80, Y: 80}, Zoom: 0.5}
	assert.Equal(t, r2.Vec{X: 40, Y: 240}, tr.ToSheet(r2.Vec{X: 100, Y: 200}))
	assert.Equal(t, r2.Vec{X: 100, Y: 200}, tr.ToScreen(r2.Vec{X: 40, Y: 240}))
}

func TestZoomBy(t *testing.T) {
	tr := view.NewTransform(slab.View{Zoom: 0.6})
	assert.Equal(t, view.DefaultPan, tr.Pan)
	assert.InDelta(t, 0.66, tr.ZoomBy(-1).Zoom, 1e-12)
	assert.InDelta(t, 0.54, tr.ZoomBy(1).Zoom, 1e-12)
	for i := 0; i < 100; i++ {
		tr = tr.ZoomBy(-1)
	}
	assert.Equal(t, view.MaxZoom, tr.Zoom)
	for i := 0; i < 100; i++ {
		tr = tr.ZoomBy(1)
	}
	assert.Equal(t, view.MinZoom, tr.Zoom)
}

func TestSelection(t *testing.T) {
	sel, err := view.ParseSelection("island:i3f2a")
	require.NoError(t, err)
	assert.Equal(t, view.Selection{Context: slab.ContextIsland, ID: "i3f2a"}, sel)
	assert.Equal(t, "island:i3f2a", sel.String())
	assert.Equal(t, "main:m1", view.Selection{Context: slab.ContextMain, ID: "m1"}.String())
	for _, bad := range []string{"", "main", "main:", "side:m1"} {
		_, err := view.ParseSelection(bad)
		assert.Error(t, err, bad)
	}
}

func TestDragMainWithSnap(t *testing.T) {
	s := slab.DefaultSheet()
	tr := view.Transform{Pan: r2.Vec{X: 80, Y: 80}, Zoom: 0.5}
	sel := view.Selection{Context: slab.ContextMain, ID: "m1"}
	// m1 is centered at (500, 300); grab it 10 mm right of its center.
	d, ok := view.BeginDrag(s, tr, sel, tr.ToScreen(r2.Vec{X: 510, Y: 300}))
	require.True(t, ok)
	assert.Equal(t, r2.Vec{X: 10}, d.Grab)

	s = d.Update(s, tr, tr.ToScreen(r2.Vec{X: 634, Y: 380}))
	c, _ := sel.Cutout(s)
	assert.Equal(t, r2.Vec{X: 600, Y: 400}, c.Center)
}

func TestDragIsland(t *testing.T) {
	s := slab.DefaultSheet()
	s.View.Snap = false
	s, id := s.AddCutout(slab.ContextIsland, slab.CutoutCircle)
	sel := view.Selection{Context: slab.ContextIsland, ID: id}
	tr := view.Transform{Zoom: 1}
	off := s.Placement().Offset

	d, ok := view.BeginDrag(s, tr, sel, r2.Add(off, r2.Vec{X: 500, Y: 300}))
	require.True(t, ok)
	assert.Equal(t, r2.Vec{}, d.Grab)
	s = d.Update(s, tr, r2.Add(off, r2.Vec{X: 123, Y: 45}))
	c, _ := sel.Cutout(s)
	assert.Equal(t, r2.Vec{X: 123, Y: 45}, c.Center)

	_, ok = view.BeginDrag(s, tr, view.Selection{Context: slab.ContextIsland, ID: "nope"}, r2.Vec{})
	assert.False(t, ok)
}

func TestPanDrag(t *testing.T) {
	tr := view.Transform{Pan: r2.Vec{X: 80, Y: 80}, Zoom: 1}
	pd := view.BeginPan(tr, r2.Vec{X: 10, Y: 10})
	assert.Equal(t, r2.Vec{X: 100, Y: 50}, pd.Update(r2.Vec{X: 30, Y: -20}).Pan)
}
