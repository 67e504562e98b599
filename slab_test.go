package slab_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/soypat/slab"
	"github.com/soypat/slab/form2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

func rectPart(w, h float64) slab.Part {
	return slab.Part{Shape: slab.ShapeRect, Width: w, Height: h}
}

func TestNetAreaRect(t *testing.T) {
	p := rectPart(200, 100)
	assert.Equal(t, 20000.0, p.NetArea())
}

func TestNetAreaCircleCutout(t *testing.T) {
	p := rectPart(200, 100)
	p.Cutouts = slab.Cutouts{{ID: "m1", Kind: slab.CutoutCircle, Center: r2.Vec{X: 100, Y: 50}, Radius: 10}}
	got := p.NetArea()
	assert.True(t, scalar.EqualWithinAbs(got, 20000-math.Pi*100, 1e-9), "got %v", got)
	assert.True(t, scalar.EqualWithinAbs(got, 19685.84, 0.01))
}

func TestNetAreaNeverNegative(t *testing.T) {
	p := rectPart(100, 100)
	p.Cutouts = slab.Cutouts{
		{ID: "m1", Kind: slab.CutoutRect, Center: r2.Vec{X: 50, Y: 50}, Width: 100, Height: 100},
		{ID: "m2", Kind: slab.CutoutRect, Center: r2.Vec{X: 50, Y: 50}, Width: 100, Height: 100},
	}
	assert.Equal(t, 0.0, p.NetArea())
}

func TestLNotchOpening(t *testing.T) {
	p := slab.Part{Shape: slab.ShapeL, Width: 1000, Height: 600,
		L: slab.LParams{Corner: slab.CornerTR, Width: 300, Depth: 300}}
	o := p.Opening()
	require.Equal(t, slab.OpeningNotch, o.Kind)
	assert.Equal(t, r2.Vec{X: 850, Y: 150}, o.Center)
	assert.Equal(t, 600000.0-90000, p.NetArea())
}

func TestOpeningInsideBounds(t *testing.T) {
	for _, corner := range []slab.Corner{slab.CornerTL, slab.CornerTR, slab.CornerBR, slab.CornerBL} {
		for _, size := range []float64{0, 100, 599, 5000, -3, math.NaN()} {
			p := slab.Part{Shape: slab.ShapeL, Width: 1000, Height: 600,
				L: slab.LParams{Corner: corner, Width: size, Depth: size}}
			assertBoxInside(t, p.Bounds(), p.Opening().Bounds())
		}
	}
	for _, side := range []slab.Side{slab.SideTop, slab.SideBottom} {
		for _, size := range []float64{0, 300, 2000, math.Inf(1)} {
			p := slab.Part{Shape: slab.ShapeU, Width: 1000, Height: 600,
				U: slab.UParams{Side: side, Width: size, Depth: size}}
			o := p.Opening()
			assert.Equal(t, slab.OpeningSlot, o.Kind)
			assertBoxInside(t, p.Bounds(), o.Bounds())
		}
	}
}

func assertBoxInside(t *testing.T, outer, inner r2.Box) {
	t.Helper()
	const tol = 1e-9
	assert.GreaterOrEqual(t, inner.Min.X, outer.Min.X-tol)
	assert.GreaterOrEqual(t, inner.Min.Y, outer.Min.Y-tol)
	assert.LessOrEqual(t, inner.Max.X, outer.Max.X+tol)
	assert.LessOrEqual(t, inner.Max.Y, outer.Max.Y+tol)
}

func TestUSlotBottom(t *testing.T) {
	p := slab.Part{Shape: slab.ShapeU, Width: 1000, Height: 600,
		U: slab.UParams{Side: slab.SideBottom, Width: 400, Depth: 200}}
	o := p.Opening()
	assert.Equal(t, r2.Vec{X: 500, Y: 500}, o.Center)
	holes := p.Holes()
	require.NotEmpty(t, holes)
	assert.Equal(t, "holeU", holes[0].ID)
}

func TestAreasCombined(t *testing.T) {
	s := slab.DefaultSheet()
	s.Island.Separate = false
	rep := s.Areas()
	require.True(t, rep.HasTotal)
	assert.Equal(t, s.Main.NetArea(), rep.Main)
	assert.Equal(t, s.Island.Part().NetArea(), rep.Island)
	assert.Equal(t, rep.Main+rep.Island, rep.Total)

	s.Island.Separate = true
	rep = s.Areas()
	assert.False(t, rep.HasTotal)
	assert.Equal(t, 1200.0*800, rep.Island)

	s.Island = nil
	rep = s.Areas()
	assert.True(t, rep.HasTotal)
	assert.Equal(t, rep.Main, rep.Total)
}

func TestDeliverables(t *testing.T) {
	s := slab.DefaultSheet()
	ds := s.Deliverables()
	require.Len(t, ds, 2)
	assert.Equal(t, "countertop_main_2000x600mm", ds[0].Name)
	assert.Equal(t, "countertop_island_1200x800mm", ds[1].Name)
	assert.Equal(t, r2.Vec{}, ds[1].Parts[0].Offset)

	s.Island.Separate = false
	ds = s.Deliverables()
	require.Len(t, ds, 1)
	assert.True(t, ds[0].Combined)
	assert.Equal(t, "countertops_sheet", ds[0].Name)
	require.Len(t, ds[0].Parts, 2)
	assert.Equal(t, r2.Vec{X: 2220}, ds[0].Parts[1].Offset)
}

func TestSceneIgnoresSeparate(t *testing.T) {
	s := slab.DefaultSheet()
	sep := s.Scene()
	s.Island.Separate = false
	comb := s.Scene()
	assert.Equal(t, sep, comb)
	b := comb.Bounds()
	assert.Equal(t, r2.Box{Max: r2.Vec{X: 2220 + 1200, Y: 800}}, b)
}

func TestCutoutLifecycle(t *testing.T) {
	ids := []string{"aaaaaaaa", "aaaaaaaa", "bbbbbbbb"}
	defer slab.SetIDSource(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	})()
	s := slab.Sheet{Main: rectPart(2000, 600)}

	s, id1 := s.AddCutout(slab.ContextMain, slab.CutoutRect)
	s, id2 := s.AddCutout(slab.ContextMain, slab.CutoutCircle)
	assert.Equal(t, "maaaaaaaa", id1)
	assert.Equal(t, "mbbbbbbbb", id2, "colliding id must be regenerated")

	c, ok := s.Cutout(slab.ContextMain, id1)
	require.True(t, ok)
	assert.Equal(t, r2.Vec{X: 400, Y: 300}, c.Center)
	assert.Equal(t, 560.0, c.Width)

	before := s
	s = s.UpdateCutout(slab.ContextMain, id1, slab.Patch{"w": "120mm", "rTL": 5, "bogus": 1, "x": true})
	c, _ = s.Cutout(slab.ContextMain, id1)
	assert.Equal(t, 120.0, c.Width)
	assert.Equal(t, 5.0, c.Fillets.TL)
	assert.Equal(t, 0.0, c.Center.X)
	old, _ := before.Cutout(slab.ContextMain, id1)
	assert.Equal(t, 560.0, old.Width, "update must not mutate the previous sheet")

	assert.Equal(t, s, s.UpdateCutout(slab.ContextMain, "nope", slab.Patch{"w": 1}))
	assert.Equal(t, s, s.RemoveCutout(slab.ContextMain, "nope"))

	s = s.RemoveCutout(slab.ContextMain, id1)
	_, ok = s.Cutout(slab.ContextMain, id1)
	assert.False(t, ok)
	assert.Len(t, s.Main.Cutouts, 1)
}

func TestCutoutIslandWithoutIsland(t *testing.T) {
	s := slab.Sheet{Main: rectPart(100, 100)}
	got, id := s.AddCutout(slab.ContextIsland, slab.CutoutCircle)
	assert.Empty(t, id)
	assert.Nil(t, got.Island)
}

func TestCutoutIslandDoesNotAlias(t *testing.T) {
	s := slab.DefaultSheet()
	s2, id := s.AddCutout(slab.ContextIsland, slab.CutoutCircle)
	assert.True(t, strings.HasPrefix(id, "i"))
	assert.Empty(t, s.Island.Cutouts)
	assert.Len(t, s2.Island.Cutouts, 1)
}

func TestMoveCutoutSnaps(t *testing.T) {
	s := slab.DefaultSheet()
	s = s.MoveCutout(slab.ContextMain, "m1", r2.Vec{X: 523, Y: 276})
	c, _ := s.Cutout(slab.ContextMain, "m1")
	assert.Equal(t, r2.Vec{X: 500, Y: 300}, c.Center)

	s.View.Snap = false
	s = s.MoveCutout(slab.ContextMain, "m1", r2.Vec{X: 523, Y: 276})
	c, _ = s.Cutout(slab.ContextMain, "m1")
	assert.Equal(t, r2.Vec{X: 523, Y: 276}, c.Center)
}

func TestCoerce(t *testing.T) {
	for _, test := range []struct {
		in   any
		want float64
	}{
		{in: 12.5, want: 12.5},
		{in: 7, want: 7},
		{in: "42", want: 42},
		{in: "  3.5mm", want: 3.5},
		{in: "-1e2x", want: -100},
		{in: "abc", want: 0},
		{in: "", want: 0},
		{in: nil, want: 0},
		{in: math.NaN(), want: 0},
		{in: []int{1}, want: 0},
	} {
		assert.Equal(t, test.want, slab.Coerce(test.in), "Coerce(%#v)", test.in)
	}
}

func TestPartContoursClockwise(t *testing.T) {
	s := slab.DefaultSheet()
	for _, shape := range []slab.ShapeKind{slab.ShapeRect, slab.ShapeL, slab.ShapeU} {
		p := s.Main
		p.Shape = shape
		assert.True(t, form2.Clockwise(p.Polyline(3)))
		for _, h := range p.Holes() {
			pts := h.Polyline(3)
			assert.True(t, form2.Clockwise(pts), "%s hole %s", shape, h.ID)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := slab.DefaultSheet()
	s.Main.Shape = slab.ShapeU
	s.Main.L.Fillets = slab.FilletSet{BL: 4}
	s.Island.Cutouts = slab.Cutouts{{ID: "i1", Kind: slab.CutoutRect, Center: r2.Vec{X: 10, Y: 20}, Width: 30, Height: 40, Fillets: form2.Uniform(2)}}

	first, err := slab.Marshal(s)
	require.NoError(t, err)
	loaded, err := slab.Unmarshal(first)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	var buf bytes.Buffer
	require.NoError(t, slab.Save(&buf, loaded))
	assert.Equal(t, string(first), buf.String())
	assert.Contains(t, buf.String(), `"id": "holeU"`)
}

func TestLoadJSON5(t *testing.T) {
	const doc = `{
	// hand edited
	version: 3,
	units: "mm",
	thickness: 20,
	main: {shape: "L", size: {w: 1000, h: 600}, L: {corner: "BL", w: 300, d: 200,},
		holes: [{id: "ignored", type: "rect", x: 1, y: 1, w: 1, h: 1}],
		cutouts: [{id: "m1", type: "circle", x: 100, y: 100, r: 30}],},
	island: null,
	view: {grid: 10, snap: true, zoom: 1},
}`
	s, err := slab.Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Nil(t, s.Island)
	assert.Equal(t, slab.ShapeL, s.Main.Shape)
	assert.Equal(t, slab.CornerBL, s.Main.L.Corner)
	require.Len(t, s.Main.Cutouts, 1)
	assert.Equal(t, 30.0, s.Main.Cutouts[0].Radius)
	assert.Equal(t, r2.Vec{X: 150, Y: 500}, s.Main.Opening().Center)
}

func TestLoadNonFiniteSaves(t *testing.T) {
	const doc = `{version: 3, units: "mm", thickness: Infinity,
	main: {shape: "rect", size: {w: Infinity, h: NaN}, fillets: {rTL: NaN},
		cutouts: [{id: "m1", type: "circle", x: NaN, y: 10, r: Infinity}]},
	view: {grid: 10, snap: false, zoom: 1}}`
	s, err := slab.Unmarshal([]byte(doc))
	require.NoError(t, err)
	assert.Zero(t, s.Main.Width)
	assert.Zero(t, s.Main.Height)
	assert.Zero(t, s.Thickness)
	assert.Zero(t, s.Main.Fillets.TL)
	require.Len(t, s.Main.Cutouts, 1)
	assert.Equal(t, r2.Vec{X: 0, Y: 10}, s.Main.Cutouts[0].Center)
	assert.Zero(t, s.Main.Cutouts[0].Radius)

	_, err = slab.Marshal(s)
	require.NoError(t, err)

	s = slab.DefaultSheet()
	s.Main.Width = math.NaN()
	s.Island.Radius = math.Inf(1)
	data, err := slab.Marshal(s)
	require.NoError(t, err)
	loaded, err := slab.Unmarshal(data)
	require.NoError(t, err)
	assert.Zero(t, loaded.Main.Width)
	assert.Zero(t, loaded.Island.Radius)
}

func TestLoadRejectsUnits(t *testing.T) {
	_, err := slab.Unmarshal([]byte(`{"version": 3, "units": "in"}`))
	assert.ErrorIs(t, err, slab.ErrUnsupportedUnits)
	_, err = slab.Unmarshal([]byte(`{"version": 9, "units": "mm"}`))
	assert.ErrorIs(t, err, slab.ErrUnsupportedVersion)
}
