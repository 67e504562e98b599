package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/soypat/slab"
	"github.com/soypat/slab/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

// dxfPairs splits DXF output into group code/value pairs.
func dxfPairs(t *testing.T, s string) [][2]string {
	t.Helper()
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	require.Zero(t, len(lines)%2, "odd number of DXF lines")
	pairs := make([][2]string, 0, len(lines)/2)
	for i := 0; i < len(lines); i += 2 {
		pairs = append(pairs, [2]string{lines[i], lines[i+1]})
	}
	return pairs
}

func entities(pairs [][2]string) (kinds, layers []string) {
	for i, p := range pairs {
		if p[0] != "0" || (p[1] != "LWPOLYLINE" && p[1] != "CIRCLE") {
			continue
		}
		kinds = append(kinds, p[1])
		if i+1 < len(pairs) && pairs[i+1][0] == "8" {
			layers = append(layers, pairs[i+1][1])
		}
	}
	return kinds, layers
}

func TestWriteDXFStructure(t *testing.T) {
	p := slab.Part{Width: 200, Height: 100, Cutouts: slab.Cutouts{
		{ID: "m1", Kind: slab.CutoutCircle, Center: r2.Vec{X: 100, Y: 50}, Radius: 10},
	}}
	var buf bytes.Buffer
	require.NoError(t, render.WriteDXF(&buf, p, render.DXFOptions{}))
	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "0\nEOF\n"))
	assert.Contains(t, out, "9\n$INSUNITS\n70\n4\n")

	pairs := dxfPairs(t, out)
	kinds, layers := entities(pairs)
	assert.Equal(t, []string{"LWPOLYLINE", "CIRCLE"}, kinds)
	assert.Equal(t, []string{render.LayerOuter, render.LayerCutout}, layers)
	assert.Contains(t, out, "CIRCLE\n8\nCUTOUT\n10\n100\n20\n-50\n30\n0\n40\n10\n")
}

func TestWriteDXFRectPolylineClosed(t *testing.T) {
	p := slab.Part{Width: 200, Height: 100}
	var buf bytes.Buffer
	require.NoError(t, render.WriteDXF(&buf, p, render.DXFOptions{}))
	pairs := dxfPairs(t, buf.String())
	var count, flag string
	var xs, ys []string
	for _, p := range pairs {
		switch p[0] {
		case "90":
			count = p[1]
		case "70":
			flag = p[1]
		case "10":
			xs = append(xs, p[1])
		case "20":
			ys = append(ys, p[1])
		}
	}
	assert.Equal(t, "4", count)
	assert.Equal(t, "1", flag)
	assert.Equal(t, []string{"0", "200", "200", "0"}, xs)
	assert.Equal(t, []string{"0", "0", "-100", "-100"}, ys)
}

func TestWriteDXFFilletedCutoutTessellated(t *testing.T) {
	p := slab.Part{Width: 1000, Height: 600, Cutouts: slab.Cutouts{
		{ID: "m1", Kind: slab.CutoutRect, Center: r2.Vec{X: 500, Y: 300}, Width: 400, Height: 200, Fillets: slab.FilletSet{TL: 30}},
		{ID: "m2", Kind: slab.CutoutRect, Center: r2.Vec{X: 200, Y: 300}, Width: 100, Height: 100},
	}}
	var buf bytes.Buffer
	require.NoError(t, render.WriteDXF(&buf, p, render.DXFOptions{MaxSegment: 3}))
	pairs := dxfPairs(t, buf.String())
	var counts []string
	for _, p := range pairs {
		if p[0] == "90" {
			counts = append(counts, p[1])
		}
	}
	require.Len(t, counts, 3)
	assert.Equal(t, "4", counts[0])
	assert.NotEqual(t, "4", counts[1], "filleted cutout must be tessellated")
	assert.Equal(t, "4", counts[2])
}

func TestWriteDXFLShapeIncludesNotch(t *testing.T) {
	p := slab.Part{Shape: slab.ShapeL, Width: 1000, Height: 600,
		L: slab.LParams{Corner: slab.CornerTR, Width: 300, Depth: 300}}
	var buf bytes.Buffer
	require.NoError(t, render.WriteDXF(&buf, p, render.DXFOptions{}))
	kinds, layers := entities(dxfPairs(t, buf.String()))
	assert.Equal(t, []string{"LWPOLYLINE", "LWPOLYLINE"}, kinds)
	assert.Equal(t, []string{render.LayerOuter, render.LayerCutout}, layers)
}

func TestWriteDXFCombined(t *testing.T) {
	s := slab.DefaultSheet()
	s.Island.Separate = false
	s.Island.Cutouts = slab.Cutouts{{ID: "i1", Kind: slab.CutoutCircle, Center: r2.Vec{X: 100, Y: 100}, Radius: 50}}
	ds := s.Deliverables()
	require.Len(t, ds, 1)
	var buf bytes.Buffer
	require.NoError(t, render.WriteDeliverable(&buf, ds[0], render.DXFOptions{}))
	out := buf.String()
	_, layers := entities(dxfPairs(t, out))
	assert.Equal(t, []string{
		render.LayerOuterMain, render.LayerCutMain, render.LayerCutMain,
		render.LayerOuterIsland, render.LayerCutIsland,
	}, layers)
	// Island circle translated by the placement offset of 2000+220.
	assert.Contains(t, out, "CIRCLE\n8\nCUT_ISLAND\n10\n2320\n20\n-100\n")
}

func TestWriteDeliverableSeparate(t *testing.T) {
	s := slab.DefaultSheet()
	ds := s.Deliverables()
	require.Len(t, ds, 2)
	var buf bytes.Buffer
	require.NoError(t, render.WriteDeliverable(&buf, ds[1], render.DXFOptions{}))
	_, layers := entities(dxfPairs(t, buf.String()))
	assert.Equal(t, []string{render.LayerOuter}, layers)
	assert.NotContains(t, buf.String(), "2220")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestWriteDXFWriterError(t *testing.T) {
	err := render.WriteDXF(failWriter{}, slab.Part{Width: 10, Height: 10}, render.DXFOptions{})
	assert.ErrorIs(t, err, assert.AnError)
}
