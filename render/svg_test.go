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

func TestWriteSVG(t *testing.T) {
	s := slab.DefaultSheet()
	var buf bytes.Buffer
	require.NoError(t, render.WriteSVG(&buf, s, render.SVGOptions{}))
	out := buf.String()

	// Scene spans 0..3420 by 0..800, grown by the default margin.
	assert.Contains(t, out, `width="3620mm"`)
	assert.Contains(t, out, `height="1000mm"`)
	assert.Contains(t, out, `viewBox="-100 -100 3620 1000"`)
	assert.Contains(t, out, `fill-rule="evenodd"`)
	assert.Contains(t, out, `<g transform="translate(2220, 0)">`)
	assert.Equal(t, 2, strings.Count(out, "<path "), "one compound path per part")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestWriteSVGWithoutIsland(t *testing.T) {
	s := slab.Sheet{Main: slab.Part{Width: 200, Height: 100, Cutouts: slab.Cutouts{
		{ID: "m1", Kind: slab.CutoutCircle, Center: r2.Vec{X: 100, Y: 50}, Radius: 10},
	}}}
	var buf bytes.Buffer
	require.NoError(t, render.WriteSVG(&buf, s, render.SVGOptions{Margin: -1}))
	out := buf.String()
	assert.Contains(t, out, `viewBox="0 0 200 100"`)
	assert.NotContains(t, out, "translate(")
	assert.Contains(t, out, "M 0 0 H 200 L 200 0 V 100 L 200 100 H 0 L 0 100 V 0 L 0 0 Z M 90 50 A 10 10 0 0 1 110 50 A 10 10 0 0 1 90 50 Z")
}

func TestNewDocument(t *testing.T) {
	s := slab.DefaultSheet()
	doc, err := render.NewDocument(s, render.SVGOptions{Margin: 10})
	require.NoError(t, err)
	assert.Equal(t, 3440.0, doc.Width)
	assert.Equal(t, 820.0, doc.Height)
	assert.Equal(t, r2.Vec{X: -10, Y: -10}, doc.ViewBox.Min)
	assert.Len(t, doc.Scene, 2)
	assert.True(t, bytes.Contains(doc.SVG, []byte("<svg")))
}
