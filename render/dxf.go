package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/soypat/slab"
	"github.com/soypat/slab/form2"
	"github.com/soypat/slab/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultDXFMaxSegment is the chord length used to tessellate arcs in DXF output.
const DefaultDXFMaxSegment = 3.0

// DXFOptions configures DXF encoding.
type DXFOptions struct {
	// MaxSegment is the maximum chord length of tessellated arcs in mm.
	// Zero selects DefaultDXFMaxSegment.
	MaxSegment float64
}

func (opts DXFOptions) maxSegment() float64 {
	if opts.MaxSegment > 0 {
		return opts.MaxSegment
	}
	return DefaultDXFMaxSegment
}

// Layer names used by the DXF encoders.
const (
	LayerOuter       = "OUTER"
	LayerCutout      = "CUTOUT"
	LayerOuterMain   = "OUTER_MAIN"
	LayerCutMain     = "CUT_MAIN"
	LayerOuterIsland = "OUTER_ISLAND"
	LayerCutIsland   = "CUT_ISLAND"
)

// WriteDXF writes a single part as a DXF document in millimetres. The outline
// is one closed polyline on LayerOuter and each hole, the shape opening included,
// is a circle or closed polyline on LayerCutout. The y axis points up in DXF so
// every y coordinate is negated.
func WriteDXF(w io.Writer, p slab.Part, opts DXFOptions) error {
	dw := newDXFWriter(w)
	dw.header()
	dw.part(p, r2.Vec{}, LayerOuter, LayerCutout, opts.maxSegment())
	if err := dw.finish(); err != nil {
		return fmt.Errorf("render: dxf: %w", err)
	}
	return nil
}

// WriteDXFCombined writes the main part and the island on one sheet.
// The island is translated by offset. A nil island writes only the main part.
func WriteDXFCombined(w io.Writer, main slab.Part, island *slab.Part, offset r2.Vec, opts DXFOptions) error {
	dw := newDXFWriter(w)
	dw.header()
	maxSeg := opts.maxSegment()
	dw.part(main, r2.Vec{}, LayerOuterMain, LayerCutMain, maxSeg)
	if island != nil {
		dw.part(*island, offset, LayerOuterIsland, LayerCutIsland, maxSeg)
	}
	if err := dw.finish(); err != nil {
		return fmt.Errorf("render: dxf combined: %w", err)
	}
	return nil
}

// WriteDeliverable writes d with WriteDXFCombined when it is a combined
// sheet and WriteDXF otherwise.
func WriteDeliverable(w io.Writer, d slab.Deliverable, opts DXFOptions) error {
	if len(d.Parts) == 0 {
		return fmt.Errorf("render: dxf: deliverable %q has no parts", d.Name)
	}
	if !d.Combined {
		return WriteDXF(w, d.Parts[0].Part, opts)
	}
	var island *slab.Part
	var offset r2.Vec
	if len(d.Parts) > 1 {
		island = &d.Parts[1].Part
		offset = d.Parts[1].Offset
	}
	return WriteDXFCombined(w, d.Parts[0].Part, island, offset, opts)
}

// dxfWriter emits group code/value pairs and keeps the first write error.
type dxfWriter struct {
	w   *bufio.Writer
	err error
}

func newDXFWriter(w io.Writer) *dxfWriter {
	return &dxfWriter{w: bufio.NewWriter(w)}
}

func (dw *dxfWriter) group(code int, value string) {
	if dw.err != nil {
		return
	}
	_, dw.err = fmt.Fprintf(dw.w, "%d\n%s\n", code, value)
}

func (dw *dxfWriter) num(code int, v float64) {
	dw.group(code, form2.FormatFloat(v))
}

func (dw *dxfWriter) header() {
	dw.group(0, "SECTION")
	dw.group(2, "HEADER")
	dw.group(9, "$INSUNITS")
	dw.group(70, "4") // Millimetres.
	dw.group(0, "ENDSEC")
	dw.group(0, "SECTION")
	dw.group(2, "ENTITIES")
}

func (dw *dxfWriter) finish() error {
	dw.group(0, "ENDSEC")
	dw.group(0, "EOF")
	if dw.err != nil {
		return dw.err
	}
	return dw.w.Flush()
}

func (dw *dxfWriter) part(p slab.Part, offset r2.Vec, outerLayer, cutLayer string, maxSeg float64) {
	dw.polyline(form2.Translate(p.Polyline(maxSeg), offset), outerLayer)
	for _, c := range p.Holes() {
		if c.Area() == 0 {
			continue
		}
		if c.Kind == slab.CutoutCircle {
			dw.circle(r2.Add(c.Center, offset), slab.Dim(c.Radius), cutLayer)
			continue
		}
		dw.polyline(form2.Translate(c.Polyline(maxSeg), offset), cutLayer)
	}
}

func (dw *dxfWriter) circle(center r2.Vec, radius float64, layer string) {
	center = d2.NegY(center)
	dw.group(0, "CIRCLE")
	dw.group(8, layer)
	dw.num(10, center.X)
	dw.num(20, center.Y)
	dw.num(30, 0)
	dw.num(40, radius)
}

// polyline writes a closed LWPOLYLINE. A trailing vertex repeating the
// first one is dropped since the closed flag already joins them.
func (dw *dxfWriter) polyline(pts []r2.Vec, layer string) {
	if n := len(pts); n > 1 && d2.EqualWithin(pts[0], pts[n-1], form2.DedupeEpsilon) {
		pts = pts[:n-1]
	}
	if len(pts) < 2 {
		return
	}
	dw.group(0, "LWPOLYLINE")
	dw.group(8, layer)
	dw.group(90, strconv.Itoa(len(pts)))
	dw.group(70, "1") // Closed.
	for _, pt := range pts {
		pt = d2.NegY(pt)
		dw.num(10, pt.X)
		dw.num(20, pt.Y)
	}
}
