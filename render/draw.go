package render

import (
	"image/color"
	"math"

	"github.com/llgcode/draw2d"
	"github.com/soypat/slab"
	"github.com/soypat/slab/form2"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	partFill   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	partStroke = color.RGBA{A: 0xff}
)

// drawScene fills and strokes every part of the document with the even-odd
// rule. The graphic context's transform must map millimetres to device
// units with the document's view box origin already applied.
func drawScene(gc draw2d.GraphicContext, doc Document) {
	gc.SetFillRule(draw2d.FillRuleEvenOdd)
	gc.SetFillColor(partFill)
	gc.SetStrokeColor(partStroke)
	gc.SetLineWidth(1)
	for _, pp := range doc.Scene {
		gc.BeginPath()
		for _, path := range pp.Paths() {
			tracePath(gc, path)
		}
		gc.FillStroke()
	}
}

// viewTransform maps the document's view box onto a device whose units are
// scale times a millimetre.
func viewTransform(gc draw2d.GraphicContext, doc Document, scale float64) {
	gc.Scale(scale, scale)
	gc.Translate(-doc.ViewBox.Min.X, -doc.ViewBox.Min.Y)
}

func tracePath(pb draw2d.PathBuilder, p form2.Path) {
	for _, c := range p {
		switch c.Op {
		case form2.OpMove:
			pb.MoveTo(c.To.X, c.To.Y)
		case form2.OpLine, form2.OpHoriz, form2.OpVert:
			pb.LineTo(c.To.X, c.To.Y)
		case form2.OpArc:
			start := c.Start * math.Pi / 180
			sweep := (c.End - c.Start) * math.Pi / 180
			pb.ArcTo(c.Center.X, c.Center.Y, c.Radius, c.Radius, start, sweep)
		case form2.OpClose:
			pb.Close()
		}
	}
}

func documentSize(doc Document) r2.Vec {
	return r2.Vec{X: slab.Dim(doc.Width), Y: slab.Dim(doc.Height)}
}
