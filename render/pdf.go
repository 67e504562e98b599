package render

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dpdf"
	"gonum.org/v1/gonum/spatial/r2"
)

// PageSize is an ISO 216 paper size in portrait orientation, in mm.
type PageSize struct {
	Name string
	Size r2.Vec
}

// PageSizes lists the pages PDF chooses from, smallest first.
var PageSizes = []PageSize{
	{Name: "A4", Size: r2.Vec{X: 210, Y: 297}},
	{Name: "A3", Size: r2.Vec{X: 297, Y: 420}},
	{Name: "A2", Size: r2.Vec{X: 420, Y: 594}},
	{Name: "A1", Size: r2.Vec{X: 594, Y: 841}},
	{Name: "A0", Size: r2.Vec{X: 841, Y: 1189}},
}

// PDF renders documents to a single page PDF.
type PDF struct{}

var _ Renderer = PDF{}

// Layout picks the page for a document of the given size. It returns the
// smallest page that holds the document at 1:1 in either orientation and
// a scale of 1, or the largest page and the scale that makes the document fit.
func (PDF) Layout(size r2.Vec) (page PageSize, landscape bool, scale float64) {
	landscape = size.X > size.Y
	for _, ps := range PageSizes {
		if fits(size, ps.Size, landscape) {
			return ps, landscape, 1
		}
	}
	page = PageSizes[len(PageSizes)-1]
	dims := oriented(page.Size, landscape)
	scale = math.Min(dims.X/size.X, dims.Y/size.Y)
	return page, landscape, scale
}

func oriented(portrait r2.Vec, landscape bool) r2.Vec {
	if landscape {
		return r2.Vec{X: portrait.Y, Y: portrait.X}
	}
	return portrait
}

func fits(size, portrait r2.Vec, landscape bool) bool {
	dims := oriented(portrait, landscape)
	return size.X <= dims.X && size.Y <= dims.Y
}

// Render draws the document centered on its page.
func (p PDF) Render(ctx context.Context, doc Document) ([]byte, error) {
	size := documentSize(doc)
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("render: pdf: empty document")
	}
	page, landscape, scale := p.Layout(size)
	orientation := "P"
	if landscape {
		orientation = "L"
	}
	dims := oriented(page.Size, landscape)
	pdf := newPage(orientation, page.Size)
	gc := draw2dpdf.NewGraphicContext(pdf)
	margin := r2.Scale(0.5, r2.Sub(dims, r2.Scale(scale, size)))
	gc.Translate(margin.X, margin.Y)
	viewTransform(gc, doc, scale)
	drawScene(gc, doc)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// newPage sets up a one page document the way draw2dpdf.NewPdf does. The
// page is given by its size since gofpdf has no name for A0.
func newPage(orientation string, portrait r2.Vec) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: portrait.X, Ht: portrait.Y},
		FontDirStr:     draw2d.GetFontFolder(),
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(255, 255, 255)
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	pdf.SetLineWidth(1)
	pdf.AddPage()
	return pdf
}
