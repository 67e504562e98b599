package render

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/soypat/slab"
	"github.com/soypat/slab/form2"
	"github.com/soypat/slab/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultSVGMargin is the blank border around the scene in SVG output, in mm.
const DefaultSVGMargin = 100.0

// SVGOptions configures SVG encoding.
type SVGOptions struct {
	// Margin grows the view box on every side. Zero selects DefaultSVGMargin,
	// negative values disable the margin.
	Margin float64
}

func (opts SVGOptions) margin() float64 {
	switch {
	case opts.Margin < 0:
		return 0
	case opts.Margin == 0:
		return DefaultSVGMargin
	}
	return opts.Margin
}

// ViewBox returns the area of the sheet's scene drawn by WriteSVG.
func (opts SVGOptions) ViewBox(s slab.Sheet) r2.Box {
	return r2.Box(d2.Box(s.Scene().Bounds()).Grow(opts.margin()))
}

// WriteSVG draws the sheet's scene as an SVG document sized in millimetres.
// Every part is a single compound path filled with the even-odd rule so
// holes show through. The island sits in a translated group at its
// placement offset.
func WriteSVG(w io.Writer, s slab.Sheet, opts SVGOptions) error {
	ew := &errWriter{w: w}
	vb := opts.ViewBox(s)
	size := r2.Sub(vb.Max, vb.Min)
	canvas := svg.New(ew)
	canvas.Startraw(
		fmt.Sprintf(`width="%smm"`, form2.FormatFloat(size.X)),
		fmt.Sprintf(`height="%smm"`, form2.FormatFloat(size.Y)),
		fmt.Sprintf(`viewBox="%s %s %s %s"`, form2.FormatFloat(vb.Min.X), form2.FormatFloat(vb.Min.Y),
			form2.FormatFloat(size.X), form2.FormatFloat(size.Y)),
	)
	canvas.Group(`fill-rule="evenodd"`, `stroke="black"`, `stroke-width="1"`)
	canvas.Group(`fill="white"`)
	for _, pp := range s.Scene() {
		translated := pp.Offset != (r2.Vec{})
		if translated {
			canvas.Gtransform(fmt.Sprintf("translate(%s, %s)", form2.FormatFloat(pp.Offset.X), form2.FormatFloat(pp.Offset.Y)))
		}
		canvas.Path(compoundPath(pp.Part), fmt.Sprintf(`id="%s"`, pp.Role))
		if translated {
			canvas.Gend()
		}
	}
	canvas.Gend()
	canvas.Gend()
	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("render: svg: %w", ew.err)
	}
	return nil
}

func compoundPath(p slab.Part) string {
	var sb strings.Builder
	for i, path := range p.Paths() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(path.String())
	}
	return sb.String()
}

// errWriter records the first error of the underlying writer and
// discards subsequent writes. svgo does not report write errors.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(b []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	var n int
	n, ew.err = ew.w.Write(b)
	return n, ew.err
}
