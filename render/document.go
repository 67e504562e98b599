package render

import (
	"bytes"

	"github.com/soypat/slab"
	"gonum.org/v1/gonum/spatial/r2"
)

// Document is an immutable vector rendering of a sheet handed to Renderers.
type Document struct {
	// SVG is the document encoded by WriteSVG.
	SVG []byte
	// Width and Height of the document in millimetres.
	Width, Height float64
	// ViewBox is the area of sheet coordinates the document covers.
	ViewBox r2.Box
	Scene   slab.Scene
}

// NewDocument renders s to SVG and captures the geometry renderers need.
func NewDocument(s slab.Sheet, opts SVGOptions) (Document, error) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, s, opts); err != nil {
		return Document{}, err
	}
	vb := opts.ViewBox(s)
	size := r2.Sub(vb.Max, vb.Min)
	return Document{
		SVG:     buf.Bytes(),
		Width:   size.X,
		Height:  size.Y,
		ViewBox: vb,
		Scene:   s.Scene(),
	}, nil
}
