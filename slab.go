// Package slab models flat slab layouts made of a main part (rectangular,
// L or U shaped) and an optional island. Every derived quantity, be it a
// contour, an opening or an area, is a pure function of a Sheet value.
//
// Coordinates are millimetres in a y-down space whose origin is the top
// left corner of the part's bounding box.
package slab

import (
	"github.com/soypat/slab/form2"
	"gonum.org/v1/gonum/spatial/r2"
)

// FilletSet holds the four corner radii of a rectangle.
type FilletSet = form2.Fillets

// ShapeKind selects the outline of a part.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeL
	ShapeU
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeL:
		return "L"
	case ShapeU:
		return "U"
	}
	return "rect"
}

// ParseShapeKind is the inverse of ShapeKind.String. Unknown names are ShapeRect.
func ParseShapeKind(s string) ShapeKind {
	switch s {
	case "L":
		return ShapeL
	case "U":
		return ShapeU
	}
	return ShapeRect
}

// Corner names a corner of a part's bounding box.
type Corner int

const (
	CornerTL Corner = iota
	CornerTR
	CornerBR
	CornerBL
)

func (c Corner) String() string {
	return [...]string{"TL", "TR", "BR", "BL"}[c&3]
}

// Left reports whether the corner lies on the left edge.
func (c Corner) Left() bool { return c&3 == CornerTL || c&3 == CornerBL }

// Top reports whether the corner lies on the top edge.
func (c Corner) Top() bool { return c&3 == CornerTL || c&3 == CornerTR }

// ParseCorner is the inverse of Corner.String. Unknown names are CornerTR.
func ParseCorner(s string) Corner {
	switch s {
	case "TL":
		return CornerTL
	case "BR":
		return CornerBR
	case "BL":
		return CornerBL
	}
	return CornerTR
}

// Side names the edge a U slot opens on.
type Side int

const (
	SideTop Side = iota
	SideBottom
)

func (s Side) String() string {
	if s == SideBottom {
		return "bottom"
	}
	return "top"
}

// ParseSide is the inverse of Side.String. Unknown names are SideTop.
func ParseSide(s string) Side {
	if s == "bottom" {
		return SideBottom
	}
	return SideTop
}

// LParams configures the corner notch of an L shaped part.
type LParams struct {
	Corner Corner
	Width  float64
	Depth  float64
	// Fillets are the inner radii left by the cutting tool.
	Fillets FilletSet
}

// UParams configures the central slot of a U shaped part.
type UParams struct {
	Width   float64
	Depth   float64
	Side    Side
	Fillets FilletSet
}

// Part is a single slab piece. Both LParams and UParams are kept
// regardless of Shape so switching shapes back and forth is lossless.
type Part struct {
	Shape   ShapeKind
	Width   float64
	Height  float64
	Fillets FilletSet
	L       LParams
	U       UParams
	Cutouts Cutouts
}

// Size returns the sanitized width and height of the part.
func (p Part) Size() (w, h float64) {
	return Dim(p.Width), Dim(p.Height)
}

// Bounds returns the part's bounding box in local coordinates.
func (p Part) Bounds() r2.Box {
	w, h := p.Size()
	return r2.Box{Max: r2.Vec{X: w, Y: h}}
}

// Contour returns the closed outer boundary of the part.
func (p Part) Contour() form2.Path {
	w, h := p.Size()
	return form2.RoundedRectPath(w, h, p.Fillets)
}

// Polyline returns the outer boundary tessellated with chords no longer than maxSeg.
func (p Part) Polyline(maxSeg float64) []r2.Vec {
	w, h := p.Size()
	return form2.RoundedRectPolyline(w, h, p.Fillets, maxSeg)
}

// Island is a rectangular part placed beside the main part.
type Island struct {
	Width  float64
	Height float64
	Radius float64
	// Separate makes the island its own deliverable instead of
	// sharing a sheet with the main part.
	Separate bool
	Cutouts  Cutouts
}

// Part returns the island as a rectangular part with uniform fillets.
func (isl Island) Part() Part {
	return Part{
		Shape:   ShapeRect,
		Width:   isl.Width,
		Height:  isl.Height,
		Fillets: form2.Uniform(isl.Radius),
		Cutouts: isl.Cutouts,
	}
}

// View holds editor settings persisted alongside the layout.
type View struct {
	Grid float64
	Snap bool
	Zoom float64
}

// Sheet is the complete parameter set of a layout. It is used as a value:
// methods that change it return a modified copy.
type Sheet struct {
	Thickness float64
	Main      Part
	Island    *Island
	View      View
}

// DefaultSheet returns the layout a new project starts with.
func DefaultSheet() Sheet {
	return Sheet{
		Thickness: 12,
		Main: Part{
			Shape:   ShapeRect,
			Width:   2000,
			Height:  600,
			Fillets: FilletSet{TR: 20, BL: 20},
			L:       LParams{Corner: CornerTR, Width: 600, Depth: 600},
			U:       UParams{Width: 900, Depth: 300, Side: SideTop},
			Cutouts: Cutouts{
				{ID: "m1", Kind: CutoutCircle, Center: r2.Vec{X: 500, Y: 300}, Radius: 90},
				{ID: "m2", Kind: CutoutRect, Center: r2.Vec{X: 1300, Y: 300}, Width: 560, Height: 490},
			},
		},
		Island: &Island{Width: 1200, Height: 800, Separate: true},
		View:   View{Grid: 50, Snap: true, Zoom: 0.6},
	}
}

// Part returns the part addressed by ctx. The island context
// reports false when the sheet has no island.
func (s Sheet) Part(ctx Context) (Part, bool) {
	if ctx == ContextIsland {
		if s.Island == nil {
			return Part{}, false
		}
		return s.Island.Part(), true
	}
	return s.Main, true
}
