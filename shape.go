package slab

import (
	"github.com/soypat/slab/form2"
	"gonum.org/v1/gonum/spatial/r2"
)

// OpeningKind tells which shape parameter produced an Opening.
type OpeningKind int

const (
	OpeningNone OpeningKind = iota
	// OpeningNotch is the corner cutaway of an L shaped part.
	OpeningNotch
	// OpeningSlot is the central cutaway of a U shaped part.
	OpeningSlot
)

// Opening is the filleted rectangle removed from a part to give it its shape.
type Opening struct {
	Kind    OpeningKind
	Center  r2.Vec
	Width   float64
	Height  float64
	Fillets FilletSet
}

// Bounds returns the opening's bounding box in part coordinates.
func (o Opening) Bounds() r2.Box {
	half := r2.Vec{X: o.Width / 2, Y: o.Height / 2}
	return r2.Box{Min: r2.Sub(o.Center, half), Max: r2.Add(o.Center, half)}
}

// Area of the opening's bounding rectangle. Fillets are ignored.
func (o Opening) Area() float64 {
	if o.Kind == OpeningNone {
		return 0
	}
	return o.Width * o.Height
}

// Hole returns the opening as a rectangular cutout so encoders can treat
// both alike. It reports false for OpeningNone.
func (o Opening) Hole() (Cutout, bool) {
	var id string
	switch o.Kind {
	case OpeningNotch:
		id = "holeL"
	case OpeningSlot:
		id = "holeU"
	default:
		return Cutout{}, false
	}
	return Cutout{
		ID:      id,
		Kind:    CutoutRect,
		Center:  o.Center,
		Width:   o.Width,
		Height:  o.Height,
		Fillets: o.Fillets,
	}, true
}

// Opening derives the shape defining opening from the part's shape parameters.
// The opening never extends past the part's bounding box.
func (p Part) Opening() Opening {
	w, h := p.Size()
	switch p.Shape {
	case ShapeL:
		nw := Clamp(Dim(p.L.Width), 0, w)
		nd := Clamp(Dim(p.L.Depth), 0, h)
		o := Opening{Kind: OpeningNotch, Width: nw, Height: nd, Fillets: p.L.Fillets}
		o.Center.X = w - nw/2
		if p.L.Corner.Left() {
			o.Center.X = nw / 2
		}
		o.Center.Y = h - nd/2
		if p.L.Corner.Top() {
			o.Center.Y = nd / 2
		}
		return o
	case ShapeU:
		uw := Clamp(Dim(p.U.Width), 0, w)
		ud := Clamp(Dim(p.U.Depth), 0, h)
		o := Opening{Kind: OpeningSlot, Width: uw, Height: ud, Fillets: p.U.Fillets}
		o.Center = r2.Vec{X: w / 2, Y: ud / 2}
		if p.U.Side == SideBottom {
			o.Center.Y = h - ud/2
		}
		return o
	}
	return Opening{Kind: OpeningNone}
}

// Holes returns the derived opening, if any, followed by the user cutouts.
func (p Part) Holes() []Cutout {
	holes := make([]Cutout, 0, len(p.Cutouts)+1)
	if hole, ok := p.Opening().Hole(); ok {
		holes = append(holes, hole)
	}
	return append(holes, p.Cutouts...)
}

// Paths returns the compound path of the part: the outer contour followed
// by one closed path per non-empty hole. Every path winds clockwise so the
// compound renders holes correctly under the even-odd fill rule.
func (p Part) Paths() []form2.Path {
	paths := []form2.Path{p.Contour()}
	for _, c := range p.Holes() {
		if c.Area() > 0 {
			paths = append(paths, c.Path())
		}
	}
	return paths
}
