package d2

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Box is a 2d bounding box.
type Box r2.Box

// NewBox2 creates a 2d box with a given center and size.
func NewBox2(center, size r2.Vec) Box {
	half := r2.Scale(0.5, size)
	return Box{r2.Sub(center, half), r2.Add(center, half)}
}

// Extend returns a box enclosing two 2d boxes.
func (a Box) Extend(b Box) Box {
	return Box{
		Min: MinElem(a.Min, b.Min),
		Max: MaxElem(a.Max, b.Max),
	}
}

// Translate translates a 2d box.
func (a Box) Translate(v r2.Vec) Box {
	return Box{r2.Add(a.Min, v), r2.Add(a.Max, v)}
}

// Size returns the size of a 2d box.
func (a Box) Size() r2.Vec {
	return r2.Sub(a.Max, a.Min)
}

// Grow returns a new 2d box with every side moved outwards by margin.
func (a Box) Grow(margin float64) Box {
	m := Elem(margin)
	return Box{r2.Sub(a.Min, m), r2.Add(a.Max, m)}
}

// Vertices returns the box corners clockwise in a y-down space,
// starting at the top left corner.
func (a Box) Vertices() Set {
	v := make([]r2.Vec, 4)
	v[0] = a.Min                          // tl
	v[1] = r2.Vec{X: a.Max.X, Y: a.Min.Y} // tr
	v[2] = a.Max                          // br
	v[3] = r2.Vec{X: a.Min.X, Y: a.Max.Y} // bl
	return v
}
