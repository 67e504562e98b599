package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

func Elem(sides float64) r2.Vec {
	return r2.Vec{
		X: sides,
		Y: sides,
	}
}

func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// NegY mirrors a vector about the x axis.
func NegY(a r2.Vec) r2.Vec {
	return r2.Vec{X: a.X, Y: -a.Y}
}

// Snap rounds both components of a to the nearest multiple of step.
// A non-positive step returns a unchanged.
func Snap(a r2.Vec, step float64) r2.Vec {
	if !(step > 0) {
		return a
	}
	return r2.Vec{
		X: math.Round(a.X/step) * step,
		Y: math.Round(a.Y/step) * step,
	}
}

// Set is an ordered list of points, usually the vertices of a contour.
type Set []r2.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r2.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r2.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Translate returns a copy of the set with every point shifted by v.
func (a Set) Translate(v r2.Vec) Set {
	out := make(Set, len(a))
	for i, p := range a {
		out[i] = r2.Add(p, v)
	}
	return out
}

// Dedupe returns a copy of the set without points that lie within eps
// of the previously kept point.
func (a Set) Dedupe(eps float64) Set {
	out := make(Set, 0, len(a))
	for _, p := range a {
		if len(out) > 0 && r2.Norm(r2.Sub(p, out[len(out)-1])) <= eps {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Shoelace returns twice the signed area enclosed by the set, treating it as
// a closed loop. In a y-down space a positive result means clockwise on screen.
func (a Set) Shoelace() float64 {
	n := len(a)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := range a {
		p, q := a[i], a[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum
}

// Bounds returns the bounding box of the set. An empty set has a zero box.
func (a Set) Bounds() Box {
	if len(a) == 0 {
		return Box{}
	}
	return Box{Min: a.Min(), Max: a.Max()}
}
