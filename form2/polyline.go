package form2

import (
	"github.com/soypat/slab/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// RoundedRectPolyline tessellates RoundedRectPath(w, h, f) into a polyline.
// Straight edges are kept verbatim and each rounded corner is replaced by
// SampleArc points. Points closer than DedupeEpsilon collapse into one, and
// the polyline ends on its first point.
func RoundedRectPolyline(w, h float64, f Fillets, maxSeg float64) []r2.Vec {
	f = f.Clamp(w, h)
	pts := d2.Set{{X: f.TL, Y: 0}, {X: w - f.TR, Y: 0}}
	if f.TR > 0 {
		pts = append(pts, SampleArc(r2.Vec{X: w - f.TR, Y: f.TR}, f.TR, -90, 0, maxSeg)...)
	}
	pts = append(pts, r2.Vec{X: w, Y: h - f.BR})
	if f.BR > 0 {
		pts = append(pts, SampleArc(r2.Vec{X: w - f.BR, Y: h - f.BR}, f.BR, 0, 90, maxSeg)...)
	}
	pts = append(pts, r2.Vec{X: f.BL, Y: h})
	if f.BL > 0 {
		pts = append(pts, SampleArc(r2.Vec{X: f.BL, Y: h - f.BL}, f.BL, 90, 180, maxSeg)...)
	}
	pts = append(pts, r2.Vec{X: 0, Y: f.TL})
	if f.TL > 0 {
		pts = append(pts, SampleArc(r2.Vec{X: f.TL, Y: f.TL}, f.TL, 180, 270, maxSeg)...)
	}
	return pts.Dedupe(DedupeEpsilon)
}

// RoundedRectPolylineFromBox is RoundedRectPolyline anchored at (x0, y0).
func RoundedRectPolylineFromBox(x0, y0, w, h float64, f Fillets, maxSeg float64) []r2.Vec {
	return Translate(RoundedRectPolyline(w, h, f, maxSeg), r2.Vec{X: x0, Y: y0})
}

// RectPolyline returns the four corners of a sharp rectangle, clockwise
// in a y-down space starting at (x0, y0).
func RectPolyline(x0, y0, w, h float64) []r2.Vec {
	return d2.Box{Min: r2.Vec{X: x0, Y: y0}, Max: r2.Vec{X: x0 + w, Y: y0 + h}}.Vertices()
}

// Translate returns a copy of pts shifted by v. The input is not modified.
func Translate(pts []r2.Vec, v r2.Vec) []r2.Vec {
	return d2.Set(pts).Translate(v)
}

// Dedupe removes adjacent points closer than eps.
func Dedupe(pts []r2.Vec, eps float64) []r2.Vec {
	return d2.Set(pts).Dedupe(eps)
}

// SignedArea returns the area enclosed by the closed loop pts. It is
// positive for loops running clockwise on screen in a y-down space.
func SignedArea(pts []r2.Vec) float64 {
	return d2.Set(pts).Shoelace() / 2
}

// Clockwise reports whether pts winds clockwise in a y-down space.
// Degenerate loops enclosing no area are not clockwise.
func Clockwise(pts []r2.Vec) bool {
	return SignedArea(pts) > tolerance
}

// IsClosed reports whether the polyline ends within eps of its first point.
func IsClosed(pts []r2.Vec, eps float64) bool {
	return len(pts) > 1 && d2.EqualWithin(pts[0], pts[len(pts)-1], eps)
}
