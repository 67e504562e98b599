package form2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ArcSteps returns the number of segments SampleArc uses for an arc of
// radius r sweeping sweepDeg degrees.
func ArcSteps(r, sweepDeg, maxSeg float64) int {
	if !(maxSeg > 0) {
		maxSeg = DefaultMaxSegment
	}
	arcLen := math.Abs(d2r(finite(sweepDeg)) * math.Max(0, finite(r)))
	steps := math.Ceil(arcLen / maxSeg)
	switch {
	case steps < MinArcSteps:
		return MinArcSteps
	case steps > MaxArcSteps:
		return MaxArcSteps
	}
	return int(steps)
}

// SampleArc approximates a circular arc around c with a polyline of
// ArcSteps+1 points, from startDeg to endDeg inclusive. The sweep
// direction is taken literally from endDeg-startDeg.
func SampleArc(c r2.Vec, r, startDeg, endDeg, maxSeg float64) []r2.Vec {
	r = math.Max(0, finite(r))
	startDeg, endDeg = finite(startDeg), finite(endDeg)
	sweep := endDeg - startDeg
	steps := ArcSteps(r, sweep, maxSeg)
	pts := make([]r2.Vec, steps+1)
	for i := range pts {
		t := float64(i) / float64(steps)
		ang := d2r(startDeg + sweep*t)
		pts[i] = r2.Vec{X: c.X + r*math.Cos(ang), Y: c.Y + r*math.Sin(ang)}
	}
	return pts
}
