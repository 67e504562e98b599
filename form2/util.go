package form2

import (
	"math"
	"strconv"
)

const (
	tolerance = 1e-9

	// DefaultMaxSegment is the chord length used when a caller passes
	// a non-positive maximum segment length.
	DefaultMaxSegment = 5.0
	// DedupeEpsilon is the distance under which adjacent contour points collapse.
	DedupeEpsilon = 0.01
	// MinArcSteps is the least amount of segments an arc is tessellated into.
	MinArcSteps = 4
	// MaxArcSteps bounds arc tessellation for absurd radius/segment ratios.
	MaxArcSteps = 1 << 16
)

func d2r(degrees float64) float64 { return degrees * math.Pi / 180. }

// finite returns v, or 0 when v is NaN or infinite.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatFloat formats v with the fewest digits that round-trip.
// Negative zero and non-finite values print as "0".
func FormatFloat(v float64) string {
	v = finite(v)
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
