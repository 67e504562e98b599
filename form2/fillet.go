package form2

import "math"

// Fillets holds the four corner radii of a rectangle, named from the
// top left corner clockwise in a y-down space.
type Fillets struct {
	TL, TR, BR, BL float64
}

// Uniform returns Fillets with all four corners set to r.
func Uniform(r float64) Fillets {
	return Fillets{TL: r, TR: r, BR: r, BL: r}
}

// MaxFillet returns the largest radius a w by h rectangle accepts on any corner.
func MaxFillet(w, h float64) float64 {
	return math.Max(0, math.Min(finite(w), finite(h))/2)
}

// ClampRadius clamps r to [0, min(w,h)/2]. NaN radii clamp to 0.
func ClampRadius(r, w, h float64) float64 {
	if math.IsNaN(r) || r < 0 {
		return 0
	}
	return math.Min(r, MaxFillet(w, h))
}

// Clamp returns the radii effectively used on a w by h rectangle.
func (f Fillets) Clamp(w, h float64) Fillets {
	return Fillets{
		TL: ClampRadius(f.TL, w, h),
		TR: ClampRadius(f.TR, w, h),
		BR: ClampRadius(f.BR, w, h),
		BL: ClampRadius(f.BL, w, h),
	}
}

// IsZero reports whether every corner is sharp.
func (f Fillets) IsZero() bool {
	return f.TL == 0 && f.TR == 0 && f.BR == 0 && f.BL == 0
}
