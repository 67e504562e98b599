package slab

import "math"

// NetArea returns the part's area in mm² minus its opening and cutouts.
// Overlapping holes are not detected, so the result is clamped at zero
// rather than exact when holes overlap or leave the part.
func (p Part) NetArea() float64 {
	w, h := p.Size()
	return math.Max(0, w*h-p.Opening().Area()-p.Cutouts.Area())
}

// AreaReport holds net areas in mm².
type AreaReport struct {
	Main   float64
	Island float64
	// Total is Main+Island and only meaningful when HasTotal is set,
	// which is not the case for separately delivered islands.
	Total    float64
	HasTotal bool
}

// Areas computes the net area of each part and, unless the island is a
// separate deliverable, their sum.
func (s Sheet) Areas() AreaReport {
	rep := AreaReport{Main: s.Main.NetArea()}
	if s.Island != nil {
		rep.Island = s.Island.Part().NetArea()
		if s.Island.Separate {
			return rep
		}
	}
	rep.Total = rep.Main + rep.Island
	rep.HasTotal = true
	return rep
}
