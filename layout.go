package slab

import (
	"fmt"

	"github.com/soypat/slab/form2"
	"github.com/soypat/slab/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// IslandMargin is the clearance between main part and island when both
// are laid out on one sheet.
const IslandMargin = 220.0

// Placement locates the island relative to the main part's origin.
type Placement struct {
	Offset   r2.Vec
	Separate bool
}

// Placement returns the island placement. The offset does not depend on
// Separate and is never baked into the island's own coordinates.
func (s Sheet) Placement() Placement {
	w, _ := s.Main.Size()
	p := Placement{Offset: r2.Vec{X: w + IslandMargin}}
	if s.Island != nil {
		p.Separate = s.Island.Separate
	}
	return p
}

// PlacedPart is a part positioned in a shared coordinate space.
type PlacedPart struct {
	Role   Context
	Part   Part
	Offset r2.Vec
}

// Bounds returns the placed part's bounding box in shared coordinates.
func (pp PlacedPart) Bounds() r2.Box {
	return r2.Box(d2.Box(pp.Part.Bounds()).Translate(pp.Offset))
}

// Paths returns the part's compound path translated by its offset.
func (pp PlacedPart) Paths() []form2.Path {
	paths := pp.Part.Paths()
	for i := range paths {
		paths[i] = paths[i].Translate(pp.Offset)
	}
	return paths
}

// Scene is the visual composition of a sheet.
type Scene []PlacedPart

// Scene returns the main part at the origin followed by the island, if any,
// at its placement offset. Separate islands are drawn beside the main part too.
func (s Sheet) Scene() Scene {
	sc := Scene{{Role: ContextMain, Part: s.Main}}
	if s.Island != nil {
		sc = append(sc, PlacedPart{Role: ContextIsland, Part: s.Island.Part(), Offset: s.Placement().Offset})
	}
	return sc
}

// Bounds returns the box enclosing every part of the scene.
func (sc Scene) Bounds() r2.Box {
	if len(sc) == 0 {
		return r2.Box{}
	}
	b := d2.Box(sc[0].Bounds())
	for _, pp := range sc[1:] {
		b = b.Extend(d2.Box(pp.Bounds()))
	}
	return r2.Box(b)
}

// Deliverable is a group of parts exported together as one file.
type Deliverable struct {
	// Name is a file name without extension.
	Name string
	// Combined deliverables hold the main part and the island
	// laid out on one sheet.
	Combined bool
	Parts    []PlacedPart
}

// Deliverables groups the sheet's parts into export units. A separate island
// is its own deliverable in its own coordinates, otherwise the island joins
// the main part at its placement offset.
func (s Sheet) Deliverables() []Deliverable {
	mainPart := PlacedPart{Role: ContextMain, Part: s.Main}
	if s.Island == nil {
		return []Deliverable{{Name: partFileName("main", s.Main), Parts: []PlacedPart{mainPart}}}
	}
	island := PlacedPart{Role: ContextIsland, Part: s.Island.Part()}
	if s.Island.Separate {
		return []Deliverable{
			{Name: partFileName("main", s.Main), Parts: []PlacedPart{mainPart}},
			{Name: partFileName("island", island.Part), Parts: []PlacedPart{island}},
		}
	}
	island.Offset = s.Placement().Offset
	return []Deliverable{{Name: "countertops_sheet", Combined: true, Parts: []PlacedPart{mainPart, island}}}
}

func partFileName(role string, p Part) string {
	w, h := p.Size()
	return fmt.Sprintf("countertop_%s_%sx%smm", role, form2.FormatFloat(w), form2.FormatFloat(h))
}
