package view

import (
	"github.com/soypat/slab"
	"gonum.org/v1/gonum/spatial/r2"
)

// Drag is an ongoing move of a cutout by the pointer. The cutout keeps its
// position relative to the pointer from the moment it was grabbed.
type Drag struct {
	Selection Selection
	// Grab is the pointer position relative to the cutout center in mm.
	Grab r2.Vec
}

// BeginDrag starts dragging the selected cutout from the screen position.
// It reports false when the selection does not exist in s.
func BeginDrag(s slab.Sheet, tr Transform, sel Selection, screen r2.Vec) (Drag, bool) {
	c, ok := sel.Cutout(s)
	if !ok {
		return Drag{}, false
	}
	local := toLocal(s, tr, sel.Context, screen)
	return Drag{Selection: sel, Grab: r2.Sub(local, c.Center)}, true
}

// Update moves the dragged cutout so the grab point follows the screen
// position. Snapping follows the sheet's view settings.
func (d Drag) Update(s slab.Sheet, tr Transform, screen r2.Vec) slab.Sheet {
	local := toLocal(s, tr, d.Selection.Context, screen)
	return s.MoveCutout(d.Selection.Context, d.Selection.ID, r2.Sub(local, d.Grab))
}

// toLocal converts a screen position into the coordinates of the part
// addressed by ctx.
func toLocal(s slab.Sheet, tr Transform, ctx slab.Context, screen r2.Vec) r2.Vec {
	p := tr.ToSheet(screen)
	if ctx == slab.ContextIsland {
		p = r2.Sub(p, s.Placement().Offset)
	}
	return p
}

// PanDrag is an ongoing pan of the drawing area.
type PanDrag struct {
	start  r2.Vec
	origin Transform
}

// BeginPan starts panning from the screen position.
func BeginPan(tr Transform, screen r2.Vec) PanDrag {
	return PanDrag{start: screen, origin: tr}
}

// Update returns the transform panned by the pointer travel since BeginPan.
func (pd PanDrag) Update(screen r2.Vec) Transform {
	return pd.origin.PanBy(r2.Sub(screen, pd.start))
}
