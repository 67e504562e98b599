package slab

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/soypat/slab/form2"
	"github.com/soypat/slab/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Context addresses the part a cutout belongs to.
type Context string

const (
	ContextMain   Context = "main"
	ContextIsland Context = "island"
)

func (ctx Context) idPrefix() string {
	if ctx == ContextIsland {
		return "i"
	}
	return "m"
}

// CutoutKind is the geometry of a cutout.
type CutoutKind int

const (
	CutoutCircle CutoutKind = iota
	CutoutRect
)

func (k CutoutKind) String() string {
	if k == CutoutRect {
		return "rect"
	}
	return "circle"
}

// Default geometry of freshly added cutouts.
var (
	DefaultCircleCutout = Cutout{Kind: CutoutCircle, Center: r2.Vec{X: 500, Y: 300}, Radius: 90}
	DefaultRectCutout   = Cutout{Kind: CutoutRect, Center: r2.Vec{X: 400, Y: 300}, Width: 560, Height: 490}
)

// Cutout is a technological opening placed by the user, e.g. for a sink or a hob.
// Center is local to the owning part.
type Cutout struct {
	ID     string
	Kind   CutoutKind
	Center r2.Vec
	// Radius of circular cutouts.
	Radius float64
	// Width, Height and Fillets of rectangular cutouts.
	Width   float64
	Height  float64
	Fillets FilletSet
}

// Area of the cutout. Fillets of rectangular cutouts are ignored.
func (c Cutout) Area() float64 {
	if c.Kind == CutoutRect {
		return Dim(c.Width) * Dim(c.Height)
	}
	r := Dim(c.Radius)
	return math.Pi * r * r
}

// Bounds returns the cutout's bounding box in part coordinates.
func (c Cutout) Bounds() r2.Box {
	size := r2.Vec{X: Dim(c.Width), Y: Dim(c.Height)}
	if c.Kind == CutoutCircle {
		size = d2.Elem(2 * Dim(c.Radius))
	}
	return r2.Box(d2.NewBox2(c.Center, size))
}

func (c Cutout) origin() r2.Vec {
	return c.Bounds().Min
}

// Path returns the closed outline of the cutout.
func (c Cutout) Path() form2.Path {
	if c.Kind == CutoutCircle {
		return form2.CirclePath(c.Center, Dim(c.Radius))
	}
	o := c.origin()
	return form2.RoundedRectPathFromBox(o.X, o.Y, Dim(c.Width), Dim(c.Height), c.Fillets)
}

// Polyline returns the outline of a rectangular cutout as a polyline: four
// corners when every fillet is zero, a tessellated contour otherwise.
// Circles are tessellated with SampleArc.
func (c Cutout) Polyline(maxSeg float64) []r2.Vec {
	o := c.origin()
	w, h := Dim(c.Width), Dim(c.Height)
	switch {
	case c.Kind == CutoutCircle:
		return c.Path().Flatten(maxSeg)
	case c.Fillets.IsZero():
		return form2.RectPolyline(o.X, o.Y, w, h)
	}
	return form2.RoundedRectPolylineFromBox(o.X, o.Y, w, h, c.Fillets, maxSeg)
}

// Patch holds loosely typed field updates for a cutout, keyed by
// the snapshot field names x, y, r, w, h, rTL, rTR, rBR and rBL.
// Values are converted with Coerce; unknown keys are ignored.
type Patch map[string]any

// Apply returns c with the patch applied.
func (c Cutout) Apply(p Patch) Cutout {
	for k, v := range p {
		n := Coerce(v)
		switch k {
		case "x":
			c.Center.X = n
		case "y":
			c.Center.Y = n
		case "r":
			c.Radius = n
		case "w":
			c.Width = n
		case "h":
			c.Height = n
		case "rTL":
			c.Fillets.TL = n
		case "rTR":
			c.Fillets.TR = n
		case "rBR":
			c.Fillets.BR = n
		case "rBL":
			c.Fillets.BL = n
		}
	}
	return c
}

// Cutouts is the set of cutouts of a part, in insertion order.
type Cutouts []Cutout

// Get returns the cutout with the given id.
func (cs Cutouts) Get(id string) (Cutout, bool) {
	c, _, ok := lo.FindIndexOf(cs, func(c Cutout) bool { return c.ID == id })
	return c, ok
}

// Area returns the summed area of all cutouts.
func (cs Cutouts) Area() float64 {
	return lo.SumBy(cs, Cutout.Area)
}

// replace returns a copy of cs where the cutout with id is swapped for fn's result.
func (cs Cutouts) replace(id string, fn func(Cutout) Cutout) Cutouts {
	return lo.Map(cs, func(c Cutout, _ int) Cutout {
		if c.ID == id {
			return fn(c)
		}
		return c
	})
}

func (cs Cutouts) without(id string) Cutouts {
	return lo.Reject(cs, func(c Cutout, _ int) bool { return c.ID == id })
}

// newID generates cutout identifier suffixes.
var newID = func() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (cs Cutouts) freshID(prefix string) string {
	for {
		id := prefix + newID()
		if _, taken := cs.Get(id); !taken {
			return id
		}
	}
}

// Cutouts returns the cutouts of the part addressed by ctx.
func (s Sheet) Cutouts(ctx Context) Cutouts {
	if ctx == ContextIsland {
		if s.Island == nil {
			return nil
		}
		return s.Island.Cutouts
	}
	return s.Main.Cutouts
}

// Cutout returns the cutout with the given id in ctx.
func (s Sheet) Cutout(ctx Context, id string) (Cutout, bool) {
	return s.Cutouts(ctx).Get(id)
}

func (s Sheet) withCutouts(ctx Context, cs Cutouts) Sheet {
	if ctx == ContextIsland {
		if s.Island == nil {
			return s
		}
		isl := *s.Island
		isl.Cutouts = cs
		s.Island = &isl
		return s
	}
	s.Main.Cutouts = cs
	return s
}

// AddCutout appends a default cutout of the given kind to ctx and returns
// the new sheet and the cutout's identifier. Adding to the island context of
// a sheet without island returns the sheet unchanged and an empty id.
func (s Sheet) AddCutout(ctx Context, kind CutoutKind) (Sheet, string) {
	if _, ok := s.Part(ctx); !ok {
		return s, ""
	}
	c := DefaultCircleCutout
	if kind == CutoutRect {
		c = DefaultRectCutout
	}
	cs := s.Cutouts(ctx)
	c.ID = cs.freshID(ctx.idPrefix())
	next := make(Cutouts, len(cs), len(cs)+1)
	copy(next, cs)
	return s.withCutouts(ctx, append(next, c)), c.ID
}

// UpdateCutout applies patch to the cutout with id. Unknown ids are a no-op.
func (s Sheet) UpdateCutout(ctx Context, id string, patch Patch) Sheet {
	cs := s.Cutouts(ctx)
	if _, ok := cs.Get(id); !ok {
		return s
	}
	return s.withCutouts(ctx, cs.replace(id, func(c Cutout) Cutout { return c.Apply(patch) }))
}

// RemoveCutout deletes the cutout with id. Unknown ids are a no-op.
func (s Sheet) RemoveCutout(ctx Context, id string) Sheet {
	cs := s.Cutouts(ctx)
	if _, ok := cs.Get(id); !ok {
		return s
	}
	return s.withCutouts(ctx, cs.without(id))
}

// MoveCutout places the center of the cutout with id at the local coordinate to.
// When the sheet's view snaps to a positive grid, to is rounded to the nearest
// grid node first. Callers convert pointer positions to local coordinates.
func (s Sheet) MoveCutout(ctx Context, id string, to r2.Vec) Sheet {
	to = r2.Vec{X: finite(to.X), Y: finite(to.Y)}
	if s.View.Snap {
		to = d2.Snap(to, s.View.Grid)
	}
	return s.UpdateCutout(ctx, id, Patch{"x": to.X, "y": to.Y})
}
