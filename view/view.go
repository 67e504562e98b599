// Package view holds editor session state that refers to a slab.Sheet
// without being part of it: the pan and zoom of the drawing area, the
// selected cutout and an ongoing drag.
package view

import (
	"fmt"
	"strings"

	"github.com/soypat/slab"
	"gonum.org/v1/gonum/spatial/r2"
)

// Zoom limits and wheel step factors.
const (
	MinZoom     = 0.2
	MaxZoom     = 2.5
	ZoomInStep  = 1.1
	ZoomOutStep = 0.9
)

// DefaultPan is the initial offset of the sheet origin on screen.
var DefaultPan = r2.Vec{X: 80, Y: 80}

// Transform maps sheet millimetres to screen units: screen = sheet*Zoom + Pan.
type Transform struct {
	Pan  r2.Vec
	Zoom float64
}

// NewTransform returns the transform for a sheet's persisted view settings.
func NewTransform(v slab.View) Transform {
	return Transform{Pan: DefaultPan, Zoom: clampZoom(v.Zoom)}
}

func clampZoom(z float64) float64 {
	if !(z > 0) {
		return 1
	}
	return slab.Clamp(z, MinZoom, MaxZoom)
}

// ToSheet converts a screen position into sheet coordinates.
func (t Transform) ToSheet(screen r2.Vec) r2.Vec {
	return r2.Scale(1/clampZoom(t.Zoom), r2.Sub(screen, t.Pan))
}

// ToScreen converts sheet coordinates into a screen position.
func (t Transform) ToScreen(sheet r2.Vec) r2.Vec {
	return r2.Add(r2.Scale(clampZoom(t.Zoom), sheet), t.Pan)
}

// ZoomBy applies a wheel event. Scrolling up (negative deltaY) zooms in.
func (t Transform) ZoomBy(deltaY float64) Transform {
	factor := ZoomOutStep
	if deltaY < 0 {
		factor = ZoomInStep
	}
	t.Zoom = slab.Clamp(clampZoom(t.Zoom)*factor, MinZoom, MaxZoom)
	return t
}

// PanBy shifts the view by a screen space delta.
func (t Transform) PanBy(delta r2.Vec) Transform {
	t.Pan = r2.Add(t.Pan, delta)
	return t
}

// Selection identifies a cutout within a sheet.
type Selection struct {
	Context slab.Context
	ID      string
}

// String returns the selection as "context:id", e.g. "main:m1".
func (s Selection) String() string {
	return string(s.Context) + ":" + s.ID
}

// IsZero reports whether nothing is selected.
func (s Selection) IsZero() bool { return s.ID == "" }

// ParseSelection parses the String form of a selection.
func ParseSelection(s string) (Selection, error) {
	ctx, id, ok := strings.Cut(s, ":")
	if !ok || id == "" {
		return Selection{}, fmt.Errorf("view: invalid selection %q", s)
	}
	switch slab.Context(ctx) {
	case slab.ContextMain, slab.ContextIsland:
	default:
		return Selection{}, fmt.Errorf("view: unknown selection context %q", ctx)
	}
	return Selection{Context: slab.Context(ctx), ID: id}, nil
}

// Cutout returns the selected cutout of s.
func (sel Selection) Cutout(s slab.Sheet) (slab.Cutout, bool) {
	return s.Cutout(sel.Context, sel.ID)
}

// Update patches the selected cutout of s.
func (sel Selection) Update(s slab.Sheet, p slab.Patch) slab.Sheet {
	return s.UpdateCutout(sel.Context, sel.ID, p)
}

// Remove deletes the selected cutout from s.
func (sel Selection) Remove(s slab.Sheet) slab.Sheet {
	return s.RemoveCutout(sel.Context, sel.ID)
}
