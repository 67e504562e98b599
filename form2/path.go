package form2

import (
	"math"
	"strings"

	"github.com/soypat/slab/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Op is a path command, named after its SVG path letter.
type Op byte

const (
	OpMove  Op = 'M'
	OpLine  Op = 'L'
	OpHoriz Op = 'H'
	OpVert  Op = 'V'
	OpArc   Op = 'A'
	OpClose Op = 'Z'
)

// Cmd is a single path command. To is the absolute end point of every
// command except OpClose. Arc commands also carry their center and the
// swept angles so they can be tessellated without endpoint parametrization.
type Cmd struct {
	Op     Op
	To     r2.Vec
	Radius float64
	Center r2.Vec
	// Start and End angles of an arc in degrees. Positive sweeps are
	// clockwise on screen in a y-down space.
	Start, End float64
}

// Path is a compact contour description made of straight segments and
// circular arcs. A closed path ends with OpClose.
type Path []Cmd

// String returns the path as SVG path data.
func (p Path) String() string {
	var sb strings.Builder
	for i, c := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte(c.Op))
		switch c.Op {
		case OpMove, OpLine:
			sb.WriteString(" " + FormatFloat(c.To.X) + " " + FormatFloat(c.To.Y))
		case OpHoriz:
			sb.WriteString(" " + FormatFloat(c.To.X))
		case OpVert:
			sb.WriteString(" " + FormatFloat(c.To.Y))
		case OpArc:
			large, sweep := "0", "0"
			if math.Abs(c.End-c.Start) > 180 {
				large = "1"
			}
			if c.End > c.Start {
				sweep = "1"
			}
			r := FormatFloat(c.Radius)
			sb.WriteString(" " + r + " " + r + " 0 " + large + " " + sweep + " " +
				FormatFloat(c.To.X) + " " + FormatFloat(c.To.Y))
		}
	}
	return sb.String()
}

// Closed reports whether the path ends with a close command.
func (p Path) Closed() bool {
	return len(p) > 0 && p[len(p)-1].Op == OpClose
}

// Translate returns a copy of the path shifted by v.
func (p Path) Translate(v r2.Vec) Path {
	out := make(Path, len(p))
	for i, c := range p {
		if c.Op != OpClose {
			c.To = r2.Add(c.To, v)
			c.Center = r2.Add(c.Center, v)
		}
		out[i] = c
	}
	return out
}

// Flatten tessellates the path into a polyline. Arcs are sampled with
// SampleArc and a closed path ends on its starting point.
func (p Path) Flatten(maxSeg float64) []r2.Vec {
	var pts d2.Set
	var start r2.Vec
	for _, c := range p {
		switch c.Op {
		case OpMove:
			start = c.To
			pts = append(pts, c.To)
		case OpLine, OpHoriz, OpVert:
			pts = append(pts, c.To)
		case OpArc:
			arc := SampleArc(c.Center, c.Radius, c.Start, c.End, maxSeg)
			pts = append(pts, arc[1:]...)
		case OpClose:
			pts = append(pts, start)
		}
	}
	return pts.Dedupe(DedupeEpsilon)
}

// RoundedRectPath returns the closed contour of a w by h rectangle anchored
// at the origin with independently filleted corners.
func RoundedRectPath(w, h float64, f Fillets) Path {
	return RoundedRectPathFromBox(0, 0, w, h, f)
}

// RoundedRectPathFromBox is RoundedRectPath anchored at (x0, y0).
// The contour starts on the top edge and runs clockwise in a y-down space.
// Sharp corners are emitted as line commands, never as zero radius arcs.
func RoundedRectPathFromBox(x0, y0, w, h float64, f Fillets) Path {
	f = f.Clamp(w, h)
	x1, y1 := x0+w, y0+h
	p := make(Path, 0, 10)
	// corner rounds into arcEnd when r > 0, otherwise runs straight into sharp.
	corner := func(r, start float64, center, arcEnd, sharp r2.Vec) {
		if r > 0 {
			p = append(p, Cmd{Op: OpArc, To: arcEnd, Radius: r, Center: center, Start: start, End: start + 90})
			return
		}
		p = append(p, Cmd{Op: OpLine, To: sharp})
	}
	p = append(p, Cmd{Op: OpMove, To: r2.Vec{X: x0 + f.TL, Y: y0}})
	p = append(p, Cmd{Op: OpHoriz, To: r2.Vec{X: x1 - f.TR, Y: y0}})
	corner(f.TR, -90, r2.Vec{X: x1 - f.TR, Y: y0 + f.TR}, r2.Vec{X: x1, Y: y0 + f.TR}, r2.Vec{X: x1, Y: y0})
	p = append(p, Cmd{Op: OpVert, To: r2.Vec{X: x1, Y: y1 - f.BR}})
	corner(f.BR, 0, r2.Vec{X: x1 - f.BR, Y: y1 - f.BR}, r2.Vec{X: x1 - f.BR, Y: y1}, r2.Vec{X: x1, Y: y1})
	p = append(p, Cmd{Op: OpHoriz, To: r2.Vec{X: x0 + f.BL, Y: y1}})
	corner(f.BL, 90, r2.Vec{X: x0 + f.BL, Y: y1 - f.BL}, r2.Vec{X: x0, Y: y1 - f.BL}, r2.Vec{X: x0, Y: y1})
	p = append(p, Cmd{Op: OpVert, To: r2.Vec{X: x0, Y: y0 + f.TL}})
	corner(f.TL, 180, r2.Vec{X: x0 + f.TL, Y: y0 + f.TL}, r2.Vec{X: x0 + f.TL, Y: y0}, r2.Vec{X: x0, Y: y0})
	return append(p, Cmd{Op: OpClose})
}

// CirclePath returns a closed circle made of two clockwise half arcs.
// A non-positive radius yields an empty path.
func CirclePath(c r2.Vec, r float64) Path {
	r = finite(r)
	if r <= 0 {
		return nil
	}
	left := r2.Vec{X: c.X - r, Y: c.Y}
	right := r2.Vec{X: c.X + r, Y: c.Y}
	return Path{
		{Op: OpMove, To: left},
		{Op: OpArc, To: right, Radius: r, Center: c, Start: 180, End: 360},
		{Op: OpArc, To: left, Radius: r, Center: c, Start: 0, End: 180},
		{Op: OpClose},
	}
}
