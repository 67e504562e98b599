package render

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	sdfrender "github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/slab"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultSTLCells is the marching cubes resolution along the longest side
// of the solid when STLOptions.Cells is not set.
const DefaultSTLCells = 200

// STLOptions configures solid export.
type STLOptions struct {
	// Cells is the number of marching cubes cells along the longest side.
	Cells int
	// MaxSegment is the chord length used to tessellate the part outline.
	// Zero selects DefaultDXFMaxSegment.
	MaxSegment float64
}

var (
	ErrEmptyPart = errors.New("part has no area")
	ErrEmptyMesh = errors.New("meshing produced no triangles")
)

// Solid returns the part as a signed distance field extruded to thickness.
// The bottom face lies on z=0 and y is negated so the model matches the
// part as seen from above in a y-up space.
func Solid(p slab.Part, thickness, maxSeg float64) (sdf.SDF3, error) {
	if maxSeg <= 0 {
		maxSeg = DefaultDXFMaxSegment
	}
	w, h := p.Size()
	thickness = slab.Dim(thickness)
	if w == 0 || h == 0 || thickness == 0 {
		return nil, ErrEmptyPart
	}
	outer, err := polygon(p.Polyline(maxSeg))
	if err != nil {
		return nil, err
	}
	var holes []sdf.SDF2
	for _, c := range p.Holes() {
		if c.Area() == 0 {
			continue
		}
		var hole sdf.SDF2
		if c.Kind == slab.CutoutCircle {
			hole, err = sdf.Circle2D(slab.Dim(c.Radius))
			if err == nil {
				hole = sdf.Transform2D(hole, sdf.Translate2d(v2.Vec{X: c.Center.X, Y: -c.Center.Y}))
			}
		} else {
			hole, err = polygon(c.Polyline(maxSeg))
		}
		if err != nil {
			return nil, fmt.Errorf("hole %s: %w", c.ID, err)
		}
		holes = append(holes, hole)
	}
	s2 := outer
	if len(holes) > 0 {
		s2 = sdf.Difference2D(outer, sdf.Union2D(holes...))
	}
	s3 := sdf.Extrude3D(s2, thickness)
	return sdf.Transform3D(s3, sdf.Translate3d(v3.Vec{Z: thickness / 2})), nil
}

func polygon(pts []r2.Vec) (sdf.SDF2, error) {
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	verts := make([]v2.Vec, len(pts))
	for i, pt := range pts {
		verts[i] = v2.Vec{X: pt.X, Y: -pt.Y}
	}
	return sdf.Polygon2D(verts)
}

// WriteSTL meshes the part extruded to thickness and writes it to w
// in binary STL format.
func WriteSTL(w io.Writer, p slab.Part, thickness float64, opts STLOptions) error {
	s, err := Solid(p, thickness, opts.MaxSegment)
	if err != nil {
		return fmt.Errorf("render: stl: %w", err)
	}
	cells := opts.Cells
	if cells <= 0 {
		cells = DefaultSTLCells
	}
	triangles := sdfrender.ToTriangles(s, sdfrender.NewMarchingCubesUniform(cells))
	if len(triangles) == 0 {
		return fmt.Errorf("render: stl: %w", ErrEmptyMesh)
	}
	bw := bufio.NewWriter(w)
	header := stlHeader{Count: uint32(len(triangles))}
	if err := binary.Write(bw, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("render: stl: %w", err)
	}
	var (
		b [stlTriangleSize]byte
		d stlTriangle
	)
	for _, tri := range triangles {
		n := tri.Normal()
		d.Normal = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
		d.Vertex1 = [3]float32{float32(tri[0].X), float32(tri[0].Y), float32(tri[0].Z)}
		d.Vertex2 = [3]float32{float32(tri[1].X), float32(tri[1].Y), float32(tri[1].Z)}
		d.Vertex3 = [3]float32{float32(tri[2].X), float32(tri[2].Y), float32(tri[2].Z)}
		d.put(b[:])
		if _, err := bw.Write(b[:]); err != nil {
			return fmt.Errorf("render: stl: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render: stl: %w", err)
	}
	return nil
}

const stlTriangleSize = 50

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}
