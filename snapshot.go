package slab

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/titanous/json5"
	"gonum.org/v1/gonum/spatial/r2"
)

// SnapshotVersion is the version written by Save and the newest one Load accepts.
const SnapshotVersion = 3

// Snapshot is the persisted form of a Sheet.
type Snapshot struct {
	Version   int          `json:"version"`
	Units     string       `json:"units"`
	Thickness float64      `json:"thickness"`
	Main      mainSnapshot `json:"main"`
	Island    *islandSnap  `json:"island"`
	View      viewSnap     `json:"view"`
}

type mainSnapshot struct {
	Shape   string       `json:"shape"`
	Size    sizeSnap     `json:"size"`
	Fillets filletSnap   `json:"fillets"`
	L       lSnap        `json:"L"`
	U       uSnap        `json:"U"`
	Holes   []cutoutSnap `json:"holes"`
	Cutouts []cutoutSnap `json:"cutouts"`
}

type islandSnap struct {
	Separate bool         `json:"separate"`
	Size     sizeSnap     `json:"size"`
	Radius   float64      `json:"radius"`
	Cutouts  []cutoutSnap `json:"cutouts"`
}

type viewSnap struct {
	Grid float64 `json:"grid"`
	Snap bool    `json:"snap"`
	Zoom float64 `json:"zoom"`
}

type sizeSnap struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type filletSnap struct {
	TL float64 `json:"rTL"`
	TR float64 `json:"rTR"`
	BR float64 `json:"rBR"`
	BL float64 `json:"rBL"`
}

type lSnap struct {
	Corner string     `json:"corner"`
	W      float64    `json:"w"`
	D      float64    `json:"d"`
	R      filletSnap `json:"r"`
}

type uSnap struct {
	W    float64    `json:"w"`
	D    float64    `json:"d"`
	Side string     `json:"side"`
	R    filletSnap `json:"r"`
}

type cutoutSnap struct {
	ID   string   `json:"id"`
	Type string   `json:"type"`
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
	R    *float64 `json:"r,omitempty"`
	W    *float64 `json:"w,omitempty"`
	H    *float64 `json:"h,omitempty"`
	TL   float64  `json:"rTL,omitempty"`
	TR   float64  `json:"rTR,omitempty"`
	BR   float64  `json:"rBR,omitempty"`
	BL   float64  `json:"rBL,omitempty"`
}

var (
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrUnsupportedUnits   = errors.New("unsupported snapshot units")
)

// NewSnapshot captures s. The derived opening is recorded under holes
// for the benefit of external tools.
func NewSnapshot(s Sheet) Snapshot {
	m := s.Main
	snap := Snapshot{
		Version:   SnapshotVersion,
		Units:     "mm",
		Thickness: Dim(s.Thickness),
		Main: mainSnapshot{
			Shape:   m.Shape.String(),
			Size:    sizeSnap{W: Dim(m.Width), H: Dim(m.Height)},
			Fillets: fromFillets(m.Fillets),
			L:       lSnap{Corner: m.L.Corner.String(), W: Dim(m.L.Width), D: Dim(m.L.Depth), R: fromFillets(m.L.Fillets)},
			U:       uSnap{W: Dim(m.U.Width), D: Dim(m.U.Depth), Side: m.U.Side.String(), R: fromFillets(m.U.Fillets)},
			Holes:   []cutoutSnap{},
			Cutouts: fromCutouts(m.Cutouts),
		},
		View: viewSnap{Grid: Dim(s.View.Grid), Snap: s.View.Snap, Zoom: Dim(s.View.Zoom)},
	}
	if hole, ok := m.Opening().Hole(); ok {
		snap.Main.Holes = append(snap.Main.Holes, fromCutout(hole))
	}
	if isl := s.Island; isl != nil {
		snap.Island = &islandSnap{
			Separate: isl.Separate,
			Size:     sizeSnap{W: Dim(isl.Width), H: Dim(isl.Height)},
			Radius:   Dim(isl.Radius),
			Cutouts:  fromCutouts(isl.Cutouts),
		}
	}
	return snap
}

// Sheet rebuilds the sheet the snapshot describes. Holes are ignored
// since they are derived from the shape parameters. Lengths that are not
// finite or are negative read as 0.
func (snap Snapshot) Sheet() (Sheet, error) {
	if snap.Version < 0 || snap.Version > SnapshotVersion {
		return Sheet{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, snap.Version)
	}
	if snap.Units != "" && snap.Units != "mm" {
		return Sheet{}, fmt.Errorf("%w: %q", ErrUnsupportedUnits, snap.Units)
	}
	m := snap.Main
	s := Sheet{
		Thickness: Dim(snap.Thickness),
		Main: Part{
			Shape:   ParseShapeKind(m.Shape),
			Width:   Dim(m.Size.W),
			Height:  Dim(m.Size.H),
			Fillets: m.Fillets.fillets(),
			L:       LParams{Corner: ParseCorner(m.L.Corner), Width: Dim(m.L.W), Depth: Dim(m.L.D), Fillets: m.L.R.fillets()},
			U:       UParams{Width: Dim(m.U.W), Depth: Dim(m.U.D), Side: ParseSide(m.U.Side), Fillets: m.U.R.fillets()},
			Cutouts: toCutouts(m.Cutouts),
		},
		View: View{Grid: Dim(snap.View.Grid), Snap: snap.View.Snap, Zoom: Dim(snap.View.Zoom)},
	}
	if isl := snap.Island; isl != nil {
		s.Island = &Island{
			Width:    Dim(isl.Size.W),
			Height:   Dim(isl.Size.H),
			Radius:   Dim(isl.Radius),
			Separate: isl.Separate,
			Cutouts:  toCutouts(isl.Cutouts),
		}
	}
	return s, nil
}

// Marshal encodes s as an indented JSON snapshot terminated by a newline.
func Marshal(s Sheet) ([]byte, error) {
	b, err := json.MarshalIndent(NewSnapshot(s), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Save writes the snapshot of s to w.
func Save(w io.Writer, s Sheet) error {
	b, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("slab: save: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// Unmarshal decodes a snapshot. Comments and trailing commas are accepted.
func Unmarshal(data []byte) (Sheet, error) {
	var snap Snapshot
	if err := json5.Unmarshal(bytes.TrimSpace(data), &snap); err != nil {
		return Sheet{}, fmt.Errorf("slab: load: %w", err)
	}
	s, err := snap.Sheet()
	if err != nil {
		return Sheet{}, fmt.Errorf("slab: load: %w", err)
	}
	return s, nil
}

// Load reads a snapshot from r.
func Load(r io.Reader) (Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("slab: load: %w", err)
	}
	return Unmarshal(data)
}

func fromFillets(f FilletSet) filletSnap {
	return filletSnap{TL: Dim(f.TL), TR: Dim(f.TR), BR: Dim(f.BR), BL: Dim(f.BL)}
}

func (f filletSnap) fillets() FilletSet {
	return FilletSet{TL: Dim(f.TL), TR: Dim(f.TR), BR: Dim(f.BR), BL: Dim(f.BL)}
}

func fromCutout(c Cutout) cutoutSnap {
	cs := cutoutSnap{ID: c.ID, Type: c.Kind.String(), X: finite(c.Center.X), Y: finite(c.Center.Y)}
	if c.Kind == CutoutCircle {
		r := Dim(c.Radius)
		cs.R = &r
		return cs
	}
	w, h := Dim(c.Width), Dim(c.Height)
	cs.W, cs.H = &w, &h
	f := fromFillets(c.Fillets)
	cs.TL, cs.TR, cs.BR, cs.BL = f.TL, f.TR, f.BR, f.BL
	return cs
}

func fromCutouts(cs Cutouts) []cutoutSnap {
	out := make([]cutoutSnap, len(cs))
	for i, c := range cs {
		out[i] = fromCutout(c)
	}
	return out
}

func toCutouts(snaps []cutoutSnap) Cutouts {
	if len(snaps) == 0 {
		return nil
	}
	cs := make(Cutouts, len(snaps))
	for i, sc := range snaps {
		c := Cutout{ID: sc.ID, Center: r2.Vec{X: finite(sc.X), Y: finite(sc.Y)}}
		if sc.Type == "rect" {
			c.Kind = CutoutRect
			c.Width, c.Height = Dim(deref(sc.W)), Dim(deref(sc.H))
			c.Fillets = filletSnap{TL: sc.TL, TR: sc.TR, BR: sc.BR, BL: sc.BL}.fillets()
		} else {
			c.Radius = Dim(deref(sc.R))
		}
		cs[i] = c
	}
	return cs
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
