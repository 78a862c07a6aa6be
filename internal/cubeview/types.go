package cubeview

import (
	"strconv"
)

type Real = float64

// Word is one column of a slice. Valid is false for text that was neither a
// hex string nor a number; such words decode to zero in every row.
type Word struct {
	Value int64
	Valid bool
	Raw   string
}

// HexWord builds a valid word, mostly useful in tests and tools.
func HexWord(v int64) Word { return Word{Value: v, Valid: true} }

func (w Word) String() string {
	if !w.Valid {
		return strconv.Quote(w.Raw)
	}
	return "0x" + strconv.FormatInt(w.Value, 16)
}

// Slice is one planar cross-section, one word per column.
type Slice []Word

// Frame is one capture timestep.
type Frame []Slice

// Resolution of an occupancy matrix.
type Resolution struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Transform places a slice proxy in the scene: rotation about Y in degrees and
// the distance between neighbouring cells.
type Transform struct {
	Slice    int
	AngleDeg Real
	Spacing  Real
}

// PointerNDC is a pointer position in normalized device coordinates, both axes in [-1, 1].
type PointerNDC struct {
	X, Y Real
}

// ScreenPos is the pointer position in screen pixels, only forwarded to the UI.
type ScreenPos struct {
	X, Y int
}

// ProxyHandle references a renderable owned by the Renderer. Empty means none.
type ProxyHandle string

// RayHit is one ray intersection reported by the Renderer.
type RayHit struct {
	Handle   ProxyHandle
	Distance Real
}

// ProxyBinding pairs a materialized slice with its proxy.
type ProxyBinding struct {
	Slice  int
	Handle ProxyHandle
}

// Tooltip is what the UI shows for the hovered slice. Label is the 1-based slice number.
type Tooltip struct {
	Visible bool
	Slice   int
	Label   string
	Pos     ScreenPos
}

// SliceState of a slice in the selected frame.
type SliceState uint8

const (
	Unmaterialized SliceState = iota
	Hidden
	Visible
)

func (s SliceState) String() string {
	switch s {
	case Unmaterialized:
		return "unmaterialized"
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	}
	return "unknown"
}
