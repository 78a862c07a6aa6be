package cubeview

import (
	"strings"
)

// OccupancyMatrix is a rows x columns bit grid decoded from one slice.
// It exposes raw bits; what a 1 means is up to the renderer.
type OccupancyMatrix struct {
	Rows, Columns int
	cells         []bool // row-major: y*Columns + x
}

// NewOccupancyMatrix allocates an all-zero matrix.
func NewOccupancyMatrix(rows, cols int) OccupancyMatrix {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return OccupancyMatrix{Rows: rows, Columns: cols, cells: make([]bool, rows*cols)}
}

func (m OccupancyMatrix) idx(y, x int) int { return y*m.Columns + x }

// At reports cell [y][x]; out-of-range cells read as false.
func (m OccupancyMatrix) At(y, x int) bool {
	if y < 0 || y >= m.Rows || x < 0 || x >= m.Columns {
		return false
	}
	return m.cells[m.idx(y, x)]
}

// Bit is At as 0/1.
func (m OccupancyMatrix) Bit(y, x int) uint8 {
	if m.At(y, x) {
		return 1
	}
	return 0
}

func (m OccupancyMatrix) set(y, x int, v bool) { m.cells[m.idx(y, x)] = v }

// Count returns how many cells hold the given bit.
func (m OccupancyMatrix) Count(bit uint8) int {
	n := 0
	for _, c := range m.cells {
		if c == (bit == 1) {
			n++
		}
	}
	return n
}

// Equal compares shape and content.
func (m OccupancyMatrix) Equal(o OccupancyMatrix) bool {
	if m.Rows != o.Rows || m.Columns != o.Columns {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Grid copies the matrix into nested slices, [y][x].
func (m OccupancyMatrix) Grid() [][]uint8 {
	out := make([][]uint8, m.Rows)
	for y := range out {
		out[y] = make([]uint8, m.Columns)
		for x := range out[y] {
			out[y][x] = m.Bit(y, x)
		}
	}
	return out
}

// String prints one row per line, cells separated by a space.
func (m OccupancyMatrix) String() string {
	var b strings.Builder
	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Columns; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte('0' + m.Bit(y, x))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Decode decodes a slice with DefaultLayout.
func Decode(s Slice, res Resolution) OccupancyMatrix {
	return DefaultLayout.Decode(s, res)
}

// Decode builds the occupancy matrix: cell[y][x] = bit BitIndex(y) of word x.
// Missing columns stay zero, extra words are ignored, invalid words read as zero.
func (l Layout) Decode(s Slice, res Resolution) OccupancyMatrix {
	m := NewOccupancyMatrix(res.Rows, res.Columns)
	cols := min(len(s), m.Columns)
	for x := 0; x < cols; x++ {
		w := s[x]
		if !w.Valid {
			continue
		}
		for y := 0; y < m.Rows; y++ {
			m.set(y, x, l.Bit(w, y))
		}
	}
	return m
}

// Inspect lists the repairs Decode applies to s; it never changes the result.
func (l Layout) Inspect(s Slice, res Resolution) []DecodeWarning {
	var out []DecodeWarning
	if len(s) != res.Columns {
		out = append(out, DecodeWarning{Kind: WarnRaggedSlice, Got: len(s), Want: res.Columns})
	}
	for x, w := range s {
		if x >= res.Columns {
			break
		}
		if !w.Valid {
			out = append(out, DecodeWarning{Kind: WarnInvalidWord, Column: x, Raw: w.Raw})
		}
	}
	return out
}
