package cubeview

// Layout maps matrix rows to word bits. Row y reads bit RowBits[y] when
// present, otherwise bit y+RowShift.
type Layout struct {
	RowShift int
	RowBits  []int
}

var (
	// DefaultLayout is the 16-bit word layout written by the display firmware:
	// the low byte is unused and row y sits at bit y+8.
	DefaultLayout = Layout{RowShift: DefaultRowShift}
	// UnshiftedLayout reads row y straight from bit y.
	UnshiftedLayout = Layout{RowShift: 0}
	// Extended10Layout is the 10-row variant: rows 0..7 at bits 8..15,
	// row 8 at bit 16 and row 9 at bit 26.
	Extended10Layout = Layout{RowShift: DefaultRowShift, RowBits: []int{8, 9, 10, 11, 12, 13, 14, 15, 16, 26}}
)

// BitIndex returns the word bit feeding row y.
func (l Layout) BitIndex(y int) int {
	if y < len(l.RowBits) {
		return l.RowBits[y]
	}
	return y + l.RowShift
}

// Bit extracts row y of a word; invalid words and out-of-word bits read as zero.
func (l Layout) Bit(w Word, y int) bool {
	if !w.Valid {
		return false
	}
	b := l.BitIndex(y)
	if b < 0 || b > 63 {
		return false
	}
	return (w.Value>>uint(b))&1 == 1
}

// Rows is the natural row count of the layout, DefaultRows unless RowBits says otherwise.
func (l Layout) Rows() int {
	if len(l.RowBits) > DefaultRows {
		return len(l.RowBits)
	}
	return DefaultRows
}

// LayoutByName resolves the names accepted in configuration files.
func LayoutByName(name string) (Layout, bool) {
	switch name {
	case "", "default", "shift8":
		return DefaultLayout, true
	case "unshifted", "shift0":
		return UnshiftedLayout, true
	case "extended10":
		return Extended10Layout, true
	}
	return Layout{}, false
}
