package cubeview

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ParseSliceText reads an already decoded dump: slices of whitespace separated
// 0/1 rows, one slice per block. Any other line (a "[Slice n]" header, a blank
// line) ends the current block. Rows are packed back into words with the
// layout that fits the row count, which the document then carries.
func ParseSliceText(text []byte) (*ParsedDocument, error) {
	text, err := decodeText(text)
	if err != nil {
		return nil, &IngestionError{Kind: ErrMalformedDocument, Msg: "text encoding: " + err.Error()}
	}
	var (
		slices [][][]bool
		cur    [][]bool
		cols   int
		rows   int
	)
	flush := func() {
		if len(cur) > 0 {
			slices = append(slices, cur)
			rows = max(rows, len(cur))
			cur = nil
		}
	}
	sc := bufio.NewScanner(bytes.NewReader(text))
	for sc.Scan() {
		row, ok := bitRow(sc.Bytes())
		if !ok {
			flush()
			continue
		}
		cur = append(cur, row)
		cols = max(cols, len(row))
	}
	if err := sc.Err(); err != nil {
		return nil, &IngestionError{Kind: ErrMalformedDocument, Msg: err.Error()}
	}
	flush()
	if len(slices) == 0 {
		return nil, &IngestionError{Kind: ErrMalformedDocument, Msg: "no 0/1 slice rows found"}
	}
	layout, ok := textLayout(rows)
	if !ok {
		return nil, malformedf("$", "%d rows do not fit a 64-bit word", rows)
	}
	if rows*cols > MaxCells {
		return nil, malformedf("$", "%dx%d exceeds %d cells", rows, cols, MaxCells)
	}
	frame := make([]any, len(slices))
	for si, s := range slices {
		words := make([]any, cols)
		for x := 0; x < cols; x++ {
			var v int64
			for y, row := range s {
				if x < len(row) && row[x] {
					v |= 1 << uint(layout.BitIndex(y))
				}
			}
			words[x] = Word{Value: v, Valid: true}
		}
		frame[si] = words
	}
	DebugLog("slice text: %d slices of %dx%d", len(slices), rows, cols)
	return &ParsedDocument{
		Resolution: map[string]any{
			"rows":    json.Number(strconv.Itoa(rows)),
			"columns": json.Number(strconv.Itoa(cols)),
		},
		Data:    []any{frame},
		HasData: true,
		Layout:  &layout,
	}, nil
}

// bitRow parses a line made only of 0 and 1 tokens.
func bitRow(line []byte) ([]bool, bool) {
	fields := bytes.Fields(line)
	if len(fields) == 0 {
		return nil, false
	}
	row := make([]bool, len(fields))
	for i, f := range fields {
		switch string(f) {
		case "0":
		case "1":
			row[i] = true
		default:
			return nil, false
		}
	}
	return row, true
}

// textLayout picks the firmware layout for n rows, or a plain one when the
// firmware layouts run out of bits.
func textLayout(n int) (Layout, bool) {
	switch {
	case n <= DefaultRows:
		return DefaultLayout, true
	case n <= len(Extended10Layout.RowBits):
		return Extended10Layout, true
	case n <= 64:
		return UnshiftedLayout, true
	}
	return Layout{}, false
}

// FormatSliceText writes the matrices in the layout ParseSliceText reads.
func FormatSliceText(mats []OccupancyMatrix) string {
	var b bytes.Buffer
	for i, m := range mats {
		fmt.Fprintf(&b, "[Slice %d]\n%s\n", i+1, m.String())
	}
	return b.String()
}
