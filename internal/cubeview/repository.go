package cubeview

import (
	"encoding/json"
	"fmt"
)

// Repository is one parsed capture. It is built once per ingestion and never
// mutated afterwards; matrices are decoded on demand.
type Repository struct {
	frames   []Frame
	res      Resolution
	explicit bool
	legacy   bool
	layout   Layout
	words    int
}

// Load validates the structure of doc and builds a Repository with DefaultLayout.
func Load(doc *ParsedDocument) (*Repository, error) {
	return LoadWithLayout(doc, DefaultLayout)
}

// LoadWithLayout is Load with an explicit bit layout.
func LoadWithLayout(doc *ParsedDocument, layout Layout) (*Repository, error) {
	if doc == nil {
		return nil, malformedf("$", "empty document")
	}
	if doc.root != "" {
		return nil, malformedf("$", "expected an array of frames or an object with data, got %s", doc.root)
	}
	if doc.Layout != nil {
		layout = *doc.Layout
	}
	r := &Repository{legacy: doc.Legacy, layout: layout}
	if doc.Resolution != nil {
		res, err := parseResolution(doc.Resolution)
		if err != nil {
			return nil, err
		}
		r.res, r.explicit = res, true
	}
	if !doc.HasData {
		return nil, malformedf("data", "missing")
	}
	path := "data"
	if doc.Legacy {
		path = "$"
	}
	frames, ok := doc.Data.([]any)
	if !ok {
		return nil, malformedf(path, "expected an array of frames, got %s", jsonKind(doc.Data))
	}
	if len(frames) == 0 {
		return nil, malformedf(path, "no frames")
	}
	r.frames = make([]Frame, len(frames))
	for fi, fv := range frames {
		slices, ok := fv.([]any)
		if !ok {
			return nil, malformedf(fmt.Sprintf("%s[%d]", path, fi), "expected an array of slices, got %s", jsonKind(fv))
		}
		if len(slices) == 0 {
			return nil, malformedf(fmt.Sprintf("%s[%d]", path, fi), "no slices")
		}
		frame := make(Frame, len(slices))
		for si, sv := range slices {
			words, ok := sv.([]any)
			if !ok {
				return nil, malformedf(fmt.Sprintf("%s[%d][%d]", path, fi, si), "expected an array of words, got %s", jsonKind(sv))
			}
			slice := make(Slice, len(words))
			for wi, wv := range words {
				w, ok := wv.(Word)
				if !ok {
					return nil, malformedf(fmt.Sprintf("%s[%d][%d][%d]", path, fi, si, wi), "expected a hex string or number, got %s", jsonKind(wv))
				}
				slice[wi] = w
			}
			r.words += len(slice)
			frame[si] = slice
		}
		r.frames[fi] = frame
	}
	DebugLog("loaded %d frames, %d words, explicit resolution=%v", len(r.frames), r.words, r.explicit)
	return r, nil
}

func parseResolution(v any) (Resolution, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Resolution{}, malformedf("resolution", "expected an object, got %s", jsonKind(v))
	}
	dim := func(key string) (int, error) {
		n, ok := obj[key].(json.Number)
		if !ok {
			return 0, malformedf("resolution."+key, "expected a positive integer")
		}
		i, err := n.Int64()
		if err != nil || i <= 0 || i > 1<<16 {
			return 0, malformedf("resolution."+key, "expected a positive integer, got %s", n.String())
		}
		return int(i), nil
	}
	rows, err := dim("rows")
	if err != nil {
		return Resolution{}, err
	}
	cols, err := dim("columns")
	if err != nil {
		return Resolution{}, err
	}
	if rows*cols > MaxCells {
		return Resolution{}, malformedf("resolution", "%dx%d exceeds %d cells", rows, cols, MaxCells)
	}
	return Resolution{Rows: rows, Columns: cols}, nil
}

// FrameCount returns the number of frames.
func (r *Repository) FrameCount() int { return len(r.frames) }

// SliceCount returns the number of slices of a frame, 0 when out of range.
func (r *Repository) SliceCount(frame int) int {
	if frame < 0 || frame >= len(r.frames) {
		return 0
	}
	return len(r.frames[frame])
}

// Slice returns the words of one slice.
func (r *Repository) Slice(frame, slice int) (Slice, bool) {
	if slice < 0 || slice >= r.SliceCount(frame) {
		return nil, false
	}
	return r.frames[frame][slice], true
}

func (r *Repository) Resolution() Resolution { return r.res }
func (r *Repository) Explicit() bool         { return r.explicit }
func (r *Repository) Legacy() bool           { return r.legacy }
func (r *Repository) Layout() Layout         { return r.layout }
func (r *Repository) WordCount() int         { return r.words }

// ResolutionOf applies the defaulting rules: an explicit resolution wins,
// otherwise the layout's row count and one column per word.
func (r *Repository) ResolutionOf(frame, slice int) Resolution {
	if r.explicit {
		return r.res
	}
	s, _ := r.Slice(frame, slice)
	return Resolution{Rows: r.layout.Rows(), Columns: len(s)}
}

// Matrix decodes one slice.
func (r *Repository) Matrix(frame, slice int) (OccupancyMatrix, error) {
	s, ok := r.Slice(frame, slice)
	if !ok {
		if frame < 0 || frame >= len(r.frames) {
			return OccupancyMatrix{}, outOfRange("matrix frame", frame, len(r.frames))
		}
		return OccupancyMatrix{}, outOfRange("matrix slice", slice, len(r.frames[frame]))
	}
	return r.layout.Decode(s, r.ResolutionOf(frame, slice)), nil
}

// Warnings inspects one slice without decoding it.
func (r *Repository) Warnings(frame, slice int) []DecodeWarning {
	s, ok := r.Slice(frame, slice)
	if !ok {
		return nil
	}
	return r.layout.Inspect(s, r.ResolutionOf(frame, slice))
}
