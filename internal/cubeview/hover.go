package cubeview

import (
	"math"
	"strconv"
)

// HoverTester resolves pointer moves to the nearest visible slice.
type HoverTester struct {
	renderer Renderer
	ui       UI
	rec      Recorder
}

// NewHoverTester binds the hit tester to its collaborators; ui and rec may be nil.
func NewHoverTester(r Renderer, ui UI, rec Recorder) *HoverTester {
	if ui == nil {
		ui = noopUI{}
	}
	if rec == nil {
		rec = noopRecorder{}
	}
	return &HoverTester{renderer: r, ui: ui, rec: rec}
}

// HitTest resets every candidate to its default look, casts the pointer ray
// against the candidates only and highlights the nearest one. Candidates must
// be the currently Visible slices; ties go to the lower slice index.
func (h *HoverTester) HitTest(p PointerNDC, candidates []ProxyBinding) (int, bool) {
	for _, c := range candidates {
		h.renderer.Highlight(c.Handle, false)
	}
	if len(candidates) == 0 {
		h.rec.HoverResult(false)
		return NoSlice, false
	}
	handles := make([]ProxyHandle, len(candidates))
	bySlice := make(map[ProxyHandle]int, len(candidates))
	for i, c := range candidates {
		handles[i] = c.Handle
		bySlice[c.Handle] = c.Slice
	}
	best, bestT := NoSlice, math.Inf(1)
	var bestH ProxyHandle
	for _, hit := range h.renderer.Raycast(p, handles) {
		slice, ok := bySlice[hit.Handle]
		if !ok {
			DebugLogOnce("renderer reported a hit on non-candidate proxy %s", hit.Handle)
			continue
		}
		if math.IsNaN(hit.Distance) || hit.Distance < 0 {
			continue
		}
		if hit.Distance < bestT || (hit.Distance == bestT && slice < best) {
			best, bestT, bestH = slice, hit.Distance, hit.Handle
		}
	}
	if best == NoSlice {
		h.rec.HoverResult(false)
		return NoSlice, false
	}
	h.renderer.Highlight(bestH, true)
	h.rec.HoverResult(true)
	return best, true
}

// PointerMoved runs HitTest and updates the tooltip.
func (h *HoverTester) PointerMoved(p PointerNDC, pos ScreenPos, candidates []ProxyBinding) (int, bool) {
	slice, ok := h.HitTest(p, candidates)
	if !ok {
		h.ui.Tooltip(Tooltip{Slice: NoSlice, Pos: pos})
		return NoSlice, false
	}
	h.ui.Tooltip(Tooltip{Visible: true, Slice: slice, Label: strconv.Itoa(slice + 1), Pos: pos})
	return slice, true
}
