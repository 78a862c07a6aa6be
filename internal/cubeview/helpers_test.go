package cubeview

import (
	"errors"
	"fmt"
	"sort"
)

type fakeProxy struct {
	matrix      OccupancyMatrix
	transform   Transform
	visible     bool
	highlighted bool
	disposed    bool
}

// fakeRenderer records every call. Raycast answers from dist, keyed by slice,
// and deliberately reports hits for every live proxy, candidate or not.
type fakeRenderer struct {
	seq      int
	proxies  map[ProxyHandle]*fakeProxy
	events   []string
	created  int
	disposed int
	dist     map[int]Real
	failOn   map[int]bool
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{proxies: map[ProxyHandle]*fakeProxy{}, dist: map[int]Real{}, failOn: map[int]bool{}}
}

func (r *fakeRenderer) CreateProxy(m OccupancyMatrix, t Transform) (ProxyHandle, error) {
	if r.failOn[t.Slice] {
		return "", errors.New("boom")
	}
	r.seq++
	h := ProxyHandle(fmt.Sprintf("p%d", r.seq))
	r.proxies[h] = &fakeProxy{matrix: m, transform: t, visible: true}
	r.created++
	r.events = append(r.events, "create:"+string(h))
	return h, nil
}

func (r *fakeRenderer) SetVisible(h ProxyHandle, v bool) {
	r.proxies[h].visible = v
	r.events = append(r.events, fmt.Sprintf("visible:%s:%v", h, v))
}

func (r *fakeRenderer) Dispose(h ProxyHandle) {
	p := r.proxies[h]
	if p.disposed {
		panic("double dispose of " + string(h))
	}
	p.disposed = true
	r.disposed++
	r.events = append(r.events, "dispose:"+string(h))
}

func (r *fakeRenderer) Highlight(h ProxyHandle, on bool) {
	r.proxies[h].highlighted = on
	r.events = append(r.events, fmt.Sprintf("highlight:%s:%v", h, on))
}

func (r *fakeRenderer) Raycast(_ PointerNDC, _ []ProxyHandle) []RayHit {
	var hits []RayHit
	for h, p := range r.proxies {
		if p.disposed {
			continue
		}
		if d, ok := r.dist[p.transform.Slice]; ok {
			hits = append(hits, RayHit{Handle: h, Distance: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Handle > hits[j].Handle })
	return hits
}

func (r *fakeRenderer) live() int {
	n := 0
	for _, p := range r.proxies {
		if !p.disposed {
			n++
		}
	}
	return n
}

type fakeUI struct {
	frameButtons []int
	sliceButtons [][]bool
	toasts       []string
	tooltips     []Tooltip
}

func (u *fakeUI) FrameButtonsNeeded(n int) { u.frameButtons = append(u.frameButtons, n) }
func (u *fakeUI) SliceButtonsNeeded(_ int, v []bool) {
	u.sliceButtons = append(u.sliceButtons, v)
}
func (u *fakeUI) Toast(m string)    { u.toasts = append(u.toasts, m) }
func (u *fakeUI) Tooltip(t Tooltip) { u.tooltips = append(u.tooltips, t) }

func (u *fakeUI) lastToast() string {
	if len(u.toasts) == 0 {
		return ""
	}
	return u.toasts[len(u.toasts)-1]
}

func (u *fakeUI) lastTooltip() Tooltip {
	if len(u.tooltips) == 0 {
		return Tooltip{}
	}
	return u.tooltips[len(u.tooltips)-1]
}

type countingRecorder struct {
	ingest   map[string]int
	created  int
	disposed int
	commands map[string]int
	hits     int
	misses   int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{ingest: map[string]int{}, commands: map[string]int{}}
}

func (r *countingRecorder) IngestionResult(s string) { r.ingest[s]++ }
func (r *countingRecorder) ProxyCreated()            { r.created++ }
func (r *countingRecorder) ProxyDisposed()           { r.disposed++ }
func (r *countingRecorder) Command(k string)         { r.commands[k]++ }
func (r *countingRecorder) HoverResult(hit bool) {
	if hit {
		r.hits++
	} else {
		r.misses++
	}
}

const twoFrames = `{"resolution":{"rows":8,"columns":2},"data":[
	[["FF00","0100"],["8000","0000"],["ffff","ffff"]],
	[["0000","0000"],["0f00","f000"]]
]}`

func mustRepo(text string) *Repository {
	doc, err := Parse([]byte(text))
	if err != nil {
		panic(err)
	}
	repo, err := Load(doc)
	if err != nil {
		panic(err)
	}
	return repo
}
