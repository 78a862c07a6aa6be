package cubeview

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func newTestController() (*Controller, *fakeRenderer, *fakeUI, *countingRecorder) {
	r := newFakeRenderer()
	ui := &fakeUI{}
	rec := newCountingRecorder()
	c := NewController(mustRepo(twoFrames), r, ui, WithRecorder(rec), WithSpacing(0.5))
	return c, r, ui, rec
}

func TestToggleIsInvolutionAndCreatesOnce(t *testing.T) {
	c, r, ui, rec := newTestController()
	if err := c.SelectFrame(0); err != nil {
		t.Fatal(err)
	}
	if c.State(1) != Unmaterialized {
		t.Fatalf("fresh slice should be unmaterialized, got %s", c.State(1))
	}
	for i := 0; i < 5; i++ {
		if err := c.Toggle(1); err != nil {
			t.Fatal(err)
		}
	}
	if c.State(1) != Visible {
		t.Fatalf("odd number of toggles should leave slice visible, got %s", c.State(1))
	}
	if err := c.Toggle(1); err != nil {
		t.Fatal(err)
	}
	if c.State(1) != Hidden {
		t.Fatalf("even number of toggles should hide, got %s", c.State(1))
	}
	if r.created != 1 || rec.created != 1 {
		t.Fatalf("expected exactly one proxy, created=%d recorded=%d", r.created, rec.created)
	}
	if ui.lastToast() != "Slice 2 toggled" {
		t.Fatalf("toast = %q", ui.lastToast())
	}
	last := ui.sliceButtons[len(ui.sliceButtons)-1]
	if len(last) != 3 || last[1] {
		t.Fatalf("slice buttons out of sync: %v", last)
	}
}

func TestToggleReusesMatrix(t *testing.T) {
	c, r, _, _ := newTestController()
	_ = c.SelectFrame(0)
	_ = c.Toggle(0)
	var p *fakeProxy
	for _, fp := range r.proxies {
		p = fp
	}
	want, _ := c.Repository().Matrix(0, 0)
	if !p.matrix.Equal(want) {
		t.Fatalf("proxy got a different matrix:\n%s", p.matrix)
	}
	if p.transform.Slice != 0 || math.Abs(p.transform.AngleDeg-60) > 1e-12 || p.transform.Spacing != 0.5 {
		t.Fatalf("transform wrong: %+v", p.transform)
	}
	_ = c.Toggle(0)
	_ = c.Toggle(0)
	if r.created != 1 {
		t.Fatalf("hidden/visible flips must not create proxies, created=%d", r.created)
	}
}

func TestShowAllHideAll(t *testing.T) {
	c, r, _, _ := newTestController()
	_ = c.SelectFrame(0)
	_ = c.Toggle(2)
	_ = c.Toggle(2) // hidden
	if err := c.ShowAll(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if c.State(i) != Visible {
			t.Fatalf("slice %d: %s after ShowAll", i, c.State(i))
		}
	}
	if r.created != 3 {
		t.Fatalf("expected 3 proxies, got %d", r.created)
	}
	if err := c.HideAll(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if c.State(i) != Hidden {
			t.Fatalf("slice %d: %s after HideAll", i, c.State(i))
		}
	}
	if len(c.VisibleProxies()) != 0 {
		t.Fatal("no proxy should be visible after HideAll")
	}
	_ = c.ShowAll()
	if r.created != 3 {
		t.Fatalf("ShowAll on hidden slices must reuse proxies, created=%d", r.created)
	}
}

func TestHideAllKeepsUnmaterialized(t *testing.T) {
	c, r, _, _ := newTestController()
	_ = c.SelectFrame(0)
	_ = c.Toggle(0)
	_ = c.HideAll()
	if c.State(0) != Hidden || c.State(1) != Unmaterialized {
		t.Fatalf("states: %s %s", c.State(0), c.State(1))
	}
	if r.created != 1 {
		t.Fatalf("HideAll must not materialize, created=%d", r.created)
	}
}

func TestSelectFrameDisposesBeforeMaterializing(t *testing.T) {
	c, r, _, rec := newTestController()
	_ = c.SelectFrame(0)
	_ = c.ShowAll()
	_ = c.Toggle(1) // hidden proxies are disposed too
	r.events = nil
	if err := c.SelectFrame(1); err != nil {
		t.Fatal(err)
	}
	if r.disposed != 3 || rec.disposed != 3 || r.live() != 0 {
		t.Fatalf("disposed=%d recorded=%d live=%d", r.disposed, rec.disposed, r.live())
	}
	_ = c.Toggle(0)
	seenCreate := false
	for _, ev := range r.events {
		if strings.HasPrefix(ev, "create:") {
			seenCreate = true
		}
		if strings.HasPrefix(ev, "dispose:") && seenCreate {
			t.Fatalf("dispose after create: %v", r.events)
		}
	}
	if f, ok := c.Frame(); !ok || f != 1 {
		t.Fatalf("frame = %d %v", f, ok)
	}
	if c.StateOf(0, 0) != Unmaterialized {
		t.Fatal("previous frame must have no proxies")
	}
}

func TestSelectFrameKeepsOtherFramesVisibility(t *testing.T) {
	c, r, ui, _ := newTestController()
	_ = c.SelectFrame(0)
	_ = c.Toggle(0)
	_ = c.Toggle(2)
	_ = c.SelectFrame(1)
	_ = c.Toggle(1)
	if got := c.Visibility(0); !got[0] || got[1] || !got[2] {
		t.Fatalf("frame 1 visibility altered: %v", got)
	}
	created := r.created
	_ = c.SelectFrame(0)
	if c.State(0) != Visible || c.State(1) != Unmaterialized || c.State(2) != Visible {
		t.Fatalf("restored states: %s %s %s", c.State(0), c.State(1), c.State(2))
	}
	if r.created != created+2 {
		t.Fatalf("expected 2 re-materialized proxies, got %d", r.created-created)
	}
	if got := c.Visibility(1); got[0] || !got[1] {
		t.Fatalf("frame 2 visibility altered: %v", got)
	}
	if r.live() != 2 {
		t.Fatalf("only the current frame may have proxies, live=%d", r.live())
	}
	last := ui.sliceButtons[len(ui.sliceButtons)-1]
	if !last[0] || last[1] || !last[2] {
		t.Fatalf("slice buttons: %v", last)
	}
}

func TestSelectSameFrameIsNoop(t *testing.T) {
	c, r, _, _ := newTestController()
	_ = c.SelectFrame(0)
	_ = c.Toggle(0)
	_ = c.SelectFrame(0)
	if r.disposed != 0 || c.State(0) != Visible {
		t.Fatalf("reselecting the current frame must not tear down: disposed=%d", r.disposed)
	}
}

func TestControllerErrors(t *testing.T) {
	c, r, _, _ := newTestController()
	if err := c.Toggle(0); !errors.Is(err, ErrNoFrameSelected) {
		t.Fatalf("expected ErrNoFrameSelected, got %v", err)
	}
	if err := c.ShowAll(); !errors.Is(err, ErrNoFrameSelected) {
		t.Fatalf("expected ErrNoFrameSelected, got %v", err)
	}
	if err := c.SelectFrame(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	_ = c.SelectFrame(1)
	for _, idx := range []int{-1, 2, 100} {
		err := c.Toggle(idx)
		var ce *ControllerError
		if !errors.As(err, &ce) || !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("toggle %d: expected ControllerError, got %v", idx, err)
		}
		if ce.Index != idx || ce.Limit != 2 {
			t.Fatalf("error context wrong: %+v", ce)
		}
	}
	if r.created != 0 {
		t.Fatal("failed commands must not touch the renderer")
	}
}

func TestCreateProxyFailureLeavesSliceUnmaterialized(t *testing.T) {
	c, r, _, _ := newTestController()
	r.failOn[1] = true
	_ = c.SelectFrame(0)
	err := c.ShowAll()
	if err == nil || !strings.Contains(err.Error(), "slice 2") {
		t.Fatalf("expected wrapped renderer error, got %v", err)
	}
	if c.State(0) != Visible || c.State(1) != Unmaterialized || c.State(2) != Visible {
		t.Fatalf("states: %s %s %s", c.State(0), c.State(1), c.State(2))
	}
	if err := c.Toggle(1); err == nil {
		t.Fatal("toggle should report the renderer failure")
	}
}

func TestApplyCommands(t *testing.T) {
	c, r, _, rec := newTestController()
	cmds := []Command{SelectFrame{Frame: 0}, ToggleSlice{Slice: 0}, ShowAll{}, HideAll{}, ResetView{}}
	for _, cmd := range cmds {
		if err := c.Apply(cmd); err != nil {
			t.Fatalf("%T: %v", cmd, err)
		}
	}
	if rec.commands["toggle"] != 1 || rec.commands["select_frame"] != 1 || rec.commands["reset"] != 1 {
		t.Fatalf("commands recorded: %v", rec.commands)
	}
	if r.live() != 0 || c.State(0) != Unmaterialized {
		t.Fatal("reset must dispose everything")
	}
	for f := 0; f < 2; f++ {
		for _, v := range c.Visibility(f) {
			if v {
				t.Fatal("reset must hide every slice")
			}
		}
	}
	if err := c.Apply(nil); err == nil {
		t.Fatal("nil command accepted")
	}
}

func TestParseCommand(t *testing.T) {
	cases := map[string]Command{
		"frame 2":  SelectFrame{Frame: 1},
		"toggle 1": ToggleSlice{Slice: 0},
		"Show-All": ShowAll{},
		"hide-all": HideAll{},
		"reset":    ResetView{},
	}
	for in, want := range cases {
		got, err := ParseCommand(in)
		if err != nil || got != want {
			t.Fatalf("%q: got %#v, %v", in, got, err)
		}
	}
	for _, bad := range []string{"", "toggle", "toggle 0", "frame x", "spin 3"} {
		if _, err := ParseCommand(bad); err == nil {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestSliceTransform(t *testing.T) {
	tr := SliceTransform(23, 24, 1)
	if math.Abs(tr.AngleDeg-180) > 1e-12 {
		t.Fatalf("last of 24 slices should sit at 180 degrees, got %.6g", tr.AngleDeg)
	}
	if tr := SliceTransform(0, 24, 1); math.Abs(tr.AngleDeg-7.5) > 1e-12 {
		t.Fatalf("first of 24 slices should sit at 7.5 degrees, got %.6g", tr.AngleDeg)
	}
}
