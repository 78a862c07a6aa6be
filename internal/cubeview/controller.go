package cubeview

import (
	"errors"
	"fmt"
	"log/slog"
)

type sliceEntry struct {
	visible bool
	proxy   ProxyHandle
}

// Controller owns slice visibility for one Repository and keeps the
// renderer's proxies in line with it. Visibility is stored per frame; proxies
// exist only for the selected frame.
type Controller struct {
	repo     *Repository
	renderer Renderer
	ui       UI
	rec      Recorder
	log      *slog.Logger
	spacing  Real

	frame   int
	entries [][]sliceEntry // [frame][slice]
}

// NewController creates a controller with no frame selected and every slice hidden.
func NewController(repo *Repository, r Renderer, ui UI, opts ...Option) *Controller {
	o := buildOptions(opts)
	if ui == nil {
		ui = noopUI{}
	}
	c := &Controller{
		repo:     repo,
		renderer: r,
		ui:       ui,
		rec:      o.rec,
		log:      o.log,
		spacing:  o.spacing,
		frame:    NoSlice,
		entries:  make([][]sliceEntry, repo.FrameCount()),
	}
	for f := range c.entries {
		c.entries[f] = make([]sliceEntry, repo.SliceCount(f))
	}
	return c
}

// Repository returns the data the controller was built for.
func (c *Controller) Repository() *Repository { return c.repo }

// Frame returns the selected frame.
func (c *Controller) Frame() (int, bool) { return c.frame, c.frame != NoSlice }

// Apply executes one command.
func (c *Controller) Apply(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("nil command")
	}
	c.rec.Command(cmd.Kind())
	switch t := cmd.(type) {
	case ToggleSlice:
		return c.Toggle(t.Slice)
	case ShowAll:
		return c.ShowAll()
	case HideAll:
		return c.HideAll()
	case SelectFrame:
		return c.SelectFrame(t.Frame)
	case ResetView:
		c.Reset()
		return nil
	}
	return fmt.Errorf("unsupported command %T", cmd)
}

// SelectFrame disposes every proxy of the current frame and makes frame
// current. Slices the new frame had marked visible are materialized again.
func (c *Controller) SelectFrame(frame int) error {
	if frame < 0 || frame >= len(c.entries) {
		return outOfRange("select frame", frame, len(c.entries))
	}
	if frame == c.frame {
		c.syncUI()
		return nil
	}
	c.Teardown()
	c.frame = frame
	var errs []error
	for i := range c.entries[frame] {
		if !c.entries[frame][i].visible {
			continue
		}
		if err := c.materialize(i); err != nil {
			c.entries[frame][i].visible = false
			errs = append(errs, err)
		}
	}
	c.log.Debug("cubeview: frame selected", "frame", frame+1, "slices", len(c.entries[frame]))
	c.syncUI()
	return errors.Join(errs...)
}

// Toggle flips one slice of the selected frame, creating its proxy on first use.
func (c *Controller) Toggle(slice int) error {
	cur, err := c.current("toggle")
	if err != nil {
		return err
	}
	if slice < 0 || slice >= len(cur) {
		return outOfRange("toggle", slice, len(cur))
	}
	e := &cur[slice]
	if e.proxy == "" {
		if err := c.materialize(slice); err != nil {
			return err
		}
	} else {
		e.visible = !e.visible
		c.renderer.SetVisible(e.proxy, e.visible)
	}
	c.ui.Toast(fmt.Sprintf(msgSliceToggled, slice+1))
	c.syncUI()
	return nil
}

// ShowAll makes every slice of the selected frame visible.
func (c *Controller) ShowAll() error {
	cur, err := c.current("show all")
	if err != nil {
		return err
	}
	var errs []error
	for i := range cur {
		e := &cur[i]
		switch {
		case e.proxy == "":
			if err := c.materialize(i); err != nil {
				errs = append(errs, err)
			}
		case !e.visible:
			e.visible = true
			c.renderer.SetVisible(e.proxy, true)
		}
	}
	c.syncUI()
	return errors.Join(errs...)
}

// HideAll hides every materialized slice of the selected frame.
func (c *Controller) HideAll() error {
	cur, err := c.current("hide all")
	if err != nil {
		return err
	}
	for i := range cur {
		e := &cur[i]
		if e.proxy != "" && e.visible {
			e.visible = false
			c.renderer.SetVisible(e.proxy, false)
		}
	}
	c.syncUI()
	return nil
}

// Teardown disposes every proxy of the selected frame once. Visibility flags are kept.
func (c *Controller) Teardown() {
	if c.frame == NoSlice {
		return
	}
	cur := c.entries[c.frame]
	n := 0
	for i := range cur {
		if cur[i].proxy == "" {
			continue
		}
		c.renderer.Dispose(cur[i].proxy)
		c.rec.ProxyDisposed()
		cur[i].proxy = ""
		n++
	}
	if n > 0 {
		c.log.Debug("cubeview: proxies disposed", "frame", c.frame+1, "count", n)
	}
}

// Reset disposes all proxies and hides every slice of every frame, keeping the frame selection.
func (c *Controller) Reset() {
	c.Teardown()
	for f := range c.entries {
		for i := range c.entries[f] {
			c.entries[f][i] = sliceEntry{}
		}
	}
	if c.frame != NoSlice {
		c.syncUI()
	}
}

// State reports the state of a slice in the selected frame.
func (c *Controller) State(slice int) SliceState {
	return c.StateOf(c.frame, slice)
}

// StateOf reports the state of any slice; slices outside the selected frame
// are always Unmaterialized.
func (c *Controller) StateOf(frame, slice int) SliceState {
	if frame < 0 || frame >= len(c.entries) || slice < 0 || slice >= len(c.entries[frame]) {
		return Unmaterialized
	}
	e := c.entries[frame][slice]
	switch {
	case e.proxy == "":
		return Unmaterialized
	case e.visible:
		return Visible
	}
	return Hidden
}

// Visibility returns a copy of the stored visibility flags of a frame.
func (c *Controller) Visibility(frame int) []bool {
	if frame < 0 || frame >= len(c.entries) {
		return nil
	}
	out := make([]bool, len(c.entries[frame]))
	for i, e := range c.entries[frame] {
		out[i] = e.visible
	}
	return out
}

// VisibleProxies lists the proxies of Visible slices in slice order.
func (c *Controller) VisibleProxies() []ProxyBinding {
	if c.frame == NoSlice {
		return nil
	}
	var out []ProxyBinding
	for i, e := range c.entries[c.frame] {
		if e.proxy != "" && e.visible {
			out = append(out, ProxyBinding{Slice: i, Handle: e.proxy})
		}
	}
	return out
}

// ProxyCount is the number of materialized slices.
func (c *Controller) ProxyCount() int {
	if c.frame == NoSlice {
		return 0
	}
	n := 0
	for _, e := range c.entries[c.frame] {
		if e.proxy != "" {
			n++
		}
	}
	return n
}

// SliceTransform places slice i of a frame of n slices: slices fan out over
// half a turn, the first one already rotated by one step.
func SliceTransform(i, n int, spacing Real) Transform {
	if n <= 0 {
		n = 1
	}
	return Transform{Slice: i, AngleDeg: Real(i+1) * 360 / Real(2*n), Spacing: spacing}
}

func (c *Controller) current(op string) ([]sliceEntry, error) {
	if c.frame == NoSlice {
		return nil, &ControllerError{Kind: ErrNoFrameSelected, Op: op}
	}
	return c.entries[c.frame], nil
}

func (c *Controller) materialize(slice int) error {
	m, err := c.repo.Matrix(c.frame, slice)
	if err != nil {
		return err
	}
	for _, w := range c.repo.Warnings(c.frame, slice) {
		c.log.Debug("cubeview: decode warning", "frame", c.frame+1, "slice", slice+1, "warning", w.String())
	}
	h, err := c.renderer.CreateProxy(m, SliceTransform(slice, len(c.entries[c.frame]), c.spacing))
	if err != nil {
		return fmt.Errorf("create proxy for slice %d: %w", slice+1, err)
	}
	c.entries[c.frame][slice] = sliceEntry{visible: true, proxy: h}
	c.rec.ProxyCreated()
	DebugLog("materialized frame %d slice %d as %s", c.frame+1, slice+1, h)
	return nil
}

func (c *Controller) syncUI() {
	c.ui.SliceButtonsNeeded(c.frame, c.Visibility(c.frame))
}
