package cubeview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Ticket identifies one file selection. Only the latest ticket may publish.
type Ticket uint64

// view is the published Repository/Controller pair of one ingestion.
type view struct {
	id   string
	name string
	repo *Repository
	ctrl *Controller
}

// Session is the single-viewer state: the published capture, its controller
// and the hover tester. A load is fully built before it is published with one
// atomic store, so hover events never see a half-built capture.
type Session struct {
	renderer Renderer
	ui       UI
	opts     []Option
	o        options
	hover    *HoverTester

	cur     atomic.Pointer[view]
	tickets atomic.Uint64
	// pub orders the final ticket check with the swap of cur.
	pub sync.Mutex
}

// NewSession creates an empty session; ui may be nil.
func NewSession(r Renderer, ui UI, opts ...Option) *Session {
	if ui == nil {
		ui = noopUI{}
	}
	o := buildOptions(opts)
	return &Session{
		renderer: r,
		ui:       ui,
		opts:     opts,
		o:        o,
		hover:    NewHoverTester(r, ui, o.rec),
	}
}

// Begin registers a new file selection and supersedes all earlier ones.
func (s *Session) Begin() Ticket {
	return Ticket(s.tickets.Add(1))
}

// Complete ingests the bytes read for ticket t. A failed or superseded load
// leaves the published state untouched.
func (s *Session) Complete(t Ticket, name string, data []byte) error {
	if s.stale(t, name) {
		return ErrSupersededLoad
	}
	doc, err := ParseFile(name, data)
	if err == nil {
		var repo *Repository
		repo, err = LoadWithLayout(doc, s.o.layout)
		if err == nil {
			return s.publish(t, name, repo)
		}
	}
	result := "malformed"
	if errors.Is(err, ErrInvalidJSON) {
		result = "invalid_json"
	}
	s.o.rec.IngestionResult(result)
	s.o.log.Warn("cubeview: capture rejected", "file", name, "error", err)
	s.ui.Toast(MsgInvalidFile)
	return err
}

// Load is Begin followed by Complete.
func (s *Session) Load(name string, data []byte) error {
	return s.Complete(s.Begin(), name, data)
}

// LoadFrom fetches key from f and loads it.
func (s *Session) LoadFrom(ctx context.Context, f Fetcher, key string) error {
	t := s.Begin()
	data, err := f.Fetch(ctx, key)
	if err != nil {
		s.o.rec.IngestionResult("fetch_error")
		s.ui.Toast(MsgInvalidFile)
		return fmt.Errorf("fetch %s: %w", key, err)
	}
	return s.Complete(t, key, data)
}

func (s *Session) stale(t Ticket, name string) bool {
	latest := s.tickets.Load()
	if uint64(t) == latest {
		return false
	}
	s.o.rec.IngestionResult("superseded")
	s.o.log.Info("cubeview: stale load dropped", "file", name, "ticket", uint64(t), "latest", latest)
	return true
}

// publish swaps in repo unless a newer selection began while it was parsed.
func (s *Session) publish(t Ticket, name string, repo *Repository) error {
	v := &view{
		id:   uuid.NewString(),
		name: name,
		repo: repo,
		ctrl: NewController(repo, s.renderer, s.ui, s.opts...),
	}
	s.pub.Lock()
	if s.stale(t, name) {
		s.pub.Unlock()
		return ErrSupersededLoad
	}
	old := s.cur.Swap(v)
	if old != nil {
		old.ctrl.Teardown()
	}
	s.pub.Unlock()
	s.o.rec.IngestionResult("ok")
	s.o.log.Info("cubeview: capture loaded",
		"session", v.id, "file", name, "frames", repo.FrameCount(), "words", repo.WordCount(), "legacy", repo.Legacy())
	s.ui.FrameButtonsNeeded(repo.FrameCount())
	s.ui.Toast(MsgLoaded)
	return nil
}

// Dispatch applies a command to the published controller.
func (s *Session) Dispatch(cmd Command) error {
	v := s.cur.Load()
	if v == nil {
		return &ControllerError{Kind: ErrNoFrameSelected, Op: "dispatch"}
	}
	return v.ctrl.Apply(cmd)
}

// PointerMoved hit-tests the pointer against the visible slices of the
// published capture. Without a capture the tooltip is simply hidden.
func (s *Session) PointerMoved(p PointerNDC, pos ScreenPos) (int, bool) {
	var candidates []ProxyBinding
	if v := s.cur.Load(); v != nil {
		candidates = v.ctrl.VisibleProxies()
	}
	return s.hover.PointerMoved(p, pos, candidates)
}

// Controller returns the published controller, nil before the first load.
func (s *Session) Controller() *Controller {
	if v := s.cur.Load(); v != nil {
		return v.ctrl
	}
	return nil
}

// Repository returns the published capture, nil before the first load.
func (s *Session) Repository() *Repository {
	if v := s.cur.Load(); v != nil {
		return v.repo
	}
	return nil
}

// Name returns the file name of the published load.
func (s *Session) Name() string {
	if v := s.cur.Load(); v != nil {
		return v.name
	}
	return ""
}

// ID returns the identifier of the published load.
func (s *Session) ID() string {
	if v := s.cur.Load(); v != nil {
		return v.id
	}
	return ""
}

// Logger exposes the configured logger to tools built on the session.
func (s *Session) Logger() *slog.Logger { return s.o.log }
