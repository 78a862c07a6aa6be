package cubeview

import "context"

// Renderer owns the renderable objects behind proxy handles.
type Renderer interface {
	CreateProxy(m OccupancyMatrix, t Transform) (ProxyHandle, error)
	SetVisible(h ProxyHandle, visible bool)
	Dispose(h ProxyHandle)
	Highlight(h ProxyHandle, on bool)
	// Raycast intersects the ray through p with the given proxies only.
	Raycast(p PointerNDC, candidates []ProxyHandle) []RayHit
}

// UI receives everything the viewer needs to redraw its controls.
type UI interface {
	FrameButtonsNeeded(frameCount int)
	SliceButtonsNeeded(frame int, visibility []bool)
	Toast(message string)
	Tooltip(t Tooltip)
}

// Recorder collects operational counters. See internal/metrics.
type Recorder interface {
	IngestionResult(result string)
	ProxyCreated()
	ProxyDisposed()
	Command(kind string)
	HoverResult(hit bool)
}

// Fetcher returns the raw bytes of one capture file.
type Fetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

type noopUI struct{}

func (noopUI) FrameButtonsNeeded(int)         {}
func (noopUI) SliceButtonsNeeded(int, []bool) {}
func (noopUI) Toast(string)                   {}
func (noopUI) Tooltip(Tooltip)                {}

type noopRecorder struct{}

func (noopRecorder) IngestionResult(string) {}
func (noopRecorder) ProxyCreated()          {}
func (noopRecorder) ProxyDisposed()         {}
func (noopRecorder) Command(string)         {}
func (noopRecorder) HoverResult(bool)       {}
