package scene

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/lukaszgryglicki/cubeview/internal/cubeview"
)

// Scene is a headless renderer: it keeps slice proxies, answers ray queries
// from a perspective camera and can draw itself into an image.
type Scene struct {
	mu      sync.Mutex
	cam     Camera
	width   int
	height  int
	radius  Real
	lit     uint8
	proxies map[cubeview.ProxyHandle]*proxy
	order   []cubeview.ProxyHandle // creation order, disposed handles removed
}

var _ cubeview.Renderer = (*Scene)(nil)

// NewScene returns a scene with the default camera and image size.
func NewScene() *Scene {
	s, _ := Config{}.Build()
	return s
}

func (s *Scene) Camera() Camera { return s.cam }

func (s *Scene) CreateProxy(m cubeview.OccupancyMatrix, tr cubeview.Transform) (cubeview.ProxyHandle, error) {
	h := cubeview.ProxyHandle(uuid.NewString())
	p := newProxy(h, m, tr, s.lit)
	s.mu.Lock()
	s.proxies[h] = p
	s.order = append(s.order, h)
	s.mu.Unlock()
	cubeview.DebugLog("scene: proxy %s for slice %d at %.2f deg, %d balls", h, tr.Slice+1, tr.AngleDeg, len(p.balls))
	return h, nil
}

func (s *Scene) SetVisible(h cubeview.ProxyHandle, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.proxies[h]; ok {
		p.visible = v
	}
}

func (s *Scene) Dispose(h cubeview.ProxyHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.proxies[h]; !ok {
		return
	}
	delete(s.proxies, h)
	for i, o := range s.order {
		if o == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Scene) Highlight(h cubeview.ProxyHandle, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.proxies[h]; ok {
		p.highlighted = on
	}
}

// Raycast casts the camera ray through p against the hit planes of the given
// proxies and returns every hit, nearest first.
func (s *Scene) Raycast(p cubeview.PointerNDC, handles []cubeview.ProxyHandle) []cubeview.RayHit {
	O, D := s.cam.Ray(p)
	rr := newRayRecips(D)
	s.mu.Lock()
	defer s.mu.Unlock()
	var hits []cubeview.RayHit
	for _, h := range handles {
		px, ok := s.proxies[h]
		if !ok {
			continue
		}
		if ok, _ := rayAABB(O, px.AABBMin, px.AABBMax, rr); !ok {
			continue
		}
		if t, ok := px.planeHit(O, D); ok {
			hits = append(hits, cubeview.RayHit{Handle: h, Distance: t})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// Proxies lists the live proxies in creation order.
func (s *Scene) Proxies() []ProxyInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ProxyInfo, 0, len(s.order))
	for _, h := range s.order {
		out = append(out, s.proxies[h].info())
	}
	return out
}

// Proxy returns one live proxy.
func (s *Scene) Proxy(h cubeview.ProxyHandle) (ProxyInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.proxies[h]
	if !ok {
		return ProxyInfo{}, false
	}
	return p.info(), true
}
