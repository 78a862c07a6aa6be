package scene

import (
	"math"

	"github.com/lukaszgryglicki/cubeview/internal/cubeview"
)

// proxy is the scene object of one materialized slice: a ball per lit cell
// and a square hit plane, both turned about Y by the slice angle.
type proxy struct {
	handle      cubeview.ProxyHandle
	slice       int
	angleDeg    Real
	rot, rotT   Mat3
	rows, cols  int
	balls       []Point3 // world positions
	half        Real     // half side of the hit plane
	AABBMin     Point3
	AABBMax     Point3
	visible     bool
	highlighted bool
}

func newProxy(h cubeview.ProxyHandle, m cubeview.OccupancyMatrix, tr cubeview.Transform, lit uint8) *proxy {
	sp := tr.Spacing
	if sp <= 0 {
		sp = cubeview.DefaultSpacing
	}
	R := rotYDeg(tr.AngleDeg)
	p := &proxy{
		handle:   h,
		slice:    tr.Slice,
		angleDeg: tr.AngleDeg,
		rot:      R,
		rotT:     R.Transpose(),
		rows:     m.Rows,
		cols:     m.Columns,
		visible:  true,
	}
	cx, cy := Real(m.Columns-1)/2, Real(m.Rows-1)/2
	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Columns; x++ {
			if m.Bit(y, x) != lit {
				continue
			}
			local := Vector3{(Real(x) - cx) * sp, -(Real(y) - cy) * sp, 0}
			p.balls = append(p.balls, Point3{}.Add(R.MulVec(local)))
		}
	}
	side := math.Max(Real(max(m.Rows, m.Columns))*sp, MinPlaneSide*sp)
	p.half = side / 2
	corners := make([]Point3, 0, 4)
	for _, c := range [4][2]Real{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		corners = append(corners, Point3{}.Add(R.MulVec(Vector3{c[0] * p.half, c[1] * p.half, 0})))
	}
	p.AABBMin, p.AABBMax = boundsOf(corners, boxPad)
	return p
}

// planeHit intersects a ray with the proxy's hit plane and returns the ray
// parameter of the hit. A plane seen edge-on is never hit.
func (p *proxy) planeHit(O Point3, D Vector3) (Real, bool) {
	o := p.rotT.MulVec(O.Vec())
	d := p.rotT.MulVec(D)
	if math.Abs(d.Z) < 1e-12 {
		return math.Inf(1), false
	}
	t := -o.Z / d.Z
	if t <= epsDist {
		return math.Inf(1), false
	}
	hit := o.Add(d.Mul(t))
	if math.Abs(hit.X) > p.half || math.Abs(hit.Y) > p.half {
		return math.Inf(1), false
	}
	return t, true
}

// ProxyInfo is a read-only view of one proxy.
type ProxyInfo struct {
	Handle       cubeview.ProxyHandle
	Slice        int
	AngleDeg     Real
	Rows, Cols   int
	Balls        int
	Visible      bool
	Highlighted  bool
	BallColor    uint32
	PlaneOpacity Real
}

func (p *proxy) info() ProxyInfo {
	pi := ProxyInfo{
		Handle:       p.handle,
		Slice:        p.slice,
		AngleDeg:     p.angleDeg,
		Rows:         p.rows,
		Cols:         p.cols,
		Balls:        len(p.balls),
		Visible:      p.visible,
		Highlighted:  p.highlighted,
		BallColor:    BallColor,
		PlaneOpacity: PlaneOpacity,
	}
	if p.highlighted {
		pi.BallColor, pi.PlaneOpacity = BallColorHover, PlaneOpacityOver
	}
	return pi
}
