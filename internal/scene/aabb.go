package scene

import "math"

type rayRecips struct {
	invX, invY, invZ Real
	parX, parY, parZ bool // parallel flags (|D| < eps)
}

func newRayRecips(D Vector3) rayRecips {
	const eps = 1e-12
	rr := rayRecips{
		parX: math.Abs(D.X) < eps,
		parY: math.Abs(D.Y) < eps,
		parZ: math.Abs(D.Z) < eps,
	}
	if !rr.parX {
		rr.invX = 1 / D.X
	}
	if !rr.parY {
		rr.invY = 1 / D.Y
	}
	if !rr.parZ {
		rr.invZ = 1 / D.Z
	}
	return rr
}

func slab(o, lo, hi, inv Real, par bool, tmin, tmax *Real) bool {
	if par {
		return o >= lo && o <= hi
	}
	t1 := (lo - o) * inv
	t2 := (hi - o) * inv
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > *tmin {
		*tmin = t1
	}
	if t2 < *tmax {
		*tmax = t2
	}
	return true
}

func rayAABB(O Point3, minP, maxP Point3, rr rayRecips) (bool, Real) {
	tmin, tmax := -1e300, 1e300
	if !slab(O.X, minP.X, maxP.X, rr.invX, rr.parX, &tmin, &tmax) ||
		!slab(O.Y, minP.Y, maxP.Y, rr.invY, rr.parY, &tmin, &tmax) ||
		!slab(O.Z, minP.Z, maxP.Z, rr.invZ, rr.parZ, &tmin, &tmax) {
		return false, 0
	}
	if tmax < 0 || tmin > tmax {
		return false, 0
	}
	return true, tmin
}

// boundsOf returns the box around pts, padded by pad on every axis so flat
// sets (a plane seen edge-on to an axis) still have volume.
func boundsOf(pts []Point3, pad Real) (Point3, Point3) {
	if len(pts) == 0 {
		return Point3{}, Point3{}
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X, hi.X = math.Min(lo.X, p.X), math.Max(hi.X, p.X)
		lo.Y, hi.Y = math.Min(lo.Y, p.Y), math.Max(hi.Y, p.Y)
		lo.Z, hi.Z = math.Min(lo.Z, p.Z), math.Max(hi.Z, p.Z)
	}
	d := Vector3{pad, pad, pad}
	return lo.Add(d.Mul(-1)), hi.Add(d)
}
