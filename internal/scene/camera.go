package scene

import (
	"math"

	"github.com/lukaszgryglicki/cubeview/internal/cubeview"
)

// Camera is a perspective camera on the +Z axis looking at the origin.
type Camera struct {
	Pos    Point3
	FovDeg Real // vertical field of view
	Aspect Real // width / height

	tanHalf Real
}

func NewCamera(z, fovDeg, aspect Real) Camera {
	return Camera{
		Pos:     Point3{0, 0, z},
		FovDeg:  fovDeg,
		Aspect:  aspect,
		tanHalf: math.Tan(fovDeg * math.Pi / 360),
	}
}

// Ray returns the unit ray through a pointer position in normalized device
// coordinates (x right, y up, both in [-1, 1]).
func (c Camera) Ray(p cubeview.PointerNDC) (Point3, Vector3) {
	D := Vector3{p.X * c.tanHalf * c.Aspect, p.Y * c.tanHalf, -1}
	return c.Pos, D.Norm()
}

// Project maps a world point to normalized device coordinates. depth is the
// distance along the view axis; ok is false for points behind the camera.
func (c Camera) Project(p Point3) (ndc cubeview.PointerNDC, depth Real, ok bool) {
	v := p.Sub(c.Pos)
	depth = -v.Z
	if depth <= epsDist {
		return cubeview.PointerNDC{}, depth, false
	}
	ndc.X = v.X / depth / (c.tanHalf * c.Aspect)
	ndc.Y = v.Y / depth / c.tanHalf
	return ndc, depth, true
}

// PixelScale converts a world length at depth into pixels for an image of height h.
func (c Camera) PixelScale(depth Real, h int) Real {
	return Real(h) / 2 / (depth * c.tanHalf)
}
