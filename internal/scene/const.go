package scene

import "github.com/lukaszgryglicki/cubeview/internal/cubeview"

type Real = cubeview.Real

// Defaults mirror the browser viewer the captures were recorded for.
const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultFovDeg     = 75
	DefaultCameraZ    = 20
	DefaultBallRadius = 0.1
	DefaultCellPx     = 16
	GIFDelay          = 25 // 100ths of a second per slice
	// smallest plane side, the hit plane of an 8x8 slice at unit spacing
	MinPlaneSide = 8

	BallColor        = 0xff0000
	BallColorHover   = 0x00ff00
	PlaneOpacity     = 0.01
	PlaneOpacityOver = 0.5

	epsDist = 1e-9
	boxPad  = 1e-6
)
