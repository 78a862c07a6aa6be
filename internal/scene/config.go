package scene

import (
	"fmt"

	"github.com/lukaszgryglicki/cubeview/internal/cubeview"
)

// Config describes the headless scene. Zero fields take the defaults of the
// browser viewer.
type Config struct {
	Width      int  `json:"width,omitempty" yaml:"width,omitempty"`
	Height     int  `json:"height,omitempty" yaml:"height,omitempty"`
	FovDeg     Real `json:"fovDeg,omitempty" yaml:"fovDeg,omitempty"`
	CameraZ    Real `json:"cameraZ,omitempty" yaml:"cameraZ,omitempty"`
	BallRadius Real `json:"ballRadius,omitempty" yaml:"ballRadius,omitempty"`
	// Captures mark lit LEDs with 0; set to draw balls for 1 bits instead.
	LitOnOne bool `json:"litOnOne,omitempty" yaml:"litOnOne,omitempty"`
}

// Build validates the config and constructs the scene.
func (c Config) Build() (*Scene, error) {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.FovDeg == 0 {
		c.FovDeg = DefaultFovDeg
	}
	if c.CameraZ == 0 {
		c.CameraZ = DefaultCameraZ
	}
	if c.BallRadius == 0 {
		c.BallRadius = DefaultBallRadius
	}
	if c.Width < 0 || c.Height < 0 {
		return nil, fmt.Errorf("image size must be > 0, got %dx%d", c.Width, c.Height)
	}
	if c.FovDeg <= 0 || c.FovDeg >= 180 {
		return nil, fmt.Errorf("fovDeg must be in (0, 180), got %g", c.FovDeg)
	}
	if c.CameraZ < 0 || c.BallRadius < 0 {
		return nil, fmt.Errorf("cameraZ and ballRadius must be > 0, got %g and %g", c.CameraZ, c.BallRadius)
	}
	return &Scene{
		cam:     NewCamera(c.CameraZ, c.FovDeg, Real(c.Width)/Real(c.Height)),
		width:   c.Width,
		height:  c.Height,
		radius:  c.BallRadius,
		lit:     litBit(c.LitOnOne),
		proxies: map[cubeview.ProxyHandle]*proxy{},
	}, nil
}
