package scene

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"sort"
)

type sprite struct {
	x, y, r Real
	depth   Real
	c       color.NRGBA
}

func rgb(hex uint32) color.NRGBA {
	return color.NRGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 255}
}

// Render draws the balls of every visible proxy, far ones first.
func (s *Scene) Render() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	s.mu.Lock()
	var sprites []sprite
	for _, h := range s.order {
		p := s.proxies[h]
		if !p.visible {
			continue
		}
		c := rgb(p.info().BallColor)
		for _, b := range p.balls {
			ndc, depth, ok := s.cam.Project(b)
			if !ok {
				continue
			}
			sprites = append(sprites, sprite{
				x:     (ndc.X + 1) / 2 * Real(s.width),
				y:     (1 - ndc.Y) / 2 * Real(s.height),
				r:     s.radius * s.cam.PixelScale(depth, s.height),
				depth: depth,
				c:     c,
			})
		}
	}
	s.mu.Unlock()
	sort.SliceStable(sprites, func(i, j int) bool { return sprites[i].depth > sprites[j].depth })
	for _, sp := range sprites {
		disc(img, sp)
	}
	return img
}

func disc(img *image.NRGBA, sp sprite) {
	r := math.Max(sp.r, 0.5)
	x0, x1 := int(math.Floor(sp.x-r)), int(math.Ceil(sp.x+r))
	y0, y1 := int(math.Floor(sp.y-r)), int(math.Ceil(sp.y+r))
	b := img.Bounds()
	for y := max(y0, b.Min.Y); y < min(y1, b.Max.Y); y++ {
		for x := max(x0, b.Min.X); x < min(x1, b.Max.X); x++ {
			dx, dy := Real(x)+0.5-sp.x, Real(y)+0.5-sp.y
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, sp.c)
			}
		}
	}
}

// SavePNG writes the current view to path.
func (s *Scene) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, s.Render()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
