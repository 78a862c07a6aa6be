package scene

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/lukaszgryglicki/cubeview/internal/cubeview"
)

// drawMatrix paints one occupancy matrix, cellPx pixels per cell with a one
// pixel gutter. Cells equal to lit are drawn in the ball color.
func drawMatrix(m cubeview.OccupancyMatrix, cellPx int, lit uint8) *image.NRGBA {
	if cellPx < 2 {
		cellPx = 2
	}
	img := image.NewNRGBA(image.Rect(0, 0, m.Columns*cellPx, m.Rows*cellPx))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{A: 255}), image.Point{}, draw.Src)
	on := image.NewUniform(rgb(BallColor))
	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Columns; x++ {
			if m.Bit(y, x) != lit {
				continue
			}
			r := image.Rect(x*cellPx, y*cellPx, (x+1)*cellPx-1, (y+1)*cellPx-1)
			draw.Draw(img, r, on, image.Point{}, draw.Src)
		}
	}
	return img
}

// SaveSliceGIF writes a GIF with one frame per slice matrix.
// delay is in 100ths of a second (e.g., 25 => 4 slices per second).
func SaveSliceGIF(path string, mats []cubeview.OccupancyMatrix, cellPx, delay int, litOnOne bool) error {
	if len(mats) == 0 {
		return fmt.Errorf("no slices to write to %s", path)
	}
	lit := litBit(litOnOne)
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(mats)),
		Delay:     make([]int, 0, len(mats)),
		LoopCount: 0,
	}
	for k, m := range mats {
		cubeview.DebugLog("[GIF] slice %d/%d", k+1, len(mats))
		rgba := drawMatrix(m, cellPx, lit)
		pimg := image.NewPaletted(rgba.Bounds(), palette.Plan9)
		draw.Draw(pimg, pimg.Bounds(), rgba, image.Point{}, draw.Src)
		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, out); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func litBit(litOnOne bool) uint8 {
	if litOnOne {
		return 1
	}
	return 0
}
