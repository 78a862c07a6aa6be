package scene

import (
	"fmt"
	"image/png"
	"math"
	"os"

	"github.com/lukaszgryglicki/cubeview/internal/cubeview"
)

// SavePNGSequence writes one PNG per slice matrix as prefix_<k>.png, with k
// zero-padded to the width of the last index. It returns the written paths.
func SavePNGSequence(prefix string, mats []cubeview.OccupancyMatrix, cellPx int, litOnOne bool) ([]string, error) {
	n := len(mats)
	lit := litBit(litOnOne)

	// Zero-padding width based on number of slices.
	width := 1
	if n > 1 {
		width = int(math.Log10(Real(n-1))) + 1
	}

	paths := make([]string, 0, n)
	for k, m := range mats {
		cubeview.DebugLog("[PNG] slice %d/%d", k+1, n)
		full := fmt.Sprintf("%s_%0*d.png", prefix, width, k)
		f, err := os.Create(full)
		if err != nil {
			return paths, err
		}
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(f, drawMatrix(m, cellPx, lit)); err != nil {
			f.Close()
			return paths, fmt.Errorf("encode %s: %w", full, err)
		}
		if err := f.Close(); err != nil {
			return paths, err
		}
		paths = append(paths, full)
	}
	return paths, nil
}
