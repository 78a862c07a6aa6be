package scene

import (
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lukaszgryglicki/cubeview/internal/cubeview"
)

func tinySlices() []cubeview.OccupancyMatrix {
	res := cubeview.Resolution{Rows: 8, Columns: 2}
	return []cubeview.OccupancyMatrix{
		cubeview.Decode(cubeview.Slice{cubeview.HexWord(0xFF00), cubeview.HexWord(0)}, res),
		cubeview.Decode(cubeview.Slice{cubeview.HexWord(0), cubeview.HexWord(0x0F00)}, res),
		cubeview.Decode(cubeview.Slice{cubeview.HexWord(0xFFFF), cubeview.HexWord(0xFFFF)}, res),
	}
}

func TestSaveSliceGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	if err := SaveSliceGIF(path, tinySlices(), 4, GIFDelay, false); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("gif not written: %v", err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 3 || g.Delay[0] != GIFDelay {
		t.Fatalf("frames=%d delay=%v", len(g.Image), g.Delay)
	}
	if b := g.Image[0].Bounds(); b.Dx() != 8 || b.Dy() != 32 {
		t.Fatalf("frame size %v", b)
	}
	if err := SaveSliceGIF(path, nil, 4, GIFDelay, false); err == nil {
		t.Fatal("empty slice list accepted")
	}
}

func TestSavePNGSequence(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "slice")
	paths, err := SavePNGSequence(prefix, tinySlices(), 4, false)
	if err != nil {
		t.Fatal(err)
	}
	// Three slices => single digit index.
	if len(paths) != 3 || paths[2] != prefix+"_2.png" {
		t.Fatalf("paths: %v", paths)
	}
	f, err := os.Open(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	// Slice 0: column 0 all ones, column 1 all zeros; lit cells are zeros.
	if r, _, _, _ := img.At(1, 1).RGBA(); r != 0 {
		t.Fatal("column 0 should be dark")
	}
	if r, g, _, _ := img.At(5, 1).RGBA(); r != 0xffff || g != 0 {
		t.Fatal("column 1 should be lit red")
	}
}

func TestRenderSnapshot(t *testing.T) {
	s := NewScene()
	h, _ := s.CreateProxy(darkMatrix(), cubeview.SliceTransform(1, 2, 1))
	img := s.Render()
	// Ball at (0.5, 0.5, 0) projects a little right of and above the center.
	if c := img.NRGBAAt(409, 290); c.R != 255 || c.G != 0 {
		t.Fatalf("expected a red ball, got %+v", c)
	}
	if c := img.NRGBAAt(0, 0); c.R != 0 || c.A != 255 {
		t.Fatalf("background should be opaque black, got %+v", c)
	}
	s.Highlight(h, true)
	if c := s.Render().NRGBAAt(409, 290); c.G != 255 || c.R != 0 {
		t.Fatalf("expected a green ball, got %+v", c)
	}
	s.SetVisible(h, false)
	if c := s.Render().NRGBAAt(409, 290); c.R != 0 || c.G != 0 {
		t.Fatalf("hidden proxy drawn: %+v", c)
	}
	path := filepath.Join(t.TempDir(), "view.png")
	if err := s.SavePNG(path); err != nil {
		t.Fatal(err)
	}
}
