package render

import (
	"errors"
	"image"
	gocolor "image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, gocolor.RGBA{R: uint8(x * 20), G: uint8(y * 20), B: 128, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return path
}

func TestRenderStatic_HalfBlocks(t *testing.T) {
	s := NewSurface(10, 5)
	style := DefaultItemStyle()
	style.Type = Static
	style.ImagePath = writeTestPNG(t, 8, 8)

	if err := renderStatic(s, cellRect{x: 0, y: 0, w: 10, h: 5}, style, testTheme, telemetry.ContentItemData{}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(s.Text(), "▀") {
		t.Errorf("expected half-block image cells, got:\n%s", s.Text())
	}
}

func TestRenderStatic_NoImagePath(t *testing.T) {
	s := NewSurface(10, 5)
	style := DefaultItemStyle()
	style.Type = Static

	err := renderStatic(s, cellRect{x: 0, y: 0, w: 10, h: 5}, style, testTheme, telemetry.ContentItemData{}, nil)
	if !errors.Is(err, ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
}

func TestRenderStatic_MissingFile(t *testing.T) {
	s := NewSurface(10, 5)
	style := DefaultItemStyle()
	style.Type = Static
	style.ImagePath = filepath.Join(t.TempDir(), "missing.png")

	if err := renderStatic(s, cellRect{x: 0, y: 0, w: 10, h: 5}, style, testTheme, telemetry.ContentItemData{}, nil); err == nil {
		t.Error("expected error for a missing image file")
	}
}

func TestLoadImage_CachesByPath(t *testing.T) {
	path := writeTestPNG(t, 4, 4)

	first, err := loadImage(path)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}

	// Remove the file; a cache hit must still succeed.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove test image: %v", err)
	}
	second, err := loadImage(path)
	if err != nil {
		t.Fatalf("cached load: %v", err)
	}
	if first != second {
		t.Error("expected the cached image instance to be returned")
	}
}
