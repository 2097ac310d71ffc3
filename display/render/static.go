package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"gitlab.com/tinyland/lab/panel-pulse/display/color"
	"gitlab.com/tinyland/lab/panel-pulse/internal/format"
	"gitlab.com/tinyland/lab/panel-pulse/telemetry"
)

// ErrNoImage is returned when a static item has no usable image path.
var ErrNoImage = errors.New("render: static item has no image")

// imageCache memoizes decoded images by path. Static items re-render every
// frame; decoding is paid once.
var imageCache = struct {
	sync.Mutex
	byPath map[string]image.Image
}{byPath: make(map[string]image.Image)}

func loadImage(path string) (image.Image, error) {
	imageCache.Lock()
	defer imageCache.Unlock()

	if img, ok := imageCache.byPath[path]; ok {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("render: open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("render: decode image %s: %w", path, err)
	}

	imageCache.byPath[path] = img
	return img, nil
}

// renderStatic scales the configured image into the rectangle and draws it
// with upper-half-block characters: each text row carries two pixel rows,
// foreground for the top pixel and background for the bottom one. Overlay
// lines draw over the image.
func renderStatic(s *Surface, rc cellRect, style ItemStyle, theme color.Theme, data telemetry.ContentItemData, slots telemetry.Snapshot) error {
	if rc.w < 1 || rc.h < 1 {
		return ErrRectTooSmall
	}
	if style.ImagePath == "" {
		return ErrNoImage
	}

	img, err := loadImage(style.ImagePath)
	if err != nil {
		return err
	}

	resized := imaging.Fit(img, rc.w, rc.h*2, imaging.Lanczos)
	bounds := resized.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	offX := rc.x + (rc.w-w)/2
	offY := rc.y + (rc.h-(h+1)/2)/2

	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			tr, tg, tb, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			var br, bg, bb uint32
			if y+1 < h {
				br, bg, bb, _ = resized.At(bounds.Min.X+x, bounds.Min.Y+y+1).RGBA()
			}

			s.SetCell(offX+x, offY+y/2, Cell{
				Rune: '▀',
				Fg:   lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", tr>>8, tg>>8, tb>>8)),
				Bg:   lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", br>>8, bg>>8, bb>>8)),
			})
		}
	}

	for i, line := range style.Overlay {
		if i >= rc.h {
			break
		}
		resolved := format.TruncateWithEllipsis(resolveOverlay(line, data, slots), rc.w)
		s.DrawString(rc.x, rc.y+i, resolved, theme.Text)
	}

	return nil
}
