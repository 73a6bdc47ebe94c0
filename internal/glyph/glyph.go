// Package glyph renders single kanji as large half-block art for terminals.
package glyph

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	faceSize  = 64
	threshold = 40
	padding   = 4
)

// FontPaths lists common locations of fonts with CJK coverage.
var FontPaths = []string{
	"/System/Library/Fonts/Hiragino Sans GB.ttc",
	"/System/Library/Fonts/ヒラギノ角ゴシック W3.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"C:\\Windows\\Fonts\\msgothic.ttc",
	"C:\\Windows\\Fonts\\YuGothR.ttc",
}

type cacheKey struct {
	r          rune
	cols, rows int
}

// Renderer draws glyphs from one font face and caches the results.
// A Renderer without a face renders nothing.
type Renderer struct {
	face  font.Face
	mu    sync.Mutex
	cache map[cacheKey]string
}

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
)

// NewRenderer returns a renderer for face. face may be nil.
func NewRenderer(face font.Face) *Renderer {
	return &Renderer{face: face, cache: make(map[cacheKey]string)}
}

// Default returns a shared renderer backed by the first usable font in FontPaths.
func Default() *Renderer {
	defaultOnce.Do(func() {
		face, err := LoadFace(FontPaths)
		if err != nil {
			slog.Debug("No CJK font for large glyphs", "err", err)
		}
		defaultRenderer = NewRenderer(face)
	})
	return defaultRenderer
}

// LoadFace parses the first font file in paths that exists and is valid.
// Font collections use their first font.
func LoadFace(paths []string) (font.Face, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		face, err := ParseFace(data)
		if err != nil {
			slog.Debug("Skipping font", "path", path, "err", err)
			continue
		}
		slog.Debug("Loaded glyph font", "path", path)
		return face, nil
	}
	return nil, fmt.Errorf("no usable font found")
}

// ParseFace builds a face from raw font or font collection bytes.
func ParseFace(data []byte) (font.Face, error) {
	opts := &opentype.FaceOptions{Size: faceSize, DPI: 72}
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		fnt, err := coll.Font(0)
		if err != nil {
			return nil, err
		}
		return opentype.NewFace(fnt, opts)
	}
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, opts)
}

// Available reports whether the renderer has a font.
func (g *Renderer) Available() bool {
	return g != nil && g.face != nil
}

// Render returns r drawn in cols x rows terminal cells, or "" when no font is loaded
// or the font has no glyph for r.
func (g *Renderer) Render(r rune, cols, rows int) string {
	if !g.Available() || cols <= 0 || rows <= 0 {
		return ""
	}
	key := cacheKey{r: r, cols: cols, rows: rows}
	g.mu.Lock()
	defer g.mu.Unlock()
	if cached, ok := g.cache[key]; ok {
		return cached
	}
	rendered := g.render(r, cols, rows)
	g.cache[key] = rendered
	return rendered
}

func (g *Renderer) render(r rune, cols, rows int) string {
	bounds, _, ok := g.face.GlyphBounds(r)
	if !ok {
		return ""
	}
	glyphWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()
	srcWidth := max(glyphWidth+padding*2, faceSize)
	srcHeight := max(glyphHeight+padding*2, faceSize)

	src := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(src, src.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: g.face,
		Dot: fixed.Point26_6{
			X: fixed.I((srcWidth-glyphWidth)/2) - bounds.Min.X,
			Y: fixed.I(srcHeight-padding) - bounds.Max.Y,
		},
	}
	d.DrawString(string(r))

	// Each cell holds two vertical pixels.
	return halfBlocks(scaleDown(src, cols, rows*2), cols, rows)
}

// scaleDown averages source pixels into a dstWidth x dstHeight image.
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth := src.Bounds().Dx()
	srcHeight := src.Bounds().Dy()
	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))
	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := 0; dy < dstHeight; dy++ {
		sy1 := int(float64(dy) * yRatio)
		sy2 := min(int(float64(dy+1)*yRatio), srcHeight)
		for dx := 0; dx < dstWidth; dx++ {
			sx1 := int(float64(dx) * xRatio)
			sx2 := min(int(float64(dx+1)*xRatio), srcWidth)
			sum, count := 0, 0
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}
	return dst
}

func halfBlocks(img *image.Gray, cols, rows int) string {
	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := brightness(img, col, row*2) > threshold
			bottom := brightness(img, col, row*2+1) > threshold
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return 0
	}
	return img.GrayAt(x, y).Y
}
