package shape

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/vmath"
)

// Rasterizer draws text onto a bitmap of fixed logical size
// Contract: light glyphs on a dark background, centred both ways; only the red
// channel is sampled, at TextStride, against TextThreshold
type Rasterizer interface {
	Rasterize(text string) (image.Image, error)
}

// Candidates collects pixel coordinates whose red channel exceeds threshold, sampling every stride pixels
func Candidates(img image.Image, stride int, threshold uint8) []image.Point {
	if stride < 1 {
		stride = 1
	}
	b := img.Bounds()
	var out []image.Point

	if rgba, ok := img.(*image.RGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y += stride {
			for x := b.Min.X; x < b.Max.X; x += stride {
				if rgba.Pix[rgba.PixOffset(x, y)] > threshold {
					out = append(out, image.Point{X: x - b.Min.X, Y: y - b.Min.Y})
				}
			}
		}
		return out
	}

	for y := b.Min.Y; y < b.Max.Y; y += stride {
		for x := b.Min.X; x < b.Max.X; x += stride {
			r, _, _, _ := img.At(x, y).RGBA()
			if uint8(r>>8) > threshold {
				out = append(out, image.Point{X: x - b.Min.X, Y: y - b.Min.Y})
			}
		}
	}
	return out
}

// TextPoints maps random candidates from a bitmap of the given bounds into world space
// Returns false and leaves dst untouched when there are no candidates
func TextPoints(dst []vmath.Vec3F, candidates []image.Point, bounds image.Rectangle, rng *vmath.FastRand) bool {
	if len(candidates) == 0 || bounds.Dx() == 0 || bounds.Dy() == 0 {
		return false
	}
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	for i := range dst {
		p := candidates[rng.Intn(len(candidates))]
		dst[i] = vmath.Vec3F{
			X: (float64(p.X)/w - 0.5) * parameter.TextWorldWidth,
			Y: -(float64(p.Y)/h - 0.5) * parameter.TextWorldHeight,
			Z: rng.Range(-parameter.TextDepthZ, parameter.TextDepthZ),
		}
	}
	return true
}

// GlyphRasterizer renders text in Go Bold, shrinking the size until it fits the bitmap width
// Runes the font has no glyph for are dropped, so unsupported scripts produce a blank bitmap
type GlyphRasterizer struct {
	font   *opentype.Font
	width  int
	height int

	mu    sync.Mutex
	faces map[float64]font.Face
	buf   sfnt.Buffer
}

// NewGlyphRasterizer parses the embedded bold font
func NewGlyphRasterizer() (*GlyphRasterizer, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse glyph font: %w", err)
	}
	return &GlyphRasterizer{
		font:   f,
		width:  parameter.TextBitmapWidth,
		height: parameter.TextBitmapHeight,
		faces:  make(map[float64]font.Face),
	}, nil
}

// Rasterize implements Rasterizer
func (g *GlyphRasterizer) Rasterize(text string) (image.Image, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	text = g.supported(text)
	if strings.TrimSpace(text) == "" {
		return img, nil
	}

	face, advance, err := g.fit(text)
	if err != nil {
		return nil, err
	}

	m := face.Metrics()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot: fixed.Point26_6{
			X: (fixed.I(g.width) - advance) / 2,
			Y: (fixed.I(g.height) + m.Ascent - m.Descent) / 2,
		},
	}
	d.DrawString(text)
	return img, nil
}

// supported drops runes without a glyph in the font
func (g *GlyphRasterizer) supported(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r == ' ' {
			b.WriteRune(r)
			continue
		}
		idx, err := g.font.GlyphIndex(&g.buf, r)
		if err != nil || idx == 0 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fit returns the largest face whose advance for text fits the bitmap width
func (g *GlyphRasterizer) fit(text string) (font.Face, fixed.Int26_6, error) {
	limit := fixed.I(g.width - 2*parameter.TextStride)
	var (
		face    font.Face
		advance fixed.Int26_6
	)
	for size := parameter.TextFontSize; size >= parameter.TextFontSizeMin; size -= parameter.TextFontStep {
		f, err := g.face(size)
		if err != nil {
			return nil, 0, err
		}
		face = f
		advance = font.MeasureString(f, text)
		if advance <= limit {
			break
		}
	}
	return face, advance, nil
}

func (g *GlyphRasterizer) face(size float64) (font.Face, error) {
	if f, ok := g.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(g.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph face %.0fpx: %w", size, err)
	}
	g.faces[size] = f
	return f, nil
}
