package shape

import (
	"image"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/vmath"
)

// Generator fills target buffers for any Shape
// Text candidates are cached per string; not safe for concurrent use
type Generator struct {
	raster Rasterizer
	cache  map[string]textCandidates
}

type textCandidates struct {
	points []image.Point
	bounds image.Rectangle
}

// NewGenerator creates a generator; raster may be nil, in which case text shapes are no-ops
func NewGenerator(raster Rasterizer) *Generator {
	return &Generator{
		raster: raster,
		cache:  make(map[string]textCandidates),
	}
}

// Fill writes len(dst) target points for s into dst
// Returns false when dst was left untouched (text with no lit pixels)
// The error is non-nil only when the rasterizer itself failed
func (g *Generator) Fill(dst []vmath.Vec3F, s Shape, rng *vmath.FastRand) (bool, error) {
	switch s.Kind {
	case KindGalaxy:
		Galaxy(dst, rng)
	case KindHeart:
		Heart(dst, rng)
	case KindSaturn:
		Saturn(dst, rng)
	case KindFlower:
		Flower(dst, rng)
	case KindText:
		tc, err := g.candidates(s.Text)
		if err != nil {
			return false, err
		}
		return TextPoints(dst, tc.points, tc.bounds, rng), nil
	default:
		return false, nil
	}
	return true, nil
}

func (g *Generator) candidates(text string) (textCandidates, error) {
	text = PrepareText(text)
	if tc, ok := g.cache[text]; ok {
		return tc, nil
	}
	if g.raster == nil || text == "" {
		return textCandidates{}, nil
	}

	img, err := g.raster.Rasterize(text)
	if err != nil {
		return textCandidates{}, err
	}
	tc := textCandidates{
		points: Candidates(img, parameter.TextStride, parameter.TextThreshold),
		bounds: img.Bounds(),
	}
	g.cache[text] = tc
	return tc, nil
}

// PrepareText normalizes to NFC, trims and caps length in grapheme clusters
func PrepareText(s string) string {
	s = strings.TrimSpace(norm.NFC.String(s))
	if uniseg.GraphemeClusterCount(s) <= parameter.TextMaxClusters {
		return s
	}

	var b strings.Builder
	gr := uniseg.NewGraphemes(s)
	for n := 0; n < parameter.TextMaxClusters && gr.Next(); n++ {
		b.WriteString(gr.Str())
	}
	return b.String()
}

// Disperse scatters points uniformly in the origin-centred cube
func Disperse(dst []vmath.Vec3F, rng *vmath.FastRand) {
	h := parameter.DisperseExtent / 2
	for i := range dst {
		dst[i] = vmath.Vec3F{
			X: rng.Range(-h, h),
			Y: rng.Range(-h, h),
			Z: rng.Range(-h, h),
		}
	}
}

// Galaxy builds a spiral with arms assigned by index modulo arm count
func Galaxy(dst []vmath.Vec3F, rng *vmath.FastRand) {
	armStep := 2 * math.Pi / parameter.GalaxyArms
	j := parameter.GalaxyJitter
	for i := range dst {
		arm := float64(i % parameter.GalaxyArms)
		r := rng.Range(0, parameter.GalaxyRadiusMax)
		spin := r*parameter.GalaxySpinFactor + arm*armStep

		z := rng.Range(-parameter.GalaxyThickness, parameter.GalaxyThickness)
		dst[i] = vmath.Vec3F{
			X: math.Cos(spin)*r + rng.Range(-j, j),
			Y: math.Sin(spin)*r + rng.Range(-j, j),
			Z: z + rng.Range(-j, j),
		}
	}
}

// HeartPoint evaluates the heart curve at t, already scaled
func HeartPoint(t float64) (x, y float64) {
	s := math.Sin(t)
	x = 16 * s * s * s
	y = 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
	return x * parameter.HeartScale, y * parameter.HeartScale
}

// Heart places points on the planar heart outline, thickened along Z
func Heart(dst []vmath.Vec3F, rng *vmath.FastRand) {
	for i := range dst {
		x, y := HeartPoint(rng.Range(0, 2*math.Pi))
		dst[i] = vmath.Vec3F{
			X: x,
			Y: y,
			Z: rng.Range(-parameter.HeartDepthZ, parameter.HeartDepthZ),
		}
	}
}

// SaturnTilt is the fixed ring rotation about the X axis
func SaturnTilt() mgl64.Mat3 {
	return mgl64.Rotate3DX(parameter.SaturnTilt)
}

// SaturnRingCount returns how many leading points of an n-point buffer belong to the ring
func SaturnRingCount(n int) int {
	return int(float64(n) * parameter.SaturnRingFraction)
}

// Saturn fills the leading ring fraction with a tilted annulus and the rest with a sphere shell
func Saturn(dst []vmath.Vec3F, rng *vmath.FastRand) {
	tilt := SaturnTilt()
	ring := SaturnRingCount(len(dst))

	for i := 0; i < ring; i++ {
		a := rng.Range(0, 2*math.Pi)
		r := rng.Range(parameter.SaturnRingRadiusMin, parameter.SaturnRingRadiusMax)
		flat := mgl64.Vec3{
			math.Cos(a) * r,
			rng.Range(-parameter.SaturnRingJitter, parameter.SaturnRingJitter),
			math.Sin(a) * r,
		}
		p := tilt.Mul3x1(flat)
		dst[i] = vmath.Vec3F{X: p[0], Y: p[1], Z: p[2]}
	}

	pr := parameter.SaturnPlanetRadius
	for i := ring; i < len(dst); i++ {
		theta := rng.Range(0, 2*math.Pi)
		phi := math.Acos(2*rng.Float64() - 1)
		dst[i] = vmath.Vec3F{
			X: pr * math.Sin(phi) * math.Cos(theta),
			Y: pr * math.Sin(phi) * math.Sin(theta),
			Z: pr * math.Cos(phi),
		}
	}
}

// FlowerRadius is the polar rose radius at angle theta
func FlowerRadius(theta float64) float64 {
	return math.Abs(math.Cos(parameter.FlowerPetals*theta))*parameter.FlowerRadius + parameter.FlowerBaseRadius
}

// Flower places points on a four-lobed rose with a random out-of-plane tilt
func Flower(dst []vmath.Vec3F, rng *vmath.FastRand) {
	for i := range dst {
		theta := rng.Range(0, 2*math.Pi)
		r := FlowerRadius(theta)
		half := rng.Range(-math.Pi/2, math.Pi/2) / 2
		dst[i] = vmath.Vec3F{
			X: r * math.Cos(theta) * math.Cos(half),
			Y: r * math.Sin(theta) * math.Cos(half),
			Z: r * math.Sin(half),
		}
	}
}
