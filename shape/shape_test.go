package shape

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/vmath"
)

const testN = 3000

func TestParseShape(t *testing.T) {
	tests := []struct {
		id   string
		want Shape
	}{
		{"galaxy", Shape{Kind: KindGalaxy}},
		{"heart", Shape{Kind: KindHeart}},
		{" Saturn ", Shape{Kind: KindSaturn}},
		{"FLOWER", Shape{Kind: KindFlower}},
		{"love", Text("I Love You")},
		{"text:Hi there", Text("Hi there")},
		{"TEXT:x", Text("x")},
	}
	for _, tt := range tests {
		got, err := ParseShape(tt.id)
		if err != nil {
			t.Errorf("ParseShape(%q) error: %v", tt.id, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseShape(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}

	if _, err := ParseShape("cube"); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("expected ErrUnknownShape, got %v", err)
	}
}

func TestAllShapesFillFinite(t *testing.T) {
	gen := NewGenerator(stubRaster{})
	shapes := []Shape{
		{Kind: KindGalaxy},
		{Kind: KindHeart},
		{Kind: KindSaturn},
		{Kind: KindFlower},
		Text("X"),
	}
	for _, s := range shapes {
		dst := make([]vmath.Vec3F, testN)
		ok, err := gen.Fill(dst, s, vmath.NewFastRand(1))
		if err != nil || !ok {
			t.Fatalf("%v: Fill = %v, %v", s, ok, err)
		}
		if len(dst) != testN {
			t.Fatalf("%v: got %d points", s, len(dst))
		}
		for i, p := range dst {
			if !vmath.V3FIsFinite(p) {
				t.Fatalf("%v: point %d not finite: %+v", s, i, p)
			}
		}
	}

	dst := make([]vmath.Vec3F, testN)
	Disperse(dst, vmath.NewFastRand(1))
	for i, p := range dst {
		if !vmath.V3FIsFinite(p) {
			t.Fatalf("disperse: point %d not finite", i)
		}
	}
}

func TestDisperseWithinCube(t *testing.T) {
	dst := make([]vmath.Vec3F, testN)
	Disperse(dst, vmath.NewFastRand(3))
	h := parameter.DisperseExtent / 2
	for i, p := range dst {
		if math.Abs(p.X) > h || math.Abs(p.Y) > h || math.Abs(p.Z) > h {
			t.Fatalf("point %d outside cube: %+v", i, p)
		}
	}
}

func TestHeartRegressionFixture(t *testing.T) {
	x, y := HeartPoint(0)
	if math.Abs(x) > 1e-12 || math.Abs(y-2.5) > 1e-12 {
		t.Errorf("HeartPoint(0) = (%v, %v), want (0, 2.5)", x, y)
	}
}

func TestHeartBoundingBox(t *testing.T) {
	gen := NewGenerator(nil)
	rng := vmath.NewFastRand(11)
	a := make([]vmath.Vec3F, testN)
	b := make([]vmath.Vec3F, testN)
	gen.Fill(a, Shape{Kind: KindHeart}, rng)
	gen.Fill(b, Shape{Kind: KindHeart}, rng)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
		}
		for _, p := range []vmath.Vec3F{a[i], b[i]} {
			if p.X < -8-1e-9 || p.X > 8+1e-9 {
				t.Fatalf("x out of heart bbox: %v", p.X)
			}
			if p.Y < -8.5-1e-9 || p.Y > 6 {
				t.Fatalf("y out of heart bbox: %v", p.Y)
			}
			if math.Abs(p.Z) > parameter.HeartDepthZ {
				t.Fatalf("z out of range: %v", p.Z)
			}
		}
	}
	if same {
		t.Error("re-selecting heart produced an identical point set")
	}
}

func TestSaturnRingInverseTilt(t *testing.T) {
	dst := make([]vmath.Vec3F, testN)
	Saturn(dst, vmath.NewFastRand(5))

	inv := SaturnTilt().Transpose()
	ring := SaturnRingCount(testN)
	for i := 0; i < ring; i++ {
		p := inv.Mul3x1(mgl64.Vec3{dst[i].X, dst[i].Y, dst[i].Z})
		if math.Abs(p[1]) > parameter.SaturnRingJitter+1e-9 {
			t.Fatalf("ring point %d off plane after inverse tilt: y=%v", i, p[1])
		}
		r := math.Hypot(p[0], p[2])
		if r < parameter.SaturnRingRadiusMin-0.01 || r > parameter.SaturnRingRadiusMax+0.01 {
			t.Fatalf("ring point %d radius %v out of range", i, r)
		}
	}
	for i := ring; i < testN; i++ {
		if d := vmath.V3FMag(dst[i]); math.Abs(d-parameter.SaturnPlanetRadius) > 1e-9 {
			t.Fatalf("planet point %d not on shell: |p|=%v", i, d)
		}
	}
}

func TestGalaxyArmAssignment(t *testing.T) {
	dst := make([]vmath.Vec3F, 30)
	Galaxy(dst, vmath.NewFastRand(9))
	limit := parameter.GalaxyRadiusMax + 2*parameter.GalaxyJitter
	for i, p := range dst {
		if math.Hypot(p.X, p.Y) > limit {
			t.Errorf("point %d beyond galaxy radius: %+v", i, p)
		}
		if math.Abs(p.Z) > parameter.GalaxyThickness+parameter.GalaxyJitter {
			t.Errorf("point %d too thick: %+v", i, p)
		}
	}
}

func TestFlowerRadiusBounds(t *testing.T) {
	dst := make([]vmath.Vec3F, testN)
	Flower(dst, vmath.NewFastRand(13))
	for i, p := range dst {
		r := vmath.V3FMag(p)
		if r < parameter.FlowerBaseRadius-1e-9 || r > parameter.FlowerRadius+parameter.FlowerBaseRadius+1e-9 {
			t.Fatalf("point %d radius %v out of rose bounds", i, r)
		}
	}
}

// stubRaster lights a centred rectangle
type stubRaster struct{}

func (stubRaster) Rasterize(text string) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, parameter.TextBitmapWidth, parameter.TextBitmapHeight))
	for y := 32; y < 96; y++ {
		for x := 64; x < 192; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img, nil
}

// blankRaster never lights anything
type blankRaster struct{}

func (blankRaster) Rasterize(string) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, parameter.TextBitmapWidth, parameter.TextBitmapHeight)), nil
}

func TestCandidatesStrideAndThreshold(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	img.Set(0, 0, color.RGBA{R: 129, A: 255})
	img.Set(2, 2, color.RGBA{R: 255, A: 255})
	img.Set(4, 0, color.RGBA{R: 128, A: 255}) // at threshold, excluded
	img.Set(1, 1, color.RGBA{R: 255, A: 255}) // off-stride, excluded

	got := Candidates(img, 2, 128)
	want := []image.Point{{0, 0}, {2, 2}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTextMapsIntoWorldBounds(t *testing.T) {
	gen := NewGenerator(stubRaster{})
	dst := make([]vmath.Vec3F, testN)
	ok, err := gen.Fill(dst, Text("anything"), vmath.NewFastRand(17))
	if err != nil || !ok {
		t.Fatalf("Fill = %v, %v", ok, err)
	}
	// lit rect x∈[64,192), y∈[32,96) on 256×128
	for i, p := range dst {
		if p.X < -7.5-1e-9 || p.X >= 7.5 {
			t.Fatalf("point %d x=%v outside lit region", i, p.X)
		}
		if p.Y <= -3.75 || p.Y > 3.75+1e-9 {
			t.Fatalf("point %d y=%v outside lit region", i, p.Y)
		}
		if math.Abs(p.Z) > 1 {
			t.Fatalf("point %d z=%v", i, p.Z)
		}
	}
}

func TestTextEmptyCandidatesIsNoop(t *testing.T) {
	gen := NewGenerator(blankRaster{})
	dst := make([]vmath.Vec3F, 16)
	for i := range dst {
		dst[i] = vmath.Vec3F{X: float64(i), Y: 1, Z: 2}
	}
	before := append([]vmath.Vec3F(nil), dst...)

	ok, err := gen.Fill(dst, Text("   "), vmath.NewFastRand(1))
	if err != nil || ok {
		t.Fatalf("Fill = %v, %v; want false, nil", ok, err)
	}
	ok, err = gen.Fill(dst, Text("abc"), vmath.NewFastRand(1))
	if err != nil || ok {
		t.Fatalf("Fill = %v, %v; want false, nil", ok, err)
	}
	for i := range dst {
		if dst[i] != before[i] {
			t.Fatalf("target %d changed on no-op fill", i)
		}
	}
}

func TestPrepareTextLimitsClusters(t *testing.T) {
	long := ""
	for i := 0; i < parameter.TextMaxClusters+10; i++ {
		long += "e\u0301" // decomposed: two runes, one cluster
	}
	got := PrepareText(long)
	runes := []rune(got)
	if len(runes) != parameter.TextMaxClusters {
		t.Errorf("got %d runes, want %d NFC-composed clusters", len(runes), parameter.TextMaxClusters)
	}
}

func TestGlyphRasterizer(t *testing.T) {
	r, err := NewGlyphRasterizer()
	if err != nil {
		t.Fatalf("NewGlyphRasterizer: %v", err)
	}

	img, err := r.Rasterize(parameter.LoveText)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if img.Bounds().Dx() != parameter.TextBitmapWidth || img.Bounds().Dy() != parameter.TextBitmapHeight {
		t.Fatalf("unexpected bitmap size %v", img.Bounds())
	}
	if n := len(Candidates(img, parameter.TextStride, parameter.TextThreshold)); n == 0 {
		t.Fatal("expected lit pixels for Latin text")
	}

	// No Go Bold glyphs for CJK: blank bitmap, Fill is a no-op
	gen := NewGenerator(r)
	dst := make([]vmath.Vec3F, 8)
	ok, err := gen.Fill(dst, Text("日本語"), vmath.NewFastRand(1))
	if err != nil || ok {
		t.Errorf("Fill(unsupported) = %v, %v; want false, nil", ok, err)
	}
}
