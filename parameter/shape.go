package parameter

import "math"

// Disperse
const (
	// DisperseExtent is the side of the origin-centred cube used for scatter
	DisperseExtent = 60.0
)

// Galaxy
const (
	GalaxyArms       = 3
	GalaxyRadiusMax  = 10.0
	GalaxySpinFactor = 0.5
	GalaxyJitter     = 0.5
	GalaxyThickness  = 1.0
)

// Heart
const (
	HeartScale  = 0.5
	HeartDepthZ = 2.0
)

// Saturn
const (
	// SaturnRingFraction of the particle set forms the ring, the rest the planet shell
	SaturnRingFraction  = 0.6
	SaturnRingRadiusMin = 8.0
	SaturnRingRadiusMax = 12.0
	SaturnRingJitter    = 0.1
	SaturnTilt          = 30 * math.Pi / 180
	SaturnPlanetRadius  = 5.0
)

// Flower
const (
	FlowerPetals     = 4
	FlowerRadius     = 8.0
	FlowerBaseRadius = 1.0
)

// Text rasterization contract
const (
	TextBitmapWidth  = 256
	TextBitmapHeight = 128
	// TextThreshold is the exclusive red-channel brightness cutoff (0-255)
	TextThreshold = 128
	// TextStride samples every n-th pixel on both axes
	TextStride = 2

	TextWorldWidth  = 30.0
	TextWorldHeight = 15.0
	TextDepthZ      = 1.0

	// TextFontSize is the starting glyph size in pixels; shrunk by TextFontStep until the text fits
	TextFontSize    = 48.0
	TextFontSizeMin = 10.0
	TextFontStep    = 4.0
	// TextMaxClusters limits rasterized text length in grapheme clusters
	TextMaxClusters = 32

	LoveText = "I Love You"
)
