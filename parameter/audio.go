package parameter

import "time"

// Audio output
const (
	AudioSampleRate = 44100
	// AudioBufferDuration is the speaker buffer; larger is safer, smaller is snappier
	AudioBufferDuration = 100 * time.Millisecond
	AudioMasterVolume   = 0.6
)

// Select cue: rising two-note chime
const (
	SelectNote1Freq     = 659.25 // E5
	SelectNote2Freq     = 987.77 // B5
	SelectNote1Duration = 70 * time.Millisecond
	SelectNote2Duration = 180 * time.Millisecond
	SelectAttack        = 5 * time.Millisecond
	SelectNote1Release  = 30 * time.Millisecond
	SelectNote2Release  = 150 * time.Millisecond
)

// Gather cue: bell with octave overtone
const (
	GatherFreq               = 523.25 // C5
	GatherDuration           = 600 * time.Millisecond
	GatherAttack             = 5 * time.Millisecond
	GatherFundamentalRelease = 550 * time.Millisecond
	GatherOvertoneRelease    = 200 * time.Millisecond
)

// Disperse cue: filtered noise swell
const (
	DisperseDuration = 400 * time.Millisecond
	DisperseAttack   = 200 * time.Millisecond
	DisperseRelease  = 200 * time.Millisecond
)
