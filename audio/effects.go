package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/particle-morph/control"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *vmath.FastRand
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      vmath.NewEntropyRand(),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.duration {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.duration {
			return i, true
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Range(-1, 1)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(0, total-att-rel),
		totalSamples:   total,
	}
}

// gain returns the envelope level at the current position
func (e *envelope) gain() float64 {
	if e.position < e.attackSamples {
		return float64(e.position) / float64(e.attackSamples)
	}
	releaseStart := e.attackSamples + e.sustainSamples
	if e.position >= releaseStart && e.releaseSamples > 0 {
		return max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
	}
	return 1
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remaining := e.totalSamples - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := e.gain()
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; zero or less is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateSelectSound is a short rising two-note chime
func CreateSelectSound(cfg *CueConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	n1 := NewOscillator(parameter.SelectNote1Freq, parameter.SelectNote1Duration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, parameter.SelectNote1Duration, parameter.SelectAttack, parameter.SelectNote1Release, rate)

	n2 := NewOscillator(parameter.SelectNote2Freq, parameter.SelectNote2Duration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, parameter.SelectNote2Duration, parameter.SelectAttack, parameter.SelectNote2Release, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), cfg.volume(control.CueSelect))
}

// CreateGatherSound is a bell with an octave overtone
func CreateGatherSound(cfg *CueConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	fund := NewOscillator(parameter.GatherFreq, parameter.GatherDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, parameter.GatherDuration, parameter.GatherAttack, parameter.GatherFundamentalRelease, rate)

	over := NewOscillator(parameter.GatherFreq*2, parameter.GatherDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, parameter.GatherDuration, parameter.GatherAttack, parameter.GatherOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, cfg.volume(control.CueGather))
}

// CreateDisperseSound is a soft noise swell
func CreateDisperseSound(cfg *CueConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, parameter.DisperseDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, parameter.DisperseDuration, parameter.DisperseAttack, parameter.DisperseRelease, rate)

	return newVolume(shaped, cfg.volume(control.CueDisperse))
}

// CueSound returns the streamer for a cue, or nil for an unknown cue
func CueSound(cue control.Cue, cfg *CueConfig) beep.Streamer {
	switch cue {
	case control.CueSelect:
		return CreateSelectSound(cfg)
	case control.CueGather:
		return CreateGatherSound(cfg)
	case control.CueDisperse:
		return CreateDisperseSound(cfg)
	default:
		return nil
	}
}
