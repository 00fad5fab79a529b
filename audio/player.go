package audio

import (
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/particle-morph/control"
	"github.com/lixenwraith/particle-morph/parameter"
)

// CuePlayer plays short feedback sounds for control cues
// When the speaker cannot be opened it stays silent and Play is a no-op
type CuePlayer struct {
	mu          sync.Mutex
	cfg         *CueConfig
	mixer       *beep.Mixer
	initialized bool
	silent      bool
	played      map[control.Cue]int
}

// NewCuePlayer creates a player; nil cfg uses defaults
func NewCuePlayer(cfg *CueConfig) *CuePlayer {
	if cfg == nil {
		cfg = DefaultCueConfig()
	}
	return &CuePlayer{
		cfg:    cfg,
		mixer:  &beep.Mixer{},
		played: make(map[control.Cue]int),
	}
}

// Initialize opens the speaker; failure degrades to silent mode rather than an error
func (p *CuePlayer) Initialize() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return
	}
	p.initialized = true

	if !p.cfg.Enabled {
		p.silent = true
		return
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		log.Printf("audio: speaker unavailable, cues disabled: %v", err)
		p.silent = true
		return
	}
	speaker.Play(p.mixer)
}

// Play queues the sound for cue; safe to call from the frame loop
func (p *CuePlayer) Play(cue control.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.played[cue]++
	if !p.initialized || p.silent {
		return
	}

	s := CueSound(cue, p.cfg)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Silent reports whether sounds are being discarded
func (p *CuePlayer) Silent() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.initialized || p.silent
}

// Played returns how many times cue was requested, audible or not
func (p *CuePlayer) Played(cue control.Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[cue]
}

// Close stops playback and releases the speaker
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	if !p.silent {
		speaker.Clear()
		speaker.Close()
	}
	p.initialized = false
	p.silent = false
}
