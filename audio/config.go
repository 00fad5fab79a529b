package audio

import (
	"github.com/lixenwraith/particle-morph/control"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/vmath"
)

// CueConfig holds audio cue settings
type CueConfig struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
	CueVolumes   map[control.Cue]float64
}

// DefaultCueConfig returns enabled audio at the standard master volume
func DefaultCueConfig() *CueConfig {
	return &CueConfig{
		Enabled:      true,
		MasterVolume: parameter.AudioMasterVolume,
		SampleRate:   parameter.AudioSampleRate,
		CueVolumes: map[control.Cue]float64{
			control.CueSelect:   0.5,
			control.CueGather:   0.6,
			control.CueDisperse: 0.4,
		},
	}
}

// volume returns the effective gain for a cue
func (c *CueConfig) volume(cue control.Cue) float64 {
	v, ok := c.CueVolumes[cue]
	if !ok {
		v = 1
	}
	return vmath.Clamp(v, 0, 1) * vmath.Clamp(c.MasterVolume, 0, 1)
}
