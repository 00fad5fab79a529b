// Package config loads runtime settings from TOML with environment overrides
package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/lixenwraith/particle-morph/morph"
	"github.com/lixenwraith/particle-morph/parameter"
	"github.com/lixenwraith/particle-morph/shape"
)

// EnvPrefix prefixes environment overrides, e.g. PARTICLE_MORPH_PARTICLES
const EnvPrefix = "PARTICLE_MORPH_"

// Config holds runtime settings; durations are in milliseconds on disk
type Config struct {
	Particles         int     `toml:"particles"`
	IdleTimeoutMs     int     `toml:"idle_timeout_ms"`
	AcquireIntervalMs int     `toml:"acquire_interval_ms"`
	AcquireTimeoutMs  int     `toml:"acquire_timeout_ms"`
	FPS               int     `toml:"fps"`
	Shape             string  `toml:"shape"`
	Tint              string  `toml:"tint"`
	LoveText          string  `toml:"love_text"`
	Seed              uint64  `toml:"seed"`
	Audio             bool    `toml:"audio"`
	MasterVolume      float64 `toml:"master_volume"`
	Replay            string  `toml:"replay"`
	ReplayLoop        bool    `toml:"replay_loop"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Particles:         parameter.ParticleCountDefault,
		IdleTimeoutMs:     int(parameter.IdleTimeout / time.Millisecond),
		AcquireIntervalMs: int(parameter.AcquireInterval / time.Millisecond),
		AcquireTimeoutMs:  int(parameter.AcquireTimeout / time.Millisecond),
		FPS:               parameter.FrameRateDefault,
		Shape:             "galaxy",
		Tint:              parameter.TintDefault,
		LoveText:          parameter.LoveText,
		Audio:             true,
		MasterVolume:      parameter.AudioMasterVolume,
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "locate config dir")
	}
	return filepath.Join(dir, "particle-morph", "config.toml"), nil
}

// Load reads path over the defaults; a missing file is not an error
// Environment overrides are applied after the file, then everything is validated
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.decode(string(data)); err != nil {
			return nil, errors.Wrapf(err, "config %s", path)
		}
	case os.IsNotExist(err):
		log.Printf("config: %s not found, using defaults", path)
	default:
		return nil, errors.Wrap(err, "read config")
	}

	cfg.ApplyEnv()
	cfg.Validate()
	return cfg, nil
}

// Parse decodes TOML text over the defaults and validates, without environment overrides
func Parse(data string) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	cfg.Validate()
	return cfg, nil
}

func (c *Config) decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return errors.Wrap(err, "decode")
	}
	for _, key := range md.Undecoded() {
		log.Printf("config: unrecognised key '%s'", key.String())
	}
	return nil
}

// ApplyEnv overrides fields from PARTICLE_MORPH_* variables; unparsable values are logged and ignored
func (c *Config) ApplyEnv() {
	envInt("PARTICLES", &c.Particles)
	envInt("IDLE_TIMEOUT_MS", &c.IdleTimeoutMs)
	envInt("ACQUIRE_INTERVAL_MS", &c.AcquireIntervalMs)
	envInt("ACQUIRE_TIMEOUT_MS", &c.AcquireTimeoutMs)
	envInt("FPS", &c.FPS)
	envString("SHAPE", &c.Shape)
	envString("TINT", &c.Tint)
	envString("LOVE_TEXT", &c.LoveText)
	envString("REPLAY", &c.Replay)
	envBool("AUDIO", &c.Audio)
	envBool("REPLAY_LOOP", &c.ReplayLoop)

	if v, ok := os.LookupEnv(EnvPrefix + "SEED"); ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = n
		} else {
			log.Printf("config: ignoring %sSEED=%q: %v", EnvPrefix, v, err)
		}
	}

	// Volume is given as 0-100
	if v, ok := os.LookupEnv(EnvPrefix + "MASTER_VOLUME"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.MasterVolume = float64(n) / 100.0
		} else {
			log.Printf("config: ignoring %sMASTER_VOLUME=%q: %v", EnvPrefix, v, err)
		}
	}
}

func envInt(name string, dst *int) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: ignoring %s%s=%q: %v", EnvPrefix, name, v, err)
		return
	}
	*dst = n
}

func envBool(name string, dst *bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: ignoring %s%s=%q: %v", EnvPrefix, name, v, err)
		return
	}
	*dst = b
}

func envString(name string, dst *string) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok {
		*dst = v
	}
}

// Validate clamps numeric settings and resets malformed strings to defaults, logging each change
func (c *Config) Validate() {
	def := Default()

	clampInt("particles", &c.Particles, parameter.ParticleCountMin, parameter.ParticleCountMax)
	clampInt("idle_timeout_ms", &c.IdleTimeoutMs, 100, 600000)
	clampInt("acquire_interval_ms", &c.AcquireIntervalMs, int(parameter.AcquireIntervalMin/time.Millisecond), 10000)
	clampInt("acquire_timeout_ms", &c.AcquireTimeoutMs, 10, 60000)
	clampInt("fps", &c.FPS, parameter.FrameRateMin, parameter.FrameRateMax)

	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		log.Printf("config: invalid master_volume %.2f, must be between 0.0 and 1.0, using default %.2f",
			c.MasterVolume, def.MasterVolume)
		c.MasterVolume = def.MasterVolume
	}

	if strings.TrimSpace(c.LoveText) == "" {
		c.LoveText = def.LoveText
	}
	if _, err := c.InitialShape(); err != nil {
		log.Printf("config: invalid shape %q, using default %q", c.Shape, def.Shape)
		c.Shape = def.Shape
	}
	if _, err := morph.ParseTint(c.Tint); err != nil {
		log.Printf("config: invalid tint %q, using default %s", c.Tint, def.Tint)
		c.Tint = def.Tint
	}
}

func clampInt(name string, v *int, lo, hi int) {
	if *v < lo || *v > hi {
		clamped := max(lo, min(hi, *v))
		log.Printf("config: %s %d out of range [%d, %d], using %d", name, *v, lo, hi, clamped)
		*v = clamped
	}
}

// InitialShape resolves the configured shape, with "love" using the configured text
func (c *Config) InitialShape() (shape.Shape, error) {
	if strings.EqualFold(strings.TrimSpace(c.Shape), "love") {
		return shape.Text(c.LoveText), nil
	}
	return shape.ParseShape(c.Shape)
}

// IdleTimeout returns the idle dispersal delay
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMs) * time.Millisecond
}

// AcquireInterval returns the landmark polling period
func (c *Config) AcquireInterval() time.Duration {
	return time.Duration(c.AcquireIntervalMs) * time.Millisecond
}

// AcquireTimeout returns the per-attempt acquisition limit
func (c *Config) AcquireTimeout() time.Duration {
	return time.Duration(c.AcquireTimeoutMs) * time.Millisecond
}
