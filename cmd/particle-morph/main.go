package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/lixenwraith/particle-morph/audio"
	"github.com/lixenwraith/particle-morph/config"
	"github.com/lixenwraith/particle-morph/control"
	"github.com/lixenwraith/particle-morph/engine"
	"github.com/lixenwraith/particle-morph/landmark"
	"github.com/lixenwraith/particle-morph/morph"
	"github.com/lixenwraith/particle-morph/render"
	"github.com/lixenwraith/particle-morph/shape"
	"github.com/lixenwraith/particle-morph/vmath"
)

var (
	configFlag    = flag.String("config", "", "Config file path (default: user config dir)")
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/particle-morph.log")
	particlesFlag = flag.Int("particles", 0, "Particle count")
	fpsFlag       = flag.Int("fps", 0, "Frame rate")
	shapeFlag     = flag.String("shape", "", "Shape assembled on gather: galaxy, heart, saturn, flower, love, text:<s>")
	tintFlag      = flag.String("tint", "", "Particle tint as hex")
	replayFlag    = flag.String("replay", "", "Replay landmark frames from a JSON-lines file")
	loopFlag      = flag.Bool("loop", false, "Loop the replay file")
	seedFlag      = flag.Uint64("seed", 0, "Random seed, 0 for entropy")
	noAudioFlag   = flag.Bool("no-audio", false, "Disable audio cues")
	headlessFlag  = flag.Int("headless", 0, "Run this many ticks without a terminal and print a summary")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	headless := *headlessFlag > 0 || !term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(cfg, headless); err != nil {
		fmt.Fprintf(os.Stderr, "particle-morph: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file then applies explicitly set flags
func loadConfig() (*config.Config, error) {
	path := *configFlag
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "particles":
			cfg.Particles = *particlesFlag
		case "fps":
			cfg.FPS = *fpsFlag
		case "shape":
			cfg.Shape = *shapeFlag
		case "tint":
			cfg.Tint = *tintFlag
		case "replay":
			cfg.Replay = *replayFlag
		case "loop":
			cfg.ReplayLoop = *loopFlag
		case "seed":
			cfg.Seed = *seedFlag
		case "no-audio":
			cfg.Audio = !*noAudioFlag
		}
	})
	cfg.Validate()
	return cfg, nil
}

func run(cfg *config.Config, headless bool) error {
	clock := engine.NewMonotonicTimeProvider()

	rng := vmath.NewEntropyRand()
	if cfg.Seed != 0 {
		rng = vmath.NewFastRand(cfg.Seed)
	}

	raster, err := shape.NewGlyphRasterizer()
	if err != nil {
		log.Printf("text shapes disabled: %v", err)
	}
	gen := shape.NewGenerator(nil)
	if raster != nil {
		gen = shape.NewGenerator(raster)
	}

	initial, err := cfg.InitialShape()
	if err != nil {
		return err
	}

	cueCfg := audio.DefaultCueConfig()
	cueCfg.Enabled = cfg.Audio && !headless
	cueCfg.MasterVolume = cfg.MasterVolume
	player := audio.NewCuePlayer(cueCfg)
	player.Initialize()
	defer player.Close()

	field := morph.NewField(cfg.Particles)
	if err := field.SetTintHex(cfg.Tint); err != nil {
		return err
	}

	ctrl, err := control.New(field, gen, rng, control.Config{
		IdleTimeout:  cfg.IdleTimeout(),
		InitialShape: initial,
		OnCue:        player.Play,
	}, clock.Now())
	if err != nil {
		return err
	}

	var source landmark.Source
	var synth *landmark.SyntheticSource
	if cfg.Replay != "" {
		replay, err := landmark.OpenReplay(cfg.Replay, cfg.ReplayLoop)
		if err != nil {
			return err
		}
		source = replay
	} else {
		synth = landmark.NewSyntheticSource(vmath.NewFastRand(rng.Next()))
		source = synth
	}

	acquirer := engine.NewAcquirer(source, engine.AcquirerConfig{
		Interval: cfg.AcquireInterval(),
		Timeout:  cfg.AcquireTimeout(),
	}, clock)
	acquirer.Start()
	defer func() {
		acquirer.Stop()
		st := acquirer.Stats()
		log.Printf("acquisition: %d attempts, %d failures, %d skipped", st.Attempts, st.Failures, st.Skipped)
	}()

	anim := engine.NewAnimator(field, ctrl, clock, acquirer.Results())
	a := &app{anim: anim, synth: synth, loveText: cfg.LoveText}

	if headless {
		ticks := *headlessFlag
		if ticks <= 0 {
			ticks = cfg.FPS * 5
		}
		runHeadless(anim, ticks, time.Second/time.Duration(cfg.FPS), os.Stdout)
		return nil
	}

	return runInteractive(a, cfg.FPS)
}

func runInteractive(a *app, fps int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// Restore the terminal before printing a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPARTICLE-MORPH CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.HideCursor()
	a.preview = render.NewPreview(screen, fps)
	a.preview.SetPaletteName(palette[0].name)

	loop := engine.NewFrameLoop(a.anim, fps, a.preview.Draw)
	loop.Start()
	defer loop.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGINT, unix.SIGTERM)
	defer signal.Stop(sigCh)

	eventChan := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case sig := <-sigCh:
			log.Printf("received %v, exiting", sig)
			return nil
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handleKey(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}
}
