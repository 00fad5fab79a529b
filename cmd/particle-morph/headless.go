package main

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/lixenwraith/particle-morph/engine"
)

// runHeadless ticks the animator without a terminal and reports the final state
func runHeadless(anim *engine.Animator, ticks int, interval time.Duration, w io.Writer) engine.Output {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var out engine.Output
	for i := 0; i < ticks; i++ {
		out = anim.Tick()
		if i < ticks-1 {
			<-ticker.C
		}
	}

	summary := fmt.Sprintf("ticks=%d shape=%s dispersed=%t gesture=%s expansion=%.3f",
		out.Tick, out.Shape, out.Dispersed, out.Label, out.Expansion)
	log.Printf("headless run complete: %s", summary)
	fmt.Fprintln(w, summary)
	return out
}
