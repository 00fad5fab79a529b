package engine

import (
	"log"
	"runtime/debug"
)

// goSafe runs fn in a new goroutine; a panic is logged with its stack and swallowed
// so a failing acquisition never takes down the frame loop
func goSafe(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("engine: panic in %s: %v\n%s", name, r, debug.Stack())
			}
		}()
		fn()
	}()
}
