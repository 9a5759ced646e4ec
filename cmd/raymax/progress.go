package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
)

// barFPS is the display refresh rate the progress bar eases its
// shown percentage at, independent of how often the scheduler itself
// reports (spec.md §4.G: every 1/128 of total).
const barFPS = 30

// progressBar eases the displayed percentage toward the scheduler's
// last-reported fraction with a critically-damped spring, the same
// harmonica pattern the teacher uses to decay RotationAxis.Velocity
// toward zero (cmd/trophy/main.go, RotationAxis.Update).
type progressBar struct {
	w      io.Writer
	width  int
	spring harmonica.Spring

	mu       sync.Mutex
	target   float64
	shown    float64
	velocity float64
	done     chan struct{}
}

func newProgressBar(w io.Writer, width int) *progressBar {
	b := &progressBar{
		w:      w,
		width:  width,
		spring: harmonica.NewSpring(harmonica.FPS(barFPS), 6.0, 1.0),
		done:   make(chan struct{}),
	}
	go b.run()
	return b
}

// report records the scheduler's latest progress fraction; called
// from scheduler worker goroutines, so it only updates shared state
// under the mutex and never prints directly.
func (b *progressBar) report(pct float64) {
	b.mu.Lock()
	b.target = pct
	b.mu.Unlock()
}

func (b *progressBar) run() {
	ticker := time.NewTicker(time.Second / barFPS)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			b.tick()
		case <-b.done:
			return
		}
	}
}

func (b *progressBar) tick() {
	b.mu.Lock()
	target := b.target
	b.shown, b.velocity = b.spring.Update(b.shown, b.velocity, target)
	shown := b.shown
	b.mu.Unlock()

	b.draw(clamp01(shown))
}

func (b *progressBar) draw(pct float64) {
	filled := int(pct * float64(b.width))
	if filled > b.width {
		filled = b.width
	}
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", b.width-filled)
	fmt.Fprintf(b.w, "\r[%s] %5.1f%%", bar, pct*100)
}

// finish stops the easing goroutine and snaps the bar to 100%.
func (b *progressBar) finish() {
	close(b.done)
	b.draw(1.0)
	fmt.Fprintln(b.w)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
