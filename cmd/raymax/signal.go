package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// installSignalCancel sets cancel once on SIGINT/SIGTERM, letting the
// scheduler elide any tile not yet started (spec.md §5, cancellation
// is tile-grained, never mid-tile).
func installSignalCancel(cancel *atomic.Bool) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nraymax: cancelling, finishing in-flight tiles...")
		cancel.Store(true)
	}()
}
