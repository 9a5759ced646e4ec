package main

import (
	"strings"
	"testing"
	"time"
)

func TestProgressBarEasesTowardReportedFraction(t *testing.T) {
	var buf strings.Builder
	bar := newProgressBar(&buf, 10)

	bar.report(1.0)
	time.Sleep(200 * time.Millisecond)
	bar.finish()

	out := buf.String()
	if !strings.Contains(out, "100.0%") {
		t.Errorf("expected the bar to reach 100%% after finish, got tail %q", out[max(0, len(out)-20):])
	}
}

func TestClamp01(t *testing.T) {
	cases := map[float64]float64{-0.5: 0, 0: 0, 0.5: 0.5, 1: 1, 1.5: 1}
	for in, want := range cases {
		if got := clamp01(in); got != want {
			t.Errorf("clamp01(%v) = %v, want %v", in, got, want)
		}
	}
}
