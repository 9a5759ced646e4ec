package material

import (
	"testing"

	"github.com/mx4/raymax/pkg/color"
)

func TestIsLight(t *testing.T) {
	tests := []struct {
		name string
		ke   color.RGB
		want bool
	}{
		{"black emission", color.Black, false},
		{"red emission", color.RGB{R: 1}, true},
		{"dim white emission", color.Gray(0.01), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := Material{Ke: tc.ke}
			if got := m.IsLight(); got != tc.want {
				t.Errorf("IsLight() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestChecker(t *testing.T) {
	m := Material{Checkered: true}
	white := color.White

	tests := []struct {
		name    string
		u, v    float64
		darkens bool
	}{
		{"origin cell", 0.0, 0.0, false},
		{"one axis offset", 0.25, 0.0, true},
		{"both axes offset", 0.25, 0.25, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := m.Checker(white, tc.u, tc.v)
			if tc.darkens && got == white {
				t.Errorf("Checker(%v,%v) = %v, want darkened", tc.u, tc.v, got)
			}
			if !tc.darkens && got != white {
				t.Errorf("Checker(%v,%v) = %v, want unchanged", tc.u, tc.v, got)
			}
		})
	}
}

func TestNewScalarKs(t *testing.T) {
	m := NewScalarKs(color.White, 0.5, color.Black, 32, true)
	if m.Ks != (color.RGB{R: 0.5, G: 0.5, B: 0.5}) {
		t.Errorf("Ks = %v, want gray 0.5", m.Ks)
	}
}
