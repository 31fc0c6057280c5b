package cli

import (
	"strings"
	"testing"
)

func TestTrimFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{90, "90"},
		{-67.5, "-67.5"},
		{1.0 / 6, "0.167"},
		{0.0004, "0"},
	}
	for _, tt := range tests {
		if got := trimFloat(tt.in); got != tt.want {
			t.Errorf("trimFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRotation(t *testing.T) {
	if got := formatRotation(0); got != "—" {
		t.Errorf("formatRotation(0) = %q", got)
	}
	if got := formatRotation(-165); got != "-165°" {
		t.Errorf("formatRotation(-165) = %q", got)
	}
}

func TestRingTable(t *testing.T) {
	m := browseFixture(t)
	out := ringTable(m.Geometry, 60)

	for _, want := range []string{"Ring", "Rotate", "Assets", "Policy", "Risk", "Ops", "-90° … 0°", "0 … 0.167"} {
		if !strings.Contains(out, want) {
			t.Errorf("ring table missing %q:\n%s", want, out)
		}
	}
}

func TestItemTable(t *testing.T) {
	m := browseFixture(t)
	out := itemTable(m.Geometry.ItemsOf(3), 60)

	for _, want := range []string{"Item", "Scale", "d", "f", "1.000"} {
		if !strings.Contains(out, want) {
			t.Errorf("item table missing %q:\n%s", want, out)
		}
	}
}
