package chart

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	return img
}

func TestBarChartDeterministic(t *testing.T) {
	pct := [5]float64{12.5, 30, 27.5, 20, 10}
	a, err := BarChart(pct)
	if err != nil {
		t.Fatalf("BarChart failed: %v", err)
	}
	b, err := BarChart(pct)
	if err != nil {
		t.Fatalf("BarChart failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("expected identical output for identical input")
	}

	img := decode(t, a)
	if img.Bounds().Dx() != chartWidth || img.Bounds().Dy() != chartHeight {
		t.Errorf("unexpected size %v", img.Bounds())
	}

	c, _ := BarChart([5]float64{100, 0, 0, 0, 0})
	if bytes.Equal(a, c) {
		t.Error("expected different output for different input")
	}
}

func TestBarChartColours(t *testing.T) {
	data, err := BarChart([5]float64{20, 20, 20, 20, 20})
	if err != nil {
		t.Fatalf("BarChart failed: %v", err)
	}
	img := decode(t, data)

	plotWidth := chartWidth - 80
	slot := plotWidth / 5
	baseline := chartHeight - 60
	for i, want := range categoryColors {
		cx := 40 + slot*i + slot/2
		r, g, b, _ := img.At(cx, baseline-5).RGBA()
		if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
			t.Errorf("bar %d: expected colour %v, got (%d,%d,%d)", i, want, r>>8, g>>8, b>>8)
		}
	}
}

func TestMonogram(t *testing.T) {
	data, err := Monogram("delhi public school")
	if err != nil {
		t.Fatalf("Monogram failed: %v", err)
	}
	img := decode(t, data)

	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("expected transparent corner, got alpha %d", a)
	}
	if _, _, _, a := img.At(100, 10).RGBA(); a == 0 {
		t.Error("expected opaque disc near the top centre")
	}

	other, _ := Monogram("De")
	if !bytes.Equal(data, other) {
		t.Error("expected the monogram to depend only on the first two letters")
	}

	if _, err := Monogram(""); err != nil {
		t.Errorf("Monogram of empty name failed: %v", err)
	}
}

func TestInitials(t *testing.T) {
	tests := []struct{ in, want string }{
		{"delhi public school", "DE"},
		{"élan academy", "ÉL"},
		{"ışık", "IŞ"},
		{"A", "A"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := initials(tt.in); got != tt.want {
			t.Errorf("initials(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	lower, err := Monogram("élan")
	if err != nil {
		t.Fatal(err)
	}
	upper, err := Monogram("ÉLAN")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(lower, upper) {
		t.Error("expected accented initials to be upper-cased")
	}
}
