package geom_test

import (
	"testing"

	"github.com/Gaurav-Gosain/mosaic/internal/geom"
)

func TestShrink(t *testing.T) {
	tests := []struct {
		name string
		rect geom.Rect
		gap  int
		want geom.Rect
	}{
		{"no gap", geom.FromLocAndSize(0, 0, 100, 50), 0, geom.FromLocAndSize(0, 0, 100, 50)},
		{"uniform inset", geom.FromLocAndSize(10, 20, 100, 50), 5, geom.FromLocAndSize(15, 25, 90, 40)},
		{"clamped to zero", geom.FromLocAndSize(0, 0, 8, 8), 5, geom.FromLocAndSize(5, 5, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Shrink(tt.gap); got != tt.want {
				t.Errorf("Shrink(%d) = %v, want %v", tt.gap, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	r := geom.FromLocAndSize(10, 10, 20, 20)

	for _, tt := range []struct {
		p    geom.Point
		want bool
	}{
		{geom.Point{X: 10, Y: 10}, true},
		{geom.Point{X: 29, Y: 29}, true},
		{geom.Point{X: 30, Y: 30}, false},
		{geom.Point{X: 9, Y: 15}, false},
	} {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestContainsRect(t *testing.T) {
	outer := geom.FromLocAndSize(0, 0, 100, 100)

	if !outer.ContainsRect(geom.FromLocAndSize(0, 0, 100, 100)) {
		t.Error("a rect should contain itself")
	}
	if !outer.ContainsRect(geom.FromLocAndSize(10, 10, 80, 80)) {
		t.Error("inner rect should be contained")
	}
	if outer.ContainsRect(geom.FromLocAndSize(50, 50, 60, 60)) {
		t.Error("overhanging rect should not be contained")
	}
}

func TestTranslate(t *testing.T) {
	r := geom.FromLocAndSize(5, 5, 10, 10).Translate(geom.Point{X: 100, Y: -5})
	if r != geom.FromLocAndSize(105, 0, 10, 10) {
		t.Errorf("Translate = %v", r)
	}
}

func TestDist(t *testing.T) {
	if got := (geom.Point{X: 0, Y: 0}).Dist(geom.Point{X: 3, Y: 4}); got != 5 {
		t.Errorf("Dist = %v, want 5", got)
	}
	if got := (geom.Point{X: 7, Y: 7}).Dist(geom.Point{X: 7, Y: 7}); got != 0 {
		t.Errorf("Dist = %v, want 0", got)
	}
}

func TestIsEmpty(t *testing.T) {
	if (geom.Size{W: 1, H: 1}).IsEmpty() {
		t.Error("1x1 should not be empty")
	}
	if !(geom.Size{W: 0, H: 5}).IsEmpty() {
		t.Error("zero width should be empty")
	}
	if !geom.FromLocAndSize(3, 3, 5, 0).IsEmpty() {
		t.Error("zero-height rect should be empty")
	}
}
