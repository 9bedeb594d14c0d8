package overlay

import (
	"testing"
)

func TestPageIndexFor(t *testing.T) {
	tests := []struct {
		name       string
		y          float64
		pageHeight float64
		want       int
	}{
		{"first page", 100, 792, 0},
		{"top of second page", 792, 792, 1},
		{"middle of second page", 1000, 792, 1},
		{"third page", 1600, 792, 2},
		{"negative y clamps to zero", -5, 792, 0},
		{"zero page height", 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pageIndexFor(tt.y, tt.pageHeight); got != tt.want {
				t.Errorf("pageIndexFor(%v, %v) = %d, want %d", tt.y, tt.pageHeight, got, tt.want)
			}
		})
	}
}

func TestRectFor(t *testing.T) {
	t.Run("reported dimensions kept", func(t *testing.T) {
		r := rectFor(5, 10, 40, 12)
		if r != (Rect{X: 5, Y: 10, W: 40, H: 12}) {
			t.Errorf("rectFor() = %+v", r)
		}
	})

	t.Run("zero dimensions default to square", func(t *testing.T) {
		r := rectFor(5, 10, 0, 0)
		if r.W != defaultRectSize || r.H != defaultRectSize {
			t.Errorf("rectFor() = %+v, want %vx%v square", r, defaultRectSize, defaultRectSize)
		}
	})

	t.Run("zero height only", func(t *testing.T) {
		r := rectFor(5, 10, 40, 0)
		if r.W != 40 || r.H != defaultRectSize {
			t.Errorf("rectFor() = %+v", r)
		}
	})
}
