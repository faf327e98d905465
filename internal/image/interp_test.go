package image

import (
	"testing"
)

// TestSampleNearest tests nearest-neighbor sampling at pixel coordinates,
// where (x+0.5, y+0.5) is the center of pixel (x, y).
func TestSampleNearest(t *testing.T) {
	img, err := NewImageBuf(4, 4)
	if err != nil {
		t.Fatalf("NewImageBuf failed: %v", err)
	}

	// Fill with gradient pattern
	for y := range 4 {
		for x := range 4 {
			_ = img.SetRGBA(x, y, byte(x*64), byte(y*64), 128, 255)
		}
	}

	tests := []struct {
		name  string
		x, y  float64
		wantX int
		wantY int
	}{
		{"top-left center", 0.5, 0.5, 0, 0},
		{"top-right center", 3.5, 0.5, 3, 0},
		{"pixel (1,1) center", 1.5, 1.5, 1, 1},
		{"inside pixel (2,2)", 2.75, 2.25, 2, 2},
		{"bottom-right center", 3.5, 3.5, 3, 3},
		{"just inside right edge", 3.999, 0.5, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := img.SampleNearest(tt.x, tt.y)

			wantR, wantG, wantB, wantA := img.GetRGBA(tt.wantX, tt.wantY)
			if r != wantR || g != wantG || b != wantB || a != wantA {
				t.Errorf("SampleNearest(%v, %v) = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					tt.x, tt.y, r, g, b, a, wantR, wantG, wantB, wantA)
			}
		})
	}
}

// TestSampleNearestEdgeClamping tests that out-of-bounds coordinates are clamped.
func TestSampleNearestEdgeClamping(t *testing.T) {
	img, err := NewImageBuf(2, 2)
	if err != nil {
		t.Fatalf("NewImageBuf failed: %v", err)
	}

	// Fill corners with distinct colors
	_ = img.SetRGBA(0, 0, 255, 0, 0, 255)   // Red
	_ = img.SetRGBA(1, 0, 0, 255, 0, 255)   // Green
	_ = img.SetRGBA(0, 1, 0, 0, 255, 255)   // Blue
	_ = img.SetRGBA(1, 1, 255, 255, 0, 255) // Yellow

	tests := []struct {
		name  string
		x, y  float64
		wantR byte
		wantG byte
		wantB byte
	}{
		{"before top-left", -1.0, -1.0, 255, 0, 0},    // Clamps to (0,0) = red
		{"after bottom-right", 3.0, 3.0, 255, 255, 0}, // Clamps to (1,1) = yellow
		{"left of row 1", -0.2, 1.5, 0, 0, 255},       // Clamps to (0,1) = blue
		{"right of row 1", 2.2, 1.5, 255, 255, 0},     // Clamps to (1,1) = yellow
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, _ := img.SampleNearest(tt.x, tt.y)
			if r != tt.wantR || g != tt.wantG || b != tt.wantB {
				t.Errorf("SampleNearest(%v, %v) = (%d,%d,%d), want (%d,%d,%d)",
					tt.x, tt.y, r, g, b, tt.wantR, tt.wantG, tt.wantB)
			}
		})
	}
}

// TestSampleBilinear tests bilinear interpolation.
func TestSampleBilinear(t *testing.T) {
	img, err := NewImageBuf(2, 2)
	if err != nil {
		t.Fatalf("NewImageBuf failed: %v", err)
	}

	// Fill corners with known values
	_ = img.SetRGBA(0, 0, 0, 0, 0, 255)     // Black
	_ = img.SetRGBA(1, 0, 255, 0, 0, 255)   // Red
	_ = img.SetRGBA(0, 1, 0, 255, 0, 255)   // Green
	_ = img.SetRGBA(1, 1, 255, 255, 0, 255) // Yellow

	tests := []struct {
		name      string
		x, y      float64
		checkFunc func(r, g, b, a byte) bool
		desc      string
	}{
		{
			name: "exact top-left pixel center",
			x:    0.5, y: 0.5,
			checkFunc: func(r, g, b, a byte) bool {
				return r == 0 && g == 0 && b == 0 && a == 255
			},
			desc: "should be black (0,0,0)",
		},
		{
			name: "exact bottom-right pixel center",
			x:    1.5, y: 1.5,
			checkFunc: func(r, g, b, a byte) bool {
				return r == 255 && g == 255 && b == 0 && a == 255
			},
			desc: "should be yellow (255,255,0)",
		},
		{
			name: "center between all 4 pixels",
			x:    1.0, y: 1.0,
			checkFunc: func(r, g, b, a byte) bool {
				// Average of (0,0,0), (255,0,0), (0,255,0), (255,255,0)
				return (r >= 127 && r <= 128) && (g >= 127 && g <= 128) && b == 0 && a == 255
			},
			desc: "should be average of all corners (~127,~127,0)",
		},
		{
			name: "halfway between top pixel centers",
			x:    1.0, y: 0.5,
			checkFunc: func(r, g, b, a byte) bool {
				return (r >= 127 && r <= 128) && g == 0 && b == 0 && a == 255
			},
			desc: "should be between black and red",
		},
		{
			name: "halfway between left pixel centers",
			x:    0.5, y: 1.0,
			checkFunc: func(r, g, b, a byte) bool {
				return r == 0 && (g >= 127 && g <= 128) && b == 0 && a == 255
			},
			desc: "should be between black and green",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := img.SampleBilinear(tt.x, tt.y)
			if !tt.checkFunc(r, g, b, a) {
				t.Errorf("SampleBilinear(%v, %v) = (%d,%d,%d,%d), %s",
					tt.x, tt.y, r, g, b, a, tt.desc)
			}
		})
	}
}

// TestSampleBilinearSmooth tests that bilinear produces smooth gradients.
func TestSampleBilinearSmooth(t *testing.T) {
	img, err := NewImageBuf(2, 2)
	if err != nil {
		t.Fatalf("NewImageBuf failed: %v", err)
	}

	_ = img.SetRGBA(0, 0, 0, 0, 0, 255)
	_ = img.SetRGBA(1, 0, 255, 255, 255, 255)
	_ = img.SetRGBA(0, 1, 0, 0, 0, 255)
	_ = img.SetRGBA(1, 1, 255, 255, 255, 255)

	// Sample along a horizontal line between the pixel centers
	prevR := byte(0)
	for i := 0; i <= 10; i++ {
		x := 0.5 + float64(i)/10.0
		r, _, _, _ := img.SampleBilinear(x, 1.0)

		// Values should be monotonically increasing
		if i > 0 && r < prevR {
			t.Errorf("Non-monotonic gradient at x=%v: r=%d, prevR=%d", x, r, prevR)
		}
		prevR = r
	}

	if prevR != 255 {
		t.Errorf("Gradient should end at 255, got %d", prevR)
	}
}

// TestSampleDispatch tests the Sample dispatch method.
func TestSampleDispatch(t *testing.T) {
	img, err := NewImageBuf(2, 2)
	if err != nil {
		t.Fatalf("NewImageBuf failed: %v", err)
	}

	_ = img.SetRGBA(0, 0, 100, 100, 100, 255)
	_ = img.SetRGBA(1, 0, 200, 200, 200, 255)
	_ = img.SetRGBA(0, 1, 100, 100, 100, 255)
	_ = img.SetRGBA(1, 1, 200, 200, 200, 255)

	tests := []struct {
		name string
		mode InterpolationMode
	}{
		{"nearest mode", InterpNearest},
		{"bilinear mode", InterpBilinear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _, a := img.Sample(1.0, 1.0, tt.mode)

			if a != 255 {
				t.Errorf("Sample with %s produced invalid alpha: %d", tt.mode, a)
			}
			if r < 100 || r > 200 {
				t.Errorf("Sample with %s produced out-of-range value: %d", tt.mode, r)
			}
		})
	}
}

// TestInterpolationModeString tests the String method.
func TestInterpolationModeString(t *testing.T) {
	tests := []struct {
		mode InterpolationMode
		want string
	}{
		{InterpNearest, "Nearest"},
		{InterpBilinear, "Bilinear"},
		{InterpolationMode(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.mode.String()
			if got != tt.want {
				t.Errorf("mode.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// BenchmarkSampleNearest benchmarks nearest-neighbor sampling.
func BenchmarkSampleNearest(b *testing.B) {
	img, _ := NewImageBuf(256, 256)
	b.ResetTimer()
	for i := range b.N {
		x := float64(i%256) + 0.5
		y := float64((i/256)%256) + 0.5
		img.SampleNearest(x, y)
	}
}

// BenchmarkSampleBilinear benchmarks bilinear sampling.
func BenchmarkSampleBilinear(b *testing.B) {
	img, _ := NewImageBuf(256, 256)
	b.ResetTimer()
	for i := range b.N {
		x := float64(i%256) + 0.5
		y := float64((i/256)%256) + 0.5
		img.SampleBilinear(x, y)
	}
}
